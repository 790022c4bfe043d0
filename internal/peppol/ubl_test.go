package peppol

import (
	"strings"
	"testing"
	"time"

	"app/internal/model"
)

func TestRenderUBL(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	inv := &model.Invoice{
		InvoiceNumber: "INV-20260828-AB12CD",
		Items: []model.InvoiceItem{
			{ProductID: "prod-1", Description: "Consulting", Quantity: 2, UnitPrice: 100},
		},
		Subtotal:    200,
		TaxAmount:   42,
		TotalAmount: 242,
		Currency:    "EUR",
		IssueDate:   time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		DueDate:     &due,
		Notes:       "Payment within 30 days",
	}

	out, err := RenderUBL(inv,
		Supplier{Name: "Jan Peeters", VATNumber: "BE0123456749"},
		Customer{Name: "Acme BV", VATNumber: "BE0417497106"})
	if err != nil {
		t.Fatalf("RenderUBL returned error: %v", err)
	}

	doc := string(out)
	if !strings.HasPrefix(doc, "<?xml") {
		t.Fatal("expected XML declaration prefix")
	}
	for _, want := range []string{
		"<cbc:CustomizationID>urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0</cbc:CustomizationID>",
		"<cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>",
		"<cbc:ID>INV-20260828-AB12CD</cbc:ID>",
		"<cbc:IssueDate>2026-08-28</cbc:IssueDate>",
		"<cbc:DueDate>2026-09-30</cbc:DueDate>",
		`<cbc:PayableAmount currencyID="EUR">242.00</cbc:PayableAmount>`,
		`<cbc:TaxAmount currencyID="EUR">42.00</cbc:TaxAmount>`,
		`<cbc:LineExtensionAmount currencyID="EUR">200.00</cbc:LineExtensionAmount>`,
		"<cbc:Name>Acme BV</cbc:Name>",
		"<cbc:CompanyID>BE0417497106</cbc:CompanyID>",
		"<cac:InvoiceLine>",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderUBLOmitsEmptyDueDate(t *testing.T) {
	inv := &model.Invoice{
		InvoiceNumber: "INV-20260828-AB12CD",
		Currency:      "EUR",
		IssueDate:     time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}
	out, err := RenderUBL(inv, Supplier{Name: "Jan Peeters"}, Customer{Name: "Acme BV"})
	if err != nil {
		t.Fatalf("RenderUBL returned error: %v", err)
	}
	if strings.Contains(string(out), "cbc:DueDate") {
		t.Fatal("expected DueDate element to be omitted")
	}
}
