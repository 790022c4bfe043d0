// Package peppol renders invoices as UBL 2.1 documents for Peppol
// e-invoicing.
package peppol

import (
	"encoding/xml"
	"fmt"

	"app/internal/model"
)

const (
	ublInvoiceNS = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	cacNS        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	cbcNS        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	// Peppol BIS Billing 3.0 identifiers.
	customizationID = "urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0"
	profileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"
)

type amount struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr"`
}

type party struct {
	Name      string `xml:"cac:PartyName>cbc:Name"`
	Street    string `xml:"cac:PostalAddress>cbc:StreetName,omitempty"`
	City      string `xml:"cac:PostalAddress>cbc:CityName,omitempty"`
	VATNumber string `xml:"cac:PartyTaxScheme>cbc:CompanyID,omitempty"`
}

type invoiceLine struct {
	ID          string `xml:"cbc:ID"`
	Quantity    string `xml:"cbc:InvoicedQuantity"`
	LineAmount  amount `xml:"cbc:LineExtensionAmount"`
	Description string `xml:"cac:Item>cbc:Description,omitempty"`
	PriceAmount amount `xml:"cac:Price>cbc:PriceAmount"`
}

type ublInvoice struct {
	XMLName         xml.Name      `xml:"Invoice"`
	XMLNS           string        `xml:"xmlns,attr"`
	XMLNSCac        string        `xml:"xmlns:cac,attr"`
	XMLNSCbc        string        `xml:"xmlns:cbc,attr"`
	CustomizationID string        `xml:"cbc:CustomizationID"`
	ProfileID       string        `xml:"cbc:ProfileID"`
	ID              string        `xml:"cbc:ID"`
	IssueDate       string        `xml:"cbc:IssueDate"`
	DueDate         string        `xml:"cbc:DueDate,omitempty"`
	InvoiceTypeCode string        `xml:"cbc:InvoiceTypeCode"`
	Note            string        `xml:"cbc:Note,omitempty"`
	Currency        string        `xml:"cbc:DocumentCurrencyCode"`
	Supplier        party         `xml:"cac:AccountingSupplierParty>cac:Party"`
	Customer        party         `xml:"cac:AccountingCustomerParty>cac:Party"`
	TaxAmount       amount        `xml:"cac:TaxTotal>cbc:TaxAmount"`
	LineExtension   amount        `xml:"cac:LegalMonetaryTotal>cbc:LineExtensionAmount"`
	TaxExclusive    amount        `xml:"cac:LegalMonetaryTotal>cbc:TaxExclusiveAmount"`
	TaxInclusive    amount        `xml:"cac:LegalMonetaryTotal>cbc:TaxInclusiveAmount"`
	Payable         amount        `xml:"cac:LegalMonetaryTotal>cbc:PayableAmount"`
	Lines           []invoiceLine `xml:"cac:InvoiceLine"`
}

// Supplier identifies the invoicing party on the rendered document.
type Supplier struct {
	Name      string
	Street    string
	City      string
	VATNumber string
}

// Customer identifies the invoiced party.
type Customer struct {
	Name      string
	Street    string
	City      string
	VATNumber string
}

// RenderUBL serializes the invoice as a UBL 2.1 XML document following the
// Peppol BIS Billing 3.0 profile.
func RenderUBL(inv *model.Invoice, supplier Supplier, customer Customer) ([]byte, error) {
	cur := inv.Currency
	doc := ublInvoice{
		XMLNS:           ublInvoiceNS,
		XMLNSCac:        cacNS,
		XMLNSCbc:        cbcNS,
		CustomizationID: customizationID,
		ProfileID:       profileID,
		ID:              inv.InvoiceNumber,
		IssueDate:       inv.IssueDate.Format("2006-01-02"),
		InvoiceTypeCode: "380",
		Note:            inv.Notes,
		Currency:        cur,
		Supplier:        party{Name: supplier.Name, Street: supplier.Street, City: supplier.City, VATNumber: supplier.VATNumber},
		Customer:        party{Name: customer.Name, Street: customer.Street, City: customer.City, VATNumber: customer.VATNumber},
		TaxAmount:       amount{Value: formatAmount(inv.TaxAmount), CurrencyID: cur},
		LineExtension:   amount{Value: formatAmount(inv.Subtotal), CurrencyID: cur},
		TaxExclusive:    amount{Value: formatAmount(inv.Subtotal), CurrencyID: cur},
		TaxInclusive:    amount{Value: formatAmount(inv.TotalAmount), CurrencyID: cur},
		Payable:         amount{Value: formatAmount(inv.TotalAmount), CurrencyID: cur},
	}
	if inv.DueDate != nil {
		doc.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for i, item := range inv.Items {
		line := item.Quantity * item.UnitPrice
		doc.Lines = append(doc.Lines, invoiceLine{
			ID:          fmt.Sprintf("%d", i+1),
			Quantity:    formatAmount(item.Quantity),
			LineAmount:  amount{Value: formatAmount(line), CurrencyID: cur},
			Description: item.Description,
			PriceAmount: amount{Value: formatAmount(item.UnitPrice), CurrencyID: cur},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering UBL for invoice %s: %w", inv.InvoiceNumber, err)
	}
	return append([]byte(xml.Header), out...), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
