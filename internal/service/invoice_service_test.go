package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"app/internal/model"
	"app/internal/peppol"
	"app/internal/plan"
	"app/internal/pubsub"

	"github.com/rs/zerolog"
)

type invoiceFixture struct {
	svc       InvoiceService
	invoices  *fakeInvoiceRepo
	docs      *fakeDocStore
	publisher *fakePublisher
	queue     *fakeQueue
}

func newInvoiceFixture(subRepo *fakeSubscriptionRepo, usage *fakeUsageRepo) *invoiceFixture {
	catalog := plan.NewCatalog()
	invoices := &fakeInvoiceRepo{}
	accounts := &fakeAccountRepo{}
	accounts.accounts = append(accounts.accounts, model.Account{
		ID: "acc-1", UserID: "user-1", Name: "Acme BV", VATNumber: "BE0417497106",
	})
	products := &fakeProductRepo{}
	products.products = append(products.products, model.Product{
		ID: "prod-1", UserID: "user-1", Name: "Consulting", Price: 100, TaxRate: 21, Currency: "EUR",
	})
	userRepo := newFakeUserRepo()
	userRepo.users["user-1"] = &model.User{ID: "user-1", Name: "Jan Peeters"}
	planSvc := NewPlanService(catalog, subRepo, userRepo, usage, zerolog.Nop())
	docs := &fakeDocStore{}
	publisher := &fakePublisher{}
	queue := &fakeQueue{}
	svc := NewInvoiceService(catalog, invoices, accounts, products, usage, userRepo, planSvc, docs, publisher, queue, zerolog.Nop())
	return &invoiceFixture{svc: svc, invoices: invoices, docs: docs, publisher: publisher, queue: queue}
}

func professionalSubRepo() *fakeSubscriptionRepo {
	subRepo := &fakeSubscriptionRepo{}
	subRepo.subs = append(subRepo.subs, model.UserSubscription{
		UserID: "user-1", PlanID: string(plan.Professional), Status: model.SubscriptionActive,
	})
	return subRepo
}

func TestCreateInvoicePricesFromCatalog(t *testing.T) {
	fix := newInvoiceFixture(&fakeSubscriptionRepo{}, &fakeUsageRepo{})

	inv, err := fix.svc.Create(context.Background(), "user-1", "acc-1", nil,
		[]model.InvoiceItem{{ProductID: "prod-1", Quantity: 2}}, nil, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if inv.Subtotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", inv.Subtotal)
	}
	if inv.TaxAmount != 42 {
		t.Fatalf("expected tax 42, got %v", inv.TaxAmount)
	}
	if inv.TotalAmount != 242 {
		t.Fatalf("expected total 242, got %v", inv.TotalAmount)
	}
	if inv.Status != model.InvoiceDraft {
		t.Fatalf("new invoice must be draft, got %s", inv.Status)
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Fatalf("unexpected invoice number %q", inv.InvoiceNumber)
	}
}

func TestCreateInvoiceAtMonthlyQuotaDenied(t *testing.T) {
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{plan.ResourceInvoicesThisMonth: 10}}
	fix := newInvoiceFixture(&fakeSubscriptionRepo{}, usage)

	_, err := fix.svc.Create(context.Background(), "user-1", "acc-1", nil,
		[]model.InvoiceItem{{ProductID: "prod-1", Quantity: 1}}, nil, "")
	var quotaErr *plan.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if quotaErr.Resource != plan.ResourceInvoicesThisMonth {
		t.Fatalf("unexpected resource: %s", quotaErr.Resource)
	}
	if len(fix.invoices.invoices) != 0 {
		t.Fatal("denied create must not store an invoice")
	}
}

func TestCreateInvoiceUnknownProduct(t *testing.T) {
	fix := newInvoiceFixture(&fakeSubscriptionRepo{}, &fakeUsageRepo{})

	_, err := fix.svc.Create(context.Background(), "user-1", "acc-1", nil,
		[]model.InvoiceItem{{ProductID: "nope", Quantity: 1}}, nil, "")
	if !errors.Is(err, ErrUnknownProductRef) {
		t.Fatalf("expected ErrUnknownProductRef, got %v", err)
	}
}

func TestSendInvoiceDeniedOnStarter(t *testing.T) {
	fix := newInvoiceFixture(&fakeSubscriptionRepo{}, &fakeUsageRepo{})
	ctx := context.Background()

	// Drafting an invoice is quota-gated only; exporting it is not.
	inv, err := fix.svc.Create(ctx, "user-1", "acc-1", nil,
		[]model.InvoiceItem{{ProductID: "prod-1", Quantity: 1}}, nil, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = fix.svc.Send(ctx, "user-1", inv.ID)
	var featureErr *plan.FeatureNotAvailableError
	if !errors.As(err, &featureErr) {
		t.Fatalf("expected FeatureNotAvailableError, got %v", err)
	}
	if featureErr.Feature != plan.FeaturePeppolInvoicing {
		t.Fatalf("unexpected gated feature: %s", featureErr.Feature)
	}
	if !strings.Contains(err.Error(), "Upgrade to Professional") {
		t.Fatalf("denial must carry upgrade prompt, got %q", err.Error())
	}
	if len(fix.docs.keys) != 0 {
		t.Fatalf("denied send must not store a document, got %d", len(fix.docs.keys))
	}
	if len(fix.queue.payloads) != 0 {
		t.Fatalf("denied send must not enqueue a delivery, got %d", len(fix.queue.payloads))
	}
	stored, _ := fix.svc.Get(ctx, "user-1", inv.ID)
	if stored.Status != model.InvoiceDraft {
		t.Fatalf("denied send must leave the invoice in draft, got %s", stored.Status)
	}
}

func TestSendInvoiceRendersStoresAndQueues(t *testing.T) {
	fix := newInvoiceFixture(professionalSubRepo(), &fakeUsageRepo{})
	ctx := context.Background()

	inv, err := fix.svc.Create(ctx, "user-1", "acc-1", nil,
		[]model.InvoiceItem{{ProductID: "prod-1", Quantity: 1}}, nil, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	sent, err := fix.svc.Send(ctx, "user-1", inv.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if sent.Status != model.InvoiceSent {
		t.Fatalf("expected status sent, got %s", sent.Status)
	}
	if sent.DocumentURL == "" {
		t.Fatal("expected document URL to be set")
	}
	if len(fix.docs.keys) != 1 {
		t.Fatalf("expected 1 stored document, got %d", len(fix.docs.keys))
	}

	if len(fix.queue.payloads) != 1 || fix.queue.queues[0] != peppol.DeliveryQueue {
		t.Fatalf("expected 1 delivery job on %s, got %+v", peppol.DeliveryQueue, fix.queue.queues)
	}
	var job peppol.DeliveryJob
	if err := json.Unmarshal(fix.queue.payloads[0], &job); err != nil {
		t.Fatalf("failed to decode delivery job: %v", err)
	}
	if job.InvoiceID != inv.ID || job.DocumentURL != sent.DocumentURL {
		t.Fatalf("unexpected delivery job: %+v", job)
	}

	if len(fix.publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(fix.publisher.events))
	}
	event := fix.publisher.events[0]
	if event.Type != pubsub.EventInvoiceSent || event.InvoiceID != inv.ID {
		t.Fatalf("unexpected event: %+v", event)
	}

	// A sent invoice cannot be sent again.
	if _, err := fix.svc.Send(ctx, "user-1", inv.ID); !errors.Is(err, ErrInvoiceNotDraft) {
		t.Fatalf("expected ErrInvoiceNotDraft on double send, got %v", err)
	}
}
