package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/peppol"
	"app/internal/plan"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvoiceNoItems    = errors.New("invoice has no items")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvoiceNotDraft   = errors.New("invoice is not in draft status")
	ErrUnknownProductRef = errors.New("invoice item references unknown product")
)

type InvoiceService interface {
	// Create builds an invoice from line items, pricing them from the
	// product catalog, and admits it against the monthly quota.
	Create(ctx context.Context, userID, accountID string, contactID *string, items []model.InvoiceItem, dueDate *time.Time, notes string) (*model.Invoice, error)
	Get(ctx context.Context, userID, id string) (*model.Invoice, error)
	List(ctx context.Context, userID string) ([]model.Invoice, error)
	// Send transitions a draft invoice to sent: renders the UBL document,
	// stores it and publishes an invoice.sent event for Peppol delivery.
	// It is gated on the peppol_invoicing feature; starter users get a
	// FeatureNotAvailableError before anything is rendered or stored.
	Send(ctx context.Context, userID, id string) (*model.Invoice, error)
	MarkPaid(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}

type invoiceService struct {
	catalog     *plan.Catalog
	invoiceRepo repository.InvoiceRepository
	accountRepo repository.AccountRepository
	productRepo repository.ProductRepository
	usageRepo   repository.UsageRepository
	userRepo    repository.UserRepository
	planSvc     PlanService
	docs        storage.DocumentStore
	publisher   pubsub.Publisher
	deliveries  peppol.QueueSender
	logger      zerolog.Logger
}

func NewInvoiceService(
	catalog *plan.Catalog,
	invoiceRepo repository.InvoiceRepository,
	accountRepo repository.AccountRepository,
	productRepo repository.ProductRepository,
	usageRepo repository.UsageRepository,
	userRepo repository.UserRepository,
	planSvc PlanService,
	docs storage.DocumentStore,
	publisher pubsub.Publisher,
	deliveries peppol.QueueSender,
	logger zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		catalog:     catalog,
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		productRepo: productRepo,
		usageRepo:   usageRepo,
		userRepo:    userRepo,
		planSvc:     planSvc,
		docs:        docs,
		publisher:   publisher,
		deliveries:  deliveries,
		logger:      logger.With().Str("service", "InvoiceService").Logger(),
	}
}

func (s *invoiceService) Create(ctx context.Context, userID, accountID string, contactID *string, items []model.InvoiceItem, dueDate *time.Time, notes string) (*model.Invoice, error) {
	if len(items) == 0 {
		return nil, ErrInvoiceNoItems
	}

	p, err := s.planSvc.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.usageRepo.Count(ctx, userID, plan.ResourceInvoicesThisMonth)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CheckQuota(p, plan.ResourceInvoicesThisMonth, count); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	var subtotal, taxAmount float64
	for i := range items {
		product, err := s.productRepo.GetByID(ctx, userID, items[i].ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrUnknownProductRef
		}
		items[i].UnitPrice = product.Price
		if items[i].Description == "" {
			items[i].Description = product.Name
		}
		line := items[i].Quantity * product.Price
		subtotal += line
		taxAmount += line * product.TaxRate / 100
	}

	now := time.Now().UTC()
	inv := &model.Invoice{
		ID:            uuid.NewString(),
		UserID:        userID,
		InvoiceNumber: newInvoiceNumber(now),
		AccountID:     accountID,
		ContactID:     contactID,
		Items:         items,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		TotalAmount:   subtotal + taxAmount,
		Currency:      "EUR",
		IssueDate:     now,
		DueDate:       dueDate,
		Status:        model.InvoiceDraft,
		InvoiceType:   "standard",
		PeppolStatus:  model.PeppolPending,
		Notes:         notes,
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create invoice")
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, userID, id string) (*model.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, userID, id)
}

func (s *invoiceService) List(ctx context.Context, userID string) ([]model.Invoice, error) {
	return s.invoiceRepo.ListByUser(ctx, userID)
}

func (s *invoiceService) Send(ctx context.Context, userID, id string) (*model.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	if inv.Status != model.InvoiceDraft {
		return nil, ErrInvoiceNotDraft
	}

	// Document export over Peppol is a paid feature; the gate fires before
	// anything is rendered or stored.
	p, err := s.planSvc.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CheckFeature(p, plan.FeaturePeppolInvoicing); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, userID, inv.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	supplier := peppol.Supplier{}
	if user != nil {
		supplier.Name = user.Name
	}

	doc, err := peppol.RenderUBL(inv, supplier,
		peppol.Customer{Name: account.Name, Street: account.Address, VATNumber: account.VATNumber})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s.xml", userID, inv.InvoiceNumber)
	url, err := s.docs.Put(ctx, key, "application/xml", doc)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice_id", inv.ID).Msg("Failed to store invoice document")
		return nil, err
	}
	if err := s.invoiceRepo.SetDocumentURL(ctx, inv.ID, url); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, userID, inv.ID, model.InvoiceSent); err != nil {
		return nil, err
	}
	inv.DocumentURL = url
	inv.Status = model.InvoiceSent

	job := peppol.DeliveryJob{InvoiceID: inv.ID, UserID: userID, DocumentURL: url}
	if err := peppol.EnqueueDelivery(ctx, s.deliveries, job); err != nil {
		// peppol_status stays pending so the stuck delivery is visible.
		s.logger.Error().Err(err).Str("invoice_id", inv.ID).Msg("Failed to enqueue Peppol delivery")
	}

	event := pubsub.InvoiceEvent{
		Type:          pubsub.EventInvoiceSent,
		InvoiceID:     inv.ID,
		UserID:        userID,
		InvoiceNumber: inv.InvoiceNumber,
		DocumentURL:   url,
		OccurredAt:    time.Now().UTC(),
	}
	if _, err := s.publisher.PublishInvoiceEvent(ctx, event); err != nil {
		// The invoice itself is already sent and stored; external consumers
		// simply miss this event.
		s.logger.Error().Err(err).Str("invoice_id", inv.ID).Msg("Failed to publish invoice.sent event")
	}
	return inv, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, userID, id string) error {
	return s.invoiceRepo.UpdateStatus(ctx, userID, id, model.InvoicePaid)
}

func (s *invoiceService) Delete(ctx context.Context, userID, id string) error {
	return s.invoiceRepo.Delete(ctx, userID, id)
}

// newInvoiceNumber generates a unique, roughly chronological invoice
// number such as INV-20260828-1A2B3C.
func newInvoiceNumber(now time.Time) string {
	suffix := uuid.NewString()[:6]
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}
