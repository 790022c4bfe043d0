package service

import (
	"context"

	"app/internal/model"
	"app/internal/plan"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ContactService interface {
	// Create admits the contact only if the user's plan quota allows one
	// more; the denial carries the upgrade prompt.
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)
	Get(ctx context.Context, userID, id string) (*model.Contact, error)
	List(ctx context.Context, userID string) ([]model.Contact, error)
	Update(ctx context.Context, c *model.Contact) (*model.Contact, error)
	Delete(ctx context.Context, userID, id string) error
}

type contactService struct {
	catalog     *plan.Catalog
	contactRepo repository.ContactRepository
	usageRepo   repository.UsageRepository
	planSvc     PlanService
	logger      zerolog.Logger
}

func NewContactService(catalog *plan.Catalog, contactRepo repository.ContactRepository, usageRepo repository.UsageRepository, planSvc PlanService, logger zerolog.Logger) ContactService {
	return &contactService{
		catalog:     catalog,
		contactRepo: contactRepo,
		usageRepo:   usageRepo,
		planSvc:     planSvc,
		logger:      logger.With().Str("service", "ContactService").Logger(),
	}
}

func (s *contactService) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	p, err := s.planSvc.CurrentPlan(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	count, err := s.usageRepo.Count(ctx, c.UserID, plan.ResourceContacts)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CheckQuota(p, plan.ResourceContacts, count); err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	if err := s.contactRepo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to create contact")
		return nil, err
	}
	return c, nil
}

func (s *contactService) Get(ctx context.Context, userID, id string) (*model.Contact, error) {
	return s.contactRepo.GetByID(ctx, userID, id)
}

func (s *contactService) List(ctx context.Context, userID string) ([]model.Contact, error) {
	return s.contactRepo.ListByUser(ctx, userID)
}

func (s *contactService) Update(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	if err := s.contactRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, userID, id string) error {
	return s.contactRepo.Delete(ctx, userID, id)
}
