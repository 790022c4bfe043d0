package service

import (
	"context"

	"app/internal/model"
	"app/internal/plan"
	"app/internal/repository"
	"app/internal/vies"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AccountService interface {
	Create(ctx context.Context, a *model.Account) (*model.Account, error)
	Get(ctx context.Context, userID, id string) (*model.Account, error)
	List(ctx context.Context, userID string) ([]model.Account, error)
	Update(ctx context.Context, a *model.Account) (*model.Account, error)
	Delete(ctx context.Context, userID, id string) error
	// ViesLookup validates a VAT identifier against the VIES registry. It
	// is gated on the vies_integration feature; starter users get a
	// FeatureNotAvailableError before any network call is made.
	ViesLookup(ctx context.Context, userID, vat string) (vies.Result, error)
}

type accountService struct {
	catalog     *plan.Catalog
	accountRepo repository.AccountRepository
	usageRepo   repository.UsageRepository
	planSvc     PlanService
	validator   *vies.Validator
	logger      zerolog.Logger
}

func NewAccountService(catalog *plan.Catalog, accountRepo repository.AccountRepository, usageRepo repository.UsageRepository, planSvc PlanService, validator *vies.Validator, logger zerolog.Logger) AccountService {
	return &accountService{
		catalog:     catalog,
		accountRepo: accountRepo,
		usageRepo:   usageRepo,
		planSvc:     planSvc,
		validator:   validator,
		logger:      logger.With().Str("service", "AccountService").Logger(),
	}
}

func (s *accountService) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	p, err := s.planSvc.CurrentPlan(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	count, err := s.usageRepo.Count(ctx, a.UserID, plan.ResourceAccounts)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.CheckQuota(p, plan.ResourceAccounts, count); err != nil {
		return nil, err
	}

	a.ID = uuid.NewString()
	if err := s.accountRepo.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("user_id", a.UserID).Msg("Failed to create account")
		return nil, err
	}
	return a, nil
}

func (s *accountService) Get(ctx context.Context, userID, id string) (*model.Account, error) {
	return s.accountRepo.GetByID(ctx, userID, id)
}

func (s *accountService) List(ctx context.Context, userID string) ([]model.Account, error) {
	return s.accountRepo.ListByUser(ctx, userID)
}

func (s *accountService) Update(ctx context.Context, a *model.Account) (*model.Account, error) {
	if err := s.accountRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *accountService) Delete(ctx context.Context, userID, id string) error {
	return s.accountRepo.Delete(ctx, userID, id)
}

func (s *accountService) ViesLookup(ctx context.Context, userID, vat string) (vies.Result, error) {
	p, err := s.planSvc.CurrentPlan(ctx, userID)
	if err != nil {
		return vies.Result{}, err
	}
	if err := s.catalog.CheckFeature(p, plan.FeatureVIESIntegration); err != nil {
		return vies.Result{}, err
	}
	return s.validator.Validate(ctx, vat), nil
}
