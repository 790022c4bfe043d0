package service

import (
	"context"
	"time"

	"app/internal/model"
	"app/internal/plan"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Usage is the user's current consumption of each quota-gated resource.
type Usage struct {
	Contacts          int `json:"contacts"`
	Accounts          int `json:"accounts"`
	InvoicesThisMonth int `json:"invoices_this_month"`
}

// PlanStatus is the full picture of a user's plan: the plan itself, its
// limits, fresh usage counts and a per-resource "limit reached" verdict.
type PlanStatus struct {
	Plan                 plan.Plan   `json:"plan"`
	Limits               plan.Limits `json:"limits"`
	Usage                Usage       `json:"usage"`
	ContactsLimitReached bool        `json:"contacts_limit_reached"`
	AccountsLimitReached bool        `json:"accounts_limit_reached"`
	InvoicesLimitReached bool        `json:"invoices_limit_reached"`
}

// PlanService resolves users to plans and handles plan selection.
type PlanService interface {
	ListPlans(ctx context.Context) []plan.Plan
	// CurrentPlan resolves the user's plan from the newest active
	// subscription, falling back to Starter when there is none.
	CurrentPlan(ctx context.Context, userID string) (plan.Plan, error)
	// Status returns the plan together with live usage counts.
	Status(ctx context.Context, userID string) (*PlanStatus, error)
	// SelectPlan appends a new active subscription for the plan. Unknown
	// plan ids are rejected before any record is written.
	SelectPlan(ctx context.Context, userID string, planID plan.ID) error
	// SelectPlanFromStripe is SelectPlan with the originating Stripe
	// subscription recorded on the history entry.
	SelectPlanFromStripe(ctx context.Context, userID string, planID plan.ID, stripeSubscriptionID string) error
	History(ctx context.Context, userID string) ([]model.UserSubscription, error)
}

type planService struct {
	catalog   *plan.Catalog
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	usageRepo repository.UsageRepository
	logger    zerolog.Logger
}

func NewPlanService(catalog *plan.Catalog, subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, usageRepo repository.UsageRepository, logger zerolog.Logger) PlanService {
	return &planService{
		catalog:   catalog,
		subRepo:   subRepo,
		userRepo:  userRepo,
		usageRepo: usageRepo,
		logger:    logger.With().Str("service", "PlanService").Logger(),
	}
}

func (s *planService) ListPlans(ctx context.Context) []plan.Plan {
	return s.catalog.List()
}

func (s *planService) CurrentPlan(ctx context.Context, userID string) (plan.Plan, error) {
	sub, err := s.subRepo.GetCurrent(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch current subscription")
		return plan.Plan{}, err
	}
	if sub == nil {
		// Users without a subscription record are on the free tier.
		return s.catalog.Get(plan.Starter)
	}
	p, err := s.catalog.Get(plan.ID(sub.PlanID))
	if err != nil {
		// A stored plan id that is no longer in the catalog falls back to
		// Starter rather than locking the user out.
		s.logger.Warn().Str("user_id", userID).Str("plan_id", sub.PlanID).Msg("Subscription references unknown plan, falling back to starter")
		return s.catalog.Get(plan.Starter)
	}
	return p, nil
}

func (s *planService) Status(ctx context.Context, userID string) (*PlanStatus, error) {
	p, err := s.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	usage := Usage{}
	if usage.Contacts, err = s.usageRepo.Count(ctx, userID, plan.ResourceContacts); err != nil {
		return nil, err
	}
	if usage.Accounts, err = s.usageRepo.Count(ctx, userID, plan.ResourceAccounts); err != nil {
		return nil, err
	}
	if usage.InvoicesThisMonth, err = s.usageRepo.Count(ctx, userID, plan.ResourceInvoicesThisMonth); err != nil {
		return nil, err
	}

	return &PlanStatus{
		Plan:                 p,
		Limits:               p.Limits,
		Usage:                usage,
		ContactsLimitReached: !plan.Admit(p, plan.ResourceContacts, usage.Contacts),
		AccountsLimitReached: !plan.Admit(p, plan.ResourceAccounts, usage.Accounts),
		InvoicesLimitReached: !plan.Admit(p, plan.ResourceInvoicesThisMonth, usage.InvoicesThisMonth),
	}, nil
}

func (s *planService) SelectPlan(ctx context.Context, userID string, planID plan.ID) error {
	return s.selectPlan(ctx, userID, planID, nil)
}

func (s *planService) SelectPlanFromStripe(ctx context.Context, userID string, planID plan.ID, stripeSubscriptionID string) error {
	return s.selectPlan(ctx, userID, planID, &stripeSubscriptionID)
}

func (s *planService) selectPlan(ctx context.Context, userID string, planID plan.ID, stripeSubscriptionID *string) error {
	p, err := s.catalog.Get(planID)
	if err != nil {
		return err
	}

	sub := &model.UserSubscription{
		ID:                   uuid.NewString(),
		UserID:               userID,
		PlanID:               string(p.ID),
		Status:               model.SubscriptionActive,
		StripeSubscriptionID: stripeSubscriptionID,
		StartedAt:            time.Now().UTC(),
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("plan_id", string(planID)).Msg("Failed to record plan selection")
		return err
	}
	if err := s.userRepo.UpdateCurrentPlan(ctx, userID, string(p.ID)); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update denormalized current plan")
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("plan_id", string(p.ID)).Msg("Plan selected")
	return nil
}

func (s *planService) History(ctx context.Context, userID string) ([]model.UserSubscription, error) {
	return s.subRepo.ListByUser(ctx, userID)
}
