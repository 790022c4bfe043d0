package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"app/internal/config"
	"app/internal/model"
	"app/internal/plan"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	billingsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	customerpkg "github.com/stripe/stripe-go/v82/customer"
	subscriptionpkg "github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
)

var ErrPlanNotPurchasable = errors.New("plan cannot be purchased through checkout")

// StripeService handles paid plan checkout, the billing portal and
// webhook-driven plan transitions. The starter plan is free and never
// goes through Stripe.
type StripeService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	planSvc  PlanService
	logger   zerolog.Logger
}

// NewStripeService initializes the Stripe key and returns the service with
// a scoped logger.
func NewStripeService(cfg *config.Config, userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, planSvc PlanService, logger zerolog.Logger) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	lg := logger.With().Str("service", "StripeService").Logger()
	return &StripeService{cfg: cfg, userRepo: userRepo, subRepo: subRepo, planSvc: planSvc, logger: lg}
}

// priceForPlan maps a catalog plan to its Stripe price id.
func (s *StripeService) priceForPlan(id plan.ID) (string, error) {
	switch id {
	case plan.Professional:
		return s.cfg.StripePriceProfessional, nil
	case plan.Enterprise:
		return s.cfg.StripePriceEnterprise, nil
	default:
		return "", ErrPlanNotPurchasable
	}
}

// planForPrice is the inverse mapping, used by webhook handlers.
func (s *StripeService) planForPrice(priceID string) (plan.ID, error) {
	switch priceID {
	case s.cfg.StripePriceProfessional:
		return plan.Professional, nil
	case s.cfg.StripePriceEnterprise:
		return plan.Enterprise, nil
	default:
		return "", fmt.Errorf("no plan for stripe price %s", priceID)
	}
}

// getUserIDFromEvent resolves the user from webhook metadata, falling back
// to a customer id lookup.
func (s *StripeService) getUserIDFromEvent(ctx context.Context, metadata map[string]string, customerID string) (string, error) {
	if userID, ok := metadata["user_id"]; ok && userID != "" {
		return userID, nil
	}
	if customerID == "" {
		return "", errors.New("cannot determine user: missing metadata and customer id")
	}
	s.logger.Warn().Str("stripe_customer_id", customerID).Msg("Missing user_id metadata; looking up user by customer ID")
	u, err := s.userRepo.GetUserByStripeCustomerID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("failed to lookup user by Stripe customer ID: %w", err)
	}
	if u == nil {
		return "", fmt.Errorf("no user found for customer ID: %s", customerID)
	}
	return u.ID, nil
}

// GetOrCreateCustomer ensures a Stripe Customer exists for a user.
func (s *StripeService) GetOrCreateCustomer(ctx context.Context, user *model.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}
	params := &stripe.CustomerParams{
		Email:    stripe.String(user.Email),
		Name:     stripe.String(user.Name),
		Metadata: map[string]string{"user_id": user.ID},
	}
	cust, err := customerpkg.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create Stripe customer")
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	if err := s.userRepo.UpdateStripeCustomerID(ctx, user.ID, cust.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store stripe customer id")
		return "", fmt.Errorf("store stripe customer id: %w", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession creates a Stripe Checkout session for a paid plan.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID string, planID plan.ID) (string, error) {
	priceID, err := s.priceForPlan(planID)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user for checkout session")
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	customerID, err := s.GetOrCreateCustomer(ctx, user)
	if err != nil {
		return "", err
	}
	sessParams := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{{Price: stripe.String(priceID), Quantity: stripe.Int64(1)}},
		Mode:               stripe.String(stripe.CheckoutSessionModeSubscription),
		SuccessURL:         stripe.String(s.cfg.StripeReturnURL + "?status=success"),
		CancelURL:          stripe.String(s.cfg.StripeReturnURL + "?status=cancel"),
		Metadata:           map[string]string{"user_id": userID},
	}
	sess, err := checkoutsession.New(sessParams)
	if err != nil {
		s.logger.Error().Err(err).Str("plan_id", string(planID)).Msg("Failed to create Stripe checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// CreatePortalSession creates a Stripe Customer Portal session.
func (s *StripeService) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user for portal session")
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if user == nil || user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		return "", fmt.Errorf("no stripe customer for user: %s", userID)
	}
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(s.cfg.StripeReturnURL),
	}
	sess, err := billingsession.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create Stripe billing portal session")
		return "", fmt.Errorf("create billing portal session: %w", err)
	}
	return sess.URL, nil
}

// HandleWebhook processes Stripe webhook events and drives the plan
// history: a completed checkout or subscription update appends the mapped
// plan, a deleted subscription downgrades the user to starter.
func (s *StripeService) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read Stripe webhook payload")
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}
	sig := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}
	s.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook received")

	ctx := r.Context()
	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			s.logger.Error().Err(err).Msg("Invalid checkout.session data")
			http.Error(w, "invalid checkout.session data", http.StatusBadRequest)
			return
		}
		userID := cs.Metadata["user_id"]
		if userID == "" {
			s.logger.Error().Msg("Missing user_id in checkout session metadata")
			http.Error(w, "missing user_id in metadata", http.StatusBadRequest)
			return
		}
		planID, subID, err := s.resolveSubscription(cs.Subscription.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve plan from checkout session")
			http.Error(w, "failed to resolve subscription", http.StatusInternalServerError)
			return
		}
		if err := s.applyPlan(ctx, userID, planID, subID); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to apply plan on checkout.session.completed")
			http.Error(w, "failed to apply plan", http.StatusInternalServerError)
			return
		}
	case "customer.subscription.updated":
		var ss stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &ss); err != nil {
			s.logger.Error().Err(err).Msg("Invalid customer.subscription.updated payload")
			http.Error(w, "invalid subscription data", http.StatusBadRequest)
			return
		}
		userID, err := s.getUserIDFromEvent(ctx, ss.Metadata, ss.Customer.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("subscription_id", ss.ID).Msg("Failed to determine user from subscription")
			http.Error(w, "failed to identify user", http.StatusInternalServerError)
			return
		}
		if ss.CancelAtPeriodEnd || ss.Status == stripe.SubscriptionStatusCanceled {
			if err := s.subRepo.UpdateStatusByStripeID(ctx, ss.ID, model.SubscriptionCancelled); err != nil {
				s.logger.Error().Err(err).Str("subscription_id", ss.ID).Msg("Failed to mark subscription cancelled")
				http.Error(w, "failed to update subscription", http.StatusInternalServerError)
				return
			}
			break
		}
		if len(ss.Items.Data) == 0 || ss.Items.Data[0].Price == nil {
			http.Error(w, "subscription has no price", http.StatusBadRequest)
			return
		}
		planID, err := s.planForPrice(ss.Items.Data[0].Price.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("subscription_id", ss.ID).Msg("Unknown price on subscription update")
			http.Error(w, "unknown price", http.StatusBadRequest)
			return
		}
		if err := s.applyPlan(ctx, userID, planID, ss.ID); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to apply plan on customer.subscription.updated")
			http.Error(w, "failed to apply plan", http.StatusInternalServerError)
			return
		}
	case "customer.subscription.deleted":
		var ss stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &ss); err != nil {
			s.logger.Error().Err(err).Msg("Invalid customer.subscription.deleted payload")
			http.Error(w, "invalid subscription data", http.StatusBadRequest)
			return
		}
		userID, err := s.getUserIDFromEvent(ctx, ss.Metadata, ss.Customer.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("subscription_id", ss.ID).Msg("Failed to determine user from subscription")
			http.Error(w, "failed to identify user", http.StatusInternalServerError)
			return
		}
		if err := s.subRepo.UpdateStatusByStripeID(ctx, ss.ID, model.SubscriptionExpired); err != nil {
			s.logger.Error().Err(err).Str("subscription_id", ss.ID).Msg("Failed to expire subscription")
		}
		if err := s.planSvc.SelectPlan(ctx, userID, plan.Starter); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to downgrade user to starter")
			http.Error(w, "failed to downgrade", http.StatusInternalServerError)
			return
		}
	default:
		s.logger.Warn().Str("event_type", string(event.Type)).Msg("Unhandled Stripe webhook event")
	}
	w.WriteHeader(http.StatusOK)
}

// resolveSubscription fetches the Stripe subscription and maps its price
// to a catalog plan.
func (s *StripeService) resolveSubscription(subID string) (plan.ID, string, error) {
	subObj, err := subscriptionpkg.Get(subID, nil)
	if err != nil {
		return "", "", fmt.Errorf("fetch subscription %s: %w", subID, err)
	}
	if len(subObj.Items.Data) == 0 || subObj.Items.Data[0].Price == nil {
		return "", "", fmt.Errorf("subscription %s has no price", subID)
	}
	planID, err := s.planForPrice(subObj.Items.Data[0].Price.ID)
	if err != nil {
		return "", "", err
	}
	return planID, subID, nil
}

// applyPlan appends the plan to the user's history, tagged with the
// originating Stripe subscription.
func (s *StripeService) applyPlan(ctx context.Context, userID string, planID plan.ID, stripeSubID string) error {
	return s.planSvc.SelectPlanFromStripe(ctx, userID, planID, stripeSubID)
}
