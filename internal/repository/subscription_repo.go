package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

// SubscriptionRepository stores the append-only plan history. Records are
// never updated in place by plan selection; a plan change inserts a new
// active row and the newest active row wins.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.UserSubscription) error
	// GetCurrent returns the most recently created active subscription for
	// the user, or nil when the user has none.
	GetCurrent(ctx context.Context, userID string) (*model.UserSubscription, error)
	// ListByUser returns the user's full subscription history, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.UserSubscription, error)
	// UpdateStatusByStripeID marks subscription rows for a Stripe
	// subscription, used by webhook-driven lifecycle transitions.
	UpdateStatusByStripeID(ctx context.Context, stripeSubscriptionID, status string) error
}

type subscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `id, user_id, plan_id, status, stripe_subscription_id, started_at, expires_at, created_at`

func (r *subscriptionRepo) Create(ctx context.Context, sub *model.UserSubscription) error {
	query := `INSERT INTO user_subscriptions (id, user_id, plan_id, status, stripe_subscription_id, started_at, expires_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.PlanID, sub.Status, sub.StripeSubscriptionID, sub.StartedAt, sub.ExpiresAt).
		Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting subscription for user %s: %w", sub.UserID, err)
	}
	return nil
}

func (r *subscriptionRepo) GetCurrent(ctx context.Context, userID string) (*model.UserSubscription, error) {
	query := `SELECT ` + subscriptionColumns + `
              FROM user_subscriptions
              WHERE user_id = $1 AND status = $2
              ORDER BY created_at DESC
              LIMIT 1`
	var sub model.UserSubscription
	err := r.db.QueryRowContext(ctx, query, userID, model.SubscriptionActive).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.StripeSubscriptionID,
		&sub.StartedAt, &sub.ExpiresAt, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching current subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID string) ([]model.UserSubscription, error) {
	query := `SELECT ` + subscriptionColumns + `
              FROM user_subscriptions
              WHERE user_id = $1
              ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	subs := []model.UserSubscription{}
	for rows.Next() {
		var sub model.UserSubscription
		if err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.StripeSubscriptionID,
			&sub.StartedAt, &sub.ExpiresAt, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *subscriptionRepo) UpdateStatusByStripeID(ctx context.Context, stripeSubscriptionID, status string) error {
	query := `UPDATE user_subscriptions SET status = $2 WHERE stripe_subscription_id = $1`
	if _, err := r.db.ExecContext(ctx, query, stripeSubscriptionID, status); err != nil {
		return fmt.Errorf("updating status for stripe subscription %s: %w", stripeSubscriptionID, err)
	}
	return nil
}
