package model

import "time"

// Subscription statuses. Only "active" is written by plan selection;
// "cancelled" and "expired" are driven by payment webhook events.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// UserSubscription is one entry in a user's append-only plan history.
// Changing plan appends a new active record; prior records are never
// mutated or deleted. The user's current plan is the most recently
// created active record.
type UserSubscription struct {
	ID                   string     `db:"id" json:"id"`
	UserID               string     `db:"user_id" json:"user_id"`
	PlanID               string     `db:"plan_id" json:"plan_id"`
	Status               string     `db:"status" json:"status"`
	StripeSubscriptionID *string    `db:"stripe_subscription_id" json:"stripe_subscription_id,omitempty"`
	StartedAt            time.Time  `db:"started_at" json:"started_at"`
	ExpiresAt            *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}
