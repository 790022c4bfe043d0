package model

import "time"

// User represents a registered tenant owner. CurrentPlan is a denormalized
// copy of the newest active subscription's plan id, kept for fast lookup;
// the subscription history remains the source of truth.
type User struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	Picture          string    `db:"picture" json:"picture,omitempty"`
	CurrentPlan      string    `db:"current_plan" json:"current_plan"`
	StripeCustomerID *string   `db:"stripe_customer_id" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
