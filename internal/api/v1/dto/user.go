package dto

import (
	"time"

	"app/internal/plan"
	"app/internal/service"
)

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Picture     string    `json:"picture,omitempty"`
	CurrentPlan string    `json:"current_plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SelectPlanDTO is the payload for switching plans.
type SelectPlanDTO struct {
	Plan string `json:"plan" validate:"required"`
}

// PlanStatusResponseDTO mirrors service.PlanStatus for the current-plan
// endpoint.
type PlanStatusResponseDTO struct {
	Plan                 plan.Plan     `json:"plan"`
	Limits               plan.Limits   `json:"limits"`
	Usage                service.Usage `json:"usage"`
	ContactsLimitReached bool          `json:"contacts_limit_reached"`
	AccountsLimitReached bool          `json:"accounts_limit_reached"`
	InvoicesLimitReached bool          `json:"invoices_limit_reached"`
}
