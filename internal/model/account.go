package model

import "time"

// Account is a CRM business account. VATNumber feeds Peppol invoicing and
// VIES enrichment.
type Account struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	ContactID     *string   `db:"contact_id" json:"contact_id,omitempty"`
	Industry      string    `db:"industry" json:"industry,omitempty"`
	Website       string    `db:"website" json:"website,omitempty"`
	AnnualRevenue *float64  `db:"annual_revenue" json:"annual_revenue,omitempty"`
	EmployeeCount *int      `db:"employee_count" json:"employee_count,omitempty"`
	Address       string    `db:"address" json:"address,omitempty"`
	VATNumber     string    `db:"vat_number" json:"vat_number,omitempty"`
	Notes         string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
