package model

import "time"

// Product is a billable item. The default tax rate is the Belgian
// standard VAT rate.
type Product struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Price       float64   `db:"price" json:"price"`
	Currency    string    `db:"currency" json:"currency"`
	TaxRate     float64   `db:"tax_rate" json:"tax_rate"`
	SKU         string    `db:"sku" json:"sku,omitempty"`
	Category    string    `db:"category" json:"category,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
