package dto

import "time"

// InvoiceItemDTO is one requested invoice line. Unit prices come from the
// product catalog, not the request.
type InvoiceItemDTO struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Description string  `json:"description"`
}

// InvoiceCreateDTO is the payload for creating a draft invoice.
type InvoiceCreateDTO struct {
	AccountID string           `json:"account_id" validate:"required"`
	ContactID *string          `json:"contact_id"`
	Items     []InvoiceItemDTO `json:"items" validate:"required,min=1,dive"`
	DueDate   *time.Time       `json:"due_date"`
	Notes     string           `json:"notes"`
}
