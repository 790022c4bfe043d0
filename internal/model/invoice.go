package model

import "time"

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// Peppol delivery statuses.
const (
	PeppolPending   = "pending"
	PeppolSent      = "sent"
	PeppolDelivered = "delivered"
	PeppolFailed    = "failed"
)

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ProductID   string  `db:"product_id" json:"product_id"`
	Quantity    float64 `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Description string  `db:"description" json:"description,omitempty"`
}

// Invoice is a billing document addressed to an account. DocumentURL
// points at the exported UBL document in object storage once rendered.
type Invoice struct {
	ID              string        `db:"id" json:"id"`
	UserID          string        `db:"user_id" json:"user_id"`
	InvoiceNumber   string        `db:"invoice_number" json:"invoice_number"`
	AccountID       string        `db:"account_id" json:"account_id"`
	ContactID       *string       `db:"contact_id" json:"contact_id,omitempty"`
	Items           []InvoiceItem `json:"items"`
	Subtotal        float64       `db:"subtotal" json:"subtotal"`
	TaxAmount       float64       `db:"tax_amount" json:"tax_amount"`
	TotalAmount     float64       `db:"total_amount" json:"total_amount"`
	Currency        string        `db:"currency" json:"currency"`
	IssueDate       time.Time     `db:"issue_date" json:"issue_date"`
	DueDate         *time.Time    `db:"due_date" json:"due_date,omitempty"`
	Status          string        `db:"status" json:"status"`
	InvoiceType     string        `db:"invoice_type" json:"invoice_type"`
	PeppolStatus    string        `db:"peppol_status" json:"peppol_status,omitempty"`
	PeppolMessageID string        `db:"peppol_message_id" json:"peppol_message_id,omitempty"`
	DocumentURL     string        `db:"document_url" json:"document_url,omitempty"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}
