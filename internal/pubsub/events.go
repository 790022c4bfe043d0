package pubsub

import "time"

// Invoice event types published to the invoice topic.
const (
	EventInvoiceSent   = "invoice.sent"
	EventInvoicePaid   = "invoice.paid"
	EventInvoiceFailed = "invoice.failed"
)

// InvoiceEvent is the message body for invoice lifecycle events, published
// for external consumers. Peppol delivery itself is driven by pgmq jobs,
// not by these events.
type InvoiceEvent struct {
	Type          string    `json:"type"`
	InvoiceID     string    `json:"invoice_id"`
	UserID        string    `json:"user_id"`
	InvoiceNumber string    `json:"invoice_number"`
	DocumentURL   string    `json:"document_url,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
