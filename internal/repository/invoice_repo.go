package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	GetByID(ctx context.Context, userID, id string) (*model.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]model.Invoice, error)
	UpdateStatus(ctx context.Context, userID, id, status string) error
	// SetDocumentURL records the object-storage location of the rendered
	// UBL document.
	SetDocumentURL(ctx context.Context, id, url string) error
	SetPeppolStatus(ctx context.Context, id, status, messageID string) error
	Delete(ctx context.Context, userID, id string) error
}

type invoiceRepo struct {
	db *sql.DB
}

func NewInvoiceRepo(db *sql.DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, user_id, invoice_number, account_id, contact_id, items, subtotal, tax_amount, total_amount, currency, issue_date, due_date, status, invoice_type, peppol_status, peppol_message_id, document_url, notes, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("encoding items for invoice %s: %w", inv.InvoiceNumber, err)
	}
	query := `INSERT INTO invoices (id, user_id, invoice_number, account_id, contact_id, items, subtotal, tax_amount, total_amount, currency, issue_date, due_date, status, invoice_type, peppol_status, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
              RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		inv.ID, inv.UserID, inv.InvoiceNumber, inv.AccountID, inv.ContactID, items,
		inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.Currency,
		inv.IssueDate, inv.DueDate, inv.Status, inv.InvoiceType, inv.PeppolStatus, inv.Notes).
		Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting invoice %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}

func scanInvoice(scan func(dest ...any) error) (*model.Invoice, error) {
	var (
		inv   model.Invoice
		items []byte
	)
	err := scan(&inv.ID, &inv.UserID, &inv.InvoiceNumber, &inv.AccountID, &inv.ContactID, &items,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.Currency,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.InvoiceType,
		&inv.PeppolStatus, &inv.PeppolMessageID, &inv.DocumentURL, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("decoding items for invoice %s: %w", inv.ID, err)
		}
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, userID, id string) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND user_id = $2`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID string) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices for user %s: %w", userID, err)
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	query := `UPDATE invoices SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID, status)
	if err != nil {
		return fmt.Errorf("updating status for invoice %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) SetDocumentURL(ctx context.Context, id, url string) error {
	query := `UPDATE invoices SET document_url = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, url); err != nil {
		return fmt.Errorf("setting document url for invoice %s: %w", id, err)
	}
	return nil
}

func (r *invoiceRepo) SetPeppolStatus(ctx context.Context, id, status, messageID string) error {
	query := `UPDATE invoices SET peppol_status = $2, peppol_message_id = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, messageID); err != nil {
		return fmt.Errorf("setting peppol status for invoice %s: %w", id, err)
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting invoice %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
