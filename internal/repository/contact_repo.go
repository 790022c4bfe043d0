package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, userID, id string) (*model.Contact, error)
	ListByUser(ctx context.Context, userID string) ([]model.Contact, error)
	Update(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, userID, id string) error
}

type contactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) ContactRepository {
	return &contactRepo{db: db}
}

const contactColumns = `id, user_id, name, email, phone, company, position, address, notes, created_at, updated_at`

func scanContact(row *sql.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Position, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) Create(ctx context.Context, c *model.Contact) error {
	query := `INSERT INTO contacts (id, user_id, name, email, phone, company, position, address, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Company, c.Position, c.Address, c.Notes).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting contact for user %s: %w", c.UserID, err)
	}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`
	return scanContact(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *contactRepo) ListByUser(ctx context.Context, userID string) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts for user %s: %w", userID, err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Position, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepo) Update(ctx context.Context, c *model.Contact) error {
	query := `UPDATE contacts
              SET name = $3, email = $4, phone = $5, company = $6, position = $7, address = $8, notes = $9, updated_at = NOW()
              WHERE id = $1 AND user_id = $2
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Company, c.Position, c.Address, c.Notes).
		Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("updating contact %s: %w", c.ID, err)
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting contact %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
