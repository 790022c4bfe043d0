package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) error
	GetByID(ctx context.Context, userID, id string) (*model.Account, error)
	ListByUser(ctx context.Context, userID string) ([]model.Account, error)
	Update(ctx context.Context, a *model.Account) error
	Delete(ctx context.Context, userID, id string) error
}

type accountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `id, user_id, name, contact_id, industry, website, annual_revenue, employee_count, address, vat_number, notes, created_at, updated_at`

func scanAccount(row *sql.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.ContactID, &a.Industry, &a.Website, &a.AnnualRevenue, &a.EmployeeCount, &a.Address, &a.VATNumber, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) Create(ctx context.Context, a *model.Account) error {
	query := `INSERT INTO accounts (id, user_id, name, contact_id, industry, website, annual_revenue, employee_count, address, vat_number, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.Name, a.ContactID, a.Industry, a.Website, a.AnnualRevenue, a.EmployeeCount, a.Address, a.VATNumber, a.Notes).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting account for user %s: %w", a.UserID, err)
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, userID, id string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	return scanAccount(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *accountRepo) ListByUser(ctx context.Context, userID string) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.ContactID, &a.Industry, &a.Website, &a.AnnualRevenue, &a.EmployeeCount, &a.Address, &a.VATNumber, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountRepo) Update(ctx context.Context, a *model.Account) error {
	query := `UPDATE accounts
              SET name = $3, contact_id = $4, industry = $5, website = $6, annual_revenue = $7, employee_count = $8, address = $9, vat_number = $10, notes = $11, updated_at = NOW()
              WHERE id = $1 AND user_id = $2
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.Name, a.ContactID, a.Industry, a.Website, a.AnnualRevenue, a.EmployeeCount, a.Address, a.VATNumber, a.Notes).
		Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("updating account %s: %w", a.ID, err)
	}
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting account %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
