package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, userID, id string) (*model.Product, error)
	ListByUser(ctx context.Context, userID string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, userID, id string) error
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, user_id, name, description, price, currency, tax_rate, sku, category, active, created_at, updated_at`

func scanProduct(row *sql.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.TaxRate, &p.SKU, &p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (id, user_id, name, description, price, currency, tax_rate, sku, category, active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
              RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Price, p.Currency, p.TaxRate, p.SKU, p.Category, p.Active).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product for user %s: %w", p.UserID, err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, userID, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	return scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *productRepo) ListByUser(ctx context.Context, userID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing products for user %s: %w", userID, err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.TaxRate, &p.SKU, &p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products
              SET name = $3, description = $4, price = $5, currency = $6, tax_rate = $7, sku = $8, category = $9, active = $10, updated_at = NOW()
              WHERE id = $1 AND user_id = $2
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Price, p.Currency, p.TaxRate, p.SKU, p.Category, p.Active).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("updating product %s: %w", p.ID, err)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
