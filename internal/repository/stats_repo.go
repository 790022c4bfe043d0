package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

type StatsRepository interface {
	GetDashboardStats(ctx context.Context, userID string) (*model.DashboardStats, error)
}

type statsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetDashboardStats(ctx context.Context, userID string) (*model.DashboardStats, error) {
	query := `SELECT
                (SELECT COUNT(*) FROM contacts WHERE user_id = $1),
                (SELECT COUNT(*) FROM accounts WHERE user_id = $1),
                (SELECT COUNT(*) FROM invoices WHERE user_id = $1),
                (SELECT COUNT(*) FROM invoices WHERE user_id = $1 AND status NOT IN ('paid', 'cancelled')),
                (SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE user_id = $1 AND status = 'paid'),
                (SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE user_id = $1 AND status NOT IN ('paid', 'cancelled'))`
	var s model.DashboardStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.TotalContacts, &s.TotalAccounts, &s.TotalInvoices, &s.OpenInvoices,
		&s.PaidRevenue, &s.OutstandingRevenue)
	if err != nil {
		return nil, fmt.Errorf("fetching dashboard stats for user %s: %w", userID, err)
	}
	return &s, nil
}
