package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"app/internal/plan"
)

// UsageRepository counts the resources that plan quotas are enforced
// against. Counts are always read fresh from the tables; nothing is
// cached, so a quota check sees every committed create and delete.
type UsageRepository interface {
	Count(ctx context.Context, userID string, kind plan.ResourceKind) (int, error)
}

type usageRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUsageRepo(db *sql.DB) UsageRepository {
	return &usageRepo{db: db, now: time.Now}
}

func (r *usageRepo) Count(ctx context.Context, userID string, kind plan.ResourceKind) (int, error) {
	var (
		query string
		args  []any
	)
	switch kind {
	case plan.ResourceContacts:
		query = `SELECT COUNT(*) FROM contacts WHERE user_id = $1`
		args = []any{userID}
	case plan.ResourceAccounts:
		query = `SELECT COUNT(*) FROM accounts WHERE user_id = $1`
		args = []any{userID}
	case plan.ResourceInvoicesThisMonth:
		query = `SELECT COUNT(*) FROM invoices WHERE user_id = $1 AND created_at >= $2`
		args = []any{userID, monthStartUTC(r.now())}
	default:
		return 0, fmt.Errorf("unknown resource kind %q", kind)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s for user %s: %w", kind, userID, err)
	}
	return count, nil
}

// monthStartUTC returns midnight UTC on the first day of the month that
// contains t. The monthly invoice window resets here regardless of the
// user's local timezone.
func monthStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
