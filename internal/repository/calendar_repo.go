package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
)

type CalendarRepository interface {
	Create(ctx context.Context, e *model.CalendarEvent) error
	GetByID(ctx context.Context, userID, id string) (*model.CalendarEvent, error)
	// ListByUserInRange returns events overlapping [from, to), newest first.
	ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]model.CalendarEvent, error)
	Update(ctx context.Context, e *model.CalendarEvent) error
	Delete(ctx context.Context, userID, id string) error
}

type calendarRepo struct {
	db *sql.DB
}

func NewCalendarRepo(db *sql.DB) CalendarRepository {
	return &calendarRepo{db: db}
}

const eventColumns = `id, user_id, title, description, start_date, end_date, event_type, related_id, related_type, location, all_day, reminder_minutes, created_at, updated_at`

func scanEvent(scan func(dest ...any) error) (*model.CalendarEvent, error) {
	var e model.CalendarEvent
	err := scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.EventType, &e.RelatedID, &e.RelatedType, &e.Location, &e.AllDay, &e.ReminderMinutes,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *calendarRepo) Create(ctx context.Context, e *model.CalendarEvent) error {
	query := `INSERT INTO calendar_events (id, user_id, title, description, start_date, end_date, event_type, related_id, related_type, location, all_day, reminder_minutes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
              RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Description, e.StartDate, e.EndDate,
		e.EventType, e.RelatedID, e.RelatedType, e.Location, e.AllDay, e.ReminderMinutes).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting calendar event for user %s: %w", e.UserID, err)
	}
	return nil
}

func (r *calendarRepo) GetByID(ctx context.Context, userID, id string) (*model.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1 AND user_id = $2`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *calendarRepo) ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]model.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + `
              FROM calendar_events
              WHERE user_id = $1 AND start_date < $3 AND end_date >= $2
              ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing calendar events for user %s: %w", userID, err)
	}
	defer rows.Close()

	events := []model.CalendarEvent{}
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *calendarRepo) Update(ctx context.Context, e *model.CalendarEvent) error {
	query := `UPDATE calendar_events
              SET title = $3, description = $4, start_date = $5, end_date = $6, event_type = $7, related_id = $8, related_type = $9, location = $10, all_day = $11, reminder_minutes = $12, updated_at = NOW()
              WHERE id = $1 AND user_id = $2
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Description, e.StartDate, e.EndDate,
		e.EventType, e.RelatedID, e.RelatedType, e.Location, e.AllDay, e.ReminderMinutes).
		Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("updating calendar event %s: %w", e.ID, err)
	}
	return nil
}

func (r *calendarRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting calendar event %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
