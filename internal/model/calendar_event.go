package model

import "time"

// CalendarEvent is a scheduled item, optionally linked to a contact,
// account or invoice.
type CalendarEvent struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description,omitempty"`
	StartDate       time.Time `db:"start_date" json:"start_date"`
	EndDate         time.Time `db:"end_date" json:"end_date"`
	EventType       string    `db:"event_type" json:"event_type"`
	RelatedID       *string   `db:"related_id" json:"related_id,omitempty"`
	RelatedType     string    `db:"related_type" json:"related_type,omitempty"`
	Location        string    `db:"location" json:"location,omitempty"`
	AllDay          bool      `db:"all_day" json:"all_day"`
	ReminderMinutes int       `db:"reminder_minutes" json:"reminder_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
