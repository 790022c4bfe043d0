package dto

import "time"

// CalendarEventCreateDTO is used for incoming create and update requests.
type CalendarEventCreateDTO struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	EventType       string    `json:"event_type"`
	RelatedID       *string   `json:"related_id"`
	RelatedType     string    `json:"related_type"`
	Location        string    `json:"location"`
	AllDay          bool      `json:"all_day"`
	ReminderMinutes int       `json:"reminder_minutes" validate:"gte=0"`
}
