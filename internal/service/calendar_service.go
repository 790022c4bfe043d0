package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrEventEndsBeforeStart = errors.New("event end date is before its start date")

type CalendarService interface {
	Create(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error)
	Get(ctx context.Context, userID, id string) (*model.CalendarEvent, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]model.CalendarEvent, error)
	Update(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error)
	Delete(ctx context.Context, userID, id string) error
}

type calendarService struct {
	calendarRepo repository.CalendarRepository
	logger       zerolog.Logger
}

func NewCalendarService(calendarRepo repository.CalendarRepository, logger zerolog.Logger) CalendarService {
	return &calendarService{
		calendarRepo: calendarRepo,
		logger:       logger.With().Str("service", "CalendarService").Logger(),
	}
}

func (s *calendarService) Create(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error) {
	if e.EndDate.Before(e.StartDate) {
		return nil, ErrEventEndsBeforeStart
	}
	e.ID = uuid.NewString()
	if e.EventType == "" {
		e.EventType = "meeting"
	}
	if err := s.calendarRepo.Create(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("user_id", e.UserID).Msg("Failed to create calendar event")
		return nil, err
	}
	return e, nil
}

func (s *calendarService) Get(ctx context.Context, userID, id string) (*model.CalendarEvent, error) {
	return s.calendarRepo.GetByID(ctx, userID, id)
}

func (s *calendarService) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]model.CalendarEvent, error) {
	return s.calendarRepo.ListByUserInRange(ctx, userID, from, to)
}

func (s *calendarService) Update(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error) {
	if e.EndDate.Before(e.StartDate) {
		return nil, ErrEventEndsBeforeStart
	}
	if err := s.calendarRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *calendarService) Delete(ctx context.Context, userID, id string) error {
	return s.calendarRepo.Delete(ctx, userID, id)
}
