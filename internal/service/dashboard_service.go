package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

type DashboardService interface {
	Stats(ctx context.Context, userID string) (*model.DashboardStats, error)
}

type dashboardService struct {
	statsRepo repository.StatsRepository
	logger    zerolog.Logger
}

func NewDashboardService(statsRepo repository.StatsRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		statsRepo: statsRepo,
		logger:    logger.With().Str("service", "DashboardService").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context, userID string) (*model.DashboardStats, error) {
	stats, err := s.statsRepo.GetDashboardStats(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch dashboard stats")
		return nil, err
	}
	return stats, nil
}
