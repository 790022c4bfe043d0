package service

import (
	"context"
	"errors"
	"time"

	"app/internal/config"
	"app/internal/model"
	"app/internal/plan"
	"app/internal/repository"
	"app/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

type UserService interface {
	// Register creates the user, their starter subscription and a session
	// token in one call.
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	logger   zerolog.Logger
}

func NewUserService(cfg *config.Config, userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, logger zerolog.Logger) UserService {
	return &userService{
		cfg:      cfg,
		userRepo: userRepo,
		subRepo:  subRepo,
		logger:   logger.With().Str("service", "UserService").Logger(),
	}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to check for existing user")
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyRegistered
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CurrentPlan:  string(plan.Starter),
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, "", err
	}

	sub := &model.UserSubscription{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		PlanID:    string(plan.Starter),
		Status:    model.SubscriptionActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to create starter subscription")
		return nil, "", err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info().Str("user_id", u.ID).Msg("User registered")
	return u, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to fetch user for login")
		return nil, "", err
	}
	if u == nil || !util.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) issueToken(u *model.User) (string, error) {
	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	token, err := util.GenerateJWT(u.ID, u.Email, s.cfg.JWTSecret, ttl)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("Failed to sign session token")
		return "", err
	}
	return token, nil
}
