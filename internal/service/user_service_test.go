package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/config"
	"app/internal/model"
	"app/internal/plan"

	"github.com/rs/zerolog"
)

func newTestUserService(userRepo *fakeUserRepo, subRepo *fakeSubscriptionRepo) UserService {
	cfg := &config.Config{JWTSecret: "test-secret", SessionTTLHours: 1}
	return NewUserService(cfg, userRepo, subRepo, zerolog.Nop())
}

func TestRegisterCreatesStarterSubscription(t *testing.T) {
	userRepo := newFakeUserRepo()
	subRepo := &fakeSubscriptionRepo{}
	svc := newTestUserService(userRepo, subRepo)

	u, token, err := svc.Register(context.Background(), "Jan Peeters", "jan@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if u.CurrentPlan != string(plan.Starter) {
		t.Fatalf("expected starter plan, got %s", u.CurrentPlan)
	}
	if u.PasswordHash == "s3cretpass" {
		t.Fatal("password must not be stored in plain text")
	}
	if len(subRepo.subs) != 1 || subRepo.subs[0].PlanID != string(plan.Starter) {
		t.Fatalf("expected one starter subscription record, got %+v", subRepo.subs)
	}
	if subRepo.subs[0].Status != model.SubscriptionActive {
		t.Fatalf("expected active subscription, got %s", subRepo.subs[0].Status)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeSubscriptionRepo{})
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Jan Peeters", "jan@example.com", "s3cretpass"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	_, _, err := svc.Register(ctx, "Other", "jan@example.com", "otherpass1")
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeSubscriptionRepo{})
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Jan Peeters", "jan@example.com", "s3cretpass"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, token, err := svc.Login(ctx, "jan@example.com", "s3cretpass"); err != nil || token == "" {
		t.Fatalf("expected successful login with token, got token=%q err=%v", token, err)
	}
	if _, _, err := svc.Login(ctx, "jan@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
