package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/model"
	"app/internal/plan"

	"github.com/rs/zerolog"
)

func newTestPlanService(subRepo *fakeSubscriptionRepo, userRepo *fakeUserRepo, usage *fakeUsageRepo) PlanService {
	return NewPlanService(plan.NewCatalog(), subRepo, userRepo, usage, zerolog.Nop())
}

func TestCurrentPlanDefaultsToStarter(t *testing.T) {
	svc := newTestPlanService(&fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeUsageRepo{})

	p, err := svc.CurrentPlan(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CurrentPlan returned error: %v", err)
	}
	if p.ID != plan.Starter {
		t.Fatalf("expected starter plan for user without subscription, got %s", p.ID)
	}
}

func TestSelectPlanAppendsHistory(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	userRepo := newFakeUserRepo()
	userRepo.users["user-1"] = &model.User{ID: "user-1", CurrentPlan: string(plan.Starter)}
	svc := newTestPlanService(subRepo, userRepo, &fakeUsageRepo{})
	ctx := context.Background()

	if err := svc.SelectPlan(ctx, "user-1", plan.Professional); err != nil {
		t.Fatalf("SelectPlan(professional) returned error: %v", err)
	}
	if err := svc.SelectPlan(ctx, "user-1", plan.Enterprise); err != nil {
		t.Fatalf("SelectPlan(enterprise) returned error: %v", err)
	}

	// History is append-only: both selections remain.
	if len(subRepo.subs) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(subRepo.subs))
	}
	p, err := svc.CurrentPlan(ctx, "user-1")
	if err != nil {
		t.Fatalf("CurrentPlan returned error: %v", err)
	}
	if p.ID != plan.Enterprise {
		t.Fatalf("expected newest selection to win, got %s", p.ID)
	}
	if userRepo.users["user-1"].CurrentPlan != string(plan.Enterprise) {
		t.Fatalf("denormalized current plan not updated: %s", userRepo.users["user-1"].CurrentPlan)
	}
}

func TestSelectPlanUnknownPlanWritesNothing(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	svc := newTestPlanService(subRepo, newFakeUserRepo(), &fakeUsageRepo{})

	err := svc.SelectPlan(context.Background(), "user-1", plan.ID("platinum"))
	if !errors.Is(err, plan.ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
	if len(subRepo.subs) != 0 {
		t.Fatalf("unknown plan selection must not write history, got %d records", len(subRepo.subs))
	}
}

func TestStatusReportsLimitFlags(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{
		plan.ResourceContacts:          5,
		plan.ResourceAccounts:          1,
		plan.ResourceInvoicesThisMonth: 10,
	}}
	svc := newTestPlanService(subRepo, newFakeUserRepo(), usage)

	status, err := svc.Status(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.Plan.ID != plan.Starter {
		t.Fatalf("expected starter plan, got %s", status.Plan.ID)
	}
	if !status.ContactsLimitReached {
		t.Fatal("expected contacts limit reached at 5/5")
	}
	if status.AccountsLimitReached {
		t.Fatal("did not expect accounts limit reached at 1/2")
	}
	if !status.InvoicesLimitReached {
		t.Fatal("expected invoices limit reached at 10/10")
	}
	if status.Usage.Contacts != 5 || status.Usage.Accounts != 1 || status.Usage.InvoicesThisMonth != 10 {
		t.Fatalf("unexpected usage: %+v", status.Usage)
	}
}

func TestStatusUnlimitedPlanNeverReachesLimits(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	subRepo.subs = append(subRepo.subs, model.UserSubscription{
		UserID: "user-1", PlanID: string(plan.Professional), Status: model.SubscriptionActive,
	})
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{
		plan.ResourceContacts:          100000,
		plan.ResourceAccounts:          100000,
		plan.ResourceInvoicesThisMonth: 100000,
	}}
	svc := newTestPlanService(subRepo, newFakeUserRepo(), usage)

	status, err := svc.Status(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.ContactsLimitReached || status.AccountsLimitReached || status.InvoicesLimitReached {
		t.Fatalf("unlimited plan must never hit limits: %+v", status)
	}
}

func TestCurrentPlanUnknownStoredPlanFallsBack(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	subRepo.subs = append(subRepo.subs, model.UserSubscription{
		UserID: "user-1", PlanID: "legacy-gold", Status: model.SubscriptionActive,
	})
	svc := newTestPlanService(subRepo, newFakeUserRepo(), &fakeUsageRepo{})

	p, err := svc.CurrentPlan(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CurrentPlan returned error: %v", err)
	}
	if p.ID != plan.Starter {
		t.Fatalf("expected fallback to starter for unknown stored plan, got %s", p.ID)
	}
}
