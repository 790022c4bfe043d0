package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"app/internal/model"
	"app/internal/plan"

	"github.com/rs/zerolog"
)

func newTestContactService(contacts *fakeContactRepo, usage *fakeUsageRepo, subRepo *fakeSubscriptionRepo) ContactService {
	catalog := plan.NewCatalog()
	planSvc := NewPlanService(catalog, subRepo, newFakeUserRepo(), usage, zerolog.Nop())
	return NewContactService(catalog, contacts, usage, planSvc, zerolog.Nop())
}

func TestCreateContactUnderQuota(t *testing.T) {
	contacts := &fakeContactRepo{}
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{plan.ResourceContacts: 4}}
	svc := newTestContactService(contacts, usage, &fakeSubscriptionRepo{})

	c, err := svc.Create(context.Background(), &model.Contact{UserID: "user-1", Name: "Jan Peeters"})
	if err != nil {
		t.Fatalf("Create at 4/5 should succeed, got %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected contact to get an id")
	}
	if len(contacts.contacts) != 1 {
		t.Fatalf("expected 1 stored contact, got %d", len(contacts.contacts))
	}
}

func TestCreateContactAtQuotaDenied(t *testing.T) {
	contacts := &fakeContactRepo{}
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{plan.ResourceContacts: 5}}
	svc := newTestContactService(contacts, usage, &fakeSubscriptionRepo{})

	_, err := svc.Create(context.Background(), &model.Contact{UserID: "user-1", Name: "Jan Peeters"})
	var quotaErr *plan.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if quotaErr.MaxAllowed != 5 || quotaErr.CurrentCount != 5 {
		t.Fatalf("unexpected quota details: %+v", quotaErr)
	}
	if !strings.Contains(err.Error(), "Upgrade to Professional") {
		t.Fatalf("denial must carry upgrade prompt, got %q", err.Error())
	}
	if len(contacts.contacts) != 0 {
		t.Fatal("denied create must not store a contact")
	}
}

func TestCreateContactUnlimitedOnProfessional(t *testing.T) {
	contacts := &fakeContactRepo{}
	subRepo := &fakeSubscriptionRepo{}
	subRepo.subs = append(subRepo.subs, model.UserSubscription{
		UserID: "user-1", PlanID: string(plan.Professional), Status: model.SubscriptionActive,
	})
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{plan.ResourceContacts: 100000}}
	svc := newTestContactService(contacts, usage, subRepo)

	if _, err := svc.Create(context.Background(), &model.Contact{UserID: "user-1", Name: "Jan Peeters"}); err != nil {
		t.Fatalf("professional plan create should never be quota-denied, got %v", err)
	}
}
