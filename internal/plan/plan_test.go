package plan

import (
	"errors"
	"testing"
)

func TestCatalogGet(t *testing.T) {
	c := NewCatalog()

	for _, id := range []ID{Starter, Professional, Enterprise} {
		p, err := c.Get(id)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", id, err)
		}
		if p.ID != id {
			t.Fatalf("Get(%q) returned plan %q", id, p.ID)
		}
	}

	if _, err := c.Get("not_a_real_plan"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestCatalogListOrder(t *testing.T) {
	c := NewCatalog()
	plans := c.List()
	want := []ID{Starter, Professional, Enterprise}
	if len(plans) != len(want) {
		t.Fatalf("expected %d plans, got %d", len(want), len(plans))
	}
	for i, id := range want {
		if plans[i].ID != id {
			t.Fatalf("plan %d: expected %q, got %q", i, id, plans[i].ID)
		}
	}
}

func TestStarterQuotaValues(t *testing.T) {
	c := NewCatalog()
	p, _ := c.Get(Starter)
	if p.Limits.ContactsMax != 5 {
		t.Fatalf("starter contacts_max = %d, want 5", p.Limits.ContactsMax)
	}
	if p.Limits.AccountsMax != 2 {
		t.Fatalf("starter accounts_max = %d, want 2", p.Limits.AccountsMax)
	}
	if p.Limits.InvoicesPerMonth != 10 {
		t.Fatalf("starter invoices_per_month = %d, want 10", p.Limits.InvoicesPerMonth)
	}
}

func TestUnlimitedQuotasAlwaysAdmit(t *testing.T) {
	c := NewCatalog()
	kinds := []ResourceKind{ResourceContacts, ResourceAccounts, ResourceInvoicesThisMonth}
	for _, id := range []ID{Professional, Enterprise} {
		p, _ := c.Get(id)
		for _, kind := range kinds {
			for _, n := range []int{0, 1, 5, 1000, 1 << 20} {
				if !Admit(p, kind, n) {
					t.Fatalf("%s should admit %s at count %d", id, kind, n)
				}
			}
		}
	}
}

func TestStarterQuotaBoundaries(t *testing.T) {
	c := NewCatalog()
	p, _ := c.Get(Starter)

	tests := []struct {
		kind  ResourceKind
		count int
		want  bool
	}{
		{ResourceContacts, 0, true},
		{ResourceContacts, 4, true},
		{ResourceContacts, 5, false},
		{ResourceContacts, 6, false},
		{ResourceAccounts, 1, true},
		{ResourceAccounts, 2, false},
		{ResourceInvoicesThisMonth, 9, true},
		{ResourceInvoicesThisMonth, 10, false},
	}
	for _, tt := range tests {
		if got := Admit(p, tt.kind, tt.count); got != tt.want {
			t.Fatalf("Admit(starter, %s, %d) = %v, want %v", tt.kind, tt.count, got, tt.want)
		}
	}
}

func TestUnknownResourceKindDenied(t *testing.T) {
	c := NewCatalog()
	p, _ := c.Get(Enterprise)
	if Admit(p, "widgets", 0) {
		t.Fatal("unknown resource kind must be denied")
	}
}

func TestFeatureGate(t *testing.T) {
	c := NewCatalog()
	starter, _ := c.Get(Starter)
	pro, _ := c.Get(Professional)
	ent, _ := c.Get(Enterprise)

	if HasFeature(starter, FeatureVIESIntegration) {
		t.Fatal("starter must not have vies_integration")
	}
	if !HasFeature(pro, FeatureVIESIntegration) {
		t.Fatal("professional must have vies_integration")
	}
	if HasFeature(pro, FeatureCustomFields) {
		t.Fatal("professional must not have custom_fields")
	}
	if !HasFeature(ent, FeatureCustomFields) {
		t.Fatal("enterprise must have custom_fields")
	}
	if HasFeature(ent, "made_up_feature") {
		t.Fatal("unknown feature names must fail closed")
	}
}

func TestCheckQuotaError(t *testing.T) {
	c := NewCatalog()
	starter, _ := c.Get(Starter)

	err := c.CheckQuota(starter, ResourceContacts, 5)
	if err == nil {
		t.Fatal("expected quota error at the starter contact limit")
	}
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QuotaExceededError, got %T", err)
	}
	if qe.CurrentCount != 5 || qe.MaxAllowed != 5 || qe.PlanID != Starter {
		t.Fatalf("unexpected error fields: %+v", qe)
	}
	msg := qe.Error()
	if msg != "Starter plan allows maximum 5 contacts. Upgrade to Professional for unlimited contacts." {
		t.Fatalf("unexpected message: %q", msg)
	}

	if err := c.CheckQuota(starter, ResourceContacts, 4); err != nil {
		t.Fatalf("expected admission below the limit, got %v", err)
	}
}

func TestCheckFeatureError(t *testing.T) {
	c := NewCatalog()
	starter, _ := c.Get(Starter)

	err := c.CheckFeature(starter, FeatureVIESIntegration)
	var fe *FeatureNotAvailableError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FeatureNotAvailableError, got %T", err)
	}
	if fe.UpgradeTo != "Professional" {
		t.Fatalf("expected upgrade prompt to Professional, got %q", fe.UpgradeTo)
	}
	msg := fe.Error()
	if msg != "VIES VAT validation is not available on the Starter plan. Upgrade to Professional to unlock it." {
		t.Fatalf("unexpected message: %q", msg)
	}

	err = c.CheckFeature(starter, FeatureCustomFields)
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FeatureNotAvailableError, got %T", err)
	}
	if fe.UpgradeTo != "Enterprise" {
		t.Fatalf("custom_fields should prompt Enterprise, got %q", fe.UpgradeTo)
	}
}
