package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/model"
	"app/internal/plan"
	"app/internal/vies"

	"github.com/rs/zerolog"
)

const checkVatValidResponse = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <countryCode>BE</countryCode>
      <vatNumber>0417497106</vatNumber>
      <requestDate>2026-08-28+02:00</requestDate>
      <valid>true</valid>
      <name>ANHEUSER-BUSCH INBEV</name>
      <address>Brouwerijplein 1
3000 Leuven</address>
    </checkVatResponse>
  </soap:Body>
</soap:Envelope>`

func newTestAccountService(subRepo *fakeSubscriptionRepo, registryURL string) (AccountService, *fakeAccountRepo) {
	catalog := plan.NewCatalog()
	accounts := &fakeAccountRepo{}
	usage := &fakeUsageRepo{}
	planSvc := NewPlanService(catalog, subRepo, newFakeUserRepo(), usage, zerolog.Nop())
	client := vies.NewClient(registryURL, 0, zerolog.Nop())
	validator := vies.NewValidator(client, vies.NewHeuristicParser(), zerolog.Nop())
	return NewAccountService(catalog, accounts, usage, planSvc, validator, zerolog.Nop()), accounts
}

func TestViesLookupDeniedOnStarter(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	svc, _ := newTestAccountService(&fakeSubscriptionRepo{}, srv.URL)

	_, err := svc.ViesLookup(context.Background(), "user-1", "BE0417497106")
	var featureErr *plan.FeatureNotAvailableError
	if !errors.As(err, &featureErr) {
		t.Fatalf("expected FeatureNotAvailableError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Professional") || !strings.Contains(err.Error(), "Upgrade") {
		t.Fatalf("denial must carry upgrade prompt, got %q", err.Error())
	}
	// The gate fires before the registry is contacted.
	if requests != 0 {
		t.Fatalf("starter denial must not reach the registry, got %d requests", requests)
	}
}

func TestViesLookupOnProfessional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.Write([]byte(checkVatValidResponse))
	}))
	defer srv.Close()

	subRepo := &fakeSubscriptionRepo{}
	subRepo.subs = append(subRepo.subs, model.UserSubscription{
		UserID: "user-1", PlanID: string(plan.Professional), Status: model.SubscriptionActive,
	})
	svc, _ := newTestAccountService(subRepo, srv.URL)

	result, err := svc.ViesLookup(context.Background(), "user-1", "BE 0417.497.106")
	if err != nil {
		t.Fatalf("ViesLookup returned error: %v", err)
	}
	if !result.Valid {
		t.Fatal("expected valid result")
	}
	if result.Country != "Belgium" || result.PostalCode != "3000" || result.City != "Leuven" {
		t.Fatalf("unexpected decomposition: %+v", result)
	}
}

func TestCreateAccountAtQuotaDenied(t *testing.T) {
	catalog := plan.NewCatalog()
	accounts := &fakeAccountRepo{}
	usage := &fakeUsageRepo{counts: map[plan.ResourceKind]int{plan.ResourceAccounts: 2}}
	planSvc := NewPlanService(catalog, &fakeSubscriptionRepo{}, newFakeUserRepo(), usage, zerolog.Nop())
	svc := NewAccountService(catalog, accounts, usage, planSvc, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), &model.Account{UserID: "user-1", Name: "Acme BV"})
	var quotaErr *plan.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if quotaErr.MaxAllowed != 2 {
		t.Fatalf("unexpected max allowed: %d", quotaErr.MaxAllowed)
	}
	if len(accounts.accounts) != 0 {
		t.Fatal("denied create must not store an account")
	}
}
