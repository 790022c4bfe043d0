package vies

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const checkVatResponseBody = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <countryCode>BE</countryCode>
      <vatNumber>0417497106</vatNumber>
      <requestDate>2025-06-01+02:00</requestDate>
      <valid>true</valid>
      <name>ANHEUSER-BUSCH INBEV</name>
      <address>Brouwerijplein 1
3000 Leuven</address>
    </checkVatResponse>
  </soap:Body>
</soap:Envelope>`

func newTestValidator(registry Registry) *Validator {
	return NewValidator(registry, NewHeuristicParser(), zerolog.Nop())
}

func TestValidateAgainstRegistry(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		fmt.Fprint(w, checkVatResponseBody)
	}))
	defer srv.Close()

	v := newTestValidator(NewClient(srv.URL, 10*time.Second, zerolog.Nop()))

	res := v.Validate(context.Background(), "be-0417-497-106")
	if !res.Valid {
		t.Fatal("expected valid result")
	}
	if res.CountryCode != "BE" || res.Country != "Belgium" {
		t.Fatalf("unexpected country fields: %+v", res)
	}
	if res.Name != "ANHEUSER-BUSCH INBEV" {
		t.Fatalf("unexpected name: %q", res.Name)
	}
	if res.Street != "Brouwerijplein" || res.StreetNr != "1" || res.PostalCode != "3000" || res.City != "Leuven" {
		t.Fatalf("unexpected address decomposition: %+v", res)
	}
	if requests != 1 {
		t.Fatalf("expected exactly one registry call, got %d", requests)
	}
}

func TestValidateInvalidFormatSkipsRegistry(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	v := newTestValidator(NewClient(srv.URL, 10*time.Second, zerolog.Nop()))

	for _, raw := range []string{"INVALID123", "BE0417497107", ""} {
		res := v.Validate(context.Background(), raw)
		if res.Valid {
			t.Fatalf("Validate(%q) should be invalid", raw)
		}
	}
	if requests != 0 {
		t.Fatalf("format failures must not reach the registry, got %d calls", requests)
	}
}

func TestValidateRegistryUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	v := newTestValidator(NewClient(srv.URL, time.Second, zerolog.Nop()))

	res := v.Validate(context.Background(), "BE0417497106")
	if res.Valid {
		t.Fatal("unreachable registry must degrade to an invalid result")
	}
}

func TestValidateRegistryFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault><faultcode>soap:Server</faultcode><faultstring>MS_UNAVAILABLE</faultstring></soap:Fault>
  </soap:Body>
</soap:Envelope>`)
	}))
	defer srv.Close()

	v := newTestValidator(NewClient(srv.URL, time.Second, zerolog.Nop()))

	res := v.Validate(context.Background(), "BE0417497106")
	if res.Valid {
		t.Fatal("SOAP fault must degrade to an invalid result")
	}
}
