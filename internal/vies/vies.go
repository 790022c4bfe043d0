// Package vies validates EU VAT identifiers: local format and check-digit
// rules first, then a lookup against the EU VIES registry, with the
// returned free-text address decomposed into structured fields.
package vies

import (
	"context"

	"github.com/rs/zerolog"
)

// Result is the outcome of a VAT validation. It is ephemeral: constructed
// per request and never persisted here. Malformed input, non-EU country
// codes and an unreachable registry all yield Valid=false rather than an
// error.
type Result struct {
	Valid       bool   `json:"valid"`
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	Street      string `json:"street,omitempty"`
	StreetNr    string `json:"street_nr,omitempty"`
	Box         string `json:"box,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	RequestDate string `json:"request_date,omitempty"`
}

// Validator runs the full validation pipeline.
type Validator struct {
	registry Registry
	parser   AddressParser
	logger   zerolog.Logger
}

func NewValidator(registry Registry, parser AddressParser, logger zerolog.Logger) *Validator {
	return &Validator{
		registry: registry,
		parser:   parser,
		logger:   logger.With().Str("service", "VatValidator").Logger(),
	}
}

// Validate normalizes and validates raw. Structurally invalid identifiers
// are rejected locally; no registry call is made for them.
func (v *Validator) Validate(ctx context.Context, raw string) Result {
	vat := Normalize(raw)
	if !ValidFormat(vat) {
		v.logger.Debug().Str("vat", vat).Msg("VAT identifier failed format validation")
		return Result{Valid: false}
	}

	countryCode, number := vat[:2], vat[2:]
	resp, err := v.registry.CheckVat(ctx, countryCode, number)
	if err != nil {
		// Fail-soft: an unreachable registry must not block the caller.
		v.logger.Warn().Err(err).Str("country_code", countryCode).Msg("VIES lookup failed, returning invalid")
		return Result{Valid: false}
	}

	result := Result{
		Valid:       resp.Valid,
		Name:        resp.Name,
		Address:     resp.Address,
		Country:     CountryName(countryCode),
		CountryCode: countryCode,
		RequestDate: resp.RequestDate,
	}
	if resp.Valid && resp.Address != "" {
		addr := v.parser.Parse(resp.Address)
		result.Street = addr.Street
		result.StreetNr = addr.StreetNr
		result.Box = addr.Box
		result.PostalCode = addr.PostalCode
		result.City = addr.City
	}
	return result
}
