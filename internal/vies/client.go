package vies

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrRegistryUnavailable is returned when the VIES registry cannot be
// reached or does not answer within the timeout. Callers must treat it as
// a negative validation result, not a hard failure.
var ErrRegistryUnavailable = errors.New("vies registry unavailable")

// RegistryResponse is the decoded answer of a checkVat call.
type RegistryResponse struct {
	CountryCode string
	VatNumber   string
	RequestDate string
	Valid       bool
	Name        string
	Address     string
}

// Registry is the remote lookup consumed by the Validator.
type Registry interface {
	CheckVat(ctx context.Context, countryCode, vatNumber string) (*RegistryResponse, error)
}

// Client talks SOAP to the EU VIES checkVatService.
type Client struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewClient creates a registry client with a bounded request timeout. A
// single attempt is made per lookup; there is no retry.
func NewClient(endpoint string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("service", "ViesClient").Logger(),
	}
}

const checkVatEnvelope = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
  <soapenv:Body>
    <urn:checkVat>
      <urn:countryCode>%s</urn:countryCode>
      <urn:vatNumber>%s</urn:vatNumber>
    </urn:checkVat>
  </soapenv:Body>
</soapenv:Envelope>`

type checkVatResult struct {
	Body struct {
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"Fault"`
		CheckVatResponse struct {
			CountryCode string `xml:"countryCode"`
			VatNumber   string `xml:"vatNumber"`
			RequestDate string `xml:"requestDate"`
			Valid       bool   `xml:"valid"`
			Name        string `xml:"name"`
			Address     string `xml:"address"`
		} `xml:"checkVatResponse"`
	} `xml:"Body"`
}

// CheckVat performs one lookup against the registry. Inputs are expected
// to be normalized and format-validated already, so they are plain
// alphanumerics and safe to interpolate into the envelope.
func (c *Client) CheckVat(ctx context.Context, countryCode, vatNumber string) (*RegistryResponse, error) {
	body := fmt.Sprintf(checkVatEnvelope, countryCode, vatNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating checkVat request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("country_code", countryCode).Msg("VIES registry request failed")
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status_code", resp.StatusCode).Msg("VIES registry returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrRegistryUnavailable, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRegistryUnavailable, err)
	}

	var result checkVatResult
	if err := xml.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRegistryUnavailable, err)
	}
	if result.Body.Fault != nil {
		c.logger.Warn().Str("fault", result.Body.Fault.String).Msg("VIES registry returned SOAP fault")
		return nil, fmt.Errorf("%w: %s", ErrRegistryUnavailable, result.Body.Fault.String)
	}

	r := result.Body.CheckVatResponse
	return &RegistryResponse{
		CountryCode: r.CountryCode,
		VatNumber:   r.VatNumber,
		RequestDate: r.RequestDate,
		Valid:       r.Valid,
		Name:        r.Name,
		Address:     r.Address,
	}, nil
}
