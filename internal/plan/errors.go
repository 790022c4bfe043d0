package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlan is returned when a plan id is not in the catalog. It is a
// client input error, not a server fault.
var ErrUnknownPlan = errors.New("unknown plan")

// QuotaExceededError is returned when a resource creation is blocked by
// the caller's plan limits. It is expected, frequent business flow and
// must never be logged as an error.
type QuotaExceededError struct {
	Resource     ResourceKind
	CurrentCount int
	MaxAllowed   int
	PlanID       ID
	PlanName     string
	UpgradeTo    string
}

func (e *QuotaExceededError) Error() string {
	noun := resourceNoun(e.Resource)
	msg := fmt.Sprintf("%s plan allows maximum %d %s.", e.PlanName, e.MaxAllowed, noun)
	if e.UpgradeTo != "" {
		msg += fmt.Sprintf(" Upgrade to %s for unlimited %s.", e.UpgradeTo, noun)
	}
	return msg
}

// FeatureNotAvailableError is returned when a feature-gated action is
// blocked by the caller's plan.
type FeatureNotAvailableError struct {
	Feature   Feature
	PlanID    ID
	PlanName  string
	UpgradeTo string
}

func (e *FeatureNotAvailableError) Error() string {
	msg := fmt.Sprintf("%s is not available on the %s plan.", featureLabel(e.Feature), e.PlanName)
	if e.UpgradeTo != "" {
		msg += fmt.Sprintf(" Upgrade to %s to unlock it.", e.UpgradeTo)
	}
	return msg
}

func resourceNoun(kind ResourceKind) string {
	switch kind {
	case ResourceInvoicesThisMonth:
		return "invoices per month"
	default:
		return string(kind)
	}
}

func featureLabel(f Feature) string {
	switch f {
	case FeatureVIESIntegration:
		return "VIES VAT validation"
	case FeaturePeppolInvoicing:
		return "Peppol e-invoicing"
	case FeaturePDFExport:
		return "PDF export"
	case FeatureAPIAccess:
		return "API access"
	case FeatureAIIntegration:
		return "AI integration"
	default:
		return strings.ReplaceAll(string(f), "_", " ")
	}
}
