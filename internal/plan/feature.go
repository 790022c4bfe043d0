package plan

// Feature names a boolean plan capability.
type Feature string

const (
	FeatureCustomFields     Feature = "custom_fields"
	FeatureAPIAccess        Feature = "api_access"
	FeatureMultiUser        Feature = "multi_user"
	FeatureVIESIntegration  Feature = "vies_integration"
	FeaturePeppolInvoicing  Feature = "peppol_invoicing"
	FeatureAdvancedCalendar Feature = "advanced_calendar"
	FeaturePDFExport        Feature = "pdf_export"
	FeaturePrioritySupport  Feature = "priority_support"
	FeatureAIIntegration    Feature = "ai_integration"
)

// flag returns the plan's setting for the feature. The second return value
// is false for feature names the plan does not define.
func (l Limits) flag(f Feature) (bool, bool) {
	switch f {
	case FeatureCustomFields:
		return l.CustomFields, true
	case FeatureAPIAccess:
		return l.APIAccess, true
	case FeatureMultiUser:
		return l.MultiUser, true
	case FeatureVIESIntegration:
		return l.VIESIntegration, true
	case FeaturePeppolInvoicing:
		return l.PeppolInvoicing, true
	case FeatureAdvancedCalendar:
		return l.AdvancedCalendar, true
	case FeaturePDFExport:
		return l.PDFExport, true
	case FeaturePrioritySupport:
		return l.PrioritySupport, true
	case FeatureAIIntegration:
		return l.AIIntegration, true
	default:
		return false, false
	}
}

// HasFeature reports whether the plan grants the feature. Unknown feature
// names fail closed.
func HasFeature(p Plan, f Feature) bool {
	enabled, ok := p.Limits.flag(f)
	return ok && enabled
}

// CheckFeature returns nil when the plan grants the feature and a
// *FeatureNotAvailableError carrying the upgrade prompt when it does not.
func (c *Catalog) CheckFeature(p Plan, f Feature) error {
	if HasFeature(p, f) {
		return nil
	}
	return &FeatureNotAvailableError{
		Feature:   f,
		PlanID:    p.ID,
		PlanName:  p.Name,
		UpgradeTo: c.minimumPlanForFeature(f),
	}
}

// minimumPlanForFeature finds the cheapest plan, in display order, that
// grants the feature.
func (c *Catalog) minimumPlanForFeature(f Feature) string {
	for _, p := range c.plans {
		if HasFeature(p, f) {
			return p.Name
		}
	}
	return ""
}
