package plan

// ID identifies a subscription plan in the catalog.
type ID string

const (
	Starter      ID = "starter"
	Professional ID = "professional"
	Enterprise   ID = "enterprise"
)

// Unlimited is the sentinel quota value meaning "no limit". It must be
// checked explicitly before any numeric comparison against a usage count.
const Unlimited = -1

// Limits is the closed set of quotas and feature flags a plan defines.
// Using a struct instead of a string-keyed map guarantees every plan
// defines every key; unknown keys can never default to "allowed".
type Limits struct {
	ContactsMax      int  `json:"contacts_max"`
	AccountsMax      int  `json:"accounts_max"`
	InvoicesPerMonth int  `json:"invoices_per_month"`
	CustomFields     bool `json:"custom_fields"`
	APIAccess        bool `json:"api_access"`
	MultiUser        bool `json:"multi_user"`
	VIESIntegration  bool `json:"vies_integration"`
	PeppolInvoicing  bool `json:"peppol_invoicing"`
	AdvancedCalendar bool `json:"advanced_calendar"`
	PDFExport        bool `json:"pdf_export"`
	PrioritySupport  bool `json:"priority_support"`
	AIIntegration    bool `json:"ai_integration"`
}

// Plan is an immutable, statically defined subscription plan.
type Plan struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Features []string `json:"features"`
	Limits   Limits   `json:"limits"`
}

// Catalog is the process-wide plan registry. It is constructed once at
// startup and injected into services; it is never mutated afterwards.
type Catalog struct {
	plans []Plan
	byID  map[ID]Plan
}

// NewCatalog builds the static three-plan catalog.
func NewCatalog() *Catalog {
	plans := []Plan{
		{
			ID:       Starter,
			Name:     "Starter",
			Price:    0,
			Currency: "EUR",
			Features: []string{
				"Up to 5 contacts",
				"Up to 2 accounts",
				"10 invoices per month",
				"Basic calendar",
				"Email support",
			},
			Limits: Limits{
				ContactsMax:      5,
				AccountsMax:      2,
				InvoicesPerMonth: 10,
			},
		},
		{
			ID:       Professional,
			Name:     "Professional",
			Price:    29.99,
			Currency: "EUR",
			Features: []string{
				"Unlimited contacts",
				"Unlimited accounts",
				"Unlimited invoices",
				"VIES VAT validation",
				"Peppol e-invoicing",
				"PDF export",
				"Advanced calendar",
				"Email support",
			},
			Limits: Limits{
				ContactsMax:      Unlimited,
				AccountsMax:      Unlimited,
				InvoicesPerMonth: Unlimited,
				VIESIntegration:  true,
				PeppolInvoicing:  true,
				AdvancedCalendar: true,
				PDFExport:        true,
			},
		},
		{
			ID:       Enterprise,
			Name:     "Enterprise",
			Price:    99.99,
			Currency: "EUR",
			Features: []string{
				"Everything in Professional",
				"Custom fields",
				"API access",
				"Multi-user workspaces",
				"AI integration",
				"Priority support",
			},
			Limits: Limits{
				ContactsMax:      Unlimited,
				AccountsMax:      Unlimited,
				InvoicesPerMonth: Unlimited,
				CustomFields:     true,
				APIAccess:        true,
				MultiUser:        true,
				VIESIntegration:  true,
				PeppolInvoicing:  true,
				AdvancedCalendar: true,
				PDFExport:        true,
				PrioritySupport:  true,
				AIIntegration:    true,
			},
		},
	}

	byID := make(map[ID]Plan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}
	return &Catalog{plans: plans, byID: byID}
}

// Get returns the plan for the given id, or ErrUnknownPlan.
func (c *Catalog) Get(id ID) (Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return p, nil
}

// List returns all plans in display order (Starter, Professional, Enterprise).
func (c *Catalog) List() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}
