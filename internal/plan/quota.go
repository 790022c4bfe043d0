package plan

// ResourceKind names a quota-gated resource.
type ResourceKind string

const (
	ResourceContacts          ResourceKind = "contacts"
	ResourceAccounts          ResourceKind = "accounts"
	ResourceInvoicesThisMonth ResourceKind = "invoices_this_month"
)

// quota returns the plan's ceiling for the given resource kind. The second
// return value is false for kinds the plan does not define.
func (l Limits) quota(kind ResourceKind) (int, bool) {
	switch kind {
	case ResourceContacts:
		return l.ContactsMax, true
	case ResourceAccounts:
		return l.AccountsMax, true
	case ResourceInvoicesThisMonth:
		return l.InvoicesPerMonth, true
	default:
		return 0, false
	}
}

// Admit decides whether one more resource of the given kind may be created
// under the plan, given the pre-mutation count. Unlimited quotas always
// admit; bounded quotas admit while currentCount < max, so the creation
// attempted at currentCount == max is the one that is denied.
//
// Unknown resource kinds are denied: an unregistered kind passing a
// quota check would be a hole, not a feature.
func Admit(p Plan, kind ResourceKind, currentCount int) bool {
	max, ok := p.Limits.quota(kind)
	if !ok {
		return false
	}
	if max == Unlimited {
		return true
	}
	return currentCount < max
}

// CheckQuota returns nil when the creation is admitted and a
// *QuotaExceededError carrying the upgrade prompt when it is not.
func (c *Catalog) CheckQuota(p Plan, kind ResourceKind, currentCount int) error {
	if Admit(p, kind, currentCount) {
		return nil
	}
	max, _ := p.Limits.quota(kind)
	return &QuotaExceededError{
		Resource:     kind,
		CurrentCount: currentCount,
		MaxAllowed:   max,
		PlanID:       p.ID,
		PlanName:     p.Name,
		UpgradeTo:    c.minimumPlanForQuota(kind, currentCount),
	}
}

// minimumPlanForQuota finds the cheapest plan, in display order, whose
// quota would admit one more resource at the given count.
func (c *Catalog) minimumPlanForQuota(kind ResourceKind, currentCount int) string {
	for _, p := range c.plans {
		if Admit(p, kind, currentCount) {
			return p.Name
		}
	}
	return ""
}
