package model

// DashboardStats is the aggregate summary shown on the dashboard.
type DashboardStats struct {
	TotalContacts      int     `json:"total_contacts"`
	TotalAccounts      int     `json:"total_accounts"`
	TotalInvoices      int     `json:"total_invoices"`
	OpenInvoices       int     `json:"open_invoices"`
	PaidRevenue        float64 `json:"paid_revenue"`
	OutstandingRevenue float64 `json:"outstanding_revenue"`
}
