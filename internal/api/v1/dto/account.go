package dto

// AccountCreateDTO is used for incoming create and update requests.
type AccountCreateDTO struct {
	Name          string   `json:"name" validate:"required"`
	ContactID     *string  `json:"contact_id"`
	Industry      string   `json:"industry"`
	Website       string   `json:"website" validate:"omitempty,url"`
	AnnualRevenue *float64 `json:"annual_revenue"`
	EmployeeCount *int     `json:"employee_count"`
	Address       string   `json:"address"`
	VATNumber     string   `json:"vat_number"`
	Notes         string   `json:"notes"`
}
