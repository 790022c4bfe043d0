package dto

// ProductCreateDTO is used for incoming create and update requests.
type ProductCreateDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	TaxRate     float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
}
