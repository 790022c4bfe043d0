package dto

// ContactCreateDTO is used for incoming create and update requests.
type ContactCreateDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}
