package dto

// CheckoutSessionDTO is the payload for starting a paid plan checkout.
type CheckoutSessionDTO struct {
	Plan string `json:"plan" validate:"required"`
}

// SessionURLResponseDTO carries the Stripe-hosted session URL.
type SessionURLResponseDTO struct {
	URL string `json:"url"`
}
