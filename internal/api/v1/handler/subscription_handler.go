package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/plan"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type SubscriptionHandler struct {
	stripeService *service.StripeService
	validate      *validator.Validate
}

func NewSubscriptionHandler(stripeService *service.StripeService, v *validator.Validate) *SubscriptionHandler {
	return &SubscriptionHandler{stripeService: stripeService, validate: v}
}

// RegisterRoutes mounts v1 billing routes. The webhook endpoint is
// authenticated by Stripe's signature, not by a session token.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/billing/checkout", authMw(http.HandlerFunc(h.createCheckoutSession)))
	mux.Handle("/billing/portal", authMw(http.HandlerFunc(h.createPortalSession)))
	mux.HandleFunc("/billing/webhook", h.stripeService.HandleWebhook)
}

func (h *SubscriptionHandler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req dto.CheckoutSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	url, err := h.stripeService.CreateCheckoutSession(r.Context(), userID, plan.ID(req.Plan))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionURLResponseDTO{URL: url})
}

func (h *SubscriptionHandler) createPortalSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	url, err := h.stripeService.CreatePortalSession(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionURLResponseDTO{URL: url})
}
