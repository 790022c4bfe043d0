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

type UserHandler struct {
	userService service.UserService
	planService service.PlanService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService, planService service.PlanService, v *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, planService: planService, validate: v}
}

// RegisterRoutes mounts v1 user and plan routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.getUser)))
	mux.Handle("/users/current-plan", authMw(http.HandlerFunc(h.getCurrentPlan)))
	mux.Handle("/users/select-plan", authMw(http.HandlerFunc(h.selectPlan)))
	mux.Handle("/users/subscriptions", authMw(http.HandlerFunc(h.getSubscriptionHistory)))
	mux.HandleFunc("/plans", h.listPlans)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// getCurrentPlan returns the user's plan, its limits and fresh usage
// counts in one response.
func (h *UserHandler) getCurrentPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	status, err := h.planService.Status(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PlanStatusResponseDTO{
		Plan:                 status.Plan,
		Limits:               status.Limits,
		Usage:                status.Usage,
		ContactsLimitReached: status.ContactsLimitReached,
		AccountsLimitReached: status.AccountsLimitReached,
		InvoicesLimitReached: status.InvoicesLimitReached,
	})
}

func (h *UserHandler) selectPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req dto.SelectPlanDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.planService.SelectPlan(r.Context(), userID, plan.ID(req.Plan)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"plan": req.Plan, "status": "selected"})
}

func (h *UserHandler) getSubscriptionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	subs, err := h.planService.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// listPlans is public; the pricing page needs it before login.
func (h *UserHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.planService.ListPlans(r.Context()))
}
