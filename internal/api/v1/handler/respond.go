package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/plan"
	"app/internal/repository"
	"app/internal/service"
)

// errorBody is the JSON error envelope. Plan denials surface their full
// upgrade prompt in detail.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Detail: msg})
}

// writeServiceError maps service and domain errors to HTTP responses.
// Quota and feature denials are expected business flow: they become 403
// with the upgrade prompt and are never treated as server faults.
func writeServiceError(w http.ResponseWriter, err error) {
	var quotaErr *plan.QuotaExceededError
	var featureErr *plan.FeatureNotAvailableError
	switch {
	case errors.As(err, &quotaErr), errors.As(err, &featureErr):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, plan.ErrUnknownPlan):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanNotPurchasable),
		errors.Is(err, service.ErrInvoiceNoItems),
		errors.Is(err, service.ErrInvoiceNotDraft),
		errors.Is(err, service.ErrUnknownProductRef),
		errors.Is(err, service.ErrEventEndsBeforeStart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrInvoiceNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
