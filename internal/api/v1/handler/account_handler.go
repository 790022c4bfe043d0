package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type AccountHandler struct {
	accountService service.AccountService
	validate       *validator.Validate
}

func NewAccountHandler(accountService service.AccountService, v *validator.Validate) *AccountHandler {
	return &AccountHandler{accountService: accountService, validate: v}
}

// RegisterRoutes mounts v1 account routes, including the feature-gated
// VIES lookup.
func (h *AccountHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/accounts", authMw(http.HandlerFunc(h.handleCollection)))
	mux.Handle("/accounts/vies-lookup/", authMw(http.HandlerFunc(h.viesLookup)))
	mux.Handle("/accounts/", authMw(http.HandlerFunc(h.handleItem)))
}

func (h *AccountHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/accounts/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// viesLookup validates a VAT identifier against the VIES registry. Plans
// without the vies_integration feature get a 403 with an upgrade prompt.
func (h *AccountHandler) viesLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	vat := strings.TrimPrefix(r.URL.Path, "/accounts/vies-lookup/")
	if vat == "" {
		writeError(w, http.StatusBadRequest, "VAT number missing")
		return
	}

	result, err := h.accountService.ViesLookup(r.Context(), userID, vat)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AccountHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req dto.AccountCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	account, err := h.accountService.Create(r.Context(), accountFromDTO(userID, "", &req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	accounts, err := h.accountService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	account, err := h.accountService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if account == nil {
		writeError(w, http.StatusNotFound, "Account not found")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req dto.AccountCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	account, err := h.accountService.Update(r.Context(), accountFromDTO(userID, id, &req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	if err := h.accountService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func accountFromDTO(userID, id string, req *dto.AccountCreateDTO) *model.Account {
	return &model.Account{
		ID:            id,
		UserID:        userID,
		Name:          req.Name,
		ContactID:     req.ContactID,
		Industry:      req.Industry,
		Website:       req.Website,
		AnnualRevenue: req.AnnualRevenue,
		EmployeeCount: req.EmployeeCount,
		Address:       req.Address,
		VATNumber:     req.VATNumber,
		Notes:         req.Notes,
	}
}
