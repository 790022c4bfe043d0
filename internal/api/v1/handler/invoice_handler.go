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

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	validate       *validator.Validate
}

func NewInvoiceHandler(invoiceService service.InvoiceService, v *validator.Validate) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, validate: v}
}

// RegisterRoutes mounts v1 invoice routes
func (h *InvoiceHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/invoices", authMw(http.HandlerFunc(h.handleCollection)))
	mux.Handle("/invoices/", authMw(http.HandlerFunc(h.handleItem)))
}

func (h *InvoiceHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *InvoiceHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/invoices/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, parts[0])
		case http.MethodDelete:
			h.delete(w, r, parts[0])
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "send" && r.Method == http.MethodPost:
		h.send(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "pay" && r.Method == http.MethodPost:
		h.markPaid(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *InvoiceHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req dto.InvoiceCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	items := make([]model.InvoiceItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = model.InvoiceItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			Description: it.Description,
		}
	}

	invoice, err := h.invoiceService.Create(r.Context(), userID, req.AccountID, req.ContactID, items, req.DueDate, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	invoices, err := h.invoiceService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	invoice, err := h.invoiceService.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if invoice == nil {
		writeError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) send(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	invoice, err := h.invoiceService.Send(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) markPaid(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	if err := h.invoiceService.MarkPaid(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": model.InvoicePaid})
}

func (h *InvoiceHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	if err := h.invoiceService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
