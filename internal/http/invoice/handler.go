package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type invoiceResponse struct {
	ID             uuid.UUID      `json:"id"`
	ClientID       uuid.UUID      `json:"client_id"`
	DebtorID       uuid.UUID      `json:"debtor_id"`
	InvoiceNumber  string         `json:"invoice_number"`
	Amount         float64        `json:"amount"`
	OriginalAmount float64        `json:"original_amount"`
	PaidAmount     float64        `json:"paid_amount"`
	DueDate        time.Time      `json:"due_date"`
	IssueDate      time.Time      `json:"issue_date"`
	Status         invoice.Status `json:"status"`
	Description    string         `json:"description,omitempty"`
	Category       string         `json:"category,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:             inv.ID,
		ClientID:       inv.ClientID,
		DebtorID:       inv.DebtorID,
		InvoiceNumber:  inv.InvoiceNumber,
		Amount:         inv.Amount,
		OriginalAmount: inv.OriginalAmount,
		PaidAmount:     inv.PaidAmount,
		DueDate:        inv.DueDate,
		IssueDate:      inv.IssueDate,
		Status:         inv.Status,
		Description:    inv.Description,
		Category:       inv.Category,
		CreatedAt:      inv.CreatedAt,
	}
}

type createInvoiceRequest struct {
	ClientID       uuid.UUID      `json:"client_id"`
	DebtorID       uuid.UUID      `json:"debtor_id"`
	InvoiceNumber  string         `json:"invoice_number"`
	OriginalAmount float64        `json:"original_amount"`
	PaidAmount     float64        `json:"paid_amount"`
	DueDate        time.Time      `json:"due_date"`
	IssueDate      time.Time      `json:"issue_date"`
	Status         invoice.Status `json:"status"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.InvoiceNumber == "" || req.DebtorID == uuid.Nil {
		http.Error(w, "invoice_number and debtor_id are required", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		ClientID:       req.ClientID,
		DebtorID:       req.DebtorID,
		InvoiceNumber:  req.InvoiceNumber,
		OriginalAmount: req.OriginalAmount,
		PaidAmount:     req.PaidAmount,
		DueDate:        req.DueDate,
		IssueDate:      req.IssueDate,
		Status:         req.Status,
		Description:    req.Description,
		Category:       req.Category,
	})
	if err != nil {
		if errors.Is(err, invoice.ErrDuplicateNumber) {
			http.Error(w, "invoice number already exists", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := invoice.ListFilter{}

	if id, err := uuid.Parse(q.Get("clientId")); err == nil {
		filter.ClientID = &id
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	invoices = listing.FilterInvoices(invoices, listing.InvoiceFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		DebtorID: q.Get("debtorId"),
	})

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateInvoiceRequest struct {
	OriginalAmount *float64        `json:"original_amount,omitempty"`
	PaidAmount     *float64        `json:"paid_amount,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         *invoice.Status `json:"status,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Category       *string         `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.OriginalAmount != nil {
		inv.OriginalAmount = *req.OriginalAmount
	}

	if req.PaidAmount != nil {
		inv.PaidAmount = *req.PaidAmount
	}

	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}

	if req.Status != nil {
		inv.Status = *req.Status
	}

	if req.Description != nil {
		inv.Description = *req.Description
	}

	if req.Category != nil {
		inv.Category = *req.Category
	}

	if err := h.svc.Update(r.Context(), inv); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
