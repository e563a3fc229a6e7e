package debtor

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
	"github.com/mewicrm/mewi/internal/payment"
	"github.com/mewicrm/mewi/internal/status"
)

type Handler struct {
	svc        *debtor.Service
	invoiceSvc *invoice.Service
	paymentSvc *payment.Service
}

func NewHandler(svc *debtor.Service, invoiceSvc *invoice.Service, paymentSvc *payment.Service) *Handler {
	return &Handler{svc: svc, invoiceSvc: invoiceSvc, paymentSvc: paymentSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/recovery-status", h.escalate)
	r.Delete("/{id}", h.delete)
}

type createDebtorRequest struct {
	ClientID       uuid.UUID             `json:"client_id"`
	ManagerID      *uuid.UUID            `json:"manager_id,omitempty"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	Address        string                `json:"address"`
	Company        string                `json:"company"`
	Type           debtor.Type           `json:"type"`
	Status         debtor.Status         `json:"status"`
	RecoveryStatus debtor.RecoveryStatus `json:"recovery_status"`
	Priority       debtor.Priority       `json:"priority"`
	RiskLevel      debtor.RiskLevel      `json:"risk_level"`
	OriginalAmount float64               `json:"original_amount"`
	PaidAmount     float64               `json:"paid_amount"`
	DaysOverdue    int                   `json:"days_overdue"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientID == uuid.Nil || req.Name == "" {
		http.Error(w, "client_id and name are required", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Create(r.Context(), debtor.CreateParams{
		ClientID:       req.ClientID,
		ManagerID:      req.ManagerID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Company:        req.Company,
		Type:           req.Type,
		Status:         req.Status,
		RecoveryStatus: req.RecoveryStatus,
		Priority:       req.Priority,
		RiskLevel:      req.RiskLevel,
		OriginalAmount: req.OriginalAmount,
		PaidAmount:     req.PaidAmount,
		DaysOverdue:    req.DaysOverdue,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := toResponse(d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list serves the main debtor screens: repo-level narrowing by client,
// then in-memory search, status filters and ordering, each row
// classified with its display labels.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	repoFilter := debtor.ListFilter{}
	if id, err := uuid.Parse(q.Get("clientId")); err == nil {
		repoFilter.ClientID = &id
	}

	debtors, err := h.svc.List(r.Context(), repoFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	debtors = listing.FilterDebtors(debtors, listing.DebtorFilter{
		Search:         q.Get("search"),
		Status:         q.Get("status"),
		RecoveryStatus: q.Get("recoveryStatus"),
	})

	if field := q.Get("sort"); field != "" {
		dir := listing.Asc
		if q.Get("direction") == "desc" {
			dir = listing.Desc
		}

		debtors = listing.SortDebtors(debtors, listing.DebtorSortField(field), dir)
	}

	resp, err := toResponseList(debtors)
	if err != nil {
		writeClassifyError(w, err)
		return
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

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	invoices, err := h.invoiceSvc.List(r.Context(), invoice.ListFilter{DebtorID: &id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payments, err := h.paymentSvc.List(r.Context(), payment.ListFilter{DebtorID: &id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics, err := finance.Aggregate(d, invoices, payments)
	if err != nil {
		writeClassifyError(w, err)
		return
	}

	base, err := toResponse(d)
	if err != nil {
		writeClassifyError(w, err)
		return
	}

	resp := debtorDetailResponse{
		debtorResponse: base,
		Metrics:        toMetricsResponse(metrics),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateDebtorRequest struct {
	Name           *string                `json:"name,omitempty"`
	Email          *string                `json:"email,omitempty"`
	Phone          *string                `json:"phone,omitempty"`
	Address        *string                `json:"address,omitempty"`
	Company        *string                `json:"company,omitempty"`
	Type           *debtor.Type           `json:"type,omitempty"`
	Status         *debtor.Status         `json:"status,omitempty"`
	Priority       *debtor.Priority       `json:"priority,omitempty"`
	RiskLevel      *debtor.RiskLevel      `json:"risk_level,omitempty"`
	OriginalAmount *float64               `json:"original_amount,omitempty"`
	PaidAmount     *float64               `json:"paid_amount,omitempty"`
	DaysOverdue    *int                   `json:"days_overdue,omitempty"`
	NextAction     *debtor.NextAction     `json:"next_action,omitempty"`
	Notes          []string               `json:"notes,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	ManagerID      *uuid.UUID             `json:"manager_id,omitempty"`
	RecoveryStatus *debtor.RecoveryStatus `json:"recovery_status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		d.Name = *req.Name
	}

	if req.Email != nil {
		d.Email = *req.Email
	}

	if req.Phone != nil {
		d.Phone = *req.Phone
	}

	if req.Address != nil {
		d.Address = *req.Address
	}

	if req.Company != nil {
		d.Company = *req.Company
	}

	if req.Type != nil {
		d.Type = *req.Type
	}

	if req.Status != nil {
		d.Status = *req.Status
	}

	if req.Priority != nil {
		d.Priority = *req.Priority
	}

	if req.RiskLevel != nil {
		d.RiskLevel = *req.RiskLevel
	}

	if req.OriginalAmount != nil {
		d.OriginalAmount = *req.OriginalAmount
	}

	if req.PaidAmount != nil {
		d.PaidAmount = *req.PaidAmount
	}

	if req.DaysOverdue != nil {
		d.DaysOverdue = *req.DaysOverdue
	}

	if req.NextAction != nil {
		d.NextAction = req.NextAction
	}

	if req.Notes != nil {
		d.Notes = req.Notes
	}

	if req.Tags != nil {
		d.Tags = req.Tags
	}

	if req.ManagerID != nil {
		d.ManagerID = req.ManagerID
	}

	if req.RecoveryStatus != nil {
		d.RecoveryStatus = *req.RecoveryStatus
	}

	if err := h.svc.Update(r.Context(), d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := toResponse(d)
	if err != nil {
		writeClassifyError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type escalateRequest struct {
	RecoveryStatus debtor.RecoveryStatus `json:"recovery_status"`
}

func (h *Handler) escalate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req escalateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Escalate(r.Context(), id, req.RecoveryStatus); err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
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

// writeClassifyError distinguishes stored data failing classification
// or aggregation from plain server errors. Both are 500s; the body
// names the offending code so the bad row can be found.
func writeClassifyError(w http.ResponseWriter, err error) {
	var unknownCode *status.UnknownStatusCodeError
	var malformed *finance.MalformedRecordError

	if errors.As(err, &unknownCode) || errors.As(err, &malformed) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
