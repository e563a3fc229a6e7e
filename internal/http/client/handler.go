package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/client"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
)

type Handler struct {
	svc       *client.Service
	debtorSvc *debtor.Service
}

func NewHandler(svc *client.Service, debtorSvc *debtor.Service) *Handler {
	return &Handler{svc: svc, debtorSvc: debtorSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/portfolio", h.portfolio)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type clientResponse struct {
	ID              uuid.UUID     `json:"id"`
	UserID          *uuid.UUID    `json:"user_id,omitempty"`
	ManagerID       *uuid.UUID    `json:"manager_id,omitempty"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone,omitempty"`
	Address         string        `json:"address,omitempty"`
	Company         string        `json:"company,omitempty"`
	Status          client.Status `json:"status"`
	TotalAmount     float64       `json:"total_amount"`
	CollectedAmount float64       `json:"collected_amount"`
	Notes           []string      `json:"notes,omitempty"`
	ContractEndDate *time.Time    `json:"contract_end_date,omitempty"`
	LastContact     *time.Time    `json:"last_contact,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		ManagerID:       c.ManagerID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		Company:         c.Company,
		Status:          c.Status,
		TotalAmount:     c.TotalAmount,
		CollectedAmount: c.CollectedAmount,
		Notes:           c.Notes,
		ContractEndDate: c.ContractEndDate,
		LastContact:     c.LastContact,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type createClientRequest struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Company   string     `json:"company"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		UserID:    req.UserID,
		ManagerID: req.ManagerID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Company:   req.Company,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := client.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := client.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("managerId"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ManagerID = &id
		}
	}

	clients, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
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

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type portfolioResponse struct {
	TotalAmount     float64 `json:"total_amount"`
	TotalCollected  float64 `json:"total_collected"`
	TotalOriginal   float64 `json:"total_original"`
	AvgRecoveryRate float64 `json:"avg_recovery_rate"`
	OverdueCount    int     `json:"overdue_count"`
	RecoveredCount  int     `json:"recovered_count"`
	DebtorCount     int     `json:"debtor_count"`
}

// portfolio rolls up the client's debtor files into the dashboard
// figures.
func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	debtors, err := h.debtorSvc.List(r.Context(), debtor.ListFilter{ClientID: &id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics, err := finance.Portfolio(debtors)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := portfolioResponse{
		TotalAmount:     metrics.TotalAmount,
		TotalCollected:  metrics.TotalCollected,
		TotalOriginal:   metrics.TotalOriginal,
		AvgRecoveryRate: metrics.AvgRecoveryRate,
		OverdueCount:    metrics.OverdueCount,
		RecoveredCount:  metrics.RecoveredCount,
		DebtorCount:     len(debtors),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateClientRequest struct {
	Name            *string        `json:"name,omitempty"`
	Email           *string        `json:"email,omitempty"`
	Phone           *string        `json:"phone,omitempty"`
	Address         *string        `json:"address,omitempty"`
	Company         *string        `json:"company,omitempty"`
	Status          *client.Status `json:"status,omitempty"`
	Notes           []string       `json:"notes,omitempty"`
	ContractEndDate *time.Time     `json:"contract_end_date,omitempty"`
	ManagerID       *uuid.UUID     `json:"manager_id,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Email != nil {
		c.Email = *req.Email
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if req.Address != nil {
		c.Address = *req.Address
	}

	if req.Company != nil {
		c.Company = *req.Company
	}

	if req.Status != nil {
		c.Status = *req.Status
	}

	if req.Notes != nil {
		c.Notes = req.Notes
	}

	if req.ContractEndDate != nil {
		c.ContractEndDate = req.ContractEndDate
	}

	if req.ManagerID != nil {
		c.ManagerID = req.ManagerID
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
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
