package communication

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
)

type Handler struct {
	svc *communication.Service
}

func NewHandler(svc *communication.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type communicationResponse struct {
	ID        uuid.UUID            `json:"id"`
	ClientID  uuid.UUID            `json:"client_id"`
	DebtorID  uuid.UUID            `json:"debtor_id"`
	UserID    *uuid.UUID           `json:"user_id,omitempty"`
	Type      communication.Type   `json:"type"`
	Subject   string               `json:"subject"`
	Content   string               `json:"content"`
	Status    communication.Status `json:"status"`
	SentAt    *time.Time           `json:"sent_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

func toResponse(c *communication.Communication) communicationResponse {
	return communicationResponse{
		ID:        c.ID,
		ClientID:  c.ClientID,
		DebtorID:  c.DebtorID,
		UserID:    c.UserID,
		Type:      c.Type,
		Subject:   c.Subject,
		Content:   c.Content,
		Status:    c.Status,
		SentAt:    c.SentAt,
		CreatedAt: c.CreatedAt,
	}
}

type createCommunicationRequest struct {
	ClientID uuid.UUID          `json:"client_id"`
	DebtorID uuid.UUID          `json:"debtor_id"`
	UserID   *uuid.UUID         `json:"user_id,omitempty"`
	Type     communication.Type `json:"type"`
	Subject  string             `json:"subject"`
	Content  string             `json:"content"`
	SentAt   *time.Time         `json:"sent_at,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCommunicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.DebtorID == uuid.Nil || req.Type == "" {
		http.Error(w, "debtor_id and type are required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), communication.CreateParams{
		ClientID: req.ClientID,
		DebtorID: req.DebtorID,
		UserID:   req.UserID,
		Type:     req.Type,
		Subject:  req.Subject,
		Content:  req.Content,
		SentAt:   req.SentAt,
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
	q := r.URL.Query()

	filter := communication.ListFilter{}

	if id, err := uuid.Parse(q.Get("clientId")); err == nil {
		filter.ClientID = &id
	}

	if id, err := uuid.Parse(q.Get("debtorId")); err == nil {
		filter.DebtorID = &id
	}

	if s := q.Get("type"); s != "" {
		t := communication.Type(s)
		filter.Type = &t
	}

	comms, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]communicationResponse, len(comms))
	for i, c := range comms {
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
		if errors.Is(err, communication.ErrNotFound) {
			http.Error(w, "communication not found", http.StatusNotFound)
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

type updateStatusRequest struct {
	Status communication.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, communication.ErrNotFound) {
			http.Error(w, "communication not found", http.StatusNotFound)
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
