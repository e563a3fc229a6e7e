package dunning

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/dunning"
	"github.com/mewicrm/mewi/internal/invoice"
)

type Handler struct {
	svc        *dunning.Service
	debtorSvc  *debtor.Service
	invoiceSvc *invoice.Service
}

func NewHandler(svc *dunning.Service, debtorSvc *debtor.Service, invoiceSvc *invoice.Service) *Handler {
	return &Handler{svc: svc, debtorSvc: debtorSvc, invoiceSvc: invoiceSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/templates", h.listTemplates)
	r.Post("/templates", h.createTemplate)
	r.Get("/templates/{id}", h.getTemplate)
	r.Get("/rules", h.listRules)
	r.Post("/rules", h.createRule)
	r.Post("/debtors/{id}/draft", h.draft)
}

type templateResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Type      communication.Type `json:"type"`
	Subject   string             `json:"subject"`
	Content   string             `json:"content"`
	Variables []string           `json:"variables,omitempty"`
	IsActive  bool               `json:"is_active"`
	CreatedBy *uuid.UUID         `json:"created_by,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func toTemplateResponse(t *dunning.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Subject:   t.Subject,
		Content:   t.Content,
		Variables: t.Variables,
		IsActive:  t.IsActive,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	templates, err := h.svc.ListTemplates(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = toTemplateResponse(t)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createTemplateRequest struct {
	Name      string             `json:"name"`
	Type      communication.Type `json:"type"`
	Subject   string             `json:"subject"`
	Content   string             `json:"content"`
	Variables []string           `json:"variables"`
	IsActive  *bool              `json:"is_active,omitempty"`
	CreatedBy *uuid.UUID         `json:"created_by,omitempty"`
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Content == "" {
		http.Error(w, "name and content are required", http.StatusBadRequest)
		return
	}

	t := &dunning.Template{
		Name:      req.Name,
		Type:      req.Type,
		Subject:   req.Subject,
		Content:   req.Content,
		Variables: req.Variables,
		IsActive:  true,
		CreatedBy: req.CreatedBy,
	}

	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := h.svc.CreateTemplate(r.Context(), t); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTemplateResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.GetTemplate(r.Context(), id)
	if err != nil {
		if errors.Is(err, dunning.ErrNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTemplateResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type ruleResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	TriggerDays int                `json:"trigger_days"`
	Action      communication.Type `json:"action"`
	TemplateID  *uuid.UUID         `json:"template_id,omitempty"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toRuleResponse(rule *dunning.Rule) ruleResponse {
	return ruleResponse{
		ID:          rule.ID,
		Name:        rule.Name,
		TriggerDays: rule.TriggerDays,
		Action:      rule.Action,
		TemplateID:  rule.TemplateID,
		IsActive:    rule.IsActive,
		CreatedAt:   rule.CreatedAt,
	}
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	rules, err := h.svc.ListRules(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toRuleResponse(rule)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRuleRequest struct {
	Name        string             `json:"name"`
	TriggerDays int                `json:"trigger_days"`
	Action      communication.Type `json:"action"`
	TemplateID  *uuid.UUID         `json:"template_id,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.TriggerDays < 0 {
		http.Error(w, "name and a non-negative trigger_days are required", http.StatusBadRequest)
		return
	}

	rule := &dunning.Rule{
		Name:        req.Name,
		TriggerDays: req.TriggerDays,
		Action:      req.Action,
		TemplateID:  req.TemplateID,
		IsActive:    true,
	}

	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := h.svc.CreateRule(r.Context(), rule); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toRuleResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type draftRequest struct {
	InvoiceID *uuid.UUID `json:"invoice_id,omitempty"`
}

type draftResponse struct {
	DebtorID uuid.UUID          `json:"debtor_id"`
	ClientID uuid.UUID          `json:"client_id"`
	Type     communication.Type `json:"type"`
	Subject  string             `json:"subject"`
	Content  string             `json:"content"`
}

// draft renders the reminder the active rules prescribe for the
// debtor's current overdue age. The result is returned for review,
// not sent or persisted.
func (h *Handler) draft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req draftRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	d, err := h.debtorSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			http.Error(w, "debtor not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var inv *invoice.Invoice
	if req.InvoiceID != nil {
		inv, err = h.invoiceSvc.Get(r.Context(), *req.InvoiceID)
		if err != nil {
			if errors.Is(err, invoice.ErrNotFound) {
				http.Error(w, "invoice not found", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}
	}

	params, err := h.svc.Draft(r.Context(), d, inv)
	if err != nil {
		if errors.Is(err, dunning.ErrNotFound) {
			http.Error(w, "no reminder rule applies to this debtor", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	resp := draftResponse{
		DebtorID: params.DebtorID,
		ClientID: params.ClientID,
		Type:     params.Type,
		Subject:  params.Subject,
		Content:  params.Content,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
