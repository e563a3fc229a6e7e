package history

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
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
	"github.com/mewicrm/mewi/internal/payment"
	"github.com/mewicrm/mewi/internal/timeline"
)

// Handler serves the per-client activity feed. The feed is rebuilt on
// every request from the client's records; nothing is stored.
type Handler struct {
	debtorSvc  *debtor.Service
	invoiceSvc *invoice.Service
	paymentSvc *payment.Service
	commSvc    *communication.Service
}

func NewHandler(
	debtorSvc *debtor.Service,
	invoiceSvc *invoice.Service,
	paymentSvc *payment.Service,
	commSvc *communication.Service,
) *Handler {
	return &Handler{
		debtorSvc:  debtorSvc,
		invoiceSvc: invoiceSvc,
		paymentSvc: paymentSvc,
		commSvc:    commSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{clientId}", h.feed)
}

type eventResponse struct {
	ID          string             `json:"id"`
	Date        time.Time          `json:"date"`
	Type        timeline.EventType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	DebtorID    uuid.UUID          `json:"debtor_id"`
	DebtorName  string             `json:"debtor_name"`
	Status      string             `json:"status,omitempty"`
	Amount      *float64           `json:"amount,omitempty"`
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	debtors, err := h.debtorSvc.List(ctx, debtor.ListFilter{ClientID: &clientID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	invoices, err := h.invoiceSvc.List(ctx, invoice.ListFilter{ClientID: &clientID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payments, err := h.paymentSvc.List(ctx, payment.ListFilter{ClientID: &clientID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	comms, err := h.commSvc.List(ctx, communication.ListFilter{ClientID: &clientID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	events, err := timeline.Build(clientID, debtors, invoices, payments, comms)
	if err != nil {
		var malformed *finance.MalformedRecordError
		if errors.As(err, &malformed) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	q := r.URL.Query()

	events = timeline.FilterEvents(events, timeline.EventFilter{
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		DebtorID: q.Get("debtorId"),
		Date:     listing.DateRange(q.Get("date")),
	})

	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = eventResponse{
			ID:          e.ID,
			Date:        e.Date,
			Type:        e.Type,
			Title:       e.Title,
			Description: e.Description,
			DebtorID:    e.DebtorID,
			DebtorName:  e.DebtorName,
			Status:      e.Status,
			Amount:      e.Amount,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
