package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/importer"
	"github.com/mewicrm/mewi/internal/invoice"
)

type Handler struct {
	importSvc  *importer.Service
	debtorSvc  *debtor.Service
	invoiceSvc *invoice.Service
}

func NewHandler(importSvc *importer.Service, debtorSvc *debtor.Service, invoiceSvc *invoice.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		debtorSvc:  debtorSvc,
		invoiceSvc: invoiceSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Debtors  int `json:"debtors"`
	Invoices int `json:"invoices"`
}

// importCSV ingests a debt file exported by the client: one row per
// claim, debtors deduplicated within the upload by email (by name when
// the email is missing). Duplicate invoice numbers against existing
// records reject the whole upload; imports are all-or-nothing per
// debtor block, not transactional across the file.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	clientID, err := uuid.Parse(r.FormValue("client_id"))
	if err != nil {
		http.Error(w, "client_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()

	debtors := make(map[string]*debtor.Debtor)
	created := 0

	for _, row := range rows {
		key := row.Email
		if key == "" {
			key = row.Name
		}

		d, ok := debtors[key]
		if !ok {
			kind := debtor.TypeIndividual
			if row.Company != "" {
				kind = debtor.TypeCompany
			}

			d, err = h.debtorSvc.Create(r.Context(), debtor.CreateParams{
				ClientID:    clientID,
				Name:        row.Name,
				Email:       row.Email,
				Company:     row.Company,
				Type:        kind,
				DaysOverdue: daysOverdue(row.DueDate, now),
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			debtors[key] = d
			created++
		}

		status := invoice.StatusPending
		if row.DueDate.Before(now) {
			status = invoice.StatusOverdue
		}

		_, err = h.invoiceSvc.Create(r.Context(), invoice.CreateParams{
			ClientID:       clientID,
			DebtorID:       d.ID,
			InvoiceNumber:  row.InvoiceNumber,
			OriginalAmount: row.Amount,
			DueDate:        row.DueDate,
			IssueDate:      now,
			Status:         status,
			Description:    row.Description,
		})
		if err != nil {
			if errors.Is(err, invoice.ErrDuplicateNumber) {
				http.Error(w, "invoice number already exists: "+row.InvoiceNumber, http.StatusConflict)
				return
			}

			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		d.OriginalAmount += row.Amount
		d.InvoiceCount++

		if overdue := daysOverdue(row.DueDate, now); overdue > d.DaysOverdue {
			d.DaysOverdue = overdue
		}
	}

	invoiceCount := len(rows)

	for _, d := range debtors {
		if err := h.debtorSvc.Update(r.Context(), d); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importSuccessResponse{Debtors: created, Invoices: invoiceCount}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func daysOverdue(due, now time.Time) int {
	if !due.Before(now) {
		return 0
	}

	return int(now.Sub(due).Hours() / 24)
}
