// Package timeline merges the heterogeneous record types touching a
// client's debtor files into a single newest-first event feed.
package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
	"github.com/mewicrm/mewi/internal/payment"
	"github.com/mewicrm/mewi/internal/status"
)

type EventType string

const (
	EventCommunication EventType = "communication"
	EventPayment       EventType = "payment"
	EventInvoice       EventType = "invoice"
	EventStatusChange  EventType = "status_change"
)

// Event is one entry of the history feed.
type Event struct {
	ID          string
	Date        time.Time
	Type        EventType
	Title       string
	Description string
	DebtorID    uuid.UUID
	DebtorName  string
	Status      string
	Amount      *float64
}

const descriptionLimit = 100

// Build assembles the event feed for one client: communications,
// payments and invoices belonging to the client, plus one synthetic
// status_change event per debtor whose recovery status left the base
// tier. Records referencing a debtor that is not in the input are
// dropped silently; partial datasets are normal after deletions.
//
// Known limitation: with no audit log modeled, only the transition to
// the *current* recovery status is visible, dated at the debtor's
// UpdatedAt. Real history would need an audit log to replace this
// reconstruction.
func Build(
	clientID uuid.UUID,
	debtors []*debtor.Debtor,
	invoices []*invoice.Invoice,
	payments []*payment.Payment,
	communications []*communication.Communication,
) ([]Event, error) {
	byID := make(map[uuid.UUID]*debtor.Debtor, len(debtors))
	for _, d := range debtors {
		byID[d.ID] = d
	}

	invoiceNumbers := make(map[uuid.UUID]string, len(invoices))
	for _, inv := range invoices {
		invoiceNumbers[inv.ID] = inv.InvoiceNumber
	}

	var events []Event

	for _, c := range communications {
		if c.ClientID != clientID {
			continue
		}

		d, ok := byID[c.DebtorID]
		if !ok {
			continue
		}

		if c.CreatedAt.IsZero() {
			return nil, &finance.MalformedRecordError{Entity: "communication", ID: c.ID, Field: "createdAt"}
		}

		title := c.Subject
		if title == "" {
			title = fmt.Sprintf("%s - %s", capitalize(string(c.Type)), d.Name)
		}

		events = append(events, Event{
			ID:          "comm_" + c.ID.String(),
			Date:        c.CreatedAt,
			Type:        EventCommunication,
			Title:       title,
			Description: truncate(c.Content, descriptionLimit),
			DebtorID:    c.DebtorID,
			DebtorName:  d.Name,
			Status:      string(c.Status),
		})
	}

	for _, p := range payments {
		if p.ClientID != clientID {
			continue
		}

		d, ok := byID[p.DebtorID]
		if !ok {
			continue
		}

		if p.PaymentDate.IsZero() {
			return nil, &finance.MalformedRecordError{Entity: "payment", ID: p.ID, Field: "paymentDate"}
		}

		desc := p.Method
		if p.InvoiceID != nil {
			if number, ok := invoiceNumbers[*p.InvoiceID]; ok {
				desc += " - " + number
			}
		}

		amount := p.Amount

		events = append(events, Event{
			ID:          "payment_" + p.ID.String(),
			Date:        p.PaymentDate,
			Type:        EventPayment,
			Title:       "Paiement - " + d.Name,
			Description: desc,
			DebtorID:    p.DebtorID,
			DebtorName:  d.Name,
			Status:      string(p.Status),
			Amount:      &amount,
		})
	}

	for _, d := range debtors {
		if d.ClientID != clientID || d.RecoveryStatus == debtor.RecoveryBlue {
			continue
		}

		// UpdatedAt stands in for the unknown transition moment.
		events = append(events, Event{
			ID:          fmt.Sprintf("status_%s_%s", d.ID, d.RecoveryStatus),
			Date:        d.UpdatedAt,
			Type:        EventStatusChange,
			Title:       "Statut changé - " + d.Name,
			Description: "Passage en statut " + status.Recovery(d.RecoveryStatus).Label,
			DebtorID:    d.ID,
			DebtorName:  d.Name,
			Status:      string(d.RecoveryStatus),
		})
	}

	for _, inv := range invoices {
		if inv.ClientID != clientID {
			continue
		}

		d, ok := byID[inv.DebtorID]
		if !ok {
			continue
		}

		if inv.CreatedAt.IsZero() {
			return nil, &finance.MalformedRecordError{Entity: "invoice", ID: inv.ID, Field: "createdAt"}
		}

		desc := inv.Description
		if desc == "" {
			desc = fmt.Sprintf("Montant: %.2f€, Échéance: %s", inv.OriginalAmount, inv.DueDate.Format("02/01/2006"))
		}

		amount := inv.OriginalAmount

		events = append(events, Event{
			ID:          "invoice_" + inv.ID.String(),
			Date:        inv.CreatedAt,
			Type:        EventInvoice,
			Title:       fmt.Sprintf("Facture %s - %s", inv.InvoiceNumber, d.Name),
			Description: desc,
			DebtorID:    inv.DebtorID,
			DebtorName:  d.Name,
			Status:      string(inv.Status),
			Amount:      &amount,
		})
	}

	return listing.SortBy(events, func(a, b Event) int {
		return listing.CompareTimes(a.Date, b.Date)
	}, listing.Desc), nil
}

// EventFilter narrows a feed; parts are AND-combined and "all"/empty
// disables a part. Now anchors the rolling date buckets.
type EventFilter struct {
	Search   string
	Type     string
	DebtorID string
	Date     listing.DateRange
	Now      time.Time
}

// FilterEvents applies the filter, preserving feed order. The text
// search covers title, description and debtor name.
func FilterEvents(events []Event, f EventFilter) []Event {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	return listing.Filter(events, func(e Event) bool {
		return listing.MatchText(f.Search, e.Title, e.Description, e.DebtorName) &&
			listing.MatchExact(f.Type, e.Type) &&
			listing.MatchExact(f.DebtorID, e.DebtorID.String()) &&
			(f.Date == "" || f.Date.Contains(e.Date, now))
	})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
