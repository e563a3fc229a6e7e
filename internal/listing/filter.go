// Package listing turns raw entity slices into the filtered, sorted
// views the portal screens display. Filtering and sorting are separate
// stages: Filter preserves input order, SortBy establishes a new one.
package listing

import (
	"strings"
	"time"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/invoice"
)

// Filter returns the records matching every predicate, in input order.
func Filter[T any](records []T, predicates ...func(T) bool) []T {
	out := make([]T, 0, len(records))

	for _, r := range records {
		matches := true

		for _, p := range predicates {
			if !p(r) {
				matches = false
				break
			}
		}

		if matches {
			out = append(out, r)
		}
	}

	return out
}

// MatchText reports whether any of the fields contains the search term,
// case-insensitively. An empty term matches everything.
func MatchText(term string, fields ...string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}

	return false
}

// MatchExact reports whether the value satisfies an exact-match filter.
// The filter value "all" means no constraint.
func MatchExact[S ~string](filter string, value S) bool {
	return filter == "" || filter == "all" || filter == string(value)
}

// DateRange is a rolling date bucket filter.
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// Contains reports whether t falls inside the bucket, evaluated
// relative to now. Today is midnight-to-midnight in now's location;
// week and month roll back 7 and 30 days from now. Buckets are not
// calendar-aligned.
func (r DateRange) Contains(t, now time.Time) bool {
	switch r {
	case RangeToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return !t.Before(midnight) && t.Before(midnight.AddDate(0, 0, 1))
	case RangeWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case RangeMonth:
		return !t.Before(now.AddDate(0, 0, -30))
	}

	return true
}

// DebtorFilter is the compound filter of the debtor list screens. All
// parts are AND-combined; "all" or empty disables a part.
type DebtorFilter struct {
	Search         string
	Status         string
	RecoveryStatus string
	ClientID       string
}

// FilterDebtors applies the compound filter, preserving input order.
// The text search covers name, company and email.
func FilterDebtors(debtors []*debtor.Debtor, f DebtorFilter) []*debtor.Debtor {
	return Filter(debtors, func(d *debtor.Debtor) bool {
		return MatchText(f.Search, d.Name, d.Company, d.Email) &&
			MatchExact(f.Status, d.Status) &&
			MatchExact(f.RecoveryStatus, d.RecoveryStatus) &&
			MatchExact(f.ClientID, d.ClientID.String())
	})
}

// InvoiceFilter is the compound filter of the invoice list screens.
type InvoiceFilter struct {
	Search   string
	Status   string
	DebtorID string
}

// FilterInvoices applies the compound filter, preserving input order.
// The text search covers invoice number and description.
func FilterInvoices(invoices []*invoice.Invoice, f InvoiceFilter) []*invoice.Invoice {
	return Filter(invoices, func(inv *invoice.Invoice) bool {
		return MatchText(f.Search, inv.InvoiceNumber, inv.Description) &&
			MatchExact(f.Status, inv.Status) &&
			MatchExact(f.DebtorID, inv.DebtorID.String())
	})
}
