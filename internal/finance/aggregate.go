// Package finance derives display-ready monetary metrics from debtor,
// invoice and payment records. Every function is a pure transformation
// over its arguments; nothing here reads shared state or performs I/O.
package finance

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/payment"
)

// MalformedRecordError reports a record whose required numeric or date
// field is unusable. The record id is carried for diagnostics.
type MalformedRecordError struct {
	Entity string
	ID     uuid.UUID
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s %s: bad %s", e.Entity, e.ID, e.Field)
}

// Metrics are the derived per-debtor figures the portfolio screens
// display.
type Metrics struct {
	RecoveryRatePct     float64
	TotalOwed           float64
	TotalPaid           float64
	TotalOriginal       float64
	OverdueInvoiceCount int
}

// RecoveryRate returns the percentage of the original amount that has
// been paid. Zero when nothing was owed. Deliberately not clamped at
// 100: an overpaying debtor yields >100% and the anomaly stays
// visible.
func RecoveryRate(paid, original float64) float64 {
	if original > 0 {
		return paid / original * 100
	}

	return 0
}

// Aggregate computes the derived metrics for one debtor. Invoices and
// payments referencing a different debtor are skipped, not errors:
// partial datasets are normal after deletions. Whether an invoice is
// overdue is read from its stored status; freshness of that
// classification is the store's concern.
func Aggregate(d *debtor.Debtor, invoices []*invoice.Invoice, payments []*payment.Payment) (Metrics, error) {
	if err := checkAmounts("debtor", d.ID, d.OriginalAmount, d.PaidAmount); err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		RecoveryRatePct: RecoveryRate(d.PaidAmount, d.OriginalAmount),
		TotalOwed:       d.OriginalAmount - d.PaidAmount,
		TotalPaid:       d.PaidAmount,
		TotalOriginal:   d.OriginalAmount,
	}

	for _, inv := range invoices {
		if inv.DebtorID != d.ID {
			continue
		}

		if err := checkAmounts("invoice", inv.ID, inv.OriginalAmount, inv.PaidAmount); err != nil {
			return Metrics{}, err
		}

		if inv.Status == invoice.StatusOverdue {
			m.OverdueInvoiceCount++
		}
	}

	for _, p := range payments {
		if p.DebtorID != d.ID {
			continue
		}

		if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
			return Metrics{}, &MalformedRecordError{Entity: "payment", ID: p.ID, Field: "amount"}
		}
	}

	return m, nil
}

// PortfolioMetrics are the roll-up figures for a client's (or a
// manager's) whole set of debtor files.
type PortfolioMetrics struct {
	TotalAmount     float64
	TotalCollected  float64
	TotalOriginal   float64
	AvgRecoveryRate float64
	OverdueCount    int
	RecoveredCount  int
}

// Portfolio rolls up a set of debtors. AvgRecoveryRate is the
// arithmetic mean of each debtor's own rate, not the paid/original
// ratio over the summed balances; the two differ when balances vary
// and the screens show the former.
func Portfolio(debtors []*debtor.Debtor) (PortfolioMetrics, error) {
	var m PortfolioMetrics

	var rateSum float64

	for _, d := range debtors {
		if err := checkAmounts("debtor", d.ID, d.OriginalAmount, d.PaidAmount); err != nil {
			return PortfolioMetrics{}, err
		}

		m.TotalAmount += d.OriginalAmount - d.PaidAmount
		m.TotalCollected += d.PaidAmount
		m.TotalOriginal += d.OriginalAmount
		rateSum += RecoveryRate(d.PaidAmount, d.OriginalAmount)

		if d.DaysOverdue > 0 {
			m.OverdueCount++
		}

		if d.Status == debtor.StatusRecovered {
			m.RecoveredCount++
		}
	}

	if len(debtors) > 0 {
		m.AvgRecoveryRate = rateSum / float64(len(debtors))
	}

	return m, nil
}

func checkAmounts(entity string, id uuid.UUID, original, paid float64) error {
	if math.IsNaN(original) || math.IsInf(original, 0) {
		return &MalformedRecordError{Entity: entity, ID: id, Field: "originalAmount"}
	}

	if math.IsNaN(paid) || math.IsInf(paid, 0) {
		return &MalformedRecordError{Entity: entity, ID: id, Field: "paidAmount"}
	}

	return nil
}
