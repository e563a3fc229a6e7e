package finance_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/payment"
)

func TestRecoveryRate(t *testing.T) {
	type testCase struct {
		name     string
		paid     float64
		original float64
		want     float64
	}

	tests := []testCase{
		{name: "SeedScenario", paid: 2700, original: 15000, want: 18.0},
		{name: "ZeroOriginal", paid: 500, original: 0, want: 0},
		{name: "ZeroBoth", paid: 0, original: 0, want: 0},
		{name: "FullyPaid", paid: 8750.50, original: 8750.50, want: 100},
		{name: "OverpaidNotClamped", paid: 1500, original: 1000, want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, finance.RecoveryRate(tt.paid, tt.original), 1e-9)
		})
	}
}

func TestAggregate(t *testing.T) {
	d := &debtor.Debtor{
		ID:             uuid.New(),
		OriginalAmount: 15000,
		PaidAmount:     2700,
	}

	other := uuid.New()

	invoices := []*invoice.Invoice{
		{ID: uuid.New(), DebtorID: d.ID, OriginalAmount: 8750.50, Status: invoice.StatusOverdue},
		{ID: uuid.New(), DebtorID: d.ID, OriginalAmount: 7000, PaidAmount: 2500, Status: invoice.StatusPartial},
		// Orphaned invoice: belongs to a debtor that is not part of
		// this aggregation and must be skipped silently.
		{ID: uuid.New(), DebtorID: other, OriginalAmount: 999, Status: invoice.StatusOverdue},
	}

	payments := []*payment.Payment{
		{ID: uuid.New(), DebtorID: d.ID, Amount: 2500},
		{ID: uuid.New(), DebtorID: other, Amount: 123},
	}

	m, err := finance.Aggregate(d, invoices, payments)
	require.NoError(t, err)

	assert.InDelta(t, 18.0, m.RecoveryRatePct, 1e-9)
	assert.InDelta(t, 12300, m.TotalOwed, 1e-9)
	assert.InDelta(t, 2700, m.TotalPaid, 1e-9)
	assert.InDelta(t, 15000, m.TotalOriginal, 1e-9)
	assert.Equal(t, 1, m.OverdueInvoiceCount)
}

func TestAggregate_MalformedAmount(t *testing.T) {
	d := &debtor.Debtor{ID: uuid.New(), OriginalAmount: 100}

	bad := &invoice.Invoice{ID: uuid.New(), DebtorID: d.ID, OriginalAmount: math.NaN()}

	_, err := finance.Aggregate(d, []*invoice.Invoice{bad}, nil)
	require.Error(t, err)

	var malformed *finance.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "invoice", malformed.Entity)
	assert.Equal(t, bad.ID, malformed.ID)
}

func TestPortfolio_AvgIsPerDebtorMean(t *testing.T) {
	debtors := []*debtor.Debtor{
		{ID: uuid.New(), OriginalAmount: 100, PaidAmount: 100},  // 100%
		{ID: uuid.New(), OriginalAmount: 10000, PaidAmount: 0},  // 0%
		{ID: uuid.New(), OriginalAmount: 200, PaidAmount: 100},  // 50%
	}

	m, err := finance.Portfolio(debtors)
	require.NoError(t, err)

	// Mean of per-debtor rates: (100 + 0 + 50) / 3. The weighted
	// alternative sum(paid)/sum(original)*100 would be ~1.94%.
	assert.InDelta(t, 50.0, m.AvgRecoveryRate, 1e-9)
	assert.InDelta(t, 10100, m.TotalAmount, 1e-9)
	assert.InDelta(t, 200, m.TotalCollected, 1e-9)
	assert.InDelta(t, 10300, m.TotalOriginal, 1e-9)
}

func TestPortfolio_Counts(t *testing.T) {
	debtors := []*debtor.Debtor{
		{ID: uuid.New(), DaysOverdue: 12, Status: debtor.StatusInProgress},
		{ID: uuid.New(), DaysOverdue: 0, Status: debtor.StatusRecovered},
		{ID: uuid.New(), DaysOverdue: 3, Status: debtor.StatusRecovered},
	}

	m, err := finance.Portfolio(debtors)
	require.NoError(t, err)

	assert.Equal(t, 2, m.OverdueCount)
	assert.Equal(t, 2, m.RecoveredCount)
}

func TestPortfolio_Empty(t *testing.T) {
	m, err := finance.Portfolio(nil)
	require.NoError(t, err)
	assert.Zero(t, m.AvgRecoveryRate)
	assert.Zero(t, m.TotalAmount)
}
