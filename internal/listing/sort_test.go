package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/listing"
)

func TestSortDebtors_RecoveryStatusDesc(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "A", RecoveryStatus: debtor.RecoveryYellow},
		{Name: "B", RecoveryStatus: debtor.RecoveryCritical},
		{Name: "C", RecoveryStatus: debtor.RecoveryBlue},
	}

	got := listing.SortDebtors(debtors, listing.ByRecoveryStatus, listing.Desc)

	require.Len(t, got, 3)
	assert.Equal(t, debtor.RecoveryCritical, got[0].RecoveryStatus)
	assert.Equal(t, debtor.RecoveryYellow, got[1].RecoveryStatus)
	assert.Equal(t, debtor.RecoveryBlue, got[2].RecoveryStatus)
}

func TestSortDebtors_PriorityOrder(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "A", Priority: debtor.PriorityHigh},
		{Name: "B", Priority: debtor.PriorityLow},
		{Name: "C", Priority: debtor.PriorityUrgent},
		{Name: "D", Priority: debtor.PriorityMedium},
	}

	got := listing.SortDebtors(debtors, listing.ByPriority, listing.Asc)

	want := []debtor.Priority{debtor.PriorityLow, debtor.PriorityMedium, debtor.PriorityHigh, debtor.PriorityUrgent}
	for i, p := range want {
		assert.Equal(t, p, got[i].Priority)
	}
}

func TestSortDebtors_NameUsesCollation(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "Zola"},
		{Name: "Éric"},
		{Name: "Adam"},
	}

	got := listing.SortDebtors(debtors, listing.ByName, listing.Asc)

	// Code-point order would put "Éric" after "Zola"; collation keeps
	// it between Adam and Zola.
	assert.Equal(t, "Adam", got[0].Name)
	assert.Equal(t, "Éric", got[1].Name)
	assert.Equal(t, "Zola", got[2].Name)
}

func TestSortDebtors_NonMutating(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "B", TotalAmount: 2},
		{Name: "A", TotalAmount: 1},
	}

	_ = listing.SortDebtors(debtors, listing.ByAmount, listing.Asc)

	assert.Equal(t, "B", debtors[0].Name)
	assert.Equal(t, "A", debtors[1].Name)
}

func TestSortBy_StableOnTies(t *testing.T) {
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	debtors := []*debtor.Debtor{
		{Name: "first", DaysOverdue: 10, UpdatedAt: base},
		{Name: "second", DaysOverdue: 10, UpdatedAt: base},
		{Name: "third", DaysOverdue: 5, UpdatedAt: base},
	}

	t.Run("AscTiesKeepInputOrder", func(t *testing.T) {
		got := listing.SortDebtors(debtors, listing.ByDaysOverdue, listing.Asc)
		assert.Equal(t, "third", got[0].Name)
		assert.Equal(t, "first", got[1].Name)
		assert.Equal(t, "second", got[2].Name)
	})

	t.Run("DescTiesKeepInputOrder", func(t *testing.T) {
		// Descending negates the comparator instead of reversing the
		// slice, so ties still follow input order.
		got := listing.SortDebtors(debtors, listing.ByDaysOverdue, listing.Desc)
		assert.Equal(t, "first", got[0].Name)
		assert.Equal(t, "second", got[1].Name)
		assert.Equal(t, "third", got[2].Name)
	})
}

func TestSortBy_Idempotent(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "C", TotalAmount: 3},
		{Name: "A", TotalAmount: 1},
		{Name: "B", TotalAmount: 1},
	}

	once := listing.SortDebtors(debtors, listing.ByAmount, listing.Desc)
	twice := listing.SortDebtors(once, listing.ByAmount, listing.Desc)

	assert.Equal(t, once, twice)
}

func TestSortDebtors_UnknownFieldKeepsOrder(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "B"},
		{Name: "A"},
	}

	got := listing.SortDebtors(debtors, listing.DebtorSortField("bogus"), listing.Desc)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}
