package listing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
)

func TestMatchText(t *testing.T) {
	type testCase struct {
		name   string
		term   string
		fields []string
		want   bool
	}

	tests := []testCase{
		{name: "EmptyTermMatchesAll", term: "", fields: []string{"anything"}, want: true},
		{name: "CaseInsensitive", term: "martin", fields: []string{"Jean Martin"}, want: true},
		{name: "Substring", term: "art", fields: []string{"Jean Martin"}, want: true},
		{name: "AnyFieldOrCombined", term: "sarl", fields: []string{"Jean Martin", "Martin SARL"}, want: true},
		{name: "NoMatch", term: "dupont", fields: []string{"Jean Martin", "Martin SARL"}, want: false},
		{name: "UpperCaseTerm", term: "MARTIN", fields: []string{"jean martin"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listing.MatchText(tt.term, tt.fields...))
		})
	}
}

func TestMatchExact(t *testing.T) {
	assert.True(t, listing.MatchExact("all", debtor.StatusNew))
	assert.True(t, listing.MatchExact("", debtor.StatusNew))
	assert.True(t, listing.MatchExact("new", debtor.StatusNew))
	assert.False(t, listing.MatchExact("recovered", debtor.StatusNew))
}

func TestDateRange_Contains(t *testing.T) {
	now := time.Date(2024, 12, 15, 14, 30, 0, 0, time.Local)

	type testCase struct {
		name  string
		rng   listing.DateRange
		t     time.Time
		wantIn bool
	}

	tests := []testCase{
		{name: "AllAlwaysMatches", rng: listing.RangeAll, t: now.AddDate(-3, 0, 0), wantIn: true},
		{name: "TodayEarlyMorning", rng: listing.RangeToday, t: time.Date(2024, 12, 15, 0, 0, 0, 0, time.Local), wantIn: true},
		{name: "TodayYesterdayEvening", rng: listing.RangeToday, t: time.Date(2024, 12, 14, 23, 59, 59, 0, time.Local), wantIn: false},
		{name: "WeekSixDaysAgo", rng: listing.RangeWeek, t: now.AddDate(0, 0, -6), wantIn: true},
		{name: "WeekSevenDaysAgoInclusive", rng: listing.RangeWeek, t: now.AddDate(0, 0, -7), wantIn: true},
		{name: "WeekEightDaysAgo", rng: listing.RangeWeek, t: now.AddDate(0, 0, -8), wantIn: false},
		{name: "MonthTwentyNineDaysAgo", rng: listing.RangeMonth, t: now.AddDate(0, 0, -29), wantIn: true},
		{name: "MonthThirtyOneDaysAgo", rng: listing.RangeMonth, t: now.AddDate(0, 0, -31), wantIn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIn, tt.rng.Contains(tt.t, now))
		})
	}
}

func TestFilterDebtors(t *testing.T) {
	clientA := uuid.New()
	clientB := uuid.New()

	debtors := []*debtor.Debtor{
		{Name: "Jean Martin", Company: "Martin SARL", Email: "jean@martin.fr", ClientID: clientA, Status: debtor.StatusInProgress, RecoveryStatus: debtor.RecoveryOrange},
		{Name: "Pierre Dubois", Company: "Dubois & Fils", Email: "pierre@dubois.fr", ClientID: clientA, Status: debtor.StatusNew, RecoveryStatus: debtor.RecoveryBlue},
		{Name: "Sophie Laurent", Company: "", Email: "sophie@laurent.fr", ClientID: clientB, Status: debtor.StatusInProgress, RecoveryStatus: debtor.RecoveryCritical},
	}

	t.Run("SearchLowercaseMatchesMixedCase", func(t *testing.T) {
		got := listing.FilterDebtors(debtors, listing.DebtorFilter{Search: "martin"})
		require.Len(t, got, 1)
		assert.Equal(t, "Jean Martin", got[0].Name)
	})

	t.Run("StatusAndClient", func(t *testing.T) {
		got := listing.FilterDebtors(debtors, listing.DebtorFilter{
			Status:   "inProgress",
			ClientID: clientA.String(),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Jean Martin", got[0].Name)
	})

	t.Run("AllWildcards", func(t *testing.T) {
		got := listing.FilterDebtors(debtors, listing.DebtorFilter{
			Status:         "all",
			RecoveryStatus: "all",
			ClientID:       "all",
		})
		assert.Len(t, got, 3)
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		got := listing.FilterDebtors(debtors, listing.DebtorFilter{Status: "inProgress"})
		require.Len(t, got, 2)
		assert.Equal(t, "Jean Martin", got[0].Name)
		assert.Equal(t, "Sophie Laurent", got[1].Name)
	})
}

func TestFilterInvoices_ByStatus(t *testing.T) {
	invoices := []*invoice.Invoice{
		{InvoiceNumber: "FAC-2024-001", Amount: 8750.50, Status: invoice.StatusOverdue},
		{InvoiceNumber: "FAC-2024-002", Amount: 4500.00, Status: invoice.StatusPartial},
	}

	got := listing.FilterInvoices(invoices, listing.InvoiceFilter{Status: "overdue"})
	require.Len(t, got, 1)
	assert.Equal(t, "FAC-2024-001", got[0].InvoiceNumber)
}

// AND-combination is commutative: applying predicates in either order
// yields the same result set.
func TestFilter_PredicateOrderIrrelevant(t *testing.T) {
	debtors := []*debtor.Debtor{
		{Name: "Jean Martin", Status: debtor.StatusInProgress},
		{Name: "Jean Dupont", Status: debtor.StatusNew},
		{Name: "Paul Martin", Status: debtor.StatusInProgress},
	}

	search := func(d *debtor.Debtor) bool { return listing.MatchText("martin", d.Name) }
	inProgress := func(d *debtor.Debtor) bool { return listing.MatchExact("inProgress", d.Status) }

	assert.Equal(t,
		listing.Filter(debtors, search, inProgress),
		listing.Filter(debtors, inProgress, search),
	)
}
