package timeline_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/finance"
	"github.com/mewicrm/mewi/internal/invoice"
	"github.com/mewicrm/mewi/internal/listing"
	"github.com/mewicrm/mewi/internal/payment"
	"github.com/mewicrm/mewi/internal/timeline"
)

func day(offset int) time.Time {
	return time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func fixtures() (uuid.UUID, []*debtor.Debtor, []*invoice.Invoice, []*payment.Payment, []*communication.Communication) {
	clientID := uuid.New()

	d := &debtor.Debtor{
		ID:             uuid.New(),
		ClientID:       clientID,
		Name:           "Pierre Dubois",
		RecoveryStatus: debtor.RecoveryOrange,
		UpdatedAt:      day(3),
	}

	inv := &invoice.Invoice{
		ID:             uuid.New(),
		ClientID:       clientID,
		DebtorID:       d.ID,
		InvoiceNumber:  "FAC-2024-002",
		OriginalAmount: 7000,
		DueDate:        day(10),
		Status:         invoice.StatusPartial,
		CreatedAt:      day(0),
	}

	p := &payment.Payment{
		ID:          uuid.New(),
		ClientID:    clientID,
		DebtorID:    d.ID,
		InvoiceID:   &inv.ID,
		Amount:      2500,
		PaymentDate: day(5),
		Method:      "Virement bancaire",
		Status:      payment.StatusCompleted,
	}

	c := &communication.Communication{
		ID:        uuid.New(),
		ClientID:  clientID,
		DebtorID:  d.ID,
		Type:      communication.TypeEmail,
		Subject:   "Rappel de paiement urgent",
		Content:   "Bonjour Pierre Dubois, nous vous rappelons que votre facture est en retard...",
		Status:    communication.StatusDelivered,
		CreatedAt: day(7),
	}

	return clientID, []*debtor.Debtor{d}, []*invoice.Invoice{inv}, []*payment.Payment{p}, []*communication.Communication{c}
}

func TestBuild_MergesAllSources(t *testing.T) {
	clientID, debtors, invoices, payments, comms := fixtures()

	events, err := timeline.Build(clientID, debtors, invoices, payments, comms)
	require.NoError(t, err)
	require.Len(t, events, 4)

	types := map[timeline.EventType]int{}
	for _, e := range events {
		types[e.Type]++
	}

	assert.Equal(t, 1, types[timeline.EventCommunication])
	assert.Equal(t, 1, types[timeline.EventPayment])
	assert.Equal(t, 1, types[timeline.EventInvoice])
	assert.Equal(t, 1, types[timeline.EventStatusChange])
}

func TestBuild_NewestFirst(t *testing.T) {
	clientID, debtors, invoices, payments, comms := fixtures()

	events, err := timeline.Build(clientID, debtors, invoices, payments, comms)
	require.NoError(t, err)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i-1].Date.Before(events[i].Date),
			"event %d (%s) older than event %d (%s)", i-1, events[i-1].ID, i, events[i].ID)
	}
}

func TestBuild_PaymentDetails(t *testing.T) {
	clientID, debtors, invoices, payments, comms := fixtures()

	events, err := timeline.Build(clientID, debtors, invoices, payments, comms)
	require.NoError(t, err)

	var pe *timeline.Event

	for i := range events {
		if events[i].Type == timeline.EventPayment {
			pe = &events[i]
		}
	}

	require.NotNil(t, pe)
	assert.Equal(t, "Paiement - Pierre Dubois", pe.Title)
	assert.Equal(t, "Virement bancaire - FAC-2024-002", pe.Description)
	require.NotNil(t, pe.Amount)
	assert.InDelta(t, 2500, *pe.Amount, 1e-9)
}

// One synthetic transition per debtor off the base tier, dated at
// UpdatedAt. Full history would need an audit log; only the current
// status is reconstructed.
func TestBuild_SingleSyntheticStatusEvent(t *testing.T) {
	clientID, debtors, _, _, _ := fixtures()

	events, err := timeline.Build(clientID, debtors, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, timeline.EventStatusChange, e.Type)
	assert.Equal(t, "Statut changé - Pierre Dubois", e.Title)
	assert.Equal(t, "Passage en statut Relance 2", e.Description)
	assert.Equal(t, day(3), e.Date)
}

func TestBuild_BlueDebtorHasNoStatusEvent(t *testing.T) {
	clientID := uuid.New()

	d := &debtor.Debtor{ID: uuid.New(), ClientID: clientID, Name: "Calme", RecoveryStatus: debtor.RecoveryBlue, UpdatedAt: day(0)}

	events, err := timeline.Build(clientID, []*debtor.Debtor{d}, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBuild_OrphansDropped(t *testing.T) {
	clientID, debtors, invoices, payments, comms := fixtures()

	// References a debtor that no longer exists.
	orphan := &payment.Payment{
		ID:          uuid.New(),
		ClientID:    clientID,
		DebtorID:    uuid.New(),
		Amount:      100,
		PaymentDate: day(1),
	}

	events, err := timeline.Build(clientID, debtors, invoices, append(payments, orphan), comms)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestBuild_OtherClientExcluded(t *testing.T) {
	_, debtors, invoices, payments, comms := fixtures()

	events, err := timeline.Build(uuid.New(), debtors, invoices, payments, comms)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBuild_MalformedDate(t *testing.T) {
	clientID, debtors, _, _, _ := fixtures()

	bad := &communication.Communication{
		ID:       uuid.New(),
		ClientID: clientID,
		DebtorID: debtors[0].ID,
		Type:     communication.TypeCall,
	}

	_, err := timeline.Build(clientID, debtors, nil, nil, []*communication.Communication{bad})
	require.Error(t, err)

	var malformed *finance.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, bad.ID, malformed.ID)
	assert.Equal(t, "createdAt", malformed.Field)
}

func TestBuild_LongContentTruncated(t *testing.T) {
	clientID, debtors, _, _, _ := fixtures()

	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'é')
	}

	c := &communication.Communication{
		ID:        uuid.New(),
		ClientID:  clientID,
		DebtorID:  debtors[0].ID,
		Type:      communication.TypeEmail,
		Subject:   "Long",
		Content:   string(long),
		CreatedAt: day(2),
	}

	events, err := timeline.Build(clientID, debtors, nil, nil, []*communication.Communication{c})
	require.NoError(t, err)

	var comm *timeline.Event

	for i := range events {
		if events[i].Type == timeline.EventCommunication {
			comm = &events[i]
		}
	}

	require.NotNil(t, comm)
	assert.Equal(t, 103, len([]rune(comm.Description)))
	assert.True(t, len([]rune(comm.Description)) < 150)
}

func TestFilterEvents(t *testing.T) {
	clientID, debtors, invoices, payments, comms := fixtures()

	events, err := timeline.Build(clientID, debtors, invoices, payments, comms)
	require.NoError(t, err)

	t.Run("ByType", func(t *testing.T) {
		got := timeline.FilterEvents(events, timeline.EventFilter{Type: "payment"})
		require.Len(t, got, 1)
		assert.Equal(t, timeline.EventPayment, got[0].Type)
	})

	t.Run("BySearch", func(t *testing.T) {
		got := timeline.FilterEvents(events, timeline.EventFilter{Search: "rappel"})
		require.Len(t, got, 1)
		assert.Equal(t, timeline.EventCommunication, got[0].Type)
	})

	t.Run("ByDateBucket", func(t *testing.T) {
		got := timeline.FilterEvents(events, timeline.EventFilter{
			Date: listing.RangeWeek,
			Now:  day(7),
		})
		assert.Len(t, got, 4)

		got = timeline.FilterEvents(events, timeline.EventFilter{
			Date: listing.RangeToday,
			Now:  day(30),
		})
		assert.Empty(t, got)
	})

	t.Run("AllWildcards", func(t *testing.T) {
		got := timeline.FilterEvents(events, timeline.EventFilter{Type: "all", DebtorID: "all", Date: listing.RangeAll, Now: day(8)})
		assert.Len(t, got, 4)
	})
}
