package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment is money received from a debtor. InvoiceID is nil for
// unallocated payments.
type Payment struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	DebtorID    uuid.UUID
	InvoiceID   *uuid.UUID
	Amount      float64
	PaymentDate time.Time
	Method      string
	Reference   string
	Status      Status
	Notes       string
	CreatedAt   time.Time
}
