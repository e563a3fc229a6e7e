package invoice

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Invoice is a single claim against a debtor. Amount is the remaining
// due; whether it is overdue is a stored classification maintained by
// the store, not recomputed by readers.
type Invoice struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	DebtorID       uuid.UUID
	InvoiceNumber  string
	Amount         float64
	OriginalAmount float64
	PaidAmount     float64
	DueDate        time.Time
	IssueDate      time.Time
	Status         Status
	Description    string
	Category       string
	CreatedAt      time.Time
}
