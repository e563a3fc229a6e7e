package debtor

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes company files from individual ones.
type Type string

const (
	TypeCompany    Type = "company"
	TypeIndividual Type = "individual"
)

// Status is the workflow stage of a collection case, orthogonal to the
// recovery (reminder escalation) status.
type Status string

const (
	StatusNew           Status = "new"
	StatusInProgress    Status = "inProgress"
	StatusPaymentPlan   Status = "paymentPlan"
	StatusDisputed      Status = "disputed"
	StatusLitigation    Status = "litigation"
	StatusRecovered     Status = "recovered"
	StatusUncollectible Status = "uncollectible"
)

// RecoveryStatus is the reminder escalation tier of a file.
type RecoveryStatus string

const (
	RecoveryBlue     RecoveryStatus = "blue"
	RecoveryYellow   RecoveryStatus = "yellow"
	RecoveryOrange   RecoveryStatus = "orange"
	RecoveryCritical RecoveryStatus = "critical"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// NextAction is the next planned step on a file, if any.
type NextAction struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Debtor represents a debtor file handled for a client.
type Debtor struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	ClientID       uuid.UUID
	ManagerID      *uuid.UUID
	Name           string
	Email          string
	Phone          string
	Address        string
	Company        string
	Type           Type
	Status         Status
	RecoveryStatus RecoveryStatus
	Priority       Priority
	RiskLevel      RiskLevel
	TotalAmount    float64 // Remaining due, in euros
	OriginalAmount float64
	PaidAmount     float64
	DaysOverdue    int
	InvoiceCount   int
	NextAction     *NextAction
	Notes          []string
	Tags           []string
	LastContact    *time.Time
	LastPayment    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
