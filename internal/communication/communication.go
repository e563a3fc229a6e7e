package communication

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeEmail  Type = "email"
	TypeSMS    Type = "sms"
	TypeCall   Type = "call"
	TypeLetter Type = "letter"
)

type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
	StatusFailed    Status = "failed"
)

// Communication is a contact attempt with a debtor (email, sms, call
// or letter).
type Communication struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	DebtorID  uuid.UUID
	UserID    *uuid.UUID
	Type      Type
	Subject   string
	Content   string
	Status    Status
	SentAt    *time.Time
	CreatedAt time.Time
}
