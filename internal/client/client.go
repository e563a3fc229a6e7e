package client

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Client is a creditor on whose behalf debtor files are collected.
type Client struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	ManagerID       *uuid.UUID
	Name            string
	Email           string
	Phone           string
	Address         string
	Company         string
	Status          Status
	TotalAmount     float64 // Total outstanding across the client's debtors
	CollectedAmount float64
	Notes           []string
	ContractEndDate *time.Time
	LastContact     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
