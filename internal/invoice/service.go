package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrDuplicateNumber = errors.New("duplicate invoice number")
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	ClientID *uuid.UUID
	DebtorID *uuid.UUID
	Status   *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID       uuid.UUID
	DebtorID       uuid.UUID
	InvoiceNumber  string
	OriginalAmount float64
	PaidAmount     float64
	DueDate        time.Time
	IssueDate      time.Time
	Status         Status
	Description    string
	Category       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		ClientID:       params.ClientID,
		DebtorID:       params.DebtorID,
		InvoiceNumber:  params.InvoiceNumber,
		Amount:         params.OriginalAmount - params.PaidAmount,
		OriginalAmount: params.OriginalAmount,
		PaidAmount:     params.PaidAmount,
		DueDate:        params.DueDate,
		IssueDate:      params.IssueDate,
		Status:         params.Status,
		Description:    params.Description,
		Category:       params.Category,
	}

	if inv.Status == "" {
		inv.Status = StatusPending
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	inv.Amount = inv.OriginalAmount - inv.PaidAmount
	return s.repo.UpdateInvoice(ctx, inv)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}
