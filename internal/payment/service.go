package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("payment not found")

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	ClientID  *uuid.UUID
	DebtorID  *uuid.UUID
	InvoiceID *uuid.UUID
	Status    *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID    uuid.UUID
	DebtorID    uuid.UUID
	InvoiceID   *uuid.UUID
	Amount      float64
	PaymentDate time.Time
	Method      string
	Reference   string
	Status      Status
	Notes       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Payment, error) {
	p := &Payment{
		ClientID:    params.ClientID,
		DebtorID:    params.DebtorID,
		InvoiceID:   params.InvoiceID,
		Amount:      params.Amount,
		PaymentDate: params.PaymentDate,
		Method:      params.Method,
		Reference:   params.Reference,
		Status:      params.Status,
		Notes:       params.Notes,
	}

	if p.Status == "" {
		p.Status = StatusPending
	}

	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePayment(ctx, id)
}
