package debtor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("debtor not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debtor
type Repository interface {
	CreateDebtor(ctx context.Context, d *Debtor) error
	GetDebtor(ctx context.Context, id uuid.UUID) (*Debtor, error)
	UpdateDebtor(ctx context.Context, d *Debtor) error
	UpdateRecoveryStatus(ctx context.Context, id uuid.UUID, status RecoveryStatus) error
	ListDebtors(ctx context.Context, filter ListFilter) ([]*Debtor, error)
	DeleteDebtor(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
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
	OriginalAmount float64
	PaidAmount     float64
	DaysOverdue    int
}

type ListFilter struct {
	ClientID       *uuid.UUID
	ManagerID      *uuid.UUID
	Status         *Status
	RecoveryStatus *RecoveryStatus
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Debtor, error) {
	d := &Debtor{
		ClientID:       params.ClientID,
		ManagerID:      params.ManagerID,
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		Address:        params.Address,
		Company:        params.Company,
		Type:           params.Type,
		Status:         params.Status,
		RecoveryStatus: params.RecoveryStatus,
		Priority:       params.Priority,
		RiskLevel:      params.RiskLevel,
		TotalAmount:    params.OriginalAmount - params.PaidAmount,
		OriginalAmount: params.OriginalAmount,
		PaidAmount:     params.PaidAmount,
		DaysOverdue:    params.DaysOverdue,
	}

	if d.Type == "" {
		d.Type = TypeIndividual
	}

	if d.Status == "" {
		d.Status = StatusNew
	}

	if d.RecoveryStatus == "" {
		d.RecoveryStatus = RecoveryBlue
	}

	if d.Priority == "" {
		d.Priority = PriorityMedium
	}

	if d.RiskLevel == "" {
		d.RiskLevel = RiskMedium
	}

	if err := s.repo.CreateDebtor(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Debtor, error) {
	return s.repo.GetDebtor(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Debtor, error) {
	return s.repo.ListDebtors(ctx, filter)
}

func (s *Service) Update(ctx context.Context, d *Debtor) error {
	// The remaining due is derived, never trusted from the caller.
	d.TotalAmount = d.OriginalAmount - d.PaidAmount
	return s.repo.UpdateDebtor(ctx, d)
}

// Escalate moves a file to the given reminder tier.
func (s *Service) Escalate(ctx context.Context, id uuid.UUID, status RecoveryStatus) error {
	return s.repo.UpdateRecoveryStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDebtor(ctx, id)
}
