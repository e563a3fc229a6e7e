package communication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("communication not found")

type Repository interface {
	CreateCommunication(ctx context.Context, c *Communication) error
	GetCommunication(ctx context.Context, id uuid.UUID) (*Communication, error)
	ListCommunications(ctx context.Context, filter ListFilter) ([]*Communication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteCommunication(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	ClientID *uuid.UUID
	DebtorID *uuid.UUID
	Type     *Type
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID uuid.UUID
	DebtorID uuid.UUID
	UserID   *uuid.UUID
	Type     Type
	Subject  string
	Content  string
	SentAt   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Communication, error) {
	c := &Communication{
		ClientID: params.ClientID,
		DebtorID: params.DebtorID,
		UserID:   params.UserID,
		Type:     params.Type,
		Subject:  params.Subject,
		Content:  params.Content,
		Status:   StatusSent,
		SentAt:   params.SentAt,
	}

	if err := s.repo.CreateCommunication(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Communication, error) {
	return s.repo.GetCommunication(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Communication, error) {
	return s.repo.ListCommunications(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCommunication(ctx, id)
}
