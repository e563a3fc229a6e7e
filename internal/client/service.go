package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	GetClientByUser(ctx context.Context, userID uuid.UUID) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	ManagerID *uuid.UUID
	Status    *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID    *uuid.UUID
	ManagerID *uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	Company   string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	c := &Client{
		UserID:    params.UserID,
		ManagerID: params.ManagerID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
		Company:   params.Company,
		Status:    StatusActive,
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

// GetByUser resolves the client record behind a portal login.
func (s *Service) GetByUser(ctx context.Context, userID uuid.UUID) (*Client, error) {
	return s.repo.GetClientByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.ListClients(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	return s.repo.UpdateClient(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}
