package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `
	c.id, c.user_id, c.manager_id, c.name, c.email, c.phone, c.address, c.company,
	c.status, c.total_amount, c.collected_amount, c.notes, c.contract_end_date,
	c.last_contact, c.created_at, c.updated_at
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var statusStr string

	var notes []byte

	if err := s.Scan(
		&c.ID, &c.UserID, &c.ManagerID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Company,
		&statusStr, &c.TotalAmount, &c.CollectedAmount, &notes, &c.ContractEndDate,
		&c.LastContact, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = client.Status(statusStr)

	if err := json.Unmarshal(notes, &c.Notes); err != nil {
		return nil, fmt.Errorf("decoding notes: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	if c.Notes == nil {
		c.Notes = []string{}
	}

	notes, err := json.Marshal(c.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO clients (
			id, user_id, manager_id, name, email, phone, address, company, status,
			total_amount, collected_amount, notes, contract_end_date, last_contact, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.ManagerID, c.Name, c.Email, c.Phone, c.Address, c.Company, c.Status,
		c.TotalAmount, c.CollectedAmount, notes, c.ContractEndDate, c.LastContact,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients c WHERE c.id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) GetClientByUser(ctx context.Context, userID uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients c WHERE c.user_id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client by user: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients c WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ManagerID != nil {
		query += fmt.Sprintf(" AND c.manager_id = $%d", argIdx)

		args = append(args, *filter.ManagerID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY c.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	if c.Notes == nil {
		c.Notes = []string{}
	}

	notes, err := json.Marshal(c.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, company = $5, manager_id = $6,
			status = $7, total_amount = $8, collected_amount = $9, notes = $10,
			contract_end_date = $11, last_contact = $12, updated_at = NOW()
		WHERE id = $13
	`

	_, err = s.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.Company, c.ManagerID,
		c.Status, c.TotalAmount, c.CollectedAmount, notes,
		c.ContractEndDate, c.LastContact, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
