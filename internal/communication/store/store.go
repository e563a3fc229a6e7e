package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
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

const selectCommunicationColumns = `
	c.id, c.client_id, c.debiteur_id, c.user_id, c.type, c.subject,
	c.content, c.status, c.sent_at, c.created_at
`

func scanCommunication(s scanner) (*communication.Communication, error) {
	var c communication.Communication

	var typeStr, statusStr string

	if err := s.Scan(
		&c.ID, &c.ClientID, &c.DebtorID, &c.UserID, &typeStr, &c.Subject,
		&c.Content, &statusStr, &c.SentAt, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = communication.Type(typeStr)
	c.Status = communication.Status(statusStr)

	return &c, nil
}

func (s *Store) CreateCommunication(ctx context.Context, c *communication.Communication) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO communications (
			id, client_id, debiteur_id, user_id, type, subject, content, status, sent_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.ID, c.ClientID, c.DebtorID, c.UserID, c.Type, c.Subject, c.Content, c.Status, c.SentAt,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating communication: %w", err)
	}

	return nil
}

func (s *Store) GetCommunication(ctx context.Context, id uuid.UUID) (*communication.Communication, error) {
	query := `SELECT ` + selectCommunicationColumns + ` FROM communications c WHERE c.id = $1`

	c, err := scanCommunication(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, communication.ErrNotFound
		}

		return nil, fmt.Errorf("getting communication: %w", err)
	}

	return c, nil
}

func (s *Store) ListCommunications(ctx context.Context, filter communication.ListFilter) ([]*communication.Communication, error) {
	query := `SELECT ` + selectCommunicationColumns + ` FROM communications c WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND c.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.DebtorID != nil {
		query += fmt.Sprintf(" AND c.debiteur_id = $%d", argIdx)

		args = append(args, *filter.DebtorID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND c.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing communications: %w", err)
	}
	defer rows.Close()

	var comms []*communication.Communication

	for rows.Next() {
		c, err := scanCommunication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning communication: %w", err)
		}

		comms = append(comms, c)
	}

	return comms, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status communication.Status) error {
	_, err := s.db.ExecContext(ctx, `UPDATE communications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating communication status: %w", err)
	}

	return nil
}

func (s *Store) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM communications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting communication: %w", err)
	}

	return nil
}
