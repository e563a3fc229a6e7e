package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/communication"
	"github.com/mewicrm/mewi/internal/dunning"
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

func scanTemplate(s scanner) (*dunning.Template, error) {
	var t dunning.Template

	var typeStr string

	var variables []byte

	if err := s.Scan(&t.ID, &t.Name, &typeStr, &t.Subject, &t.Content, &variables, &t.IsActive, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Type = communication.Type(typeStr)

	if err := json.Unmarshal(variables, &t.Variables); err != nil {
		return nil, fmt.Errorf("decoding variables: %w", err)
	}

	return &t, nil
}

func (s *Store) CreateTemplate(ctx context.Context, t *dunning.Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Variables == nil {
		t.Variables = []string{}
	}

	variables, err := json.Marshal(t.Variables)
	if err != nil {
		return fmt.Errorf("encoding variables: %w", err)
	}

	query := `
		INSERT INTO relance_templates (id, name, type, subject, content, variables, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Type, t.Subject, t.Content, variables, t.IsActive, t.CreatedBy,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating template: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id uuid.UUID) (*dunning.Template, error) {
	query := `
		SELECT id, name, type, subject, content, variables, is_active, created_by, created_at
		FROM relance_templates WHERE id = $1
	`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dunning.ErrNotFound
		}

		return nil, fmt.Errorf("getting template: %w", err)
	}

	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context, activeOnly bool) ([]*dunning.Template, error) {
	query := `
		SELECT id, name, type, subject, content, variables, is_active, created_by, created_at
		FROM relance_templates
	`

	if activeOnly {
		query += ` WHERE is_active`
	}

	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*dunning.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (s *Store) CreateRule(ctx context.Context, r *dunning.Rule) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	query := `
		INSERT INTO relance_rules (id, name, trigger_days, action, template_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ID, r.Name, r.TriggerDays, r.Action, r.TemplateID, r.IsActive,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context, activeOnly bool) ([]*dunning.Rule, error) {
	query := `
		SELECT id, name, trigger_days, action, template_id, is_active, created_at
		FROM relance_rules
	`

	if activeOnly {
		query += ` WHERE is_active`
	}

	query += ` ORDER BY trigger_days ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*dunning.Rule

	for rows.Next() {
		var r dunning.Rule

		var actionStr string

		if err := rows.Scan(&r.ID, &r.Name, &r.TriggerDays, &actionStr, &r.TemplateID, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		r.Action = communication.Type(actionStr)

		rules = append(rules, &r)
	}

	return rules, rows.Err()
}
