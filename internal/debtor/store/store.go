package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/debtor"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDebtorColumns = `
	d.id, d.user_id, d.client_id, d.manager_id, d.name, d.email, d.phone, d.address, d.company,
	d.type, d.status, d.recovery_status, d.priority, d.risk_level,
	d.total_amount, d.original_amount, d.paid_amount, d.days_overdue, d.invoice_count,
	d.next_action, d.notes, d.tags, d.last_contact, d.last_payment, d.created_at, d.updated_at
`

func scanDebtor(s scanner) (*debtor.Debtor, error) {
	var d debtor.Debtor

	var typeStr, statusStr, recoveryStr, priorityStr, riskStr string

	var nextAction, notes, tags []byte

	if err := s.Scan(
		&d.ID, &d.UserID, &d.ClientID, &d.ManagerID, &d.Name, &d.Email, &d.Phone, &d.Address, &d.Company,
		&typeStr, &statusStr, &recoveryStr, &priorityStr, &riskStr,
		&d.TotalAmount, &d.OriginalAmount, &d.PaidAmount, &d.DaysOverdue, &d.InvoiceCount,
		&nextAction, &notes, &tags, &d.LastContact, &d.LastPayment, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Type = debtor.Type(typeStr)
	d.Status = debtor.Status(statusStr)
	d.RecoveryStatus = debtor.RecoveryStatus(recoveryStr)
	d.Priority = debtor.Priority(priorityStr)
	d.RiskLevel = debtor.RiskLevel(riskStr)

	if len(nextAction) > 0 {
		var na debtor.NextAction
		if err := json.Unmarshal(nextAction, &na); err != nil {
			return nil, fmt.Errorf("decoding next_action: %w", err)
		}

		d.NextAction = &na
	}

	if err := json.Unmarshal(notes, &d.Notes); err != nil {
		return nil, fmt.Errorf("decoding notes: %w", err)
	}

	if err := json.Unmarshal(tags, &d.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}

	return &d, nil
}

func (s *Store) CreateDebtor(ctx context.Context, d *debtor.Debtor) error {
	notes, tags, nextAction, err := encodeJSONFields(d)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO debiteurs (
			id, user_id, client_id, manager_id, name, email, phone, address, company,
			type, status, recovery_status, priority, risk_level,
			total_amount, original_amount, paid_amount, days_overdue, invoice_count,
			next_action, notes, tags, last_contact, last_payment, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	err = s.db.QueryRowContext(ctx, query,
		d.ID, d.UserID, d.ClientID, d.ManagerID, d.Name, d.Email, d.Phone, d.Address, d.Company,
		d.Type, d.Status, d.RecoveryStatus, d.Priority, d.RiskLevel,
		d.TotalAmount, d.OriginalAmount, d.PaidAmount, d.DaysOverdue, d.InvoiceCount,
		nextAction, notes, tags, d.LastContact, d.LastPayment,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating debtor: %w", err)
	}

	return nil
}

func (s *Store) GetDebtor(ctx context.Context, id uuid.UUID) (*debtor.Debtor, error) {
	query := `SELECT ` + selectDebtorColumns + ` FROM debiteurs d WHERE d.id = $1`

	d, err := scanDebtor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, debtor.ErrNotFound
		}

		return nil, fmt.Errorf("getting debtor: %w", err)
	}

	return d, nil
}

func (s *Store) ListDebtors(ctx context.Context, filter debtor.ListFilter) ([]*debtor.Debtor, error) {
	query := `SELECT ` + selectDebtorColumns + ` FROM debiteurs d WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND d.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.ManagerID != nil {
		query += fmt.Sprintf(" AND d.manager_id = $%d", argIdx)

		args = append(args, *filter.ManagerID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND d.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RecoveryStatus != nil {
		query += fmt.Sprintf(" AND d.recovery_status = $%d", argIdx)

		args = append(args, *filter.RecoveryStatus)
		argIdx++
	}

	query += " ORDER BY d.updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing debtors: %w", err)
	}
	defer rows.Close()

	var debtors []*debtor.Debtor

	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debtor: %w", err)
		}

		debtors = append(debtors, d)
	}

	return debtors, rows.Err()
}

func (s *Store) UpdateDebtor(ctx context.Context, d *debtor.Debtor) error {
	notes, tags, nextAction, err := encodeJSONFields(d)
	if err != nil {
		return err
	}

	query := `
		UPDATE debiteurs
		SET name = $1, email = $2, phone = $3, address = $4, company = $5, manager_id = $6,
			type = $7, status = $8, recovery_status = $9, priority = $10, risk_level = $11,
			total_amount = $12, original_amount = $13, paid_amount = $14, days_overdue = $15,
			invoice_count = $16, next_action = $17, notes = $18, tags = $19,
			last_contact = $20, last_payment = $21, updated_at = NOW()
		WHERE id = $22
	`

	_, err = s.db.ExecContext(ctx, query,
		d.Name, d.Email, d.Phone, d.Address, d.Company, d.ManagerID,
		d.Type, d.Status, d.RecoveryStatus, d.Priority, d.RiskLevel,
		d.TotalAmount, d.OriginalAmount, d.PaidAmount, d.DaysOverdue,
		d.InvoiceCount, nextAction, notes, tags,
		d.LastContact, d.LastPayment, d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating debtor: %w", err)
	}

	return nil
}

func (s *Store) UpdateRecoveryStatus(ctx context.Context, id uuid.UUID, status debtor.RecoveryStatus) error {
	query := `UPDATE debiteurs SET recovery_status = $1, updated_at = NOW() WHERE id = $2`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating recovery status: %w", err)
	}

	return nil
}

func (s *Store) DeleteDebtor(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM debiteurs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debtor: %w", err)
	}

	return nil
}

func encodeJSONFields(d *debtor.Debtor) (notes, tags, nextAction []byte, err error) {
	if d.Notes == nil {
		d.Notes = []string{}
	}

	if d.Tags == nil {
		d.Tags = []string{}
	}

	notes, err = json.Marshal(d.Notes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding notes: %w", err)
	}

	tags, err = json.Marshal(d.Tags)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding tags: %w", err)
	}

	if d.NextAction != nil {
		nextAction, err = json.Marshal(d.NextAction)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encoding next_action: %w", err)
		}
	}

	return notes, tags, nextAction, nil
}
