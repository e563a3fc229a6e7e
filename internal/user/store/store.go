package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mewicrm/mewi/internal/auth"
	"github.com/mewicrm/mewi/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectUserColumns = `
	u.id, u.email, u.password_hash, p.full_name, p.role, u.created_at
`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, NOW()) RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, email, full_name, role, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		u.ID, u.Email, u.FullName, u.Role,
	)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + `
		FROM users u JOIN profiles p ON p.id = u.id
		WHERE u.email = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + `
		FROM users u JOIN profiles p ON p.id = u.id
		WHERE u.id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) scanOne(row *sql.Row) (*user.User, error) {
	var u user.User

	var roleStr string

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &roleStr, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	u.Role = auth.Role(roleStr)

	return &u, nil
}
