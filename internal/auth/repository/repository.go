// Package repository persists agent accounts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/platform/apperr"
)

// Agent is a CRM user account.
type Agent struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Repository provides access to the agents table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new agent and returns it.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string) (*Agent, error) {
	query := `
		INSERT INTO agents (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at`

	var a Agent
	err := r.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("an agent with this email already exists")
		}
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return &a, nil
}

// GetByEmail returns the agent with the given email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Agent, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM agents WHERE email = $1`

	var a Agent
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("agent not found")
		}
		return nil, fmt.Errorf("failed to get agent by email: %w", err)
	}
	return &a, nil
}

// GetByID returns the agent with the given ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Agent, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM agents WHERE id = $1`

	var a Agent
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("agent not found")
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &a, nil
}
