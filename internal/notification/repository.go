package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/platform/apperr"
)

// Contact is the slice of a client row needed to address an email.
type Contact struct {
	Name  string `db:"name"`
	Code  string `db:"client_code"`
	Email string `db:"email"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetContact(ctx context.Context, clientID uuid.UUID) (*Contact, error) {
	query := `SELECT name, client_code, email FROM clients WHERE id = $1`

	var c Contact
	err := r.pool.QueryRow(ctx, query, clientID).Scan(&c.Name, &c.Code, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client contact: %w", err)
	}
	return &c, nil
}
