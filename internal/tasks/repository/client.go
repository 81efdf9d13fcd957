package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"estate_crm_backend/platform/apperr"
)

// ClientInfo is the slice of the client the task module needs for
// notifications.
type ClientInfo struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Code  string    `db:"client_code"`
	Email string    `db:"email"`
}

// GetClientInfo returns notification details for a client.
func (r *Repository) GetClientInfo(ctx context.Context, clientID uuid.UUID) (*ClientInfo, error) {
	var info ClientInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, client_code, email FROM clients WHERE id = $1`, clientID,
	).Scan(&info.ID, &info.Name, &info.Code, &info.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client info: %w", err)
	}
	return &info, nil
}
