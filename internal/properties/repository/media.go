package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"estate_crm_backend/platform/apperr"
)

// AddMedia records an uploaded object for a property.
func (r *Repository) AddMedia(ctx context.Context, propertyID uuid.UUID, objectKey, contentType string) (*Media, error) {
	query := `
		INSERT INTO property_media (property_id, object_key, content_type)
		VALUES ($1, $2, $3)
		RETURNING id, property_id, object_key, content_type, created_at`

	var m Media
	err := r.pool.QueryRow(ctx, query, propertyID, objectKey, contentType).Scan(
		&m.ID, &m.PropertyID, &m.ObjectKey, &m.ContentType, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add property media: %w", err)
	}
	return &m, nil
}

// ListMedia returns a property's media records, oldest first.
func (r *Repository) ListMedia(ctx context.Context, propertyID uuid.UUID) ([]Media, error) {
	query := `
		SELECT id, property_id, object_key, content_type, created_at
		FROM property_media
		WHERE property_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property media: %w", err)
	}
	defer rows.Close()

	var media []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PropertyID, &m.ObjectKey, &m.ContentType, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate property media: %w", err)
	}
	return media, nil
}

// GetMedia returns one media record scoped to its property.
func (r *Repository) GetMedia(ctx context.Context, propertyID, mediaID uuid.UUID) (*Media, error) {
	query := `
		SELECT id, property_id, object_key, content_type, created_at
		FROM property_media
		WHERE id = $1 AND property_id = $2`

	var m Media
	err := r.pool.QueryRow(ctx, query, mediaID, propertyID).Scan(
		&m.ID, &m.PropertyID, &m.ObjectKey, &m.ContentType, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("media not found")
		}
		return nil, fmt.Errorf("failed to get property media: %w", err)
	}
	return &m, nil
}

// DeleteMedia removes a media record.
func (r *Repository) DeleteMedia(ctx context.Context, propertyID, mediaID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM property_media WHERE id = $1 AND property_id = $2`, mediaID, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete property media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("media not found")
	}
	return nil
}
