// Package repository reads the client and property data the lead engine
// scores and matches against. It deliberately reads the clients and
// properties tables directly rather than going through those modules'
// services, keeping score computation a pure read-side concern.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/platform/apperr"
)

// ClientProfile is the scoring and matching view of a client.
type ClientProfile struct {
	ID           uuid.UUID  `db:"id"`
	ClientCode   string     `db:"client_code"`
	Name         string     `db:"name"`
	ListingType  string     `db:"listing_type"`
	Requirements string     `db:"requirements"`
	Budget       int64      `db:"budget"`
	Locality     string     `db:"locality"`
	Rooms        int        `db:"rooms"`
	Status       string     `db:"status"`
	LogCount     int        `db:"log_count"`
	LeadScore    int        `db:"lead_score"`
	LeadRating   string     `db:"lead_rating"`
	ScoredAt     *time.Time `db:"scored_at"`
}

// Candidate is the matching view of a property listing.
type Candidate struct {
	ID          uuid.UUID `db:"id"`
	Code        string    `db:"property_code"`
	Title       string    `db:"title"`
	ListingType string    `db:"listing_type"`
	Bedrooms    string    `db:"bedrooms"`
	Locality    string    `db:"locality"`
	AskingPrice *int64    `db:"asking_price"`
	MonthlyRent *int64    `db:"monthly_rent"`
}

// Repository provides the lead engine's read and snapshot queries.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileColumns = `c.id, c.client_code, c.name, c.listing_type, c.requirements,
		c.budget, c.locality, c.rooms, c.status, c.lead_score, c.lead_rating, c.scored_at`

// GetProfile returns one client's scoring view including its interaction
// count.
func (r *Repository) GetProfile(ctx context.Context, clientID uuid.UUID) (*ClientProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(l.id) AS log_count
		FROM clients c
		LEFT JOIN communication_log l ON l.client_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`, profileColumns)

	var p ClientProfile
	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&p.ID, &p.ClientCode, &p.Name, &p.ListingType, &p.Requirements,
		&p.Budget, &p.Locality, &p.Rooms, &p.Status, &p.LeadScore, &p.LeadRating, &p.ScoredAt,
		&p.LogCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}
	return &p, nil
}

// ListProfiles returns every client's scoring view.
func (r *Repository) ListProfiles(ctx context.Context) ([]ClientProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(l.id) AS log_count
		FROM clients c
		LEFT JOIN communication_log l ON l.client_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at ASC`, profileColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list client profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ClientProfile
	for rows.Next() {
		var p ClientProfile
		if err := rows.Scan(
			&p.ID, &p.ClientCode, &p.Name, &p.ListingType, &p.Requirements,
			&p.Budget, &p.Locality, &p.Rooms, &p.Status, &p.LeadScore, &p.LeadRating, &p.ScoredAt,
			&p.LogCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client profiles: %w", err)
	}
	return profiles, nil
}

// ListCandidates returns all property listings in insertion order.
func (r *Repository) ListCandidates(ctx context.Context) ([]Candidate, error) {
	query := `
		SELECT id, property_code, title, listing_type, bedrooms, locality, asking_price, monthly_rent
		FROM properties
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate properties: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Title, &c.ListingType, &c.Bedrooms, &c.Locality,
			&c.AskingPrice, &c.MonthlyRent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate property: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidate properties: %w", err)
	}
	return candidates, nil
}

// SaveScore stores a score snapshot for a client.
func (r *Repository) SaveScore(ctx context.Context, clientID uuid.UUID, score int, rating string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients SET lead_score = $2, lead_rating = $3, scored_at = now()
		WHERE id = $1`, clientID, score, rating)
	if err != nil {
		return fmt.Errorf("failed to save lead score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}
