// Package repository persists clients and their communication log.
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

// Client is a buyer or tenant managed by the CRM.
type Client struct {
	ID           uuid.UUID  `db:"id"`
	ClientCode   string     `db:"client_code"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	Email        string     `db:"email"`
	ListingType  string     `db:"listing_type"`
	Requirements string     `db:"requirements"`
	Budget       int64      `db:"budget"`
	Locality     string     `db:"locality"`
	Rooms        int        `db:"rooms"`
	Status       string     `db:"status"`
	LeadScore    int        `db:"lead_score"`
	LeadRating   string     `db:"lead_rating"`
	ScoredAt     *time.Time `db:"scored_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// LogEntry is one recorded interaction with a client.
type LogEntry struct {
	ID       uuid.UUID `db:"id"`
	ClientID uuid.UUID `db:"client_id"`
	Channel  string    `db:"channel"`
	Summary  string    `db:"summary"`
	LoggedAt time.Time `db:"logged_at"`
}

const clientColumns = `id, client_code, name, phone, email, listing_type, requirements,
		budget, locality, rooms, status, lead_score, lead_rating, scored_at, created_at, updated_at`

// Repository provides access to the clients and communication_log tables.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.ClientCode, &c.Name, &c.Phone, &c.Email, &c.ListingType, &c.Requirements,
		&c.Budget, &c.Locality, &c.Rooms, &c.Status, &c.LeadScore, &c.LeadRating, &c.ScoredAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateParams carries the fields for a new client.
type CreateParams struct {
	Name         string
	Phone        string
	Email        string
	ListingType  string
	Requirements string
	Budget       int64
	Locality     string
	Rooms        int
	Status       string
}

// Create inserts a new client, allocating the next sequential client code.
// An advisory transaction lock serializes concurrent allocations so codes
// never collide.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Client, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Unavailable("could not reach client store", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('client_code'))`); err != nil {
		return nil, fmt.Errorf("failed to acquire client code lock: %w", err)
	}

	var next int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(client_code FROM 4)::BIGINT) + 1, 1001)
		FROM clients`).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate client code: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO clients (client_code, name, phone, email, listing_type, requirements, budget, locality, rooms, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, clientColumns)

	client, err := scanClient(tx.QueryRow(ctx, query,
		fmt.Sprintf("CL-%d", next), params.Name, params.Phone, params.Email, params.ListingType,
		params.Requirements, params.Budget, params.Locality, params.Rooms, params.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit client creation: %w", err)
	}
	return client, nil
}

// GetByID returns the client with the given ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)
	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// GetByCode returns the client with the given client code, e.g. "CL-1001".
func (r *Repository) GetByCode(ctx context.Context, code string) (*Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE client_code = $1`, clientColumns)
	client, err := scanClient(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to get client by code: %w", err)
	}
	return client, nil
}

// UpdateParams carries the mutable fields of a client. Nil fields are left
// unchanged.
type UpdateParams struct {
	Name         *string
	Phone        *string
	Email        *string
	ListingType  *string
	Requirements *string
	Budget       *int64
	Locality     *string
	Rooms        *int
	Status       *string
}

// Update applies the non-nil fields and returns the updated client.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Client, error) {
	setClauses := ""
	args := []interface{}{id}
	argIndex := 2

	addSet(&setClauses, &args, &argIndex, params.Name != nil, "name = $%d", derefString(params.Name))
	addSet(&setClauses, &args, &argIndex, params.Phone != nil, "phone = $%d", derefString(params.Phone))
	addSet(&setClauses, &args, &argIndex, params.Email != nil, "email = $%d", derefString(params.Email))
	addSet(&setClauses, &args, &argIndex, params.ListingType != nil, "listing_type = $%d", derefString(params.ListingType))
	addSet(&setClauses, &args, &argIndex, params.Requirements != nil, "requirements = $%d", derefString(params.Requirements))
	addSet(&setClauses, &args, &argIndex, params.Budget != nil, "budget = $%d", derefInt64(params.Budget))
	addSet(&setClauses, &args, &argIndex, params.Locality != nil, "locality = $%d", derefString(params.Locality))
	addSet(&setClauses, &args, &argIndex, params.Rooms != nil, "rooms = $%d", derefInt(params.Rooms))
	addSet(&setClauses, &args, &argIndex, params.Status != nil, "status = $%d", derefString(params.Status))

	if setClauses == "" {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE clients SET %s, updated_at = now()
		WHERE id = $1
		RETURNING %s`, setClauses, clientColumns)

	client, err := scanClient(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// UpdateStatus sets only the pipeline status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clients SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update client status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

// UpdateScore stores a lead score snapshot.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int, rating string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients SET lead_score = $2, lead_rating = $3, scored_at = now()
		WHERE id = $1`, id, score, rating)
	if err != nil {
		return fmt.Errorf("failed to update lead score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

// Delete removes a client. Communication log entries and tasks are removed
// by the foreign key cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}

// ListParams contains parameters for listing clients.
type ListParams struct {
	ListingType *string
	Status      *string
	Rating      *string
	Search      string
	Page        int
	PageSize    int
}

// ListResult contains the result of listing clients.
type ListResult struct {
	Items      []Client
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// List retrieves clients with optional filtering, newest first.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	baseQuery := `FROM clients WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	addFilter(&baseQuery, &args, &argIndex, params.ListingType != nil, " AND listing_type = $%d", derefString(params.ListingType))
	addFilter(&baseQuery, &args, &argIndex, params.Status != nil, " AND status = $%d", derefString(params.Status))
	addFilter(&baseQuery, &args, &argIndex, params.Rating != nil, " AND lead_rating = $%d", derefString(params.Rating))
	if params.Search != "" {
		baseQuery += fmt.Sprintf(" AND (name ILIKE $%d OR client_code ILIKE $%d OR phone ILIKE $%d)",
			argIndex, argIndex, argIndex)
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clientColumns, baseQuery, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var items []Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		items = append(items, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func addFilter(baseQuery *string, args *[]interface{}, argIndex *int, apply bool, clause string, value interface{}) {
	if !apply {
		return
	}
	*baseQuery += fmt.Sprintf(clause, *argIndex)
	*args = append(*args, value)
	*argIndex++
}

func addSet(setClauses *string, args *[]interface{}, argIndex *int, apply bool, clause string, value interface{}) {
	if !apply {
		return
	}
	if *setClauses != "" {
		*setClauses += ", "
	}
	*setClauses += fmt.Sprintf(clause, *argIndex)
	*args = append(*args, value)
	*argIndex++
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func derefInt64(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}
