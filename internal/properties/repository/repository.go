// Package repository persists property listings and their media records.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_crm_backend/platform/apperr"
)

// Property is a listing on the books.
type Property struct {
	ID              uuid.UUID `db:"id"`
	PropertyCode    string    `db:"property_code"`
	Title           string    `db:"title"`
	ListingType     string    `db:"listing_type"`
	PropertyType    string    `db:"property_type"`
	Bedrooms        string    `db:"bedrooms"`
	Bathrooms       int       `db:"bathrooms"`
	AreaSqft        int       `db:"area_sqft"`
	Furnishing      string    `db:"furnishing"`
	Amenities       string    `db:"amenities"`
	Locality        string    `db:"locality"`
	AskingPrice     *int64    `db:"asking_price"`
	MonthlyRent     *int64    `db:"monthly_rent"`
	SecurityDeposit *int64    `db:"security_deposit"`
	OwnerName       string    `db:"owner_name"`
	OwnerPhone      string    `db:"owner_phone"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Media is a stored photo or document for a property.
type Media struct {
	ID          uuid.UUID `db:"id"`
	PropertyID  uuid.UUID `db:"property_id"`
	ObjectKey   string    `db:"object_key"`
	ContentType string    `db:"content_type"`
	CreatedAt   time.Time `db:"created_at"`
}

const propertyColumns = `id, property_code, title, listing_type, property_type, bedrooms,
		bathrooms, area_sqft, furnishing, amenities, locality,
		asking_price, monthly_rent, security_deposit, owner_name, owner_phone,
		status, created_at, updated_at`

// Repository provides access to the properties and property_media tables.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProperty(row pgx.Row) (*Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.PropertyCode, &p.Title, &p.ListingType, &p.PropertyType, &p.Bedrooms,
		&p.Bathrooms, &p.AreaSqft, &p.Furnishing, &p.Amenities, &p.Locality,
		&p.AskingPrice, &p.MonthlyRent, &p.SecurityDeposit, &p.OwnerName, &p.OwnerPhone,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParams carries the fields for a new property.
type CreateParams struct {
	Title           string
	ListingType     string
	PropertyType    string
	Bedrooms        string
	Bathrooms       int
	AreaSqft        int
	Furnishing      string
	Amenities       string
	Locality        string
	AskingPrice     *int64
	MonthlyRent     *int64
	SecurityDeposit *int64
	OwnerName       string
	OwnerPhone      string
}

// Create inserts a property, allocating the next code for its listing type
// prefix ("SALE-PROP-1001", "RENT-PROP-1001"). An advisory transaction lock
// serializes allocation per prefix.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Property, error) {
	prefix := codePrefix(params.ListingType)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Unavailable("could not reach property store", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return nil, fmt.Errorf("failed to acquire property code lock: %w", err)
	}

	var next int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(property_code FROM length($1) + 1)::BIGINT) + 1, 1001)
		FROM properties
		WHERE property_code LIKE $1 || '%'`, prefix).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate property code: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (property_code, title, listing_type, property_type, bedrooms,
			bathrooms, area_sqft, furnishing, amenities, locality,
			asking_price, monthly_rent, security_deposit, owner_name, owner_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s`, propertyColumns)

	property, err := scanProperty(tx.QueryRow(ctx, query,
		fmt.Sprintf("%s%d", prefix, next), params.Title, params.ListingType, params.PropertyType,
		params.Bedrooms, params.Bathrooms, params.AreaSqft, params.Furnishing, params.Amenities,
		params.Locality, params.AskingPrice, params.MonthlyRent, params.SecurityDeposit,
		params.OwnerName, params.OwnerPhone,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit property creation: %w", err)
	}
	return property, nil
}

func codePrefix(listingType string) string {
	if strings.EqualFold(listingType, "Rent") {
		return "RENT-PROP-"
	}
	return "SALE-PROP-"
}

// GetByID returns the property with the given ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)
	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

// UpdateParams carries the mutable property fields. Nil fields stay
// unchanged.
type UpdateParams struct {
	Title           *string
	PropertyType    *string
	Bedrooms        *string
	Bathrooms       *int
	AreaSqft        *int
	Furnishing      *string
	Amenities       *string
	Locality        *string
	AskingPrice     *int64
	MonthlyRent     *int64
	SecurityDeposit *int64
	OwnerName       *string
	OwnerPhone      *string
	Status          *string
}

// Update applies the non-nil fields and returns the updated property.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Property, error) {
	setClauses := ""
	args := []interface{}{id}
	argIndex := 2

	addSet(&setClauses, &args, &argIndex, params.Title != nil, "title = $%d", deref(params.Title))
	addSet(&setClauses, &args, &argIndex, params.PropertyType != nil, "property_type = $%d", deref(params.PropertyType))
	addSet(&setClauses, &args, &argIndex, params.Bedrooms != nil, "bedrooms = $%d", deref(params.Bedrooms))
	addSet(&setClauses, &args, &argIndex, params.Bathrooms != nil, "bathrooms = $%d", derefInt(params.Bathrooms))
	addSet(&setClauses, &args, &argIndex, params.AreaSqft != nil, "area_sqft = $%d", derefInt(params.AreaSqft))
	addSet(&setClauses, &args, &argIndex, params.Furnishing != nil, "furnishing = $%d", deref(params.Furnishing))
	addSet(&setClauses, &args, &argIndex, params.Amenities != nil, "amenities = $%d", deref(params.Amenities))
	addSet(&setClauses, &args, &argIndex, params.Locality != nil, "locality = $%d", deref(params.Locality))
	addSet(&setClauses, &args, &argIndex, params.AskingPrice != nil, "asking_price = $%d", derefInt64(params.AskingPrice))
	addSet(&setClauses, &args, &argIndex, params.MonthlyRent != nil, "monthly_rent = $%d", derefInt64(params.MonthlyRent))
	addSet(&setClauses, &args, &argIndex, params.SecurityDeposit != nil, "security_deposit = $%d", derefInt64(params.SecurityDeposit))
	addSet(&setClauses, &args, &argIndex, params.OwnerName != nil, "owner_name = $%d", deref(params.OwnerName))
	addSet(&setClauses, &args, &argIndex, params.OwnerPhone != nil, "owner_phone = $%d", deref(params.OwnerPhone))
	addSet(&setClauses, &args, &argIndex, params.Status != nil, "status = $%d", deref(params.Status))

	if setClauses == "" {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE properties SET %s, updated_at = now()
		WHERE id = $1
		RETURNING %s`, setClauses, propertyColumns)

	property, err := scanProperty(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return property, nil
}

// Delete removes a property and, via cascade, its media records.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("property not found")
	}
	return nil
}

// ListParams contains parameters for listing properties.
type ListParams struct {
	ListingType *string
	Status      *string
	Locality    string
	MinRooms    *int
	MaxPrice    *int64
	Page        int
	PageSize    int
}

// ListResult contains the result of listing properties.
type ListResult struct {
	Items      []Property
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// List retrieves properties with optional filtering, newest first. The price
// filter applies to whichever price column the listing type uses.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	baseQuery := `FROM properties WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	addFilter(&baseQuery, &args, &argIndex, params.ListingType != nil, " AND listing_type = $%d", deref(params.ListingType))
	addFilter(&baseQuery, &args, &argIndex, params.Status != nil, " AND status = $%d", deref(params.Status))
	addFilter(&baseQuery, &args, &argIndex, params.Locality != "", " AND locality ILIKE $%d", "%"+params.Locality+"%")
	addFilter(&baseQuery, &args, &argIndex, params.MaxPrice != nil,
		" AND COALESCE(asking_price, monthly_rent) <= $%d", derefInt64(params.MaxPrice))
	addFilter(&baseQuery, &args, &argIndex, params.MinRooms != nil,
		" AND COALESCE(NULLIF(substring(bedrooms FROM '\\d+'), ''), '0')::INT >= $%d", derefInt(params.MinRooms))

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		propertyColumns, baseQuery, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var items []Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, *property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Stats summarizes the portfolio.
type Stats struct {
	Total          int   `db:"total"`
	ForSale        int   `db:"for_sale"`
	ForRent        int   `db:"for_rent"`
	Available      int   `db:"available"`
	AvgAskingPrice int64 `db:"avg_asking_price"`
	AvgMonthlyRent int64 `db:"avg_monthly_rent"`
}

// GetStats returns portfolio summary counts and averages.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE listing_type = 'Sale'),
			COUNT(*) FILTER (WHERE listing_type = 'Rent'),
			COUNT(*) FILTER (WHERE status = 'Available'),
			COALESCE(AVG(asking_price), 0)::BIGINT,
			COALESCE(AVG(monthly_rent), 0)::BIGINT
		FROM properties`

	var s Stats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.Total, &s.ForSale, &s.ForRent, &s.Available, &s.AvgAskingPrice, &s.AvgMonthlyRent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get property stats: %w", err)
	}
	return &s, nil
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

func deref(value *string) string {
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
