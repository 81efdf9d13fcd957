// Package repository persists tasks and derives client status from them.
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

// Task types that drive the client status projection.
const (
	TypeNegotiation = "Negotiation"
	TypeSiteVisit   = "Site Visit"
)

// Task statuses.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Task is a scheduled follow-up for a client, optionally tied to one
// property.
type Task struct {
	ID          uuid.UUID  `db:"id"`
	ClientID    uuid.UUID  `db:"client_id"`
	PropertyID  *uuid.UUID `db:"property_id"`
	TaskType    string     `db:"task_type"`
	Notes       string     `db:"notes"`
	Details     string     `db:"details"`
	DueDate     time.Time  `db:"due_date"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

// BoardTask is a task joined with its client, and its property when one is
// linked, for the task board.
type BoardTask struct {
	Task
	ClientName       string  `db:"client_name"`
	ClientCode       string  `db:"client_code"`
	PropertyCode     *string `db:"property_code"`
	PropertyLocality *string `db:"property_locality"`
}

const taskColumns = `id, client_id, property_id, task_type, notes, details, due_date, status, created_at, completed_at`

// Repository provides access to the tasks table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(
		&t.ID, &t.ClientID, &t.PropertyID, &t.TaskType, &t.Notes, &t.Details,
		&t.DueDate, &t.Status, &t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// statusFor maps a task type to the client status it implies, empty when the
// type carries no side effect.
func statusFor(taskType string) string {
	switch taskType {
	case TypeSiteVisit:
		return "Site Visit Planned"
	case TypeNegotiation:
		return "Negotiating"
	}
	return ""
}

// RecordParams carries the fields for a new task. PropertyID is optional.
type RecordParams struct {
	ClientID   uuid.UUID
	PropertyID *uuid.UUID
	TaskType   string
	Notes      string
	Details    string
	DueDate    time.Time
}

// Record inserts a task and applies its client status side effect in one
// transaction: a Site Visit marks the client "Site Visit Planned", a
// Negotiation marks it "Negotiating". Either both writes land or neither
// does.
func (r *Repository) Record(ctx context.Context, params RecordParams) (*Task, string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, "", apperr.Unavailable("could not reach task store", err)
	}
	defer tx.Rollback(ctx)

	if params.PropertyID != nil {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, *params.PropertyID).Scan(&exists)
		if err != nil {
			return nil, "", fmt.Errorf("failed to check property: %w", err)
		}
		if !exists {
			return nil, "", apperr.NotFound("property not found")
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO tasks (client_id, property_id, task_type, notes, details, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, taskColumns)

	task, err := scanTask(tx.QueryRow(ctx, query,
		params.ClientID, params.PropertyID, params.TaskType, params.Notes, params.Details, params.DueDate,
	))
	if err != nil {
		return nil, "", fmt.Errorf("failed to record task: %w", err)
	}

	newStatus := statusFor(params.TaskType)
	if newStatus != "" {
		tag, err := tx.Exec(ctx, `UPDATE clients SET status = $2, updated_at = now() WHERE id = $1`, params.ClientID, newStatus)
		if err != nil {
			return nil, "", fmt.Errorf("failed to update client status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, "", apperr.NotFound("client not found")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to commit task recording: %w", err)
	}
	return task, newStatus, nil
}

// GetByID returns the task with the given ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// LatestPendingEvent returns the client's most significant pending pipeline
// task: the latest due date wins, Negotiation beats Site Visit on a tie.
// Returns nil with no error when the client has no pending pipeline tasks.
func (r *Repository) LatestPendingEvent(ctx context.Context, clientID uuid.UUID) (*Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE client_id = $1
		  AND status = 'Pending'
		  AND task_type IN ('Negotiation', 'Site Visit')
		ORDER BY due_date DESC,
			CASE task_type WHEN 'Negotiation' THEN 1 WHEN 'Site Visit' THEN 2 ELSE 3 END
		LIMIT 1`, taskColumns)

	task, err := scanTask(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest pending event: %w", err)
	}
	return task, nil
}

// UpdateStatus moves a task to a new status, stamping completion time when
// it completes.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Task, error) {
	query := fmt.Sprintf(`
		UPDATE tasks
		SET status = $2,
		    completed_at = CASE WHEN $2 = 'Completed' THEN now() ELSE completed_at END
		WHERE id = $1
		RETURNING %s`, taskColumns)

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// ListBoard returns tasks joined with their clients, soonest due first. The
// property columns are nil for tasks without a linked property.
func (r *Repository) ListBoard(ctx context.Context, status *string) ([]BoardTask, error) {
	query := `
		SELECT t.id, t.client_id, t.property_id, t.task_type, t.notes, t.details, t.due_date, t.status, t.created_at, t.completed_at,
		       c.name, c.client_code, p.property_code, p.locality
		FROM tasks t
		JOIN clients c ON c.id = t.client_id
		LEFT JOIN properties p ON p.id = t.property_id`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE t.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY t.due_date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list task board: %w", err)
	}
	defer rows.Close()

	var tasks []BoardTask
	for rows.Next() {
		var t BoardTask
		if err := rows.Scan(
			&t.ID, &t.ClientID, &t.PropertyID, &t.TaskType, &t.Notes, &t.Details,
			&t.DueDate, &t.Status, &t.CreatedAt, &t.CompletedAt,
			&t.ClientName, &t.ClientCode, &t.PropertyCode, &t.PropertyLocality,
		); err != nil {
			return nil, fmt.Errorf("failed to scan board task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate board tasks: %w", err)
	}
	return tasks, nil
}

// ListDueBetween returns pending tasks with due dates inside the window,
// used by the reminder job.
func (r *Repository) ListDueBetween(ctx context.Context, from, to time.Time) ([]BoardTask, error) {
	query := `
		SELECT t.id, t.client_id, t.property_id, t.task_type, t.notes, t.details, t.due_date, t.status, t.created_at, t.completed_at,
		       c.name, c.client_code, p.property_code, p.locality
		FROM tasks t
		JOIN clients c ON c.id = t.client_id
		LEFT JOIN properties p ON p.id = t.property_id
		WHERE t.status = 'Pending' AND t.due_date >= $1 AND t.due_date < $2
		ORDER BY t.due_date ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []BoardTask
	for rows.Next() {
		var t BoardTask
		if err := rows.Scan(
			&t.ID, &t.ClientID, &t.PropertyID, &t.TaskType, &t.Notes, &t.Details,
			&t.DueDate, &t.Status, &t.CreatedAt, &t.CompletedAt,
			&t.ClientName, &t.ClientCode, &t.PropertyCode, &t.PropertyLocality,
		); err != nil {
			return nil, fmt.Errorf("failed to scan due task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate due tasks: %w", err)
	}
	return tasks, nil
}
