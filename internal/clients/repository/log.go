package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AddLogEntry records an interaction for a client.
func (r *Repository) AddLogEntry(ctx context.Context, clientID uuid.UUID, channel, summary string) (*LogEntry, error) {
	query := `
		INSERT INTO communication_log (client_id, channel, summary)
		VALUES ($1, $2, $3)
		RETURNING id, client_id, channel, summary, logged_at`

	var e LogEntry
	err := r.pool.QueryRow(ctx, query, clientID, channel, summary).Scan(
		&e.ID, &e.ClientID, &e.Channel, &e.Summary, &e.LoggedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add log entry: %w", err)
	}
	return &e, nil
}

// ListLogEntries returns a client's interactions, newest first.
func (r *Repository) ListLogEntries(ctx context.Context, clientID uuid.UUID) ([]LogEntry, error) {
	query := `
		SELECT id, client_id, channel, summary, logged_at
		FROM communication_log
		WHERE client_id = $1
		ORDER BY logged_at DESC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Channel, &e.Summary, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log entries: %w", err)
	}
	return entries, nil
}

// CountLogEntries returns the number of interactions recorded for a client.
func (r *Repository) CountLogEntries(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM communication_log WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count log entries: %w", err)
	}
	return count, nil
}

// CountLogEntriesForClients returns interaction counts keyed by client ID.
// Clients with no entries are absent from the map.
func (r *Repository) CountLogEntriesForClients(ctx context.Context, clientIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(clientIDs) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	query := `
		SELECT client_id, COUNT(*)
		FROM communication_log
		WHERE client_id = ANY($1)
		GROUP BY client_id`

	rows, err := r.pool.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count log entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(clientIDs))
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan log count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log counts: %w", err)
	}
	return counts, nil
}
