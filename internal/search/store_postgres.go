// Copyright (c) 2026 Aurastream. All rights reserved.

// PostgreSQL implementation of the [HistoryStore].
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurastream/api/internal/platform/apperr"
)

// PostgresHistoryStore implements the [HistoryStore] interface using pgx.
type PostgresHistoryStore struct {
	pool *pgxpool.Pool
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the [HistoryStore].
func NewPostgresHistoryStore(pool *pgxpool.Pool) *PostgresHistoryStore {
	return &PostgresHistoryStore{pool: pool}
}

/*
Append inserts a new history row into the users.searchhistory table.

Parameters:
  - context: context.Context
  - entry: *HistoryEntry (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (store *PostgresHistoryStore) Append(context context.Context, entry *HistoryEntry) error {
	const query = `
		INSERT INTO users.searchhistory (
			id, accountid, profileid, mediaid, title, image, searchtype, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := store.pool.Exec(context, query,
		entry.RowID,
		entry.AccountID,
		entry.ProfileID,
		entry.MediaID,
		entry.Title,
		entry.Image,
		entry.SearchType,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_history_store_append_failed: %w", err)
	}

	return nil
}

/*
ListByProfile retrieves the account's entries for one profile, append order.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string

Returns:
  - []*HistoryEntry: Hydrated entries
  - error: Database errors
*/
func (store *PostgresHistoryStore) ListByProfile(context context.Context, accountID, profileID string) ([]*HistoryEntry, error) {
	const query = `
		SELECT id, accountid, profileid, mediaid, title, image, searchtype, createdat
		FROM users.searchhistory
		WHERE accountid = $1 AND profileid = $2
		ORDER BY createdat ASC`

	rows, err := store.pool.Query(context, query, accountID, profileID)
	if err != nil {
		return nil, fmt.Errorf("postgres_history_store_list_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]*HistoryEntry, 0)
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(
			&entry.RowID,
			&entry.AccountID,
			&entry.ProfileID,
			&entry.MediaID,
			&entry.Title,
			&entry.Image,
			&entry.SearchType,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_history_store_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_history_store_rows_failed: %w", err)
	}

	return entries, nil
}

/*
Remove deletes every entry matching (account, profile, media).

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string
  - mediaID: int64

Returns:
  - error: apperr.NotFound when nothing matched, or database errors
*/
func (store *PostgresHistoryStore) Remove(context context.Context, accountID, profileID string, mediaID int64) error {
	const query = `
		DELETE FROM users.searchhistory
		WHERE accountid = $1 AND profileid = $2 AND mediaid = $3`

	tag, err := store.pool.Exec(context, query, accountID, profileID, mediaID)
	if err != nil {
		return fmt.Errorf("postgres_history_store_remove_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Item not found in search history")
	}

	return nil
}
