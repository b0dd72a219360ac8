// Copyright (c) 2026 Aurastream. All rights reserved.

// PostgreSQL implementation of the checkpoint [Store].
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurastream/api/internal/platform/apperr"
)

// PostgresStore implements the [Store] interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the checkpoint [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// checkpointColumns is the canonical SELECT column list for library.checkpoint.
const checkpointColumns = `
	id, accountid, profileid, mediaid, mediatype, title, backdroppath, posterpath,
	currentseason, currentepisode, currenttime, totalduration, lastwatchedat,
	createdat, updatedat`

/*
Create persists a new checkpoint record into the library.checkpoint table.

Parameters:
  - context: context.Context
  - checkpoint: *Checkpoint (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (store *PostgresStore) Create(context context.Context, checkpoint *Checkpoint) error {
	const query = `
		INSERT INTO library.checkpoint (
			id, accountid, profileid, mediaid, mediatype, title, backdroppath, posterpath,
			currentseason, currentepisode, currenttime, totalduration, lastwatchedat,
			createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	now := time.Now()
	if checkpoint.CreatedAt.IsZero() {
		checkpoint.CreatedAt = now
	}
	if checkpoint.LastWatchedAt.IsZero() {
		checkpoint.LastWatchedAt = now
	}
	checkpoint.UpdatedAt = now

	_, err := store.pool.Exec(context, query,
		checkpoint.ID,
		checkpoint.AccountID,
		checkpoint.ProfileID,
		checkpoint.MediaID,
		checkpoint.MediaType,
		checkpoint.Title,
		checkpoint.BackdropPath,
		checkpoint.PosterPath,
		checkpoint.CurrentSeason,
		checkpoint.CurrentEpisode,
		checkpoint.CurrentTime,
		checkpoint.TotalDuration,
		checkpoint.LastWatchedAt,
		checkpoint.CreatedAt,
		checkpoint.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_checkpoint_store_create_failed: %w", err)
	}

	return nil
}

/*
FindByKey retrieves a checkpoint by its full composite key.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - *Checkpoint: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByKey(context context.Context, key Key) (*Checkpoint, error) {
	const query = `
		SELECT ` + checkpointColumns + `
		FROM library.checkpoint
		WHERE accountid = $1 AND profileid = $2 AND mediaid = $3 AND mediatype = $4`

	row := store.pool.QueryRow(context, query, key.AccountID, key.ProfileID, key.MediaID, key.MediaType)
	return scanCheckpoint(row, "postgres_checkpoint_store_find_by_key_failed", "Item not found in continue watching")
}

/*
FindByMedia retrieves a checkpoint by media ID only, ignoring media type.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string
  - mediaID: int64

Returns:
  - *Checkpoint: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByMedia(context context.Context, accountID, profileID string, mediaID int64) (*Checkpoint, error) {
	const query = `
		SELECT ` + checkpointColumns + `
		FROM library.checkpoint
		WHERE accountid = $1 AND profileid = $2 AND mediaid = $3`

	// The watch page's point lookup has its own historical message.
	row := store.pool.QueryRow(context, query, accountID, profileID, mediaID)
	return scanCheckpoint(row, "postgres_checkpoint_store_find_by_media_failed", "Continue watching item not found")
}

/*
List retrieves the profile's checkpoints, most recently watched first.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string
  - limit: int

Returns:
  - []*Checkpoint: Hydrated entities
  - error: Database errors
*/
func (store *PostgresStore) List(context context.Context, accountID, profileID string, limit int) ([]*Checkpoint, error) {
	const query = `
		SELECT ` + checkpointColumns + `
		FROM library.checkpoint
		WHERE accountid = $1 AND profileid = $2
		ORDER BY lastwatchedat DESC
		LIMIT $3`

	rows, err := store.pool.Query(context, query, accountID, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_checkpoint_store_list_failed: %w", err)
	}
	defer rows.Close()

	checkpoints := make([]*Checkpoint, 0)
	for rows.Next() {
		checkpoint, err := scanCheckpoint(rows, "postgres_checkpoint_store_scan_failed", "Item not found in continue watching")
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, checkpoint)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_checkpoint_store_rows_failed: %w", err)
	}

	return checkpoints, nil
}

/*
Update persists the checkpoint's mutable playback fields.

Parameters:
  - context: context.Context
  - checkpoint: *Checkpoint

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Update(context context.Context, checkpoint *Checkpoint) error {
	const query = `
		UPDATE library.checkpoint
		SET currentseason = $2, currentepisode = $3, currenttime = $4,
		    totalduration = $5, lastwatchedat = $6, updatedat = $7
		WHERE id = $1`

	now := time.Now()
	checkpoint.UpdatedAt = now

	tag, err := store.pool.Exec(context, query,
		checkpoint.ID,
		checkpoint.CurrentSeason,
		checkpoint.CurrentEpisode,
		checkpoint.CurrentTime,
		checkpoint.TotalDuration,
		checkpoint.LastWatchedAt,
		checkpoint.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_checkpoint_store_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Item not found in continue watching")
	}

	return nil
}

/*
Touch refreshes only lastWatchedAt (and updatedat) for the checkpoint.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Touch(context context.Context, id string) error {
	const query = `
		UPDATE library.checkpoint
		SET lastwatchedat = $2, updatedat = $2
		WHERE id = $1`

	tag, err := store.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_checkpoint_store_touch_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Item not found in continue watching")
	}

	return nil
}

/*
Delete removes the checkpoint matching the full composite key.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (store *PostgresStore) Delete(context context.Context, key Key) error {
	const query = `
		DELETE FROM library.checkpoint
		WHERE accountid = $1 AND profileid = $2 AND mediaid = $3 AND mediatype = $4`

	tag, err := store.pool.Exec(context, query, key.AccountID, key.ProfileID, key.MediaID, key.MediaType)
	if err != nil {
		return fmt.Errorf("postgres_checkpoint_store_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Item not found in continue watching")
	}

	return nil
}

// scanCheckpoint hydrates a Checkpoint from a pgx row.
func scanCheckpoint(row pgx.Row, errLabel, notFoundMessage string) (*Checkpoint, error) {
	checkpoint := &Checkpoint{}
	err := row.Scan(
		&checkpoint.ID,
		&checkpoint.AccountID,
		&checkpoint.ProfileID,
		&checkpoint.MediaID,
		&checkpoint.MediaType,
		&checkpoint.Title,
		&checkpoint.BackdropPath,
		&checkpoint.PosterPath,
		&checkpoint.CurrentSeason,
		&checkpoint.CurrentEpisode,
		&checkpoint.CurrentTime,
		&checkpoint.TotalDuration,
		&checkpoint.LastWatchedAt,
		&checkpoint.CreatedAt,
		&checkpoint.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("%s: %w", errLabel, err)
	}

	return checkpoint, nil
}
