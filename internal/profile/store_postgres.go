// Copyright (c) 2026 Aurastream. All rights reserved.

// PostgreSQL implementation of the profile [Store].
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package profile

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

// NewPostgresStore creates a new PostgreSQL implementation of the profile [Store].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// profileColumns is the canonical SELECT column list for users.profile.
const profileColumns = `id, accountid, name, image, createdat, updatedat`

/*
Create persists a new profile record into the users.profile table.

Parameters:
  - context: context.Context
  - profile: *Profile (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (store *PostgresStore) Create(context context.Context, profile *Profile) error {
	const query = `
		INSERT INTO users.profile (
			id, accountid, name, image, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := store.pool.Exec(context, query,
		profile.ID,
		profile.AccountID,
		profile.Name,
		profile.Image,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_store_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a profile record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByID(context context.Context, id string) (*Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE id = $1`

	profile := &Profile{}
	err := store.pool.QueryRow(context, query, id).Scan(
		&profile.ID,
		&profile.AccountID,
		&profile.Name,
		&profile.Image,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, fmt.Errorf("postgres_profile_store_find_by_id_failed: %w", err)
	}

	return profile, nil
}

/*
ListByAccount retrieves all profiles owned by the account, oldest first.

Description: Creation order doubles as the default-profile order, so the
ordering here is load-bearing for login's auto-selection.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - []*Profile: Hydrated entities
  - error: Database errors
*/
func (store *PostgresStore) ListByAccount(context context.Context, accountID string) ([]*Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE accountid = $1
		ORDER BY createdat ASC`

	rows, err := store.pool.Query(context, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("postgres_profile_store_list_failed: %w", err)
	}
	defer rows.Close()

	profiles := make([]*Profile, 0)
	for rows.Next() {
		profile := &Profile{}
		if err := rows.Scan(
			&profile.ID,
			&profile.AccountID,
			&profile.Name,
			&profile.Image,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_profile_store_scan_failed: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_profile_store_rows_failed: %w", err)
	}

	return profiles, nil
}

/*
CountByAccount counts the profiles currently owned by the account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - int: Profile count
  - error: Database errors
*/
func (store *PostgresStore) CountByAccount(context context.Context, accountID string) (int, error) {
	const query = `SELECT COUNT(*) FROM users.profile WHERE accountid = $1`

	var count int
	if err := store.pool.QueryRow(context, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_profile_store_count_failed: %w", err)
	}

	return count, nil
}

/*
FindDefault retrieves the account's oldest profile.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound when the account owns no profiles
*/
func (store *PostgresStore) FindDefault(context context.Context, accountID string) (*Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users.profile
		WHERE accountid = $1
		ORDER BY createdat ASC
		LIMIT 1`

	profile := &Profile{}
	err := store.pool.QueryRow(context, query, accountID).Scan(
		&profile.ID,
		&profile.AccountID,
		&profile.Name,
		&profile.Image,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, fmt.Errorf("postgres_profile_store_find_default_failed: %w", err)
	}

	return profile, nil
}

/*
Update persists the profile's mutable fields (name, image, updatedat).

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Update(context context.Context, profile *Profile) error {
	const query = `
		UPDATE users.profile
		SET name = $2, image = $3, updatedat = $4
		WHERE id = $1`

	profile.UpdatedAt = time.Now()

	tag, err := store.pool.Exec(context, query,
		profile.ID,
		profile.Name,
		profile.Image,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_store_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile not found")
	}

	return nil
}

/*
Delete removes the profile row by its primary key.

Description: Checkpoint and search-history rows referencing the profile are
removed by ON DELETE CASCADE foreign keys; no application-level fan-out.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) Delete(context context.Context, id string) error {
	const query = `DELETE FROM users.profile WHERE id = $1`

	tag, err := store.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_profile_store_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile not found")
	}

	return nil
}
