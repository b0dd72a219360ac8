// Copyright (c) 2026 Aurastream. All rights reserved.

// PostgreSQL implementation of the [AccountStore].
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurastream/api/internal/platform/apperr"
)

// PostgresAccountStore implements the [AccountStore] interface using pgx.
type PostgresAccountStore struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the [AccountStore].
func NewPostgresAccountStore(pool *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{pool: pool}
}

// accountColumns is the canonical SELECT column list for users.account.
const accountColumns = `id, username, email, passwordhash, image, isadmin, createdat, updatedat`

/*
Create persists a new account record into the users.account table.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (store *PostgresAccountStore) Create(context context.Context, account *Account) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, image, isadmin, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := store.pool.Exec(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Image,
		account.IsAdmin,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_store_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an account record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresAccountStore) FindByID(context context.Context, id string) (*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1`

	return store.findOne(context, query, id, "postgres_account_store_find_by_id_failed")
}

/*
FindByEmail retrieves an account record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresAccountStore) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE email = $1`

	return store.findOne(context, query, email, "postgres_account_store_find_by_email_failed")
}

/*
FindByUsername retrieves an account record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresAccountStore) FindByUsername(context context.Context, username string) (*Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE username = $1`

	return store.findOne(context, query, username, "postgres_account_store_find_by_username_failed")
}

// findOne runs a single-row account lookup and maps pgx.ErrNoRows to NotFound.
func (store *PostgresAccountStore) findOne(context context.Context, query, argument, errLabel string) (*Account, error) {
	account := &Account{}
	err := store.pool.QueryRow(context, query, argument).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Image,
		&account.IsAdmin,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("%s: %w", errLabel, err)
	}

	return account, nil
}
