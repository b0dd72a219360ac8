// Copyright (c) 2026 Aurastream. All rights reserved.

package session

import (
	"context"

	"github.com/aurastream/api/internal/profile"
)

// # Account Data Access

// AccountStore defines the data access contract for platform accounts.
type AccountStore interface {

	/*
		Create persists a brand-new account to the storage.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, account *Account) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)
}

// # Profile Directory

// ProfileDirectory is the slice of the profile registry the session layer
// needs: per-request reloads and default-profile selection at login.
type ProfileDirectory interface {

	/*
		FindByID returns the profile with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *profile.Profile: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*profile.Profile, error)

	/*
		FindDefault returns the account's default profile (the oldest one).

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - *profile.Profile: Hydrated entity
		  - error: apperr.NotFound when the account owns no profiles
	*/
	FindDefault(context context.Context, accountID string) (*profile.Profile, error)
}
