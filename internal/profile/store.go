// Copyright (c) 2026 Aurastream. All rights reserved.

package profile

import (
	"context"
)

// # Profile Data Access

// Store defines the data access contract for viewer profiles.
type Store interface {

	/*
		Create persists a brand-new profile to the storage.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, profile *Profile) error

	/*
		FindByID returns the profile with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	/*
		ListByAccount returns every profile owned by the account, oldest first.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - []*Profile: Hydrated entities (empty slice when none exist)
		  - error: Database retrieval failures
	*/
	ListByAccount(context context.Context, accountID string) ([]*Profile, error)

	/*
		CountByAccount returns how many profiles the account currently owns.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - int: Profile count
		  - error: Database retrieval failures
	*/
	CountByAccount(context context.Context, accountID string) (int, error)

	/*
		FindDefault returns the account's default profile: the oldest one.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound when the account has no profiles
	*/
	FindDefault(context context.Context, accountID string) (*Profile, error)

	/*
		Update persists changes to the profile's mutable fields.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, profile *Profile) error

	/*
		Delete removes the profile row. Dependent checkpoint and search-history
		rows are removed by the schema's cascading foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
