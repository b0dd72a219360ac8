// Copyright (c) 2026 Aurastream. All rights reserved.

package watch

import (
	"context"
)

// # Checkpoint Data Access

// Store defines the data access contract for playback checkpoints.
type Store interface {

	/*
		Create persists a brand-new checkpoint to the storage.

		Parameters:
		  - context: context.Context
		  - checkpoint: *Checkpoint

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, checkpoint *Checkpoint) error

	/*
		FindByKey returns the checkpoint matching the full composite key.

		Parameters:
		  - context: context.Context
		  - key: Key

		Returns:
		  - *Checkpoint: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByKey(context context.Context, key Key) (*Checkpoint, error)

	/*
		FindByMedia returns the checkpoint for a media ID regardless of media
		type. Point lookups from the watch page use this looser key.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - profileID: string
		  - mediaID: int64

		Returns:
		  - *Checkpoint: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByMedia(context context.Context, accountID, profileID string, mediaID int64) (*Checkpoint, error)

	/*
		List returns the profile's checkpoints, most recently watched first,
		capped at the given limit.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - profileID: string
		  - limit: int

		Returns:
		  - []*Checkpoint: Hydrated entities (empty slice when none exist)
		  - error: Database retrieval failures
	*/
	List(context context.Context, accountID, profileID string, limit int) ([]*Checkpoint, error)

	/*
		Update persists the checkpoint's mutable playback fields.

		Parameters:
		  - context: context.Context
		  - checkpoint: *Checkpoint

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, checkpoint *Checkpoint) error

	/*
		Touch refreshes only lastWatchedAt for the keyed checkpoint.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Touch(context context.Context, id string) error

	/*
		Delete removes the checkpoint matching the full composite key.

		Parameters:
		  - context: context.Context
		  - key: Key

		Returns:
		  - error: apperr.NotFound when no row matched, or persistence failures
	*/
	Delete(context context.Context, key Key) error
}
