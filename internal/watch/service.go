// Copyright (c) 2026 Aurastream. All rights reserved.

package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/validate"
	"github.com/aurastream/api/pkg/uuid"
)

// Service implements the playback checkpoint use cases.
type Service struct {
	store Store
}

// NewService constructs a new watch [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// # First Play

// StartInput holds the payload a client sends when a title starts playing.
type StartInput struct {
	AccountID      string
	ProfileID      string
	MediaID        int64
	MediaType      string
	Title          string
	BackdropPath   string
	PosterPath     string
	CurrentSeason  int
	CurrentEpisode int
}

/*
Start registers a first play, or refreshes an existing checkpoint.

Description: Idempotent. If a checkpoint already exists for the key only
lastWatchedAt is refreshed; the stored offset is never regressed by a replayed
first-play report. Otherwise a new checkpoint is created at offset zero.
Concurrent first plays for the same key can race into duplicate rows; the
rail tolerates this and the product accepts it.

Parameters:
  - context: context.Context
  - input: StartInput

Returns:
  - *Checkpoint: The live checkpoint
  - bool: true when a new checkpoint was created
  - error: Validation or storage errors
*/
func (service *Service) Start(context context.Context, input StartInput) (*Checkpoint, bool, error) {

	validator := &validate.Validator{}
	validator.OneOf("mediaType", input.MediaType, MediaTypeMovie, MediaTypeTV)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	key := Key{
		AccountID: input.AccountID,
		ProfileID: input.ProfileID,
		MediaID:   input.MediaID,
		MediaType: input.MediaType,
	}

	existing, err := service.store.FindByKey(context, key)
	if err == nil {
		// Replayed first play: refresh recency, keep the offset.
		if err := service.store.Touch(context, existing.ID); err != nil {
			return nil, false, fmt.Errorf("watch_service_touch_failed: %w", err)
		}
		existing.LastWatchedAt = time.Now()
		return existing, false, nil
	}
	if !apperr.IsNotFound(err) {
		// Anything but a clean miss aborts the flow; creating here could
		// shadow an existing checkpoint behind a transient failure.
		return nil, false, fmt.Errorf("watch_service_lookup_failed: %w", err)
	}

	checkpoint := &Checkpoint{
		ID:             uuid.New(),
		AccountID:      input.AccountID,
		ProfileID:      input.ProfileID,
		MediaID:        input.MediaID,
		MediaType:      input.MediaType,
		Title:          input.Title,
		BackdropPath:   input.BackdropPath,
		PosterPath:     input.PosterPath,
		CurrentSeason:  episodicDefault(input.MediaType, input.CurrentSeason),
		CurrentEpisode: episodicDefault(input.MediaType, input.CurrentEpisode),
		CurrentTime:    0,
		LastWatchedAt:  time.Now(),
	}

	if err := service.store.Create(context, checkpoint); err != nil {
		return nil, false, fmt.Errorf("watch_service_create_failed: %w", err)
	}

	return checkpoint, true, nil
}

// # Periodic Reconciliation

// CheckpointInput holds the periodic progress report (5-second client tick).
type CheckpointInput struct {
	CurrentTime    float64
	CurrentSeason  int
	CurrentEpisode int
	TotalDuration  *float64
}

/*
Checkpoint overwrites the playback offset of an existing record.

Description: Never creates a record: a tick arriving after the checkpoint was
removed reports NotFound rather than resurrecting it. Episodic fields are only
written for TV titles; totalDuration only when the client supplied it.

Parameters:
  - context: context.Context
  - key: Key
  - input: CheckpointInput

Returns:
  - *Checkpoint: The updated checkpoint
  - error: NotFound when no record exists, validation or storage errors
*/
func (service *Service) Checkpoint(context context.Context, key Key, input CheckpointInput) (*Checkpoint, error) {

	validator := &validate.Validator{}
	validator.Custom("currentTime", input.CurrentTime < 0, "Must be zero or positive")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	checkpoint, err := service.store.FindByKey(context, key)
	if err != nil {
		return nil, err
	}

	checkpoint.CurrentTime = input.CurrentTime
	checkpoint.LastWatchedAt = time.Now()

	if checkpoint.IsEpisodic() {
		checkpoint.CurrentSeason = episodicDefault(key.MediaType, input.CurrentSeason)
		checkpoint.CurrentEpisode = episodicDefault(key.MediaType, input.CurrentEpisode)
	}
	if input.TotalDuration != nil {
		checkpoint.TotalDuration = input.TotalDuration
	}

	if err := service.store.Update(context, checkpoint); err != nil {
		return nil, err
	}

	return checkpoint, nil
}

// # Retrieval & Removal

/*
List returns the continue-watching rail for a profile.

Description: Most recently watched first, capped at twenty entries.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string

Returns:
  - []*Checkpoint: Hydrated entities
  - error: Storage errors
*/
func (service *Service) List(context context.Context, accountID, profileID string) ([]*Checkpoint, error) {
	checkpoints, err := service.store.List(context, accountID, profileID, constants.ContinueWatchingLimit)
	if err != nil {
		return nil, fmt.Errorf("watch_service_list_failed: %w", err)
	}

	return checkpoints, nil
}

/*
Get returns a single checkpoint by media ID (media type is ignored, matching
the historical point-lookup contract).

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string
  - mediaID: int64

Returns:
  - *Checkpoint: Hydrated entity
  - error: NotFound ("Continue watching item not found") or storage errors
*/
func (service *Service) Get(context context.Context, accountID, profileID string, mediaID int64) (*Checkpoint, error) {
	return service.store.FindByMedia(context, accountID, profileID, mediaID)
}

/*
Remove deletes the checkpoint matching the full composite key.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - error: NotFound when absent, or storage errors
*/
func (service *Service) Remove(context context.Context, key Key) error {
	return service.store.Delete(context, key)
}

// episodicDefault clamps episodic positions: non-TV titles carry 1, and a
// missing or invalid value falls back to 1.
func episodicDefault(mediaType string, value int) int {
	if mediaType != MediaTypeTV || value < 1 {
		return 1
	}
	return value
}
