// Copyright (c) 2026 Aurastream. All rights reserved.

/*
Package watch implements playback checkpoint reconciliation ("continue
watching").

A checkpoint records how far a profile got into a title. Clients report a
first play when a title starts and then reconcile the offset on a periodic
tick; the rail shown on the home screen is the profile's twenty most recently
watched checkpoints.

# Architecture

Checkpoints are keyed by (account, profile, media, media type). First play is
idempotent and never regresses an existing offset; periodic reconciliation
overwrites the offset but never creates a record, so a deleted title cannot be
resurrected by a straggling tick.
*/
package watch

import (
	"time"
)

// # Media Types

// Supported media type discriminators.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// # Domain Entities

// Checkpoint represents one profile's playback position in one title.
//
// The JSON field names are the historical wire format consumed by the
// frontend; items are serialized bare (no envelope) on several endpoints.
type Checkpoint struct {
	ID        string `json:"id"`
	AccountID string `json:"userId"`
	ProfileID string `json:"profileId"`
	MediaID   int64  `json:"mediaId"` // Catalog (TMDB) identifier.
	MediaType string `json:"mediaType"`

	// Presentation snapshot taken at first play.
	Title        string `json:"title"`
	BackdropPath string `json:"backdropPath,omitempty"`
	PosterPath   string `json:"posterPath,omitempty"`

	// Episodic position, meaningful for MediaTypeTV only. Defaults to 1/1.
	CurrentSeason  int `json:"currentSeason"`
	CurrentEpisode int `json:"currentEpisode"`

	// Playback offset in seconds. Never negative.
	CurrentTime float64 `json:"currentTime"`

	// TotalDuration is the title length in seconds, nil until a client reports it.
	TotalDuration *float64 `json:"totalDuration,omitempty"`

	LastWatchedAt time.Time `json:"lastWatchedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerAccountID implements the [sec.Owned] contract for ownership checks.
func (c *Checkpoint) OwnerAccountID() string {
	return c.AccountID
}

// IsEpisodic reports whether the checkpoint tracks per-episode position.
func (c *Checkpoint) IsEpisodic() bool {
	return c.MediaType == MediaTypeTV
}

// Key identifies a checkpoint by its natural composite key.
type Key struct {
	AccountID string
	ProfileID string
	MediaID   int64
	MediaType string
}
