// Copyright (c) 2026 Aurastream. All rights reserved.

package search

import (
	"context"
	"time"
)

// # Search History

// HistoryEntry is one appended line of an account's search history.
//
// The JSON "id" field is the catalog media ID, not the row's primary key —
// the historical wire format the frontend keys deletions on.
type HistoryEntry struct {
	RowID      string    `json:"-"`
	AccountID  string    `json:"-"`
	ProfileID  string    `json:"profileId"`
	MediaID    int64     `json:"id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	SearchType string    `json:"searchType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OwnerAccountID implements the [sec.Owned] contract for ownership checks.
func (e *HistoryEntry) OwnerAccountID() string {
	return e.AccountID
}

// HistoryStore defines the data access contract for the search history log.
type HistoryStore interface {

	/*
		Append adds an entry to the account's history. Append-only; repeated
		searches produce repeated entries, as the log always has.

		Parameters:
		  - context: context.Context
		  - entry: *HistoryEntry

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, entry *HistoryEntry) error

	/*
		ListByProfile returns the account's entries tagged with the profile,
		oldest first (append order).

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - profileID: string

		Returns:
		  - []*HistoryEntry: Hydrated entries (empty slice when none exist)
		  - error: Database retrieval failures
	*/
	ListByProfile(context context.Context, accountID, profileID string) ([]*HistoryEntry, error)

	/*
		Remove deletes every entry matching (account, profile, media).

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - profileID: string
		  - mediaID: int64

		Returns:
		  - error: apperr.NotFound when nothing matched, or persistence failures
	*/
	Remove(context context.Context, accountID, profileID string, mediaID int64) error
}
