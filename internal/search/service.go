// Copyright (c) 2026 Aurastream. All rights reserved.

package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/pkg/searchkey"
	"github.com/aurastream/api/pkg/uuid"
)

// Catalog is the upstream the proxy forwards queries to. Satisfied by
// [*Client]; tests substitute a fake.
type Catalog interface {
	// Search queries the catalog for the given category and free-text query.
	Search(context context.Context, category, query string) ([]Result, error)
}

// ResultCache fronts the catalog with cached result sets. Satisfied by
// [*TieredCache]; tests substitute a fake.
type ResultCache interface {
	// Get looks a result set up by its normalized key.
	Get(context context.Context, key string) ([]Result, bool)

	// Set stores a result set under its normalized key.
	Set(context context.Context, key string, results []Result)
}

// Service implements the catalog search and history use cases.
type Service struct {
	catalog Catalog
	cache   ResultCache
	history HistoryStore
	group   singleflight.Group
}

// NewService constructs a new search [Service].
func NewService(catalog Catalog, cache ResultCache, history HistoryStore) *Service {
	return &Service{
		catalog: catalog,
		cache:   cache,
		history: history,
	}
}

// # Search Flow

/*
Search proxies a catalog query and logs the first hit to search history.

Description: Cache tiers are consulted first; misses go upstream behind a
singleflight gate so concurrent identical queries share one TMDB call. The
history append happens per caller (not inside the gate), because every
searching profile gets its own history line even when the fetch was shared.
Upstream failures surface as UpstreamFailure and never touch history.

Parameters:
  - context: context.Context
  - accountID: string (the searching account)
  - profileID: string (the searching profile, tags the history line)
  - category: string (movie, tv, or person)
  - query: string (free-text user query)

Returns:
  - []Result: The upstream result page (possibly empty; no history on empty)
  - error: Upstream (502) or storage errors
*/
func (service *Service) Search(context context.Context, accountID, profileID, category, query string) ([]Result, error) {

	// Equivalent spellings of a query collapse into one cache key.
	key := category + ":" + searchkey.From(query)

	results, hit := service.cache.Get(context, key)
	if !hit {
		fetched, err, _ := service.group.Do(key, func() (interface{}, error) {
			upstream, err := service.catalog.Search(context, category, query)
			if err != nil {
				return nil, err
			}
			service.cache.Set(context, key, upstream)
			return upstream, nil
		})
		if err != nil {
			return nil, apperr.Upstream("Failed to fetch search results", err)
		}
		results = fetched.([]Result)
	}

	if len(results) == 0 {
		return results, nil
	}

	// Log the first result against the searching profile.
	first := results[0]
	entry := &HistoryEntry{
		RowID:      uuid.New(),
		AccountID:  accountID,
		ProfileID:  profileID,
		MediaID:    first.ID,
		Title:      first.DisplayTitle(),
		Image:      first.HistoryImage(category),
		SearchType: category,
		CreatedAt:  time.Now(),
	}
	if err := service.history.Append(context, entry); err != nil {
		return nil, fmt.Errorf("search_service_history_append_failed: %w", err)
	}

	return results, nil
}

// # History Flow

/*
History returns the account's search history for one profile, append order.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string

Returns:
  - []*HistoryEntry: Hydrated entries
  - error: Storage errors
*/
func (service *Service) History(context context.Context, accountID, profileID string) ([]*HistoryEntry, error) {
	entries, err := service.history.ListByProfile(context, accountID, profileID)
	if err != nil {
		return nil, fmt.Errorf("search_service_history_list_failed: %w", err)
	}

	return entries, nil
}

/*
RemoveHistoryItem deletes the history entries matching a media ID for one
profile.

Parameters:
  - context: context.Context
  - accountID: string
  - profileID: string
  - mediaID: int64

Returns:
  - error: NotFound ("Item not found in search history") or storage errors
*/
func (service *Service) RemoveHistoryItem(context context.Context, accountID, profileID string, mediaID int64) error {
	return service.history.Remove(context, accountID, profileID, mediaID)
}
