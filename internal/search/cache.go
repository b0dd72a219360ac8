// Copyright (c) 2026 Aurastream. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/aurastream/api/internal/platform/constants"
)

// # Result Caching

// TieredCache fronts the TMDB client with two cache tiers: a short-lived
// in-process tier for hot keys, and a longer-lived Redis tier shared across
// server instances.
//
// Cache failures are never fatal: a broken Redis degrades to upstream
// fetches, logged at warn level.
type TieredCache struct {
	memory *gocache.Cache
	shared *redis.Client
	logger *slog.Logger
}

// NewTieredCache constructs the two-tier result cache.
func NewTieredCache(shared *redis.Client, logger *slog.Logger) *TieredCache {
	return &TieredCache{
		memory: gocache.New(constants.SearchMemoryCacheTTL, constants.SearchMemoryCacheSweep),
		shared: shared,
		logger: logger,
	}
}

/*
Get looks a result set up, memory tier first, then Redis.

Description: A Redis hit is promoted into the memory tier so subsequent
lookups on this instance stay in-process.

Parameters:
  - context: context.Context
  - key: string (normalized cache key, without the Redis prefix)

Returns:
  - []Result: The cached result set
  - bool: true on a hit in either tier
*/
func (cache *TieredCache) Get(context context.Context, key string) ([]Result, bool) {

	// Tier 1: in-process.
	if cached, found := cache.memory.Get(key); found {
		if results, ok := cached.([]Result); ok {
			return results, true
		}
	}

	// Tier 2: shared.
	payload, err := cache.shared.Get(context, constants.RedisPrefixSearch+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.WarnContext(context, "search_cache_redis_get_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal(payload, &results); err != nil {
		cache.logger.WarnContext(context, "search_cache_decode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil, false
	}

	// Promote to the memory tier.
	cache.memory.Set(key, results, constants.SearchMemoryCacheTTL)

	return results, true
}

/*
Set stores a result set in both tiers.

Parameters:
  - context: context.Context
  - key: string (normalized cache key)
  - results: []Result
*/
func (cache *TieredCache) Set(context context.Context, key string, results []Result) {
	cache.memory.Set(key, results, constants.SearchMemoryCacheTTL)

	payload, err := json.Marshal(results)
	if err != nil {
		cache.logger.WarnContext(context, "search_cache_encode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return
	}

	if err := cache.shared.Set(context, constants.RedisPrefixSearch+key, payload, constants.SearchRedisCacheTTL).Err(); err != nil {
		cache.logger.WarnContext(context, "search_cache_redis_set_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
