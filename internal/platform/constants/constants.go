// Copyright (c) 2026 Aurastream. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session Policy: Cookie name and the two token lifetime classes.
  - Domain Limits: Profile cap and continue-watching rail size.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "aurastream-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Policy

const (
	// SessionIssuer is the standard 'iss' claim in session JWTs.
	SessionIssuer = "aurastream.app"

	// SessionCookieName is the single cookie carrying the signed session token.
	SessionCookieName = "jwt-aurastream"

	// SessionCookiePath scopes the cookie to the whole application.
	SessionCookiePath = "/"

	// LoginTokenTTL is the lifetime of tokens issued at signup and login,
	// including the profile-scoped token issued when a default profile is
	// auto-selected on login.
	LoginTokenTTL = 15 * 24 * time.Hour

	// ProfileSelectTokenTTL is the lifetime of tokens issued on an explicit
	// profile switch or profile creation.
	//
	// The mismatch with LoginTokenTTL is observed behavior carried over from
	// the original call sites, kept so existing clients see no change.
	ProfileSelectTokenTTL = 10 * 24 * time.Hour
)

// # Domain Limits

const (
	// MaxProfilesPerAccount caps how many viewer profiles one account may own.
	MaxProfilesPerAccount = 5

	// ContinueWatchingLimit bounds the continue-watching rail returned to clients.
	ContinueWatchingLimit = 20

	// MinPasswordLength is the minimum secret length accepted at signup.
	MinPasswordLength = 6
)

// # Search Caching

const (
	// SearchMemoryCacheTTL bounds the in-process catalog search cache tier.
	SearchMemoryCacheTTL = 5 * time.Minute

	// SearchMemoryCacheSweep is the eviction sweep interval of the in-process tier.
	SearchMemoryCacheSweep = 10 * time.Minute

	// SearchRedisCacheTTL bounds the shared catalog search cache tier.
	SearchRedisCacheTTL = 1 * time.Hour

	// RedisPrefixSearch is the key taxonomy prefix for cached search results.
	RedisPrefixSearch = "search:results:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Database Schemas

const (
	SchemaUsers   = "users"
	SchemaLibrary = "library"
)
