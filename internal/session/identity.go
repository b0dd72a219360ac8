// Copyright (c) 2026 Aurastream. All rights reserved.

package session

import (
	"context"

	"github.com/aurastream/api/internal/platform/ctxkey"
	"github.com/aurastream/api/internal/profile"
)

// # Resolved Identity

// Identity is a session resolved against live storage: the account record and
// the selected profile record (nil for account-scoped sessions).
//
// Handlers downstream of [RequireIdentity] consume this instead of raw claims.
type Identity struct {
	Account *Account
	Profile *profile.Profile
}

// HasProfile reports whether a viewer profile is selected.
func (identity *Identity) HasProfile() bool {
	return identity.Profile != nil
}

// WithIdentity returns a new context carrying the resolved identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// IdentityFrom retrieves the resolved [*Identity] from the context.
// Returns nil when no identity has been resolved for the request.
func IdentityFrom(ctx context.Context) *Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
