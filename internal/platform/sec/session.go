// Copyright (c) 2026 Aurastream. All rights reserved.

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared at the point of use.
package sec

// # Session Scope

// Scope is the tagged variant of a session: a token identifies either an
// account alone or an account with a selected viewer profile.
//
// Downstream code must branch on the scope instead of probing an optional
// field, so the account-only case is never silently mishandled.
type Scope string

const (
	// ScopeAccount is a token carrying only an account identity.
	ScopeAccount Scope = "account"

	// ScopeProfile is a token carrying an account identity plus a selected profile.
	ScopeProfile Scope = "profile"
)

// # Ownership

// Owned is implemented by any resource that belongs to a single account
// (profiles, checkpoints). It feeds the shared [Owns] predicate so ownership
// checks are not re-derived ad hoc per endpoint.
type Owned interface {
	// OwnerAccountID returns the ID of the account that owns the resource.
	OwnerAccountID() string
}

// Owns reports whether the session identified by claims is entitled to the
// given resource.
//
// # Trust Boundary
//
// The check compares the resource's owning account against the token's
// account ID only. Profile-level entitlement is covered transitively: a
// profile-scoped token was ownership-verified when it was issued.
func Owns(claims *SessionClaims, resource Owned) bool {
	if claims == nil || resource == nil {
		return false
	}
	return claims.AccountID == resource.OwnerAccountID()
}
