// Copyright (c) 2026 Aurastream. All rights reserved.

/*
Package profile implements the viewer profile registry.

A profile is a named viewing persona under an account (avatar, watch state,
search history). Accounts own at most five profiles; every profile-scoped
feature in the product (playback checkpoints, search history) hangs off a
profile ID issued here.

# Architecture

This layer owns the profile lifecycle and the ownership rules. It knows
nothing about sessions; the HTTP handler receives a token issuer so that
profile creation can upgrade the caller's cookie without importing the
session package.
*/
package profile

import (
	"time"
)

// # Domain Entities

// Profile represents a single viewing persona under an account.
//
// The JSON field names are the historical wire format consumed by the
// frontend; they must not be renamed.
type Profile struct {
	ID        string    `json:"id"`
	AccountID string    `json:"userId"` // Immutable after creation.
	Name      string    `json:"profileName"`
	Image     string    `json:"profileImage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerAccountID implements the [sec.Owned] contract for ownership checks.
func (p *Profile) OwnerAccountID() string {
	return p.AccountID
}

// # Field Identifiers

// Global field names for validation in the profile domain.
const (
	FieldProfileName  = "profileName"
	FieldProfileImage = "profileImage"
	FieldProfileID    = "profileId"
)
