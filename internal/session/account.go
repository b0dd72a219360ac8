// Copyright (c) 2026 Aurastream. All rights reserved.

/*
Package session implements account identity and the two-tier session model.

A session identifies an account and, optionally, a selected viewer profile.
Both identities ride in one signed token bound to a single cookie; the token
carries IDs only, and the records behind them are reloaded from storage on
every request.

# Architecture

This layer is the "Truth" of the identity system. It owns signup, login,
logout, profile switching, and the per-request resolution of claims into live
records. Profile data itself lives in the profile package; session consumes it
through the [ProfileDirectory] contract.
*/
package session

import (
	"time"
)

// # Domain Entities

// Account represents a registered member of the Aurastream platform.
//
// Password always serializes as an empty string: the historical wire format
// echoes the field with its value blanked rather than omitting the key.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Password     string    `json:"password"` // Never populated; serializes as "".
	Image        string    `json:"image"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnerAccountID implements the [sec.Owned] contract; an account owns itself.
func (a *Account) OwnerAccountID() string {
	return a.ID
}

// DefaultAvatars is the fixed pool an avatar is drawn from at signup.
var DefaultAvatars = []string{"/avatar1.png", "/avatar2.png", "/avatar3.png"}

// # Field Identifiers

// Global field names for validation in the session domain.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
)
