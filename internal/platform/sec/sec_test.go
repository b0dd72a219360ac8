// Copyright (c) 2026 Aurastream. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/sec"
)

/*
TestTokenService_AccountToken verifies the account-scoped issue/verify round trip.
*/
func TestTokenService_AccountToken(t *testing.T) {
	tokens, err := sec.NewTokenService("unit-test-secret", "aurastream.test")
	require.NoError(t, err)

	// 1. Issue an account-only token
	signed, err := tokens.IssueAccountToken("account-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// 2. Verify and inspect the claims
	claims, err := tokens.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.AccountID)
	assert.Empty(t, claims.ProfileID)
	assert.Equal(t, sec.ScopeAccount, claims.Scope())
}

/*
TestTokenService_ProfileToken verifies the profile-scoped issue/verify round trip.
*/
func TestTokenService_ProfileToken(t *testing.T) {
	tokens, err := sec.NewTokenService("unit-test-secret", "aurastream.test")
	require.NoError(t, err)

	signed, err := tokens.IssueProfileToken("account-123", "profile-456", time.Hour)
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.AccountID)
	assert.Equal(t, "profile-456", claims.ProfileID)
	assert.Equal(t, sec.ScopeProfile, claims.Scope())
}

/*
TestTokenService_Expired verifies that expired tokens map to ErrTokenExpired.
*/
func TestTokenService_Expired(t *testing.T) {
	tokens, err := sec.NewTokenService("unit-test-secret", "aurastream.test")
	require.NoError(t, err)

	// Issue a token that expired an hour ago
	signed, err := tokens.IssueAccountToken("account-123", -time.Hour)
	require.NoError(t, err)

	_, err = tokens.VerifyToken(signed)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_WrongSecret verifies that a token signed with another secret
fails verification with a generic error, not ErrTokenExpired.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuing, err := sec.NewTokenService("secret-a", "aurastream.test")
	require.NoError(t, err)
	verifying, err := sec.NewTokenService("secret-b", "aurastream.test")
	require.NoError(t, err)

	signed, err := issuing.IssueAccountToken("account-123", time.Hour)
	require.NoError(t, err)

	_, err = verifying.VerifyToken(signed)
	require.Error(t, err)
	assert.NotErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_EmptySecret verifies the constructor rejects a missing secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "aurastream.test")
	assert.Error(t, err)
}

/*
TestTokenService_Garbage verifies that malformed token strings are rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	tokens, err := sec.NewTokenService("unit-test-secret", "aurastream.test")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "definitely-not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestHashPassword verifies the bcrypt hash/compare round trip.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// 1. Hash is not the plain text
	assert.NotEqual(t, "s3cret-pass", hash)

	// 2. Correct password matches
	assert.True(t, sec.CheckPasswordHash("s3cret-pass", hash))

	// 3. Wrong password does not
	assert.False(t, sec.CheckPasswordHash("wrong-pass", hash))
}

// ownedResource is a minimal Owned implementation for predicate tests.
type ownedResource struct{ owner string }

func (r ownedResource) OwnerAccountID() string { return r.owner }

/*
TestOwns exercises the shared ownership predicate.
*/
func TestOwns(t *testing.T) {
	claims := &sec.SessionClaims{AccountID: "account-123"}

	tests := []struct {
		name     string
		claims   *sec.SessionClaims
		resource sec.Owned
		want     bool
	}{
		{"own_resource", claims, ownedResource{owner: "account-123"}, true},
		{"foreign_resource", claims, ownedResource{owner: "account-999"}, false},
		{"nil_claims", nil, ownedResource{owner: "account-123"}, false},
		{"nil_resource", claims, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.Owns(tt.claims, tt.resource))
		})
	}
}

/*
TestSessionCookie verifies the cookie attributes for both session cookie shapes.
*/
func TestSessionCookie(t *testing.T) {
	cookie := sec.SessionCookie("signed-token", 15*24*time.Hour, true)

	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, int((15 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	expired := sec.ExpiredSessionCookie(false)
	assert.Equal(t, constants.SessionCookieName, expired.Name)
	assert.Empty(t, expired.Value)
	assert.Equal(t, -1, expired.MaxAge)
	assert.False(t, expired.Secure)
}
