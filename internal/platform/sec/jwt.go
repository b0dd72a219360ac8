// Copyright (c) 2026 Aurastream. All rights reserved.

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the payload embedded inside the session JWT.
//
// # Why custom claims?
//
// The claim set nests two identities: the account (always present) and the
// selected viewer profile (present only after profile selection). Claim names
// are abbreviated to keep the cookie payload small.
//
// The embedded identifiers are the only trusted content; the account and
// profile records themselves are reloaded from storage on every request.
type SessionClaims struct {
	jwt.RegisteredClaims

	// AccountID is the authenticated account, required in every token.
	AccountID string `json:"aid"`

	// ProfileID is the selected viewer profile, empty for account-only tokens.
	ProfileID string `json:"pid,omitempty"`
}

// Scope returns the tagged variant of the session described by the claims.
func (claims *SessionClaims) Scope() Scope {
	if claims.ProfileID == "" {
		return ScopeAccount
	}
	return ScopeProfile
}

// ErrTokenExpired reports a structurally valid token past its expiry. The
// middleware maps it to a distinct client message.
var ErrTokenExpired = errors.New("sec: token expired")

// TokenService handles generation and verification of session JWTs using
// HMAC-SHA256 and a shared secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: session secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// IssueAccountToken creates a signed account-scoped session token.
func (service *TokenService) IssueAccountToken(accountID string, timeToLive time.Duration) (string, error) {
	return service.sign(SessionClaims{
		RegisteredClaims: service.registeredClaims(accountID, timeToLive),
		AccountID:        accountID,
	})
}

// IssueProfileToken creates a signed profile-scoped session token.
//
// Callers must have verified that the profile belongs to the account before
// issuing; the codec itself does not consult storage.
func (service *TokenService) IssueProfileToken(accountID, profileID string, timeToLive time.Duration) (string, error) {
	return service.sign(SessionClaims{
		RegisteredClaims: service.registeredClaims(accountID, timeToLive),
		AccountID:        accountID,
		ProfileID:        profileID,
	})
}

// VerifyToken checks the signature and validity of a session JWT string.
//
// Expired tokens return [ErrTokenExpired]; any other failure (bad signature,
// malformed payload, wrong algorithm) returns a generic verification error.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// registeredClaims builds the standard claim block shared by both scopes.
func (service *TokenService) registeredClaims(accountID string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

// sign serializes and signs the claim set.
func (service *TokenService) sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}
