// Copyright (c) 2026 Aurastream. All rights reserved.

package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/sec"
	"github.com/aurastream/api/internal/profile"
	"github.com/aurastream/api/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting session tokens.
type TokenIssuer interface {
	// IssueAccountToken creates a signed account-scoped session token.
	IssueAccountToken(accountID string, timeToLive time.Duration) (string, error)

	// IssueProfileToken creates a signed profile-scoped session token.
	IssueProfileToken(accountID, profileID string, timeToLive time.Duration) (string, error)
}

// Service implements the session and account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, signup, or
// login logic must be reviewed by the security team.
type Service struct {
	accounts AccountStore
	profiles ProfileDirectory
	tokens   TokenIssuer
}

// NewService constructs a new session [Service] with necessary dependencies.
func NewService(accounts AccountStore, profiles ProfileDirectory, tokens TokenIssuer) *Service {
	return &Service{
		accounts: accounts,
		profiles: profiles,
		tokens:   tokens,
	}
}

// Established represents a freshly issued session: the live account, the
// selected profile (nil for account-scoped sessions), and the signed token
// the handler binds to the cookie.
type Established struct {
	Account  *Account
	Profile  *profile.Profile
	Token    string
	TokenTTL time.Duration
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

/*
Signup validates uniqueness, hashes the password, and persists a new account.

Description: A random avatar is drawn from the fixed default pool. The caller
is immediately authenticated: an account-scoped token with the login TTL class
is issued alongside the created account.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Established: Created account plus signed session token
  - error: Validation (duplicate identity) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Established, error) {

	// Verify email uniqueness. Exact historical message, reported as 400.
	// Only a clean miss means the identity is available; a failing probe
	// aborts the signup rather than risking a duplicate.
	_, err := service.accounts.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.ValidationError("Email already exists")
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("session_service_email_probe_failed: %w", err)
	}

	// Verify username uniqueness.
	_, err = service.accounts.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.ValidationError("Username already exists")
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("session_service_username_probe_failed: %w", err)
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during signup spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("session_service_hash_failed: %w", err)
	}

	// Construct the new Account entity. Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Image:        DefaultAvatars[rand.Intn(len(DefaultAvatars))],
	}

	if err := service.accounts.Create(context, account); err != nil {
		return nil, fmt.Errorf("session_service_signup_failed: %w", err)
	}

	token, err := service.tokens.IssueAccountToken(account.ID, constants.LoginTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("session_service_token_issue_failed: %w", err)
	}

	return &Established{
		Account:  account,
		Token:    token,
		TokenTTL: constants.LoginTokenTTL,
	}, nil
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates credentials and issues a session token.

Description: If the account owns at least one profile, the oldest one is
auto-selected and the issued token is profile-scoped; otherwise the token is
account-scoped and the caller must create a profile. Bad credentials report
404 (not 401) with a generic message — observed API behavior that doubles as
enumeration resistance.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Established: Session token, account, and auto-selected profile (if any)
  - error: NotFound on bad credentials, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Established, error) {

	// Only an absent account is "Invalid credentials"; a storage failure
	// must surface as such, not masquerade as a bad login.
	account, err := service.accounts.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Invalid credentials")
		}
		return nil, fmt.Errorf("session_service_login_lookup_failed: %w", err)
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.NotFound("Invalid credentials")
	}

	// Auto-select the default profile when one exists.
	defaultProfile, err := service.profiles.FindDefault(context, account.ID)
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("session_service_default_profile_lookup_failed: %w", err)
		}

		// No profile yet: account-scoped session, client prompts for creation.
		token, err := service.tokens.IssueAccountToken(account.ID, constants.LoginTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("session_service_token_issue_failed: %w", err)
		}

		return &Established{
			Account:  account,
			Token:    token,
			TokenTTL: constants.LoginTokenTTL,
		}, nil
	}

	token, err := service.tokens.IssueProfileToken(account.ID, defaultProfile.ID, constants.LoginTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("session_service_token_issue_failed: %w", err)
	}

	return &Established{
		Account:  account,
		Profile:  defaultProfile,
		Token:    token,
		TokenTTL: constants.LoginTokenTTL,
	}, nil
}

// # Profile Switching

/*
SwitchProfile re-scopes the caller's session to another owned profile.

Description: The target profile is loaded fresh and its ownership verified
before any token is minted, so a failed switch leaves the session untouched.
The switch TTL class (10 days) applies.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims (the caller's verified session)
  - profileID: string (the profile to switch to)

Returns:
  - *Established: New profile-scoped token and the selected profile
  - error: NotFound when the profile is absent or owned by someone else
*/
func (service *Service) SwitchProfile(context context.Context, claims *sec.SessionClaims, profileID string) (*Established, error) {

	target, err := service.profiles.FindByID(context, profileID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("session_service_switch_lookup_failed: %w", err)
	}
	if err != nil || !sec.Owns(claims, target) {
		// Absent and foreign profiles are indistinguishable to the caller.
		return nil, apperr.NotFound("Profile not found for this user")
	}

	token, err := service.tokens.IssueProfileToken(claims.AccountID, target.ID, constants.ProfileSelectTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("session_service_token_issue_failed: %w", err)
	}

	return &Established{
		Profile:  target,
		Token:    token,
		TokenTTL: constants.ProfileSelectTokenTTL,
	}, nil
}

// # Resolution

/*
Resolve turns verified claims into live account and profile records.

Description: This is the trust boundary of the session model. The token is
only believed about the IDs it carries; the records are reloaded from storage
on every request so deleted accounts and profiles lose access immediately.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims

Returns:
  - *Identity: Live account plus selected profile (nil for account scope)
  - error: NotFound ("User not found" / "Profile not found") on dangling IDs
*/
func (service *Service) Resolve(context context.Context, claims *sec.SessionClaims) (*Identity, error) {

	account, err := service.accounts.FindByID(context, claims.AccountID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("session_service_resolve_account_failed: %w", err)
	}

	identity := &Identity{Account: account}

	if claims.Scope() == sec.ScopeProfile {
		selected, err := service.profiles.FindByID(context, claims.ProfileID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.NotFound("Profile not found")
			}
			return nil, fmt.Errorf("session_service_resolve_profile_failed: %w", err)
		}
		identity.Profile = selected
	}

	return identity, nil
}
