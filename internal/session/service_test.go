// Copyright (c) 2026 Aurastream. All rights reserved.

package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/sec"
	"github.com/aurastream/api/internal/profile"
	"github.com/aurastream/api/internal/session"
)

// # In-Memory Fakes

// fakeAccountStore is an in-memory AccountStore for service tests.
type fakeAccountStore struct {
	accounts map[string]*session.Account // keyed by ID
	failure  error                       // when set, every lookup fails with it
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*session.Account)}
}

func (store *fakeAccountStore) Create(_ context.Context, account *session.Account) error {
	store.accounts[account.ID] = account
	return nil
}

func (store *fakeAccountStore) FindByID(_ context.Context, id string) (*session.Account, error) {
	if store.failure != nil {
		return nil, store.failure
	}
	if account, ok := store.accounts[id]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (store *fakeAccountStore) FindByEmail(_ context.Context, email string) (*session.Account, error) {
	if store.failure != nil {
		return nil, store.failure
	}
	for _, account := range store.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (store *fakeAccountStore) FindByUsername(_ context.Context, username string) (*session.Account, error) {
	if store.failure != nil {
		return nil, store.failure
	}
	for _, account := range store.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

// fakeProfileDirectory is an in-memory ProfileDirectory for service tests.
type fakeProfileDirectory struct {
	profiles map[string]*profile.Profile // keyed by ID
}

func newFakeProfileDirectory() *fakeProfileDirectory {
	return &fakeProfileDirectory{profiles: make(map[string]*profile.Profile)}
}

func (directory *fakeProfileDirectory) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	if found, ok := directory.profiles[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Profile not found")
}

func (directory *fakeProfileDirectory) FindDefault(_ context.Context, accountID string) (*profile.Profile, error) {
	var oldest *profile.Profile
	for _, candidate := range directory.profiles {
		if candidate.AccountID != accountID {
			continue
		}
		if oldest == nil || candidate.CreatedAt.Before(oldest.CreatedAt) {
			oldest = candidate
		}
	}
	if oldest == nil {
		return nil, apperr.NotFound("Profile not found")
	}
	return oldest, nil
}

// newTestService wires a session service against in-memory fakes and a real
// token service, so issued tokens can be verified in assertions.
func newTestService(t *testing.T) (*session.Service, *fakeAccountStore, *fakeProfileDirectory, *sec.TokenService) {
	t.Helper()

	accounts := newFakeAccountStore()
	profiles := newFakeProfileDirectory()
	tokens, err := sec.NewTokenService("unit-test-secret", "aurastream.test")
	require.NoError(t, err)

	return session.NewService(accounts, profiles, tokens), accounts, profiles, tokens
}

// seedAccount hashes the password and stores an account directly.
func seedAccount(t *testing.T, store *fakeAccountStore, id, email, username, password string) *session.Account {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	account := &session.Account{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Image:        "/avatar1.png",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	store.accounts[id] = account
	return account
}

// # Signup

/*
TestService_Signup verifies account creation, password hashing, and the issued
account-scoped session token.
*/
func TestService_Signup(t *testing.T) {
	service, accounts, _, tokens := newTestService(t)

	established, err := service.Signup(context.Background(), session.SignupInput{
		Email:    "mia@example.com",
		Username: "mia",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, established.Account)

	// 1. Account persisted with a hashed (never plain-text) password
	stored, err := accounts.FindByEmail(context.Background(), "mia@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("supersecret", stored.PasswordHash))

	// 2. Avatar drawn from the default pool
	assert.Contains(t, session.DefaultAvatars, stored.Image)

	// 3. Token is account-scoped with the login TTL class
	assert.Equal(t, constants.LoginTokenTTL, established.TokenTTL)
	claims, err := tokens.VerifyToken(established.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.AccountID)
	assert.Equal(t, sec.ScopeAccount, claims.Scope())
}

/*
TestService_Signup_Duplicates verifies the duplicate identity checks and their
exact messages, reported as 400.
*/
func TestService_Signup_Duplicates(t *testing.T) {
	service, accounts, _, _ := newTestService(t)
	seedAccount(t, accounts, "account-1", "taken@example.com", "taken", "password1")

	tests := []struct {
		name    string
		input   session.SignupInput
		message string
	}{
		{
			"duplicate_email",
			session.SignupInput{Email: "taken@example.com", Username: "fresh", Password: "password1"},
			"Email already exists",
		},
		{
			"duplicate_username",
			session.SignupInput{Email: "fresh@example.com", Username: "taken", Password: "password1"},
			"Username already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

/*
TestService_Signup_StoreFailure verifies that a failed uniqueness probe aborts
the signup instead of treating the identity as available.
*/
func TestService_Signup_StoreFailure(t *testing.T) {
	service, accounts, _, _ := newTestService(t)
	accounts.failure = errors.New("connection refused")

	_, err := service.Signup(context.Background(), session.SignupInput{
		Email:    "mia@example.com",
		Username: "mia",
		Password: "supersecret",
	})
	require.Error(t, err)

	// The outage surfaces as a plain internal failure, not a duplicate
	// verdict, and nothing was persisted
	assert.Nil(t, apperr.As(err))
	assert.Empty(t, accounts.accounts)
}

// # Login

/*
TestService_Login_InvalidCredentials verifies that unknown emails and wrong
passwords both report 404 "Invalid credentials".
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, accounts, _, _ := newTestService(t)
	seedAccount(t, accounts, "account-1", "mia@example.com", "mia", "rightpass")

	tests := []struct {
		name  string
		input session.LoginInput
	}{
		{"unknown_email", session.LoginInput{Email: "ghost@example.com", Password: "rightpass"}},
		{"wrong_password", session.LoginInput{Email: "mia@example.com", Password: "wrongpass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 404, ae.HTTPStatus)
			assert.Equal(t, "Invalid credentials", ae.Message)
		})
	}
}

/*
TestService_Login_StoreFailure verifies that a storage outage during login is
never reported to the caller as bad credentials.
*/
func TestService_Login_StoreFailure(t *testing.T) {
	service, accounts, _, _ := newTestService(t)
	seedAccount(t, accounts, "account-1", "mia@example.com", "mia", "rightpass")
	accounts.failure = errors.New("connection refused")

	_, err := service.Login(context.Background(), session.LoginInput{
		Email:    "mia@example.com",
		Password: "rightpass",
	})
	require.Error(t, err)

	assert.Nil(t, apperr.As(err))
	assert.NotContains(t, err.Error(), "Invalid credentials")
}

/*
TestService_Login_AutoSelectsDefaultProfile verifies that the oldest profile is
auto-selected and the issued token is profile-scoped.
*/
func TestService_Login_AutoSelectsDefaultProfile(t *testing.T) {
	service, accounts, profiles, tokens := newTestService(t)
	account := seedAccount(t, accounts, "account-1", "mia@example.com", "mia", "rightpass")

	now := time.Now()
	profiles.profiles["profile-new"] = &profile.Profile{
		ID: "profile-new", AccountID: account.ID, Name: "Recent", CreatedAt: now,
	}
	profiles.profiles["profile-old"] = &profile.Profile{
		ID: "profile-old", AccountID: account.ID, Name: "First", CreatedAt: now.Add(-time.Hour),
	}

	established, err := service.Login(context.Background(), session.LoginInput{
		Email:    "mia@example.com",
		Password: "rightpass",
	})
	require.NoError(t, err)

	// 1. The oldest profile wins
	require.NotNil(t, established.Profile)
	assert.Equal(t, "profile-old", established.Profile.ID)

	// 2. Profile-scoped token with the login TTL class
	assert.Equal(t, constants.LoginTokenTTL, established.TokenTTL)
	claims, err := tokens.VerifyToken(established.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, "profile-old", claims.ProfileID)
	assert.Equal(t, sec.ScopeProfile, claims.Scope())
}

/*
TestService_Login_NoProfile verifies the account-scoped fallback when the
account owns no profiles yet.
*/
func TestService_Login_NoProfile(t *testing.T) {
	service, accounts, _, tokens := newTestService(t)
	account := seedAccount(t, accounts, "account-1", "mia@example.com", "mia", "rightpass")

	established, err := service.Login(context.Background(), session.LoginInput{
		Email:    "mia@example.com",
		Password: "rightpass",
	})
	require.NoError(t, err)

	assert.Nil(t, established.Profile)

	claims, err := tokens.VerifyToken(established.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, sec.ScopeAccount, claims.Scope())
}

// # Profile Switching

/*
TestService_SwitchProfile verifies ownership-checked re-scoping with the switch
TTL class, and the indistinguishable absent/foreign failure mode.
*/
func TestService_SwitchProfile(t *testing.T) {
	service, _, profiles, tokens := newTestService(t)

	profiles.profiles["profile-own"] = &profile.Profile{
		ID: "profile-own", AccountID: "account-1", Name: "Mine",
	}
	profiles.profiles["profile-foreign"] = &profile.Profile{
		ID: "profile-foreign", AccountID: "account-2", Name: "Theirs",
	}

	claims := &sec.SessionClaims{AccountID: "account-1"}

	t.Run("owned_profile", func(t *testing.T) {
		established, err := service.SwitchProfile(context.Background(), claims, "profile-own")
		require.NoError(t, err)

		assert.Equal(t, constants.ProfileSelectTokenTTL, established.TokenTTL)

		issued, err := tokens.VerifyToken(established.Token)
		require.NoError(t, err)
		assert.Equal(t, "account-1", issued.AccountID)
		assert.Equal(t, "profile-own", issued.ProfileID)
	})

	t.Run("foreign_profile", func(t *testing.T) {
		_, err := service.SwitchProfile(context.Background(), claims, "profile-foreign")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
		assert.Equal(t, "Profile not found for this user", ae.Message)
	})

	t.Run("absent_profile", func(t *testing.T) {
		_, err := service.SwitchProfile(context.Background(), claims, "profile-ghost")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Profile not found for this user", ae.Message)
	})
}

// # Resolution

/*
TestService_Resolve verifies that claims resolve to live records, and that
dangling account or profile references are rejected.
*/
func TestService_Resolve(t *testing.T) {
	service, accounts, profiles, _ := newTestService(t)
	account := seedAccount(t, accounts, "account-1", "mia@example.com", "mia", "rightpass")
	profiles.profiles["profile-1"] = &profile.Profile{
		ID: "profile-1", AccountID: account.ID, Name: "Mia",
	}

	t.Run("account_scope", func(t *testing.T) {
		identity, err := service.Resolve(context.Background(), &sec.SessionClaims{AccountID: "account-1"})
		require.NoError(t, err)

		assert.Equal(t, account.ID, identity.Account.ID)
		assert.False(t, identity.HasProfile())
	})

	t.Run("profile_scope", func(t *testing.T) {
		identity, err := service.Resolve(context.Background(), &sec.SessionClaims{
			AccountID: "account-1",
			ProfileID: "profile-1",
		})
		require.NoError(t, err)

		require.True(t, identity.HasProfile())
		assert.Equal(t, "profile-1", identity.Profile.ID)
	})

	t.Run("dangling_account", func(t *testing.T) {
		_, err := service.Resolve(context.Background(), &sec.SessionClaims{AccountID: "account-ghost"})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
		assert.Equal(t, "User not found", ae.Message)
	})

	t.Run("dangling_profile", func(t *testing.T) {
		_, err := service.Resolve(context.Background(), &sec.SessionClaims{
			AccountID: "account-1",
			ProfileID: "profile-ghost",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Profile not found", ae.Message)
	})
}
