// Copyright (c) 2026 Aurastream. All rights reserved.

package session_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/middleware"
	"github.com/aurastream/api/internal/platform/sec"
	"github.com/aurastream/api/internal/profile"
	"github.com/aurastream/api/internal/session"
)

// sessionTestEnv bundles the mounted auth router and its backing fakes.
type sessionTestEnv struct {
	router   chi.Router
	accounts *fakeAccountStore
	profiles *fakeProfileDirectory
	tokens   *sec.TokenService
}

// newSessionTestEnv mounts the session routes behind the same Authenticate /
// RequireAuth chain the server uses.
func newSessionTestEnv(t *testing.T) *sessionTestEnv {
	t.Helper()

	service, accounts, profiles, tokens := newTestService(t)
	handler := session.NewHandler(service, false)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/auth", handler.Routes(middleware.RequireAuth))

	return &sessionTestEnv{router: router, accounts: accounts, profiles: profiles, tokens: tokens}
}

// doJSON performs a JSON request against the test router.
func (env *sessionTestEnv) doJSON(t *testing.T, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)
	return recorder
}

// decodeBody unmarshals the recorded response body into a generic map.
func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// findSessionCookie extracts the session cookie from the response, or nil.
func findSessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// # Signup Endpoint

/*
TestHTTP_Signup verifies the happy path: 201, blanked password echo, and a
session cookie carrying an account-scoped token.
*/
func TestHTTP_Signup(t *testing.T) {
	env := newSessionTestEnv(t)

	recorder := env.doJSON(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":    "mia@example.com",
		"username": "mia",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusCreated, recorder.Code)

	// 1. Response shape
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "mia", user["username"])
	assert.Equal(t, "", user["password"])

	// 2. Session cookie with the login TTL class
	cookie := findSessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(constants.LoginTokenTTL.Seconds()), cookie.MaxAge)

	claims, err := env.tokens.VerifyToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.AccountID)
	assert.Equal(t, sec.ScopeAccount, claims.Scope())
}

/*
TestHTTP_Signup_Validation verifies the ordered single-message validation
behavior of the signup endpoint.
*/
func TestHTTP_Signup_Validation(t *testing.T) {
	env := newSessionTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{
			"missing_fields",
			map[string]string{"email": "", "username": "mia", "password": "supersecret"},
			"All fields are required",
		},
		{
			"invalid_email",
			map[string]string{"email": "not-an-email", "username": "mia", "password": "supersecret"},
			"Invalid email",
		},
		{
			"short_password",
			map[string]string{"email": "mia@example.com", "username": "mia", "password": "abc"},
			"Password must contain at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := env.doJSON(t, http.MethodPost, "/auth/signup", tt.payload, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			body := decodeBody(t, recorder)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

// # Login Endpoint

/*
TestHTTP_Login verifies both login shapes: auto-selected profile and the
create-a-profile prompt, plus the 404 on bad credentials.
*/
func TestHTTP_Login(t *testing.T) {
	env := newSessionTestEnv(t)
	account := seedAccount(t, env.accounts, "account-1", "mia@example.com", "mia", "rightpass")

	t.Run("without_profile", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "mia@example.com",
			"password": "rightpass",
		}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "No profile found, please create one.", body["message"])
		assert.NotContains(t, body, "profile")
		require.NotNil(t, findSessionCookie(recorder))
	})

	t.Run("with_profile", func(t *testing.T) {
		env.profiles.profiles["profile-1"] = &profile.Profile{
			ID: "profile-1", AccountID: account.ID, Name: "Mia", CreatedAt: time.Now(),
		}

		recorder := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "mia@example.com",
			"password": "rightpass",
		}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		selected := body["profile"].(map[string]any)
		assert.Equal(t, "profile-1", selected["id"])

		// Cookie token is profile-scoped now
		cookie := findSessionCookie(recorder)
		require.NotNil(t, cookie)
		claims, err := env.tokens.VerifyToken(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "profile-1", claims.ProfileID)
	})

	t.Run("bad_credentials", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "mia@example.com",
			"password": "wrongpass",
		}, nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid credentials", body["message"])
		assert.Nil(t, findSessionCookie(recorder))
	})
}

// # Logout Endpoint

/*
TestHTTP_Logout verifies that logout clears the cookie unconditionally.
*/
func TestHTTP_Logout(t *testing.T) {
	env := newSessionTestEnv(t)

	recorder := env.doJSON(t, http.MethodPost, "/auth/logout", nil, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Logged out successfully", body["message"])

	cookie := findSessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

// # Protected Endpoints

/*
TestHTTP_AuthCheck verifies introspection against a live session and the 401
variants of the middleware chain.
*/
func TestHTTP_AuthCheck(t *testing.T) {
	env := newSessionTestEnv(t)
	account := seedAccount(t, env.accounts, "account-1", "mia@example.com", "mia", "rightpass")

	t.Run("no_cookie", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodGet, "/auth/authCheck", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Unauthorized - No token provided", body["message"])
	})

	t.Run("invalid_token", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodGet, "/auth/authCheck", nil, &http.Cookie{
			Name:  constants.SessionCookieName,
			Value: "garbage-token",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Unauthorized - Invalid token", body["message"])
	})

	t.Run("expired_token", func(t *testing.T) {
		expired, err := env.tokens.IssueAccountToken(account.ID, -time.Hour)
		require.NoError(t, err)

		recorder := env.doJSON(t, http.MethodGet, "/auth/authCheck", nil, &http.Cookie{
			Name:  constants.SessionCookieName,
			Value: expired,
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Unauthorized - Token expired", body["message"])
	})

	t.Run("live_session", func(t *testing.T) {
		token, err := env.tokens.IssueAccountToken(account.ID, time.Hour)
		require.NoError(t, err)

		recorder := env.doJSON(t, http.MethodGet, "/auth/authCheck", nil, &http.Cookie{
			Name:  constants.SessionCookieName,
			Value: token,
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		user := body["user"].(map[string]any)
		assert.Equal(t, account.ID, user["id"])
	})

	t.Run("deleted_account", func(t *testing.T) {
		token, err := env.tokens.IssueAccountToken("account-ghost", time.Hour)
		require.NoError(t, err)

		recorder := env.doJSON(t, http.MethodGet, "/auth/authCheck", nil, &http.Cookie{
			Name:  constants.SessionCookieName,
			Value: token,
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "User not found", body["message"])
	})
}

/*
TestHTTP_SwitchProfile verifies session re-scoping and the untouched-cookie
guarantee on failure.
*/
func TestHTTP_SwitchProfile(t *testing.T) {
	env := newSessionTestEnv(t)
	account := seedAccount(t, env.accounts, "account-1", "mia@example.com", "mia", "rightpass")
	env.profiles.profiles["profile-1"] = &profile.Profile{
		ID: "profile-1", AccountID: account.ID, Name: "Mia", CreatedAt: time.Now(),
	}
	env.profiles.profiles["profile-2"] = &profile.Profile{
		ID: "profile-2", AccountID: account.ID, Name: "Kids", CreatedAt: time.Now(),
	}

	token, err := env.tokens.IssueProfileToken(account.ID, "profile-1", time.Hour)
	require.NoError(t, err)
	sessionCookie := &http.Cookie{Name: constants.SessionCookieName, Value: token}

	t.Run("owned_profile", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodPost, "/auth/switch-profile", map[string]string{
			"profileId": "profile-2",
		}, sessionCookie)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Profile switched successfully", body["message"])

		// New cookie carries the switch TTL class and the new profile
		cookie := findSessionCookie(recorder)
		require.NotNil(t, cookie)
		assert.Equal(t, int(constants.ProfileSelectTokenTTL.Seconds()), cookie.MaxAge)

		claims, err := env.tokens.VerifyToken(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "profile-2", claims.ProfileID)
	})

	t.Run("foreign_or_absent_profile", func(t *testing.T) {
		recorder := env.doJSON(t, http.MethodPost, "/auth/switch-profile", map[string]string{
			"profileId": "profile-ghost",
		}, sessionCookie)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Profile not found for this user", body["message"])

		// Failed switches never touch the cookie
		assert.Nil(t, findSessionCookie(recorder))
	})
}
