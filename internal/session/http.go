// Copyright (c) 2026 Aurastream. All rights reserved.

package session

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/ctxutil"
	requestutil "github.com/aurastream/api/internal/platform/request"
	"github.com/aurastream/api/internal/platform/respond"
	"github.com/aurastream/api/internal/platform/sec"
	"github.com/aurastream/api/internal/platform/validate"
)

// emailRegex mirrors the historical client-facing email check; stricter RFC
// parsing would reject addresses the API has always accepted.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Handler implements the HTTP layer for session management.
type Handler struct {
	sessionService *Service
	secureCookies  bool
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{
		sessionService: service,
		secureCookies:  secureCookies,
	}
}

// Routes returns a [chi.Router] configured with the session domain's endpoints.
func (handler *Handler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Session Establishment
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Session Introspection & Switching (live identity required)
	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)
		protected.Use(RequireIdentity(handler.sessionService))
		protected.Get("/authCheck", handler.authCheck)
		protected.Post("/switch-profile", handler.switchProfile)
	})

	return router
}

// # Session Establishment Endpoints

// signupRequest defines the expected JSON payload for enrollment.
type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/signup.

Description: Enrolls a new account, draws a random default avatar, and
immediately establishes an account-scoped session (15-day cookie).

Request:
  - body: signupRequest

Response:
  - 201: {success, user}: Created account (password echoed blank)
  - 400: Validation: Missing fields, bad email, short password, duplicates
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The historical validation reports one message at a time, in this order.
	presence := &validate.Validator{}
	presence.
		Required(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)
	if presence.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError("All fields are required"))
		return
	}
	if !emailRegex.MatchString(input.Email) {
		respond.Error(writer, request, apperr.ValidationError("Invalid email"))
		return
	}
	strength := &validate.Validator{}
	strength.MinLen(FieldPassword, input.Password, constants.MinPasswordLength)
	if strength.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError("Password must contain at least 6 characters"))
		return
	}

	established, err := handler.sessionService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.SessionCookie(established.Token, established.TokenTTL, handler.secureCookies))

	respond.Created(writer, map[string]any{
		"success": true,
		"user":    established.Account,
	})
}

// loginRequest defines the expected JSON payload for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Description: Authenticates an account. When the account owns profiles the
oldest one is auto-selected and the cookie is profile-scoped; otherwise the
cookie is account-scoped and the response asks the client to create a profile.

Request:
  - body: loginRequest

Response:
  - 200: {success, user, profile} or {success, user, message}
  - 400: Validation: Missing fields
  - 404: ErrNotFound: Invalid credentials (observed status, not 401)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	presence := &validate.Validator{}
	presence.
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if presence.HasErrors() {
		respond.Error(writer, request, apperr.ValidationError("All fields are required"))
		return
	}

	established, err := handler.sessionService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.SessionCookie(established.Token, established.TokenTTL, handler.secureCookies))

	if established.Profile != nil {
		respond.OK(writer, map[string]any{
			"success": true,
			"user":    established.Account,
			"profile": established.Profile,
		})
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"user":    established.Account,
		"message": "No profile found, please create one.",
	})
}

/*
POST /api/v1/auth/logout.

Description: Clears the session cookie. Unconditional: succeeds with or
without a valid session, so logout is always safe to call.

Response:
  - 200: {success, message}
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, sec.ExpiredSessionCookie(handler.secureCookies))

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

// # Session Introspection Endpoints

/*
GET /api/v1/auth/authCheck.

Description: Returns the live account behind the session. The account (and
profile, for profile-scoped sessions) was reloaded from storage by the
RequireIdentity middleware, so a stale token for a deleted account never
passes.

Response:
  - 200: {success, user}
  - 401: ErrUnauthorized: Missing/expired/invalid token
  - 404: ErrNotFound: Dangling account or profile reference
*/
func (handler *Handler) authCheck(writer http.ResponseWriter, request *http.Request) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"user":    identity.Account,
	})
}

// switchProfileRequest defines the payload for re-scoping the session.
type switchProfileRequest struct {
	ProfileID string `json:"profileId"`
}

/*
POST /api/v1/auth/switch-profile.

Description: Re-scopes the session cookie to another profile owned by the
authenticated account (10-day cookie). On any failure the existing cookie is
left untouched.

Request:
  - body: switchProfileRequest

Response:
  - 200: {success, message}
  - 404: ErrNotFound: Profile absent or owned by another account
*/
func (handler *Handler) switchProfile(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		respond.Error(writer, request, apperr.Unauthorized("Unauthorized - No token provided"))
		return
	}

	var input switchProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	established, err := handler.sessionService.SwitchProfile(request.Context(), claims, input.ProfileID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, sec.SessionCookie(established.Token, established.TokenTTL, handler.secureCookies))

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Profile switched successfully",
	})
}
