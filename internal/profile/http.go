// Copyright (c) 2026 Aurastream. All rights reserved.

package profile

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	requestutil "github.com/aurastream/api/internal/platform/request"
	"github.com/aurastream/api/internal/platform/respond"
	"github.com/aurastream/api/internal/platform/sec"
)

// TokenIssuer mints profile-scoped session tokens.
//
// Declared here (rather than importing the session package) because profile
// creation upgrades the caller's cookie to the new profile in the same
// user-facing action.
type TokenIssuer interface {
	// IssueProfileToken creates a signed profile-scoped session token.
	IssueProfileToken(accountID, profileID string, timeToLive time.Duration) (string, error)
}

// Handler implements the HTTP layer for the profile registry.
type Handler struct {
	profileService *Service
	tokens         TokenIssuer
	secureCookies  bool
}

// NewHandler constructs a new profile [Handler].
func NewHandler(service *Service, tokens TokenIssuer, secureCookies bool) *Handler {
	return &Handler{
		profileService: service,
		tokens:         tokens,
		secureCookies:  secureCookies,
	}
}

// Routes returns a [chi.Router] configured with the profile domain's endpoints.
//
// All routes assume the RequireAuth middleware ran upstream.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Profile Lifecycle
	router.Post("/", handler.createProfile)
	router.Get("/single/{profileId}", handler.getProfileByID)
	router.Get("/{userId}", handler.getAccountProfiles)
	router.Put("/{profileId}", handler.updateProfile)
	router.Delete("/{profileId}", handler.deleteProfile)

	return router
}

// # Profile Lifecycle Endpoints

// createProfileRequest defines the expected JSON payload for profile creation.
type createProfileRequest struct {
	Name  string `json:"profileName"`
	Image string `json:"profileImage"`
}

/*
POST /api/v1/profile.

Description: Creates a new viewer profile under the authenticated account and
upgrades the session cookie to the new profile, so creation doubles as
selection. Creation and cookie upgrade are a single user-facing action: if the
token cannot be minted the created profile is still reported, cookie unchanged.

Request:
  - body: createProfileRequest

Response:
  - 201: {success, message, profile}: Created profile, cookie replaced
  - 400: Validation: Missing profileName, or the 5-profile cap
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The historical API reports a missing name with this exact message.
	if input.Name == "" {
		respond.Error(writer, request, apperr.ValidationError("Invalid credentials"))
		return
	}

	created, err := handler.profileService.Create(request.Context(), CreateInput{
		AccountID: accountID,
		Name:      input.Name,
		Image:     input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Upgrade the cookie to the freshly created profile.
	token, err := handler.tokens.IssueProfileToken(accountID, created.ID, constants.ProfileSelectTokenTTL)
	if err == nil {
		http.SetCookie(writer, sec.SessionCookie(token, constants.ProfileSelectTokenTTL, handler.secureCookies))
	}

	respond.Created(writer, map[string]any{
		"success": true,
		"message": "Profile created successfully",
		"profile": created,
	})
}

/*
GET /api/v1/profile/single/{profileId}.

Description: Retrieves a single profile owned by the authenticated account.

Response:
  - 200: {success, profile}
  - 403: ErrForbidden: Profile belongs to another account
  - 404: ErrNotFound: Profile does not exist
*/
func (handler *Handler) getProfileByID(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.GetByID(request.Context(), claims, requestutil.Param(request, "profileId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"profile": profile,
	})
}

/*
GET /api/v1/profile/{userId}.

Description: Lists every profile of the given account. The path account must
match the authenticated account.

Response:
  - 200: {success, profiles}
  - 403: ErrForbidden: Asked for another account's profiles
*/
func (handler *Handler) getAccountProfiles(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profiles, err := handler.profileService.List(request.Context(), claims, requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success":  true,
		"profiles": profiles,
	})
}

// updateProfileRequest defines the partial-update payload.
type updateProfileRequest struct {
	Name  *string `json:"profileName"`
	Image *string `json:"profileImage"`
}

/*
PUT /api/v1/profile/{profileId}.

Description: Partially updates an owned profile. Only supplied fields change;
updatedAt is refreshed either way.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: {success, message, profiles}: The updated profile
  - 403: ErrForbidden: Profile belongs to another account
  - 404: ErrNotFound: Profile does not exist
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.profileService.Update(request.Context(), claims, requestutil.Param(request, "profileId"), UpdateInput{
		Name:  input.Name,
		Image: input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// "profiles" (plural) is the historical key for this endpoint's payload.
	respond.OK(writer, map[string]any{
		"success":  true,
		"message":  "Profile updated successfully",
		"profiles": updated,
	})
}

/*
DELETE /api/v1/profile/{profileId}.

Description: Deletes an owned profile. Checkpoints and search history of the
profile are removed by the schema's cascading foreign keys.

Response:
  - 200: {success, message}
  - 403: ErrForbidden: Profile belongs to another account
  - 404: ErrNotFound: Profile does not exist
*/
func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.profileService.Delete(request.Context(), claims, requestutil.Param(request, "profileId")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Profile deleted successfully",
	})
}
