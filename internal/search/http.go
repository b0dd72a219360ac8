// Copyright (c) 2026 Aurastream. All rights reserved.

package search

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aurastream/api/internal/platform/apperr"
	requestutil "github.com/aurastream/api/internal/platform/request"
	"github.com/aurastream/api/internal/platform/respond"
	"github.com/aurastream/api/internal/platform/validate"
	"github.com/aurastream/api/internal/session"
)

// Handler implements the HTTP layer for catalog search.
//
// All routes assume the platform Authenticate middleware and the session
// RequireIdentity middleware ran upstream. The searching profile arrives as
// a profileId query parameter on every route — the historical contract,
// independent of the profile baked into the session token.
type Handler struct {
	searchService *Service
}

// NewHandler constructs a new search [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{searchService: service}
}

// Routes returns a [chi.Router] configured with the search domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Catalog Queries
	router.Get("/person/{query}", handler.searchCategory(CategoryPerson))
	router.Get("/movie/{query}", handler.searchCategory(CategoryMovie))
	router.Get("/tv/{query}", handler.searchCategory(CategoryTV))

	// History
	router.Get("/history", handler.getHistory)
	router.Delete("/history/{id}", handler.removeHistoryItem)

	return router
}

// # Catalog Query Endpoints

/*
GET /api/v1/search/{category}/{query}?profileId=...

Description: Proxies a catalog search and appends the first hit to the
profile's search history. The three category routes share this handler.

Response:
  - 200: {success, content}: The upstream result page
  - 400: Validation: Missing profileId query parameter
  - 404: null body — no results (historical contract: bare null, no envelope)
  - 502: ErrUpstream: Catalog API failure
*/
func (handler *Handler) searchCategory(category string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		identity, err := session.RequiredIdentity(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		profileID := requestutil.Query(request, "profileId")
		if profileID == "" {
			respond.Error(writer, request, apperr.ValidationError("profileId is required"))
			return
		}

		results, err := handler.searchService.Search(
			request.Context(),
			identity.Account.ID,
			profileID,
			category,
			requestutil.Param(request, "query"),
		)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if len(results) == 0 {
			respond.JSON(writer, http.StatusNotFound, nil)
			return
		}

		respond.OK(writer, map[string]any{
			"success": true,
			"content": results,
		})
	}
}

// # History Endpoints

/*
GET /api/v1/search/history?profileId=...

Description: Returns the account's search history for one profile, in the
order it was appended.

Response:
  - 200: {success, content}
  - 400: Validation: Missing profileId query parameter
*/
func (handler *Handler) getHistory(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profileID := requestutil.Query(request, "profileId")
	if profileID == "" {
		respond.Error(writer, request, apperr.ValidationError("profileId is required"))
		return
	}

	entries, err := handler.searchService.History(request.Context(), identity.Account.ID, profileID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"content": entries,
	})
}

/*
DELETE /api/v1/search/history/{id}?profileId=...

Description: Removes every history entry matching the media ID for the given
profile.

Response:
  - 200: {success, message}
  - 400: Validation: Missing profileId or non-numeric id
  - 404: ErrNotFound: "Item not found in search history"
*/
func (handler *Handler) removeHistoryItem(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profileID := requestutil.Query(request, "profileId")
	if profileID == "" {
		respond.Error(writer, request, apperr.ValidationError("profileId is required"))
		return
	}

	mediaID, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("id", "Must be a number"))
		return
	}

	if err := handler.searchService.RemoveHistoryItem(request.Context(), identity.Account.ID, profileID, mediaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"success": true,
		"message": "Item removed from search history",
	})
}
