// Copyright (c) 2026 Aurastream. All rights reserved.

package search_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastream/api/internal/profile"
	"github.com/aurastream/api/internal/search"
	"github.com/aurastream/api/internal/session"
)

// newSearchRouter mounts the search routes behind an injected identity.
func newSearchRouter(catalog *fakeCatalog, history *fakeHistoryStore) chi.Router {
	service := search.NewService(catalog, newFakeCache(), history)
	handler := search.NewHandler(service)

	identity := &session.Identity{
		Account: &session.Account{ID: "account-1", Username: "mia"},
		Profile: &profile.Profile{ID: "profile-1", AccountID: "account-1", Name: "Mia"},
	}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := session.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	})
	router.Mount("/search", handler.Routes())
	return router
}

// doRequest performs a request against the router.
func doRequest(router chi.Router, method, target string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// # Catalog Query Endpoints

/*
TestHTTP_Search verifies the success envelope, the bare-null 404 on empty
results, and the profileId requirement.
*/
func TestHTTP_Search(t *testing.T) {
	t.Run("results", func(t *testing.T) {
		catalog := &fakeCatalog{results: parseResults(t, `[{"id": 603, "title": "The Matrix"}]`)}
		router := newSearchRouter(catalog, &fakeHistoryStore{})

		recorder := doRequest(router, http.MethodGet, "/search/movie/The%20Matrix?profileId=profile-1")

		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["content"].([]any), 1)
	})

	t.Run("empty_results", func(t *testing.T) {
		catalog := &fakeCatalog{results: []search.Result{}}
		router := newSearchRouter(catalog, &fakeHistoryStore{})

		recorder := doRequest(router, http.MethodGet, "/search/movie/zzzz?profileId=profile-1")

		// Historical contract: 404 with a bare null body, no envelope
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, "null", recorder.Body.String())
	})

	t.Run("missing_profile_id", func(t *testing.T) {
		catalog := &fakeCatalog{results: parseResults(t, `[{"id": 603, "title": "The Matrix"}]`)}
		router := newSearchRouter(catalog, &fakeHistoryStore{})

		recorder := doRequest(router, http.MethodGet, "/search/movie/The%20Matrix")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "profileId is required", body["message"])
	})

	t.Run("upstream_failure", func(t *testing.T) {
		catalog := &fakeCatalog{err: assert.AnError}
		router := newSearchRouter(catalog, &fakeHistoryStore{})

		recorder := doRequest(router, http.MethodGet, "/search/tv/anything?profileId=profile-1")

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Failed to fetch search results", body["message"])
	})
}

// # History Endpoints

/*
TestHTTP_History verifies history listing, the wire format of an entry, and
deletion by media ID.
*/
func TestHTTP_History(t *testing.T) {
	history := &fakeHistoryStore{entries: []*search.HistoryEntry{{
		RowID:      "row-1",
		AccountID:  "account-1",
		ProfileID:  "profile-1",
		MediaID:    603,
		Title:      "The Matrix",
		Image:      "/matrix.jpg",
		SearchType: "movie",
		CreatedAt:  time.Now(),
	}}}
	router := newSearchRouter(&fakeCatalog{}, history)

	t.Run("list", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/search/history?profileId=profile-1")

		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

		content := body["content"].([]any)
		require.Len(t, content, 1)

		// The "id" key carries the catalog media ID, not the row key
		entry := content[0].(map[string]any)
		assert.Equal(t, float64(603), entry["id"])
		assert.Equal(t, "The Matrix", entry["title"])
		assert.NotContains(t, entry, "RowID")
	})

	t.Run("delete", func(t *testing.T) {
		recorder := doRequest(router, http.MethodDelete, "/search/history/603?profileId=profile-1")

		require.Equal(t, http.StatusOK, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Item removed from search history", body["message"])
	})

	t.Run("delete_missing", func(t *testing.T) {
		recorder := doRequest(router, http.MethodDelete, "/search/history/603?profileId=profile-1")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Item not found in search history", body["message"])
	})

	t.Run("non_numeric_id", func(t *testing.T) {
		recorder := doRequest(router, http.MethodDelete, "/search/history/abc?profileId=profile-1")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Validation failed", body["message"])

		details := body["details"].([]any)
		require.Len(t, details, 1)
		assert.Equal(t, "id", details[0].(map[string]any)["field"])
	})
}
