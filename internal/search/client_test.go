// Copyright (c) 2026 Aurastream. All rights reserved.

package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastream/api/internal/search"
)

/*
TestClient_Search verifies the request shape sent upstream and that result
payloads are relayed verbatim.
*/
func TestClient_Search(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// 1. The historical query shape
		assert.Equal(t, "/search/movie", request.URL.Path)
		assert.Equal(t, "The Matrix", request.URL.Query().Get("query"))
		assert.Equal(t, "false", request.URL.Query().Get("include_adult"))
		assert.Equal(t, "en-US", request.URL.Query().Get("language"))
		assert.Equal(t, "1", request.URL.Query().Get("page"))
		assert.Equal(t, "Bearer test-api-key", request.Header.Get("Authorization"))

		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"page": 1, "results": [
			{"id": 603, "title": "The Matrix", "poster_path": "/matrix.jpg", "vote_average": 8.2, "genre_ids": [28, 878]}
		]}`))
	}))
	defer upstream.Close()

	client := search.NewClient(upstream.URL, "test-api-key")

	results, err := client.Search(context.Background(), search.CategoryMovie, "The Matrix")
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 2. History-relevant fields are lifted
	assert.Equal(t, int64(603), results[0].ID)
	assert.Equal(t, "The Matrix", results[0].DisplayTitle())
	assert.Equal(t, "/matrix.jpg", results[0].HistoryImage(search.CategoryMovie))

	// 3. The upstream payload survives re-serialization untouched
	serialized, err := json.Marshal(results[0])
	require.NoError(t, err)

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(serialized, &roundTrip))
	assert.Equal(t, 8.2, roundTrip["vote_average"])
	assert.Contains(t, roundTrip, "genre_ids")
}

/*
TestClient_Search_BadStatus verifies that non-200 upstream responses surface
as errors.
*/
func TestClient_Search_BadStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"status_message": "Invalid API key"}`))
	}))
	defer upstream.Close()

	client := search.NewClient(upstream.URL, "bad-key")

	_, err := client.Search(context.Background(), search.CategoryMovie, "The Matrix")
	assert.Error(t, err)
}
