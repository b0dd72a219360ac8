// Copyright (c) 2026 Aurastream. All rights reserved.

/*
Package search implements the catalog search proxy and per-profile search
history.

Queries are forwarded to the TMDB catalog API and the raw result payloads are
relayed to clients untouched. Results are cached in two tiers (in-process,
then Redis) and concurrent identical queries are collapsed, so a trending
title does not fan out into redundant upstream calls. On every hit the first
result is appended to the account's search history, tagged with the profile
that searched.
*/
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// # Search Categories

// Supported catalog search categories.
const (
	CategoryMovie  = "movie"
	CategoryTV     = "tv"
	CategoryPerson = "person"
)

// # Result Payload

// Result is one entry of a TMDB search response.
//
// The full upstream payload is preserved verbatim (clients consume TMDB's
// schema directly); only the handful of fields the history log needs are
// parsed out.
type Result struct {
	ID          int64
	Title       string
	Name        string
	PosterPath  string
	ProfilePath string

	raw json.RawMessage
}

// UnmarshalJSON keeps the raw payload and lifts the history-relevant fields.
func (r *Result) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Name        string `json:"name"`
		PosterPath  string `json:"poster_path"`
		ProfilePath string `json:"profile_path"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.ID = fields.ID
	r.Title = fields.Title
	r.Name = fields.Name
	r.PosterPath = fields.PosterPath
	r.ProfilePath = fields.ProfilePath
	r.raw = append(r.raw[:0], data...)
	return nil
}

// MarshalJSON emits the untouched upstream payload.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// DisplayTitle returns the human title: movies carry "title", TV shows and
// people carry "name".
func (r *Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// HistoryImage returns the image recorded in search history for the given
// category. Movies log the poster; people and TV shows log the profile image
// (the TV case is historical behavior the frontend compensates for).
func (r *Result) HistoryImage(category string) string {
	if category == CategoryMovie {
		return r.PosterPath
	}
	return r.ProfilePath
}

// # Upstream Client

// Client is a thin HTTP client for the TMDB search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient constructs a TMDB [Client] with a bounded request timeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

/*
Search queries the TMDB search endpoint for the given category.

Description: Always requests the first page, adult content excluded, en-US
localization — the historical query shape.

Parameters:
  - context: context.Context
  - category: string (movie, tv, or person)
  - query: string (free-text user query)

Returns:
  - []Result: The upstream result page (possibly empty)
  - error: Transport, status, or decoding failures
*/
func (client *Client) Search(context context.Context, category, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search/%s?query=%s&include_adult=false&language=en-US&page=1",
		client.baseURL, category, url.QueryEscape(query))

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("search_client_request_failed: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("search_client_fetch_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		// Drain a bounded chunk so the body shows up in logs without risk.
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, fmt.Errorf("search_client_bad_status: %d %s", response.StatusCode, string(body))
	}

	var payload struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search_client_decode_failed: %w", err)
	}

	return payload.Results, nil
}
