// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBodySize bounds how much of a failed response is kept for the error.
const maxErrorBodySize = 4 * 1024

// ErrRateLimited is returned when TMDB keeps answering 429.
var ErrRateLimited = errors.New("tmdb: rate limit exceeded")

// TMDBClient calls the TMDB v3 search API.
type TMDBClient struct {
	baseURL        string
	apiKey         string
	language       string
	client         *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
}

// TMDBConfig configures a TMDBClient.
type TMDBConfig struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// NewTMDBClient creates a client. A zero Timeout defaults to 10 seconds.
func NewTMDBClient(cfg TMDBConfig) *TMDBClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	return &TMDBClient{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		language:       language,
		client:         &http.Client{Timeout: timeout},
		maxRetries:     2,
		retryBaseDelay: 500 * time.Millisecond,
	}
}

type searchResponse struct {
	Results []struct {
		PosterPath  *string `json:"poster_path"`
		Overview    string  `json:"overview"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

// SearchMovie queries /search/movie and returns the first result.
func (c *TMDBClient) SearchMovie(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("language", c.language)
	reqURL := c.baseURL + "/search/movie?" + params.Encode()

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb: search returned status %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tmdb: failed to decode search response: %w", err)
	}

	if len(payload.Results) == 0 {
		return &SearchResult{Found: false}, nil
	}
	first := payload.Results[0]
	return &SearchResult{
		Found:       true,
		PosterPath:  first.PosterPath,
		Overview:    first.Overview,
		ReleaseDate: first.ReleaseDate,
		VoteAverage: first.VoteAverage,
	}, nil
}

// doRequest retries HTTP 429 with exponential backoff, honoring Retry-After
// when it is given in seconds.
func (c *TMDBClient) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("tmdb: failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("tmdb: request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d retries", ErrRateLimited, c.maxRetries)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			delay = time.Duration(secs) * time.Second
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}
