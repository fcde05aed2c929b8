// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestTMDB(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewTMDBClient(TMDBConfig{BaseURL: srv.URL, APIKey: "k", Timeout: 2 * time.Second})
	c.retryBaseDelay = time.Millisecond
	return c
}

func TestTMDBClient_SearchMovie(t *testing.T) {
	t.Parallel()

	c := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q, want /search/movie", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Toy Story" || q.Get("api_key") != "k" || q.Get("language") != "en-US" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"poster_path":"/toy.jpg","overview":"Toys.","release_date":"1995-10-30","vote_average":7.9},
			{"poster_path":"/other.jpg","overview":"Second."}]}`))
	})

	got, err := c.SearchMovie(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}
	if !got.Found {
		t.Fatal("Found = false, want true")
	}
	if got.PosterPath == nil || *got.PosterPath != "/toy.jpg" {
		t.Errorf("PosterPath = %v, want /toy.jpg", got.PosterPath)
	}
	if got.Overview != "Toys." || got.ReleaseDate != "1995-10-30" || got.VoteAverage != 7.9 {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestTMDBClient_SearchMovie_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		wantFound bool
	}{
		{"no results", http.StatusOK, `{"results":[]}`, false, false},
		{"null poster", http.StatusOK, `{"results":[{"poster_path":null,"overview":"x"}]}`, false, true},
		{"unauthorized", http.StatusUnauthorized, `{"status_message":"Invalid API key"}`, true, false},
		{"server error", http.StatusInternalServerError, "boom", true, false},
		{"malformed json", http.StatusOK, `{"results":[`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.SearchMovie(context.Background(), "Heat")
			if (err != nil) != tt.wantErr {
				t.Fatalf("SearchMovie() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", got.Found, tt.wantFound)
			}
		})
	}
}

func TestTMDBClient_RetriesRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	if _, err := c.SearchMovie(context.Background(), "Heat"); err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestTMDBClient_RateLimitExhausted(t *testing.T) {
	t.Parallel()

	c := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.SearchMovie(context.Background(), "Heat")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("SearchMovie() error = %v, want ErrRateLimited", err)
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Toy Story (1995)", "Toy Story"},
		{"City of Lost Children, The (Cité des enfants perdus, La) (1995)", "City of Lost Children, The"},
		{"Heat", "Heat"},
		{"  Padded  ", "Padded"},
		{"(500) Days of Summer (2009)", "(500) Days of Summer (2009)"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
