// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreakerSearcher_OpensAfterFailures(t *testing.T) {
	s := newFakeSearcher()
	s.setErr(errors.New("tmdb down"))

	b := NewBreakerSearcher(s, BreakerConfig{Name: "test-open", MinRequests: 3, FailureRatio: 0.5, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := b.SearchMovie(context.Background(), "Heat"); err == nil {
			t.Fatalf("call %d: error = nil, want failure", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.SearchMovie(context.Background(), "Heat")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if calls := s.callCount("Heat"); calls != 3 {
		t.Errorf("calls = %d, want 3 (open circuit must not reach the searcher)", calls)
	}
}

func TestBreakerSearcher_PassesThrough(t *testing.T) {
	s := newFakeSearcher()
	s.results["Heat"] = &SearchResult{Found: true, Overview: "x"}
	b := NewBreakerSearcher(s, DefaultBreakerConfig())

	got, err := b.SearchMovie(context.Background(), "Heat")
	if err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}
	if !got.Found || got.Overview != "x" {
		t.Errorf("SearchMovie() = %+v", got)
	}
}

func TestBreakerSearcher_OpenCircuitYieldsErrorPlaceholder(t *testing.T) {
	s := newFakeSearcher()
	s.setErr(errors.New("tmdb down"))
	b := NewBreakerSearcher(s, BreakerConfig{Name: "test-cache", MinRequests: 1, FailureRatio: 0.1, Timeout: time.Minute})
	c := newTestCache(b, &countingWaiter{}, &fakeClock{now: time.Now()})

	c.Lookup(context.Background(), "Heat (1995)")
	got := c.Lookup(context.Background(), "Heat (1995)")
	if !got.IsError() {
		t.Errorf("Lookup() = %+v, want error placeholder while open", got)
	}
	if calls := s.callCount("Heat"); calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
