// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// fakeSearcher returns canned responses and counts calls per query.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   map[string]int
	results map[string]*SearchResult
	err     error
	block   chan struct{}
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{calls: make(map[string]int), results: make(map[string]*SearchResult)}
}

func (f *fakeSearcher) SearchMovie(_ context.Context, query string) (*SearchResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[query]++
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return &SearchResult{Found: false}, nil
}

func (f *fakeSearcher) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSearcher) callCount(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[query]
}

// countingWaiter records how many times the rate limiter was consulted.
type countingWaiter struct {
	n   atomic.Int32
	err error
}

func (w *countingWaiter) Wait(context.Context) error {
	w.n.Add(1)
	return w.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func strPtr(s string) *string { return &s }

func newTestCache(s Searcher, w Waiter, clock *fakeClock) *Cache {
	cfg := CacheConfig{TTL: time.Hour, ImageBaseURL: "https://img.test/w500"}
	return NewCache(s, cfg, logging.NewTestLogger(io.Discard), WithWaiter(w), WithClock(clock.Now))
}

func TestCache_Lookup_FoundIsCached(t *testing.T) {
	s := newFakeSearcher()
	s.results["Toy Story"] = &SearchResult{
		Found: true, PosterPath: strPtr("/toy.jpg"), Overview: "Toys.", ReleaseDate: "1995-10-30", VoteAverage: 7.9,
	}
	w := &countingWaiter{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(s, w, clock)

	first := c.Lookup(context.Background(), "Toy Story (1995)")
	want := models.MetadataResult{
		PosterURL: "https://img.test/w500/toy.jpg", Overview: "Toys.", ReleaseDate: "1995-10-30", VoteAverage: 7.9,
	}
	if first != want {
		t.Errorf("Lookup() = %+v, want %+v", first, want)
	}

	second := c.Lookup(context.Background(), "Toy Story (1995)")
	if second != first {
		t.Errorf("second Lookup() = %+v, want %+v", second, first)
	}
	if got := s.callCount("Toy Story"); got != 1 {
		t.Errorf("external calls = %d, want 1", got)
	}
	if got := w.n.Load(); got != 1 {
		t.Errorf("rate limiter waits = %d, want 1 (hits must not wait)", got)
	}
}

func TestCache_Lookup_CountsEachLookupOnce(t *testing.T) {
	tests := []struct {
		name       string
		titles     []string
		wantHits   int64
		wantMisses int64
		wantRate   float64
	}{
		{"single miss", []string{"Heat (1995)"}, 0, 1, 0},
		{"miss then hit", []string{"Heat (1995)", "Heat (1995)"}, 1, 1, 50},
		{"two titles", []string{"Heat (1995)", "Casino (1995)", "Heat (1995)", "Casino (1995)"}, 2, 2, 50},
		{"repeated hits", []string{"Heat (1995)", "Heat (1995)", "Heat (1995)", "Heat (1995)"}, 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(newFakeSearcher(), &countingWaiter{}, &fakeClock{now: time.Now()})
			for _, title := range tt.titles {
				c.Lookup(context.Background(), title)
			}
			st := c.Stats()
			if st.Hits != tt.wantHits || st.Misses != tt.wantMisses {
				t.Errorf("Stats() = %+v, want hits=%d misses=%d", st, tt.wantHits, tt.wantMisses)
			}
			if got := c.HitRate(); got != tt.wantRate {
				t.Errorf("HitRate() = %v, want %v", got, tt.wantRate)
			}
		})
	}
}

func TestCache_Lookup_ExpiresAfterTTL(t *testing.T) {
	s := newFakeSearcher()
	w := &countingWaiter{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(s, w, clock)

	c.Lookup(context.Background(), "Heat (1995)")
	clock.Advance(59 * time.Minute)
	c.Lookup(context.Background(), "Heat (1995)")
	if got := s.callCount("Heat"); got != 1 {
		t.Fatalf("calls before expiry = %d, want 1", got)
	}

	clock.Advance(2 * time.Minute)
	c.Lookup(context.Background(), "Heat (1995)")
	if got := s.callCount("Heat"); got != 2 {
		t.Errorf("calls after expiry = %d, want 2", got)
	}
}

func TestCache_Lookup_NoResultsCachesPlaceholder(t *testing.T) {
	s := newFakeSearcher()
	clock := &fakeClock{now: time.Now()}
	c := newTestCache(s, &countingWaiter{}, clock)

	got := c.Lookup(context.Background(), "Unknown Film (2001)")
	if got != models.NoDataMetadata() {
		t.Errorf("Lookup() = %+v, want no-data placeholder", got)
	}
	c.Lookup(context.Background(), "Unknown Film (2001)")
	if calls := s.callCount("Unknown Film"); calls != 1 {
		t.Errorf("calls = %d, want 1 (no-data result is cached)", calls)
	}
}

func TestCache_Lookup_MissingPosterUsesPlaceholder(t *testing.T) {
	s := newFakeSearcher()
	s.results["Heat"] = &SearchResult{Found: true, Overview: "Cops and robbers."}
	c := newTestCache(s, &countingWaiter{}, &fakeClock{now: time.Now()})

	got := c.Lookup(context.Background(), "Heat (1995)")
	if got.PosterURL != models.PosterPlaceholder {
		t.Errorf("PosterURL = %q, want placeholder", got.PosterURL)
	}
	if got.Overview != "Cops and robbers." {
		t.Errorf("Overview = %q", got.Overview)
	}
}

func TestCache_Lookup_FailureIsNotCached(t *testing.T) {
	s := newFakeSearcher()
	s.setErr(errors.New("connection refused"))
	s.results["Heat"] = &SearchResult{Found: true, PosterPath: strPtr("/heat.jpg")}
	c := newTestCache(s, &countingWaiter{}, &fakeClock{now: time.Now()})

	got := c.Lookup(context.Background(), "Heat (1995)")
	if !got.IsError() {
		t.Fatalf("Lookup() = %+v, want error placeholder", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failure", c.Len())
	}

	s.setErr(nil)
	got = c.Lookup(context.Background(), "Heat (1995)")
	if got.PosterURL != "https://img.test/w500/heat.jpg" {
		t.Errorf("Lookup() after recovery = %+v, want real poster", got)
	}
	if calls := s.callCount("Heat"); calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCache_Lookup_WaitFailure(t *testing.T) {
	s := newFakeSearcher()
	w := &countingWaiter{err: context.DeadlineExceeded}
	c := newTestCache(s, w, &fakeClock{now: time.Now()})

	got := c.Lookup(context.Background(), "Heat (1995)")
	if !got.IsError() {
		t.Errorf("Lookup() = %+v, want error placeholder", got)
	}
	if calls := s.callCount("Heat"); calls != 0 {
		t.Errorf("calls = %d, want 0 when the wait fails", calls)
	}
}

func TestCache_Lookup_ConcurrentMissesShareOneCall(t *testing.T) {
	s := newFakeSearcher()
	s.block = make(chan struct{})
	c := newTestCache(s, &countingWaiter{}, &fakeClock{now: time.Now()})

	const n = 8
	var wg sync.WaitGroup
	results := make([]models.MetadataResult, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Lookup(context.Background(), "Heat (1995)")
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(s.block)
	wg.Wait()

	if calls := s.callCount("Heat"); calls > 2 {
		t.Errorf("calls = %d, want concurrent misses collapsed", calls)
	}
	for i, r := range results {
		if r != models.NoDataMetadata() {
			t.Errorf("results[%d] = %+v, want no-data placeholder", i, r)
		}
	}
}
