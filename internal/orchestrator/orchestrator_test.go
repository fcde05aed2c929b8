// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package orchestrator

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

type call struct {
	id, n, offset int
}

type fakePredictor struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakePredictor) PredictTopN(_ context.Context, userID, n, offset int) ([]models.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{userID, n, offset})
	f.mu.Unlock()

	out := make([]models.Result, n)
	for i := range out {
		out[i] = models.Result{Kind: models.KindPrediction, MovieID: offset + i + 1}
	}
	return out, nil
}

type fakeSimilar struct {
	calls []call
}

func (f *fakeSimilar) SimilarTopN(_ context.Context, movieID, n, offset int) ([]models.Result, error) {
	f.calls = append(f.calls, call{movieID, n, offset})
	if movieID == 404 {
		return nil, recommend.ErrNotFound
	}
	return make([]models.Result, n), nil
}

type fakeHistory struct {
	records   map[int][]models.HistoryRecord
	stats     models.HistoryStats
	err       error
	appends   []models.HistoryRecord
	snapshots int
}

func (f *fakeHistory) Append(_ context.Context, userID, movieID int, rating *float64) (models.HistoryRecord, error) {
	if f.err != nil {
		return models.HistoryRecord{}, f.err
	}
	rec := models.HistoryRecord{UserID: userID, MovieID: movieID, Rating: rating, Source: models.SourceLive}
	f.appends = append(f.appends, rec)
	return rec, nil
}

func (f *fakeHistory) Snapshot(userID, limit int) ([]models.HistoryRecord, models.HistoryStats) {
	f.snapshots++
	recs := f.records[userID]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, f.stats
}

func (f *fakeHistory) Users() []int {
	users := make([]int, 0, len(f.records))
	for u := range f.records {
		users = append(users, u)
	}
	return users
}

type fakeLookup struct{}

func (fakeLookup) Lookup(_ context.Context, title string) models.MetadataResult {
	return models.MetadataResult{Overview: "about " + title}
}

type fixture struct {
	o       *Orchestrator
	pred    *fakePredictor
	sim     *fakeSimilar
	history *fakeHistory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := dataset.NewCatalog([]models.Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: "Adventure|Animation"},
		{ID: 2, Title: "Heat (1995)", Genres: "Action|Crime"},
	})
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		pred: &fakePredictor{},
		sim:  &fakeSimilar{},
		history: &fakeHistory{records: map[int][]models.HistoryRecord{
			3: {
				{UserID: 3, MovieID: 2, Timestamp: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Source: models.SourceLive},
				{UserID: 3, MovieID: 99, Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Source: models.SourceDerived},
				{UserID: 3, MovieID: 1, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Source: models.SourceDerived},
			},
			10: {{UserID: 10, MovieID: 1, Source: models.SourceLive}},
		}},
	}
	f.o = New(DefaultConfig(), Deps{
		Catalog:     catalog,
		RatingUsers: []int{5, 3, 1, 3},
		Predictor:   f.pred,
		Similar:     f.sim,
		History:     f.history,
		Lookup:      fakeLookup{},
	}, zerolog.Nop())
	return f
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	o := New(Config{MaxResults: 4}, Deps{}, zerolog.Nop())
	cfg := o.Config()
	if cfg.DefaultResults != 4 || cfg.HistoryLimit != 4 || cfg.RefreshResults != 6 {
		t.Errorf("Config() = %+v", cfg)
	}
}

func TestOrchestrator_Recommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		n, offset int
		wantN     int
		wantErr   error
	}{
		{name: "default count", n: 0, wantN: 6},
		{name: "explicit count", n: 3, offset: 6, wantN: 3},
		{name: "max count", n: 20, wantN: 20},
		{name: "count above max", n: 21, wantErr: ErrInvalidArgument},
		{name: "negative count", n: -1, wantErr: ErrInvalidArgument},
		{name: "negative offset", n: 2, offset: -1, wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			got, err := f.o.Recommend(context.Background(), 1, tt.n, tt.offset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Recommend() error = %v, want %v", err, tt.wantErr)
				}
				if len(f.pred.calls) != 0 {
					t.Error("predictor called for invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(got) != tt.wantN {
				t.Errorf("len = %d, want %d", len(got), tt.wantN)
			}
			if want := (call{1, tt.wantN, tt.offset}); f.pred.calls[0] != want {
				t.Errorf("predictor call = %+v, want %+v", f.pred.calls[0], want)
			}
		})
	}
}

func TestOrchestrator_Similar(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.o.Similar(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Errorf("len = %d, want 6", len(got))
	}

	if _, err := f.o.Similar(context.Background(), 404, 2, 0); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("Similar(404) error = %v, want ErrNotFound", err)
	}
}

func TestOrchestrator_History(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.history.stats = models.HistoryStats{TotalCount: 3}

	view, err := f.o.History(context.Background(), 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.Stats.TotalCount != 3 {
		t.Errorf("Stats = %+v", view.Stats)
	}
	if f.history.snapshots != 1 {
		t.Errorf("snapshots = %d, want items and stats read together once", f.history.snapshots)
	}

	// Movie 99 is not in the catalog and is skipped.
	if len(view.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(view.Items))
	}
	first := view.Items[0]
	if first.Kind != models.KindHistory || first.MovieID != 2 || first.Title != "Heat (1995)" {
		t.Errorf("Items[0] = %+v", first)
	}
	if first.History == nil || first.History.SourceLabel != "Recently Watched" {
		t.Errorf("Items[0].History = %+v", first.History)
	}
	if got := first.History.WatchedOnDisplay; got != "2025-01-02 00:00:00" {
		t.Errorf("Items[0].History.WatchedOnDisplay = %q", got)
	}
	if first.Metadata.Overview != "about Heat (1995)" {
		t.Errorf("Items[0] not enriched: %+v", first.Metadata)
	}
	if !reflect.DeepEqual(first.Genres, []string{"Action", "Crime"}) {
		t.Errorf("Items[0].Genres = %v", first.Genres)
	}
	if view.Items[1].History.SourceLabel != "MovieLens" {
		t.Errorf("Items[1].History = %+v", view.Items[1].History)
	}
}

// rendezvousLookup answers "together" only when at least want lookups are in
// flight at once.
type rendezvousLookup struct {
	want    int
	mu      sync.Mutex
	arrived int
	ready   chan struct{}
}

func (r *rendezvousLookup) Lookup(context.Context, string) models.MetadataResult {
	r.mu.Lock()
	r.arrived++
	if r.arrived == r.want {
		close(r.ready)
	}
	r.mu.Unlock()

	select {
	case <-r.ready:
		return models.MetadataResult{Overview: "together"}
	case <-time.After(2 * time.Second):
		return models.MetadataResult{Overview: "alone"}
	}
}

func TestOrchestrator_HistoryEnrichesConcurrently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID int
		want   int
	}{
		{"two known movies", 3, 2},
		{"single movie", 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			lookup := &rendezvousLookup{want: tt.want, ready: make(chan struct{})}
			f.o.lookup = lookup

			view, err := f.o.History(context.Background(), tt.userID, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(view.Items) != tt.want {
				t.Fatalf("len(Items) = %d, want %d", len(view.Items), tt.want)
			}
			for i, it := range view.Items {
				if it.Metadata.Overview != "together" {
					t.Errorf("Items[%d] enriched %q, want lookups in flight together", i, it.Metadata.Overview)
				}
			}
		})
	}
}

func TestOrchestrator_HistoryEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	view, err := f.o.History(context.Background(), 77, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 || view.Stats != (models.HistoryStats{}) {
		t.Errorf("History(77) = %+v", view)
	}
	if _, err := f.o.History(context.Background(), 3, 50); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("History(limit 50) error = %v, want ErrInvalidArgument", err)
	}
}

func TestOrchestrator_MarkWatched(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rating := 4.5
	got, err := f.o.MarkWatched(context.Background(), 7, 2, &rating)
	if err != nil {
		t.Fatalf("MarkWatched() error = %v", err)
	}
	if got.Record.MovieID != 2 || got.Record.UserID != 7 {
		t.Errorf("Record = %+v", got.Record)
	}
	if len(f.history.appends) != 1 {
		t.Errorf("appends = %d, want 1", len(f.history.appends))
	}
	if len(got.Recommendations) != 6 {
		t.Errorf("refreshed recommendations = %d, want 6", len(got.Recommendations))
	}
	if want := (call{7, 6, 0}); f.pred.calls[0] != want {
		t.Errorf("refresh call = %+v, want %+v", f.pred.calls[0], want)
	}
}

func TestOrchestrator_MarkWatchedErrors(t *testing.T) {
	t.Parallel()

	persistErr := errors.New("persist failed")
	bad := 9.0

	tests := []struct {
		name    string
		movieID int
		rating  *float64
		histErr error
		wantErr error
	}{
		{name: "unknown movie", movieID: 999, wantErr: recommend.ErrNotFound},
		{name: "rating out of range", movieID: 1, rating: &bad, wantErr: ErrInvalidArgument},
		{name: "persistence failure", movieID: 1, histErr: persistErr, wantErr: persistErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.history.err = tt.histErr
			_, err := f.o.MarkWatched(context.Background(), 1, tt.movieID, tt.rating)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("MarkWatched() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.pred.calls) != 0 {
				t.Error("recommendations refreshed after failure")
			}
		})
	}
}

func TestOrchestrator_MoviesAndUsers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if got := f.o.Movies(); len(got) != 2 || got[0].ID != 1 {
		t.Errorf("Movies() = %+v", got)
	}
	if got, want := f.o.Users(), []int{1, 3, 5, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("Users() = %v, want %v", got, want)
	}
}
