// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// ErrInvalidArgument is returned for out-of-range counts, offsets or ratings.
var ErrInvalidArgument = errors.New("orchestrator: invalid argument")

// Recommender ranks movies for a user.
type Recommender interface {
	PredictTopN(ctx context.Context, userID, n, offset int) ([]models.Result, error)
}

// SimilarFinder ranks movies against a movie.
type SimilarFinder interface {
	SimilarTopN(ctx context.Context, movieID, n, offset int) ([]models.Result, error)
}

// HistoryStore is the subset of history.Store used here.
type HistoryStore interface {
	Append(ctx context.Context, userID, movieID int, rating *float64) (models.HistoryRecord, error)
	Snapshot(userID, limit int) ([]models.HistoryRecord, models.HistoryStats)
	Users() []int
}

// Config holds result-count defaults and bounds.
type Config struct {
	DefaultResults int
	MaxResults     int
	HistoryLimit   int
	RefreshResults int
	RatingMin      float64
	RatingMax      float64
}

// DefaultConfig returns the standard counts: 6 results, at most 20.
func DefaultConfig() Config {
	return Config{
		DefaultResults: 6,
		MaxResults:     20,
		HistoryLimit:   6,
		RefreshResults: 6,
		RatingMin:      0.5,
		RatingMax:      5,
	}
}

// HistoryView is a user's recent history joined with the catalog.
type HistoryView struct {
	UserID int                 `json:"user_id"`
	Items  []models.Result     `json:"items"`
	Stats  models.HistoryStats `json:"stats"`
}

// WatchResult is the outcome of marking a movie as watched.
type WatchResult struct {
	Record          models.HistoryRecord `json:"record"`
	Recommendations []models.Result      `json:"recommendations"`
}

// Orchestrator routes user actions. It is safe for concurrent use.
type Orchestrator struct {
	config      Config
	catalog     *dataset.Catalog
	ratingUsers []int
	predictor   Recommender
	similar     SimilarFinder
	history     HistoryStore
	lookup      recommend.MetadataLookup
	logger      zerolog.Logger
}

// Deps groups the collaborators of an Orchestrator.
type Deps struct {
	Catalog     *dataset.Catalog
	RatingUsers []int
	Predictor   Recommender
	Similar     SimilarFinder
	History     HistoryStore
	Lookup      recommend.MetadataLookup
}

// New creates an Orchestrator. Zero config fields take their defaults.
func New(cfg Config, deps Deps, logger zerolog.Logger) *Orchestrator {
	def := DefaultConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.DefaultResults <= 0 || cfg.DefaultResults > cfg.MaxResults {
		cfg.DefaultResults = min(def.DefaultResults, cfg.MaxResults)
	}
	if cfg.HistoryLimit <= 0 || cfg.HistoryLimit > cfg.MaxResults {
		cfg.HistoryLimit = min(def.HistoryLimit, cfg.MaxResults)
	}
	if cfg.RefreshResults <= 0 {
		cfg.RefreshResults = def.RefreshResults
	}
	if cfg.RatingMin >= cfg.RatingMax {
		cfg.RatingMin, cfg.RatingMax = def.RatingMin, def.RatingMax
	}

	return &Orchestrator{
		config:      cfg,
		catalog:     deps.Catalog,
		ratingUsers: deps.RatingUsers,
		predictor:   deps.Predictor,
		similar:     deps.Similar,
		history:     deps.History,
		lookup:      deps.Lookup,
		logger:      logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config {
	return o.config
}

// Recommend returns n predicted movies for userID starting at offset.
func (o *Orchestrator) Recommend(ctx context.Context, userID, n, offset int) ([]models.Result, error) {
	n, err := o.count(n, o.config.DefaultResults)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrInvalidArgument, offset)
	}
	return o.predictor.PredictTopN(ctx, userID, n, offset)
}

// Similar returns n movies similar to movieID starting at offset.
func (o *Orchestrator) Similar(ctx context.Context, movieID, n, offset int) ([]models.Result, error) {
	n, err := o.count(n, o.config.DefaultResults)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrInvalidArgument, offset)
	}
	return o.similar.SimilarTopN(ctx, movieID, n, offset)
}

// History returns userID's most recent limit records with statistics.
// Records for movies missing from the catalog are skipped.
func (o *Orchestrator) History(ctx context.Context, userID, limit int) (*HistoryView, error) {
	limit, err := o.count(limit, o.config.HistoryLimit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, stats := o.history.Snapshot(userID, limit)
	view := &HistoryView{
		UserID: userID,
		Items:  make([]models.Result, 0, len(records)),
		Stats:  stats,
	}

	for _, rec := range records {
		movie, ok := o.catalog.Movie(rec.MovieID)
		if !ok {
			o.logger.Debug().
				Int("user_id", userID).
				Int("movie_id", rec.MovieID).
				Msg("Skipping history record for unknown movie")
			continue
		}
		view.Items = append(view.Items, models.Result{
			Kind:    models.KindHistory,
			MovieID: movie.ID,
			Title:   movie.Title,
			Genres:  movie.GenreList(),
			History: models.NewHistoryDetail(rec),
		})
	}
	recommend.Enrich(ctx, o.lookup, view.Items)
	return view, nil
}

// MarkWatched appends movieID to userID's history and returns refreshed
// recommendations for the same user.
func (o *Orchestrator) MarkWatched(ctx context.Context, userID, movieID int, rating *float64) (*WatchResult, error) {
	if _, ok := o.catalog.Movie(movieID); !ok {
		return nil, fmt.Errorf("%w: %d", recommend.ErrNotFound, movieID)
	}
	if rating != nil && (*rating < o.config.RatingMin || *rating > o.config.RatingMax) {
		return nil, fmt.Errorf("%w: rating %v outside [%v, %v]",
			ErrInvalidArgument, *rating, o.config.RatingMin, o.config.RatingMax)
	}

	rec, err := o.history.Append(ctx, userID, movieID, rating)
	if err != nil {
		return nil, fmt.Errorf("mark watched: %w", err)
	}

	o.logger.Info().
		Int("user_id", userID).
		Int("movie_id", movieID).
		Msg("Movie marked as watched")

	recs, err := o.predictor.PredictTopN(ctx, userID, o.config.RefreshResults, 0)
	if err != nil {
		return nil, fmt.Errorf("refresh recommendations: %w", err)
	}
	return &WatchResult{Record: rec, Recommendations: recs}, nil
}

// Movies returns the catalog in order.
func (o *Orchestrator) Movies() []models.Movie {
	return o.catalog.Movies()
}

// Users returns every user with ratings or history, ascending.
func (o *Orchestrator) Users() []int {
	seen := make(map[int]struct{}, len(o.ratingUsers))
	users := make([]int, 0, len(o.ratingUsers))
	for _, u := range o.ratingUsers {
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			users = append(users, u)
		}
	}
	for _, u := range o.history.Users() {
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			users = append(users, u)
		}
	}
	sort.Ints(users)
	return users
}

func (o *Orchestrator) count(n, def int) (int, error) {
	if n == 0 {
		return def, nil
	}
	if n < 1 || n > o.config.MaxResults {
		return 0, fmt.Errorf("%w: count %d outside [1, %d]", ErrInvalidArgument, n, o.config.MaxResults)
	}
	return n, nil
}
