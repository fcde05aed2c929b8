// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// ErrPersistence is returned when an append could not be written to the
// Live history file. The append is rolled back.
var ErrPersistence = errors.New("history: failed to persist live history")

// entry is a combined-history record with its merge sequence. Derived
// records take sequences 0..D-1 in input order and Live records follow in
// append order, so a higher sequence is always the later-added record.
type entry struct {
	rec models.HistoryRecord
	seq int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp appended records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithWriter overrides how the Live table is persisted.
func WithWriter(write func(path string, records []models.HistoryRecord) error) Option {
	return func(s *Store) {
		s.write = write
	}
}

// Store holds Derived and Live history and their merged view.
// All methods are safe for concurrent use.
type Store struct {
	path   string
	now    func() time.Time
	write  func(string, []models.HistoryRecord) error
	logger zerolog.Logger

	mu       sync.RWMutex
	derived  []models.HistoryRecord
	live     []models.HistoryRecord
	combined map[int]map[int]entry // user -> movie -> winner
}

// NewStore creates an empty store persisting Live records to path.
func NewStore(path string, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		path:     path,
		now:      time.Now,
		write:    WriteLiveFile,
		logger:   logger.With().Str("component", "history").Logger(),
		combined: make(map[int]map[int]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rebuilds Derived history from ratings, reads the Live file and
// merges both.
func (s *Store) Load(ctx context.Context, ratings []models.Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	derived := make([]models.HistoryRecord, len(ratings))
	for i, r := range ratings {
		v := r.Value
		derived[i] = models.HistoryRecord{
			UserID:    r.UserID,
			MovieID:   r.MovieID,
			Timestamp: epochToTime(r.Timestamp),
			Rating:    &v,
			Source:    models.SourceDerived,
		}
	}

	live, err := ReadLiveFile(s.path)
	if err != nil {
		return fmt.Errorf("load live history %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.derived = derived
	s.live = live
	s.rebuild()

	s.logger.Info().
		Int("derived", len(derived)).
		Int("live", len(live)).
		Int("users", len(s.combined)).
		Str("path", s.path).
		Msg("History loaded")
	return nil
}

// Append records that userID watched movieID now. rating may be nil.
// On a write failure the append is rolled back and ErrPersistence returned.
func (s *Store) Append(ctx context.Context, userID, movieID int, rating *float64) (models.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.HistoryRecord{}, err
	}

	rec := models.HistoryRecord{
		UserID:    userID,
		MovieID:   movieID,
		Timestamp: s.now().UTC().Truncate(time.Second),
		Source:    models.SourceLive,
	}
	if rating != nil {
		v := *rating
		rec.Rating = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = append(s.live, rec)
	if err := s.write(s.path, s.live); err != nil {
		s.live = s.live[:len(s.live)-1]
		metrics.RecordHistoryAppend(err)
		s.logger.Error().Err(err).
			Int("user_id", userID).
			Int("movie_id", movieID).
			Msg("Failed to persist live history")
		return models.HistoryRecord{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.merge(entry{rec: rec, seq: len(s.derived) + len(s.live) - 1})
	s.publishCounts()
	metrics.RecordHistoryAppend(nil)

	s.logger.Debug().
		Int("user_id", userID).
		Int("movie_id", movieID).
		Time("watched_on", rec.Timestamp).
		Msg("Appended live history")
	return rec, nil
}

// Snapshot returns userID's combined history, newest first, together with
// its summary. Both are read under one lock so they always agree.
// limit <= 0 returns every record; the summary always covers all of them.
func (s *Store) Snapshot(userID, limit int) ([]models.HistoryRecord, models.HistoryStats) {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.combined[userID]))
	for _, e := range s.combined[userID] {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	stats := summarize(entries)

	sort.Slice(entries, func(a, b int) bool {
		ta, tb := entries[a].rec.Timestamp, entries[b].rec.Timestamp
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return entries[a].seq > entries[b].seq
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]models.HistoryRecord, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, stats
}

func summarize(entries []entry) models.HistoryStats {
	var (
		stats  models.HistoryStats
		sum    float64
		rated  int
		recent time.Time
	)
	for _, e := range entries {
		stats.TotalCount++
		switch e.rec.Source {
		case models.SourceDerived:
			stats.DerivedCount++
		case models.SourceLive:
			stats.LiveCount++
		}
		if e.rec.Rating != nil {
			sum += *e.rec.Rating
			rated++
		}
		if e.rec.Timestamp.After(recent) {
			recent = e.rec.Timestamp
		}
	}
	if rated > 0 {
		stats.AverageRating = sum / float64(rated)
	}
	if stats.TotalCount > 0 {
		stats.MostRecent = &recent
	}
	return stats
}

// Users returns every user with at least one history record, ascending.
func (s *Store) Users() []int {
	s.mu.RLock()
	users := make([]int, 0, len(s.combined))
	for u := range s.combined {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Ints(users)
	return users
}

// LiveCount returns the number of Live records, including superseded ones.
func (s *Store) LiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.live)
}

// rebuild must be called with the write lock held.
func (s *Store) rebuild() {
	s.combined = make(map[int]map[int]entry)
	for i, r := range s.derived {
		s.merge(entry{rec: r, seq: i})
	}
	for i, r := range s.live {
		s.merge(entry{rec: r, seq: len(s.derived) + i})
	}
	s.publishCounts()
}

// merge must be called with the write lock held and entries in sequence
// order. Live records replace on equal timestamps, Derived ones do not.
func (s *Store) merge(e entry) {
	movies, ok := s.combined[e.rec.UserID]
	if !ok {
		movies = make(map[int]entry)
		s.combined[e.rec.UserID] = movies
	}

	cur, exists := movies[e.rec.MovieID]
	switch {
	case !exists, e.rec.Timestamp.After(cur.rec.Timestamp):
		movies[e.rec.MovieID] = e
	case e.rec.Timestamp.Equal(cur.rec.Timestamp) && e.rec.Source == models.SourceLive:
		movies[e.rec.MovieID] = e
	}
}

// publishCounts must be called with the write lock held.
func (s *Store) publishCounts() {
	var derived, live int
	for _, movies := range s.combined {
		for _, e := range movies {
			if e.rec.Source == models.SourceLive {
				live++
			} else {
				derived++
			}
		}
	}
	metrics.SetHistoryRecords(derived, live)
}

// epochToTime converts integer or fractional epoch seconds to UTC.
func epochToTime(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
