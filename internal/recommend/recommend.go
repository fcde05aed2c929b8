// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// ErrNotFound is returned when the requested movie is not in the catalog.
var ErrNotFound = errors.New("recommend: movie not found")

// ErrNotLoaded is returned when a query runs before Load.
var ErrNotLoaded = errors.New("recommend: model not loaded")

// maxEnrichConcurrency bounds parallel metadata lookups per query.
const maxEnrichConcurrency = 4

// MetadataLookup enriches a movie title with external metadata.
// Implementations must not fail; degraded results carry placeholders.
type MetadataLookup interface {
	Lookup(ctx context.Context, title string) models.MetadataResult
}

// scored pairs a catalog position with its raw score.
type scored struct {
	index int
	score float64
}

// page returns items[offset:offset+n] clamped to the slice bounds.
func page[T any](items []T, n, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if n <= 0 || offset >= len(items) {
		return nil
	}
	end := offset + n
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Enrich fills Metadata on every result. Lookups for different titles run in
// parallel; the lookup itself collapses duplicate titles.
func Enrich(ctx context.Context, lookup MetadataLookup, results []models.Result) {
	if lookup == nil || len(results) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(maxEnrichConcurrency)
	for k := range results {
		g.Go(func() error {
			md := lookup.Lookup(ctx, results[k].Title)
			metrics.RecordEnrichment(md.IsError())
			results[k].Metadata = md
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // lookups never return errors
}

// modelStatus reads the training state shared by all algorithms.
func modelStatus(m interface {
	Name() string
	IsTrained() bool
	Version() int
	LastTrainedAt() time.Time
}) models.ModelStatus {
	st := models.ModelStatus{
		Name:    m.Name(),
		Trained: m.IsTrained(),
		Version: m.Version(),
	}
	if at := m.LastTrainedAt(); !at.IsZero() {
		at = at.UTC()
		st.TrainedAt = &at
	}
	return st
}
