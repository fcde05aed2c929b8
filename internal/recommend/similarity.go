// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
)

// SimilarityEngine ranks catalog movies by genre similarity to a movie.
// It is safe for concurrent use after Load.
type SimilarityEngine struct {
	model  *algorithms.TFIDF
	lookup MetadataLookup
	logger zerolog.Logger

	mu      sync.RWMutex
	catalog *dataset.Catalog
}

// NewSimilarityEngine creates an engine. lookup may be nil to skip enrichment.
func NewSimilarityEngine(cfg algorithms.TFIDFConfig, lookup MetadataLookup, logger zerolog.Logger) *SimilarityEngine {
	return &SimilarityEngine{
		model:  algorithms.NewTFIDF(cfg),
		lookup: lookup,
		logger: logger.With().Str("component", "similarity").Logger(),
	}
}

// Load builds the similarity matrix over the catalog's genres.
func (e *SimilarityEngine) Load(ctx context.Context, catalog *dataset.Catalog) error {
	start := time.Now()

	docs := make([]string, catalog.Len())
	for i := range docs {
		docs[i] = catalog.At(i).Genres
	}
	if err := e.model.Train(ctx, docs); err != nil {
		return fmt.Errorf("build similarity matrix: %w", err)
	}

	e.mu.Lock()
	e.catalog = catalog
	e.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecordModelTraining("tfidf", elapsed)
	e.logger.Info().
		Int("movies", catalog.Len()).
		Int("vocabulary", e.model.VocabularySize()).
		Dur("duration", elapsed).
		Msg("Similarity matrix built")
	return nil
}

// SimilarTopN returns n movies starting at offset, ranked by similarity to
// movieID. The movie itself is never included.
func (e *SimilarityEngine) SimilarTopN(ctx context.Context, movieID, n, offset int) ([]models.Result, error) {
	e.mu.RLock()
	catalog := e.catalog
	e.mu.RUnlock()

	if catalog == nil {
		return nil, ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, ok := catalog.IndexOf(movieID)
	if !ok {
		metrics.RecordModelQuery("tfidf", false)
		return nil, fmt.Errorf("%w: %d", ErrNotFound, movieID)
	}

	row, err := e.model.Row(idx)
	if err != nil {
		return nil, fmt.Errorf("similarity row %d: %w", idx, err)
	}

	ranked := make([]scored, 0, len(row))
	for j, v := range row {
		if j == idx {
			continue
		}
		ranked = append(ranked, scored{index: j, score: v})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	window := page(ranked, n, offset)
	results := make([]models.Result, len(window))
	for k, s := range window {
		m := catalog.At(s.index)
		score := round2(s.score)
		results[k] = models.Result{
			Kind:    models.KindSimilarity,
			MovieID: m.ID,
			Title:   m.Title,
			Genres:  m.GenreList(),
			Score:   &score,
		}
	}
	Enrich(ctx, e.lookup, results)

	metrics.RecordModelQuery("tfidf", true)
	return results, nil
}

// Status reports the similarity model's training state.
func (e *SimilarityEngine) Status() models.ModelStatus {
	return modelStatus(e.model)
}
