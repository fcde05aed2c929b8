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

// Predictor ranks catalog movies by predicted rating for a user.
// It is safe for concurrent use after Load.
type Predictor struct {
	model  *algorithms.SVD
	lookup MetadataLookup
	logger zerolog.Logger

	mu      sync.RWMutex
	catalog *dataset.Catalog
	itemIDs []int
}

// NewPredictor creates a predictor. lookup may be nil to skip enrichment.
func NewPredictor(cfg algorithms.SVDConfig, lookup MetadataLookup, logger zerolog.Logger) *Predictor {
	return &Predictor{
		model:  algorithms.NewSVD(cfg),
		lookup: lookup,
		logger: logger.With().Str("component", "predictor").Logger(),
	}
}

// Load trains the model on ratings and binds it to catalog.
func (p *Predictor) Load(ctx context.Context, catalog *dataset.Catalog, ratings []models.Rating) error {
	start := time.Now()
	p.logger.Info().
		Int("movies", catalog.Len()).
		Int("ratings", len(ratings)).
		Msg("Training rating predictor")

	if err := p.model.Train(ctx, ratings); err != nil {
		return fmt.Errorf("train svd: %w", err)
	}

	ids := make([]int, catalog.Len())
	for i := range ids {
		ids[i] = catalog.At(i).ID
	}

	p.mu.Lock()
	p.catalog = catalog
	p.itemIDs = ids
	p.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecordModelTraining("svd", elapsed)
	p.logger.Info().
		Dur("duration", elapsed).
		Float64("global_mean", p.model.GlobalMean()).
		Msg("Rating predictor trained")
	return nil
}

// PredictTopN returns n movies starting at offset, ranked by predicted
// rating for userID. Unknown users get a cold-start ranking.
func (p *Predictor) PredictTopN(ctx context.Context, userID, n, offset int) ([]models.Result, error) {
	p.mu.RLock()
	catalog, ids := p.catalog, p.itemIDs
	p.mu.RUnlock()

	if catalog == nil {
		return nil, ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	preds := p.model.PredictAll(userID, ids)
	ranked := make([]scored, len(preds))
	for i, v := range preds {
		ranked[i] = scored{index: i, score: v}
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
			Kind:    models.KindPrediction,
			MovieID: m.ID,
			Title:   m.Title,
			Genres:  m.GenreList(),
			Score:   &score,
		}
	}
	Enrich(ctx, p.lookup, results)

	metrics.RecordModelQuery("svd", true)
	p.logger.Debug().
		Int("user_id", userID).
		Bool("known_user", p.model.KnownUser(userID)).
		Int("returned", len(results)).
		Msg("Predicted top movies")
	return results, nil
}

// Status reports the rating model's training state.
func (p *Predictor) Status() models.ModelStatus {
	return modelStatus(p.model)
}
