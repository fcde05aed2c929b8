// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"errors"
	"math/rand"

	"github.com/tomtom215/marquee/internal/models"
)

// ErrNoRatings is returned when Train receives an empty corpus.
var ErrNoRatings = errors.New("svd: no ratings to train on")

// SVDConfig contains configuration for the SVD algorithm.
type SVDConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	NumFactors int

	// NumEpochs is the number of passes of SGD over the ratings.
	NumEpochs int

	// LearningRate applies to biases and factors alike.
	LearningRate float64

	// Regularization is the L2 penalty on biases and factors.
	Regularization float64

	// InitStdDev is the standard deviation of the normal factor initialization.
	InitStdDev float64

	// Seed makes initialization reproducible.
	Seed int64

	// RatingMin and RatingMax bound every prediction.
	RatingMin float64
	RatingMax float64
}

// DefaultSVDConfig returns default SVD configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		NumFactors:     100,
		NumEpochs:      20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
		RatingMin:      1,
		RatingMax:      5,
	}
}

// SVD implements biased matrix factorization trained by SGD.
//
// The estimate for user u and item i is
//
//	r̂_ui = μ + b_u + b_i + q_i · p_u
//
// and each observed rating r_ui updates the parameters by
//
//	e    = r_ui - r̂_ui
//	b_u += γ (e - λ b_u)
//	b_i += γ (e - λ b_i)
//	p_u += γ (e q_i - λ p_u)
//	q_i += γ (e p_u - λ q_i)
//
// Unknown users get μ + b_i, unknown items get μ + b_u, and a pair where
// both are unknown gets μ. Every estimate is clipped to the rating scale.
type SVD struct {
	BaseAlgorithm
	config SVDConfig

	globalMean float64
	userBias   []float64
	itemBias   []float64

	// P is the user factor matrix (numUsers x numFactors)
	P [][]float64

	// Q is the item factor matrix (numItems x numFactors)
	Q [][]float64

	userIndex map[int]int
	itemIndex map[int]int
}

// NewSVD creates a new SVD algorithm with the given configuration.
func NewSVD(cfg SVDConfig) *SVD {
	defaults := DefaultSVDConfig()
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = defaults.NumFactors
	}
	if cfg.NumEpochs <= 0 {
		cfg.NumEpochs = defaults.NumEpochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = defaults.LearningRate
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = defaults.Regularization
	}
	if cfg.InitStdDev <= 0 {
		cfg.InitStdDev = defaults.InitStdDev
	}
	if cfg.RatingMin >= cfg.RatingMax {
		cfg.RatingMin, cfg.RatingMax = defaults.RatingMin, defaults.RatingMax
	}

	return &SVD{
		BaseAlgorithm: NewBaseAlgorithm("svd"),
		config:        cfg,
		userIndex:     make(map[int]int),
		itemIndex:     make(map[int]int),
	}
}

// Train fits the model to ratings. Ratings are visited in the given order
// on every epoch.
//
//nolint:gocritic // rangeValCopy is acceptable for clarity
func (s *SVD) Train(ctx context.Context, ratings []models.Rating) error {
	s.acquireTrainLock()
	defer s.releaseTrainLock()

	if len(ratings) == 0 {
		return ErrNoRatings
	}
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	userIndex := make(map[int]int)
	itemIndex := make(map[int]int)
	users := make([]int, len(ratings))
	items := make([]int, len(ratings))
	var sum float64
	for k, r := range ratings {
		u, ok := userIndex[r.UserID]
		if !ok {
			u = len(userIndex)
			userIndex[r.UserID] = u
		}
		i, ok := itemIndex[r.MovieID]
		if !ok {
			i = len(itemIndex)
			itemIndex[r.MovieID] = i
		}
		users[k], items[k] = u, i
		sum += r.Value
	}

	numFactors := s.config.NumFactors
	rng := rand.New(rand.NewSource(s.config.Seed)) //nolint:gosec // deterministic init, not security sensitive

	P := newNormalMatrix(rng, len(userIndex), numFactors, s.config.InitStdDev)
	Q := newNormalMatrix(rng, len(itemIndex), numFactors, s.config.InitStdDev)
	bu := make([]float64, len(userIndex))
	bi := make([]float64, len(itemIndex))
	mu := sum / float64(len(ratings))

	lr := s.config.LearningRate
	reg := s.config.Regularization

	for epoch := 0; epoch < s.config.NumEpochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		for k, r := range ratings {
			u, i := users[k], items[k]
			pu, qi := P[u], Q[i]

			dot := 0.0
			for f := 0; f < numFactors; f++ {
				dot += qi[f] * pu[f]
			}
			err := r.Value - (mu + bu[u] + bi[i] + dot)

			bu[u] += lr * (err - reg*bu[u])
			bi[i] += lr * (err - reg*bi[i])

			for f := 0; f < numFactors; f++ {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (err*qif - reg*puf)
				qi[f] += lr * (err*puf - reg*qif)
			}
		}
	}

	s.globalMean = mu
	s.userBias, s.itemBias = bu, bi
	s.P, s.Q = P, Q
	s.userIndex, s.itemIndex = userIndex, itemIndex
	s.markTrained()
	return nil
}

// PredictAll estimates userID's rating for each of itemIDs under a single
// read lock. The result is aligned with itemIDs.
func (s *SVD) PredictAll(userID int, itemIDs []int) []float64 {
	s.acquirePredictLock()
	defer s.releasePredictLock()

	u, uok := s.userIndex[userID]
	out := make([]float64, len(itemIDs))
	for k, id := range itemIDs {
		out[k] = s.estimate(u, uok, id)
	}
	return out
}

// KnownUser reports whether userID appeared in the training ratings.
func (s *SVD) KnownUser(userID int) bool {
	s.acquirePredictLock()
	defer s.releasePredictLock()
	_, ok := s.userIndex[userID]
	return ok
}

// GlobalMean returns the mean training rating.
func (s *SVD) GlobalMean() float64 {
	s.acquirePredictLock()
	defer s.releasePredictLock()
	return s.globalMean
}

// estimate must be called with the predict lock held.
func (s *SVD) estimate(u int, uok bool, itemID int) float64 {
	i, iok := s.itemIndex[itemID]

	est := s.globalMean
	if uok {
		est += s.userBias[u]
	}
	if iok {
		est += s.itemBias[i]
	}
	if uok && iok {
		pu, qi := s.P[u], s.Q[i]
		for f := range pu {
			est += qi[f] * pu[f]
		}
	}
	return clip(est, s.config.RatingMin, s.config.RatingMax)
}

func newNormalMatrix(rng *rand.Rand, rows, cols int, std float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = make([]float64, cols)
		for c := range m[r] {
			m[r][c] = rng.NormFloat64() * std
		}
	}
	return m
}
