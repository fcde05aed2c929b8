// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// BreakerConfig tunes the circuit breaker around a Searcher.
type BreakerConfig struct {
	Name         string
	MinRequests  uint32
	FailureRatio float64
	Timeout      time.Duration
}

// DefaultBreakerConfig opens after a 60% failure rate over at least 10
// requests and probes again after 2 minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "tmdb-api",
		MinRequests:  10,
		FailureRatio: 0.6,
		Timeout:      2 * time.Minute,
	}
}

// BreakerSearcher wraps a Searcher with a circuit breaker. While the circuit
// is open SearchMovie fails immediately with gobreaker.ErrOpenState.
type BreakerSearcher struct {
	next Searcher
	cb   *gobreaker.CircuitBreaker[*SearchResult]
	name string
}

// NewBreakerSearcher wraps next.
func NewBreakerSearcher(next Searcher, cfg BreakerConfig) *BreakerSearcher {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}
	name := cfg.Name
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*SearchResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).Msg("Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// A cancelled caller says nothing about the health of TMDB.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerSearcher{next: next, cb: cb, name: name}
}

// SearchMovie implements Searcher.
func (b *BreakerSearcher) SearchMovie(ctx context.Context, query string) (*SearchResult, error) {
	result, err := b.cb.Execute(func() (*SearchResult, error) {
		return b.next.SearchMovie(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("metadata search rejected: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// State returns the current breaker state.
func (b *BreakerSearcher) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
