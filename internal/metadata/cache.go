// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// CacheConfig configures a metadata Cache.
type CacheConfig struct {
	// TTL is how long a stored result is reused. Default: 1h
	TTL time.Duration

	// MinInterval is the minimum spacing between external calls. Default: 100ms
	MinInterval time.Duration

	// ImageBaseURL is prefixed to poster paths.
	ImageBaseURL string
}

// DefaultCacheConfig returns the defaults used by the server.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:          time.Hour,
		MinInterval:  100 * time.Millisecond,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
	}
}

// Option customizes a Cache.
type Option func(*Cache)

// WithWaiter replaces the rate limiter.
func WithWaiter(w Waiter) Option {
	return func(c *Cache) {
		c.limiter = w
	}
}

// WithClock sets the time source used for entry expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Cache is a time-bounded, rate-limited front for a Searcher.
type Cache struct {
	searcher     Searcher
	entries      *cache.Cache[models.MetadataResult]
	limiter      Waiter
	group        singleflight.Group
	imageBaseURL string
	now          func() time.Time
	logger       zerolog.Logger
}

// NewCache builds a Cache in front of searcher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCache(searcher Searcher, cfg CacheConfig, logger zerolog.Logger, opts ...Option) *Cache {
	defaults := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.MinInterval < 0 {
		cfg.MinInterval = defaults.MinInterval
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	c := &Cache{
		searcher:     searcher,
		limiter:      rate.NewLimiter(limit, 1),
		imageBaseURL: cfg.ImageBaseURL,
		now:          time.Now,
		logger:       logger.With().Str("component", "metadata").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = cache.New[models.MetadataResult](cfg.TTL, cache.WithClock(c.now))
	return c
}

// Lookup returns metadata for title. It never fails: failures produce the
// error placeholder, which is not cached.
//
// Concurrent misses for the same title share one external call; the context
// of the caller that started the call governs it.
func (c *Cache) Lookup(ctx context.Context, title string) models.MetadataResult {
	if v, ok := c.entries.Get(title); ok {
		metrics.RecordMetadataCache(true, c.entries.Len())
		return v
	}
	metrics.RecordMetadataCache(false, c.entries.Len())

	v, _, _ := c.group.Do(title, func() (interface{}, error) {
		// A flight that finished between our miss and this call already stored it.
		if v, ok := c.entries.Peek(title); ok {
			return v, nil
		}
		result, err := c.fetch(ctx, title)
		if err != nil {
			c.logger.Warn().Err(err).Str("title", title).Msg("Metadata lookup failed")
			return models.ErrorMetadata(), nil
		}
		c.entries.Set(title, result)
		return result, nil
	})
	return v.(models.MetadataResult)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns the underlying cache counters.
func (c *Cache) Stats() cache.Stats {
	return c.entries.GetStats()
}

// HitRate returns the lookup hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	return c.entries.HitRate()
}

func (c *Cache) fetch(ctx context.Context, title string) (models.MetadataResult, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordMetadataLookup("error", time.Since(start))
		return models.MetadataResult{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	sr, err := c.searcher.SearchMovie(ctx, NormalizeTitle(title))
	if err != nil {
		metrics.RecordMetadataLookup("error", time.Since(start))
		return models.MetadataResult{}, err
	}
	if sr == nil || !sr.Found {
		metrics.RecordMetadataLookup("not_found", time.Since(start))
		return models.NoDataMetadata(), nil
	}

	metrics.RecordMetadataLookup("found", time.Since(start))
	poster := models.PosterPlaceholder
	if sr.PosterPath != nil && *sr.PosterPath != "" {
		poster = c.imageBaseURL + *sr.PosterPath
	}
	return models.MetadataResult{
		PosterURL:   poster,
		Overview:    sr.Overview,
		ReleaseDate: sr.ReleaseDate,
		VoteAverage: sr.VoteAverage,
	}, nil
}
