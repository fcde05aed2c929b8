// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/metrics"
)

const defaultMonitorInterval = time.Minute

// CacheStatsSource is implemented by metadata.Cache.
type CacheStatsSource interface {
	Len() int
	Stats() cache.Stats
	HitRate() float64
}

// CacheMonitorService periodically publishes metadata cache occupancy and
// logs hit/miss counters. Entries are never evicted here; expiry stays lazy.
type CacheMonitorService struct {
	source   CacheStatsSource
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheMonitorService creates the monitor. A non-positive interval uses one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMonitorService(source CacheStatsSource, interval time.Duration, logger zerolog.Logger) *CacheMonitorService {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	return &CacheMonitorService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "cache-monitor").Logger(),
		name:     "metadata-cache-monitor",
	}
}

// Serve implements suture.Service.
func (s *CacheMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.report()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *CacheMonitorService) report() {
	entries := s.source.Len()
	stats := s.source.Stats()
	metrics.SetMetadataCacheEntries(entries)
	s.logger.Debug().
		Int("entries", entries).
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("evictions", stats.Evictions).
		Float64("hit_rate_pct", s.source.HitRate()).
		Msg("Metadata cache stats")
}

// String names the service in supervisor events.
func (s *CacheMonitorService) String() string {
	return s.name
}
