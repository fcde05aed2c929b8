// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

type fakeStatsSource struct {
	entries atomic.Int64
	reads   atomic.Int32
}

func (f *fakeStatsSource) Len() int {
	f.reads.Add(1)
	return int(f.entries.Load())
}

func (f *fakeStatsSource) Stats() cache.Stats {
	return cache.Stats{Hits: 3, Misses: 1, TotalKeys: f.entries.Load()}
}

func (f *fakeStatsSource) HitRate() float64 { return 75 }

func TestCacheMonitorService_ReportLogsHitRate(t *testing.T) {
	tests := []struct {
		name    string
		entries int64
		want    []string
	}{
		{"empty", 0, []string{`"entries":0`, `"hit_rate_pct":75`}},
		{"populated", 9, []string{`"entries":9`, `"hits":3`, `"misses":1`, `"hit_rate_pct":75`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeStatsSource{}
			src.entries.Store(tt.entries)
			var buf bytes.Buffer
			svc := NewCacheMonitorService(src, time.Minute, logging.NewTestLogger(&buf))

			svc.report()

			line := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("log line %s missing %s", line, w)
				}
			}
		})
	}
}

func TestNewCacheMonitorService_DefaultInterval(t *testing.T) {
	svc := NewCacheMonitorService(&fakeStatsSource{}, 0, logging.NewTestLogger(nil))
	if svc.interval != defaultMonitorInterval {
		t.Errorf("interval = %v, want %v", svc.interval, defaultMonitorInterval)
	}
	if svc.String() != "metadata-cache-monitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCacheMonitorService_Serve(t *testing.T) {
	src := &fakeStatsSource{}
	src.entries.Store(17)
	svc := NewCacheMonitorService(src, 10*time.Millisecond, logging.NewTestLogger(nil))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for src.reads.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d reports before deadline", src.reads.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := testutil.ToFloat64(metrics.MetadataCacheEntries); got != 17 {
		t.Errorf("metadata_cache_entries = %v, want 17", got)
	}
}
