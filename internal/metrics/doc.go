// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto and
// updated with the Record* helpers so callers never touch label ordering.
package metrics
