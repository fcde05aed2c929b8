// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the API server.

Key Components:

  - RequestID: UUID-based request tracking, propagated into the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - AccessLog: one structured log line per request

All middleware use the http.HandlerFunc wrapper form. The api package adapts
them to chi's func(http.Handler) http.Handler signature.

Usage Example:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Metrics are labelled with the chi route pattern (for example
/api/v1/users/{userID}/history) rather than the raw path, so user and movie
IDs do not create new label values.
*/
package middleware
