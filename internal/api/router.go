// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router. requestTimeout <= 0 disables the per-request
// deadline.
func NewRouter(handler *Handler, mw *ChiMiddleware, requestTimeout time.Duration) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		chiMiddleware:  mw,
		requestTimeout: requestTimeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chiMiddleware(middleware.AccessLog))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}

		r.Get("/health", router.handler.Health)

		r.Get("/movies", router.handler.Movies)
		r.Get("/movies/{movieID}/similar", router.handler.Similar)

		r.Get("/users", router.handler.Users)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/recommendations", router.handler.Recommendations)
			r.Get("/history", router.handler.History)
			r.Post("/watched", router.handler.MarkWatched)
		})

		r.Post("/actions", router.handler.Actions)
	})

	return r
}
