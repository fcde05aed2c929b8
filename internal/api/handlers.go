// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/orchestrator"
)

// Service is the application surface the handlers call. It is satisfied
// by *orchestrator.Orchestrator.
type Service interface {
	Recommend(ctx context.Context, userID, n, offset int) ([]models.Result, error)
	Similar(ctx context.Context, movieID, n, offset int) ([]models.Result, error)
	History(ctx context.Context, userID, limit int) (*orchestrator.HistoryView, error)
	MarkWatched(ctx context.Context, userID, movieID int, rating *float64) (*orchestrator.WatchResult, error)
	Movies() []models.Movie
	Users() []int
	Dispatch(ctx context.Context, action orchestrator.Action) (*orchestrator.Outcome, error)
}

// CacheSizer reports the number of cached metadata entries.
type CacheSizer interface {
	Len() int
}

// ModelReporter reports a trained model's state.
type ModelReporter interface {
	Status() models.ModelStatus
}

// Handler holds the HTTP handlers.
type Handler struct {
	service   Service
	cache     CacheSizer
	models    []ModelReporter
	version   string
	startTime time.Time
}

// NewHandler creates a handler set. cache may be nil.
func NewHandler(service Service, cache CacheSizer, version string, reporters ...ModelReporter) *Handler {
	return &Handler{
		service:   service,
		cache:     cache,
		models:    reporters,
		version:   version,
		startTime: time.Now(),
	}
}

// Health reports liveness with basic counters. Any untrained model marks
// the service degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Movies:  len(h.service.Movies()),
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.cache != nil {
		n := h.cache.Len()
		resp.MetadataCache = &n
	}
	for _, m := range h.models {
		st := m.Status()
		if !st.Trained {
			resp.Status = "degraded"
		}
		resp.Models = append(resp.Models, st)
	}
	respondSuccess(w, resp, 1, start)
}

// Movies lists the catalog.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movies := h.service.Movies()
	respondSuccess(w, movies, len(movies), start)
}

// Users lists every known user ID.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	users := h.service.Users()
	respondSuccess(w, users, len(users), start)
}

// Recommendations handles GET /users/{userID}/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeUserIDInvalid, "User ID must be an integer", nil)
		return
	}
	n, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	results, err := h.service.Recommend(r.Context(), userID, n, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, results, len(results), start)
}

// Similar handles GET /movies/{movieID}/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeMovieIDInvalid, "Movie ID must be an integer", nil)
		return
	}
	n, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	results, err := h.service.Similar(r.Context(), movieID, n, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, results, len(results), start)
}

// History handles GET /users/{userID}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeUserIDInvalid, "User ID must be an integer", nil)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	view, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, view, len(view.Items), start)
}

// MarkWatched handles POST /users/{userID}/watched.
func (h *Handler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeUserIDInvalid, "User ID must be an integer", nil)
		return
	}
	var req WatchedRequest
	if apiErr := decodeBody(w, r, &req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	result, err := h.service.MarkWatched(r.Context(), userID, req.MovieID, req.Rating)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, result, len(result.Recommendations), start)
}

// Actions handles POST /actions, the generic action boundary.
func (h *Handler) Actions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ActionRequest
	if apiErr := decodeBody(w, r, &req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	out, err := h.service.Dispatch(r.Context(), req.toAction())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	count := len(out.Results)
	switch {
	case out.History != nil:
		count = len(out.History.Items)
	case out.Watch != nil:
		count = len(out.Watch.Recommendations)
	}
	respondSuccess(w, out, count, start)
}

// pageParams reads n and offset, writing a 400 on malformed values.
func pageParams(w http.ResponseWriter, r *http.Request) (n, offset int, ok bool) {
	var err error
	if n, err = queryInt(r, "n"); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return 0, 0, false
	}
	if offset, err = queryInt(r, "offset"); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return 0, 0, false
	}
	return n, offset, true
}
