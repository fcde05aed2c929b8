// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/orchestrator"
)

// WatchedRequest is the body of POST /users/{userID}/watched.
type WatchedRequest struct {
	MovieID int      `json:"movie_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating,omitempty" validate:"omitempty,gte=0.5,lte=5"`
}

// ActionRequest is the body of POST /actions.
type ActionRequest struct {
	Action string              `json:"action" validate:"required,oneof=recommend similar history mark_watched"`
	UserID int                 `json:"user_id" validate:"gte=0"`
	Params orchestrator.Params `json:"params"`
}

// toAction converts the request into an orchestrator action.
func (r *ActionRequest) toAction() orchestrator.Action {
	return orchestrator.Action{
		Name:   orchestrator.ActionName(r.Action),
		UserID: r.UserID,
		Params: r.Params,
	}
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string               `json:"status"`
	Version       string               `json:"version"`
	Movies        int                  `json:"movies"`
	Uptime        float64              `json:"uptime_seconds"`
	MetadataCache *int                 `json:"metadata_cache_entries,omitempty"`
	Models        []models.ModelStatus `json:"models,omitempty"`
}
