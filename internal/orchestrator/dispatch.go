// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package orchestrator

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/models"
)

// ActionName identifies a user action.
type ActionName string

const (
	ActionRecommend   ActionName = "recommend"
	ActionSimilar     ActionName = "similar"
	ActionHistory     ActionName = "history"
	ActionMarkWatched ActionName = "mark_watched"
)

// Params carries the optional parameters of an action.
type Params struct {
	N       int      `json:"n,omitempty"`
	Offset  int      `json:"offset,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	MovieID int      `json:"movie_id,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}

// Action is one user request at the orchestration boundary.
type Action struct {
	Name   ActionName `json:"action"`
	UserID int        `json:"user_id"`
	Params Params     `json:"params"`
}

// Outcome is the result of a dispatched action. Exactly one of Results,
// History or Watch is set.
type Outcome struct {
	Action  ActionName      `json:"action"`
	Results []models.Result `json:"results,omitempty"`
	History *HistoryView    `json:"history,omitempty"`
	Watch   *WatchResult    `json:"watch,omitempty"`
}

// Dispatch runs action.
func (o *Orchestrator) Dispatch(ctx context.Context, action Action) (*Outcome, error) {
	out := &Outcome{Action: action.Name}
	var err error

	switch action.Name {
	case ActionRecommend:
		out.Results, err = o.Recommend(ctx, action.UserID, action.Params.N, action.Params.Offset)
	case ActionSimilar:
		out.Results, err = o.Similar(ctx, action.Params.MovieID, action.Params.N, action.Params.Offset)
	case ActionHistory:
		out.History, err = o.History(ctx, action.UserID, action.Params.Limit)
	case ActionMarkWatched:
		out.Watch, err = o.MarkWatched(ctx, action.UserID, action.Params.MovieID, action.Params.Rating)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action.Name)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
