// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package orchestrator

import (
	"context"
	"errors"
	"testing"
)

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		action  Action
		verify  func(t *testing.T, out *Outcome)
		wantErr error
	}{
		{
			name:   "recommend",
			action: Action{Name: ActionRecommend, UserID: 1, Params: Params{N: 2}},
			verify: func(t *testing.T, out *Outcome) {
				if len(out.Results) != 2 {
					t.Errorf("len(Results) = %d, want 2", len(out.Results))
				}
			},
		},
		{
			name:   "similar",
			action: Action{Name: ActionSimilar, Params: Params{MovieID: 1, N: 3, Offset: 1}},
			verify: func(t *testing.T, out *Outcome) {
				if len(out.Results) != 3 {
					t.Errorf("len(Results) = %d, want 3", len(out.Results))
				}
			},
		},
		{
			name:   "history",
			action: Action{Name: ActionHistory, UserID: 3, Params: Params{Limit: 1}},
			verify: func(t *testing.T, out *Outcome) {
				if out.History == nil || len(out.History.Items) != 1 {
					t.Errorf("History = %+v", out.History)
				}
			},
		},
		{
			name:   "mark watched",
			action: Action{Name: ActionMarkWatched, UserID: 3, Params: Params{MovieID: 1}},
			verify: func(t *testing.T, out *Outcome) {
				if out.Watch == nil || out.Watch.Record.MovieID != 1 {
					t.Errorf("Watch = %+v", out.Watch)
				}
			},
		},
		{
			name:    "unknown action",
			action:  Action{Name: "rewind"},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "invalid count",
			action:  Action{Name: ActionRecommend, Params: Params{N: 100}},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			out, err := f.o.Dispatch(context.Background(), tt.action)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Dispatch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if out.Action != tt.action.Name {
				t.Errorf("Action = %q, want %q", out.Action, tt.action.Name)
			}
			tt.verify(t, out)
		})
	}
}
