// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// Source identifies where a history record came from.
type Source string

const (
	// SourceDerived marks records rebuilt from the ratings corpus at startup.
	SourceDerived Source = "movielens"

	// SourceLive marks records appended through "mark as watched".
	SourceLive Source = "app"
)

// Label is the display name for the source.
func (s Source) Label() string {
	switch s {
	case SourceDerived:
		return "MovieLens"
	case SourceLive:
		return "Recently Watched"
	default:
		return string(s)
	}
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceDerived || s == SourceLive
}

// HistoryRecord is one watch event. Rating is nil when the user did not rate.
type HistoryRecord struct {
	UserID    int       `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Timestamp time.Time `json:"watched_on"`
	Rating    *float64  `json:"user_rating,omitempty"`
	Source    Source    `json:"source"`
}

// HistoryStats summarizes one user's combined history.
// MostRecent is nil, and encodes as null, when the user has no history.
type HistoryStats struct {
	TotalCount    int        `json:"total_movies"`
	AverageRating float64    `json:"avg_rating"`
	DerivedCount  int        `json:"movielens_count"`
	LiveCount     int        `json:"app_count"`
	MostRecent    *time.Time `json:"latest_watch"`
}
