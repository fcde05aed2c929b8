// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// ResultKind tags which query produced a Result.
type ResultKind string

const (
	KindPrediction ResultKind = "prediction"
	KindSimilarity ResultKind = "similarity"
	KindHistory    ResultKind = "history"
)

// Result is a single row returned to the presentation layer. Score is set
// for prediction and similarity rows (rounded to 2 decimals); History is set
// for history rows. Metadata is always populated, possibly with a placeholder.
type Result struct {
	Kind     ResultKind     `json:"kind"`
	MovieID  int            `json:"movie_id"`
	Title    string         `json:"title"`
	Genres   []string       `json:"genres"`
	Score    *float64       `json:"score,omitempty"`
	History  *HistoryDetail `json:"history,omitempty"`
	Metadata MetadataResult `json:"metadata"`
}

// DisplayTimeLayout formats watch timestamps for display, in UTC.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// HistoryDetail is the history-specific part of a Result.
type HistoryDetail struct {
	WatchedOn        time.Time `json:"watched_on"`
	WatchedOnDisplay string    `json:"watched_on_display"`
	UserRating       *float64  `json:"user_rating,omitempty"`
	Source           Source    `json:"source"`
	SourceLabel      string    `json:"source_label"`
}

// NewHistoryDetail builds the display detail for rec.
func NewHistoryDetail(rec HistoryRecord) *HistoryDetail {
	return &HistoryDetail{
		WatchedOn:        rec.Timestamp,
		WatchedOnDisplay: rec.Timestamp.UTC().Format(DisplayTimeLayout),
		UserRating:       rec.Rating,
		Source:           rec.Source,
		SourceLabel:      rec.Source.Label(),
	}
}
