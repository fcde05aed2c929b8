// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "strings"

// Movie is a catalog item. Genres is pipe-delimited ("Action|Comedy").
type Movie struct {
	ID     int    `json:"movie_id"`
	Title  string `json:"title"`
	Genres string `json:"genres"`
}

// GenreList splits Genres on "|" and drops empty entries.
func (m Movie) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	parts := strings.Split(m.Genres, "|")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Rating is one (user, movie, value, time) observation from the ratings corpus.
// Timestamp is seconds since the Unix epoch.
type Rating struct {
	UserID    int     `json:"user_id"`
	MovieID   int     `json:"movie_id"`
	Value     float64 `json:"rating"`
	Timestamp float64 `json:"timestamp"`
}
