// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metadata

import (
	"context"
	"strings"
)

// SearchResult is the first match returned by a title search.
// Found is false when the service returned no results.
type SearchResult struct {
	Found       bool
	PosterPath  *string
	Overview    string
	ReleaseDate string
	VoteAverage float64
}

// Searcher looks a title up in an external metadata service.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) (*SearchResult, error)
}

// Waiter blocks until the caller may issue the next outbound request.
// *rate.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// NormalizeTitle strips a trailing parenthetical such as the release year:
// "Toy Story (1995)" becomes "Toy Story". The original title is returned
// when nothing precedes the first "(".
func NormalizeTitle(title string) string {
	before, _, _ := strings.Cut(title, "(")
	if q := strings.TrimSpace(before); q != "" {
		return q
	}
	return strings.TrimSpace(title)
}
