// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

const (
	// PosterPlaceholder is shown when the metadata service has no poster
	// or no match for a title.
	PosterPlaceholder = "https://via.placeholder.com/500x750?text=No+Poster+Available"

	// PosterErrorPlaceholder is shown when the lookup itself failed.
	PosterErrorPlaceholder = "https://via.placeholder.com/500x750?text=Error+Loading+Poster"
)

// MetadataResult is the enrichment payload attached to every result row.
type MetadataResult struct {
	PosterURL   string  `json:"poster_url"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// NoDataMetadata is returned (and cached) when the service found no match.
func NoDataMetadata() MetadataResult {
	return MetadataResult{PosterURL: PosterPlaceholder}
}

// ErrorMetadata is returned (never cached) when the lookup failed.
func ErrorMetadata() MetadataResult {
	return MetadataResult{PosterURL: PosterErrorPlaceholder}
}

// IsError reports whether m is the failure placeholder.
func (m MetadataResult) IsError() bool {
	return m.PosterURL == PosterErrorPlaceholder
}
