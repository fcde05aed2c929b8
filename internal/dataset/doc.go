// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dataset loads the static source tables: the movie catalog and the
// ratings corpus.
//
// Both tables are CSV files with a header row. Columns are located by name so
// their order does not matter; "itemId" is accepted wherever "movieId" is.
//
//	movies.csv:  movieId,title,genres
//	ratings.csv: userId,movieId,rating,timestamp
//
// Any problem with a source table (missing file, missing column, unparseable
// row, duplicate movie) is reported as ErrSourceTable. The server treats it
// as fatal at startup.
package dataset
