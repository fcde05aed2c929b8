// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package orchestrator maps user actions onto the recommendation engines and
// the history store and returns tagged results.
//
// Four actions exist:
//
//   - recommend: top-N predicted movies for a user
//   - similar: top-N movies similar to a movie
//   - history: a user's recent history with summary statistics
//   - mark_watched: append to history, then refresh recommendations
//
// Counts of zero select the configured default. Other counts must lie in
// [1, MaxResults] or the call fails with ErrInvalidArgument.
package orchestrator
