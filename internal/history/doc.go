// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package history keeps each user's watch history.
//
// Two sources feed the combined history:
//
//   - Derived records are rebuilt from the ratings corpus on every start.
//   - Live records are appended by "mark as watched" and persisted to a CSV
//     file after every append.
//
// The combined history holds at most one record per (user, movie). The
// record with the later timestamp wins. On equal timestamps a Live record
// beats a Derived one, a later-appended Live record beats an earlier one, and
// the first Derived record encountered is kept.
//
// Listing is newest first. Records with equal timestamps list Live before
// Derived and later-appended before earlier.
//
// A failed write of the Live file rolls back the in-memory append and
// returns ErrPersistence, so memory and disk never diverge.
package history
