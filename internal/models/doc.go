// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared across Marquee.

Key Components:

  - Movie, Rating: immutable source rows loaded once at startup
  - HistoryRecord, Source, HistoryStats: watch history and its provenance
  - MetadataResult: poster and overview fetched from the metadata service
  - Result: tagged recommendation/similarity/history row with enrichment
  - APIResponse, APIError, Metadata: the HTTP response envelope

All types are plain values and carry no behavior beyond small helpers.
*/
package models
