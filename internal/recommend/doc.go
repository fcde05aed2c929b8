// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend produces ranked movie lists from the two trained models.
//
// # Components
//
//   - Predictor: biased matrix factorization (algorithms.SVD) over the
//     ratings corpus. PredictTopN ranks the whole catalog for a user.
//   - SimilarityEngine: TF-IDF genre vectors and a dense cosine similarity
//     matrix (algorithms.TFIDF). SimilarTopN ranks the catalog against a movie.
//
// Both are built once by Load and are read-only afterwards, so queries may run
// concurrently.
//
// # Unknown keys
//
// The two engines treat unknown keys differently. A user absent from the
// ratings gets a cold-start ranking from the global mean and item biases, so
// PredictTopN never fails for an unknown user. A movie absent from the
// catalog has no row in the similarity matrix, so SimilarTopN returns
// ErrNotFound.
//
// # Ordering
//
// Sorting is stable and descending by the raw score. Equal scores keep
// catalog order. Displayed scores are rounded to two decimals after ranking.
//
// # Enrichment
//
// Returned rows are passed through a MetadataLookup (typically
// *metadata.Cache). Only the rows on the requested page are looked up.
package recommend
