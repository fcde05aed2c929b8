// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms implements the two scoring models behind Marquee.
//
//   - SVD: biased matrix factorization of the ratings corpus trained with
//     stochastic gradient descent. Predicts a rating for any (user, movie)
//     pair and falls back to baseline biases for users or movies it never saw.
//   - TFIDF: genre documents weighted by smoothed TF-IDF, compared pairwise
//     with cosine similarity into a dense item-by-item matrix.
//
// # Thread Safety
//
// Both models are safe for concurrent use. Training acquires an exclusive
// lock while prediction uses a shared lock. Models are trained once at
// startup and are read-only afterwards.
//
// # Determinism
//
// SVD draws its initial factors from a seeded source and visits ratings in
// input order, so identical input and seed produce identical predictions.
package algorithms
