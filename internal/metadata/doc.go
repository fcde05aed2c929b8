// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metadata enriches movie titles with poster, overview, release date
// and vote average from The Movie Database (TMDB).
//
// The pieces stack as follows:
//
//	Cache.Lookup(title)
//	  -> TTL cache keyed by the original title (hit: return, no wait)
//	  -> singleflight per title
//	  -> rate limiter wait (misses only)
//	  -> BreakerSearcher (sony/gobreaker)
//	  -> TMDBClient.SearchMovie (GET /search/movie)
//
// Lookup never returns an error. A title the service does not know yields
// the no-poster placeholder and is cached like a normal result. A failed
// lookup (transport error, bad status, undecodable body, open circuit,
// cancelled wait) yields the error placeholder and is not cached, so the
// next lookup for that title tries again.
package metadata
