// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache provides a thread-safe in-memory cache with per-entry
// time-to-live.
//
// Entries record the time they were inserted and are invalidated lazily:
// an expired entry is removed the next time it is looked up, and there is
// no background sweeper. The clock is injectable so expiry can be tested
// without sleeping.
//
//	c := cache.New[models.MetadataResult](time.Hour)
//	c.Set("Toy Story (1995)", result)
//	if v, ok := c.Get("Toy Story (1995)"); ok {
//	    // fresh entry
//	}
package cache
