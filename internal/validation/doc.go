// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages use the
// json tag, so clients see the names they sent:
//
//	type WatchedRequest struct {
//	    MovieID int      `json:"movie_id" validate:"required,gt=0"`
//	    Rating  *float64 `json:"rating" validate:"omitempty,gte=0.5,lte=5"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    ...
//	}
//
// Errors convert to the API's VALIDATION_ERROR envelope with ToAPIError.
package validation
