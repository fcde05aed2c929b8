// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP interface of the recommendation service.

Routes (all JSON, wrapped in models.APIResponse):

	GET  /api/v1/health
	GET  /api/v1/movies
	GET  /api/v1/users
	GET  /api/v1/users/{userID}/recommendations?n=&offset=
	GET  /api/v1/users/{userID}/history?limit=
	POST /api/v1/users/{userID}/watched      {"movie_id": 1, "rating": 4.5}
	GET  /api/v1/movies/{movieID}/similar?n=&offset=
	POST /api/v1/actions                      {"action": "...", "user_id": 1, "params": {...}}
	GET  /metrics                             Prometheus exposition

Middleware Stack:

Every request passes through request ID assignment, panic recovery, CORS and
an access log. /api/v1 routes add IP rate limiting (go-chi/httprate),
security headers, a per-request timeout and Prometheus instrumentation.

Error Codes:

	VALIDATION_ERROR      400  malformed body, parameter or out-of-range count
	USER_ID_INVALID       400  non-integer {userID}
	MOVIE_ID_INVALID      400  non-integer {movieID}
	MOVIE_NOT_FOUND       404  movie absent from the catalog
	HISTORY_WRITE_FAILED  500  live history could not be persisted
	INTERNAL_ERROR        500  anything else
*/
package api
