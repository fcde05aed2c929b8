// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides the zerolog-based structured logger used across Marquee.
//
// A single global logger is configured once at startup from the logging
// section of the application config:
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//	logging.Warn().Err(err).Str("title", title).Msg("Metadata lookup failed")
//
// Request-scoped fields (request_id) travel through context.Context and are
// attached with Ctx:
//
//	logging.Ctx(ctx).Info().Int("user_id", id).Msg("Recommendations served")
//
// Components that hold their own logger derive it with WithComponent so the
// "component" field is present on every line they write.
//
// # slog bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that only accept a
// *slog.Logger, notably sutureslog in the supervisor tree.
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
