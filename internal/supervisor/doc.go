// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under suture v4.

	RootSupervisor ("marquee")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── BackgroundSupervisor ("background-layer")
	    └── CacheMonitorService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog into the zerolog-backed slog logger from the logging
package.

Typical use from main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, 10*time.Second, logger))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor stopped")
	}
*/
package supervisor
