// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts long-running Marquee components to suture.Service.

  - HTTPServerService: the API listener, with graceful shutdown on cancel
  - CacheMonitorService: periodic metadata cache gauges and debug stats

Each service returns ctx.Err() when its context is canceled, and implements
fmt.Stringer so supervisor events name it.
*/
package services
