// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// ModelStatus describes a model for health reporting.
type ModelStatus struct {
	Name      string     `json:"name"`
	Trained   bool       `json:"trained"`
	Version   int        `json:"version"`
	TrainedAt *time.Time `json:"trained_at"`
}
