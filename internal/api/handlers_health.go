// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Health reports service status and catalog statistics. The catalog is
// built before the server starts, so a running server is always healthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	w.Header().Set("Cache-Control", "no-cache")
	respondSuccess(w, r, start, models.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Catalog: h.engine.Stats(),
	})
}
