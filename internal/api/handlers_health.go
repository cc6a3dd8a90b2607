// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/wardrobe/internal/models"
)

// Health handles GET /api/v1/health.
//
// The service is "healthy" with a non-empty catalog and every collaborator
// breaker closed, "degraded" when a breaker is open or half-open, and
// "unhealthy" (503) when the catalog has no active items.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	em := h.engine.GetMetrics()

	status := "healthy"
	collaborators := make(map[string]string, len(h.collaborators))
	for name, c := range h.collaborators {
		state := c.State()
		collaborators[name] = state
		if state != "closed" {
			status = "degraded"
		}
	}

	items := h.catalog.Len()
	code := http.StatusOK
	if items == 0 {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, r, code, &models.HealthStatus{
		Status:         status,
		Version:        h.version,
		Uptime:         time.Since(h.startTime).Seconds(),
		CatalogItems:   items,
		CatalogVersion: h.catalog.Version(),
		Users:          em.Users,
		LedgerSize:     em.LedgerSize,
		Collaborators:  collaborators,
		Timestamp:      time.Now().UTC(),
	})
}
