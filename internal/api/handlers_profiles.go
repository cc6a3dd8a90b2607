// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxUserIDLength matches the request body limit on user_id.
const maxUserIDLength = 128

// GetProfile handles GET /api/v1/profiles/{userID}. Unknown users get the
// cold-start profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" || len(userID) > maxUserIDLength {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID", nil)
		return
	}

	profile, err := h.engine.Profile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, profile)
}
