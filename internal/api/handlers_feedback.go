// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"

	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/models"
)

// SubmitFeedback handles POST /api/v1/feedback. Applied and duplicate
// events both answer 202; the outcome field tells them apart.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var body models.FeedbackRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	ctx, cancel := h.withTimeout(logging.ContextWithUserID(r.Context(), body.UserID))
	defer cancel()

	ev := body.Event()
	outcome, err := h.engine.SubmitFeedback(ctx, ev)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusAccepted, &models.FeedbackResponse{
		Outcome:   outcome,
		OutfitKey: ev.OutfitKey(),
	})
}
