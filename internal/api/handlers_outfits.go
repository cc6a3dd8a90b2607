// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"

	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/models"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

// RecommendOutfits handles POST /api/v1/outfits/recommend.
func (h *Handler) RecommendOutfits(w http.ResponseWriter, r *http.Request) {
	var body models.RecommendRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	ctx, cancel := h.withTimeout(logging.ContextWithUserID(r.Context(), body.UserID))
	defer cancel()

	resp, err := h.engine.Recommend(ctx, body.UserID, &body.Request, body.TopN)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondRecommendation(w, r, resp)
}

// RecommendFromText handles POST /api/v1/outfits/intent.
func (h *Handler) RecommendFromText(w http.ResponseWriter, r *http.Request) {
	var body models.IntentRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	ctx, cancel := h.withTimeout(logging.ContextWithUserID(r.Context(), body.UserID))
	defer cancel()

	resp, err := h.engine.RecommendFromText(ctx, body.UserID, body.Text, body.TopN)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondRecommendation(w, r, resp)
}

func respondRecommendation(w http.ResponseWriter, r *http.Request, resp *recommend.Response) {
	meta := newMetadata(r)
	meta.QueryTimeMS = resp.Metadata.LatencyMS
	if meta.RequestID == "" {
		meta.RequestID = resp.Metadata.RequestID
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp,
		Metadata: meta,
	})
}
