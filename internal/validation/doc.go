// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package validation wraps go-playground/validator v10 for request bodies
// and configuration.
//
// Field names in messages are JSON names. Besides the built-in tags, the
// shared validator knows:
//
//   - slot: a slot or garment category ("top", "jeans", "blazer")
//   - season: a season name or "all-season"
//   - occasion: a supported occasion (empty allowed)
//   - signal: a feedback signal in {-1, 0, 1}
//
// Example:
//
//	type feedbackBody struct {
//		OutfitKey string `json:"outfit_key" validate:"required,max=512"`
//		Signal    int    `json:"signal" validate:"signal"`
//	}
//
//	if verr := validation.ValidateStruct(&body); verr != nil {
//		apiErr := verr.ToAPIError()
//		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//		return
//	}
package validation
