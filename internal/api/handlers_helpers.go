// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/models"
	"github.com/tomtom215/wardrobe/internal/recommend"
	"github.com/tomtom215/wardrobe/internal/recommend/catalog"
	"github.com/tomtom215/wardrobe/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: newMetadata(r),
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		ev := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Ctx(r.Context()).Error()
		}
		ev.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Int("status", status).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: newMetadata(r),
		Error:    apiErr,
	})
}

func newMetadata(r *http.Request) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// respondDomainError maps engine and catalog errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var inv *recommend.InsufficientInventoryError
	switch {
	case errors.As(err, &inv):
		respondAPIError(w, r, http.StatusUnprocessableEntity, &models.APIError{
			Code:    "INSUFFICIENT_INVENTORY",
			Message: "No eligible items for a required slot",
			Details: map[string]interface{}{"slot": inv.Slot},
		}, err)
	case errors.Is(err, recommend.ErrInvalidConstraint):
		respondError(w, r, http.StatusBadRequest, "INVALID_CONSTRAINT", err.Error(), err)
	case errors.Is(err, recommend.ErrUnknownCandidateReference):
		respondError(w, r, http.StatusNotFound, "UNKNOWN_CANDIDATE", "Outfit was not recommended to this user", err)
	case errors.Is(err, recommend.ErrInvalidFeedback), errors.Is(err, catalog.ErrInvalidQuery):
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
	case errors.Is(err, recommend.ErrInvalidItem):
		respondError(w, r, http.StatusBadRequest, "INVALID_ITEM", err.Error(), err)
	case errors.Is(err, recommend.ErrDuplicateItem):
		respondError(w, r, http.StatusConflict, "DUPLICATE_ITEM", err.Error(), err)
	case errors.Is(err, recommend.ErrItemNotFound):
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Item not found", err)
	case errors.Is(err, recommend.ErrIntentServiceUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Intent service unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}

// decodeJSON reads a JSON body into v, rejecting unknown fields and
// trailing data.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// decodeAndValidate decodes the body into v and validates it. It writes the
// error response itself and reports whether the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(r, v); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}

	return intValue, nil
}

// slotParam parses an optional slot query parameter.
func slotParam(r *http.Request) (recommend.Slot, error) {
	raw := r.URL.Query().Get("slot")
	if raw == "" {
		return "", nil
	}
	slot, ok := recommend.ParseSlot(raw)
	if !ok {
		return "", &recommend.ValueError{Field: "slot", Value: raw}
	}
	return slot, nil
}

// seasonParam parses an optional single-season query parameter.
func seasonParam(r *http.Request) (recommend.Season, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return "", nil
	}
	seasons, ok := recommend.ParseSeasons(raw)
	if !ok || len(seasons) != 1 {
		return "", &recommend.ValueError{Field: "season", Value: raw}
	}
	return seasons[0], nil
}
