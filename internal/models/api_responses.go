// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "..."},
//	  "error": {
//	    "code": "INSUFFICIENT_INVENTORY",
//	    "message": "No eligible items for a required slot",
//	    "details": {"slot": "shoe"}
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the engine latency for recommendation endpoints and is
// omitted elsewhere.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Codes used by the API:
//   - VALIDATION_ERROR: malformed body or parameters
//   - INVALID_CONSTRAINT: contradictory hard constraints
//   - INSUFFICIENT_INVENTORY: a required slot has no eligible items
//   - UNKNOWN_CANDIDATE: feedback for an outfit never shown to the user
//   - NOT_FOUND: unknown item
//   - DUPLICATE_ITEM / INVALID_ITEM: rejected catalog ingestion
//   - SERVICE_UNAVAILABLE: intent collaborator down or not configured
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
