// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package models

import (
	"time"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// RecommendRequest is the body of POST /api/v1/outfits/recommend.
type RecommendRequest struct {
	UserID  string            `json:"user_id" validate:"required,max=128"`
	Request recommend.Request `json:"request"`
	TopN    int               `json:"top_n" validate:"omitempty,min=1,max=50"`
}

// IntentRequest is the body of POST /api/v1/outfits/intent.
type IntentRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Text   string `json:"text" validate:"required,max=1000"`
	TopN   int    `json:"top_n" validate:"omitempty,min=1,max=50"`
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	UserID    string           `json:"user_id" validate:"required,max=128"`
	ItemIDs   []string         `json:"item_ids" validate:"required,min=1,max=10,dive,required"`
	Signal    recommend.Signal `json:"signal" validate:"signal"`
	Timestamp time.Time        `json:"timestamp" validate:"required"`
}

// Event converts the request into an engine feedback event.
func (r *FeedbackRequest) Event() recommend.FeedbackEvent {
	return recommend.FeedbackEvent{
		UserID:    r.UserID,
		ItemIDs:   r.ItemIDs,
		Signal:    r.Signal,
		Timestamp: r.Timestamp,
	}
}

// FeedbackResponse reports what happened to a feedback event.
type FeedbackResponse struct {
	Outcome   recommend.FeedbackOutcome `json:"outcome"`
	OutfitKey string                    `json:"outfit_key"`
}

// IngestRequest is the body of POST /api/v1/catalog/items.
type IngestRequest struct {
	Items []recommend.WardrobeItem `json:"items" validate:"required,min=1,max=500"`
}

// ItemsResponse lists catalog items.
type ItemsResponse struct {
	Items          []recommend.WardrobeItem `json:"items"`
	Count          int                      `json:"count"`
	CatalogVersion uint64                   `json:"catalog_version"`
}

// DeprecateResponse reports a catalog deprecation.
type DeprecateResponse struct {
	ID         string `json:"id"`
	Deprecated bool   `json:"deprecated"`
	Changed    bool   `json:"changed"`
}

// HealthStatus is returned by GET /api/v1/health.
type HealthStatus struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         float64           `json:"uptime_seconds"`
	CatalogItems   int               `json:"catalog_items"`
	CatalogVersion uint64            `json:"catalog_version"`
	Users          int               `json:"users"`
	LedgerSize     int               `json:"ledger_size"`
	Collaborators  map[string]string `json:"collaborators"`
	Timestamp      time.Time         `json:"timestamp"`
}
