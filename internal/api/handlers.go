// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"context"
	"time"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	Recommend(ctx context.Context, userID string, req *recommend.Request, topN int) (*recommend.Response, error)
	RecommendFromText(ctx context.Context, userID, text string, topN int) (*recommend.Response, error)
	SubmitFeedback(ctx context.Context, ev recommend.FeedbackEvent) (recommend.FeedbackOutcome, error)
	Profile(ctx context.Context, userID string) (*recommend.Profile, error)
	GetMetrics() recommend.Metrics
}

// Catalog is the catalog surface used by the handlers.
type Catalog interface {
	List(slot recommend.Slot, season recommend.Season) []recommend.WardrobeItem
	Get(id string) (recommend.WardrobeItem, error)
	Ingest(ctx context.Context, items []recommend.WardrobeItem) ([]recommend.WardrobeItem, error)
	Deprecate(ctx context.Context, id string) (bool, error)
	SearchByAttribute(attribute, value string) ([]recommend.WardrobeItem, error)
	Popular(slot recommend.Slot, limit int) []recommend.WardrobeItem
	Len() int
	Version() uint64
}

// StateReporter reports a collaborator's circuit breaker state.
type StateReporter interface {
	State() string
}

// Handler serves the wardrobe API.
type Handler struct {
	engine         Recommender
	catalog        Catalog
	collaborators  map[string]StateReporter
	requestTimeout time.Duration
	version        string
	startTime      time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCollaborator registers a collaborator for the health report.
func WithCollaborator(name string, s StateReporter) HandlerOption {
	return func(h *Handler) {
		h.collaborators[name] = s
	}
}

// WithRequestTimeout bounds engine calls made by a handler.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler creates the API handler.
func NewHandler(engine Recommender, catalog Catalog, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:         engine,
		catalog:        catalog,
		collaborators:  make(map[string]StateReporter),
		requestTimeout: 10 * time.Second,
		version:        "dev",
		startTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// withTimeout derives the per-request engine context.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}
