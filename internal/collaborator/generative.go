// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package collaborator

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wardrobe/internal/metrics"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

// GenerativeName labels the generative collaborator in metrics.
const GenerativeName = "generative"

type proposeRequest struct {
	Request  *recommend.Request `json:"request"`
	MaxItems int                `json:"max_items"`
}

type proposeResponse struct {
	Items []recommend.WardrobeItem `json:"items"`
}

// GenerativeClient asks the candidate generation service for ephemeral
// items. It implements recommend.CandidateProposer.
type GenerativeClient struct {
	http     *httpClient
	cb       *gobreaker.CircuitBreaker[[]recommend.WardrobeItem]
	maxItems int
}

// NewGenerativeClient returns nil when no URL is configured.
//
//nolint:gocritic // config is copied once at construction
func NewGenerativeClient(cfg Config) *GenerativeClient {
	if cfg.GenerativeURL == "" {
		return nil
	}
	return &GenerativeClient{
		http:     newHTTPClient(cfg.GenerativeURL, cfg),
		cb:       newBreaker[[]recommend.WardrobeItem]("generative-api", cfg.Breaker),
		maxItems: cfg.MaxProposals,
	}
}

// ProposeCandidates posts the request to /v1/propose.
func (g *GenerativeClient) ProposeCandidates(ctx context.Context, req *recommend.Request) ([]recommend.WardrobeItem, error) {
	start := time.Now()
	items, err := g.cb.Execute(func() ([]recommend.WardrobeItem, error) {
		var resp proposeResponse
		if err := g.http.postJSON(ctx, "/v1/propose", &proposeRequest{Request: req, MaxItems: g.maxItems}, &resp); err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
	metrics.RecordCollaboratorCall(GenerativeName, outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	if g.maxItems > 0 && len(items) > g.maxItems {
		items = items[:g.maxItems]
	}
	return items, nil
}

// State returns the breaker state name.
func (g *GenerativeClient) State() string {
	return stateToString(g.cb.State())
}

var _ recommend.CandidateProposer = (*GenerativeClient)(nil)
