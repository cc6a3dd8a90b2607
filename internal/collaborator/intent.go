// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package collaborator

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wardrobe/internal/metrics"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

// IntentName labels the intent collaborator in metrics.
const IntentName = "intent"

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Request *recommend.Request `json:"request"`
}

// IntentClient turns free text into structured requests. It implements
// recommend.IntentParser.
type IntentClient struct {
	http *httpClient
	cb   *gobreaker.CircuitBreaker[*recommend.Request]
}

// NewIntentClient returns nil when no URL is configured.
//
//nolint:gocritic // config is copied once at construction
func NewIntentClient(cfg Config) *IntentClient {
	if cfg.IntentURL == "" {
		return nil
	}
	return &IntentClient{
		http: newHTTPClient(cfg.IntentURL, cfg),
		cb:   newBreaker[*recommend.Request]("intent-api", cfg.Breaker),
	}
}

// ParseIntent posts the text to /v1/parse. Every failure, including an
// empty answer, is reported as recommend.ErrIntentServiceUnavailable.
func (c *IntentClient) ParseIntent(ctx context.Context, text string) (*recommend.Request, error) {
	start := time.Now()
	req, err := c.cb.Execute(func() (*recommend.Request, error) {
		var resp parseResponse
		if err := c.http.postJSON(ctx, "/v1/parse", &parseRequest{Text: text}, &resp); err != nil {
			return nil, err
		}
		if resp.Request == nil {
			return nil, errors.New("empty parse result")
		}
		return resp.Request, nil
	})
	metrics.RecordCollaboratorCall(IntentName, outcome(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrIntentServiceUnavailable, err)
	}
	return req, nil
}

// State returns the breaker state name.
func (c *IntentClient) State() string {
	return stateToString(c.cb.State())
}

var _ recommend.IntentParser = (*IntentClient)(nil)
