// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package collaborator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Config configures the collaborator clients. An empty URL disables the
// corresponding client.
type Config struct {
	// GenerativeURL is the base URL of the candidate generation service.
	GenerativeURL string `koanf:"generative_url"`

	// IntentURL is the base URL of the request interpretation service.
	IntentURL string `koanf:"intent_url"`

	// Timeout bounds a single HTTP call.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit caps outbound calls per second per collaborator (0 = none).
	RateLimit float64 `koanf:"rate_limit"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`

	// MaxProposals caps the items requested from the generative service.
	MaxProposals int `koanf:"max_proposals"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// DefaultConfig returns the default collaborator settings, with both
// clients disabled.
func DefaultConfig() Config {
	return Config{
		Timeout:      time.Second,
		RateLimit:    20,
		Burst:        10,
		MaxProposals: 10,
		Breaker:      DefaultBreakerConfig(),
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("collaborator returned status %d: %s", e.Code, e.Body)
}

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// httpClient posts JSON to one collaborator.
type httpClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

//nolint:gocritic // config is copied once at construction
func newHTTPClient(baseURL string, cfg Config) *httpClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// postJSON sends body to path and decodes the response into out.
func (c *httpClient) postJSON(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
