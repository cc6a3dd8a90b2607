// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tomtom215/wardrobe/internal/validation"
)

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateCollaborators()
}

func (c *Config) validateStorage() error {
	if c.Storage.Backend == BackendBadger && !c.Storage.Badger.InMemory && c.Storage.Badger.Path == "" {
		return errors.New("storage.badger.path is required unless storage.badger.in_memory is set")
	}
	if r := c.Storage.Badger.GCRatio; r < 0 || r >= 1 {
		return fmt.Errorf("storage.badger.gc_ratio must be in [0, 1), got %f", r)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled && c.Security.RateLimitRequests > 0 && c.Security.RateLimitWindow <= 0 {
		return errors.New("security.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateCollaborators() error {
	for name, raw := range map[string]string{
		"collaborators.generative_url": c.Collaborators.GenerativeURL,
		"collaborators.intent_url":     c.Collaborators.IntentURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}
	if c.Collaborators.Timeout <= 0 {
		return errors.New("collaborators.timeout must be positive")
	}
	if r := c.Collaborators.Breaker.FailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("collaborators.breaker.failure_ratio must be in (0, 1], got %f", r)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
