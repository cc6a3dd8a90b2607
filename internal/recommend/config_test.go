// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}

	t.Run("scorer weights are balanced", func(t *testing.T) {
		if cfg.Weights.Compatibility != 0.5 || cfg.Weights.Preference != 0.5 {
			t.Errorf("Weights = %+v, want 0.5/0.5", cfg.Weights)
		}
	})

	t.Run("formality dispersion rejects casual with formal", func(t *testing.T) {
		spread := int(FormalityFormal - FormalityCasual)
		if cfg.Compatibility.MaxFormalityDispersion >= spread {
			t.Errorf("MaxFormalityDispersion = %d, want < %d", cfg.Compatibility.MaxFormalityDispersion, spread)
		}
	})

	t.Run("limits config has valid defaults", func(t *testing.T) {
		if cfg.Limits.DefaultTopN <= 0 {
			t.Errorf("Limits.DefaultTopN = %d, want > 0", cfg.Limits.DefaultTopN)
		}
		if cfg.Limits.MaxTopN < cfg.Limits.DefaultTopN {
			t.Errorf("Limits.MaxTopN = %d, want >= DefaultTopN (%d)", cfg.Limits.MaxTopN, cfg.Limits.DefaultTopN)
		}
	})

	t.Run("every occasion has tags", func(t *testing.T) {
		for _, occ := range Occasions {
			if len(cfg.OccasionTags[occ]) == 0 {
				t.Errorf("no tags for occasion %q", occ)
			}
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "negative scorer weight", modify: func(c *Config) { c.Weights.Preference = -0.1 }, wantError: true},
		{name: "negative color weight", modify: func(c *Config) { c.Compatibility.ColorWeight = -1 }, wantError: true},
		{name: "dispersion above scale", modify: func(c *Config) { c.Compatibility.MaxFormalityDispersion = 5 }, wantError: true},
		{name: "dispersion zero allowed", modify: func(c *Config) { c.Compatibility.MaxFormalityDispersion = 0 }},
		{name: "zero learning rate", modify: func(c *Config) { c.Preference.LearningRate = 0 }, wantError: true},
		{name: "budget above one", modify: func(c *Config) { c.Preference.Budget = 2 }, wantError: true},
		{name: "negative cold start", modify: func(c *Config) { c.Preference.ColdStartMinFeedback = -1 }, wantError: true},
		{name: "zero applied events limit", modify: func(c *Config) { c.Preference.AppliedEventsLimit = 0 }, wantError: true},
		{name: "MaxTopN less than DefaultTopN", modify: func(c *Config) { c.Limits.MaxTopN = 2; c.Limits.DefaultTopN = 5 }, wantError: true},
		{name: "zero search timeout", modify: func(c *Config) { c.Limits.SearchTimeout = 0 }, wantError: true},
		{name: "zero concurrent searches", modify: func(c *Config) { c.Limits.MaxConcurrentSearches = 0 }, wantError: true},
		{name: "zero ledger ttl", modify: func(c *Config) { c.Ledger.TTL = 0 }, wantError: true},
		{name: "diversity lambda above one", modify: func(c *Config) { c.DiversityLambda = 1.5 }, wantError: true},
		{name: "unknown occasion", modify: func(c *Config) { c.OccasionTags["gala"] = []string{"formal"} }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestScorerWeights_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ScorerWeights
		want ScorerWeights
	}{
		{name: "already normalized", in: ScorerWeights{0.5, 0.5}, want: ScorerWeights{0.5, 0.5}},
		{name: "scaled", in: ScorerWeights{3, 1}, want: ScorerWeights{0.75, 0.25}},
		{name: "all zero", in: ScorerWeights{}, want: ScorerWeights{0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompatibilityConfig_Normalized(t *testing.T) {
	c := CompatibilityConfig{ColorWeight: 2, StyleWeight: 1, SeasonWeight: 1}
	color, style, season, formality := c.Normalized()
	if color != 0.5 || style != 0.25 || season != 0.25 || formality != 0 {
		t.Errorf("Normalized() = %v %v %v %v", color, style, season, formality)
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	original.Limits.SearchTimeout = 5 * time.Second

	clone := original.Clone()

	if clone.Limits.SearchTimeout != original.Limits.SearchTimeout {
		t.Errorf("clone.Limits.SearchTimeout = %v, want %v", clone.Limits.SearchTimeout, original.Limits.SearchTimeout)
	}

	clone.OccasionTags[OccasionWork][0] = "changed"
	clone.Preference.LearningRate = 0.9
	if original.OccasionTags[OccasionWork][0] == "changed" {
		t.Error("modifying clone occasion tags affected original")
	}
	if original.Preference.LearningRate == 0.9 {
		t.Error("modifying clone affected original")
	}
}
