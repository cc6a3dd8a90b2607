// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"fmt"
	"time"
)

// Scorer names used to look up composition weights.
const (
	ScorerCompatibility = "compatibility"
	ScorerPreference    = "preference"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each scorer.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights ScorerWeights `json:"weights" koanf:"weights"`

	// Compatibility contains the attribute rule parameters.
	Compatibility CompatibilityConfig `json:"compatibility" koanf:"compatibility"`

	// Preference contains the per-user learning parameters.
	Preference PreferenceConfig `json:"preference" koanf:"preference"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Ledger controls how long surfaced outfits accept feedback.
	Ledger LedgerConfig `json:"ledger" koanf:"ledger"`

	// OccasionTags maps an occasion onto style tags favored for it.
	OccasionTags map[Occasion][]string `json:"occasion_tags" koanf:"occasion_tags"`

	// SouthernHemisphere flips the season derived from the clock.
	SouthernHemisphere bool `json:"southern_hemisphere" koanf:"southern_hemisphere"`

	// DiversityLambda trades score for item variety across the returned
	// outfits when a reranker is installed. 1 keeps pure score order.
	// Default: 1.
	DiversityLambda float64 `json:"diversity_lambda" koanf:"diversity_lambda"`

	// DisablePruning turns branch-and-bound into exhaustive enumeration.
	// Results are identical; only the search cost changes.
	DisablePruning bool `json:"disable_pruning" koanf:"disable_pruning"`
}

// ScorerWeights defines the composite score: α·compatibility + β·preference.
type ScorerWeights struct {
	// Compatibility is α, the weight of the rule-based score.
	Compatibility float64 `json:"compatibility" koanf:"compatibility"`

	// Preference is β, the weight of the learned per-user score.
	Preference float64 `json:"preference" koanf:"preference"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScorerWeights) Normalize() ScorerWeights {
	sum := w.Compatibility + w.Preference
	if sum == 0 {
		return ScorerWeights{Compatibility: 0.5, Preference: 0.5}
	}
	return ScorerWeights{
		Compatibility: w.Compatibility / sum,
		Preference:    w.Preference / sum,
	}
}

// ToMap returns the weights keyed by scorer name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScorerWeights) ToMap() map[string]float64 {
	return map[string]float64{
		ScorerCompatibility: w.Compatibility,
		ScorerPreference:    w.Preference,
	}
}

// CompatibilityConfig contains the attribute rule parameters.
type CompatibilityConfig struct {
	// ColorWeight is the weight of color harmony.
	// Default: 0.25.
	ColorWeight float64 `json:"color_weight" koanf:"color_weight"`

	// StyleWeight is the weight of style cohesion.
	// Default: 0.25.
	StyleWeight float64 `json:"style_weight" koanf:"style_weight"`

	// SeasonWeight is the weight of season match.
	// Default: 0.25.
	SeasonWeight float64 `json:"season_weight" koanf:"season_weight"`

	// FormalityWeight is the weight of formality match.
	// Default: 0.25.
	FormalityWeight float64 `json:"formality_weight" koanf:"formality_weight"`

	// MaxFormalityDispersion is the hard limit on max-min formality.
	// Outfits spreading wider are rejected.
	// Default: 3 (casual with formal is rejected, casual with business is not).
	MaxFormalityDispersion int `json:"max_formality_dispersion" koanf:"max_formality_dispersion"`
}

// Normalized returns the four sub-score weights summing to 1.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c CompatibilityConfig) Normalized() (color, style, season, formality float64) {
	sum := c.ColorWeight + c.StyleWeight + c.SeasonWeight + c.FormalityWeight
	if sum == 0 {
		return 0.25, 0.25, 0.25, 0.25
	}
	return c.ColorWeight / sum, c.StyleWeight / sum, c.SeasonWeight / sum, c.FormalityWeight / sum
}

// PreferenceConfig contains the per-user learning parameters.
type PreferenceConfig struct {
	// LearningRate is the step size of a feedback update.
	// Default: 0.1.
	LearningRate float64 `json:"learning_rate" koanf:"learning_rate"`

	// Budget is the fixed sum of every profile's weights.
	// Default: 1.0.
	Budget float64 `json:"budget" koanf:"budget"`

	// ColdStartMinFeedback is the number of feedback events a user needs
	// before personalized weights replace the default vector.
	// Default: 3.
	ColdStartMinFeedback int `json:"cold_start_min_feedback" koanf:"cold_start_min_feedback"`

	// SoftPreferenceBoost is added to the weight of each favored tag for a
	// single request.
	// Default: 0.1.
	SoftPreferenceBoost float64 `json:"soft_preference_boost" koanf:"soft_preference_boost"`

	// AppliedEventsLimit bounds the per-profile history used to drop
	// duplicate feedback. Older events are rejected by timestamp once they
	// fall out of the history.
	// Default: 1024.
	AppliedEventsLimit int `json:"applied_events_limit" koanf:"applied_events_limit"`

	// MaxTagFeatures bounds the number of tag affinity weights per profile.
	// Default: 64.
	MaxTagFeatures int `json:"max_tag_features" koanf:"max_tag_features"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is the number of outfits returned when a caller asks for 0.
	// Default: 5.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN is the maximum allowed top-N value.
	// Default: 50.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// SearchTimeout bounds a single combination search. On expiry the best
	// outfits found so far are returned.
	// Default: 2s.
	SearchTimeout time.Duration `json:"search_timeout" koanf:"search_timeout"`

	// ProposalTimeout bounds the call to the generative collaborator.
	// Default: 1500ms.
	ProposalTimeout time.Duration `json:"proposal_timeout" koanf:"proposal_timeout"`

	// MaxConcurrentSearches caps searches running at once.
	// Default: 64.
	MaxConcurrentSearches int `json:"max_concurrent_searches" koanf:"max_concurrent_searches"`
}

// LedgerConfig controls the surfaced-outfit ledger.
type LedgerConfig struct {
	// TTL is how long a surfaced outfit accepts feedback.
	// Default: 24h.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries bounds the ledger across all users.
	// Default: 100000.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScorerWeights{
			Compatibility: 0.5,
			Preference:    0.5,
		},
		Compatibility: CompatibilityConfig{
			ColorWeight:            0.25,
			StyleWeight:            0.25,
			SeasonWeight:           0.25,
			FormalityWeight:        0.25,
			MaxFormalityDispersion: 3,
		},
		Preference: PreferenceConfig{
			LearningRate:         0.1,
			Budget:               1.0,
			ColdStartMinFeedback: 3,
			SoftPreferenceBoost:  0.1,
			AppliedEventsLimit:   1024,
			MaxTagFeatures:       64,
		},
		Limits: LimitsConfig{
			DefaultTopN:           5,
			MaxTopN:               50,
			SearchTimeout:         2 * time.Second,
			ProposalTimeout:       1500 * time.Millisecond,
			MaxConcurrentSearches: 64,
		},
		Ledger: LedgerConfig{
			TTL:        24 * time.Hour,
			MaxEntries: 100000,
		},
		OccasionTags:    DefaultOccasionTags(),
		DiversityLambda: 1,
	}
}

// DefaultOccasionTags returns the built-in occasion to style mapping.
func DefaultOccasionTags() map[Occasion][]string {
	return map[Occasion][]string{
		OccasionCasual: {"casual"},
		OccasionWork:   {"business", "smart"},
		OccasionFormal: {"formal"},
		OccasionParty:  {"party", "statement"},
		OccasionSport:  {"sporty"},
		OccasionDate:   {"smart", "romantic"},
		OccasionTravel: {"casual", "comfortable"},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Weights.Compatibility < 0 || c.Weights.Preference < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}

	cc := c.Compatibility
	if cc.ColorWeight < 0 || cc.StyleWeight < 0 || cc.SeasonWeight < 0 || cc.FormalityWeight < 0 {
		return fmt.Errorf("compatibility weights must be non-negative, got %+v", cc)
	}
	maxSpread := int(MaxFormality - MinFormality)
	if cc.MaxFormalityDispersion < 0 || cc.MaxFormalityDispersion > maxSpread {
		return fmt.Errorf("compatibility.max_formality_dispersion must be in [0, %d], got %d", maxSpread, cc.MaxFormalityDispersion)
	}

	p := c.Preference
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return fmt.Errorf("preference.learning_rate must be in (0, 1], got %f", p.LearningRate)
	}
	if p.Budget <= 0 || p.Budget > 1 {
		return fmt.Errorf("preference.budget must be in (0, 1], got %f", p.Budget)
	}
	if p.ColdStartMinFeedback < 0 {
		return fmt.Errorf("preference.cold_start_min_feedback must be non-negative, got %d", p.ColdStartMinFeedback)
	}
	if p.SoftPreferenceBoost < 0 {
		return fmt.Errorf("preference.soft_preference_boost must be non-negative, got %f", p.SoftPreferenceBoost)
	}
	if p.AppliedEventsLimit < 1 {
		return fmt.Errorf("preference.applied_events_limit must be positive, got %d", p.AppliedEventsLimit)
	}
	if p.MaxTagFeatures < 0 {
		return fmt.Errorf("preference.max_tag_features must be non-negative, got %d", p.MaxTagFeatures)
	}

	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.SearchTimeout <= 0 {
		return fmt.Errorf("limits.search_timeout must be positive, got %v", c.Limits.SearchTimeout)
	}
	if c.Limits.ProposalTimeout <= 0 {
		return fmt.Errorf("limits.proposal_timeout must be positive, got %v", c.Limits.ProposalTimeout)
	}
	if c.Limits.MaxConcurrentSearches < 1 {
		return fmt.Errorf("limits.max_concurrent_searches must be positive, got %d", c.Limits.MaxConcurrentSearches)
	}

	if c.Ledger.TTL <= 0 {
		return fmt.Errorf("ledger.ttl must be positive, got %v", c.Ledger.TTL)
	}
	if c.Ledger.MaxEntries < 1 {
		return fmt.Errorf("ledger.max_entries must be positive, got %d", c.Ledger.MaxEntries)
	}

	if c.DiversityLambda < 0 || c.DiversityLambda > 1 {
		return fmt.Errorf("diversity_lambda must be in [0, 1], got %f", c.DiversityLambda)
	}

	for occ := range c.OccasionTags {
		if !occ.Valid() {
			return fmt.Errorf("occasion_tags: unknown occasion %q", occ)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.OccasionTags = make(map[Occasion][]string, len(c.OccasionTags))
	for occ, tags := range c.OccasionTags {
		clone.OccasionTags[occ] = append([]string(nil), tags...)
	}
	return &clone
}
