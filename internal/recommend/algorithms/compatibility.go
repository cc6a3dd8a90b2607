// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package algorithms

import "github.com/tomtom215/wardrobe/internal/recommend"

// Compatibility is the rule-based scorer. It reports the evaluator's
// compatibility score, which the search has already computed.
type Compatibility struct{}

// NewCompatibility creates the rule-based scorer.
func NewCompatibility() *Compatibility {
	return &Compatibility{}
}

// Name returns the scorer identifier.
func (c *Compatibility) Name() string {
	return recommend.ScorerCompatibility
}

// Score returns the outfit's compatibility.
func (c *Compatibility) Score(o *recommend.Outfit, _ *recommend.ScoringContext) float64 {
	return o.Compatibility
}

// UpperBound returns the evaluator's bound on compatibility.
func (c *Compatibility) UpperBound(p *recommend.Partial, _ *recommend.ScoringContext) float64 {
	return p.Bound.Compatibility
}
