// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package algorithms

import (
	"strings"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// Preference is the learned per-user scorer: a normalized dot product of
// the outfit's feature vector and the request's effective weights.
type Preference struct{}

// NewPreference creates the learned scorer.
func NewPreference() *Preference {
	return &Preference{}
}

// Name returns the scorer identifier.
func (p *Preference) Name() string {
	return recommend.ScorerPreference
}

// Score returns the preference score in [0, 1].
func (p *Preference) Score(o *recommend.Outfit, sc *recommend.ScoringContext) float64 {
	return recommend.PreferenceScore(sc.Weights, recommend.ExtractFeatures(&o.Breakdown, o.Items))
}

// UpperBound replaces every feature by its upper bound. Weights are
// non-negative, so the dot product of bounds bounds the dot product.
func (p *Preference) UpperBound(part *recommend.Partial, sc *recommend.ScoringContext) float64 {
	b := &part.Bound.Breakdown
	var dot, sum float64
	for _, name := range sc.WeightNames() {
		w := sc.Weights[name]
		sum += w
		switch name {
		case recommend.FeatureColorHarmony:
			dot += w * b.ColorHarmony
		case recommend.FeatureStyleCohesion:
			dot += w * b.StyleCohesion
		case recommend.FeatureFormalityMatch:
			dot += w * b.FormalityMatch
		case recommend.FeatureSeasonMatch:
			dot += w * b.SeasonMatch
		default:
			if tag, ok := strings.CutPrefix(name, recommend.TagFeaturePrefix); ok {
				dot += w * part.TagUpperBound(tag)
			}
		}
	}
	if sum == 0 {
		return 0
	}
	return min(dot/sum, 1)
}
