// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"sort"
	"strings"
	"time"
)

// Base feature names. Tag affinities use TagFeaturePrefix + tag.
const (
	FeatureColorHarmony   = "color_harmony"
	FeatureStyleCohesion  = "style_cohesion"
	FeatureFormalityMatch = "formality_match"
	FeatureSeasonMatch    = "season_match"

	TagFeaturePrefix = "tag:"
)

// BaseFeatures is the fixed part of the feature space.
var BaseFeatures = []string{
	FeatureColorHarmony,
	FeatureStyleCohesion,
	FeatureFormalityMatch,
	FeatureSeasonMatch,
}

// Features is an outfit's feature vector.
type Features map[string]float64

// TagFeature returns the feature name of a style tag.
func TagFeature(tag string) string {
	return TagFeaturePrefix + tag
}

// ExtractFeatures builds the feature vector of an outfit: the four
// compatibility sub-scores plus, per style tag, the share of items
// carrying it.
func ExtractFeatures(b *Breakdown, items []WardrobeItem) Features {
	f := Features{
		FeatureColorHarmony:   b.ColorHarmony,
		FeatureStyleCohesion:  b.StyleCohesion,
		FeatureFormalityMatch: b.FormalityMatch,
		FeatureSeasonMatch:    b.SeasonMatch,
	}
	if len(items) == 0 {
		return f
	}
	counts := make(map[string]int)
	for i := range items {
		for _, tag := range items[i].StyleTags {
			counts[tag]++
		}
	}
	for tag, n := range counts {
		f[TagFeature(tag)] = float64(n) / float64(len(items))
	}
	return f
}

// AppliedEvent is one entry of a profile's dedup history.
type AppliedEvent struct {
	Identity  string    `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
}

// Profile is a user's learned preference weights.
type Profile struct {
	// UserID is the owner of the profile.
	UserID string `json:"user_id"`

	// Weights over the feature space. Non-negative, summing to the budget.
	Weights map[string]float64 `json:"weights"`

	// Updates counts applied feedback events.
	Updates int `json:"updates"`

	// AppliedEvents holds recently applied events, oldest first.
	AppliedEvents []AppliedEvent `json:"applied_events,omitempty"`

	// AppliedThrough is the latest timestamp among events evicted from
	// AppliedEvents. Events stamped at or before it count as applied.
	AppliedThrough time.Time `json:"applied_through"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultWeights returns the population default: uniform over the base
// features, scaled to budget.
func DefaultWeights(budget float64) map[string]float64 {
	w := make(map[string]float64, len(BaseFeatures))
	for _, name := range BaseFeatures {
		w[name] = budget / float64(len(BaseFeatures))
	}
	return w
}

// NewProfile returns a cold-start profile.
func NewProfile(userID string, budget float64, now time.Time) *Profile {
	return &Profile{
		UserID:    userID,
		Weights:   DefaultWeights(budget),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Weights = make(map[string]float64, len(p.Weights))
	for k, v := range p.Weights {
		c.Weights[k] = v
	}
	c.AppliedEvents = append([]AppliedEvent(nil), p.AppliedEvents...)
	return &c
}

// ColdStart reports whether the user has too little feedback to personalize.
func (p *Profile) ColdStart(minFeedback int) bool {
	return p.Updates < minFeedback
}

// HasApplied reports whether the event identity is in the recent history.
func (p *Profile) HasApplied(identity string) bool {
	for i := range p.AppliedEvents {
		if p.AppliedEvents[i].Identity == identity {
			return true
		}
	}
	return false
}

// Seen reports whether an event must be treated as already applied: its
// identity is in the recent history, or it is no newer than the latest
// event evicted from that history.
func (p *Profile) Seen(identity string, at time.Time) bool {
	if p.HasApplied(identity) {
		return true
	}
	return !p.AppliedThrough.IsZero() && !at.After(p.AppliedThrough)
}

func (p *Profile) markApplied(identity string, at time.Time, limit int) {
	p.AppliedEvents = append(p.AppliedEvents, AppliedEvent{Identity: identity, Timestamp: at.UTC()})
	over := len(p.AppliedEvents) - limit
	if over <= 0 {
		return
	}
	for _, ev := range p.AppliedEvents[:over] {
		if ev.Timestamp.After(p.AppliedThrough) {
			p.AppliedThrough = ev.Timestamp
		}
	}
	p.AppliedEvents = append([]AppliedEvent(nil), p.AppliedEvents[over:]...)
}

// EffectiveWeights returns the weight vector used to score one request.
// Cold-start profiles use the default vector; favored tags are boosted and
// the result renormalized. The profile is not modified.
func (p *Profile) EffectiveWeights(cfg *PreferenceConfig, favored []string) map[string]float64 {
	var w map[string]float64
	if p == nil || p.ColdStart(cfg.ColdStartMinFeedback) {
		w = DefaultWeights(cfg.Budget)
	} else {
		w = make(map[string]float64, len(p.Weights)+len(favored))
		for k, v := range p.Weights {
			w[k] = v
		}
	}
	if len(favored) == 0 || cfg.SoftPreferenceBoost == 0 {
		return w
	}
	for _, tag := range favored {
		w[TagFeature(tag)] += cfg.SoftPreferenceBoost
	}
	return NormalizeWeights(w, cfg.Budget, 0)
}

// PreferenceScore is the normalized dot product of weights and features,
// in [0, 1].
func PreferenceScore(weights map[string]float64, f Features) float64 {
	var dot, sum float64
	for _, name := range sortedKeys(weights) {
		w := weights[name]
		sum += w
		dot += w * f[name]
	}
	if sum == 0 {
		return 0
	}
	return clamp01(dot / sum)
}

// ApplyFeedback takes one bounded gradient step on the weights: every
// feature present in the outfit moves by lr·signal·value, then weights are
// clamped and renormalized to the budget.
func ApplyFeedback(weights map[string]float64, f Features, signal Signal, cfg *PreferenceConfig) map[string]float64 {
	out := make(map[string]float64, len(weights)+len(f))
	for k, v := range weights {
		out[k] = v
	}
	if signal == SignalNeutral {
		return out
	}
	step := cfg.LearningRate * float64(signal)
	for _, name := range sortedKeys(f) {
		value := f[name]
		if value <= 0 {
			continue
		}
		out[name] += step * value
	}
	return NormalizeWeights(out, cfg.Budget, cfg.MaxTagFeatures)
}

// NormalizeWeights clamps every weight to [0, 1], drops the lowest tag
// weights beyond maxTags (0 = unbounded), and rescales to sum to budget.
// A vector that collapses to zero resets to the default.
func NormalizeWeights(w map[string]float64, budget float64, maxTags int) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[k] = clamp01(v)
	}
	for _, name := range BaseFeatures {
		if _, ok := out[name]; !ok {
			out[name] = 0
		}
	}

	var tags []string
	for k, v := range out {
		if strings.HasPrefix(k, TagFeaturePrefix) {
			if v == 0 {
				delete(out, k)
				continue
			}
			tags = append(tags, k)
		}
	}
	if maxTags > 0 && len(tags) > maxTags {
		sort.Slice(tags, func(i, j int) bool {
			if out[tags[i]] != out[tags[j]] {
				return out[tags[i]] > out[tags[j]]
			}
			return tags[i] < tags[j]
		})
		for _, k := range tags[maxTags:] {
			delete(out, k)
		}
	}

	var sum float64
	for _, k := range sortedKeys(out) {
		sum += out[k]
	}
	if sum == 0 {
		return DefaultWeights(budget)
	}
	scale := budget / sum
	for k, v := range out {
		out[k] = v * scale
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
