// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func sumWeights(w map[string]float64) float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights(1)
	if len(w) != len(BaseFeatures) {
		t.Fatalf("len = %d, want %d", len(w), len(BaseFeatures))
	}
	for _, name := range BaseFeatures {
		if w[name] != 0.25 {
			t.Errorf("w[%s] = %v, want 0.25", name, w[name])
		}
	}
}

func TestExtractFeatures(t *testing.T) {
	b := &Breakdown{ColorHarmony: 0.8, StyleCohesion: 0.4, SeasonMatch: 1, FormalityMatch: 0.75}
	items := []WardrobeItem{
		{ID: "a", StyleTags: []string{"casual", "denim"}},
		{ID: "b", StyleTags: []string{"casual"}},
		{ID: "c"},
		{ID: "d", StyleTags: []string{"casual"}},
	}

	f := ExtractFeatures(b, items)

	want := Features{
		FeatureColorHarmony:   0.8,
		FeatureStyleCohesion:  0.4,
		FeatureSeasonMatch:    1,
		FeatureFormalityMatch: 0.75,
		TagFeature("casual"):  0.75,
		TagFeature("denim"):   0.25,
	}
	if len(f) != len(want) {
		t.Fatalf("features = %v, want %v", f, want)
	}
	for k, v := range want {
		if f[k] != v {
			t.Errorf("f[%s] = %v, want %v", k, f[k], v)
		}
	}
}

func TestApplyFeedback_LikeIncreasesDominantFeature(t *testing.T) {
	cfg := DefaultConfig().Preference
	w := DefaultWeights(cfg.Budget)
	f := Features{
		FeatureColorHarmony:   1,
		FeatureStyleCohesion:  0.1,
		FeatureSeasonMatch:    0.1,
		FeatureFormalityMatch: 0.1,
	}

	next := ApplyFeedback(w, f, SignalLike, &cfg)

	if next[FeatureColorHarmony] <= w[FeatureColorHarmony] {
		t.Errorf("color weight %v did not increase from %v", next[FeatureColorHarmony], w[FeatureColorHarmony])
	}
	if math.Abs(sumWeights(next)-cfg.Budget) > 1e-9 {
		t.Errorf("sum = %v, want %v", sumWeights(next), cfg.Budget)
	}
}

func TestApplyFeedback_Signals(t *testing.T) {
	cfg := DefaultConfig().Preference
	w := DefaultWeights(cfg.Budget)
	f := Features{FeatureColorHarmony: 1, TagFeature("vintage"): 1}

	t.Run("neutral changes nothing", func(t *testing.T) {
		next := ApplyFeedback(w, f, SignalNeutral, &cfg)
		for k, v := range w {
			if next[k] != v {
				t.Errorf("w[%s] = %v, want %v", k, next[k], v)
			}
		}
		if _, ok := next[TagFeature("vintage")]; ok {
			t.Error("neutral feedback added a tag feature")
		}
	})

	t.Run("like adds tag feature", func(t *testing.T) {
		next := ApplyFeedback(w, f, SignalLike, &cfg)
		if next[TagFeature("vintage")] <= 0 {
			t.Errorf("tag weight = %v, want > 0", next[TagFeature("vintage")])
		}
	})

	t.Run("dislike decreases feature", func(t *testing.T) {
		next := ApplyFeedback(w, f, SignalDislike, &cfg)
		if next[FeatureColorHarmony] >= w[FeatureColorHarmony] {
			t.Errorf("color weight %v did not decrease from %v", next[FeatureColorHarmony], w[FeatureColorHarmony])
		}
		if _, ok := next[TagFeature("vintage")]; ok {
			t.Error("dislike created a tag feature")
		}
	})
}

// TestApplyFeedback_RandomSequences checks that weights stay non-negative
// and sum to the budget after arbitrary feedback.
func TestApplyFeedback_RandomSequences(t *testing.T) {
	cfg := DefaultConfig().Preference
	cfg.LearningRate = 0.5
	cfg.MaxTagFeatures = 3
	rng := rand.New(rand.NewSource(1))
	tags := []string{"casual", "formal", "sporty", "vintage", "boho", "punk"}

	w := DefaultWeights(cfg.Budget)
	for step := 0; step < 1000; step++ {
		f := Features{
			FeatureColorHarmony:   rng.Float64(),
			FeatureStyleCohesion:  rng.Float64(),
			FeatureSeasonMatch:    rng.Float64(),
			FeatureFormalityMatch: rng.Float64(),
		}
		f[TagFeature(tags[rng.Intn(len(tags))])] = rng.Float64()
		w = ApplyFeedback(w, f, Signal(rng.Intn(3)-1), &cfg)

		tagCount := 0
		for k, v := range w {
			if v < 0 {
				t.Fatalf("step %d: w[%s] = %v < 0", step, k, v)
			}
			if len(k) > len(TagFeaturePrefix) && k[:len(TagFeaturePrefix)] == TagFeaturePrefix {
				tagCount++
			}
		}
		if tagCount > cfg.MaxTagFeatures {
			t.Fatalf("step %d: %d tag features, max %d", step, tagCount, cfg.MaxTagFeatures)
		}
		if math.Abs(sumWeights(w)-cfg.Budget) > 1e-9 {
			t.Fatalf("step %d: sum = %v, want %v", step, sumWeights(w), cfg.Budget)
		}
	}
}

func TestNormalizeWeights_CollapseResetsToDefault(t *testing.T) {
	w := NormalizeWeights(map[string]float64{
		FeatureColorHarmony: -1,
		TagFeature("x"):     0,
	}, 1, 0)

	def := DefaultWeights(1)
	if len(w) != len(def) {
		t.Fatalf("w = %v, want %v", w, def)
	}
	for k, v := range def {
		if w[k] != v {
			t.Errorf("w[%s] = %v, want %v", k, w[k], v)
		}
	}
}

func TestProfile_EffectiveWeights(t *testing.T) {
	cfg := DefaultConfig().Preference
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	learned := NewProfile("u1", cfg.Budget, now)
	learned.Weights = map[string]float64{FeatureColorHarmony: 1}
	learned.Updates = cfg.ColdStartMinFeedback

	cold := learned.Clone()
	cold.Updates = cfg.ColdStartMinFeedback - 1

	t.Run("cold start uses defaults", func(t *testing.T) {
		w := cold.EffectiveWeights(&cfg, nil)
		if w[FeatureColorHarmony] != 0.25 {
			t.Errorf("w[color] = %v, want 0.25", w[FeatureColorHarmony])
		}
	})

	t.Run("warm profile uses learned weights", func(t *testing.T) {
		w := learned.EffectiveWeights(&cfg, nil)
		if w[FeatureColorHarmony] != 1 {
			t.Errorf("w[color] = %v, want 1", w[FeatureColorHarmony])
		}
	})

	t.Run("favored tags are boosted without mutating profile", func(t *testing.T) {
		w := learned.EffectiveWeights(&cfg, []string{"casual"})
		if w[TagFeature("casual")] <= 0 {
			t.Errorf("tag weight = %v, want > 0", w[TagFeature("casual")])
		}
		if math.Abs(sumWeights(w)-cfg.Budget) > 1e-9 {
			t.Errorf("sum = %v", sumWeights(w))
		}
		if _, ok := learned.Weights[TagFeature("casual")]; ok {
			t.Error("EffectiveWeights mutated the profile")
		}
	})

	t.Run("nil profile", func(t *testing.T) {
		var p *Profile
		if w := p.EffectiveWeights(&cfg, nil); len(w) != len(BaseFeatures) {
			t.Errorf("w = %v", w)
		}
	})
}

func TestProfile_MarkApplied_Bounded(t *testing.T) {
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfile("u1", 1, base)
	for i := 0; i < 10; i++ {
		p.markApplied(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute), 4)
	}
	if len(p.AppliedEvents) != 4 {
		t.Fatalf("len = %d, want 4", len(p.AppliedEvents))
	}
	if p.HasApplied("a") {
		t.Error("oldest identity was not evicted")
	}
	if !p.HasApplied("j") {
		t.Error("newest identity missing")
	}
	// f at minute 5 was the last one evicted
	if want := base.Add(5 * time.Minute); !p.AppliedThrough.Equal(want) {
		t.Errorf("AppliedThrough = %v, want %v", p.AppliedThrough, want)
	}
}

func TestProfile_Seen(t *testing.T) {
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfile("u1", 1, base)

	if p.Seen("x", base) {
		t.Error("fresh profile reports an event as seen")
	}
	for i := 0; i < 3; i++ {
		p.markApplied(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), 2)
	}

	tests := []struct {
		name     string
		identity string
		at       time.Time
		want     bool
	}{
		{name: "in history", identity: "c", at: base.Add(2 * time.Hour), want: true},
		{name: "evicted identity replayed", identity: "a", at: base, want: true},
		{name: "unseen but older than eviction", identity: "z", at: base.Add(-time.Minute), want: true},
		{name: "unseen and newer", identity: "z", at: base.Add(90 * time.Minute), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Seen(tt.identity, tt.at); got != tt.want {
				t.Errorf("Seen(%q, %v) = %v, want %v", tt.identity, tt.at, got, tt.want)
			}
		})
	}
}
