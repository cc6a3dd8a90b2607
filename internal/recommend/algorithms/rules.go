// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package algorithms

import (
	"sort"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// neutralScore is what an item missing an attribute contributes.
const neutralScore = 0.5

// Rules is the attribute-based compatibility evaluator.
//
// Four sub-scores in [0, 1] are combined by a weighted mean:
//   - color harmony: minimum pairwise harmony from the palette
//   - style cohesion: mean pairwise Jaccard overlap of style tags
//   - season match: share of items suited to the request season
//   - formality match: one minus the normalized spread of formality levels
//
// A single clashing color pair vetoes the outfit.
//
// Rules is stateless after construction and safe for concurrent use.
type Rules struct {
	cfg     recommend.CompatibilityConfig
	palette *Palette

	wColor, wStyle, wSeason, wFormality float64
}

// NewRules creates an evaluator with the default palette.
//
//nolint:gocritic // config is copied once at construction
func NewRules(cfg recommend.CompatibilityConfig) *Rules {
	return NewRulesWithPalette(cfg, DefaultPalette())
}

// NewRulesWithPalette creates an evaluator with a custom palette.
//
//nolint:gocritic // config is copied once at construction
func NewRulesWithPalette(cfg recommend.CompatibilityConfig, palette *Palette) *Rules {
	r := &Rules{cfg: cfg, palette: palette}
	r.wColor, r.wStyle, r.wSeason, r.wFormality = cfg.Normalized()
	return r
}

// Evaluate scores a complete outfit. Items are sorted by ID first so the
// result is bit-for-bit identical under any permutation.
func (r *Rules) Evaluate(items []recommend.WardrobeItem, req *recommend.Request) recommend.Assessment {
	sorted := sortByID(items)
	var a recommend.Assessment
	a.Violations = r.itemViolations(sorted, req)

	a.Breakdown.ColorHarmony, a.Breakdown.ColorHarmonyAvg = r.colorHarmony(sorted)
	a.Breakdown.StyleCohesion = r.styleCohesion(sorted)
	a.Breakdown.SeasonMatch = seasonSum(sorted, req.Season) / float64(max(len(sorted), 1))

	stats := formalityOf(sorted)
	a.Breakdown.FormalityDispersion = stats.dispersion()
	a.Breakdown.FormalityMatch = stats.score()

	if a.Breakdown.FormalityDispersion > r.cfg.MaxFormalityDispersion {
		a.Violations = a.Violations.Add(recommend.ViolationFormalityDispersion)
	}
	if len(sorted) > 1 && a.Breakdown.ColorHarmony == HarmonyClash {
		a.Violations = a.Violations.Add(recommend.ViolationColorClash)
	}

	a.Compatibility = r.combine(&a.Breakdown)
	return a
}

// Bound returns admissible upper bounds for any completion of items to
// total slots. Violations reported here are certain: adding items can only
// widen the formality spread or add clashing pairs.
func (r *Rules) Bound(items []recommend.WardrobeItem, total int, req *recommend.Request) recommend.Assessment {
	remaining := total - len(items)
	if remaining <= 0 {
		return r.Evaluate(items, req)
	}

	sorted := sortByID(items)
	var a recommend.Assessment
	a.Violations = r.itemViolations(sorted, req)

	totalPairs := total * (total - 1) / 2
	pairs := len(sorted) * (len(sorted) - 1) / 2
	futurePairs := totalPairs - pairs

	colorMin, colorSum := 1.0, 0.0
	styleSum := 0.0
	forEachPair(sorted, func(x, y *recommend.WardrobeItem) {
		h := r.pairHarmony(x, y)
		colorMin = min(colorMin, h)
		colorSum += h
		styleSum += pairOverlap(x, y)
	})

	a.Breakdown.ColorHarmony = colorMin
	a.Breakdown.ColorHarmonyAvg = upperMean(colorSum, futurePairs, totalPairs)
	a.Breakdown.StyleCohesion = upperMean(styleSum, futurePairs, totalPairs)
	a.Breakdown.SeasonMatch = (seasonSum(sorted, req.Season) + float64(remaining)) / float64(total)

	stats := formalityOf(sorted)
	a.Breakdown.FormalityDispersion = stats.dispersion()
	a.Breakdown.FormalityMatch = stats.upperBound(remaining, total)

	if a.Breakdown.FormalityDispersion > r.cfg.MaxFormalityDispersion {
		a.Violations = a.Violations.Add(recommend.ViolationFormalityDispersion)
	}
	if pairs > 0 && colorMin == HarmonyClash {
		a.Violations = a.Violations.Add(recommend.ViolationColorClash)
	}

	a.Compatibility = r.combine(&a.Breakdown)
	return a
}

func (r *Rules) combine(b *recommend.Breakdown) float64 {
	return r.wColor*b.ColorHarmony +
		r.wStyle*b.StyleCohesion +
		r.wSeason*b.SeasonMatch +
		r.wFormality*b.FormalityMatch
}

func (r *Rules) itemViolations(items []recommend.WardrobeItem, req *recommend.Request) recommend.Violations {
	var v recommend.Violations
	for i := range items {
		if kind, ok := req.Constraints.Check(&items[i]); !ok {
			v = v.Add(kind)
		}
	}
	return v
}

// colorHarmony returns the minimum and mean pairwise harmony.
func (r *Rules) colorHarmony(items []recommend.WardrobeItem) (minimum, mean float64) {
	if len(items) == 1 {
		if len(items[0].Colors) == 0 {
			return neutralScore, neutralScore
		}
		return 1, 1
	}
	minimum = 1
	var sum float64
	n := 0
	forEachPair(items, func(x, y *recommend.WardrobeItem) {
		h := r.pairHarmony(x, y)
		minimum = min(minimum, h)
		sum += h
		n++
	})
	if n == 0 {
		return 0, 0
	}
	return minimum, sum / float64(n)
}

// pairHarmony is the worst harmony across the two items' colors.
func (r *Rules) pairHarmony(x, y *recommend.WardrobeItem) float64 {
	if len(x.Colors) == 0 || len(y.Colors) == 0 {
		return neutralScore
	}
	worst := 1.0
	for _, a := range x.Colors {
		for _, b := range y.Colors {
			worst = min(worst, r.palette.Harmony(a, b))
		}
	}
	return worst
}

func (r *Rules) styleCohesion(items []recommend.WardrobeItem) float64 {
	if len(items) == 1 {
		if len(items[0].StyleTags) == 0 {
			return neutralScore
		}
		return 1
	}
	var sum float64
	n := 0
	forEachPair(items, func(x, y *recommend.WardrobeItem) {
		sum += pairOverlap(x, y)
		n++
	})
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func pairOverlap(x, y *recommend.WardrobeItem) float64 {
	if len(x.StyleTags) == 0 || len(y.StyleTags) == 0 {
		return neutralScore
	}
	return jaccardSimilarity(x.StyleTags, y.StyleTags)
}

// seasonSum adds 1 per item suited to the season, 0 per unsuited item and
// 0.5 per item without season data.
func seasonSum(items []recommend.WardrobeItem, season recommend.Season) float64 {
	var sum float64
	for i := range items {
		if season == "" {
			sum++
			continue
		}
		known, fits := items[i].SeasonFit(season)
		switch {
		case !known:
			sum += neutralScore
		case fits:
			sum++
		}
	}
	return sum
}

// formalityStats summarizes the formality levels of a set of items.
type formalityStats struct {
	known, unknown int
	lo, hi         recommend.Formality
}

func formalityOf(items []recommend.WardrobeItem) formalityStats {
	var s formalityStats
	for i := range items {
		f := items[i].Formality
		if !f.Known() {
			s.unknown++
			continue
		}
		if s.known == 0 || f < s.lo {
			s.lo = f
		}
		if s.known == 0 || f > s.hi {
			s.hi = f
		}
		s.known++
	}
	return s
}

func (s formalityStats) dispersion() int {
	if s.known == 0 {
		return 0
	}
	return int(s.hi - s.lo)
}

// spreadScore maps the dispersion onto [0, 1].
func (s formalityStats) spreadScore() float64 {
	return 1 - float64(s.dispersion())/float64(recommend.MaxFormality-recommend.MinFormality)
}

// score blends the spread score of known items with the neutral score of
// unknown ones.
func (s formalityStats) score() float64 {
	n := s.known + s.unknown
	if n == 0 || s.known == 0 {
		return neutralScore
	}
	return (s.spreadScore()*float64(s.known) + neutralScore*float64(s.unknown)) / float64(n)
}

// upperBound bounds the formality score once remaining items are added.
// The spread can only widen, and the blend is linear in how many of the
// remaining items are known, so the extremes suffice.
func (s formalityStats) upperBound(remaining, total int) float64 {
	spread := s.spreadScore()
	allKnown := (spread*float64(s.known+remaining) + neutralScore*float64(s.unknown)) / float64(total)
	noneKnown := neutralScore
	if s.known > 0 {
		noneKnown = (spread*float64(s.known) + neutralScore*float64(s.unknown+remaining)) / float64(total)
	}
	return max(allKnown, noneKnown)
}

func upperMean(sum float64, future, total int) float64 {
	if total == 0 {
		return 1
	}
	return (sum + float64(future)) / float64(total)
}

func forEachPair(items []recommend.WardrobeItem, fn func(x, y *recommend.WardrobeItem)) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			fn(&items[i], &items[j])
		}
	}
}

func sortByID(items []recommend.WardrobeItem) []recommend.WardrobeItem {
	sorted := make([]recommend.WardrobeItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}

var _ recommend.Evaluator = (*Rules)(nil)
