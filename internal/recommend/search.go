// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"context"
	"sort"
)

// pruneEpsilon absorbs floating-point differences between a bound and the
// exact score of the same completion.
const pruneEpsilon = 1e-9

// SlotPool holds the eligible items of one required slot, sorted by ID.
type SlotPool struct {
	Slot  Slot
	Items []WardrobeItem
}

// WeightedScorer pairs a scorer with its composition weight.
type WeightedScorer struct {
	Scorer Scorer
	Weight float64
}

// SearchStats describes the work done by one search.
type SearchStats struct {
	// Evaluated counts complete outfits that were scored.
	Evaluated int

	// Pruned counts partial outfits abandoned by the bound.
	Pruned int

	// Rejected counts outfits and branches dropped per violation kind.
	Rejected map[ViolationKind]int

	// Truncated is true when the context ended the search early.
	Truncated bool
}

// SearchResult is the outcome of a combination search.
type SearchResult struct {
	// Outfits are ranked best first.
	Outfits []Outfit
	Stats   SearchStats
}

// Search enumerates outfits slot by slot with branch-and-bound pruning.
//
// A partial outfit is abandoned once the weighted sum of its scorers' upper
// bounds cannot reach the n-th best complete outfit. Bounds are admissible,
// so the result equals exhaustive enumeration.
type Search struct {
	evaluator      Evaluator
	scorers        []WeightedScorer
	disablePruning bool
}

// NewSearch creates a search over the given evaluator and scorers.
func NewSearch(evaluator Evaluator, scorers []WeightedScorer, disablePruning bool) *Search {
	return &Search{
		evaluator:      evaluator,
		scorers:        scorers,
		disablePruning: disablePruning,
	}
}

// Run returns up to topN outfits, one item per pool. It fails with
// InsufficientInventoryError when a pool is empty. Cancellation is checked
// at every expansion; a cancelled search returns what it found so far.
func (s *Search) Run(ctx context.Context, req *Request, pools []SlotPool, sc *ScoringContext, topN int) (*SearchResult, error) {
	for _, pool := range pools {
		if len(pool.Items) == 0 {
			return nil, &InsufficientInventoryError{Slot: pool.Slot}
		}
	}

	st := &searchState{
		ctx:    ctx,
		search: s,
		req:    req,
		pools:  pools,
		sc:     sc,
		total:  len(pools),
		chosen: make([]WardrobeItem, 0, len(pools)),
		top:    rankedList{n: topN},
		stats:  SearchStats{Rejected: make(map[ViolationKind]int)},
	}
	if topN > 0 && st.total > 0 {
		st.expand(0)
	}

	return &SearchResult{Outfits: st.top.items, Stats: st.stats}, nil
}

type searchState struct {
	ctx    context.Context
	search *Search
	req    *Request
	pools  []SlotPool
	sc     *ScoringContext
	total  int
	chosen []WardrobeItem
	top    rankedList
	stats  SearchStats
}

func (st *searchState) cancelled() bool {
	if st.stats.Truncated {
		return true
	}
	if st.ctx.Err() != nil {
		st.stats.Truncated = true
		return true
	}
	return false
}

func (st *searchState) expand(depth int) {
	pool := st.pools[depth].Items
	last := depth == st.total-1

	for i := range pool {
		if st.cancelled() {
			return
		}
		st.chosen = append(st.chosen[:depth], pool[i])

		if last {
			st.leaf()
			continue
		}

		bound := st.search.evaluator.Bound(st.chosen, st.total, st.req)
		if len(bound.Violations) > 0 {
			st.reject(bound.Violations)
			continue
		}
		if st.canPrune(&bound) {
			st.stats.Pruned++
			continue
		}
		st.expand(depth + 1)
	}
}

func (st *searchState) canPrune(bound *Assessment) bool {
	if st.search.disablePruning || !st.top.full() {
		return false
	}
	part := Partial{Items: st.chosen, Total: st.total, Bound: *bound}
	var ub float64
	for _, ws := range st.search.scorers {
		ub += ws.Weight * ws.Scorer.UpperBound(&part, st.sc)
	}
	return ub+pruneEpsilon < st.top.worst().Score
}

func (st *searchState) leaf() {
	a := st.search.evaluator.Evaluate(st.chosen, st.req)
	st.stats.Evaluated++
	if len(a.Violations) > 0 {
		st.reject(a.Violations)
		return
	}

	items := make([]WardrobeItem, len(st.chosen))
	copy(items, st.chosen)

	o := Outfit{
		Items:         items,
		Compatibility: a.Compatibility,
		Breakdown:     a.Breakdown,
		Scores:        make(map[string]float64, len(st.search.scorers)),
	}
	o.Key = OutfitKey(o.ItemIDs())
	for i := range items {
		if items[i].Generated() {
			o.Generated = true
			break
		}
	}
	for _, ws := range st.search.scorers {
		v := ws.Scorer.Score(&o, st.sc)
		o.Scores[ws.Scorer.Name()] = v
		o.Score += ws.Weight * v
	}
	o.Preference = o.Scores[ScorerPreference]

	st.top.offer(o)
}

func (st *searchState) reject(v Violations) {
	for _, kind := range v {
		st.stats.Rejected[kind]++
	}
}

// rankedList keeps the best n outfits, best first.
type rankedList struct {
	n     int
	items []Outfit
}

func (r *rankedList) full() bool {
	return len(r.items) >= r.n
}

func (r *rankedList) worst() *Outfit {
	return &r.items[len(r.items)-1]
}

func (r *rankedList) offer(o Outfit) {
	if r.full() && !RanksBefore(&o, r.worst()) {
		return
	}
	i := sort.Search(len(r.items), func(i int) bool { return RanksBefore(&o, &r.items[i]) })
	r.items = append(r.items, Outfit{})
	copy(r.items[i+1:], r.items[i:])
	r.items[i] = o
	if len(r.items) > r.n {
		r.items = r.items[:r.n]
	}
}

// RanksBefore is the total ranking order: composite score, then
// compatibility, then average color harmony, then lower formality
// dispersion, then outfit key.
func RanksBefore(a, b *Outfit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Compatibility != b.Compatibility {
		return a.Compatibility > b.Compatibility
	}
	if a.Breakdown.ColorHarmonyAvg != b.Breakdown.ColorHarmonyAvg {
		return a.Breakdown.ColorHarmonyAvg > b.Breakdown.ColorHarmonyAvg
	}
	if a.Breakdown.FormalityDispersion != b.Breakdown.FormalityDispersion {
		return a.Breakdown.FormalityDispersion < b.Breakdown.FormalityDispersion
	}
	return a.Key < b.Key
}
