// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package reranking

import (
	"context"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(outfits).
const maxRerankSize = 10000

// MMR implements Maximal Marginal Relevance over outfits.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	// lambda balances score vs. variety (0.0 to 1.0)
	lambda float64
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank returns the first k outfits in MMR order. Ties keep the input
// order, so the result is deterministic for a deterministic input.
func (m *MMR) Rerank(ctx context.Context, outfits []recommend.Outfit, k int) []recommend.Outfit {
	if len(outfits) == 0 || k <= 0 {
		return outfits
	}

	if k > maxRerankSize {
		k = maxRerankSize
	}
	if k > len(outfits) {
		k = len(outfits)
	}

	if m.lambda >= 1.0 {
		return outfits[:k]
	}

	sets := make([]map[string]struct{}, len(outfits))
	for i := range outfits {
		sets[i] = itemSet(&outfits[i])
	}

	selected := make([]recommend.Outfit, 0, k)
	placed := make([]int, 0, k)
	used := make([]bool, len(outfits))

	for len(selected) < k {
		if ctx.Err() != nil {
			// Fill the rest in score order.
			for i := range outfits {
				if !used[i] && len(selected) < k {
					selected = append(selected, outfits[i])
					used[i] = true
				}
			}
			break
		}

		bestIdx := -1
		bestMMR := 0.0
		for i := range outfits {
			if used[i] {
				continue
			}

			maxSim := 0.0
			for _, j := range placed {
				if sim := jaccard(sets[i], sets[j]); sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*outfits[i].Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}

		selected = append(selected, outfits[bestIdx])
		placed = append(placed, bestIdx)
		used[bestIdx] = true
	}

	return selected
}

func itemSet(o *recommend.Outfit) map[string]struct{} {
	set := make(map[string]struct{}, len(o.Items))
	for i := range o.Items {
		set[o.Items[i].ID] = struct{}{}
	}
	return set
}

// jaccard computes |a∩b| / |a∪b|.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Ensure MMR implements the interface.
var _ recommend.Reranker = (*MMR)(nil)
