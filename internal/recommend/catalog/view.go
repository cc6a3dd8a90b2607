// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// GeneratedIDPrefix marks the IDs of generated items.
const GeneratedIDPrefix = "gen-"

// view is a read-only snapshot plus an optional per-request overlay of
// generated items.
type view struct {
	snap         *snapshot
	strictSeason bool
	overlay      []recommend.WardrobeItem
}

func (v *view) ItemsForSlot(slot recommend.Slot, season recommend.Season, c *recommend.Constraints) []recommend.WardrobeItem {
	owned := v.snap.bySlot[slot]
	out := make([]recommend.WardrobeItem, 0, len(owned))
	for _, it := range owned {
		if v.eligible(it, season, c) {
			out = append(out, *it)
		}
	}

	if len(v.overlay) == 0 {
		return out
	}
	for i := range v.overlay {
		it := &v.overlay[i]
		if it.Slot == slot && v.eligible(it, season, c) {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *view) eligible(it *recommend.WardrobeItem, season recommend.Season, c *recommend.Constraints) bool {
	if v.strictSeason && season != "" && !seasonEligible(it, season) {
		return false
	}
	if c != nil {
		if _, ok := c.Check(it); !ok {
			return false
		}
	}
	return true
}

// WithGenerated normalizes the proposals and overlays them on the view.
// Proposals that fail validation are dropped. Missing or colliding IDs are
// replaced with fresh generated IDs.
func (v *view) WithGenerated(items []recommend.WardrobeItem) recommend.InventoryView {
	next := &view{
		snap:         v.snap,
		strictSeason: v.strictSeason,
		overlay:      make([]recommend.WardrobeItem, len(v.overlay), len(v.overlay)+len(items)),
	}
	copy(next.overlay, v.overlay)

	taken := make(map[string]struct{}, len(next.overlay))
	for i := range next.overlay {
		taken[next.overlay[i].ID] = struct{}{}
	}

	for i := range items {
		it := items[i]
		it.ID = strings.TrimSpace(it.ID)
		if _, owned := v.snap.items[it.ID]; owned || it.ID == "" {
			it.ID = GeneratedIDPrefix + uuid.NewString()
		} else if _, dup := taken[it.ID]; dup {
			it.ID = GeneratedIDPrefix + uuid.NewString()
		}

		normalized, err := recommend.NormalizeItem(it)
		if err != nil {
			continue
		}
		normalized.Provenance = recommend.ProvenanceGenerated
		normalized.Deprecated = false
		normalized.DeprecatedAt = nil

		taken[normalized.ID] = struct{}{}
		next.overlay = append(next.overlay, normalized)
	}
	return next
}

func (v *view) Len() int {
	return v.snap.active + len(v.overlay)
}

func (v *view) Version() uint64 {
	return v.snap.version
}
