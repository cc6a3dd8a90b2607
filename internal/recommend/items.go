// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

var colorAliases = map[string]string{
	"gray":     "grey",
	"charcoal": "grey",
	"cream":    "beige",
	"tan":      "beige",
	"khaki":    "beige",
	"denim":    "blue",
}

// CanonicalColor lower-cases a color and resolves common aliases.
func CanonicalColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if alias, ok := colorAliases[c]; ok {
		return alias
	}
	return c
}

// NormalizeItem validates an item and brings its attributes into canonical
// form: lower-case, de-duplicated and sorted colors, tags and seasons.
func NormalizeItem(it WardrobeItem) (WardrobeItem, error) {
	it.ID = strings.TrimSpace(it.ID)
	if it.ID == "" {
		return it, fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if strings.Contains(it.ID, OutfitKeySeparator) {
		return it, fmt.Errorf("%w: item %s: id may not contain %q", ErrInvalidItem, it.ID, OutfitKeySeparator)
	}
	if !it.Slot.Valid() {
		slot, ok := ParseSlot(string(it.Slot))
		if !ok {
			return it, fmt.Errorf("%w: item %s: %w", ErrInvalidItem, it.ID, &ValueError{Field: "slot", Value: string(it.Slot)})
		}
		it.Slot = slot
	}
	if it.Formality != FormalityUnknown && !it.Formality.Known() {
		return it, fmt.Errorf("%w: item %s: %w", ErrInvalidItem, it.ID, &ValueError{Field: "formality", Value: fmt.Sprint(int(it.Formality))})
	}

	it.Colors = normalizeSet(it.Colors, CanonicalColor)
	it.StyleTags = normalizeSet(it.StyleTags, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})

	seen := make(map[Season]struct{}, len(it.Seasons))
	seasons := make([]Season, 0, len(it.Seasons))
	for _, raw := range it.Seasons {
		parsed, ok := ParseSeasons(string(raw))
		if !ok {
			return it, fmt.Errorf("%w: item %s: %w", ErrInvalidItem, it.ID, &ValueError{Field: "season", Value: string(raw)})
		}
		for _, s := range parsed {
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				seasons = append(seasons, s)
			}
		}
	}
	sort.Slice(seasons, func(i, j int) bool { return seasonRank(seasons[i]) < seasonRank(seasons[j]) })
	it.Seasons = seasons

	if len(it.Attributes) > 0 {
		attrs := make(map[string]string, len(it.Attributes))
		for k, v := range it.Attributes {
			attrs[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}
		it.Attributes = attrs
	}
	if it.Provenance == "" {
		it.Provenance = ProvenanceOwned
	}
	return it, nil
}

// PopularityScore combines sales signals: 0.6 popularity, 0.3 rating and
// 0.1 purchases, each normalized to [0, 1]. maxPurchases scales purchases.
func PopularityScore(p *Popularity, maxPurchases int) float64 {
	if p == nil {
		return 0
	}
	purchases := 0.0
	if maxPurchases > 0 {
		purchases = float64(p.Purchases) / float64(maxPurchases)
	}
	return 0.6*clamp01(p.Score) + 0.3*clamp01(p.Rating/5) + 0.1*clamp01(purchases)
}

func seasonRank(s Season) int {
	for i, season := range AllSeasons {
		if season == s {
			return i
		}
	}
	return len(AllSeasons)
}

func normalizeSet(values []string, canon func(string) string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = canon(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
