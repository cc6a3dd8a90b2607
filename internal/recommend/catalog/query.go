// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

// ErrInvalidQuery is returned for malformed attribute searches.
var ErrInvalidQuery = errors.New("invalid catalog query")

// SearchByAttribute returns the active items whose attribute matches value,
// sorted by ID. The built-in attributes are color, style, season, formality
// and slot. Any other name is looked up in the items' free attributes.
func (c *Catalog) SearchByAttribute(attribute, value string) ([]recommend.WardrobeItem, error) {
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	value = strings.TrimSpace(value)
	if attribute == "" || value == "" {
		return nil, fmt.Errorf("%w: attribute and value are required", ErrInvalidQuery)
	}

	s := c.snap.Load()
	var matches []*recommend.WardrobeItem

	switch attribute {
	case "color", "colour", "colors":
		matches = s.byColor[recommend.CanonicalColor(value)]
	case "style", "style_tag", "tag", "style_tags":
		matches = s.byTag[strings.ToLower(value)]
	case "season", "seasons":
		seasons, ok := recommend.ParseSeasons(value)
		if !ok || len(seasons) != 1 {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, &recommend.ValueError{Field: "season", Value: value})
		}
		matches = s.bySeason[seasons[0]]
	case "formality":
		f, ok := recommend.ParseFormality(value)
		if !ok {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, &recommend.ValueError{Field: "formality", Value: value})
		}
		matches = filter(s.activeSorted(), func(it *recommend.WardrobeItem) bool { return it.Formality == f })
	case "slot", "category":
		slot, ok := recommend.ParseSlot(value)
		if !ok {
			return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, &recommend.ValueError{Field: "slot", Value: value})
		}
		matches = s.bySlot[slot]
	default:
		want := strings.ToLower(value)
		matches = filter(s.activeSorted(), func(it *recommend.WardrobeItem) bool {
			return strings.ToLower(it.Attributes[attribute]) == want
		})
	}

	out := make([]recommend.WardrobeItem, len(matches))
	for i, it := range matches {
		out[i] = *it
	}
	return out, nil
}

// Popular returns the most popular active items of a slot (all slots when
// slot is empty), best first. limit <= 0 returns every item.
func (c *Catalog) Popular(slot recommend.Slot, limit int) []recommend.WardrobeItem {
	s := c.snap.Load()

	var src []*recommend.WardrobeItem
	if slot != "" {
		src = s.bySlot[slot]
	} else {
		src = s.activeSorted()
	}

	maxPurchases := 0
	for _, it := range src {
		if it.Popularity != nil && it.Popularity.Purchases > maxPurchases {
			maxPurchases = it.Popularity.Purchases
		}
	}

	type scored struct {
		item  *recommend.WardrobeItem
		score float64
	}
	ranked := make([]scored, len(src))
	for i, it := range src {
		ranked[i] = scored{item: it, score: recommend.PopularityScore(it.Popularity, maxPurchases)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].item.ID < ranked[j].item.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]recommend.WardrobeItem, len(ranked))
	for i := range ranked {
		out[i] = *ranked[i].item
	}
	return out
}

func filter(items []*recommend.WardrobeItem, keep func(*recommend.WardrobeItem) bool) []*recommend.WardrobeItem {
	var out []*recommend.WardrobeItem
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
