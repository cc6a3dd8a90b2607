// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package catalog holds the attribute catalog of owned wardrobe items.

The catalog keeps an immutable snapshot of every item behind an
atomic.Pointer, indexed by slot, color, season and style tag. Readers take
the current snapshot without locking. Writers (Load, Ingest, Deprecate)
serialize on a mutex, persist the affected items through an ItemStore and
swap in a rebuilt snapshot with a higher version.

# Eligibility

ItemsForSlot returns the active items of a slot that pass the request's
hard constraints, sorted by ID:

  - season: an item is eligible when it lists the season or carries no
    season data at all (disabled with strict_season=false)
  - excluded colors and excluded item IDs
  - the formality window, applied to items with a known formality

# Generated Items

View().WithGenerated overlays proposals from the generative collaborator
for a single request. Proposals are normalized, tagged as generated and
given "gen-" IDs when missing. The overlay is never persisted.

# Seeding

An empty store is seeded from a JSON document of the form {"items": [...]}.
A small sample wardrobe is embedded for first runs.
*/
package catalog
