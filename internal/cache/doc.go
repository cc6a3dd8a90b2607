// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package cache provides a thread-safe, generic LRU cache with TTL support.

The recommendation engine uses it as the surfaced-outfit ledger: every outfit
returned to a user is remembered for a bounded time so that feedback can be
checked against what the user actually saw.

# Usage

	ledger := cache.NewLRU[Surfaced](100000, 24*time.Hour)
	ledger.Add(key, surfaced)
	s, ok := ledger.Get(key)

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
