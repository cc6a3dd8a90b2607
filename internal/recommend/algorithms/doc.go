// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package algorithms implements the compatibility rules and the scorer
// variants composed by the recommendation engine.
//
// # Components
//
// Rules implements recommend.Evaluator. It scores outfits from item
// attributes (color, style tags, season, formality), detects hard
// violations, and computes the admissible upper bounds that drive
// branch-and-bound pruning.
//
// Compatibility and Preference implement recommend.Scorer. The engine
// combines them by configured weights:
//
//	composite = α · compatibility + β · preference
//
// Additional scorers can be registered without changes to the search.
//
// # Color Palette
//
// The default palette encodes which color pairs complement each other.
// Same-color pairs score 0.8, pairs with a neutral 0.7, unknown colors 0.5
// and everything else clashes at 0.
//
// # Thread Safety
//
// Rules, Compatibility and Preference hold no mutable state and are safe for
// concurrent use.
package algorithms
