// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package recommend implements the outfit recommendation engine.
//
// # Architecture
//
// A request flows through four stages:
//
//   - Eligibility: the catalog returns, per required slot, the active items
//     that fit the season and the hard constraints.
//   - Proposals: the optional generative collaborator adds ephemeral items
//     to the slot pools for this request only.
//   - Search: slots are expanded in canonical order (top, bottom,
//     outerwear, shoe, accessory) with branch-and-bound pruning against the
//     current n-th best outfit.
//   - Recording: returned outfits are written to the surfaced ledger so
//     feedback can reference them later.
//
// The composite score of an outfit is a weighted sum over registered
// scorers, by default:
//
//	score = α · compatibility + β · preference
//
// # Design Principles
//
//   - Deterministic: with no generative collaborator, identical inputs
//     produce identical rankings. Ties break on compatibility, color
//     harmony, formality spread and finally the outfit key.
//   - Exact: scorer upper bounds are admissible, so pruning never changes
//     the result. Config.DisablePruning runs the exhaustive search.
//   - Degradable: collaborator failures become warnings, not errors.
//   - Observable: every request updates Prometheus metrics and logs one
//     structured debug line.
//
// # Preference Learning
//
// Each user has a weight vector over the compatibility sub-scores and
// per-tag affinities. Feedback takes one bounded gradient step:
//
//	w_i ← clamp(w_i + lr · signal · f_i), then renormalize to the budget
//
// Until a user has given ColdStartMinFeedback events, the population default
// weights are used for scoring.
//
// # Usage
//
//	registry, err := recommend.OpenRegistry(catalog, recommend.NewProfileStore(repo, 1.0))
//	engine, err := recommend.NewEngine(cfg, registry, logger)
//
//	engine.SetEvaluator(algorithms.NewRules(cfg.Compatibility))
//	engine.RegisterScorer(algorithms.NewCompatibility())
//	engine.RegisterScorer(algorithms.NewPreference())
//
//	resp, err := engine.Recommend(ctx, "user-1", &recommend.Request{
//	    Occasion: recommend.OccasionWork,
//	}, 5)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Searches run in parallel up to
// Limits.MaxConcurrentSearches. Profile updates are serialized per user.
package recommend
