// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package reranking reorders the ranked outfits of a response.
//
// The combination search returns the top outfits by composite score. Those
// often share most of their items: the same jacket and shoes with three
// different shirts. MMR (Maximal Marginal Relevance) trades some score for
// variety by penalizing outfits that overlap with ones already placed:
//
//	MMR(o) = lambda * score(o) - (1-lambda) * max sim(o, s) for s in placed
//
// where sim is the Jaccard overlap of item IDs. Lambda 1 keeps score order.
//
// Rerankers never add or drop outfits, so every returned outfit stays in
// the feedback ledger.
//
// Usage:
//
//	if cfg.DiversityLambda < 1 {
//	    engine.SetReranker(reranking.NewMMR(cfg.DiversityLambda))
//	}
package reranking
