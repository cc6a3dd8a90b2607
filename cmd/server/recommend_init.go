// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/api"
	"github.com/tomtom215/wardrobe/internal/collaborator"
	"github.com/tomtom215/wardrobe/internal/config"
	"github.com/tomtom215/wardrobe/internal/recommend"
	"github.com/tomtom215/wardrobe/internal/recommend/algorithms"
	"github.com/tomtom215/wardrobe/internal/recommend/reranking"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
)

// Collaborator names reported by the health endpoint.
const (
	collaboratorGenerative = "generative"
	collaboratorIntent     = "intent"
)

// RecommendComponents holds the engine and the collaborators wired into it.
type RecommendComponents struct {
	Engine        *recommend.Engine
	Collaborators map[string]api.StateReporter
}

// initRecommend builds the engine over the catalog and the profile store.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, repo *storage.Repository, inventory recommend.Inventory, logger zerolog.Logger) (*RecommendComponents, error) {
	profiles := recommend.NewProfileStore(repo, cfg.Recommend.Preference.Budget)
	registry, err := recommend.OpenRegistry(inventory, profiles)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	engineCfg := cfg.Recommend.Clone()
	engine, err := recommend.NewEngine(engineCfg, registry, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	engine.SetEvaluator(algorithms.NewRules(engineCfg.Compatibility))
	engine.RegisterScorer(algorithms.NewCompatibility())
	engine.RegisterScorer(algorithms.NewPreference())

	if engineCfg.DiversityLambda < 1 {
		engine.SetReranker(reranking.NewMMR(engineCfg.DiversityLambda))
		logger.Info().Float64("lambda", engineCfg.DiversityLambda).Msg("MMR diversity reranking enabled")
	}

	rc := &RecommendComponents{
		Engine:        engine,
		Collaborators: make(map[string]api.StateReporter),
	}

	// The constructors return nil when no URL is configured; only non-nil
	// pointers may be stored in the interface-typed setters.
	if gen := collaborator.NewGenerativeClient(cfg.Collaborators); gen != nil {
		engine.SetProposer(gen)
		rc.Collaborators[collaboratorGenerative] = gen
		logger.Info().Str("url", cfg.Collaborators.GenerativeURL).Msg("Generative collaborator enabled")
	}
	if intent := collaborator.NewIntentClient(cfg.Collaborators); intent != nil {
		engine.SetIntentParser(intent)
		rc.Collaborators[collaboratorIntent] = intent
		logger.Info().Str("url", cfg.Collaborators.IntentURL).Msg("Intent collaborator enabled")
	}

	logger.Info().
		Float64("weight_compatibility", engineCfg.Weights.Compatibility).
		Float64("weight_preference", engineCfg.Weights.Preference).
		Int("cold_start_min_feedback", engineCfg.Preference.ColdStartMinFeedback).
		Int("collaborators", len(rc.Collaborators)).
		Msg("Recommendation engine initialized")

	return rc, nil
}
