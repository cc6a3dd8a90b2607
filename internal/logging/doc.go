// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package logging provides the service-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Err(err).Msg("catalog refresh failed")
//
// Handlers log through Ctx, which attaches the request and user IDs placed
// in the context by the API middleware:
//
//	logging.Ctx(ctx).Info().Int("outfits", len(res.Outfits)).Msg("recommendation served")
//
// Components that keep their own logger (the engine, the catalog) take a
// zerolog.Logger built with WithComponent.
//
// # slog bridge
//
// The supervisor tree logs through sutureslog, which needs a *slog.Logger.
// NewSlogLogger returns one backed by the global zerolog logger.
//
// # Events
//
// EventLogger records publish and consume activity on the message bus with
// topic and event_id fields.
//
// Always terminate an event with Msg or Send; an unterminated event is
// silently dropped.
package logging
