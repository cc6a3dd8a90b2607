// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

// Package services provides suture service wrappers for the wardrobe
// server: the HTTP server and ticker-driven maintenance jobs (ledger
// cleanup, storage GC, catalog refresh). The event router implements
// suture.Service itself and needs no wrapper.
package services
