// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package main

import (
	"fmt"

	"github.com/tomtom215/wardrobe/internal/config"
	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
)

// openStore opens the configured KV backend. The second return value is
// non-nil only for badger, which needs periodic GC.
func openStore(cfg *config.Config) (storage.KV, *storage.BadgerKV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logging.Warn().Msg("Using in-memory storage; catalog edits and profiles are lost on restart")
		return storage.NewMemoryKV(), nil, nil
	case config.BackendBadger:
		kv, err := storage.OpenBadger(cfg.Storage.Badger)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
