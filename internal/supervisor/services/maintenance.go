// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package services

import (
	"context"

	"github.com/rs/zerolog"
)

// LedgerCleaner purges expired surfaced outfits.
type LedgerCleaner interface {
	Cleanup() int
}

// GarbageCollector reclaims storage space.
type GarbageCollector interface {
	RunGC() error
}

// CatalogLoader reloads the catalog snapshot from storage.
type CatalogLoader interface {
	Load(ctx context.Context) error
}

// LedgerCleanupTask drops expired entries from the surfaced-outfit ledger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LedgerCleanupTask(ledger LedgerCleaner, logger zerolog.Logger) Task {
	return func(context.Context) error {
		if n := ledger.Cleanup(); n > 0 {
			logger.Debug().Int("expired", n).Msg("surfaced ledger cleaned")
		}
		return nil
	}
}

// StorageGCTask runs value log garbage collection.
func StorageGCTask(gc GarbageCollector) Task {
	return func(context.Context) error {
		return gc.RunGC()
	}
}

// CatalogRefreshTask reloads the catalog. A failed reload keeps the
// current snapshot.
func CatalogRefreshTask(loader CatalogLoader) Task {
	return loader.Load
}
