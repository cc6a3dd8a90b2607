// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package main

import (
	"github.com/tomtom215/wardrobe/internal/config"
	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/supervisor"
	"github.com/tomtom215/wardrobe/internal/supervisor/services"
)

// addMaintenanceServices registers the periodic jobs on the data layer.
// gc is nil unless the badger backend is in use.
func addMaintenanceServices(tree *supervisor.SupervisorTree, cfg *config.Config, ledger services.LedgerCleaner, gc services.GarbageCollector, loader services.CatalogLoader) error {
	logger := logging.WithComponent("maintenance")

	jobs := []struct {
		cfg  services.PeriodicConfig
		task services.Task
		on   bool
	}{
		{
			cfg:  services.PeriodicConfig{Name: "ledger-cleanup", Interval: cfg.Supervisor.LedgerCleanupInterval},
			task: services.LedgerCleanupTask(ledger, logger),
			on:   cfg.Supervisor.LedgerCleanupInterval > 0,
		},
		{
			cfg:  services.PeriodicConfig{Name: "storage-gc", Interval: cfg.Storage.GCInterval},
			task: services.StorageGCTask(gc),
			on:   gc != nil && cfg.Storage.GCInterval > 0,
		},
		{
			cfg:  services.PeriodicConfig{Name: "catalog-refresh", Interval: cfg.Catalog.RefreshInterval},
			task: services.CatalogRefreshTask(loader),
			on:   cfg.Catalog.RefreshInterval > 0,
		},
	}

	for _, job := range jobs {
		if !job.on {
			continue
		}
		svc, err := services.NewPeriodicService(job.cfg, job.task, logger)
		if err != nil {
			return err
		}
		tree.AddDataService(svc)
		logger.Info().Str("job", job.cfg.Name).Dur("interval", job.cfg.Interval).Msg("Maintenance job scheduled")
	}
	return nil
}
