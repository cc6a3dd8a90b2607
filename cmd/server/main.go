// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/wardrobe/internal/api"
	"github.com/tomtom215/wardrobe/internal/config"
	"github.com/tomtom215/wardrobe/internal/events"
	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/recommend/catalog"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
	"github.com/tomtom215/wardrobe/internal/supervisor"
	"github.com/tomtom215/wardrobe/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// startupTimeout bounds catalog loading and seeding.
const startupTimeout = time.Minute

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().Str("version", version).Msg("Starting wardrobe server")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set security.cors_origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	kv, badgerKV, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()
	repo := storage.NewRepository(kv)

	startCtx, startCancel := context.WithTimeout(context.Background(), startupTimeout)
	cat, err := initCatalog(startCtx, cfg, repo)
	startCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog")
	}

	rc, err := initRecommend(cfg, repo, cat, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.Supervisor.Tree())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	var bus *events.Bus
	if cfg.Events.Enabled {
		bus = events.NewBus(cfg.Events, logging.WithComponent("events"))
		rc.Engine.SetPublisher(bus)
		cat.SetPublisher(bus)
		tree.AddMessagingService(events.NewRouter(bus, repo, cfg.Events.AuditTopics, cfg.Events.Router))
		logging.Info().Strs("audit_topics", cfg.Events.AuditTopics).Msg("Event bus enabled")
	}

	var gc services.GarbageCollector
	if badgerKV != nil {
		gc = badgerKV
	}
	if err := addMaintenanceServices(tree, cfg, rc.Engine.Ledger(), gc, cat); err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure maintenance services")
	}

	handlerOpts := []api.HandlerOption{
		api.WithRequestTimeout(cfg.Server.RequestTimeout),
		api.WithVersion(version),
	}
	for name, c := range rc.Collaborators {
		handlerOpts = append(handlerOpts, api.WithCollaborator(name, c))
	}
	handler := api.NewHandler(rc.Engine, cat, handlerOpts...)

	chiCfg := api.DefaultChiMiddlewareConfig()
	chiCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	chiCfg.RateLimitRequests = cfg.Security.RateLimitRequests
	chiCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	chiCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	chiCfg.MaxBodyBytes = cfg.Security.MaxBodyBytes
	router := api.NewRouter(handler, chiCfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", server.Addr).
		Str("storage", cfg.Storage.Backend).
		Int("catalog_items", cat.Len()).
		Msg("Starting supervisor tree")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if bus != nil {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}

	logging.Info().Msg("Wardrobe server stopped")
}

// initCatalog loads the catalog and seeds an empty store.
func initCatalog(ctx context.Context, cfg *config.Config, repo *storage.Repository) (*catalog.Catalog, error) {
	cat := catalog.New(repo, cfg.Catalog.Options(), logging.WithComponent("catalog"))
	if err := cat.Load(ctx); err != nil {
		return nil, err
	}

	if cfg.Catalog.SeedIfEmpty && cat.Len() == 0 {
		seed := catalog.DefaultSeed()
		if cfg.Catalog.SeedPath != "" {
			var err error
			if seed, err = catalog.LoadSeedFile(cfg.Catalog.SeedPath); err != nil {
				return nil, err
			}
		}
		n, err := cat.SeedIfEmpty(ctx, seed)
		if err != nil {
			return nil, err
		}
		logging.Info().Int("items", n).Str("source", seedSource(cfg.Catalog.SeedPath)).Msg("Seeded empty catalog")
	}

	logging.Info().Int("items", cat.Len()).Uint64("version", cat.Version()).Msg("Catalog loaded")
	return cat, nil
}

func seedSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
