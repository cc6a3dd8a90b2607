// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package supervisor runs the wardrobe server's long-lived services under a
suture v4 supervisor tree.

# Layout

	wardrobe
	├── data-layer
	│   ├── ledger-cleanup   expires recommended-outfit ledger entries
	│   ├── storage-gc       badger value log GC (badger backend only)
	│   └── catalog-refresh  reloads the catalog (if RefreshInterval > 0)
	├── messaging-layer
	│   └── event-router     watermill router (if events are enabled)
	└── api-layer
	    └── http-server

Each layer is a child supervisor with its own failure counter, so a
router that keeps crashing backs off without taking the HTTP server with it.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogLogger, cfg.Supervisor.Tree())
	if err != nil {
	    return err
	}
	tree.AddDataService(ledgerCleanup)
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, timeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Restart Semantics

A service returning an error is restarted. Returning nil stops it for good
unless the supervisor itself restarts. Failures decay over FailureDecay
seconds; once the count exceeds FailureThreshold the layer waits
FailureBackoff before restarting anything.

Services that outlive ShutdownTimeout show up in UnstoppedServiceReport.
*/
package supervisor
