// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package main is the entry point for the wardrobe server.

The server recommends outfits from a wardrobe catalog, learns per-user
preferences from like/dislike feedback and exposes both over a JSON API.

# Startup Order

 1. Configuration: defaults, optional YAML file, WARDROBE_* environment (koanf)
 2. Logging: zerolog, json or console
 3. Storage: BadgerDB, or an in-memory store when storage.backend=memory
 4. Catalog: load items, seed an empty store from the built-in or a JSON file
 5. Engine: attribute rules, compatibility and preference scorers, optional
    MMR diversity reranker, optional generative and intent collaborators
 6. Events: in-process watermill bus and audit router (events.enabled)
 7. Supervisor tree: maintenance jobs, event router, HTTP server

# Configuration

	CONFIG_PATH=/etc/wardrobe/config.yaml
	WARDROBE_SERVER__PORT=8080
	WARDROBE_STORAGE__BACKEND=memory
	WARDROBE_COLLABORATORS__GENERATIVE_URL=http://generator:9000
	WARDROBE_RECOMMEND__DIVERSITY_LAMBDA=0.7

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
within server.shutdown_timeout, then the bus and the store are closed.
*/
package main
