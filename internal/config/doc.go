// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

/*
Package config loads the service configuration with koanf.

# Layers

Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/wardrobe/config.yaml
 3. Environment variables

# Environment Variables

Common settings have short names:

  - HTTP_PORT, HTTP_HOST: listener (default 0.0.0.0:8080)
  - LOG_LEVEL, LOG_FORMAT: logging (default info, json)
  - STORAGE_BACKEND: badger or memory (default badger)
  - BADGER_PATH: database directory (default /data/wardrobe)
  - CATALOG_SEED_PATH: JSON item file used to seed an empty catalog
  - GENERATIVE_URL, INTENT_URL: collaborator base URLs (unset disables)
  - CORS_ORIGINS: comma-separated origins

Any other setting can be reached with the WARDROBE_ prefix and "__" between
levels, for example WARDROBE_RECOMMEND__PREFERENCE__LEARNING_RATE=0.2.

# Example

	server:
	  port: 8080
	storage:
	  backend: badger
	  badger:
	    path: /var/lib/wardrobe
	recommend:
	  weights:
	    compatibility: 0.6
	    preference: 0.4
	  limits:
	    search_timeout: 1s
	collaborators:
	  generative_url: http://generator:9000
*/
package config
