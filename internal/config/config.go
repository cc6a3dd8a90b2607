// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/wardrobe/internal/collaborator"
	"github.com/tomtom215/wardrobe/internal/events"
	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/recommend"
	"github.com/tomtom215/wardrobe/internal/recommend/catalog"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
	"github.com/tomtom215/wardrobe/internal/supervisor"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config holds the whole service configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Security      SecurityConfig      `koanf:"security"`
	Logging       logging.Config      `koanf:"logging"`
	Storage       StorageConfig       `koanf:"storage"`
	Catalog       CatalogConfig       `koanf:"catalog"`
	Recommend     recommend.Config    `koanf:"recommend"`
	Collaborators collaborator.Config `koanf:"collaborators"`
	Events        events.Config       `koanf:"events"`
	Supervisor    SupervisorConfig    `koanf:"supervisor"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RequestTimeout bounds a single API request.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig configures the HTTP edge.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests per RateLimitWindow per client IP.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gt=0"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	Backend string               `koanf:"backend" validate:"oneof=badger memory"`
	Badger  storage.BadgerConfig `koanf:"badger"`

	// GCInterval is how often value log GC runs (0 disables).
	GCInterval time.Duration `koanf:"gc_interval"`
}

// CatalogConfig configures the item catalog.
type CatalogConfig struct {
	StrictSeason bool `koanf:"strict_season"`

	// SeedPath is a JSON item file loaded when the store is empty. Empty
	// means the built-in seed.
	SeedPath string `koanf:"seed_path"`

	// SeedIfEmpty seeds an empty store on startup.
	SeedIfEmpty bool `koanf:"seed_if_empty"`

	// RefreshInterval reloads the catalog from storage (0 disables).
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// Options returns the catalog package configuration.
func (c CatalogConfig) Options() catalog.Config {
	return catalog.Config{StrictSeason: c.StrictSeason}
}

// SupervisorConfig configures the suture tree and its periodic jobs.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gte=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gte=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`

	// LedgerCleanupInterval is how often expired surfaced outfits are purged.
	LedgerCleanupInterval time.Duration `koanf:"ledger_cleanup_interval"`
}

// Tree returns the supervisor tree configuration.
func (s SupervisorConfig) Tree() supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: s.FailureThreshold,
		FailureDecay:     s.FailureDecay,
		FailureBackoff:   s.FailureBackoff,
		ShutdownTimeout:  s.ShutdownTimeout,
	}
}

// defaultConfig returns the built-in defaults, the lowest configuration layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
			MaxBodyBytes:      1 << 20,
		},
		Logging: logging.Config{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
		},
		Storage: StorageConfig{
			Backend: BackendBadger,
			Badger: storage.BadgerConfig{
				Path:    "/data/wardrobe",
				GCRatio: 0.5,
			},
			GCInterval: 10 * time.Minute,
		},
		Catalog: CatalogConfig{
			StrictSeason:    true,
			SeedIfEmpty:     true,
			RefreshInterval: 0,
		},
		Recommend:     *recommend.DefaultConfig(),
		Collaborators: collaborator.DefaultConfig(),
		Events:        events.DefaultConfig(),
		Supervisor: SupervisorConfig{
			FailureThreshold:      5,
			FailureDecay:          30,
			FailureBackoff:        15 * time.Second,
			ShutdownTimeout:       10 * time.Second,
			LedgerCleanupInterval: 5 * time.Minute,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}
