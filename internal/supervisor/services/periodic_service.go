// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicConfig configures a PeriodicService.
type PeriodicConfig struct {
	// Name identifies the service in suture and log output.
	Name string

	// Interval between runs. Must be positive.
	Interval time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool

	// Timeout bounds a single run (0 = Interval).
	Timeout time.Duration
}

// PeriodicService runs a task on a ticker until its context is canceled.
// A failed run is logged and retried on the next tick; it never makes the
// service exit, so suture only restarts it after a panic.
type PeriodicService struct {
	task   Task
	config PeriodicConfig
	logger zerolog.Logger

	runs     atomic.Int64
	failures atomic.Int64
}

// NewPeriodicService creates a periodic service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPeriodicService(cfg PeriodicConfig, task Task, logger zerolog.Logger) (*PeriodicService, error) {
	if task == nil {
		return nil, fmt.Errorf("periodic service %q: nil task", cfg.Name)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("periodic service %q: interval must be positive, got %v", cfg.Name, cfg.Interval)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &PeriodicService{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", cfg.Name).Logger(),
	}, nil
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.config.Interval).
		Bool("run_on_start", s.config.RunOnStart).
		Msg("periodic service starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	s.runs.Add(1)
	if err := s.task(runCtx); err != nil {
		s.failures.Add(1)
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("periodic task failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("periodic task complete")
}

// Runs returns how many times the task has run.
func (s *PeriodicService) Runs() int64 {
	return s.runs.Load()
}

// Failures returns how many runs returned an error.
func (s *PeriodicService) Failures() int64 {
	return s.failures.Load()
}

// String returns the service name for logging.
func (s *PeriodicService) String() string {
	return s.config.Name
}
