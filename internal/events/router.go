// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/wardrobe/internal/cache"
	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/metrics"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
)

// RouterConfig configures the consumer router.
type RouterConfig struct {
	CloseTimeout         time.Duration `koanf:"close_timeout"`
	RetryMaxRetries      int           `koanf:"retry_max_retries" validate:"gte=0"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `koanf:"retry_max_interval"`
	RetryMultiplier      float64       `koanf:"retry_multiplier"`

	// DedupTTL bounds how long consumed message IDs are remembered.
	DedupTTL time.Duration `koanf:"dedup_ttl"`
}

// DefaultRouterConfig returns the router defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
		DedupTTL:             10 * time.Minute,
	}
}

// AuditStore persists consumed events.
type AuditStore interface {
	AppendAudit(ctx context.Context, topic string, payload []byte) (*storage.AuditRecord, error)
}

// Router consumes bus topics and writes them to the audit log. It is a
// suture.Service: each Serve call builds a fresh Watermill router, since a
// router cannot be restarted once closed.
type Router struct {
	bus    *Bus
	store  AuditStore
	topics []string
	cfg    RouterConfig
	events *logging.EventLogger
	seen   *cache.LRU[struct{}]

	runningOnce sync.Once
	running     chan struct{}
}

// NewRouter creates the audit consumer for topics.
//
//nolint:gocritic // config is copied once at construction
func NewRouter(bus *Bus, store AuditStore, topics []string, cfg RouterConfig) *Router {
	ttl := cfg.DedupTTL
	if ttl <= 0 {
		ttl = DefaultRouterConfig().DedupTTL
	}
	return &Router{
		bus:     bus,
		store:   store,
		topics:  append([]string(nil), topics...),
		cfg:     cfg,
		events:  logging.NewEventLoggerWithLogger(bus.logger),
		seen:    cache.NewLRU[struct{}](10000, ttl),
		running: make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (r *Router) Serve(ctx context.Context) error {
	router, err := r.build()
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-router.Running():
			r.runningOnce.Do(func() { close(r.running) })
		case <-ctx.Done():
		}
	}()

	r.events.LogRouterStarted(r.topics)
	err = router.Run(ctx)
	r.events.LogRouterStopped()
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

// Running is closed once the first router instance is consuming.
func (r *Router) Running() <-chan struct{} {
	return r.running
}

// String implements fmt.Stringer for suture logs.
func (r *Router) String() string {
	return "event-router"
}

func (r *Router) build() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: r.cfg.CloseTimeout}, r.bus.wmLog)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Outermost first: exhausted retries are logged and acked so the
	// in-memory bus does not redeliver forever.
	router.AddMiddleware(r.dropFailed)
	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      r.cfg.RetryMaxRetries,
		InitialInterval: r.cfg.RetryInitialInterval,
		MaxInterval:     r.cfg.RetryMaxInterval,
		Multiplier:      r.cfg.RetryMultiplier,
		Logger:          r.bus.wmLog,
	}.Middleware)

	for _, topic := range r.topics {
		router.AddConsumerHandler("audit."+topic, topic, r.bus.Subscriber(), r.handleAudit)
	}
	return router, nil
}

func (r *Router) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			r.events.LogEventFailed(msg.UUID, msg.Metadata.Get(MetadataTopic), err)
			return nil, nil
		}
		return out, nil
	}
}

func (r *Router) handleAudit(msg *message.Message) error {
	topic := msg.Metadata.Get(MetadataTopic)
	if _, dup := r.seen.Get(msg.UUID); dup {
		return nil
	}
	if topic == "" {
		err := errors.New("message without topic metadata")
		metrics.RecordEventConsumed("unknown", err)
		return err
	}

	ctx := msg.Context()
	if id := msg.Metadata.Get(MetadataRequestID); id != "" {
		ctx = logging.ContextWithRequestID(ctx, id)
	}

	_, err := r.store.AppendAudit(ctx, topic, msg.Payload)
	metrics.RecordEventConsumed(topic, err)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	r.seen.Add(msg.UUID, struct{}{})
	r.events.LogEventConsumed(msg.UUID, topic)
	return nil
}
