// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/logging"
	"github.com/tomtom215/wardrobe/internal/metrics"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

// ErrBusClosed is returned when publishing after Close.
var ErrBusClosed = errors.New("event bus closed")

// Metadata keys set on every published message.
const (
	MetadataRequestID = "request_id"
	MetadataTopic     = "topic"
)

// Config configures the in-process bus.
type Config struct {
	// Enabled turns on publishing. A disabled bus drops events.
	Enabled bool `koanf:"enabled"`

	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64 `koanf:"buffer_size" validate:"gte=0"`

	// AuditTopics are persisted by the audit consumer.
	AuditTopics []string `koanf:"audit_topics"`

	Router RouterConfig `koanf:"router"`
}

// DefaultConfig returns defaults that audit every domain topic.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		BufferSize: 256,
		AuditTopics: []string{
			recommend.TopicFeedbackApplied,
			recommend.TopicItemDeprecated,
			recommend.TopicCatalogItemIngested,
		},
		Router: DefaultRouterConfig(),
	}
}

// Bus is an in-process Watermill pub/sub. It implements
// recommend.EventPublisher and hands its subscriber side to the Router.
type Bus struct {
	pubsub *gochannel.GoChannel
	events *logging.EventLogger
	wmLog  watermill.LoggerAdapter
	logger zerolog.Logger
	closed atomic.Bool
}

// NewBus creates the bus.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(cfg Config, logger zerolog.Logger) *Bus {
	wmLog := NewLoggerAdapter(logger.With().Str("component", "watermill").Logger())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wmLog),
		events: logging.NewEventLoggerWithLogger(logger),
		wmLog:  wmLog,
		logger: logger,
	}
}

// Publish marshals payload to JSON and publishes it on topic. The request ID
// from ctx travels in the message metadata.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	if b.closed.Load() {
		metrics.RecordEventPublished(topic, ErrBusClosed)
		return ErrBusClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		err = fmt.Errorf("marshal %s payload: %w", topic, err)
		metrics.RecordEventPublished(topic, err)
		b.events.LogPublishFailed(ctx, topic, err)
		return err
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	if id := recommend.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataRequestID, id)
	}

	err = b.pubsub.Publish(topic, msg)
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		b.events.LogPublishFailed(ctx, topic, err)
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	b.events.LogEventPublished(ctx, msg.UUID, topic)
	return nil
}

// Subscriber returns the subscriber side of the bus.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close stops the bus. Subscribers' channels are closed.
func (b *Bus) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	return b.pubsub.Close()
}

var _ recommend.EventPublisher = (*Bus)(nil)
