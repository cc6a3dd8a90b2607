// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// EventLogger logs the lifecycle of domain events on the message bus.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger returns an EventLogger on the global logger.
func NewEventLogger() *EventLogger {
	return &EventLogger{logger: WithComponent("events")}
}

// NewEventLoggerWithLogger wraps a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEventLoggerWithLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{logger: logger.With().Str("component", "events").Logger()}
}

func (e *EventLogger) ctxLogger(ctx context.Context) zerolog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return e.logger.With().Str("request_id", id).Logger()
	}
	return e.logger
}

// LogEventPublished records a successful publish.
func (e *EventLogger) LogEventPublished(ctx context.Context, eventID, topic string) {
	l := e.ctxLogger(ctx)
	l.Debug().Str("event_id", eventID).Str("topic", topic).Msg("event published")
}

// LogPublishFailed records a publish that did not reach the bus.
func (e *EventLogger) LogPublishFailed(ctx context.Context, topic string, err error) {
	l := e.ctxLogger(ctx)
	l.Warn().Err(err).Str("topic", topic).Msg("event publish failed")
}

// LogEventConsumed records a handled message.
func (e *EventLogger) LogEventConsumed(eventID, topic string) {
	e.logger.Debug().Str("event_id", eventID).Str("topic", topic).Msg("event consumed")
}

// LogEventFailed records a handler error.
func (e *EventLogger) LogEventFailed(eventID, topic string, err error) {
	e.logger.Error().Err(err).Str("event_id", eventID).Str("topic", topic).Msg("event handling failed")
}

// LogRouterStarted records router startup.
func (e *EventLogger) LogRouterStarted(topics []string) {
	e.logger.Info().Strs("topics", topics).Msg("event router started")
}

// LogRouterStopped records router shutdown.
func (e *EventLogger) LogRouterStopped() {
	e.logger.Info().Msg("event router stopped")
}
