// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Tests below touch the global logger and must not run in parallel.

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("slot", "top").Msg("hello")

	m := decodeLine(t, &buf)
	if m["message"] != "hello" || m["level"] != "info" || m["slot"] != "top" {
		t.Errorf("unexpected record: %v", m)
	}
	if _, ok := m["time"]; ok {
		t.Error("timestamp written although disabled")
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info written at warn level: %s", buf.String())
	}
	Err(errors.New("boom")).Msg("kept")
	m := decodeLine(t, &buf)
	if m["error"] != "boom" {
		t.Errorf("error field = %v", m["error"])
	}
}

func TestCtxAddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "u1")
	Ctx(ctx).Info().Msg("served")

	m := decodeLine(t, &buf)
	if m["request_id"] != "req-1" || m["user_id"] != "u1" {
		t.Errorf("context fields missing: %v", m)
	}
}

func TestCtxPrefersStoredLogger(t *testing.T) {
	var global, stored bytes.Buffer
	SetLogger(NewTestLogger(&global))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithLogger(context.Background(), NewTestLogger(&stored))
	Ctx(ctx).Info().Msg("x")

	if global.Len() != 0 || stored.Len() == 0 {
		t.Errorf("global=%q stored=%q", global.String(), stored.String())
	}
}

func TestContextIDsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || UserIDFromContext(ctx) != "" {
		t.Error("expected empty IDs")
	}
	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("request ID %q is not a UUID", id)
	}
}

func TestEventLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	el := NewEventLoggerWithLogger(l)

	ctx := ContextWithRequestID(context.Background(), "req-9")
	el.LogPublishFailed(ctx, "wardrobe.feedback.applied", errors.New("closed"))

	m := decodeLine(t, &buf)
	if m["component"] != "events" || m["topic"] != "wardrobe.feedback.applied" || m["request_id"] != "req-9" {
		t.Errorf("unexpected record: %v", m)
	}
}
