// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewSupervisorTree(t *testing.T) {
	t.Run("requires a logger", func(t *testing.T) {
		if _, err := NewSupervisorTree(nil, TreeConfig{}); err == nil {
			t.Error("expected error for nil logger")
		}
	})

	t.Run("applies default values for zero config", func(t *testing.T) {
		tree, err := NewSupervisorTree(testLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want defaults", tree.config)
		}
		if tree.Root() == nil {
			t.Error("root supervisor should not be nil")
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		tree, _ := NewSupervisorTree(testLogger(), TreeConfig{FailureThreshold: 2, FailureBackoff: time.Second})
		if tree.config.FailureThreshold != 2 || tree.config.FailureBackoff != time.Second {
			t.Errorf("config = %+v", tree.config)
		}
		if tree.config.FailureDecay != 30 {
			t.Errorf("FailureDecay = %v, want default 30", tree.config.FailureDecay)
		}
	})
}

func TestSupervisorTreeAdd(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	if _, err := tree.Add(Layer("cache-layer"), NewMockService("x")); err == nil {
		t.Error("expected error for unknown layer")
	}

	tree.AddDataService(NewMockService("badger-gc"))
	tree.AddDataService(NewMockService("ledger-cleanup"))
	tree.AddMessagingService(NewMockService("event-router"))
	tree.AddAPIService(NewMockService("http-server"))

	got := tree.Services()
	want := map[Layer][]string{
		LayerData:      {"badger-gc", "ledger-cleanup"},
		LayerMessaging: {"event-router"},
		LayerAPI:       {"http-server"},
	}
	for layer, names := range want {
		if len(got[layer]) != len(names) {
			t.Errorf("%s: got %v, want %v", layer, got[layer], names)
			continue
		}
		for i := range names {
			if got[layer][i] != names[i] {
				t.Errorf("%s[%d] = %q, want %q", layer, i, got[layer][i], names[i])
			}
		}
	}
}

func TestSupervisorTreeStartsEveryLayer(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	svcs := map[Layer]*MockService{
		LayerData:      NewMockService("data"),
		LayerMessaging: NewMockService("messaging"),
		LayerAPI:       NewMockService("api"),
	}
	for layer, svc := range svcs {
		if _, err := tree.Add(layer, svc); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for layer, svc := range svcs {
		for svc.StartCount() < 1 {
			select {
			case <-deadline:
				t.Fatalf("%s service was not started", layer)
			case <-time.After(10 * time.Millisecond):
			}
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down in time")
	}
}

func TestSupervisorTreeRestartsFailingService(t *testing.T) {
	tree, _ := NewSupervisorTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := NewMockService("failing")
	failing.SetFailCount(2)
	stable := NewMockService("stable")

	tree.AddMessagingService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	for failing.StartCount() < 3 {
		select {
		case <-ctx.Done():
			t.Fatalf("expected at least 3 starts for failing service, got %d", failing.StartCount())
		case <-time.After(10 * time.Millisecond):
		}
	}
	if stable.StartCount() != 1 {
		t.Errorf("stable service started %d times, want 1", stable.StartCount())
	}

	cancel()
	<-errCh
}
