// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/models"
	"github.com/tomtom215/wardrobe/internal/recommend"
	"github.com/tomtom215/wardrobe/internal/recommend/algorithms"
	"github.com/tomtom215/wardrobe/internal/recommend/catalog"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
)

// newSeededServer wires the real engine and catalog over an in-memory store.
func newSeededServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	repo := storage.NewRepository(storage.NewMemoryKV())
	cat := catalog.New(repo, catalog.DefaultConfig(), zerolog.Nop())
	if _, err := cat.SeedIfEmpty(ctx, catalog.DefaultSeed()); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}

	cfg := recommend.DefaultConfig()
	reg, err := recommend.OpenRegistry(cat, recommend.NewProfileStore(repo, cfg.Preference.Budget))
	if err != nil {
		t.Fatalf("OpenRegistry: %v", err)
	}
	eng, err := recommend.NewEngine(cfg, reg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	eng.SetEvaluator(algorithms.NewRules(cfg.Compatibility))
	eng.RegisterScorer(algorithms.NewCompatibility())
	eng.RegisterScorer(algorithms.NewPreference())

	return newTestServer(eng, cat)
}

func TestRecommendFeedbackRoundTrip(t *testing.T) {
	srv := newSeededServer(t)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/outfits/recommend",
		`{"user_id":"carol","request":{"occasion":"casual","season":"summer"},"top_n":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp recommend.Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Outfits) == 0 {
		t.Fatal("no outfits recommended from the seed catalog")
	}
	if resp.Metadata.RequestID != env.Metadata.RequestID {
		t.Errorf("engine request id %q differs from envelope %q", resp.Metadata.RequestID, env.Metadata.RequestID)
	}

	ids := make([]string, len(resp.Outfits[0].Items))
	for i, it := range resp.Outfits[0].Items {
		ids[i] = `"` + it.ID + `"`
	}
	feedback := fmt.Sprintf(`{"user_id":"carol","item_ids":[%s],"signal":1,"timestamp":"2026-07-01T10:00:00Z"}`,
		strings.Join(ids, ","))

	for _, want := range []recommend.FeedbackOutcome{recommend.OutcomeApplied, recommend.OutcomeDuplicate} {
		rec, env = do(t, srv, http.MethodPost, "/api/v1/feedback", feedback)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("feedback status = %d, body %s", rec.Code, rec.Body.String())
		}
		var fr models.FeedbackResponse
		if err := json.Unmarshal(env.Data, &fr); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if fr.Outcome != want {
			t.Errorf("outcome = %q, want %q", fr.Outcome, want)
		}
	}

	// Another user never saw that outfit.
	rec, env = do(t, srv, http.MethodPost, "/api/v1/feedback", strings.Replace(feedback, "carol", "dave", 1))
	if rec.Code != http.StatusNotFound || env.Error.Code != "UNKNOWN_CANDIDATE" {
		t.Errorf("foreign feedback: status %d, error %+v", rec.Code, env.Error)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/profiles/carol", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}
	var p recommend.Profile
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Updates != 1 {
		t.Errorf("Updates = %d, want 1", p.Updates)
	}
}

func TestRecommendInsufficientInventory(t *testing.T) {
	srv := newSeededServer(t)

	// Excluding every seed item id of one slot leaves it empty.
	rec, env := do(t, srv, http.MethodGet, "/api/v1/catalog/items?slot=shoe", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var ir models.ItemsResponse
	if err := json.Unmarshal(env.Data, &ir); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ir.Count == 0 {
		t.Fatal("seed catalog has no shoes")
	}
	excluded := make([]string, len(ir.Items))
	for i, it := range ir.Items {
		excluded[i] = `"` + it.ID + `"`
	}

	body := fmt.Sprintf(`{"user_id":"erin","request":{"season":"summer","constraints":{"exclude_items":[%s]}}}`, strings.Join(excluded, ","))
	rec, env = do(t, srv, http.MethodPost, "/api/v1/outfits/recommend", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
	if env.Error.Details["slot"] != "shoe" {
		t.Errorf("details = %v", env.Error.Details)
	}
}
