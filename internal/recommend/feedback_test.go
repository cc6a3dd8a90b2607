// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// memoryProfileRepo implements ProfileRepository for testing.
type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	saves    int
	saveErr  error
	loadErr  error
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: make(map[string]*Profile)}
}

func (m *memoryProfileRepo) LoadProfile(_ context.Context, userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (m *memoryProfileRepo) SaveProfile(_ context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.profiles[p.UserID] = p.Clone()
	return nil
}

// recordingPublisher implements EventPublisher for testing.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	return r.err
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.topics)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

var testTime = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func surfacedOutfit() Outfit {
	o := Outfit{
		Items: []WardrobeItem{
			{ID: "shirt", Slot: SlotTop, StyleTags: []string{"casual"}},
			{ID: "jeans", Slot: SlotBottom, StyleTags: []string{"casual"}},
		},
		Breakdown: Breakdown{ColorHarmony: 1, StyleCohesion: 1, SeasonMatch: 0.5, FormalityMatch: 0.5},
	}
	o.Key = OutfitKey(o.ItemIDs())
	return o
}

func newTestProcessor(t *testing.T) (*FeedbackProcessor, *memoryProfileRepo, *Ledger) {
	t.Helper()
	cfg := DefaultConfig()
	repo := newMemoryProfileRepo()
	store := NewProfileStore(repo, cfg.Preference.Budget)
	store.SetClock(func() time.Time { return testTime })
	ledger := NewLedger(cfg.Ledger)
	ledger.SetClock(func() time.Time { return testTime })
	return NewFeedbackProcessor(cfg.Preference, store, ledger, testLogger()), repo, ledger
}

func TestValidateFeedback(t *testing.T) {
	valid := FeedbackEvent{UserID: "u1", ItemIDs: []string{"a", "b"}, Signal: SignalLike, Timestamp: testTime}

	tests := []struct {
		name   string
		mutate func(e *FeedbackEvent)
		ok     bool
	}{
		{name: "valid", mutate: func(*FeedbackEvent) {}, ok: true},
		{name: "missing user", mutate: func(e *FeedbackEvent) { e.UserID = " " }},
		{name: "no items", mutate: func(e *FeedbackEvent) { e.ItemIDs = nil }},
		{name: "duplicate item", mutate: func(e *FeedbackEvent) { e.ItemIDs = []string{"a", "a"} }},
		{name: "empty item", mutate: func(e *FeedbackEvent) { e.ItemIDs = []string{"a", ""} }},
		{name: "separator in item id", mutate: func(e *FeedbackEvent) { e.ItemIDs = []string{"a+b"} }},
		{name: "bad signal", mutate: func(e *FeedbackEvent) { e.Signal = 2 }},
		{name: "zero timestamp", mutate: func(e *FeedbackEvent) { e.Timestamp = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := valid
			ev.ItemIDs = append([]string(nil), valid.ItemIDs...)
			tt.mutate(&ev)
			err := ValidateFeedback(ev)
			if tt.ok && err != nil {
				t.Errorf("ValidateFeedback() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidFeedback) {
				t.Errorf("ValidateFeedback() error = %v, want ErrInvalidFeedback", err)
			}
		})
	}
}

func TestFeedbackProcessor_Ingest(t *testing.T) {
	ctx := context.Background()
	fp, repo, ledger := newTestProcessor(t)
	pub := &recordingPublisher{}
	fp.SetPublisher(pub)

	o := surfacedOutfit()
	ledger.Record("u1", []Outfit{o})

	ev := FeedbackEvent{UserID: "u1", ItemIDs: []string{"jeans", "shirt"}, Signal: SignalLike, Timestamp: testTime}

	outcome, err := fp.Ingest(ctx, ev)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if outcome != OutcomeApplied {
		t.Errorf("outcome = %q, want applied", outcome)
	}

	stored := repo.profiles["u1"]
	if stored == nil {
		t.Fatal("profile was not persisted")
	}
	if stored.Updates != 1 {
		t.Errorf("Updates = %d, want 1", stored.Updates)
	}
	if stored.Weights[TagFeature("casual")] <= 0 {
		t.Errorf("casual affinity = %v, want > 0", stored.Weights[TagFeature("casual")])
	}
	if pub.count() != 1 {
		t.Errorf("published %d events, want 1", pub.count())
	}

	t.Run("replay is a silent no-op", func(t *testing.T) {
		before := repo.profiles["u1"].Clone()
		saves := repo.saves

		outcome, err := fp.Ingest(ctx, ev)
		if err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if outcome != OutcomeDuplicate {
			t.Errorf("outcome = %q, want duplicate", outcome)
		}
		if repo.saves != saves {
			t.Error("duplicate feedback was persisted")
		}
		after := repo.profiles["u1"]
		if after.Updates != before.Updates {
			t.Errorf("Updates = %d, want %d", after.Updates, before.Updates)
		}
		for k, v := range before.Weights {
			if after.Weights[k] != v {
				t.Errorf("w[%s] = %v, want %v", k, after.Weights[k], v)
			}
		}
		if pub.count() != 1 {
			t.Errorf("published %d events, want 1", pub.count())
		}
	})

	t.Run("neutral counts as feedback", func(t *testing.T) {
		neutral := ev
		neutral.Signal = SignalNeutral
		neutral.Timestamp = testTime.Add(time.Minute)

		if _, err := fp.Ingest(ctx, neutral); err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if got := repo.profiles["u1"].Updates; got != 2 {
			t.Errorf("Updates = %d, want 2", got)
		}
	})
}

func TestFeedbackProcessor_ReplayAfterHistoryEviction(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Preference.AppliedEventsLimit = 2
	repo := newMemoryProfileRepo()
	store := NewProfileStore(repo, cfg.Preference.Budget)
	store.SetClock(func() time.Time { return testTime })
	ledger := NewLedger(cfg.Ledger)
	ledger.SetClock(func() time.Time { return testTime })
	fp := NewFeedbackProcessor(cfg.Preference, store, ledger, testLogger())
	ledger.Record("u1", []Outfit{surfacedOutfit()})

	event := func(i int) FeedbackEvent {
		return FeedbackEvent{
			UserID:    "u1",
			ItemIDs:   []string{"shirt", "jeans"},
			Signal:    SignalLike,
			Timestamp: testTime.Add(time.Duration(i) * time.Minute),
		}
	}
	for i := 0; i < 5; i++ {
		if outcome, err := fp.Ingest(ctx, event(i)); err != nil || outcome != OutcomeApplied {
			t.Fatalf("Ingest(%d) = %q, %v", i, outcome, err)
		}
	}

	outcome, err := fp.Ingest(ctx, event(0))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if outcome != OutcomeDuplicate {
		t.Errorf("outcome = %q, want duplicate for an event evicted from the history", outcome)
	}
	if got := repo.profiles["u1"].Updates; got != 5 {
		t.Errorf("Updates = %d, want 5", got)
	}

	if outcome, err := fp.Ingest(ctx, event(5)); err != nil || outcome != OutcomeApplied {
		t.Errorf("Ingest(newer) = %q, %v, want applied", outcome, err)
	}
}

func TestFeedbackProcessor_UnknownCandidate(t *testing.T) {
	ctx := context.Background()
	fp, repo, ledger := newTestProcessor(t)
	ledger.Record("u1", []Outfit{surfacedOutfit()})

	tests := []struct {
		name string
		ev   FeedbackEvent
	}{
		{
			name: "never surfaced",
			ev:   FeedbackEvent{UserID: "u1", ItemIDs: []string{"shirt", "boots"}, Signal: SignalLike, Timestamp: testTime},
		},
		{
			name: "surfaced to another user",
			ev:   FeedbackEvent{UserID: "u2", ItemIDs: []string{"shirt", "jeans"}, Signal: SignalLike, Timestamp: testTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fp.Ingest(ctx, tt.ev)
			if !errors.Is(err, ErrUnknownCandidateReference) {
				t.Errorf("Ingest() error = %v, want ErrUnknownCandidateReference", err)
			}
			if _, ok := repo.profiles[tt.ev.UserID]; ok {
				t.Error("profile persisted for rejected feedback")
			}
		})
	}
}

func TestFeedbackProcessor_ExpiredLedgerEntry(t *testing.T) {
	ctx := context.Background()
	fp, _, ledger := newTestProcessor(t)
	ledger.Record("u1", []Outfit{surfacedOutfit()})

	ledger.SetClock(func() time.Time { return testTime.Add(25 * time.Hour) })

	ev := FeedbackEvent{UserID: "u1", ItemIDs: []string{"shirt", "jeans"}, Signal: SignalLike, Timestamp: testTime}
	if _, err := fp.Ingest(ctx, ev); !errors.Is(err, ErrUnknownCandidateReference) {
		t.Errorf("Ingest() error = %v, want ErrUnknownCandidateReference", err)
	}
}

func TestFeedbackProcessor_SaveErrorLeavesProfileUntouched(t *testing.T) {
	ctx := context.Background()
	fp, repo, ledger := newTestProcessor(t)
	ledger.Record("u1", []Outfit{surfacedOutfit()})
	repo.saveErr = errors.New("disk full")

	ev := FeedbackEvent{UserID: "u1", ItemIDs: []string{"shirt", "jeans"}, Signal: SignalLike, Timestamp: testTime}
	if _, err := fp.Ingest(ctx, ev); err == nil {
		t.Fatal("Ingest() succeeded despite save error")
	}

	p, err := fp.profiles.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Updates != 0 || p.HasApplied(ev.Identity()) {
		t.Errorf("profile changed after failed save: %+v", p)
	}

	repo.saveErr = nil
	if outcome, err := fp.Ingest(ctx, ev); err != nil || outcome != OutcomeApplied {
		t.Errorf("retry: outcome = %q, err = %v", outcome, err)
	}
}

func TestFeedbackProcessor_PublishErrorIsNotFatal(t *testing.T) {
	ctx := context.Background()
	fp, _, ledger := newTestProcessor(t)
	fp.SetPublisher(&recordingPublisher{err: errors.New("closed")})
	ledger.Record("u1", []Outfit{surfacedOutfit()})

	ev := FeedbackEvent{UserID: "u1", ItemIDs: []string{"shirt", "jeans"}, Signal: SignalDislike, Timestamp: testTime}
	if _, err := fp.Ingest(ctx, ev); err != nil {
		t.Errorf("Ingest() error = %v", err)
	}
}

func TestFeedbackProcessor_ConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	fp, repo, ledger := newTestProcessor(t)
	ledger.Record("u1", []Outfit{surfacedOutfit()})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := FeedbackEvent{
				UserID:    "u1",
				ItemIDs:   []string{"shirt", "jeans"},
				Signal:    SignalLike,
				Timestamp: testTime.Add(time.Duration(i) * time.Second),
			}
			if _, err := fp.Ingest(ctx, ev); err != nil {
				t.Errorf("Ingest() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := repo.profiles["u1"].Updates; got != n {
		t.Errorf("Updates = %d, want %d", got, n)
	}
}

func TestProfileStore_LoadError(t *testing.T) {
	repo := newMemoryProfileRepo()
	repo.loadErr = errors.New("corrupt record")
	store := NewProfileStore(repo, 1)

	if _, err := store.Get(context.Background(), "u1"); err == nil {
		t.Error("Get() succeeded despite load error")
	}
}

func TestProfileStore_UnknownUserNotPersisted(t *testing.T) {
	repo := newMemoryProfileRepo()
	store := NewProfileStore(repo, 1)

	p, err := store.Get(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !p.ColdStart(1) || p.UserID != "new-user" {
		t.Errorf("Get() = %+v, want cold-start profile", p)
	}
	if repo.saves != 0 {
		t.Error("Get() persisted a profile")
	}
}

func TestProfileStore_LookupsDoNotGrowStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryProfileRepo()
	repo.profiles["known"] = NewProfile("known", 1, testTime)
	store := NewProfileStore(repo, 1)

	for i := 0; i < 1000; i++ {
		if _, err := store.Get(ctx, fmt.Sprintf("anon-%d", i)); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if got := store.Len(); got != 0 {
		t.Errorf("Len() = %d after unknown-user lookups, want 0", got)
	}

	p, err := store.Get(ctx, "known")
	if err != nil {
		t.Fatalf("Get(known) error = %v", err)
	}
	if p.UserID != "known" {
		t.Errorf("Get(known).UserID = %q", p.UserID)
	}
	if got := store.Len(); got != 1 {
		t.Errorf("Len() = %d after loading a stored profile, want 1", got)
	}

	if _, err := store.Update(ctx, "anon-1", func(p *Profile) (bool, error) {
		p.Updates++
		return true, nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := store.Len(); got != 2 {
		t.Errorf("Len() = %d after first update, want 2", got)
	}
	got, err := store.Get(ctx, "anon-1")
	if err != nil {
		t.Fatalf("Get(anon-1) error = %v", err)
	}
	if got.Updates != 1 {
		t.Errorf("Get(anon-1).Updates = %d, want 1", got.Updates)
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger(LedgerConfig{TTL: time.Hour, MaxEntries: 2})
	now := testTime
	l.SetClock(func() time.Time { return now })

	o := surfacedOutfit()
	l.Record("u1", []Outfit{o})

	s, ok := l.Lookup("u1", o.Key)
	if !ok {
		t.Fatal("Lookup() missed a recorded outfit")
	}
	if s.Features[TagFeature("casual")] != 1 {
		t.Errorf("captured casual share = %v, want 1", s.Features[TagFeature("casual")])
	}
	if _, ok := l.Lookup("u2", o.Key); ok {
		t.Error("Lookup() found another user's outfit")
	}

	now = now.Add(2 * time.Hour)
	if _, ok := l.Lookup("u1", o.Key); ok {
		t.Error("Lookup() returned an expired outfit")
	}
}
