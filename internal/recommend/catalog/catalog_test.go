// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/recommend"
	"github.com/tomtom215/wardrobe/internal/recommend/storage"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

type failingStore struct {
	loadErr error
	saveErr error
	items   []recommend.WardrobeItem
}

func (s *failingStore) LoadItems(context.Context) ([]recommend.WardrobeItem, error) {
	return s.items, s.loadErr
}

func (s *failingStore) SaveItems(context.Context, []recommend.WardrobeItem) error {
	return s.saveErr
}

func testItems() []recommend.WardrobeItem {
	return []recommend.WardrobeItem{
		{ID: "top-white", Slot: "shirt", Colors: []string{"White"}, StyleTags: []string{"classic"}, Seasons: []recommend.Season{"all-season"}, Formality: recommend.FormalityBusiness},
		{ID: "top-red", Slot: recommend.SlotTop, Colors: []string{"red"}, StyleTags: []string{"casual"}, Seasons: []recommend.Season{recommend.SeasonSummer}, Formality: recommend.FormalityCasual},
		{ID: "top-plain", Slot: recommend.SlotTop, Colors: []string{"grey"}, Formality: recommend.FormalityUnknown},
		{ID: "bottom-jeans", Slot: "jeans", Colors: []string{"denim"}, StyleTags: []string{"casual", "denim"}, Seasons: []recommend.Season{"all-season"}, Formality: recommend.FormalityCasual,
			Attributes: map[string]string{"Material": "Denim"}},
		{ID: "shoe-boots", Slot: "boots", Colors: []string{"brown"}, Seasons: []recommend.Season{recommend.SeasonWinter}, Formality: recommend.FormalitySmartCasual},
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *storage.Repository) {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryKV())
	c := New(repo, DefaultConfig(), zerolog.Nop())
	c.SetClock(func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) })
	if _, err := c.Ingest(context.Background(), testItems()); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return c, repo
}

func ids(items []recommend.WardrobeItem) string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return strings.Join(out, ",")
}

func TestCatalog_IngestNormalizes(t *testing.T) {
	c, _ := newTestCatalog(t)

	it, err := c.Get("top-white")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if it.Slot != recommend.SlotTop {
		t.Errorf("Slot = %q, want top", it.Slot)
	}
	if len(it.Colors) != 1 || it.Colors[0] != "white" {
		t.Errorf("Colors = %v, want [white]", it.Colors)
	}
	if len(it.Seasons) != 4 {
		t.Errorf("Seasons = %v, want all four", it.Seasons)
	}
	if it.Provenance != recommend.ProvenanceOwned {
		t.Errorf("Provenance = %q", it.Provenance)
	}
	if it.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	jeans, _ := c.Get("bottom-jeans")
	if jeans.Colors[0] != "blue" {
		t.Errorf("denim color alias = %v, want blue", jeans.Colors)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestCatalog_IngestRejects(t *testing.T) {
	tests := []struct {
		name  string
		items []recommend.WardrobeItem
		want  error
	}{
		{name: "empty batch", items: nil, want: recommend.ErrInvalidItem},
		{name: "existing id", items: []recommend.WardrobeItem{{ID: "top-red", Slot: recommend.SlotTop}}, want: recommend.ErrDuplicateItem},
		{name: "duplicate in batch", items: []recommend.WardrobeItem{
			{ID: "x", Slot: recommend.SlotTop}, {ID: "x", Slot: recommend.SlotShoe},
		}, want: recommend.ErrDuplicateItem},
		{name: "bad slot", items: []recommend.WardrobeItem{{ID: "y", Slot: "cape"}}, want: recommend.ErrInvalidItem},
		{name: "missing id", items: []recommend.WardrobeItem{{Slot: recommend.SlotTop}}, want: recommend.ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCatalog(t)
			before := c.Version()

			if _, err := c.Ingest(context.Background(), tt.items); !errors.Is(err, tt.want) {
				t.Errorf("Ingest() error = %v, want %v", err, tt.want)
			}
			if c.Version() != before {
				t.Error("rejected batch changed the snapshot")
			}
		})
	}
}

func TestCatalog_IngestPersistFailure(t *testing.T) {
	store := &failingStore{saveErr: errors.New("disk full")}
	c := New(store, DefaultConfig(), zerolog.Nop())

	if _, err := c.Ingest(context.Background(), testItems()); err == nil {
		t.Fatal("Ingest() succeeded despite store failure")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed ingest, want 0", c.Len())
	}
}

func TestCatalog_LoadRoundTrip(t *testing.T) {
	_, repo := newTestCatalog(t)

	reloaded := New(repo, DefaultConfig(), zerolog.Nop())
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Len() != 5 {
		t.Errorf("Len() = %d, want 5", reloaded.Len())
	}
}

func TestCatalog_LoadErrors(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		c := New(&failingStore{loadErr: storage.ErrCorruptRecord}, DefaultConfig(), zerolog.Nop())
		if err := c.Load(context.Background()); !errors.Is(err, storage.ErrCorruptRecord) {
			t.Errorf("Load() error = %v, want ErrCorruptRecord", err)
		}
	})

	t.Run("invalid record", func(t *testing.T) {
		c := New(&failingStore{items: []recommend.WardrobeItem{{ID: "a", Slot: "cape"}}}, DefaultConfig(), zerolog.Nop())
		if err := c.Load(context.Background()); !errors.Is(err, recommend.ErrInvalidItem) {
			t.Errorf("Load() error = %v, want ErrInvalidItem", err)
		}
	})
}

func TestCatalog_ItemsForSlot(t *testing.T) {
	c, _ := newTestCatalog(t)

	tests := []struct {
		name   string
		slot   recommend.Slot
		season recommend.Season
		cons   *recommend.Constraints
		want   string
	}{
		{name: "summer tops", slot: recommend.SlotTop, season: recommend.SeasonSummer, want: "top-plain,top-red,top-white"},
		{name: "winter tops drop summer-only", slot: recommend.SlotTop, season: recommend.SeasonWinter, want: "top-plain,top-white"},
		{name: "excluded color", slot: recommend.SlotTop, season: recommend.SeasonSummer,
			cons: &recommend.Constraints{ExcludeColors: []string{"red"}}, want: "top-plain,top-white"},
		{name: "excluded item", slot: recommend.SlotTop, season: recommend.SeasonSummer,
			cons: &recommend.Constraints{ExcludeItems: []string{"top-plain"}}, want: "top-red,top-white"},
		{name: "formality window keeps unknown", slot: recommend.SlotTop, season: recommend.SeasonSummer,
			cons: &recommend.Constraints{MinFormality: recommend.FormalitySemiFormal}, want: "top-plain,top-white"},
		{name: "summer shoes", slot: recommend.SlotShoe, season: recommend.SeasonSummer, want: ""},
		{name: "empty slot", slot: recommend.SlotAccessory, season: recommend.SeasonSummer, want: ""},
	}

	view := c.View()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(view.ItemsForSlot(tt.slot, tt.season, tt.cons)); got != tt.want {
				t.Errorf("ItemsForSlot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalog_NonStrictSeason(t *testing.T) {
	repo := storage.NewRepository(storage.NewMemoryKV())
	c := New(repo, Config{StrictSeason: false}, zerolog.Nop())
	if _, err := c.Ingest(context.Background(), testItems()); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if got := ids(c.View().ItemsForSlot(recommend.SlotShoe, recommend.SeasonSummer, nil)); got != "shoe-boots" {
		t.Errorf("ItemsForSlot() = %q, want shoe-boots", got)
	}
}

func TestCatalog_Deprecate(t *testing.T) {
	c, repo := newTestCatalog(t)
	pub := &recordingPublisher{}
	c.SetPublisher(pub)
	ctx := context.Background()

	oldView := c.View()
	changed, err := c.Deprecate(ctx, "top-red")
	if err != nil || !changed {
		t.Fatalf("Deprecate() = %v, %v", changed, err)
	}

	if got := ids(c.View().ItemsForSlot(recommend.SlotTop, recommend.SeasonSummer, nil)); got != "top-plain,top-white" {
		t.Errorf("ItemsForSlot() after deprecate = %q", got)
	}
	if got := ids(oldView.ItemsForSlot(recommend.SlotTop, recommend.SeasonSummer, nil)); got != "top-plain,top-red,top-white" {
		t.Errorf("old view changed: %q", got)
	}
	if c.View().Version() <= oldView.Version() {
		t.Error("version did not increase")
	}

	it, err := c.Get("top-red")
	if err != nil || !it.Deprecated || it.DeprecatedAt == nil {
		t.Errorf("Get(top-red) = %+v, %v", it, err)
	}

	stored, _ := repo.LoadItems(ctx)
	for _, s := range stored {
		if s.ID == "top-red" && !s.Deprecated {
			t.Error("deprecation was not persisted")
		}
	}

	changed, err = c.Deprecate(ctx, "top-red")
	if err != nil || changed {
		t.Errorf("second Deprecate() = %v, %v, want no-op", changed, err)
	}

	if _, err := c.Deprecate(ctx, "ghost"); !errors.Is(err, recommend.ErrItemNotFound) {
		t.Errorf("Deprecate(ghost) error = %v, want ErrItemNotFound", err)
	}

	if len(pub.topics) != 1 || pub.topics[0] != recommend.TopicItemDeprecated {
		t.Errorf("published = %v, want one deprecation event", pub.topics)
	}
}

func TestCatalog_IngestPublishes(t *testing.T) {
	c, _ := newTestCatalog(t)
	pub := &recordingPublisher{}
	c.SetPublisher(pub)

	_, err := c.Ingest(context.Background(), []recommend.WardrobeItem{
		{ID: "acc-1", Slot: "watch"}, {ID: "acc-2", Slot: "belt"},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(pub.topics) != 2 || pub.topics[0] != recommend.TopicCatalogItemIngested {
		t.Errorf("published = %v", pub.topics)
	}
}

func TestCatalog_WithGenerated(t *testing.T) {
	c, _ := newTestCatalog(t)
	base := c.View()

	v := base.WithGenerated([]recommend.WardrobeItem{
		{Slot: "shirt", Colors: []string{"navy"}, Formality: recommend.FormalityCasual},
		{ID: "top-white", Slot: recommend.SlotTop, Colors: []string{"black"}},
		{ID: "bad", Slot: "cape"},
		{ID: "aaa-gen", Slot: recommend.SlotTop, Colors: []string{"red"}},
	})

	tops := v.ItemsForSlot(recommend.SlotTop, recommend.SeasonSummer, nil)
	var generated []recommend.WardrobeItem
	for _, it := range tops {
		if it.Generated() {
			generated = append(generated, it)
		}
	}
	if len(generated) != 3 {
		t.Fatalf("generated tops = %d (%s), want 3", len(generated), ids(tops))
	}
	for _, it := range generated {
		if it.ID == "top-white" {
			t.Error("generated item kept a colliding catalog ID")
		}
	}
	for i := 1; i < len(tops); i++ {
		if tops[i-1].ID >= tops[i].ID {
			t.Errorf("ItemsForSlot() not sorted: %s", ids(tops))
		}
	}

	filtered := v.ItemsForSlot(recommend.SlotTop, recommend.SeasonSummer, &recommend.Constraints{ExcludeColors: []string{"red"}})
	for _, it := range filtered {
		if it.HasColor("red") {
			t.Errorf("excluded color leaked through overlay: %s", it.ID)
		}
	}

	if len(base.ItemsForSlot(recommend.SlotTop, recommend.SeasonSummer, nil)) != 3 {
		t.Error("overlay leaked into base view")
	}
	if _, err := c.Get(generated[0].ID); !errors.Is(err, recommend.ErrItemNotFound) {
		t.Error("generated item reached the catalog")
	}
	if v.Len() != base.Len()+3 {
		t.Errorf("overlay Len() = %d, want %d", v.Len(), base.Len()+3)
	}
}

func TestCatalog_Validate(t *testing.T) {
	c, _ := newTestCatalog(t)

	tests := []struct {
		name    string
		req     recommend.Request
		wantErr bool
	}{
		{name: "default", req: recommend.Request{RequiredSlots: recommend.DefaultSlots}},
		{name: "min above max", req: recommend.Request{Constraints: recommend.Constraints{
			MinFormality: recommend.FormalityFormal, MaxFormality: recommend.FormalityCasual}}, wantErr: true},
		{name: "min equals max", req: recommend.Request{Constraints: recommend.Constraints{
			MinFormality: recommend.FormalityCasual, MaxFormality: recommend.FormalityCasual}}},
		{name: "duplicate slot", req: recommend.Request{RequiredSlots: []recommend.Slot{recommend.SlotTop, recommend.SlotTop}}, wantErr: true},
		{name: "unknown slot", req: recommend.Request{RequiredSlots: []recommend.Slot{"cape"}}, wantErr: true},
		{name: "some colors excluded", req: recommend.Request{Constraints: recommend.Constraints{
			ExcludeColors: []string{"red", "white"}}}},
		{name: "every color excluded", req: recommend.Request{Constraints: recommend.Constraints{
			ExcludeColors: []string{"red", "white", "grey", "blue", "brown"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Validate(&tt.req)
			if tt.wantErr && !errors.Is(err, recommend.ErrInvalidConstraint) {
				t.Errorf("Validate() error = %v, want ErrInvalidConstraint", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestCatalog_SearchByAttribute(t *testing.T) {
	c, _ := newTestCatalog(t)

	tests := []struct {
		attr, value string
		want        string
		wantErr     bool
	}{
		{attr: "color", value: "Gray", want: "top-plain"},
		{attr: "style", value: "casual", want: "bottom-jeans,top-red"},
		{attr: "season", value: "winter", want: "bottom-jeans,shoe-boots,top-white"},
		{attr: "formality", value: "business", want: "top-white"},
		{attr: "slot", value: "sneakers", want: "shoe-boots"},
		{attr: "material", value: "denim", want: "bottom-jeans"},
		{attr: "pattern", value: "plaid", want: ""},
		{attr: "season", value: "monsoon", wantErr: true},
		{attr: "", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.attr+"="+tt.value, func(t *testing.T) {
			got, err := c.SearchByAttribute(tt.attr, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuery) {
					t.Errorf("error = %v, want ErrInvalidQuery", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SearchByAttribute() error = %v", err)
			}
			if ids(got) != tt.want {
				t.Errorf("SearchByAttribute() = %q, want %q", ids(got), tt.want)
			}
		})
	}
}

func TestCatalog_Popular(t *testing.T) {
	repo := storage.NewRepository(storage.NewMemoryKV())
	c := New(repo, DefaultConfig(), zerolog.Nop())
	_, err := c.Ingest(context.Background(), []recommend.WardrobeItem{
		{ID: "a", Slot: recommend.SlotTop, Popularity: &recommend.Popularity{Score: 0.2, Rating: 2, Purchases: 10}},
		{ID: "b", Slot: recommend.SlotTop, Popularity: &recommend.Popularity{Score: 0.9, Rating: 4.5, Purchases: 100}},
		{ID: "c", Slot: recommend.SlotTop},
		{ID: "d", Slot: recommend.SlotShoe, Popularity: &recommend.Popularity{Score: 1, Rating: 5, Purchases: 500}},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if got := ids(c.Popular(recommend.SlotTop, 0)); got != "b,a,c" {
		t.Errorf("Popular(top) = %q, want b,a,c", got)
	}
	if got := ids(c.Popular("", 2)); got != "d,b" {
		t.Errorf("Popular(all, 2) = %q, want d,b", got)
	}
}

func TestDefaultSeed(t *testing.T) {
	items := DefaultSeed()
	if len(items) == 0 {
		t.Fatal("DefaultSeed() is empty")
	}

	c := New(storage.NewRepository(storage.NewMemoryKV()), DefaultConfig(), zerolog.Nop())
	n, err := c.SeedIfEmpty(context.Background(), items)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if n != len(items) {
		t.Errorf("SeedIfEmpty() = %d, want %d", n, len(items))
	}

	for _, slot := range recommend.SlotOrder {
		if len(c.List(slot, "")) == 0 {
			t.Errorf("seed has no %s items", slot)
		}
	}

	n, err = c.SeedIfEmpty(context.Background(), items)
	if err != nil || n != 0 {
		t.Errorf("second SeedIfEmpty() = %d, %v, want 0, nil", n, err)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	if _, err := ParseSeed([]byte(`{"items": [`)); err == nil {
		t.Error("ParseSeed() accepted truncated JSON")
	}
}
