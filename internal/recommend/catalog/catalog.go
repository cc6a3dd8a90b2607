// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wardrobe/internal/metrics"
	"github.com/tomtom215/wardrobe/internal/recommend"
)

// ItemStore persists catalog items.
type ItemStore interface {
	LoadItems(ctx context.Context) ([]recommend.WardrobeItem, error)
	SaveItems(ctx context.Context, items []recommend.WardrobeItem) error
}

// Config controls catalog filtering.
type Config struct {
	// StrictSeason drops items whose season data excludes the requested
	// season. Items without season data always pass.
	StrictSeason bool `koanf:"strict_season"`
}

// DefaultConfig returns the default catalog configuration.
func DefaultConfig() Config {
	return Config{StrictSeason: true}
}

// ItemEvent is the payload of catalog change events.
type ItemEvent struct {
	ItemID    string         `json:"item_id"`
	Slot      recommend.Slot `json:"slot"`
	Version   uint64         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
}

// Catalog is the attribute catalog of owned items.
//
// Reads go through an immutable snapshot and never lock. Writers serialize
// on mu, persist the affected items and then swap in a rebuilt snapshot.
type Catalog struct {
	cfg       Config
	store     ItemStore
	snap      atomic.Pointer[snapshot]
	mu        sync.Mutex
	publisher recommend.EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// New creates an empty catalog backed by store. Call Load before use.
func New(store ItemStore, cfg Config, logger zerolog.Logger) *Catalog {
	c := &Catalog{
		cfg:    cfg,
		store:  store,
		logger: logger.With().Str("component", "catalog").Logger(),
		now:    time.Now,
	}
	c.snap.Store(buildSnapshot(nil, 0))
	return c
}

// SetPublisher sets where catalog change events go. Nil disables them.
func (c *Catalog) SetPublisher(p recommend.EventPublisher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publisher = p
}

// SetClock overrides the time source.
func (c *Catalog) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Load replaces the snapshot with the store's contents. Any record that
// fails validation fails the load and leaves the current snapshot in place.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.store.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		it, err := recommend.NormalizeItem(items[i])
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("load catalog: %w: %s", recommend.ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = struct{}{}
		items[i] = it
	}

	next := buildSnapshot(items, c.snap.Load().version+1)
	c.swap(next)

	c.logger.Info().
		Int("items", len(items)).
		Int("active", next.active).
		Uint64("version", next.version).
		Msg("catalog loaded")
	return nil
}

// SeedIfEmpty ingests items when the catalog holds nothing yet. It returns
// the number of items ingested.
func (c *Catalog) SeedIfEmpty(ctx context.Context, items []recommend.WardrobeItem) (int, error) {
	if len(c.snap.Load().items) > 0 {
		return 0, nil
	}
	added, err := c.Ingest(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	return len(added), nil
}

// Ingest validates and adds items. The whole batch is rejected if any item
// is invalid or reuses an existing ID.
func (c *Catalog) Ingest(ctx context.Context, items []recommend.WardrobeItem) ([]recommend.WardrobeItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", recommend.ErrInvalidItem)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.snap.Load()
	now := c.now().UTC()
	added := make([]recommend.WardrobeItem, 0, len(items))
	batch := make(map[string]struct{}, len(items))

	for i := range items {
		it, err := recommend.NormalizeItem(items[i])
		if err != nil {
			return nil, err
		}
		if _, exists := cur.items[it.ID]; exists {
			return nil, fmt.Errorf("%w: %s", recommend.ErrDuplicateItem, it.ID)
		}
		if _, dup := batch[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s appears twice in batch", recommend.ErrDuplicateItem, it.ID)
		}
		batch[it.ID] = struct{}{}

		it.Provenance = recommend.ProvenanceOwned
		it.Deprecated = false
		it.DeprecatedAt = nil
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		added = append(added, it)
	}

	if err := c.store.SaveItems(ctx, added); err != nil {
		return nil, fmt.Errorf("persist items: %w", err)
	}

	next := buildSnapshot(append(cur.all(), added...), cur.version+1)
	c.swap(next)

	c.logger.Info().
		Int("added", len(added)).
		Uint64("version", next.version).
		Msg("catalog items ingested")

	for i := range added {
		c.publish(ctx, recommend.TopicCatalogItemIngested, &ItemEvent{
			ItemID:    added[i].ID,
			Slot:      added[i].Slot,
			Version:   next.version,
			Timestamp: now,
		})
	}
	return added, nil
}

// Deprecate retires an item. It reports whether anything changed: an item
// that is already deprecated is left alone.
func (c *Catalog) Deprecate(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.snap.Load()
	existing, ok := cur.items[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", recommend.ErrItemNotFound, id)
	}
	if existing.Deprecated {
		return false, nil
	}

	now := c.now().UTC()
	updated := *existing
	updated.Deprecated = true
	updated.DeprecatedAt = &now

	if err := c.store.SaveItems(ctx, []recommend.WardrobeItem{updated}); err != nil {
		return false, fmt.Errorf("persist deprecation: %w", err)
	}

	all := cur.all()
	for i := range all {
		if all[i].ID == id {
			all[i] = updated
			break
		}
	}
	next := buildSnapshot(all, cur.version+1)
	c.swap(next)

	c.logger.Info().
		Str("item_id", id).
		Uint64("version", next.version).
		Msg("catalog item deprecated")

	c.publish(ctx, recommend.TopicItemDeprecated, &ItemEvent{
		ItemID:    id,
		Slot:      updated.Slot,
		Version:   next.version,
		Timestamp: now,
	})
	return true, nil
}

// Get returns an item by ID, deprecated items included.
func (c *Catalog) Get(id string) (recommend.WardrobeItem, error) {
	it, ok := c.snap.Load().items[id]
	if !ok {
		return recommend.WardrobeItem{}, fmt.Errorf("%w: %s", recommend.ErrItemNotFound, id)
	}
	return *it, nil
}

// List returns the active items, optionally narrowed to a slot and to the
// items eligible for a season. Results are sorted by ID.
func (c *Catalog) List(slot recommend.Slot, season recommend.Season) []recommend.WardrobeItem {
	s := c.snap.Load()

	var src []*recommend.WardrobeItem
	if slot != "" {
		src = s.bySlot[slot]
	} else {
		src = s.activeSorted()
	}

	out := make([]recommend.WardrobeItem, 0, len(src))
	for _, it := range src {
		if season != "" && !seasonEligible(it, season) {
			continue
		}
		out = append(out, *it)
	}
	return out
}

// Len is the number of active items.
func (c *Catalog) Len() int {
	return c.snap.Load().active
}

// Version is the current snapshot version.
func (c *Catalog) Version() uint64 {
	return c.snap.Load().version
}

// View returns the current snapshot as an inventory view.
func (c *Catalog) View() recommend.InventoryView {
	return &view{snap: c.snap.Load(), strictSeason: c.cfg.StrictSeason}
}

// Validate rejects requests whose constraints cannot be satisfied by
// construction.
func (c *Catalog) Validate(req *recommend.Request) error {
	cons := &req.Constraints
	if cons.MinFormality.Known() && cons.MaxFormality.Known() && cons.MinFormality > cons.MaxFormality {
		return fmt.Errorf("%w: min formality %s is above max formality %s",
			recommend.ErrInvalidConstraint, cons.MinFormality, cons.MaxFormality)
	}

	seen := make(map[recommend.Slot]struct{}, len(req.RequiredSlots))
	for _, slot := range req.RequiredSlots {
		if !slot.Valid() {
			return fmt.Errorf("%w: unknown slot %q", recommend.ErrInvalidConstraint, slot)
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("%w: slot %q requested twice", recommend.ErrInvalidConstraint, slot)
		}
		seen[slot] = struct{}{}
	}

	if len(cons.ExcludeColors) == 0 {
		return nil
	}
	s := c.snap.Load()
	if len(s.byColor) == 0 {
		return nil
	}
	excluded := make(map[string]struct{}, len(cons.ExcludeColors))
	for _, color := range cons.ExcludeColors {
		excluded[recommend.CanonicalColor(color)] = struct{}{}
	}
	for color := range s.byColor {
		if _, ok := excluded[color]; !ok {
			return nil
		}
	}
	return fmt.Errorf("%w: excluded colors cover every color in the catalog", recommend.ErrInvalidConstraint)
}

// swap installs next and refreshes the catalog gauges. Callers hold mu.
func (c *Catalog) swap(next *snapshot) {
	c.snap.Store(next)

	perSlot := make(map[string]int, len(recommend.SlotOrder))
	for _, slot := range recommend.SlotOrder {
		perSlot[string(slot)] = len(next.bySlot[slot])
	}
	metrics.SetCatalogItems(next.version, perSlot)
}

// publish sends a change event. Callers hold mu.
func (c *Catalog) publish(ctx context.Context, topic string, payload *ItemEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, topic, payload); err != nil {
		c.logger.Warn().Err(err).Str("topic", topic).Str("item_id", payload.ItemID).Msg("failed to publish event")
	}
}

// snapshot is an immutable, indexed copy of the catalog.
type snapshot struct {
	version uint64
	active  int

	// items holds every item by ID, deprecated ones included.
	items map[string]*recommend.WardrobeItem

	// Active items only, each list sorted by ID.
	bySlot   map[recommend.Slot][]*recommend.WardrobeItem
	byColor  map[string][]*recommend.WardrobeItem
	bySeason map[recommend.Season][]*recommend.WardrobeItem
	byTag    map[string][]*recommend.WardrobeItem
}

func buildSnapshot(items []recommend.WardrobeItem, version uint64) *snapshot {
	s := &snapshot{
		version:  version,
		items:    make(map[string]*recommend.WardrobeItem, len(items)),
		bySlot:   make(map[recommend.Slot][]*recommend.WardrobeItem),
		byColor:  make(map[string][]*recommend.WardrobeItem),
		bySeason: make(map[recommend.Season][]*recommend.WardrobeItem),
		byTag:    make(map[string][]*recommend.WardrobeItem),
	}

	owned := make([]recommend.WardrobeItem, len(items))
	copy(owned, items)
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	for i := range owned {
		it := &owned[i]
		s.items[it.ID] = it
		if it.Deprecated {
			continue
		}
		s.active++
		s.bySlot[it.Slot] = append(s.bySlot[it.Slot], it)
		for _, color := range it.Colors {
			s.byColor[color] = append(s.byColor[color], it)
		}
		for _, season := range it.Seasons {
			s.bySeason[season] = append(s.bySeason[season], it)
		}
		for _, tag := range it.StyleTags {
			s.byTag[tag] = append(s.byTag[tag], it)
		}
	}
	return s
}

// all returns a copy of every item, sorted by ID.
func (s *snapshot) all() []recommend.WardrobeItem {
	out := make([]recommend.WardrobeItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// activeSorted returns the active items sorted by ID.
func (s *snapshot) activeSorted() []*recommend.WardrobeItem {
	out := make([]*recommend.WardrobeItem, 0, s.active)
	for _, items := range s.bySlot {
		out = append(out, items...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func seasonEligible(it *recommend.WardrobeItem, season recommend.Season) bool {
	known, fits := it.SeasonFit(season)
	return !known || fits
}

var _ recommend.Inventory = (*Catalog)(nil)
