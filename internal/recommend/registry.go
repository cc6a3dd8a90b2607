// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import "fmt"

// InventoryView is a consistent read-only view of the catalog.
type InventoryView interface {
	// ItemsForSlot returns the active items eligible for the slot, season
	// and constraints, sorted by ID.
	ItemsForSlot(slot Slot, season Season, c *Constraints) []WardrobeItem

	// WithGenerated returns a view that also offers the given proposals.
	// The overlay is never persisted.
	WithGenerated(items []WardrobeItem) InventoryView

	// Len is the number of active items.
	Len() int

	// Version increases with every catalog change.
	Version() uint64
}

// Inventory is the catalog as seen by the engine.
type Inventory interface {
	// View returns the current snapshot.
	View() InventoryView

	// Validate rejects requests whose constraints contradict each other or
	// the catalog, with ErrInvalidConstraint.
	Validate(req *Request) error
}

// Registry owns the catalog and the profile store for the process.
type Registry struct {
	inventory Inventory
	profiles  *ProfileStore
}

// OpenRegistry binds a loaded catalog and a profile store. It fails with
// ErrEmptyCatalog when the catalog holds no active items.
func OpenRegistry(inventory Inventory, profiles *ProfileStore) (*Registry, error) {
	if inventory == nil || profiles == nil {
		return nil, fmt.Errorf("registry requires an inventory and a profile store")
	}
	if inventory.View().Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Registry{inventory: inventory, profiles: profiles}, nil
}

// Inventory returns the catalog.
func (r *Registry) Inventory() Inventory {
	return r.inventory
}

// Profiles returns the profile store.
func (r *Registry) Profiles() *ProfileStore {
	return r.profiles
}
