// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"time"

	"github.com/tomtom215/wardrobe/internal/cache"
)

// SurfacedOutfit is what the engine remembers about an outfit it showed to
// a user: enough to apply feedback even after generated items are gone.
type SurfacedOutfit struct {
	UserID     string
	Key        string
	ItemIDs    []string
	Features   Features
	SurfacedAt time.Time
}

// Ledger records surfaced outfits per user. Entries expire after the
// configured TTL and the least recently used are evicted at capacity.
type Ledger struct {
	lru *cache.LRU[*SurfacedOutfit]
	now func() time.Time
}

// NewLedger creates a ledger from cfg.
//
//nolint:gocritic // config is copied once at construction
func NewLedger(cfg LedgerConfig) *Ledger {
	return &Ledger{
		lru: cache.NewLRU[*SurfacedOutfit](cfg.MaxEntries, cfg.TTL),
		now: time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
	l.lru.SetClock(now)
}

func ledgerKey(userID, outfitKey string) string {
	return compositeKey(userID, outfitKey)
}

// Record stores the outfits surfaced to userID.
func (l *Ledger) Record(userID string, outfits []Outfit) {
	at := l.now()
	for i := range outfits {
		o := &outfits[i]
		l.lru.Add(ledgerKey(userID, o.Key), &SurfacedOutfit{
			UserID:     userID,
			Key:        o.Key,
			ItemIDs:    o.ItemIDs(),
			Features:   ExtractFeatures(&o.Breakdown, o.Items),
			SurfacedAt: at,
		})
	}
}

// Lookup returns the surfaced outfit for (userID, outfitKey).
func (l *Ledger) Lookup(userID, outfitKey string) (*SurfacedOutfit, bool) {
	return l.lru.Get(ledgerKey(userID, outfitKey))
}

// Len returns the number of live entries.
func (l *Ledger) Len() int {
	return l.lru.Len()
}

// Cleanup removes expired entries and returns how many were dropped.
func (l *Ledger) Cleanup() int {
	return l.lru.CleanupExpired()
}
