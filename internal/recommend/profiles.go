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
	"time"
)

// ProfileRepository persists preference profiles.
type ProfileRepository interface {
	// LoadProfile returns ErrProfileNotFound for unknown users.
	LoadProfile(ctx context.Context, userID string) (*Profile, error)

	// SaveProfile replaces the stored profile.
	SaveProfile(ctx context.Context, p *Profile) error
}

// ProfileStore serializes writes per user and caches loaded profiles.
// Different users update in parallel; one user's updates are applied one at
// a time.
type ProfileStore struct {
	repo   ProfileRepository
	budget float64
	now    func() time.Time

	mu    sync.Mutex
	slots map[string]*profileSlot
}

type profileSlot struct {
	mu      sync.Mutex
	profile *Profile // nil until loaded; stays nil for unknown users
	loaded  bool
}

// NewProfileStore creates a store backed by repo. New profiles start with
// the default weights scaled to budget.
func NewProfileStore(repo ProfileRepository, budget float64) *ProfileStore {
	return &ProfileStore{
		repo:   repo,
		budget: budget,
		now:    time.Now,
		slots:  make(map[string]*profileSlot),
	}
}

// SetClock replaces the time source. Used by tests.
func (s *ProfileStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ProfileStore) slot(userID string) *profileSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[userID]
	if !ok {
		sl = &profileSlot{}
		s.slots[userID] = sl
	}
	return sl
}

// load fills the slot from the repository. Must be called with sl.mu held.
func (s *ProfileStore) load(ctx context.Context, userID string, sl *profileSlot) error {
	if sl.loaded {
		return nil
	}
	p, err := s.repo.LoadProfile(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		p = nil
	case err != nil:
		return fmt.Errorf("load profile %s: %w", userID, err)
	}
	sl.profile = p
	sl.loaded = true
	return nil
}

// Get returns a copy of the user's profile. Unknown users get a cold-start
// profile that is not persisted until their first feedback. Lookups of
// unknown users leave no state behind.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*Profile, error) {
	if sl := s.cached(userID); sl != nil {
		return s.getLocked(ctx, userID, sl)
	}

	p, err := s.repo.LoadProfile(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return NewProfile(userID, s.budget, s.now()), nil
	case err != nil:
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}

	sl, adopted := s.adopt(userID, p)
	if adopted {
		return p.Clone(), nil
	}
	// an Update created the slot meanwhile; its state wins
	return s.getLocked(ctx, userID, sl)
}

func (s *ProfileStore) getLocked(ctx context.Context, userID string, sl *profileSlot) (*Profile, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if err := s.load(ctx, userID, sl); err != nil {
		return nil, err
	}
	if sl.profile == nil {
		return NewProfile(userID, s.budget, s.now()), nil
	}
	return sl.profile.Clone(), nil
}

// cached returns the user's slot or nil.
func (s *ProfileStore) cached(userID string) *profileSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[userID]
}

// adopt installs a slot holding the loaded profile p unless one exists.
func (s *ProfileStore) adopt(userID string, p *Profile) (*profileSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.slots[userID]; ok {
		return sl, false
	}
	sl := &profileSlot{profile: p, loaded: true}
	s.slots[userID] = sl
	return sl, true
}

// Update runs fn on a copy of the user's profile under the user's lock.
// When fn reports a change, the copy is persisted and then becomes the
// current profile; on any error the current profile is left untouched.
// The returned profile is a copy of the result.
func (s *ProfileStore) Update(ctx context.Context, userID string, fn func(p *Profile) (bool, error)) (*Profile, error) {
	sl := s.slot(userID)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if err := s.load(ctx, userID, sl); err != nil {
		return nil, err
	}

	var next *Profile
	if sl.profile == nil {
		next = NewProfile(userID, s.budget, s.now())
	} else {
		next = sl.profile.Clone()
	}

	changed, err := fn(next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return next, nil
	}

	next.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(ctx, next); err != nil {
		return nil, fmt.Errorf("save profile %s: %w", userID, err)
	}
	sl.profile = next
	return next.Clone(), nil
}

// Len returns the number of users with a cached profile: those loaded from
// the repository or updated through the store.
func (s *ProfileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
