// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package recommend

import (
	"errors"
	"fmt"
)

// ErrInsufficientInventory is returned when a required slot has no eligible
// items. Retrying without a catalog change is futile.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrInvalidConstraint is returned when a request's hard constraints
// contradict each other or the catalog.
var ErrInvalidConstraint = errors.New("invalid constraint")

// ErrUnknownCandidateReference is returned when feedback references an
// outfit that was never surfaced to that user.
var ErrUnknownCandidateReference = errors.New("unknown candidate reference")

// ErrGenerativeServiceUnavailable is reported when the generative
// collaborator fails. Recommend degrades to catalog-only items.
var ErrGenerativeServiceUnavailable = errors.New("generative service unavailable")

// ErrIntentServiceUnavailable is returned when free-text requests cannot be
// parsed because the intent collaborator is down or not configured.
var ErrIntentServiceUnavailable = errors.New("intent service unavailable")

// ErrItemNotFound is returned for unknown item IDs.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidItem is returned when an item fails validation at ingestion.
var ErrInvalidItem = errors.New("invalid item")

// ErrDuplicateItem is returned when ingesting an ID that already exists.
var ErrDuplicateItem = errors.New("duplicate item")

// ErrProfileNotFound is returned by profile repositories for unknown users.
var ErrProfileNotFound = errors.New("profile not found")

// ErrEmptyCatalog is returned when the catalog holds no active items at
// startup.
var ErrEmptyCatalog = errors.New("catalog is empty")

// ErrInvalidFeedback is returned for malformed feedback events.
var ErrInvalidFeedback = errors.New("invalid feedback event")

// InsufficientInventoryError names the slot with no eligible items.
type InsufficientInventoryError struct {
	Slot Slot
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: no eligible items for slot %q", e.Slot)
}

// Is matches ErrInsufficientInventory.
func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// ValueError reports an unparseable enum value.
type ValueError struct {
	Field string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func invalidConstraint(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConstraint, fmt.Sprintf(format, args...))
}
