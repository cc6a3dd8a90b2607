// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wardrobe/internal/recommend"
)

//go:embed seed.json
var defaultSeed []byte

// seedFile is the on-disk format of a seed catalog.
type seedFile struct {
	Items []recommend.WardrobeItem `json:"items"`
}

// ParseSeed decodes a {"items": [...]} document.
func ParseSeed(data []byte) ([]recommend.WardrobeItem, error) {
	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return f.Items, nil
}

// LoadSeedFile reads a seed catalog from path.
func LoadSeedFile(path string) ([]recommend.WardrobeItem, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// DefaultSeed returns the built-in sample wardrobe.
func DefaultSeed() []recommend.WardrobeItem {
	items, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog is invalid: %v", err))
	}
	return items
}
