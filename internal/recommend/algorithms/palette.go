// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package algorithms

// Harmony values of the color matrix.
const (
	HarmonyComplementary = 1.0
	HarmonySame          = 0.8
	HarmonyNeutral       = 0.7
	HarmonyUnknown       = 0.5
	HarmonyClash         = 0.0
)

// defaultMatches lists color pairs that work together. The relation is made
// symmetric when the palette is built.
var defaultMatches = map[string][]string{
	"white":  {"black", "blue", "red", "green", "brown", "grey", "navy", "beige"},
	"black":  {"white", "red", "grey", "silver", "gold", "pink", "purple"},
	"blue":   {"white", "grey", "brown", "navy", "red", "beige"},
	"red":    {"white", "black", "blue", "grey", "brown"},
	"green":  {"white", "beige", "brown", "grey", "black"},
	"brown":  {"white", "blue", "green", "beige", "grey"},
	"grey":   {"white", "black", "blue", "red", "pink", "purple"},
	"navy":   {"white", "blue", "grey", "red"},
	"beige":  {"white", "blue", "green", "brown", "navy", "black"},
	"pink":   {"black", "grey", "navy", "white"},
	"purple": {"white", "black", "grey"},
	"yellow": {"white", "blue", "grey", "navy"},
	"orange": {"white", "blue", "navy", "grey"},
}

var defaultNeutrals = []string{"white", "black", "grey", "navy", "beige", "brown", "silver", "gold"}

// Palette is a symmetric color compatibility matrix.
type Palette struct {
	matches  map[string]map[string]struct{}
	neutrals map[string]struct{}
	known    map[string]struct{}
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	return NewPalette(defaultMatches, defaultNeutrals)
}

// NewPalette builds a palette from a match table and a neutral list.
func NewPalette(matches map[string][]string, neutrals []string) *Palette {
	p := &Palette{
		matches:  make(map[string]map[string]struct{}),
		neutrals: make(map[string]struct{}, len(neutrals)),
		known:    make(map[string]struct{}),
	}
	link := func(a, b string) {
		if p.matches[a] == nil {
			p.matches[a] = make(map[string]struct{})
		}
		p.matches[a][b] = struct{}{}
	}
	for color, partners := range matches {
		p.known[color] = struct{}{}
		for _, partner := range partners {
			p.known[partner] = struct{}{}
			link(color, partner)
			link(partner, color)
		}
	}
	for _, n := range neutrals {
		p.neutrals[n] = struct{}{}
		p.known[n] = struct{}{}
	}
	return p
}

// Harmony scores a color pair. It is symmetric in its arguments.
func (p *Palette) Harmony(a, b string) float64 {
	if a == b {
		return HarmonySame
	}
	if _, ok := p.matches[a][b]; ok {
		return HarmonyComplementary
	}
	_, knownA := p.known[a]
	_, knownB := p.known[b]
	if !knownA || !knownB {
		return HarmonyUnknown
	}
	_, neutralA := p.neutrals[a]
	_, neutralB := p.neutrals[b]
	if neutralA || neutralB {
		return HarmonyNeutral
	}
	return HarmonyClash
}

// Known reports whether the palette has an opinion on color c.
func (p *Palette) Known(c string) bool {
	_, ok := p.known[c]
	return ok
}
