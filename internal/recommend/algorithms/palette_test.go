// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package algorithms

import "testing"

func TestPalette_Harmony(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		a, b string
		want float64
	}{
		{"white", "blue", HarmonyComplementary},
		{"blue", "white", HarmonyComplementary},
		{"navy", "navy", HarmonySame},
		{"yellow", "brown", HarmonyNeutral},
		{"silver", "green", HarmonyNeutral},
		{"red", "green", HarmonyClash},
		{"orange", "pink", HarmonyClash},
		{"teal", "red", HarmonyUnknown},
		{"teal", "mauve", HarmonyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := p.Harmony(tt.a, tt.b); got != tt.want {
				t.Errorf("Harmony(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPalette_Symmetric(t *testing.T) {
	p := DefaultPalette()
	colors := []string{"white", "black", "blue", "red", "green", "brown", "grey", "navy",
		"beige", "pink", "purple", "yellow", "orange", "silver", "gold", "teal"}

	for _, a := range colors {
		for _, b := range colors {
			if p.Harmony(a, b) != p.Harmony(b, a) {
				t.Errorf("Harmony(%q, %q) = %v but Harmony(%q, %q) = %v",
					a, b, p.Harmony(a, b), b, a, p.Harmony(b, a))
			}
		}
	}
}

func TestPalette_Custom(t *testing.T) {
	p := NewPalette(map[string][]string{"mint": {"coral"}}, []string{"ivory"})

	if got := p.Harmony("coral", "mint"); got != HarmonyComplementary {
		t.Errorf("Harmony(coral, mint) = %v, want %v", got, HarmonyComplementary)
	}
	if got := p.Harmony("ivory", "mint"); got != HarmonyNeutral {
		t.Errorf("Harmony(ivory, mint) = %v, want %v", got, HarmonyNeutral)
	}
	if !p.Known("ivory") || p.Known("white") {
		t.Error("Known() does not reflect the custom palette")
	}
}
