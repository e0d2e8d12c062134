// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders sounds canonically and returns -1, 0 or +1.
//
// Catalog sounds compare by ordinal. Numbered combo-burst variants take the
// ordinal of the unnumbered "comboburst" slot when compared with catalog
// sounds, and compare by numeric suffix among themselves. The unnumbered slot
// sorts before its numbered variants, and numerically equal suffixes fall back
// to their literal digit text, so the order is strict.
func Compare(a Sound, b Sound) int {
	switch {
	case !a.IsNumbered() && !b.IsNumbered():
		return cmp.Compare(a.index, b.index)
	case a.IsNumbered() && b.IsNumbered():
		if c := compareDecimal(a.digits, b.digits); c != 0 {
			return c
		}

		return strings.Compare(a.digits, b.digits)
	case a.IsNumbered():
		if c := cmp.Compare(comboBurstIndex, b.index); c != 0 {
			return c
		}

		return 1
	default:
		if c := cmp.Compare(a.index, comboBurstIndex); c != 0 {
			return c
		}

		return -1
	}
}

// SortedSounds returns the canonical listing for a skin: the full catalog plus
// every numbered combo-burst variant the skin defines. The unnumbered
// "comboburst" slot is dropped when numbered variants are present.
func SortedSounds(skin *Skin) []Sound {
	var numbered []Sound
	if skin != nil {
		for _, s := range skin.Sounds() {
			if s.IsNumbered() {
				numbered = append(numbered, s)
			}
		}
	}

	out := make([]Sound, 0, len(catalogNames)+len(numbered))
	for i := range catalogNames {
		if i == comboBurstIndex && len(numbered) > 0 {
			continue
		}

		out = append(out, Sound{index: i})
	}

	out = append(out, numbered...)
	slices.SortFunc(out, Compare)

	return out
}

// compareDecimal compares two ASCII digit strings by numeric value without overflow.
func compareDecimal(a string, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}
