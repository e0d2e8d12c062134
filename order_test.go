// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"slices"
	"testing"
)

func TestCompareCatalogOrder(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	for i := 1; i < len(catalog); i++ {
		if Compare(catalog[i-1], catalog[i]) >= 0 {
			t.Fatalf("Compare(%q,%q) >= 0", catalog[i-1], catalog[i])
		}

		if Compare(catalog[i], catalog[i-1]) <= 0 {
			t.Fatalf("Compare(%q,%q) <= 0", catalog[i], catalog[i-1])
		}
	}

	if Compare(catalog[5], catalog[5]) != 0 {
		t.Fatal("Compare of equal sounds must be 0")
	}
}

func TestCompareNumbered(t *testing.T) {
	t.Parallel()

	readys := MustParseSound("readys")
	combo := MustParseSound("comboburst")
	combobreak := MustParseSound("combobreak")
	c2 := MustParseSound("comboburst-2")
	c10 := MustParseSound("comboburst-10")
	c010 := MustParseSound("comboburst-010")

	ordered := []Sound{readys, combo, c2, c010, c10, combobreak}
	for i := 1; i < len(ordered); i++ {
		if Compare(ordered[i-1], ordered[i]) >= 0 {
			t.Fatalf("Compare(%q,%q) >= 0", ordered[i-1], ordered[i])
		}

		if Compare(ordered[i], ordered[i-1]) <= 0 {
			t.Fatalf("Compare(%q,%q) <= 0", ordered[i], ordered[i-1])
		}
	}

	shuffled := []Sound{combobreak, c10, readys, c2, combo, c010}
	slices.SortFunc(shuffled, Compare)
	if !slices.Equal(shuffled, ordered) {
		t.Fatalf("sorted=%v, want %v", shuffled, ordered)
	}
}

func TestCompareHugeNumbers(t *testing.T) {
	t.Parallel()

	small := MustParseSound("comboburst-18446744073709551615")
	big := MustParseSound("comboburst-18446744073709551616")
	if Compare(small, big) >= 0 {
		t.Fatalf("Compare(%q,%q) >= 0", small, big)
	}
}

func TestSortedSoundsWithoutNumbered(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("heartbeat.ogg", "a"))
	got := SortedSounds(skin)
	if !slices.Equal(got, Catalog()) {
		t.Fatalf("SortedSounds without numbered variants must equal Catalog()")
	}

	if !slices.Equal(SortedSounds(nil), Catalog()) {
		t.Fatal("SortedSounds(nil) must equal Catalog()")
	}
}

func TestSortedSoundsWithNumbered(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t,
		fileEntry("comboburst-10.wav", "a"),
		fileEntry("comboburst-2.wav", "b"),
		fileEntry("heartbeat.ogg", "c"),
	)

	got := SortedSounds(skin)
	if len(got) != len(catalogNames)-1+2 {
		t.Fatalf("len(SortedSounds)=%d, want %d", len(got), len(catalogNames)+1)
	}

	if slices.Contains(got, MustParseSound("comboburst")) {
		t.Fatal("literal comboburst must be replaced by numbered variants")
	}

	pos := slices.Index(got, MustParseSound("comboburst-2"))
	if pos < 0 || got[pos-1] != MustParseSound("readys") {
		t.Fatalf("comboburst-2 at %d, expected right after readys", pos)
	}

	if got[pos+1] != MustParseSound("comboburst-10") || got[pos+2] != MustParseSound("combobreak") {
		t.Fatalf("unexpected order around numbered variants: %v", got[pos-1:pos+3])
	}
}

func TestSoundSetSorted(t *testing.T) {
	t.Parallel()

	set := NewSoundSet(MustParseSound("whoosh"), MustParseSound("heartbeat"), MustParseSound("comboburst-1"))
	got := set.Sorted()
	want := []Sound{MustParseSound("heartbeat"), MustParseSound("whoosh"), MustParseSound("comboburst-1")}
	if !slices.Equal(got, want) {
		t.Fatalf("Sorted()=%v, want %v", got, want)
	}
}
