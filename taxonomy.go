// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"strconv"
	"strings"
)

// comboBurstName is the unnumbered combo-burst catalog entry and the prefix stem of numbered variants.
const comboBurstName = "comboburst"

// comboBurstPrefix prefixes numbered combo-burst identifiers.
const comboBurstPrefix = comboBurstName + "-"

// numberedIndex marks a Sound as a numbered combo-burst variant.
const numberedIndex = -1

// catalogNames is the closed sound catalog in canonical presentation order.
var catalogNames = [...]string{
	"heartbeat",
	"seeya",
	"welcome",
	"key-confirm",
	"key-delete",
	"key-movement",
	"key-press-1",
	"key-press-2",
	"key-press-3",
	"key-press-4",
	"back-button-click",
	"check-on",
	"check-off",
	"click-close",
	"click-short-confirm",
	"menuback",
	"menuhit",
	"menu-back-click",
	"menu-direct-click",
	"menu-edit-click",
	"menu-exit-click",
	"menu-freeplay-click",
	"menu-multiplayer-click",
	"menu-options-click",
	"menu-play-click",
	"pause-back-click",
	"pause-continue-click",
	"pause-retry-click",
	"select-expand",
	"select-difficulty",
	"shutter",
	"back-button-hover",
	"click-short",
	"menuclick",
	"menu-back-hover",
	"menu-direct-hover",
	"menu-edit-hover",
	"menu-exit-hover",
	"menu-freeplay-hover",
	"menu-multiplayer-hover",
	"menu-options-hover",
	"menu-play-hover",
	"pause-hover",
	"pause-back-hover",
	"pause-continue-hover",
	"pause-retry-hover",
	"sliderbar",
	"whoosh",
	"match-confirm",
	"match-join",
	"match-leave",
	"match-notready",
	"match-ready",
	"match-start",
	"metronomelow",
	"count",
	"count1s",
	"count2s",
	"count3s",
	"gos",
	"readys",
	comboBurstName,
	"combobreak",
	"failsound",
	"sectionpass",
	"sectionfail",
	"applause",
	"pause-loop",
	"drum-hitnormal",
	"drum-hitclap",
	"drum-hitfinish",
	"drum-hitwhistle",
	"drum-slidertick",
	"drum-sliderslide",
	"drum-sliderwhistle",
	"normal-hitnormal",
	"normal-hitclap",
	"normal-hitfinish",
	"normal-hitwhistle",
	"normal-slidertick",
	"normal-sliderslide",
	"normal-sliderwhistle",
	"soft-hitnormal",
	"soft-hitclap",
	"soft-hitfinish",
	"soft-hitwhistle",
	"soft-slidertick",
	"soft-sliderslide",
	"soft-sliderwhistle",
	"spinnerspin",
	"spinnerbonus",
	"spinnerbonus-max",
	"nightcore-kick",
	"nightcore-clap",
	"nightcore-hat",
	"nightcore-finish",
	"taiko-normal-hitnormal",
	"taiko-normal-hitclap",
	"taiko-normal-hitfinish",
	"taiko-normal-hitwhistle",
	"taiko-soft-hitnormal",
	"taiko-soft-hitclap",
	"taiko-soft-hitfinish",
	"taiko-soft-hitwhistle",
	"taiko-drum-hitnormal",
	"taiko-drum-hitclap",
	"taiko-drum-hitfinish",
	"taiko-drum-hitwhistle",
}

var (
	// catalogIndex maps catalog names to their ordinal.
	catalogIndex = buildCatalogIndex()
	// comboBurstIndex is the ordinal of the unnumbered combo-burst slot.
	comboBurstIndex = catalogIndex[comboBurstName]

	// hitSoundNames are the standard-mode hitsound samples.
	hitSoundNames = setOf(
		"drum-hitnormal", "drum-hitclap", "drum-hitfinish", "drum-hitwhistle",
		"drum-slidertick", "drum-sliderslide", "drum-sliderwhistle",
		"normal-hitnormal", "normal-hitclap", "normal-hitfinish", "normal-hitwhistle",
		"normal-slidertick", "normal-sliderslide", "normal-sliderwhistle",
		"soft-hitnormal", "soft-hitclap", "soft-hitfinish", "soft-hitwhistle",
		"soft-slidertick", "soft-sliderslide", "soft-sliderwhistle",
	)
	// taikoHitSoundNames are the taiko-mode hitsound samples.
	taikoHitSoundNames = setOf(
		"taiko-normal-hitnormal", "taiko-normal-hitclap", "taiko-normal-hitfinish", "taiko-normal-hitwhistle",
		"taiko-soft-hitnormal", "taiko-soft-hitclap", "taiko-soft-hitfinish", "taiko-soft-hitwhistle",
		"taiko-drum-hitnormal", "taiko-drum-hitclap", "taiko-drum-hitfinish", "taiko-drum-hitwhistle",
	)
)

// Sound identifies one skin sound: either a catalog entry or a numbered
// combo-burst variant ("comboburst-<digits>"). The zero value is the first
// catalog sound. Sound is comparable and safe to use as a map key.
type Sound struct {
	// digits keeps the literal suffix text of numbered variants.
	digits string
	// index is the catalog ordinal, or numberedIndex for numbered variants.
	index int
}

// ParseSound resolves an identifier to a Sound.
func ParseSound(name string) (Sound, bool) {
	if idx, ok := catalogIndex[name]; ok {
		return Sound{index: idx}, true
	}

	digits, ok := strings.CutPrefix(name, comboBurstPrefix)
	if !ok || !isASCIIDigits(digits) {
		return Sound{}, false
	}

	return Sound{index: numberedIndex, digits: digits}, true
}

// MustParseSound is like ParseSound but panics on unknown identifiers.
func MustParseSound(name string) Sound {
	s, ok := ParseSound(name)
	if !ok {
		panic("skinmute: unknown sound " + strconv.Quote(name))
	}

	return s
}

// IsRecognized reports whether name is a catalog sound or a numbered combo-burst variant.
func IsRecognized(name string) bool {
	_, ok := ParseSound(name)
	return ok
}

// Catalog returns the closed sound catalog in canonical order.
func Catalog() []Sound {
	out := make([]Sound, len(catalogNames))
	for i := range catalogNames {
		out[i] = Sound{index: i}
	}

	return out
}

// HitSounds returns the standard-mode hitsound subset in catalog order.
func HitSounds() []Sound {
	return catalogSubset(hitSoundNames)
}

// TaikoHitSounds returns the taiko-mode hitsound subset in catalog order.
func TaikoHitSounds() []Sound {
	return catalogSubset(taikoHitSoundNames)
}

// String returns the sound identifier.
func (s Sound) String() string {
	if s.index == numberedIndex {
		return comboBurstPrefix + s.digits
	}

	return catalogNames[s.index]
}

// FileName returns the archive member name used for a silenced sound.
func (s Sound) FileName() string {
	return s.String() + ".ogg"
}

// IsNumbered reports whether s is a numbered combo-burst variant.
func (s Sound) IsNumbered() bool {
	return s.index == numberedIndex
}

// Number returns the numeric suffix of a numbered combo-burst variant.
// It reports false for catalog sounds and for suffixes that overflow uint64.
func (s Sound) Number() (uint64, bool) {
	if s.index != numberedIndex {
		return 0, false
	}

	n, err := strconv.ParseUint(s.digits, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// IsHitSound reports whether s belongs to the standard-mode hitsound subset.
func (s Sound) IsHitSound() bool {
	return s.index != numberedIndex && hasName(hitSoundNames, catalogNames[s.index])
}

// IsTaikoHitSound reports whether s belongs to the taiko-mode hitsound subset.
func (s Sound) IsTaikoHitSound() bool {
	return s.index != numberedIndex && hasName(taikoHitSoundNames, catalogNames[s.index])
}

// MarshalText implements encoding.TextMarshaler.
func (s Sound) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sound) UnmarshalText(text []byte) error {
	parsed, ok := ParseSound(string(text))
	if !ok {
		return ErrUnknownSound
	}

	*s = parsed
	return nil
}

// buildCatalogIndex builds the name-to-ordinal lookup.
func buildCatalogIndex() map[string]int {
	m := make(map[string]int, len(catalogNames))
	for i, name := range catalogNames {
		m[name] = i
	}

	return m
}

// catalogSubset returns catalog sounds contained in names, in catalog order.
func catalogSubset(names map[string]struct{}) []Sound {
	out := make([]Sound, 0, len(names))
	for i, name := range catalogNames {
		if hasName(names, name) {
			out = append(out, Sound{index: i})
		}
	}

	return out
}

func setOf(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}

	return m
}

func hasName(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// isASCIIDigits reports whether s is a non-empty run of ASCII digits.
func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
