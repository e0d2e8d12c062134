// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

// soundExtensions is the case-sensitive allow-list of audio member extensions.
var soundExtensions = setOf("wav", "mp3", "ogg")

// Classify maps an archive member name to the sound it provides.
// Only flat root names with a wav, mp3 or ogg extension and a recognized stem classify.
func Classify(name string) (Sound, bool) {
	if !isRootMember(name) {
		return Sound{}, false
	}

	stem, ext := splitFilename(name)
	if !hasName(soundExtensions, ext) {
		return Sound{}, false
	}

	return ParseSound(stem)
}
