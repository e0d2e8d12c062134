// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

/*
Package skinmute parses skin archives (.osk ZIP containers), classifies their
members against the fixed sound taxonomy, and rewrites them with a selected
set of sounds replaced by a silent placeholder. Every other member keeps its
stored payload and header metadata byte-for-byte.

Classification rules (summary):
  - only root members (no "/" in the name) are sounds;
  - the extension after the last dot must be wav, mp3 or ogg (case-sensitive);
  - the stem must be a catalog sound or "comboburst-<digits>";
  - when several members provide one sound, the last one wins.

# Reading

Parse an archive and inspect its sounds:

	skin, err := skinmute.ParseFile(ctx, "skin.osk", skinmute.ParseOptions{})
	if err != nil {
	    return err
	}
	if d := skin.Diagnostic(); d != nil {
	    log.Printf("warning: %s", d)
	}
	for _, sound := range skinmute.SortedSounds(skin) {
	    member, ok := skin.SoundFile(sound)
	    _, _ = member, ok
	}

A member that cannot be read fails the whole parse:

	var memberErr *skinmute.MemberError
	if errors.As(err, &memberErr) {
	    log.Printf("broken member %s", memberErr.Name)
	}

# Silencing

Rewrite with an explicit set, or select sounds with gitignore-style rules
(github.com/woozymasta/pathrules):

	set := skinmute.NewSoundSet(skinmute.HitSounds()...)
	matched, err := skinmute.SelectSounds(skin, skinmute.ParseRules("menu-*-hover", "!menu-play-hover"))
	if err != nil {
	    return err
	}
	for sound := range matched {
	    set.Add(sound)
	}
	res, err := skinmute.SilenceFile(ctx, "skin-silenced.osk", skin, set, skinmute.RewriteOptions{})

To edit an archive in place with backup rotation:

	editor, err := skinmute.OpenEditor("skin.osk", skinmute.EditOptions{BackupKeep: 1})
	if err != nil {
	    return err
	}
	if err := editor.Silence(skinmute.MustParseSound("applause")); err != nil {
	    return err
	}
	if _, err := editor.Commit(ctx); err != nil {
	    return err
	}
*/
package skinmute
