// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

var testRewriteTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestSilenceMixedSkin(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t,
		fileEntry("heartbeat.ogg", "beat"),
		fileEntry("unknownfile.txt", "hello"),
		dirEntry("sfx/"),
		fileEntry("skin.ini", "[General]\nVersion: 2.3\n"),
	)

	out, res, err := SilenceBytes(t.Context(), skin, NewSoundSet(MustParseSound("heartbeat")), RewriteOptions{ModTime: testRewriteTime})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	zr := readArchive(t, out)
	want := []string{"heartbeat.ogg", "unknownfile.txt", "skin.ini", "sfx/"}
	if got := archiveNames(zr); !slices.Equal(got, want) {
		t.Fatalf("members=%v, want %v", got, want)
	}

	if got := readArchiveFile(t, zr, "heartbeat.ogg"); !bytes.Equal(got, mustPlaceholder(t)) {
		t.Fatal("heartbeat.ogg is not the placeholder")
	}

	if got := readArchiveFile(t, zr, "unknownfile.txt"); string(got) != "hello" {
		t.Fatalf("unknownfile.txt=%q, want hello", got)
	}

	if !archiveFile(t, zr, "sfx/").Mode().IsDir() {
		t.Fatal("sfx/ is not a directory")
	}

	silenced := archiveFile(t, zr, "heartbeat.ogg")
	if silenced.Method != zip.Deflate {
		t.Fatalf("silenced method=%d, want deflate", silenced.Method)
	}

	if !silenced.Modified.Equal(testRewriteTime) {
		t.Fatalf("silenced Modified=%v, want %v", silenced.Modified, testRewriteTime)
	}

	if res.WrittenEntries != 4 || res.SoundEntries != 0 || res.FileEntries != 2 || res.DirectoryEntries != 1 {
		t.Fatalf("result=%+v", res)
	}

	if len(res.Silenced) != 1 || res.Silenced[0] != MustParseSound("heartbeat") {
		t.Fatalf("Silenced=%v, want [heartbeat]", res.Silenced)
	}

	if res.Bytes != int64(len(out)) {
		t.Fatalf("Bytes=%d, want %d", res.Bytes, len(out))
	}
}

func TestSilenceRenamesToOgg(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("applause.wav", "loud"), fileEntry("comboburst-2.mp3", "c"))
	set := NewSoundSet(MustParseSound("applause"), MustParseSound("comboburst-2"))

	out, _, err := SilenceBytes(t.Context(), skin, set, RewriteOptions{})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	want := []string{"applause.ogg", "comboburst-2.ogg"}
	if got := archiveNames(readArchive(t, out)); !slices.Equal(got, want) {
		t.Fatalf("members=%v, want %v", got, want)
	}
}

func TestSilenceIgnoresAbsentSounds(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("heartbeat.ogg", "beat"))
	out, res, err := SilenceBytes(t.Context(), skin, NewSoundSet(MustParseSound("whoosh")), RewriteOptions{})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	zr := readArchive(t, out)
	if got := archiveNames(zr); !slices.Equal(got, []string{"heartbeat.ogg"}) {
		t.Fatalf("members=%v, want [heartbeat.ogg]", got)
	}

	if string(readArchiveFile(t, zr, "heartbeat.ogg")) != "beat" {
		t.Fatal("heartbeat.ogg must be unchanged")
	}

	if len(res.Silenced) != 0 || res.SoundEntries != 1 {
		t.Fatalf("result=%+v", res)
	}
}

func TestSilenceSupersededSoundNotDuplicated(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("whoosh.wav", "first"), fileEntry("whoosh.ogg", "second"))

	out, _, err := SilenceBytes(t.Context(), skin, nil, RewriteOptions{})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	zr := readArchive(t, out)
	if got := archiveNames(zr); !slices.Equal(got, []string{"whoosh.ogg"}) {
		t.Fatalf("members=%v, want [whoosh.ogg]", got)
	}

	if string(readArchiveFile(t, zr, "whoosh.ogg")) != "second" {
		t.Fatal("last enumerated member must win")
	}
}

func TestSilencePreservesMetadata(t *testing.T) {
	t.Parallel()

	data := buildTestArchive(t, "archive note",
		testEntry{name: "menuhit.wav", data: "hit hit hit", comment: "sound note", method: zip.Deflate},
		testEntry{name: "readme.txt", data: "stored text", comment: "file note", method: zip.Store},
		testEntry{name: "images/", dir: true, comment: "dir note"},
	)

	skin, err := Parse(t.Context(), data, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out, _, err := SilenceBytes(t.Context(), skin, nil, RewriteOptions{})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	src := readArchive(t, data)
	dst := readArchive(t, out)
	if dst.Comment != "archive note" {
		t.Fatalf("archive comment=%q", dst.Comment)
	}

	for _, name := range []string{"menuhit.wav", "readme.txt", "images/"} {
		a := archiveFile(t, src, name).FileHeader
		b := archiveFile(t, dst, name).FileHeader

		if a.Method != b.Method || a.Comment != b.Comment || a.CRC32 != b.CRC32 ||
			a.CompressedSize64 != b.CompressedSize64 || a.UncompressedSize64 != b.UncompressedSize64 ||
			a.ModifiedTime != b.ModifiedTime || a.ModifiedDate != b.ModifiedDate ||
			a.ExternalAttrs != b.ExternalAttrs || a.CreatorVersion != b.CreatorVersion ||
			!bytes.Equal(a.Extra, b.Extra) || !a.Modified.Equal(b.Modified) {
			t.Fatalf("%s: header changed\n src=%+v\n dst=%+v", name, a, b)
		}
	}

	for _, name := range []string{"menuhit.wav", "readme.txt"} {
		if !bytes.Equal(readArchiveFile(t, src, name), readArchiveFile(t, dst, name)) {
			t.Fatalf("%s: content changed", name)
		}
	}
}

func TestSilenceIdempotent(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("applause.wav", "loud"), fileEntry("notes.txt", "n"))
	set := NewSoundSet(MustParseSound("applause"))
	opts := RewriteOptions{ModTime: testRewriteTime}

	first, _, err := SilenceBytes(t.Context(), skin, set, opts)
	if err != nil {
		t.Fatalf("first SilenceBytes: %v", err)
	}

	again, err := Parse(t.Context(), first, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse rewritten: %v", err)
	}

	second, _, err := SilenceBytes(t.Context(), again, set, opts)
	if err != nil {
		t.Fatalf("second SilenceBytes: %v", err)
	}

	zr1 := readArchive(t, first)
	zr2 := readArchive(t, second)
	if !slices.Equal(archiveNames(zr1), archiveNames(zr2)) {
		t.Fatalf("members differ: %v vs %v", archiveNames(zr1), archiveNames(zr2))
	}

	for _, name := range archiveNames(zr1) {
		if !bytes.Equal(readArchiveFile(t, zr1, name), readArchiveFile(t, zr2, name)) {
			t.Fatalf("%s: content differs between passes", name)
		}
	}
}

func TestSilenceCustomPlaceholder(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("whoosh.wav", "w"))
	out, _, err := SilenceBytes(t.Context(), skin, NewSoundSet(MustParseSound("whoosh")), RewriteOptions{
		Placeholder:      []byte("quiet"),
		CompressionLevel: 9,
	})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	if got := readArchiveFile(t, readArchive(t, out), "whoosh.ogg"); string(got) != "quiet" {
		t.Fatalf("whoosh.ogg=%q, want quiet", got)
	}
}

func TestSilenceProgress(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("whoosh.wav", "w"), fileEntry("a.txt", "a"), dirEntry("d/"))

	var kinds []MemberKind
	_, _, err := SilenceBytes(t.Context(), skin, NewSoundSet(MustParseSound("whoosh")), RewriteOptions{
		OnEntryDone: func(p RewriteProgress) { kinds = append(kinds, p.Kind) },
	})
	if err != nil {
		t.Fatalf("SilenceBytes: %v", err)
	}

	want := []MemberKind{MemberKindSilenced, MemberKindFile, MemberKindDirectory}
	if !slices.Equal(kinds, want) {
		t.Fatalf("progress kinds=%v, want %v", kinds, want)
	}
}

func TestSilenceErrors(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("a.txt", "a"))

	if _, err := Silence(t.Context(), nil, skin, nil, RewriteOptions{}); !errors.Is(err, ErrNilWriter) {
		t.Fatalf("nil writer error=%v, want ErrNilWriter", err)
	}

	if _, err := Silence(t.Context(), &bytes.Buffer{}, nil, nil, RewriteOptions{}); !errors.Is(err, ErrNilSkin) {
		t.Fatalf("nil skin error=%v, want ErrNilSkin", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := Silence(ctx, &bytes.Buffer{}, skin, nil, RewriteOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled error=%v, want context.Canceled", err)
	}
}

func TestSilenceFile(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("applause.wav", "loud"), fileEntry("skin.ini", "Version: 2.0"))
	outPath := filepath.Join(t.TempDir(), "out.osk")

	res, err := SilenceFile(t.Context(), outPath, skin, NewSoundSet(MustParseSound("applause")), RewriteOptions{})
	if err != nil {
		t.Fatalf("SilenceFile: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if res.Bytes != int64(len(data)) {
		t.Fatalf("Bytes=%d, file size=%d", res.Bytes, len(data))
	}

	entries, err := os.ReadDir(filepath.Dir(outPath))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}

	if _, err := SilenceFile(t.Context(), "", skin, nil, RewriteOptions{}); !errors.Is(err, ErrInvalidArchivePath) {
		t.Fatalf("empty path error=%v, want ErrInvalidArchivePath", err)
	}
}

func TestSilenceFileFailureLeavesNoOutput(t *testing.T) {
	t.Parallel()

	skin := parseTestArchive(t, fileEntry("a.txt", "a"))
	outPath := filepath.Join(t.TempDir(), "out.osk")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := SilenceFile(ctx, outPath, skin, nil, RewriteOptions{}); err == nil {
		t.Fatal("expected error")
	}

	entries, err := os.ReadDir(filepath.Dir(outPath))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if len(entries) != 0 {
		t.Fatalf("failed rewrite left %d entries", len(entries))
	}
}

func TestRewriteOptionsCompressionLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{name: "unset", level: 0, want: DefaultCompressionLevel},
		{name: "huffman only", level: flate.HuffmanOnly, want: flate.HuffmanOnly},
		{name: "best speed", level: flate.BestSpeed, want: flate.BestSpeed},
		{name: "best compression", level: flate.BestCompression, want: flate.BestCompression},
		{name: "below range", level: flate.HuffmanOnly - 1, want: DefaultCompressionLevel},
		{name: "above range", level: flate.BestCompression + 1, want: DefaultCompressionLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := RewriteOptions{CompressionLevel: tc.level}
			opts.applyDefaults()
			if opts.CompressionLevel != tc.want {
				t.Fatalf("CompressionLevel=%d, want %d", opts.CompressionLevel, tc.want)
			}
		})
	}
}

func TestSilenceReportsDiagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []testEntry
		want    *Diagnostic
	}{
		{
			name:    "missing config",
			entries: []testEntry{fileEntry("heartbeat.ogg", "beat")},
			want:    &Diagnostic{Kind: DiagnosticMissingConfig},
		},
		{
			name:    "latest",
			entries: []testEntry{fileEntry("skin.ini", "Version: latest")},
			want:    &Diagnostic{Kind: DiagnosticVersionLatest, Version: "latest"},
		},
		{
			name:    "recognized",
			entries: []testEntry{fileEntry("skin.ini", "Version: 2.7")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			skin := parseTestArchive(t, tc.entries...)
			_, res, err := SilenceBytes(t.Context(), skin, nil, RewriteOptions{})
			if err != nil {
				t.Fatalf("SilenceBytes: %v", err)
			}

			switch {
			case tc.want == nil && res.Diagnostic != nil:
				t.Fatalf("Diagnostic=%+v, want nil", *res.Diagnostic)
			case tc.want != nil && (res.Diagnostic == nil || *res.Diagnostic != *tc.want):
				t.Fatalf("Diagnostic=%+v, want %+v", res.Diagnostic, *tc.want)
			}
		})
	}
}
