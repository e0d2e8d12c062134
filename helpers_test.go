// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

// testModified is the fixed modification time of members in test archives.
var testModified = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

// testEntry describes one member of an in-memory test archive.
type testEntry struct {
	name    string
	data    string
	comment string
	method  uint16
	dir     bool
}

func fileEntry(name string, data string) testEntry {
	return testEntry{name: name, data: data, method: zip.Deflate}
}

func storedEntry(name string, data string) testEntry {
	return testEntry{name: name, data: data, method: zip.Store}
}

func dirEntry(name string) testEntry {
	return testEntry{name: name, dir: true}
}

// buildTestArchive writes entries into an in-memory zip archive.
func buildTestArchive(t *testing.T, comment string, entries ...testEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		fh := &zip.FileHeader{
			Name:     e.name,
			Method:   e.method,
			Modified: testModified,
			Comment:  e.comment,
		}
		if e.dir {
			fh.SetMode(fs.ModeDir | 0o755)
		}

		w, err := zw.CreateHeader(fh)
		if err != nil {
			t.Fatalf("CreateHeader(%q): %v", e.name, err)
		}

		if e.dir {
			continue
		}

		if _, err := w.Write([]byte(e.data)); err != nil {
			t.Fatalf("write %q: %v", e.name, err)
		}
	}

	if comment != "" {
		if err := zw.SetComment(comment); err != nil {
			t.Fatalf("SetComment: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	return buf.Bytes()
}

// parseTestArchive builds and parses a test archive.
func parseTestArchive(t *testing.T, entries ...testEntry) *Skin {
	t.Helper()

	skin, err := Parse(t.Context(), buildTestArchive(t, "", entries...), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	return skin
}

// writeTestArchive stores a test archive in a temporary directory and returns its path.
func writeTestArchive(t *testing.T, entries ...testEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skin.osk")
	if err := os.WriteFile(path, buildTestArchive(t, "", entries...), 0o600); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	return path
}

// readArchive opens data as a zip archive.
func readArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	return zr
}

// archiveNames returns member names in archive order.
func archiveNames(zr *zip.Reader) []string {
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	return names
}

// archiveFile returns the first member named name.
func archiveFile(t *testing.T, zr *zip.Reader, name string) *zip.File {
	t.Helper()

	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}

	t.Fatalf("member %q not found in %v", name, archiveNames(zr))
	return nil
}

// readArchiveFile returns decoded content of a named member.
func readArchiveFile(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()

	rc, err := archiveFile(t, zr, name).Open()
	if err != nil {
		t.Fatalf("open %q: %v", name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %q: %v", name, err)
	}

	return data
}

func mustPlaceholder(t *testing.T) []byte {
	t.Helper()

	data, err := Placeholder()
	if err != nil {
		t.Fatalf("Placeholder: %v", err)
	}

	return data
}
