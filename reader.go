// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zip"
)

// Parse parses a skin archive held in memory.
func Parse(ctx context.Context, data []byte, opts ParseOptions) (*Skin, error) {
	return ParseReaderAt(ctx, bytes.NewReader(data), int64(len(data)), opts)
}

// ParseFile opens a skin archive by path and parses it. The file is closed before returning.
func ParseFile(ctx context.Context, path string, opts ParseOptions) (*Skin, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ParseReaderAt(ctx, f, size, opts)
}

// ParseReaderAt parses a skin archive from a random-access source of known size.
//
// Every non-directory member is read fully; the first unreadable member fails
// the whole parse with a *MemberError and no partial skin is returned.
// Context cancellation is reported the same way for the member being read.
func ParseReaderAt(ctx context.Context, ra io.ReaderAt, size int64, opts ParseOptions) (*Skin, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	if ctx == nil {
		ctx = context.Background()
	}

	opts.applyDefaults()

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableContainer, err)
	}
	registerDecompressors(zr)

	skin := &Skin{
		soundIndex: make(map[Sound]int),
		comment:    zr.Comment,
	}

	for _, f := range zr.File {
		if f.Mode().IsDir() {
			skin.dirs = append(skin.dirs, &Member{
				Name:     f.Name,
				Metadata: metadataFromHeader(&f.FileHeader),
				Dir:      true,
			})
			opts.Logger.Debug("skin directory", slog.String("name", f.Name))

			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, &MemberError{Name: f.Name, Err: err}
		}

		member, err := readMember(f, size)
		if err != nil {
			return nil, &MemberError{Name: f.Name, Err: err}
		}

		if sound, ok := Classify(f.Name); ok {
			skin.putSound(sound, member)
			opts.Logger.Debug("skin sound", slog.String("name", f.Name), slog.String("sound", sound.String()))

			continue
		}

		skin.files = append(skin.files, member)
		opts.Logger.Debug("skin file", slog.String("name", f.Name))
	}

	skin.inspectConfig(zr.File, opts.Logger)

	return skin, nil
}

// inspectConfig locates the root configuration member and records version and diagnostic.
func (s *Skin) inspectConfig(files []*zip.File, logger *slog.Logger) {
	config := s.configMember(files)
	if config == nil {
		s.diagnostic = &Diagnostic{Kind: DiagnosticMissingConfig}
		return
	}

	text, err := decodeConfigText(config.Content())
	if err != nil {
		logger.Debug("skin config not decodable", slog.String("name", config.Name), slog.Any("error", err))
		return
	}

	s.version = DetectVersion(text)
	switch s.version.Kind {
	case VersionLatest:
		s.diagnostic = &Diagnostic{Kind: DiagnosticVersionLatest, Version: s.version.Raw}
	case VersionUnknown:
		s.diagnostic = &Diagnostic{Kind: DiagnosticVersionUnknown, Version: s.version.Raw}
	}
}

// configMember returns the parsed member of the first archive entry named ConfigEntryName.
func (s *Skin) configMember(files []*zip.File) *Member {
	for _, f := range files {
		if f.Name != ConfigEntryName {
			continue
		}

		if f.Mode().IsDir() {
			return nil
		}

		for _, m := range s.files {
			if m.Name == ConfigEntryName {
				return m
			}
		}

		return nil
	}

	return nil
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open skin: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat: %w", err)
	}

	return f, fi.Size(), nil
}
