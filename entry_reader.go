// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxContentPrealloc caps buffer preallocation from a declared uncompressed size.
const maxContentPrealloc = 64 << 20

// readMember materializes decompressed content and stored payload of one file member.
// Declared sizes only size the initial buffers: the stored payload hint is
// bounded by archiveSize, the content hint by maxContentPrealloc.
func readMember(f *zip.File, archiveSize int64) (*Member, error) {
	content, err := readAllBounded(f.Open, f.UncompressedSize64, maxContentPrealloc)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	raw, err := readAllBounded(func() (io.ReadCloser, error) {
		r, err := f.OpenRaw()
		if err != nil {
			return nil, err
		}

		return io.NopCloser(r), nil
	}, f.CompressedSize64, max(archiveSize, 0))
	if err != nil {
		return nil, fmt.Errorf("read stored payload: %w", err)
	}

	return &Member{
		Name:     f.Name,
		Metadata: metadataFromHeader(&f.FileHeader),
		content:  content,
		raw:      raw,
	}, nil
}

// readAllBounded reads one stream fully. It preallocates sizeHint bytes only
// when the hint does not exceed growLimit; larger streams grow on demand.
func readAllBounded(open func() (io.ReadCloser, error), sizeHint uint64, growLimit int64) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	if sizeHint > 0 && growLimit > 0 && sizeHint <= uint64(growLimit) {
		buf.Grow(int(sizeHint))
	}

	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeConfigText decodes configuration bytes as UTF-8, honouring UTF-8 and UTF-16 byte order marks.
// Invalid UTF-8 sequences are replaced rather than rejected.
func decodeConfigText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}

	return string(text), nil
}
