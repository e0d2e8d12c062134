// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

const (
	// writerBufferSize is the buffered output size for file rewrites.
	writerBufferSize = 1 << 20
	// flagDataDescriptor is the general purpose flag announcing a trailing data descriptor.
	flagDataDescriptor = 0x8
)

// countingWriter tracks bytes written to the destination.
type countingWriter struct {
	w io.Writer
	n int64
}

// Write implements io.Writer.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Silence writes a rewritten skin archive to out.
//
// Sound members are written first in mapping order: sounds in set become
// "<sound>.ogg" with the placeholder payload, the rest are copied verbatim.
// Passthrough files follow in original order, then directories. Sounds in set
// that the skin does not define are ignored. When an error is returned the
// bytes already written to out do not form a valid archive.
func Silence(ctx context.Context, out io.Writer, skin *Skin, set SoundSet, opts RewriteOptions) (*RewriteResult, error) {
	startedAt := time.Now()

	if out == nil {
		return nil, ErrNilWriter
	}

	if skin == nil {
		return nil, ErrNilSkin
	}

	if ctx == nil {
		ctx = context.Background()
	}

	opts.applyDefaults()

	placeholder, err := resolvePlaceholder(opts)
	if err != nil {
		return nil, err
	}

	cw := &countingWriter{w: out}
	zw := zip.NewWriter(cw)
	registerCompressors(zw, opts.CompressionLevel)

	rw := &rewriter{
		zw:          zw,
		opts:        opts,
		placeholder: placeholder,
		result:      &RewriteResult{Diagnostic: skin.Diagnostic()},
	}

	if err := rw.writeSkin(ctx, skin, set); err != nil {
		return nil, err
	}

	if skin.comment != "" {
		if err := zw.SetComment(skin.comment); err != nil {
			return nil, fmt.Errorf("set archive comment: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	rw.result.Bytes = cw.n
	rw.result.Duration = time.Since(startedAt)

	return rw.result, nil
}

// SilenceBytes rewrites skin into a new in-memory archive.
func SilenceBytes(ctx context.Context, skin *Skin, set SoundSet, opts RewriteOptions) ([]byte, *RewriteResult, error) {
	var buf bytes.Buffer
	res, err := Silence(ctx, &buf, skin, set, opts)
	if err != nil {
		return nil, nil, err
	}

	return buf.Bytes(), res, nil
}

// SilenceFile rewrites skin into outPath. The archive is written to a temporary
// sibling file and renamed into place only after it is fully finalized.
func SilenceFile(ctx context.Context, outPath string, skin *Skin, set SoundSet, opts RewriteOptions) (*RewriteResult, error) {
	if outPath == "" {
		return nil, ErrInvalidArchivePath
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temporary archive: %w", err)
	}

	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriterSize(tmp, writerBufferSize)
	res, err := Silence(ctx, bw, skin, set, opts)
	if err != nil {
		return nil, err
	}

	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flush archive: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync archive: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		tmp = nil
		return nil, fmt.Errorf("move archive into place: %w", err)
	}
	tmp = nil

	return res, nil
}

// rewriter carries state of one rewrite pass.
type rewriter struct {
	zw          *zip.Writer
	result      *RewriteResult
	placeholder []byte
	opts        RewriteOptions
}

// writeSkin writes sounds, passthrough files and directories in that order.
func (rw *rewriter) writeSkin(ctx context.Context, skin *Skin, set SoundSet) error {
	for _, slot := range skin.sounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		if set.Has(slot.sound) {
			if err := rw.writePlaceholder(slot.sound); err != nil {
				return err
			}

			continue
		}

		if err := rw.writeRaw(slot.member, MemberKindSound); err != nil {
			return err
		}
	}

	for _, m := range skin.files {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := rw.writeRaw(m, MemberKindFile); err != nil {
			return err
		}
	}

	for _, m := range skin.dirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := rw.writeDirectory(m); err != nil {
			return err
		}
	}

	return nil
}

// writePlaceholder writes the silent payload under the sound's ogg name.
func (rw *rewriter) writePlaceholder(sound Sound) error {
	name := sound.FileName()
	w, err := rw.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: rw.opts.ModTime,
	})
	if err != nil {
		return fmt.Errorf("create member %s: %w", name, err)
	}

	if _, err := w.Write(rw.placeholder); err != nil {
		return fmt.Errorf("write member %s: %w", name, err)
	}

	rw.result.Silenced = append(rw.result.Silenced, sound)
	rw.done(name, MemberKindSilenced, int64(len(rw.placeholder)))

	return nil
}

// writeRaw copies a file member with its stored payload and header metadata unchanged.
func (rw *rewriter) writeRaw(m *Member, kind MemberKind) error {
	w, err := rw.zw.CreateRaw(m.Metadata.header(m.Name))
	if err != nil {
		return fmt.Errorf("create member %s: %w", m.Name, err)
	}

	if _, err := w.Write(m.raw); err != nil {
		return fmt.Errorf("write member %s: %w", m.Name, err)
	}

	switch kind {
	case MemberKindSound:
		rw.result.SoundEntries++
	default:
		rw.result.FileEntries++
	}
	rw.done(m.Name, kind, m.Size())

	return nil
}

// writeDirectory writes a directory member with its header metadata and no content.
func (rw *rewriter) writeDirectory(m *Member) error {
	fh := m.Metadata.header(m.Name)
	fh.Method = zip.Store
	fh.Flags &^= flagDataDescriptor
	fh.CRC32 = 0
	fh.CompressedSize64 = 0
	fh.UncompressedSize64 = 0

	if _, err := rw.zw.CreateRaw(fh); err != nil {
		return fmt.Errorf("create directory %s: %w", m.Name, err)
	}

	rw.result.DirectoryEntries++
	rw.done(m.Name, MemberKindDirectory, 0)

	return nil
}

// done records one written member and notifies observers.
func (rw *rewriter) done(name string, kind MemberKind, size int64) {
	rw.result.WrittenEntries++
	rw.opts.Logger.Debug("skin member written",
		slog.String("name", name),
		slog.String("kind", string(kind)),
		slog.Int64("size", size),
	)

	if rw.opts.OnEntryDone != nil {
		rw.opts.OnEntryDone(RewriteProgress{Name: name, Kind: kind, Size: size})
	}
}
