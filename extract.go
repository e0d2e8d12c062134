// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// ExtractFileMode controls how existing output files are handled.
type ExtractFileMode string

const (
	// ExtractFileModeTruncate creates or truncates output files.
	ExtractFileModeTruncate ExtractFileMode = "truncate"
	// ExtractFileModeCreateOnly fails when an output file already exists.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// ExtractOptions configures Extract.
type ExtractOptions struct {
	// OnEntryDone is called after each member is written. It may be called
	// concurrently from several workers.
	OnEntryDone func(entry ExtractProgress) `json:"-" yaml:"-"`
	// FileMode defaults to ExtractFileModeTruncate.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// MaxWorkers defaults to GOMAXPROCS.
	MaxWorkers int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`
	// SoundsOnly skips passthrough files and directories.
	SoundsOnly bool `json:"sounds_only,omitempty" yaml:"sounds_only,omitempty"`
	// RawNames disables segment sanitization. Traversal is still rejected.
	RawNames bool `json:"raw_names,omitempty" yaml:"raw_names,omitempty"`
}

// ExtractProgress describes one extracted member.
type ExtractProgress struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// extractWorkItem stores one member with its prepared output relative path.
type extractWorkItem struct {
	member  *Member
	relPath string
	relDir  string
}

// Extract writes the skin's effective members to dstDir: the winning member
// of every sound, then passthrough files and directories. Output names are
// made unique so superseded or colliding names never overwrite each other.
// It returns the number of files written.
func Extract(ctx context.Context, skin *Skin, dstDir string, opts ExtractOptions) (int, error) {
	if skin == nil {
		return 0, ErrNilSkin
	}

	if ctx == nil {
		ctx = context.Background()
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	fileMode := opts.FileMode
	if fileMode == "" {
		fileMode = ExtractFileModeTruncate
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return 0, fmt.Errorf("resolve output dir: %w", err)
	}

	workItems, dirs, err := prepareExtractWorkItems(skin, opts)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	if err := prepareExtractDirs(dstRootAbs, dirs, workItems); err != nil {
		return 0, err
	}

	if len(workItems) == 0 {
		return 0, nil
	}

	taskCh := make(chan extractWorkItem, len(workItems))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		first   error
		written int
	)
	for range min(workers, len(workItems)) {
		wg.Go(func() {
			for task := range taskCh {
				err := extractMember(ctx, dstRootAbs, task, fileMode, opts.OnEntryDone)

				mu.Lock()
				switch {
				case err == nil:
					written++
				case first == nil:
					first = err
					cancel()
				}
				mu.Unlock()
			}
		})
	}

	for _, task := range workItems {
		taskCh <- task
	}
	close(taskCh)
	wg.Wait()

	return written, first
}

// prepareExtractWorkItems allocates output paths for members in write order.
func prepareExtractWorkItems(skin *Skin, opts ExtractOptions) ([]extractWorkItem, []string, error) {
	members := make([]*Member, 0, len(skin.sounds)+len(skin.files))
	for _, slot := range skin.sounds {
		members = append(members, slot.member)
	}

	if !opts.SoundsOnly {
		members = append(members, skin.files...)
	}

	alloc := newPathAllocator(len(members)+len(skin.dirs), opts.RawNames)

	var dirs []string
	if !opts.SoundsOnly {
		for _, m := range skin.dirs {
			rel, err := alloc.reserve(m.Name)
			if err != nil {
				return nil, nil, err
			}
			dirs = append(dirs, filepath.FromSlash(rel))
		}
	}

	workItems := make([]extractWorkItem, 0, len(members))
	for _, m := range members {
		rel, err := alloc.allocate(m.Name)
		if err != nil {
			return nil, nil, err
		}

		relPath := filepath.FromSlash(rel)
		relDir := filepath.Dir(relPath)
		if relDir == "." {
			relDir = ""
		}

		workItems = append(workItems, extractWorkItem{member: m, relPath: relPath, relDir: relDir})
	}

	return workItems, dirs, nil
}

// prepareExtractDirs creates directory members and all parent directories needed by work items.
func prepareExtractDirs(dstRootAbs string, dirs []string, workItems []extractWorkItem) error {
	seen := make(map[string]struct{}, len(dirs)+len(workItems))
	create := func(rel string) error {
		if rel == "" {
			return nil
		}

		dirPath := filepath.Join(dstRootAbs, rel)
		key := strings.ToLower(dirPath)
		if _, exists := seen[key]; exists {
			return nil
		}

		seen[key] = struct{}{}
		if err := os.MkdirAll(dirPath, 0o750); err != nil {
			return fmt.Errorf("create output directory %s: %w", dirPath, err)
		}

		return nil
	}

	for _, rel := range dirs {
		if err := create(rel); err != nil {
			return err
		}
	}

	for _, task := range workItems {
		if err := create(task.relDir); err != nil {
			return err
		}
	}

	return nil
}

// extractMember writes one prepared work item below the destination root.
func extractMember(
	ctx context.Context,
	dstRootAbs string,
	task extractWorkItem,
	fileMode ExtractFileMode,
	onEntryDone func(entry ExtractProgress),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	outPath := filepath.Join(dstRootAbs, task.relPath)
	file, err := openExtractFile(outPath, fileMode)
	if err != nil {
		return fmt.Errorf("open %s: %w", task.member.Name, err)
	}

	_, writeErr := file.Write(task.member.Content())
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", task.member.Name, writeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", task.member.Name, closeErr)
	}

	if onEntryDone != nil {
		onEntryDone(ExtractProgress{Name: task.member.Name, Path: outPath, Size: task.member.Size()})
	}

	return nil
}

// openExtractFile opens output path according to selected extract file mode.
func openExtractFile(path string, mode ExtractFileMode) (*os.File, error) {
	switch mode {
	case ExtractFileModeTruncate:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	case ExtractFileModeCreateOnly:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	default:
		return nil, fmt.Errorf("unknown extract file mode %q", mode)
	}
}
