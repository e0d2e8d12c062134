// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/woozymasta/pathrules"
)

// Editor accumulates silence operations for one skin file and applies them on Commit.
type Editor struct {
	path string
	ops  []editOperation
	opts EditOptions
}

// editOperation stores one staged editor operation.
type editOperation struct {
	sounds []Sound
	rules  []pathrules.Rule
	kind   editOperationKind
}

// editOperationKind identifies staged edit action type.
type editOperationKind uint8

const (
	// editOperationSilence adds exact sounds to the silence set.
	editOperationSilence editOperationKind = iota + 1
	// editOperationSilenceMatching adds sounds matched by rules to the silence set.
	editOperationSilenceMatching
	// editOperationKeep removes exact sounds from the silence set.
	editOperationKeep
)

// OpenEditor creates a staged editor for an in-place skin rewrite.
func OpenEditor(path string, opts EditOptions) (*Editor, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrInvalidArchivePath
	}

	opts.applyDefaults()

	return &Editor{
		path: trimmedPath,
		opts: opts,
		ops:  make([]editOperation, 0, 4),
	}, nil
}

// Silence schedules silencing exact sounds.
func (e *Editor) Silence(sounds ...Sound) error {
	if e == nil {
		return ErrNilEditor
	}

	if len(sounds) == 0 {
		return nil
	}

	e.ops = append(e.ops, editOperation{
		kind:   editOperationSilence,
		sounds: append([]Sound(nil), sounds...),
	})

	return nil
}

// SilenceMatching schedules silencing every sound matched by rules.
func (e *Editor) SilenceMatching(rules ...pathrules.Rule) error {
	if e == nil {
		return ErrNilEditor
	}

	if _, err := newSoundMatcher(rules); err != nil {
		return err
	}

	if len(rules) == 0 {
		return nil
	}

	e.ops = append(e.ops, editOperation{
		kind:  editOperationSilenceMatching,
		rules: append([]pathrules.Rule(nil), rules...),
	})

	return nil
}

// Keep schedules removing sounds from the silence set staged so far.
func (e *Editor) Keep(sounds ...Sound) error {
	if e == nil {
		return ErrNilEditor
	}

	if len(sounds) == 0 {
		return nil
	}

	e.ops = append(e.ops, editOperation{
		kind:   editOperationKeep,
		sounds: append([]Sound(nil), sounds...),
	})

	return nil
}

// Commit applies all staged operations in one rewrite transaction.
// The archive is moved to "<path>.bak", rewritten from the backup, and
// restored from the backup when the rewrite fails.
func (e *Editor) Commit(ctx context.Context) (*RewriteResult, error) {
	if e == nil {
		return nil, ErrNilEditor
	}

	if ctx == nil {
		ctx = context.Background()
	}

	lock := flock.New(e.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire edit lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrArchiveLocked, e.path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	backupPath := e.path + ".bak"
	if err := prepareBackupSlot(backupPath, e.opts.BackupKeep); err != nil {
		return nil, err
	}

	if err := os.Rename(e.path, backupPath); err != nil {
		return nil, fmt.Errorf("move archive to backup: %w", err)
	}

	res, err := e.commitFromBackup(ctx, backupPath)
	if err != nil {
		rollbackErr := rollbackFromBackup(e.path, backupPath)
		if rollbackErr != nil {
			return nil, fmt.Errorf("%w (rollback failed: %w)", err, rollbackErr)
		}

		return nil, err
	}

	if e.opts.BackupKeep == 0 {
		if err := removeIfExists(backupPath); err != nil {
			return nil, fmt.Errorf("remove backup: %w", err)
		}
	}

	return res, nil
}

// commitFromBackup parses the backup and writes the edited archive to the original path.
func (e *Editor) commitFromBackup(ctx context.Context, backupPath string) (*RewriteResult, error) {
	skin, err := ParseFile(ctx, backupPath, e.opts.ParseOptions)
	if err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}

	set, err := buildSilenceSet(skin, e.ops)
	if err != nil {
		return nil, err
	}

	return SilenceFile(ctx, e.path, skin, set, e.opts.RewriteOptions)
}

// buildSilenceSet applies staged operations in order and returns the final silence set.
func buildSilenceSet(skin *Skin, ops []editOperation) (SoundSet, error) {
	set := make(SoundSet)
	for _, op := range ops {
		switch op.kind {
		case editOperationSilence:
			set.Add(op.sounds...)
		case editOperationSilenceMatching:
			matched, err := SelectSounds(skin, op.rules)
			if err != nil {
				return nil, err
			}

			for sound := range matched {
				set.Add(sound)
			}
		case editOperationKeep:
			for _, sound := range op.sounds {
				delete(set, sound)
			}
		default:
			return nil, fmt.Errorf("unknown edit operation kind: %d", op.kind)
		}
	}

	return set, nil
}

// prepareBackupSlot rotates/removes existing backup generations before new commit.
func prepareBackupSlot(backupPath string, keep int) error {
	if keep < 0 {
		keep = 0
	}

	switch keep {
	case 0, 1:
		return removeIfExists(backupPath)
	default:
		oldest := fmt.Sprintf("%s.%d", backupPath, keep-1)
		if err := removeIfExists(oldest); err != nil {
			return err
		}

		for i := keep - 2; i >= 1; i-- {
			from := fmt.Sprintf("%s.%d", backupPath, i)
			to := fmt.Sprintf("%s.%d", backupPath, i+1)
			if err := renameIfExists(from, to); err != nil {
				return err
			}
		}

		return renameIfExists(backupPath, backupPath+".1")
	}
}

// renameIfExists renames source to destination when source exists.
func renameIfExists(from string, to string) error {
	_, err := os.Stat(from)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", from, err)
	}

	if err := removeIfExists(to); err != nil {
		return err
	}

	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s to %s: %w", from, to, err)
	}

	return nil
}

// removeIfExists removes file when present.
func removeIfExists(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) || err == nil {
		return nil
	}

	return fmt.Errorf("remove %s: %w", path, err)
}

// rollbackFromBackup restores backup on failed commit.
func rollbackFromBackup(path string, backupPath string) error {
	_ = os.Remove(path)

	if err := os.Rename(backupPath, path); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	return nil
}
