// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"errors"
	"fmt"
)

// Sentinel errors for skin operations. Use errors.Is in callers.
var (
	// ErrUnreadableContainer means the archive cannot be opened or enumerated.
	ErrUnreadableContainer = errors.New("cannot read skin archive")
	// ErrUnreadableMember means one archive member content cannot be read.
	ErrUnreadableMember = errors.New("cannot read skin archive member")
	// ErrNilSkin means the skin model is nil.
	ErrNilSkin = errors.New("skin is nil")
	// ErrNilEditor means the editor is nil.
	ErrNilEditor = errors.New("editor is nil")
	// ErrNilReader means the reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrNilWriter means the writer is nil.
	ErrNilWriter = errors.New("writer is nil")
	// ErrUnknownSound means an identifier is neither a catalog sound nor a numbered combo-burst.
	ErrUnknownSound = errors.New("unknown sound")
	// ErrInvalidSoundRules means one or more sound selection rules are invalid.
	ErrInvalidSoundRules = errors.New("invalid sound rules")
	// ErrInvalidPlaceholder means the embedded placeholder payload cannot be decoded.
	ErrInvalidPlaceholder = errors.New("invalid placeholder payload")
	// ErrInvalidExtractPath means a member name cannot be mapped to a safe output path.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrInvalidArchivePath means the archive path is empty.
	ErrInvalidArchivePath = errors.New("invalid archive path")
	// ErrArchiveLocked means another process holds the archive edit lock.
	ErrArchiveLocked = errors.New("archive is locked by another editor")
)

// MemberError reports an archive member whose content cannot be read.
type MemberError struct {
	// Err is the underlying read failure.
	Err error
	// Name is the offending member name.
	Name string
}

// Error implements error.
func (e *MemberError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrUnreadableMember, e.Name, e.Err)
}

// Unwrap exposes ErrUnreadableMember and the underlying cause.
func (e *MemberError) Unwrap() []error {
	return []error{ErrUnreadableMember, e.Err}
}
