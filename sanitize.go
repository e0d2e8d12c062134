// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"fmt"
	"hash/fnv"
	"path"
	"strconv"
	"strings"
	"unicode"
)

// maxSanitizedSegmentLen limits one path segment to common filesystem-safe length.
const maxSanitizedSegmentLen = 240

// reservedDeviceNames contains case-insensitive reserved Windows device names.
var reservedDeviceNames = setOf(
	"con", "prn", "aux", "nul", "clock$", "conin$", "conout$",
	"com1", "com2", "com3", "com4", "com5", "com6", "com7", "com8", "com9",
	"lpt1", "lpt2", "lpt3", "lpt4", "lpt5", "lpt6", "lpt7", "lpt8", "lpt9",
)

// SanitizePath rewrites a member name to a deterministic filesystem-safe
// slash-separated relative path.
func SanitizePath(name string) (string, error) {
	normalized, err := normalizeExtractPath(name)
	if err != nil {
		return "", err
	}

	return sanitizeRelativePath(normalized)
}

// pathAllocator hands out collision-free output paths, comparing case-insensitively.
type pathAllocator struct {
	used       map[string]struct{}
	nextSuffix map[string]int
	raw        bool
}

func newPathAllocator(capacity int, raw bool) *pathAllocator {
	return &pathAllocator{
		used:       make(map[string]struct{}, capacity),
		nextSuffix: make(map[string]int, capacity),
		raw:        raw,
	}
}

// allocate normalizes name, sanitizes it unless raw, and makes it unique.
func (a *pathAllocator) allocate(name string) (string, error) {
	rel, err := normalizeExtractPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}

	if !a.raw {
		if rel, err = sanitizeRelativePath(rel); err != nil {
			return "", fmt.Errorf("%w: %q", err, name)
		}
	}

	return a.unique(rel)
}

// reserve marks a directory path as taken so that files cannot shadow it.
func (a *pathAllocator) reserve(name string) (string, error) {
	rel, err := normalizeExtractPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}

	if !a.raw {
		if rel, err = sanitizeRelativePath(rel); err != nil {
			return "", fmt.Errorf("%w: %q", err, name)
		}
	}

	a.used[strings.ToLower(rel)] = struct{}{}
	return rel, nil
}

// unique resolves collisions by adding a deterministic numeric suffix.
func (a *pathAllocator) unique(rel string) (string, error) {
	key := strings.ToLower(rel)
	if _, exists := a.used[key]; !exists {
		a.used[key] = struct{}{}
		return rel, nil
	}

	dir := path.Dir(rel)
	name := path.Base(rel)
	startIdx := max(a.nextSuffix[key], 2)

	for idx := startIdx; idx < 1000000; idx++ {
		candidate := withNumericSuffix(name, idx)
		if dir != "." {
			candidate = dir + "/" + candidate
		}

		candidateKey := strings.ToLower(candidate)
		if _, exists := a.used[candidateKey]; exists {
			continue
		}

		a.used[candidateKey] = struct{}{}
		a.nextSuffix[key] = idx + 1
		return candidate, nil
	}

	return "", fmt.Errorf("%w: no free name for %q", ErrInvalidExtractPath, rel)
}

// normalizeExtractPath normalizes a member name and rejects absolute or traversal inputs.
func normalizeExtractPath(name string) (string, error) {
	raw := strings.TrimSpace(name)
	if raw == "" || strings.ContainsRune(raw, 0) {
		return "", ErrInvalidExtractPath
	}

	raw = strings.ReplaceAll(raw, `\`, `/`)
	if strings.HasPrefix(raw, "/") || hasWindowsDrivePrefix(raw) {
		return "", ErrInvalidExtractPath
	}

	parts := strings.Split(raw, "/")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", ErrInvalidExtractPath
		default:
			clean = append(clean, part)
		}
	}

	if len(clean) == 0 {
		return "", ErrInvalidExtractPath
	}

	return strings.Join(clean, "/"), nil
}

// sanitizeRelativePath sanitizes each segment of a relative slash-separated path.
func sanitizeRelativePath(rel string) (string, error) {
	parts := strings.Split(rel, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment, err := sanitizePathSegment(part)
		if err != nil {
			return "", err
		}

		out = append(out, segment)
	}

	return strings.Join(out, "/"), nil
}

// sanitizePathSegment sanitizes one path segment for broad filesystem compatibility.
func sanitizePathSegment(segment string) (string, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "_", nil
	}

	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if isUnsafeControlCharRune(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			b.WriteRune('_')
			continue
		}

		b.WriteRune(r)
	}

	sanitized := strings.TrimRight(b.String(), ". ")
	if sanitized == "" {
		sanitized = "_"
	}

	if isReservedDeviceName(sanitized) {
		sanitized = "_" + sanitized
	}

	if len(sanitized) > maxSanitizedSegmentLen {
		sanitized = shortenSegmentDeterministic(sanitized, maxSanitizedSegmentLen)
	}

	return sanitized, nil
}

func isUnsafeControlCharRune(r rune) bool {
	return r < 0x20 || r == 0x7f || (unicode.IsControl(r) && r != '\t')
}

// isReservedDeviceName reports whether the part before the first dot is a reserved device name.
func isReservedDeviceName(name string) bool {
	candidate := strings.ToLower(strings.TrimSpace(name))
	if dot := strings.IndexByte(candidate, '.'); dot >= 0 {
		candidate = candidate[:dot]
	}

	candidate = strings.TrimRight(candidate, " ")
	return candidate != "" && hasName(reservedDeviceNames, candidate)
}

// withNumericSuffix appends "~N" before extension and preserves max segment length.
func withNumericSuffix(name string, n int) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	suffix := "~" + strconv.Itoa(n)
	allowedBaseLen := max(maxSanitizedSegmentLen-len(ext)-len(suffix), 1)
	if len(base) > allowedBaseLen {
		base = shortenSegmentDeterministic(base, allowedBaseLen)
	}

	return base + suffix + ext
}

// shortenSegmentDeterministic shortens long segment while preserving deterministic identity suffix.
func shortenSegmentDeterministic(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	if maxLen <= 10 {
		return value[:maxLen]
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(value))
	hashPart := fmt.Sprintf("~%08x", h.Sum32())
	prefixLen := max(maxLen-len(hashPart), 1)

	return value[:prefixLen] + hashPart
}

// hasWindowsDrivePrefix reports whether path starts with a drive prefix like C:.
func hasWindowsDrivePrefix(p string) bool {
	return len(p) >= 2 && isASCIIAlpha(p[0]) && p[1] == ':'
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
