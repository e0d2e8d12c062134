// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"regexp"
	"slices"
	"strings"
)

const (
	// DefaultVersion is implied when the configuration declares no version.
	DefaultVersion = "1.0"
	// LatestVersionToken is the sentinel meaning "newest version the client supports".
	LatestVersionToken = "latest"
	// LatestKnownVersion is the newest version in the known-version list.
	LatestKnownVersion = "2.7"
)

// knownVersions lists configuration versions this package recognizes.
var knownVersions = []string{"1.0", "2.0", "2.1", "2.2", "2.3", "2.4", "2.5", "2.6", LatestKnownVersion}

// versionLine matches the first "Version:" line of a configuration text.
var versionLine = regexp.MustCompile(`(?m)^\s*Version\s*:(.*)$`)

// lineBreaks folds CRLF, bare CR and Unicode line separators into "\n".
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")

// VersionKind classifies a version declaration.
type VersionKind uint8

// Version declaration outcomes.
const (
	// VersionAbsent means no "Version:" line was found.
	VersionAbsent VersionKind = iota
	// VersionRecognized means the declared version is in the known list.
	VersionRecognized
	// VersionLatest means the declared version is the "latest" sentinel.
	VersionLatest
	// VersionUnknown means the declared version is not in the known list.
	VersionUnknown
)

// String returns a stable name of the version kind.
func (k VersionKind) String() string {
	switch k {
	case VersionAbsent:
		return "absent"
	case VersionRecognized:
		return "recognized"
	case VersionLatest:
		return "latest"
	case VersionUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k VersionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// VersionOutcome is the result of DetectVersion.
type VersionOutcome struct {
	// Raw is the trimmed declared value; empty when absent.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
	// Kind classifies Raw.
	Kind VersionKind `json:"kind" yaml:"kind"`
}

// Effective returns the declared version, or DefaultVersion when absent.
func (o VersionOutcome) Effective() string {
	if o.Kind == VersionAbsent {
		return DefaultVersion
	}

	return o.Raw
}

// KnownVersions returns the recognized configuration versions, oldest first.
func KnownVersions() []string {
	return slices.Clone(knownVersions)
}

// DetectVersion extracts and classifies the version declared by configuration text.
func DetectVersion(text string) VersionOutcome {
	match := versionLine.FindStringSubmatch(lineBreaks.Replace(text))
	if match == nil {
		return VersionOutcome{Kind: VersionAbsent}
	}

	raw := strings.TrimSpace(match[1])
	switch {
	case raw == LatestVersionToken:
		return VersionOutcome{Kind: VersionLatest, Raw: raw}
	case slices.Contains(knownVersions, raw):
		return VersionOutcome{Kind: VersionRecognized, Raw: raw}
	default:
		return VersionOutcome{Kind: VersionUnknown, Raw: raw}
	}
}
