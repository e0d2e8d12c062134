// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package skinmute

import (
	"bytes"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// ConfigEntryName is the root member holding skin configuration.
const ConfigEntryName = "skin.ini"

// Default rewrite tuning values.
const (
	// DefaultCompressionLevel matches the deflate level commonly used by skin exporters.
	DefaultCompressionLevel = 5
)

// Metadata is the format-specific header data of one archive member.
// It is copied verbatim from the source archive and relayed unchanged to the
// rewritten archive; the package does not interpret it.
type Metadata struct {
	// Modified is the decoded modification time (from the extended timestamp when present).
	Modified time.Time `json:"modified" yaml:"modified"`
	// Comment is the per-member comment.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	// Extra holds raw extra-field bytes (extended timestamps, NTFS times, zip64, unix ids).
	Extra []byte `json:"extra,omitempty" yaml:"extra,omitempty"`
	// CompressedSize64 is the stored payload size.
	CompressedSize64 uint64 `json:"compressed_size" yaml:"compressed_size"`
	// UncompressedSize64 is the content size.
	UncompressedSize64 uint64 `json:"uncompressed_size" yaml:"uncompressed_size"`
	// CRC32 is the content checksum.
	CRC32 uint32 `json:"crc32" yaml:"crc32"`
	// ExternalAttrs holds host-dependent file attributes.
	ExternalAttrs uint32 `json:"external_attrs,omitempty" yaml:"external_attrs,omitempty"`
	// CreatorVersion is the "version made by" field, including host compatibility byte.
	CreatorVersion uint16 `json:"creator_version" yaml:"creator_version"`
	// ReaderVersion is the "version needed to extract" field.
	ReaderVersion uint16 `json:"reader_version" yaml:"reader_version"`
	// Flags is the general purpose bit flag.
	Flags uint16 `json:"flags,omitempty" yaml:"flags,omitempty"`
	// Method is the compression method.
	Method uint16 `json:"method" yaml:"method"`
	// ModifiedTime is the raw MS-DOS time.
	ModifiedTime uint16 `json:"modified_time" yaml:"modified_time"`
	// ModifiedDate is the raw MS-DOS date.
	ModifiedDate uint16 `json:"modified_date" yaml:"modified_date"`
	// NonUTF8 reports that the member name is not UTF-8 encoded.
	NonUTF8 bool `json:"non_utf8,omitempty" yaml:"non_utf8,omitempty"`
}

// Member is one archive entry of a parsed skin.
type Member struct {
	// Name is the member path as stored in the archive.
	Name string `json:"name" yaml:"name"`
	// Metadata is the verbatim header data of the member.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	// Dir marks directory members, which never carry content.
	Dir bool `json:"dir,omitempty" yaml:"dir,omitempty"`

	// content is the decompressed, checksum-verified payload.
	content []byte
	// raw is the payload as stored in the source archive.
	raw []byte
}

// Content returns the member payload. The returned slice must not be modified.
func (m *Member) Content() []byte {
	if m == nil {
		return nil
	}

	return m.content
}

// Open returns a reader over the member payload.
func (m *Member) Open() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(m.Content()))
}

// Size returns the payload size in bytes.
func (m *Member) Size() int64 {
	return int64(len(m.Content()))
}

// soundSlot is one insertion-ordered sound mapping record.
type soundSlot struct {
	member *Member
	sound  Sound
}

// Skin is the parsed, immutable model of a skin archive.
type Skin struct {
	// diagnostic is the advisory outcome of configuration inspection, nil when none.
	diagnostic *Diagnostic
	// soundIndex maps a sound to its position in sounds.
	soundIndex map[Sound]int
	// comment is the archive comment.
	comment string
	// version is the configuration version outcome.
	version VersionOutcome
	// sounds keep first-insertion order; later members replace the member in place.
	sounds []soundSlot
	// files are passthrough members in enumeration order.
	files []*Member
	// dirs are directory members in enumeration order.
	dirs []*Member
}

// Sounds returns the sounds defined by the skin in mapping order.
func (s *Skin) Sounds() []Sound {
	if s == nil {
		return nil
	}

	out := make([]Sound, len(s.sounds))
	for i := range s.sounds {
		out[i] = s.sounds[i].sound
	}

	return out
}

// SoundFile returns the member providing sound, if any.
func (s *Skin) SoundFile(sound Sound) (*Member, bool) {
	if s == nil {
		return nil, false
	}

	idx, ok := s.soundIndex[sound]
	if !ok {
		return nil, false
	}

	return s.sounds[idx].member, true
}

// Files returns passthrough members in enumeration order.
func (s *Skin) Files() []*Member {
	if s == nil {
		return nil
	}

	return slices.Clone(s.files)
}

// Directories returns directory members in enumeration order.
func (s *Skin) Directories() []*Member {
	if s == nil {
		return nil
	}

	return slices.Clone(s.dirs)
}

// Diagnostic returns the advisory configuration diagnostic, or nil.
func (s *Skin) Diagnostic() *Diagnostic {
	if s == nil || s.diagnostic == nil {
		return nil
	}

	d := *s.diagnostic
	return &d
}

// Version returns the effective configuration version ("1.0" when undeclared or missing).
func (s *Skin) Version() string {
	if s == nil {
		return DefaultVersion
	}

	return s.version.Effective()
}

// Comment returns the archive comment.
func (s *Skin) Comment() string {
	if s == nil {
		return ""
	}

	return s.comment
}

// putSound maps sound to member; an existing mapping keeps its position.
func (s *Skin) putSound(sound Sound, member *Member) {
	if idx, ok := s.soundIndex[sound]; ok {
		s.sounds[idx].member = member
		return
	}

	s.soundIndex[sound] = len(s.sounds)
	s.sounds = append(s.sounds, soundSlot{sound: sound, member: member})
}

// DiagnosticKind identifies an advisory configuration condition.
type DiagnosticKind uint8

// Diagnostic kinds in priority order.
const (
	// DiagnosticMissingConfig means the archive has no root skin.ini file.
	DiagnosticMissingConfig DiagnosticKind = iota + 1
	// DiagnosticVersionLatest means skin.ini declares the "latest" sentinel.
	DiagnosticVersionLatest
	// DiagnosticVersionUnknown means skin.ini declares a version absent from the known list.
	DiagnosticVersionUnknown
)

// String returns a stable name of the diagnostic kind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMissingConfig:
		return "no-skin-ini"
	case DiagnosticVersionLatest:
		return "version-latest"
	case DiagnosticVersionUnknown:
		return "version-unknown"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a non-fatal advisory outcome attached to a parsed skin.
type Diagnostic struct {
	// Version is the declared raw version for version diagnostics.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Kind identifies the condition.
	Kind DiagnosticKind `json:"kind" yaml:"kind"`
}

// String returns a human readable description.
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticMissingConfig:
		return "skin has no " + ConfigEntryName
	case DiagnosticVersionLatest:
		return ConfigEntryName + " declares version \"latest\""
	case DiagnosticVersionUnknown:
		return ConfigEntryName + " declares unknown version \"" + d.Version + "\""
	default:
		return "no diagnostic"
	}
}

// SoundSet is a set of sounds selected for one rewrite.
type SoundSet map[Sound]struct{}

// NewSoundSet builds a set from sounds.
func NewSoundSet(sounds ...Sound) SoundSet {
	set := make(SoundSet, len(sounds))
	set.Add(sounds...)
	return set
}

// Add inserts sounds into the set.
func (set SoundSet) Add(sounds ...Sound) {
	for _, s := range sounds {
		set[s] = struct{}{}
	}
}

// Has reports whether sound is in the set.
func (set SoundSet) Has(sound Sound) bool {
	_, ok := set[sound]
	return ok
}

// Sorted returns the set members in canonical order.
func (set SoundSet) Sorted() []Sound {
	out := make([]Sound, 0, len(set))
	for s := range set {
		out = append(out, s)
	}

	slices.SortFunc(out, Compare)
	return out
}

// ParseOptions configures skin parsing.
type ParseOptions struct {
	// Logger receives debug events per member; nil discards.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// MemberKind classifies a rewritten member in progress events.
type MemberKind string

// Rewritten member kinds.
const (
	// MemberKindSound is a kept sound member.
	MemberKindSound MemberKind = "sound"
	// MemberKindSilenced is a placeholder written for a silenced sound.
	MemberKindSilenced MemberKind = "silenced"
	// MemberKindFile is a passthrough member.
	MemberKindFile MemberKind = "file"
	// MemberKindDirectory is a directory member.
	MemberKindDirectory MemberKind = "directory"
)

// RewriteProgress contains one completed member write event.
type RewriteProgress struct {
	// Name is the member name written.
	Name string `json:"name" yaml:"name"`
	// Kind classifies the written member.
	Kind MemberKind `json:"kind" yaml:"kind"`
	// Size is the content size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// RewriteOptions configures the rewrite transform.
type RewriteOptions struct {
	// ModTime stamps placeholder members; zero means current time.
	ModTime time.Time `json:"mod_time,omitzero" yaml:"mod_time,omitempty"`
	// OnEntryDone is called after one member is fully written.
	OnEntryDone func(entry RewriteProgress) `json:"-" yaml:"-"`
	// Logger receives debug events per member; nil discards.
	Logger *slog.Logger `json:"-" yaml:"-"`
	// Placeholder overrides the embedded silent payload.
	Placeholder []byte `json:"-" yaml:"-"`
	// CompressionLevel is the deflate level for placeholder members.
	// Zero and values outside flate.HuffmanOnly..flate.BestCompression select
	// DefaultCompressionLevel, so flate.NoCompression is not selectable.
	CompressionLevel int `json:"compression_level,omitempty" yaml:"compression_level,omitempty"`
}

// RewriteResult contains rewrite output statistics.
type RewriteResult struct {
	// Silenced lists sounds replaced by the placeholder, in mapping order.
	Silenced []Sound `json:"silenced,omitempty" yaml:"silenced,omitempty"`
	// WrittenEntries is the number of members written.
	WrittenEntries int `json:"written_entries" yaml:"written_entries"`
	// SoundEntries is the number of sound members kept unchanged.
	SoundEntries int `json:"sound_entries" yaml:"sound_entries"`
	// FileEntries is the number of passthrough members written.
	FileEntries int `json:"file_entries" yaml:"file_entries"`
	// DirectoryEntries is the number of directory members written.
	DirectoryEntries int `json:"directory_entries" yaml:"directory_entries"`
	// Bytes is the size of the written archive.
	Bytes int64 `json:"bytes" yaml:"bytes"`
	// Diagnostic is the advisory condition of the rewritten skin, if any.
	Diagnostic *Diagnostic `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	// Duration is end-to-end rewrite duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// EditOptions configures the file-based in-place edit flow.
type EditOptions struct {
	// RewriteOptions apply to the commit rewrite.
	RewriteOptions RewriteOptions `json:"rewrite_options,omitzero" yaml:"rewrite_options,omitempty"`
	// ParseOptions apply when parsing the backup.
	ParseOptions ParseOptions `json:"-" yaml:"-"`
	// BackupKeep controls how many backup generations are kept after successful commit.
	// 0 removes the backup, 1 keeps only `<archive>.bak`, N keeps `.bak` + `.bak.1..N-1`.
	BackupKeep int `json:"backup_keep,omitempty" yaml:"backup_keep,omitempty"`
}

// applyDefaults fills zero-valued rewrite options with defaults.
// CompressionLevel 0 means unset rather than flate.NoCompression.
func (opts *RewriteOptions) applyDefaults() {
	if opts.CompressionLevel == 0 || opts.CompressionLevel < flate.HuffmanOnly || opts.CompressionLevel > flate.BestCompression {
		opts.CompressionLevel = DefaultCompressionLevel
	}

	if opts.ModTime.IsZero() {
		opts.ModTime = time.Now()
	}

	if opts.Logger == nil {
		opts.Logger = discardLogger
	}
}

// applyDefaults fills zero-valued parse options with defaults.
func (opts *ParseOptions) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = discardLogger
	}
}

// applyDefaults fills zero-valued edit options with defaults.
func (opts *EditOptions) applyDefaults() {
	opts.RewriteOptions.applyDefaults()
	opts.ParseOptions.applyDefaults()

	if opts.BackupKeep < 0 {
		opts.BackupKeep = 0
	}
}

// discardLogger drops every record.
var discardLogger = slog.New(slog.DiscardHandler)

// metadataFromHeader copies header fields into a Metadata value.
func metadataFromHeader(fh *zip.FileHeader) Metadata {
	return Metadata{
		Modified:           fh.Modified,
		Comment:            fh.Comment,
		Extra:              slices.Clone(fh.Extra),
		CompressedSize64:   fh.CompressedSize64,
		UncompressedSize64: fh.UncompressedSize64,
		CRC32:              fh.CRC32,
		ExternalAttrs:      fh.ExternalAttrs,
		CreatorVersion:     fh.CreatorVersion,
		ReaderVersion:      fh.ReaderVersion,
		Flags:              fh.Flags,
		Method:             fh.Method,
		ModifiedTime:       fh.ModifiedTime,
		ModifiedDate:       fh.ModifiedDate,
		NonUTF8:            fh.NonUTF8,
	}
}

// header builds a raw-copy header for name from metadata.
func (m Metadata) header(name string) *zip.FileHeader {
	return &zip.FileHeader{
		Name:               name,
		Comment:            m.Comment,
		NonUTF8:            m.NonUTF8,
		CreatorVersion:     m.CreatorVersion,
		ReaderVersion:      m.ReaderVersion,
		Flags:              m.Flags,
		Method:             m.Method,
		Modified:           m.Modified,
		ModifiedTime:       m.ModifiedTime,
		ModifiedDate:       m.ModifiedDate,
		CRC32:              m.CRC32,
		CompressedSize64:   m.CompressedSize64,
		UncompressedSize64: m.UncompressedSize64,
		Extra:              slices.Clone(m.Extra),
		ExternalAttrs:      m.ExternalAttrs,
	}
}
