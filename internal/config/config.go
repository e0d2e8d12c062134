// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

// Package config loads skinmute command settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultSuffix is appended to the input stem for rewritten archives.
	DefaultSuffix = "-silenced"
	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"
	// DefaultLogFormat picks console output on terminals and JSON otherwise.
	DefaultLogFormat = "auto"

	projectConfigName = "skinmute.toml"
	userConfigPath    = "~/.config/skinmute/config.toml"
)

// Silence holds the default sound selection.
type Silence struct {
	// Sounds are exact identifiers, e.g. "applause" or "comboburst-2".
	Sounds []string `toml:"sounds"`
	// Patterns are gitignore-style rules over identifiers, "!" negates.
	Patterns       []string `toml:"patterns"`
	HitSounds      bool     `toml:"hitsounds"`
	TaikoHitSounds bool     `toml:"taiko_hitsounds"`
}

// Output controls where and how rewritten archives are written.
type Output struct {
	Suffix     string `toml:"suffix"`
	BackupKeep int    `toml:"backup_keep"`
	// CompressionLevel is the deflate level for silenced members; 0 selects the library default.
	CompressionLevel int `toml:"compression_level"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for skinmute.
type Config struct {
	Silence Silence `toml:"silence"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Output: Output{
			Suffix:           DefaultSuffix,
			BackupKeep:       1,
			CompressionLevel: 5,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultConfigPath returns the absolute path to the user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath(userConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// yields defaults. It returns the config, the resolved path and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer func() { _ = file.Close() }()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// normalize trims values and fills empty fields with defaults.
func (c *Config) normalize() {
	defaults := Default()

	c.Silence.Sounds = trimNonEmpty(c.Silence.Sounds)
	c.Silence.Patterns = trimNonEmpty(c.Silence.Patterns)

	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	if c.Output.Suffix == "" {
		c.Output.Suffix = defaults.Output.Suffix
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Output.BackupKeep < 0 {
		return fmt.Errorf("output.backup_keep: must be >= 0, got %d", c.Output.BackupKeep)
	}

	if c.Output.CompressionLevel < -2 || c.Output.CompressionLevel > 9 {
		return fmt.Errorf("output.compression_level: must be within -2..9, got %d", c.Output.CompressionLevel)
	}

	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix: must not contain path separators, got %q", c.Output.Suffix)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}

		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}

		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}

		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}

	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}

		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}

	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}

	return absolute, nil
}

func trimNonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
