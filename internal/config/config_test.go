// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/woozymasta/skinmute/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	want := filepath.Join(tempHome, ".config", "skinmute", "config.toml")
	if resolved != want {
		t.Fatalf("resolved=%q, want %q", resolved, want)
	}

	defaults := config.Default()
	if cfg.Output != defaults.Output || cfg.Logging != defaults.Logging {
		t.Fatalf("cfg=%+v, want defaults", *cfg)
	}

	if len(cfg.Silence.Sounds) != 0 || len(cfg.Silence.Patterns) != 0 || cfg.Silence.HitSounds {
		t.Fatalf("silence=%+v, want empty selection", cfg.Silence)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[silence]
sounds = ["applause", " ", "comboburst-2"]
patterns = ["menu-*-hover", "!menu-play-hover"]
hitsounds = true

[output]
suffix = "  -quiet "
backup_keep = 3
compression_level = 9

[logging]
level = "DEBUG"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}

	if !slices.Equal(cfg.Silence.Sounds, []string{"applause", "comboburst-2"}) {
		t.Fatalf("sounds=%v", cfg.Silence.Sounds)
	}

	if len(cfg.Silence.Patterns) != 2 || !cfg.Silence.HitSounds || cfg.Silence.TaikoHitSounds {
		t.Fatalf("silence=%+v", cfg.Silence)
	}

	if cfg.Output.Suffix != "-quiet" || cfg.Output.BackupKeep != 3 || cfg.Output.CompressionLevel != 9 {
		t.Fatalf("output=%+v", cfg.Output)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging=%+v", cfg.Logging)
	}
}

func TestLoadProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("skinmute.toml", []byte("[output]\nsuffix = \"-p\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !exists || filepath.Base(resolved) != "skinmute.toml" {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}

	if cfg.Output.Suffix != "-p" || cfg.Output.BackupKeep != 1 {
		t.Fatalf("output=%+v", cfg.Output)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "backup", content: "[output]\nbackup_keep = -1\n", wantErr: "output.backup_keep"},
		{name: "level", content: "[output]\ncompression_level = 12\n", wantErr: "output.compression_level"},
		{name: "suffix", content: "[output]\nsuffix = \"a/b\"\n", wantErr: "output.suffix"},
		{name: "log level", content: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "log format", content: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "unknown key", content: "[output]\nsufix = \"x\"\n", wantErr: "parse config"},
		{name: "syntax", content: "[output\n", wantErr: "parse config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}

			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load error=%v, want %q", err, tc.wantErr)
			}
		})
	}
}
