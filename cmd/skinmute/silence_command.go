// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/pathrules"

	"github.com/woozymasta/skinmute"
	"github.com/woozymasta/skinmute/internal/config"
)

// errEmptySelection is returned when neither flags nor config select any sound.
var errEmptySelection = errors.New("no sounds selected: use --sound, --match, --hitsounds or --taiko-hitsounds")

// selection is the merged sound selection of config and flags.
type selection struct {
	sounds []skinmute.Sound
	rules  []pathrules.Rule
}

type silenceFlags struct {
	output         string
	sounds         []string
	patterns       []string
	hitSounds      bool
	taikoHitSounds bool
	inPlace        bool
}

func newSilenceCommand(ctx *commandContext) *cobra.Command {
	var flags silenceFlags

	cmd := &cobra.Command{
		Use:   "silence <skin>",
		Short: "Replace selected skin sounds with silence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.inPlace && flags.output != "" {
				return errors.New("--in-place and --output are mutually exclusive")
			}

			cfg := ctx.configValue()
			sel, err := buildSelection(cfg.Silence, flags)
			if err != nil {
				return err
			}

			if flags.inPlace {
				return silenceInPlace(cmd, ctx, args[0], sel)
			}

			return silenceToFile(cmd, ctx, args[0], outputPath(args[0], flags.output, cfg.Output.Suffix), sel)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output archive path (default: <skin><suffix>.osk)")
	cmd.Flags().StringSliceVarP(&flags.sounds, "sound", "s", nil, "Sound identifier to silence (repeatable)")
	cmd.Flags().StringSliceVarP(&flags.patterns, "match", "m", nil, "Gitignore-style pattern over sound identifiers, '!' negates (repeatable)")
	cmd.Flags().BoolVar(&flags.hitSounds, "hitsounds", false, "Silence standard-mode hitsounds")
	cmd.Flags().BoolVar(&flags.taikoHitSounds, "taiko-hitsounds", false, "Silence taiko-mode hitsounds")
	cmd.Flags().BoolVarP(&flags.inPlace, "in-place", "i", false, "Rewrite the skin in place, keeping backups")

	return cmd
}

// buildSelection merges configured defaults with command flags.
func buildSelection(defaults config.Silence, flags silenceFlags) (selection, error) {
	var sel selection

	for _, name := range append(slices.Clone(defaults.Sounds), flags.sounds...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		sound, ok := skinmute.ParseSound(name)
		if !ok {
			return selection{}, fmt.Errorf("%w: %q", skinmute.ErrUnknownSound, name)
		}
		sel.sounds = append(sel.sounds, sound)
	}

	if defaults.HitSounds || flags.hitSounds {
		sel.sounds = append(sel.sounds, skinmute.HitSounds()...)
	}
	if defaults.TaikoHitSounds || flags.taikoHitSounds {
		sel.sounds = append(sel.sounds, skinmute.TaikoHitSounds()...)
	}

	sel.rules = skinmute.ParseRules(append(slices.Clone(defaults.Patterns), flags.patterns...)...)

	if len(sel.sounds) == 0 && len(sel.rules) == 0 {
		return selection{}, errEmptySelection
	}

	return sel, nil
}

func silenceToFile(cmd *cobra.Command, ctx *commandContext, inPath string, outPath string, sel selection) error {
	logger := ctx.loggerValue()
	cfg := ctx.configValue()

	skin, err := skinmute.ParseFile(cmd.Context(), inPath, skinmute.ParseOptions{Logger: logger})
	if err != nil {
		return err
	}

	warnDiagnostic(logger, inPath, skin.Diagnostic())

	set := skinmute.NewSoundSet(sel.sounds...)
	if len(sel.rules) > 0 {
		matched, err := skinmute.SelectSounds(skin, sel.rules)
		if err != nil {
			return err
		}
		for sound := range matched {
			set.Add(sound)
		}
	}

	res, err := skinmute.SilenceFile(cmd.Context(), outPath, skin, set, skinmute.RewriteOptions{
		Logger:           logger,
		CompressionLevel: cfg.Output.CompressionLevel,
	})
	if err != nil {
		return err
	}

	return printResult(cmd, outPath, res)
}

func silenceInPlace(cmd *cobra.Command, ctx *commandContext, path string, sel selection) error {
	logger := ctx.loggerValue()
	cfg := ctx.configValue()

	editor, err := skinmute.OpenEditor(path, skinmute.EditOptions{
		RewriteOptions: skinmute.RewriteOptions{
			Logger:           logger,
			CompressionLevel: cfg.Output.CompressionLevel,
		},
		ParseOptions: skinmute.ParseOptions{Logger: logger},
		BackupKeep:   cfg.Output.BackupKeep,
	})
	if err != nil {
		return err
	}

	if err := editor.Silence(sel.sounds...); err != nil {
		return err
	}

	if err := editor.SilenceMatching(sel.rules...); err != nil {
		return err
	}

	res, err := editor.Commit(cmd.Context())
	if err != nil {
		return err
	}
	warnDiagnostic(logger, path, res.Diagnostic)

	return printResult(cmd, path, res)
}

// warnDiagnostic logs a non-fatal skin condition.
func warnDiagnostic(logger *slog.Logger, path string, d *skinmute.Diagnostic) {
	if d == nil {
		return
	}

	logger.Warn(d.String(), slog.String("skin", path), slog.String("diagnostic", d.Kind.String()))
}

func printResult(cmd *cobra.Command, path string, res *skinmute.RewriteResult) error {
	names := make([]string, 0, len(res.Silenced))
	for _, s := range res.Silenced {
		names = append(names, s.String())
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Silenced %d sound(s) in %s (%d bytes, %d entries)\n",
		len(res.Silenced), path, res.Bytes, res.WrittenEntries)
	if err != nil {
		return err
	}

	if len(names) > 0 {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.Join(names, ", "))
	}

	return err
}

// outputPath resolves the rewrite target: explicit path, or "<stem><suffix><ext>" beside the input.
func outputPath(inPath string, explicit string, suffix string) string {
	if explicit != "" {
		return explicit
	}

	ext := filepath.Ext(inPath)
	if ext == "" {
		ext = ".osk"
	}

	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + suffix + ext
}
