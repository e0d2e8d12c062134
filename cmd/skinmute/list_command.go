// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/woozymasta/skinmute"
)

// listReport is the machine-readable form of a skin listing.
type listReport struct {
	Diagnostic  *diagnosticReport `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Skin        string            `json:"skin" yaml:"skin"`
	Version     string            `json:"version" yaml:"version"`
	Sounds      []soundReport     `json:"sounds" yaml:"sounds"`
	Files       []string          `json:"files,omitempty" yaml:"files,omitempty"`
	Directories []string          `json:"directories,omitempty" yaml:"directories,omitempty"`
}

type diagnosticReport struct {
	Kind    string `json:"kind" yaml:"kind"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Message string `json:"message" yaml:"message"`
}

type soundReport struct {
	Sound   string `json:"sound" yaml:"sound"`
	Member  string `json:"member,omitempty" yaml:"member,omitempty"`
	Digest  string `json:"digest,omitempty" yaml:"digest,omitempty"`
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Size    int64  `json:"size" yaml:"size"`
	Present bool   `json:"present" yaml:"present"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var format string
	var presentOnly bool

	cmd := &cobra.Command{
		Use:   "list <skin>",
		Short: "List skin sounds in canonical order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.loggerValue()

			skin, err := skinmute.ParseFile(cmd.Context(), args[0], skinmute.ParseOptions{Logger: logger})
			if err != nil {
				return err
			}

			report := buildListReport(args[0], skin, presentOnly)
			if report.Diagnostic != nil {
				logger.Warn(report.Diagnostic.Message, slog.String("skin", args[0]))
			}

			return writeFormatted(cmd, format, report, func(w io.Writer) error {
				return renderListReport(w, report)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&presentOnly, "present", false, "Only list sounds the skin defines")

	return cmd
}

func buildListReport(path string, skin *skinmute.Skin, presentOnly bool) listReport {
	report := listReport{
		Skin:    path,
		Version: skin.Version(),
		Sounds:  make([]soundReport, 0, len(skin.Sounds())),
	}

	if d := skin.Diagnostic(); d != nil {
		report.Diagnostic = &diagnosticReport{
			Kind:    d.Kind.String(),
			Version: d.Version,
			Message: d.String(),
		}
	}

	for _, sound := range skinmute.SortedSounds(skin) {
		row := soundReport{Sound: sound.String(), Profile: soundProfile(sound)}
		if m, ok := skin.SoundFile(sound); ok {
			row.Present = true
			row.Member = m.Name
			row.Size = m.Size()
			row.Digest = m.Digest().String()
		} else if presentOnly {
			continue
		}

		report.Sounds = append(report.Sounds, row)
	}

	for _, m := range skin.Files() {
		report.Files = append(report.Files, m.Name)
	}

	for _, m := range skin.Directories() {
		report.Directories = append(report.Directories, m.Name)
	}

	return report
}

func renderListReport(w io.Writer, report listReport) error {
	rows := make([][]string, 0, len(report.Sounds))
	for _, s := range report.Sounds {
		present := "-"
		size := ""
		digest := ""
		if s.Present {
			present = "yes"
			size = strconv.FormatInt(s.Size, 10)
			digest = shortDigest(s.Digest)
		}

		rows = append(rows, []string{s.Sound, present, s.Member, size, digest, s.Profile})
	}

	table := renderTable(
		[]string{"Sound", "Present", "Member", "Size", "Digest", "Profile"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)

	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Version: %s, files: %d, directories: %d\n",
		report.Version, len(report.Files), len(report.Directories))
	return err
}

func soundProfile(sound skinmute.Sound) string {
	switch {
	case sound.IsHitSound():
		return "hitsound"
	case sound.IsTaikoHitSound():
		return "taiko"
	case sound.IsNumbered():
		return "comboburst"
	default:
		return ""
	}
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}

	return digest
}
