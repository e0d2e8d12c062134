// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/woozymasta/skinmute"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var opts skinmute.ExtractOptions
	var createOnly bool

	cmd := &cobra.Command{
		Use:   "extract <skin> <dir>",
		Short: "Unpack the effective skin members into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.loggerValue()

			skin, err := skinmute.ParseFile(cmd.Context(), args[0], skinmute.ParseOptions{Logger: logger})
			if err != nil {
				return err
			}

			if createOnly {
				opts.FileMode = skinmute.ExtractFileModeCreateOnly
			}
			opts.OnEntryDone = func(entry skinmute.ExtractProgress) {
				logger.Debug("member extracted", slog.String("name", entry.Name), slog.String("path", entry.Path))
			}

			n, err := skinmute.Extract(cmd.Context(), skin, args[1], opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d file(s) to %s\n", n, args[1])
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.SoundsOnly, "sounds-only", false, "Only extract sound members")
	cmd.Flags().BoolVar(&opts.RawNames, "raw-names", false, "Keep member names as stored (traversal is still rejected)")
	cmd.Flags().IntVar(&opts.MaxWorkers, "workers", 0, "Parallel writers (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&createOnly, "no-overwrite", false, "Fail when an output file already exists")

	return cmd
}
