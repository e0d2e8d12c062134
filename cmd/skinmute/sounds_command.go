// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/woozymasta/skinmute"
)

func newSoundsCommand() *cobra.Command {
	var format string
	var hitSounds bool
	var taikoHitSounds bool

	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "Print the sound catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sounds := skinmute.Catalog()
			switch {
			case hitSounds && taikoHitSounds:
				sounds = append(skinmute.HitSounds(), skinmute.TaikoHitSounds()...)
			case hitSounds:
				sounds = skinmute.HitSounds()
			case taikoHitSounds:
				sounds = skinmute.TaikoHitSounds()
			}

			return writeFormatted(cmd, format, sounds, func(w io.Writer) error {
				for _, s := range sounds {
					if _, err := fmt.Fprintln(w, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&hitSounds, "hitsounds", false, "Only standard-mode hitsounds")
	cmd.Flags().BoolVar(&taikoHitSounds, "taiko-hitsounds", false, "Only taiko-mode hitsounds")

	return cmd
}
