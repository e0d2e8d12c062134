// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/skinmute

package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/woozymasta/skinmute/internal/config"
	"github.com/woozymasta/skinmute/internal/logging"
)

// globalFlags are persistent flags shared by all subcommands.
type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	once   sync.Once
	config *config.Config
	logger *slog.Logger
	err    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensure loads configuration and builds the logger once per invocation.
func (c *commandContext) ensure(cmd *cobra.Command) (*config.Config, error) {
	c.once.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.err = err
			return
		}

		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = level
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = format
		}

		logger, err := logging.New(logging.Options{
			Output: cmd.ErrOrStderr(),
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.err = err
			return
		}

		logger.Debug("configuration loaded", slog.String("path", path), slog.Bool("exists", exists))
		c.config = cfg
		c.logger = logger
	})

	return c.config, c.err
}

func (c *commandContext) configValue() *config.Config {
	if c.config == nil {
		cfg := config.Default()
		return &cfg
	}

	return c.config
}

func (c *commandContext) loggerValue() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.logger
}
