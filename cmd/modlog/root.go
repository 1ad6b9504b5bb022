// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the modlog CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modlog",
		Short: "modlog - append-only moderation action ledger",
		Long: `modlog records moderation actions in an append-only ledger and
renders them for public and staff audiences with role-gated redaction.`,
	}

	// Global flags, mirrored into config keys by the posflag provider.
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("database_url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().String("metrics_addr", config.DefaultMetricsAddr, "metrics/health listen address")
	cmd.PersistentFlags().String("log_format", config.DefaultLogFormat, "log format (json or text)")
	cmd.PersistentFlags().String("log_level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewValidateSeedsCmd())

	return cmd
}

// loadConfig resolves configuration for a subcommand from the config file
// and the root command's persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Root().PersistentFlags())
}
