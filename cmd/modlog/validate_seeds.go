// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/seed"
)

// NewValidateSeedsCmd creates the validate-seeds subcommand.
func NewValidateSeedsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate-seeds",
		Short: "Validate a seed file without touching the database",
		Long: `Validates a YAML seed file against the seed schema.
Does NOT require a database connection.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch seed file errors early:
  modlog validate-seeds --file db/seeds.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidateSeeds(cmd, file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "db/seeds.yaml", "seed file path")

	return cmd
}

func runValidateSeeds(cmd *cobra.Command, file string) error {
	f, err := seed.Load(file)
	if err != nil {
		return err
	}

	slog.Info("seed file valid", "file", file, "actions", len(f.Actions))
	cmd.Printf("Seed file valid: %d actions\n", len(f.Actions))
	return nil
}
