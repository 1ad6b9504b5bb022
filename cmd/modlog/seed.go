// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/modlog/postgres"
	"github.com/boardkit/modlog/internal/seed"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed subcommand.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	sc := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load ledger entries from a seed file",
		Long: `Loads moderation actions from a YAML seed file into the ledger.
This command is idempotent - entries whose IDs already exist are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, sc)
		},
	}

	cmd.Flags().StringVar(&sc.file, "file", "db/seeds.yaml", "seed file path")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, sc *seedConfig) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := seed.Load(sc.file)
	if err != nil {
		return err
	}

	// Use cmd.Context() so SIGINT/SIGTERM interrupts the load.
	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	result, err := seed.Apply(ctx, postgres.NewEntryRepository(pool), f)
	if err != nil {
		return oops.Code("SEED_FAILED").With("file", sc.file).Wrap(err)
	}

	cmd.Printf("Seed complete: %d created, %d skipped\n", result.Created, result.Skipped)
	slog.Info("ledger seeded", "file", sc.file, "created", result.Created, "skipped", result.Skipped)
	return nil
}
