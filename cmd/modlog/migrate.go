// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/modlog"
	"github.com/boardkit/modlog/internal/modlog/postgres"
)

// migrateConfig holds flags for the migrate subcommand.
type migrateConfig struct {
	down bool
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	mc := &migrateConfig{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Run all pending database migrations against the PostgreSQL database,
then provision the monthly partitions the ledger writes into.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args, mc)
		},
	}

	cmd.Flags().BoolVar(&mc.down, "down", false, "roll all migrations back instead of applying them")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string, mc *migrateConfig) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	migrator, err := postgres.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if mc.down {
		cmd.Println("Rolling back migrations...")
		if err := migrator.Down(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "roll back migrations").Wrap(err)
		}
		cmd.Println("Rollback completed successfully")
		return nil
	}

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "read schema version").Wrap(err)
	}
	cmd.Printf("Migrations completed successfully (version %d, dirty=%v)\n", version, dirty)

	cmd.Println("Provisioning partitions...")
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	months := modlog.DefaultRetentionConfig().FutureMonths
	if err := postgres.NewPartitionManager(pool).EnsurePartitions(ctx, months); err != nil {
		return oops.Code("RETENTION_FAILED").With("operation", "provision partitions").Wrap(err)
	}
	cmd.Println("Partitions provisioned")
	return nil
}
