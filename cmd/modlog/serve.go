// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/logging"
	"github.com/boardkit/modlog/internal/modlog"
	"github.com/boardkit/modlog/internal/modlog/postgres"
	"github.com/boardkit/modlog/internal/observability"
	"github.com/boardkit/modlog/pkg/errutil"
)

// shutdownTimeout bounds graceful shutdown of the observability server.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ledger maintenance process",
		Long: `Runs migrations, keeps monthly partitions provisioned, enforces the
retention policy, and exposes metrics and health endpoints.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.SetDefault("modlog", version, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	migrator, err := postgres.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		migrator.Close()
		return err
	}
	if err := migrator.Close(); err != nil {
		return err
	}

	partitions := postgres.NewPartitionManager(pool)
	worker := modlog.NewRetentionWorker(cfg.RetentionConfig(), partitions)

	// Bootstrap partitions before declaring readiness so the first append
	// never lands on a missing partition.
	if err := worker.RunOnce(ctx); err != nil {
		wrapped := oops.Code("RETENTION_FAILED").Wrap(err)
		errutil.LogError(slog.Default(), "partition bootstrap failed", wrapped)
		return wrapped
	}
	if cfg.Retention.Enabled {
		if err := worker.Start(ctx); err != nil {
			return err
		}
		defer worker.Stop()
	}

	obs := observability.NewServer(cfg.MetricsAddr, func() bool {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return pool.Ping(checkCtx) == nil && worker.HealthCheck(checkCtx) == nil
	})
	obsErr, err := obs.Start()
	if err != nil {
		return err
	}

	slog.Info("modlog serving",
		"metrics_addr", obs.Addr(),
		"retention_enabled", cfg.Retention.Enabled)

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-obsErr:
		if err != nil {
			slog.Error("observability server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return obs.Stop(shutdownCtx)
}
