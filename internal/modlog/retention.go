// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RetentionConfig defines the operator-level retention policy for the
// ledger. The core contract never deletes entries; retention acts on whole
// monthly partitions from outside the append/search path.
type RetentionConfig struct {
	RetainFor     time.Duration // how long entries stay attached
	GracePeriod   time.Duration // how long detached partitions linger before drop
	CycleInterval time.Duration // how often maintenance runs
	FutureMonths  int           // partitions to pre-create ahead of now
}

// DefaultRetentionConfig returns the default retention configuration:
// three years attached, a week of grace for detached partitions, one
// maintenance cycle per day.
func DefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		RetainFor:     3 * 365 * 24 * time.Hour,
		GracePeriod:   7 * 24 * time.Hour,
		CycleInterval: 24 * time.Hour,
		FutureMonths:  3,
	}
}

// PartitionManager manages the ledger's monthly partitions.
type PartitionManager interface {
	EnsurePartitions(ctx context.Context, months int) error
	DetachExpiredPartitions(ctx context.Context, olderThan time.Time) ([]string, error)
	DropDetachedPartitions(ctx context.Context, gracePeriod time.Duration) ([]string, error)
	HealthCheck(ctx context.Context) error
}

// RetentionWorker runs periodic partition maintenance.
type RetentionWorker struct {
	cfg     RetentionConfig
	manager PartitionManager
	logger  *slog.Logger
	clock   func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRetentionWorker creates a retention worker over the given manager.
func NewRetentionWorker(cfg RetentionConfig, manager PartitionManager) *RetentionWorker {
	return &RetentionWorker{
		cfg:     cfg,
		manager: manager,
		logger:  slog.Default(),
		clock:   time.Now,
	}
}

// RunOnce executes a single maintenance cycle. All steps are attempted
// even if earlier ones fail; errors are combined.
func (w *RetentionWorker) RunOnce(ctx context.Context) error {
	now := w.clock()
	var errs []error

	if err := w.manager.EnsurePartitions(ctx, w.cfg.FutureMonths); err != nil {
		w.logger.Error("ensure partitions failed", "error", err)
		errs = append(errs, err)
	}

	detached, err := w.manager.DetachExpiredPartitions(ctx, now.Add(-w.cfg.RetainFor))
	if err != nil {
		w.logger.Error("detach expired partitions failed", "error", err)
		errs = append(errs, err)
	} else if len(detached) > 0 {
		w.logger.Info("detached expired partitions", "partitions", detached)
	}

	dropped, err := w.manager.DropDetachedPartitions(ctx, w.cfg.GracePeriod)
	if err != nil {
		w.logger.Error("drop detached partitions failed", "error", err)
		errs = append(errs, err)
	} else if len(dropped) > 0 {
		w.logger.Info("dropped detached partitions", "partitions", dropped)
	}

	return errors.Join(errs...)
}

// Start begins periodic maintenance.
func (w *RetentionWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop stops the worker and waits for completion.
func (w *RetentionWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// HealthCheck delegates to the partition manager.
func (w *RetentionWorker) HealthCheck(ctx context.Context) error {
	if err := w.manager.HealthCheck(ctx); err != nil {
		return fmt.Errorf("partition health check: %w", err)
	}
	return nil
}

func (w *RetentionWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.CycleInterval)
	defer ticker.Stop()

	// Run once immediately
	if err := w.RunOnce(ctx); err != nil {
		w.logger.Error("retention cycle failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.Error("retention cycle failed", "error", err)
			}
		}
	}
}
