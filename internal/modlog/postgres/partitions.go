// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/oops"
)

// PartitionManager manages monthly mod_actions partitions. It implements
// modlog.PartitionManager.
//
// Detached partitions are tracked in mod_action_partitions with their
// detach time, so the drop step can honor the grace period across process
// restarts.
type PartitionManager struct {
	pool  poolIface
	clock func() time.Time
}

// NewPartitionManager creates a partition manager backed by the given pool.
func NewPartitionManager(pool poolIface) *PartitionManager {
	return &PartitionManager{pool: pool, clock: time.Now}
}

// EnsurePartitions creates monthly partitions for the current month plus
// the specified number of future months. Uses IF NOT EXISTS for idempotency.
// Partition names follow mod_actions_YYYY_MM.
func (m *PartitionManager) EnsurePartitions(ctx context.Context, months int) error {
	now := m.clock().UTC()
	for i := 0; i <= months; i++ {
		name, start, end := partitionRange(now.AddDate(0, i, 0))

		query := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s PARTITION OF mod_actions FOR VALUES FROM ('%s') TO ('%s')`,
			name,
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)
		if _, err := m.pool.Exec(ctx, query); err != nil {
			return oops.
				With("partition", name).
				With("range_start", start.Format("2006-01-02")).
				With("range_end", end.Format("2006-01-02")).
				Errorf("creating partition: %w", err)
		}
	}
	return nil
}

// DetachExpiredPartitions detaches partitions whose entire range lies
// before olderThan and records the detach time for the grace period.
func (m *PartitionManager) DetachExpiredPartitions(ctx context.Context, olderThan time.Time) ([]string, error) {
	rows, err := m.pool.Query(ctx, `
		SELECT c.relname
		FROM pg_inherits i
		JOIN pg_class c ON c.oid = i.inhrelid
		JOIN pg_class p ON p.oid = i.inhparent
		WHERE p.relname = 'mod_actions'
	`)
	if err != nil {
		return nil, oops.Errorf("listing partitions: %w", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, oops.Errorf("scanning partition name: %w", err)
		}
		end, ok := partitionEnd(name)
		if ok && !end.After(olderThan.UTC()) {
			candidates = append(candidates, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Errorf("listing partitions: %w", err)
	}

	var detached []string
	for _, name := range candidates {
		if _, err := m.pool.Exec(ctx, fmt.Sprintf(`ALTER TABLE mod_actions DETACH PARTITION %s`, name)); err != nil {
			return detached, oops.With("partition", name).Errorf("detaching partition: %w", err)
		}
		if _, err := m.pool.Exec(ctx, `
			INSERT INTO mod_action_partitions (name, detached_at) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, name, m.clock().UTC()); err != nil {
			return detached, oops.With("partition", name).Errorf("recording detached partition: %w", err)
		}
		detached = append(detached, name)
	}
	return detached, nil
}

// DropDetachedPartitions drops partitions detached longer ago than the
// grace period.
func (m *PartitionManager) DropDetachedPartitions(ctx context.Context, gracePeriod time.Duration) ([]string, error) {
	cutoff := m.clock().UTC().Add(-gracePeriod)
	rows, err := m.pool.Query(ctx, `
		SELECT name FROM mod_action_partitions WHERE detached_at <= $1
	`, cutoff)
	if err != nil {
		return nil, oops.Errorf("listing detached partitions: %w", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, oops.Errorf("scanning detached partition name: %w", err)
		}
		candidates = append(candidates, name)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Errorf("listing detached partitions: %w", err)
	}

	var dropped []string
	for _, name := range candidates {
		if _, err := m.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name)); err != nil {
			return dropped, oops.With("partition", name).Errorf("dropping partition: %w", err)
		}
		if _, err := m.pool.Exec(ctx, `DELETE FROM mod_action_partitions WHERE name = $1`, name); err != nil {
			return dropped, oops.With("partition", name).Errorf("forgetting dropped partition: %w", err)
		}
		dropped = append(dropped, name)
	}
	return dropped, nil
}

// HealthCheck verifies that a partition exists for the current month.
func (m *PartitionManager) HealthCheck(ctx context.Context) error {
	name, _, _ := partitionRange(m.clock().UTC())
	var exists bool
	err := m.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, name).Scan(&exists)
	if err != nil {
		return oops.Errorf("partition health check: %w", err)
	}
	if !exists {
		return oops.With("partition", name).Errorf("current month partition missing")
	}
	return nil
}

// partitionRange returns the partition name and date boundaries for the
// month containing t. Start is inclusive, end exclusive.
func partitionRange(t time.Time) (name string, start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	name = fmt.Sprintf("mod_actions_%04d_%02d", t.Year(), t.Month())
	return name, start, end
}

// partitionEnd parses a partition name back into its exclusive range end.
func partitionEnd(name string) (time.Time, bool) {
	var year, month int
	if _, err := fmt.Sscanf(name, "mod_actions_%4d_%2d", &year, &month); err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0), true
}
