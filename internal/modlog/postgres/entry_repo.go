// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

// Package postgres implements the modlog storage contracts on PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkit/modlog/internal/modlog"
)

// poolIface is the subset of pgxpool.Pool the repositories need. It
// matches pgxmock.PgxPoolIface so repository tests run without a database.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EntryRepository implements modlog.EntryRepository using PostgreSQL.
type EntryRepository struct {
	pool poolIface
}

// NewEntryRepository creates a new PostgreSQL entry repository.
func NewEntryRepository(pool poolIface) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Append persists an entry. The row insert is atomic, so readers observe
// either the complete entry or nothing.
func (r *EntryRepository) Append(ctx context.Context, e *modlog.Entry) error {
	if err := modlog.ValidateKind(e.Kind); err != nil {
		return err
	}
	valuesJSON, err := json.Marshal(e.Values)
	if err != nil {
		return oops.Code("MOD_ACTION_ENCODE_FAILED").With("id", e.ID.String()).Wrap(err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO mod_actions (id, action, creator_id, "values", created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID.String(), e.Kind, e.CreatorID, valuesJSON, e.CreatedAt)
	if isUniqueViolation(err) {
		return oops.Code("MOD_ACTION_DUPLICATE").With("id", e.ID.String()).Wrap(modlog.ErrAlreadyExists)
	}
	if err != nil {
		return oops.Code("MOD_ACTION_APPEND_FAILED").With("id", e.ID.String()).With("kind", e.Kind).Wrap(err)
	}
	return nil
}

// Search returns entries matching the filter. The page size ceiling is
// applied here regardless of the caller's request.
func (r *EntryRepository) Search(ctx context.Context, f modlog.Filter) ([]*modlog.Entry, error) {
	f = f.Normalized()

	var (
		conds []string
		args  []any
	)
	if f.Kind != "" {
		args = append(args, f.Kind)
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}
	if f.CreatorID != 0 {
		args = append(args, f.CreatorID)
		conds = append(conds, fmt.Sprintf("creator_id = $%d", len(args)))
	}
	if len(f.ExcludeKinds) > 0 {
		args = append(args, f.ExcludeKinds)
		conds = append(conds, fmt.Sprintf("NOT (action = ANY($%d))", len(args)))
	}

	query := `SELECT id, action, creator_id, "values", created_at FROM mod_actions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if f.Order == modlog.OrderOldestFirst {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("MOD_ACTION_QUERY_FAILED").Wrap(err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Get retrieves an entry by ID.
func (r *EntryRepository) Get(ctx context.Context, id ulid.ULID) (*modlog.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, action, creator_id, "values", created_at
		FROM mod_actions WHERE id = $1
	`, id.String())
	entry, err := scanEntryRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("MOD_ACTION_NOT_FOUND").With("id", id.String()).Wrap(modlog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("MOD_ACTION_GET_FAILED").With("id", id.String()).Wrap(err)
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntryRow(row rowScanner) (*modlog.Entry, error) {
	var (
		e         modlog.Entry
		idStr     string
		valuesRaw []byte
	)
	if err := row.Scan(&idStr, &e.Kind, &e.CreatorID, &valuesRaw, &e.CreatedAt); err != nil {
		return nil, err
	}
	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt mod action ID %q: %w", idStr, err)
	}
	e.ID = id
	e.Values, err = modlog.DecodeValues(valuesRaw)
	if err != nil {
		return nil, fmt.Errorf("corrupt values for mod action %s: %w", idStr, err)
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*modlog.Entry, error) {
	entries := []*modlog.Entry{}
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, oops.Code("MOD_ACTION_SCAN_FAILED").Wrap(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("MOD_ACTION_QUERY_FAILED").Wrap(err)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
