// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("mod action not found")

// ErrAlreadyExists is returned when an entry with the same ID is appended
// twice. Only seed tooling with fixed IDs can hit this.
var ErrAlreadyExists = errors.New("mod action already exists")

// EntryRepository is the append-only persistence contract for the ledger.
// There is deliberately no update or delete: entries are immutable and
// retention is an operator concern handled outside this interface.
type EntryRepository interface {
	// Append persists an entry atomically; readers never observe a
	// partially written entry.
	Append(ctx context.Context, e *Entry) error

	// Search returns entries matching the filter. Ordering defaults to
	// reverse chronological with ID descending as the tiebreak; the page
	// size is clamped to MaxPageSize regardless of what the filter asks for.
	Search(ctx context.Context, f Filter) ([]*Entry, error)

	// Get returns the entry with the given ID or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, id ulid.ULID) (*Entry, error)
}
