// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Pagination bounds. The ceiling is enforced at the store layer no matter
// what a caller requests; oversized requests are clamped, not rejected.
const (
	DefaultPageSize = 75
	MaxPageSize     = 320
)

// SortOrder selects search result ordering.
type SortOrder string

// Search orderings.
const (
	OrderNewestFirst SortOrder = "newest" // default
	OrderOldestFirst SortOrder = "oldest"
)

// Filter describes a search over the ledger. Zero values mean "no
// constraint".
type Filter struct {
	// Kind matches entries with exactly this action kind.
	Kind string

	// CreatorID matches entries created by this actor. Zero means any.
	CreatorID int64

	// CreatorName matches by creator display name, resolved through the
	// identity directory at the facade. Ignored when CreatorID is set.
	CreatorName string

	// ExcludeKinds drops entries whose kind matches any element. Elements
	// may be literal kinds or glob patterns (e.g. "forum_*"); patterns are
	// expanded against the registry's known kinds before hitting the store.
	ExcludeKinds []string

	Order  SortOrder
	Limit  int
	Offset int
}

// Normalized returns a copy with the page size clamped and the order
// defaulted. Repositories call this so the ceiling holds even when the
// facade is bypassed.
func (f Filter) Normalized() Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Order != OrderOldestFirst {
		f.Order = OrderNewestFirst
	}
	return f
}

// expandExcludes resolves glob patterns in ExcludeKinds against the known
// kinds, leaving literals untouched so an exclusion can also name an
// unregistered kind. Unparseable patterns are kept as literals. The result
// is sorted and de-duplicated for deterministic queries.
func expandExcludes(registry *Registry, excludes []string) []string {
	if len(excludes) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, pattern := range excludes {
		if !strings.ContainsAny(pattern, "*?[{") {
			seen[pattern] = struct{}{}
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			seen[pattern] = struct{}{}
			continue
		}
		for _, kind := range registry.KnownKinds() {
			if g.Match(kind) {
				seen[kind] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for kind := range seen {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}
