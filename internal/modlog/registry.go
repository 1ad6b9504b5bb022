// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import "sort"

// TextFormatter renders an entry as a human-readable line. target is the
// display markup for the user the action was taken against (resolved from
// the values bag, not the entry creator); elevated reports whether the
// viewer holds the administrative role, which a few kinds use to gate
// sensitive fragments of the text rendering.
//
// Formatters must be total: a missing field renders as its zero form,
// never a panic, because persisted values bags can lag behind a newly
// deployed registry.
type TextFormatter func(e *Entry, target string, elevated bool) string

// Descriptor bundles everything the formatter engine knows about one
// action kind. JSONFields is the allowlist of values keys exposed in the
// JSON projection; it applies to every viewer, elevated or not. A nil Text
// formatter sends the kind through the unknown-action fallback.
type Descriptor struct {
	Kind       string
	Text       TextFormatter
	JSONFields []string
}

// Registry is the closed mapping from action kind to descriptor. It is
// built once at startup and never mutated, so lookups are safe for
// concurrent use.
type Registry struct {
	descriptors map[string]Descriptor
	kinds       []string
}

// NewRegistry builds a registry from the builtin action taxonomy plus any
// host-supplied descriptors. A host descriptor with a builtin kind replaces
// the builtin.
func NewRegistry(extra ...Descriptor) *Registry {
	descriptors := make(map[string]Descriptor)
	for _, d := range builtinDescriptors() {
		descriptors[d.Kind] = d
	}
	for _, d := range extra {
		descriptors[d.Kind] = d
	}

	kinds := make([]string, 0, len(descriptors))
	for kind := range descriptors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	return &Registry{descriptors: descriptors, kinds: kinds}
}

// Lookup returns the descriptor for kind. The second return is false for
// unregistered kinds; callers are expected to fall back gracefully rather
// than treat this as an error.
func (r *Registry) Lookup(kind string) (Descriptor, bool) {
	d, ok := r.descriptors[kind]
	return d, ok
}

// KnownKinds returns all registered kinds in sorted order.
func (r *Registry) KnownKinds() []string {
	out := make([]string, len(r.kinds))
	copy(out, r.kinds)
	return out
}
