// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"context"
	"fmt"
)

// Viewer carries the resolved role of whoever is reading the log. Hosts
// resolve their own role model down to the single bit that matters here.
type Viewer struct {
	UserID   int64
	Elevated bool
}

// IdentityResolver maps user IDs to display names for text rendering.
// Implementations should return a placeholder (e.g. "unknown") rather than
// an error for IDs they cannot resolve.
type IdentityResolver interface {
	Name(ctx context.Context, userID int64) string
}

// IdentityDirectory resolves a display name back to a user ID, used when a
// search filter names a creator instead of passing an ID.
type IdentityDirectory interface {
	IDByName(ctx context.Context, name string) (int64, bool)
}

// UnresolvedIdentity labels users by numeric ID. It is the fallback when a
// host wires no resolver, and keeps text rendering deterministic without a
// user directory.
type UnresolvedIdentity struct{}

// Name implements IdentityResolver.
func (UnresolvedIdentity) Name(_ context.Context, userID int64) string {
	return fmt.Sprintf("user %d", userID)
}

// Formatter renders entries for display. Rendering is a pure function of
// the entry, the registry, and the viewer's role; the same inputs always
// produce byte-identical output.
type Formatter struct {
	registry *Registry
	identity IdentityResolver
}

// NewFormatter creates a Formatter over the given registry and identity
// resolver. A nil resolver falls back to UnresolvedIdentity.
func NewFormatter(registry *Registry, identity IdentityResolver) *Formatter {
	if identity == nil {
		identity = UnresolvedIdentity{}
	}
	return &Formatter{registry: registry, identity: identity}
}

// RenderText renders an entry as a human-readable line. Cross-reference
// markup ([[wiki]] tokens, "name":/users/id links) is emitted as plain
// text; turning it into hyperlinks is the host's markup renderer's job.
//
// Unregistered kinds degrade instead of failing: elevated viewers see the
// kind and the raw values bag, everyone else sees only the kind. That
// asymmetry is the privacy safeguard for action kinds added after this
// process was deployed.
func (f *Formatter) RenderText(ctx context.Context, e *Entry, viewer Viewer) string {
	desc, ok := f.registry.Lookup(e.Kind)
	if !ok || desc.Text == nil {
		renderFallbacks.Inc()
		if viewer.Elevated {
			return fmt.Sprintf("Unknown action %s: %s", e.Kind, e.Values)
		}
		return fmt.Sprintf("Unknown action %s", e.Kind)
	}
	return desc.Text(e, f.targetUser(ctx, e), viewer.Elevated)
}

// RenderJSON projects an entry's values onto its kind's JSON allowlist.
// The allowlist applies regardless of role: for registered kinds the
// descriptor itself encodes what is public. Only unregistered kinds branch
// on the viewer, mirroring RenderText's fallback.
//
// Allowlisted keys absent from the bag appear with a nil value, so the
// projection's shape is stable across entries of one kind.
func (f *Formatter) RenderJSON(e *Entry, viewer Viewer) map[string]any {
	desc, ok := f.registry.Lookup(e.Kind)
	if !ok {
		renderFallbacks.Inc()
		if viewer.Elevated {
			return e.Values.Clone()
		}
		return map[string]any{}
	}
	out := make(map[string]any, len(desc.JSONFields))
	for _, field := range desc.JSONFields {
		out[field] = e.Values[field]
	}
	return out
}

// targetUser builds the display markup for the user the action concerns
// (the user_id field of the values bag, not the entry's creator).
func (f *Formatter) targetUser(ctx context.Context, e *Entry) string {
	id, ok := e.Values.Int("user_id")
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%q:/users/%d", f.identity.Name(ctx, id), id)
}
