// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/modlog/internal/modlog"
)

// staticIdentity resolves user names from a fixed map, "unknown" otherwise.
type staticIdentity map[int64]string

func (s staticIdentity) Name(_ context.Context, userID int64) string {
	if name, ok := s[userID]; ok {
		return name
	}
	return "unknown"
}

func newTestFormatter() *modlog.Formatter {
	return modlog.NewFormatter(modlog.NewRegistry(), staticIdentity{501: "alice", 502: "bob"})
}

func entryOf(kind string, values modlog.Values) *modlog.Entry {
	entry, err := modlog.NewEntry(kind, 42, values)
	if err != nil {
		panic(err)
	}
	return entry
}

var (
	public = modlog.Viewer{UserID: 9, Elevated: false}
	staff  = modlog.Viewer{UserID: 10, Elevated: true}
)

func TestFormatter_RenderText(t *testing.T) {
	ctx := context.Background()
	f := newTestFormatter()

	tests := []struct {
		name   string
		entry  *modlog.Entry
		viewer modlog.Viewer
		want   string
	}{
		{
			name:   "ban with duration",
			entry:  entryOf("ban_create", modlog.Values{"user_id": int64(501), "duration": int64(60)}),
			viewer: public,
			want:   `Banned "alice":/users/501 for 60 days`,
		},
		{
			name:   "ban for a single day",
			entry:  entryOf("ban_create", modlog.Values{"user_id": int64(501), "duration": int64(1)}),
			viewer: public,
			want:   `Banned "alice":/users/501 for 1 day`,
		},
		{
			name:   "negative duration is permanent",
			entry:  entryOf("ban_create", modlog.Values{"user_id": int64(501), "duration": int64(-1)}),
			viewer: public,
			want:   `Banned "alice":/users/501 permanently`,
		},
		{
			name:   "non-numeric duration keeps legacy wording",
			entry:  entryOf("ban_create", modlog.Values{"user_id": int64(501), "duration": "sixty"}),
			viewer: public,
			want:   `Banned "alice":/users/501 for sixty days`,
		},
		{
			name:   "missing duration",
			entry:  entryOf("ban_create", modlog.Values{"user_id": int64(501)}),
			viewer: public,
			want:   `Banned "alice":/users/501`,
		},
		{
			name:   "unban",
			entry:  entryOf("ban_delete", modlog.Values{"user_id": int64(502)}),
			viewer: public,
			want:   `Unbanned "bob":/users/502`,
		},
		{
			name: "ban update with duration and reason change",
			entry: entryOf("ban_update", modlog.Values{
				"ban_id": int64(77), "user_id": int64(501),
				"duration": int64(-1), "duration_was": int64(30),
				"reason": "evasion", "reason_was": "spam",
			}),
			viewer: public,
			want: `Updated ban #77 for "alice":/users/501` + "\n" +
				`Changed duration from 30 days to permanent` + "\n" +
				`Changed reason: [section=Old]spam[/section] [section=New]evasion[/section]`,
		},
		{
			name:   "comment deletion",
			entry:  entryOf("comment_delete", modlog.Values{"comment_id": int64(88412), "user_id": int64(501)}),
			viewer: public,
			want:   `Deleted comment #88412 by "alice":/users/501`,
		},
		{
			name:   "missing target user renders unknown",
			entry:  entryOf("comment_delete", modlog.Values{"comment_id": int64(88412)}),
			viewer: public,
			want:   `Deleted comment #88412 by unknown`,
		},
		{
			name:   "forum topic with title",
			entry:  entryOf("forum_topic_stick", modlog.Values{"forum_topic_id": int64(9), "forum_topic_title": "Rules", "user_id": int64(502)}),
			viewer: public,
			want:   `Stickied topic #9 (with title Rules) by "bob":/users/502`,
		},
		{
			name:   "help entry slug",
			entry:  entryOf("help_create", modlog.Values{"name": "Upload Guide", "wiki_page": "help:upload_guide"}),
			viewer: public,
			want:   `Created help entry "Upload Guide":/help/upload_guide ([[help:upload_guide]])`,
		},
		{
			name:   "ip ban hides details from public viewers",
			entry:  entryOf("ip_ban_create", modlog.Values{"ip_addr": "203.0.113.7", "reason": "evasion"}),
			viewer: public,
			want:   "Created ip ban",
		},
		{
			name:   "ip ban shows details to staff",
			entry:  entryOf("ip_ban_create", modlog.Values{"ip_addr": "203.0.113.7", "reason": "evasion"}),
			viewer: staff,
			want:   "Created ip ban 203.0.113.7\nBan reason: evasion",
		},
		{
			name:   "mass update wiki markup",
			entry:  entryOf("mass_update", modlog.Values{"antecedent": "cat", "consequent": "felid"}),
			viewer: public,
			want:   "Mass updated [[cat]] -> [[felid]]",
		},
		{
			name:   "set visibility public",
			entry:  entryOf("set_change_visibility", modlog.Values{"set_id": int64(3), "user_id": int64(501), "is_public": true}),
			viewer: public,
			want:   `Made set #3 by "alice":/users/501 public`,
		},
		{
			name:   "set visibility private",
			entry:  entryOf("set_change_visibility", modlog.Values{"set_id": int64(3), "user_id": int64(501), "is_public": false}),
			viewer: public,
			want:   `Made set #3 by "alice":/users/501 private`,
		},
		{
			name:   "whitelist shows note to public",
			entry:  entryOf("upload_whitelist_create", modlog.Values{"pattern": "*.example.com/*", "note": "example host", "hidden": false}),
			viewer: public,
			want:   "Created whitelist entry 'example host'",
		},
		{
			name:   "whitelist shows pattern to staff",
			entry:  entryOf("upload_whitelist_create", modlog.Values{"pattern": "*.example.com/*", "note": "example host", "hidden": false}),
			viewer: staff,
			want:   "Created whitelist entry '*.example.com/*'",
		},
		{
			name:   "hidden whitelist entry shows nothing to public",
			entry:  entryOf("upload_whitelist_update", modlog.Values{"pattern": "*.example.com/*", "note": "example host", "hidden": true}),
			viewer: public,
			want:   "Updated whitelist entry",
		},
		{
			name:   "whitelist pattern change visible to staff",
			entry:  entryOf("upload_whitelist_update", modlog.Values{"old_pattern": "*.old.com/*", "pattern": "*.new.com/*", "hidden": false}),
			viewer: staff,
			want:   "Updated whitelist entry '*.old.com/*' -> '*.new.com/*'",
		},
		{
			name:   "user flags change",
			entry:  entryOf("user_flags_change", modlog.Values{"user_id": int64(501), "added": "verified", "removed": "banned, flagged"}),
			viewer: public,
			want:   `Changed "alice":/users/501 flags. Added: [verified] Removed: [banned, flagged]`,
		},
		{
			name:   "user level change",
			entry:  entryOf("user_level_change", modlog.Values{"user_id": int64(501), "level_was": "Member", "level": "Janitor"}),
			viewer: public,
			want:   `Changed "alice":/users/501 level from Member to Janitor`,
		},
		{
			name: "feedback update reports only changed parts",
			entry: entryOf("user_feedback_update", modlog.Values{
				"record_id": int64(12), "user_id": int64(502),
				"type": "negative", "type_was": "negative",
				"reason": "rude", "reason_was": "spam",
			}),
			viewer: public,
			want: `Edited record #12 for "bob":/users/502` + "\n" +
				`Changed reason: [section=Old]spam[/section] [section=New]rude[/section]`,
		},
		{
			name:   "forum post delete keeps inherited wording",
			entry:  entryOf("forum_post_delete", modlog.Values{"forum_post_id": int64(4), "forum_topic_id": int64(2), "user_id": int64(501)}),
			viewer: public,
			want:   `Delete forum #4 in topic #2 by "alice":/users/501`,
		},
		{
			name:   "wiki rename",
			entry:  entryOf("wiki_page_rename", modlog.Values{"old_title": "a", "new_title": "b"}),
			viewer: public,
			want:   "Renamed wiki page ([[a]] -> [[b]])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.RenderText(ctx, tt.entry, tt.viewer))
		})
	}
}

func TestFormatter_RenderText_UnknownKind(t *testing.T) {
	ctx := context.Background()
	f := newTestFormatter()
	entry := entryOf("bulk_revert", modlog.Values{"constraints": "user 501", "commit": "abc"})

	t.Run("public sees only the kind", func(t *testing.T) {
		assert.Equal(t, "Unknown action bulk_revert", f.RenderText(ctx, entry, public))
	})

	t.Run("staff sees the values bag", func(t *testing.T) {
		assert.Equal(t, "Unknown action bulk_revert: {commit: abc, constraints: user 501}",
			f.RenderText(ctx, entry, staff))
	})

	t.Run("nil formatter falls back the same way", func(t *testing.T) {
		nuke := entryOf("nuke_tag", modlog.Values{"tag_name": "artist_request"})
		assert.Equal(t, "Unknown action nuke_tag", f.RenderText(ctx, nuke, public))
		assert.Equal(t, "Unknown action nuke_tag: {tag_name: artist_request}",
			f.RenderText(ctx, nuke, staff))
	})

	// Legacy rows exist whose kind is the truncated literal "user_feedback_de"
	// rather than user_feedback_delete. The truncated key is not registered, so
	// those rows render through the fallback instead of the delete wording.
	t.Run("truncated legacy kind stays unregistered", func(t *testing.T) {
		legacy := entryOf("user_feedback_de", modlog.Values{"user_id": int64(501), "record_id": int64(3)})
		assert.Equal(t, "Unknown action user_feedback_de", f.RenderText(ctx, legacy, public))
		assert.Equal(t, "Unknown action user_feedback_de: {record_id: 3, user_id: 501}",
			f.RenderText(ctx, legacy, staff))
	})
}

func TestFormatter_RenderText_Deterministic(t *testing.T) {
	ctx := context.Background()
	f := newTestFormatter()
	entry := entryOf("ban_create", modlog.Values{"user_id": int64(501), "duration": int64(3)})

	first := f.RenderText(ctx, entry, public)
	for range 20 {
		assert.Equal(t, first, f.RenderText(ctx, entry, public))
	}
}

func TestFormatter_RenderJSON(t *testing.T) {
	f := newTestFormatter()

	t.Run("projects only allowlisted fields", func(t *testing.T) {
		entry := entryOf("ban_create", modlog.Values{
			"user_id":  int64(501),
			"duration": int64(7),
			"reason":   "secret staff note",
		})

		got := f.RenderJSON(entry, public)
		assert.Equal(t, map[string]any{"duration": int64(7), "user_id": int64(501)}, got)
		assert.NotContains(t, got, "reason")

		// Role does not widen registered projections.
		assert.Equal(t, got, f.RenderJSON(entry, staff))
	})

	t.Run("absent allowlisted keys appear as nil", func(t *testing.T) {
		entry := entryOf("ban_create", modlog.Values{"user_id": int64(501)})

		got := f.RenderJSON(entry, public)
		require.Contains(t, got, "duration")
		assert.Nil(t, got["duration"])
	})

	t.Run("empty allowlist hides everything", func(t *testing.T) {
		entry := entryOf("ip_ban_create", modlog.Values{"ip_addr": "203.0.113.7", "reason": "evasion"})

		assert.Empty(t, f.RenderJSON(entry, public))
		assert.Empty(t, f.RenderJSON(entry, staff))
	})

	t.Run("unregistered kind branches on role", func(t *testing.T) {
		entry := entryOf("bulk_revert", modlog.Values{"constraints": "user 501"})

		assert.Empty(t, f.RenderJSON(entry, public))
		assert.Equal(t, map[string]any{"constraints": "user 501"}, f.RenderJSON(entry, staff))
	})

	t.Run("staff projection of unregistered kind is a copy", func(t *testing.T) {
		entry := entryOf("bulk_revert", modlog.Values{"constraints": "user 501"})

		got := f.RenderJSON(entry, staff)
		got["constraints"] = "mutated"
		assert.Equal(t, "user 501", entry.Values.Str("constraints"))
	})
}

func TestUnresolvedIdentity(t *testing.T) {
	f := modlog.NewFormatter(modlog.NewRegistry(), nil)
	entry := entryOf("ban_delete", modlog.Values{"user_id": int64(501)})

	assert.Equal(t, `Unbanned "user 501":/users/501`, f.RenderText(context.Background(), entry, public))
}
