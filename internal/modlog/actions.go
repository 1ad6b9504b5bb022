// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"fmt"
	"strings"
)

// builtinDescriptors returns the full moderation action taxonomy. Wordings
// and JSON allowlists are part of the ledger's contract: rendered text is
// stored nowhere, so changing a formatter retroactively changes how every
// historical entry of that kind displays.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		// Artist
		{
			Kind: "artist_lock",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Locked artist #%s", e.Values.Str("artist_id"))
			},
			JSONFields: []string{"artist_id"},
		},
		{
			Kind: "artist_rename",
			Text: func(e *Entry, _ string, _ bool) string {
				oldName := e.Values.Str("old_name")
				newName := e.Values.Str("new_name")
				return fmt.Sprintf("Renamed artist #%s (%q:/artists/show_or_new?name=%s -> %q:/artists/show_or_new?name=%s)",
					e.Values.Str("artist_id"), oldName, oldName, newName, newName)
			},
			JSONFields: []string{"old_name", "new_name", "artist_id"},
		},
		{
			Kind: "artist_unlock",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Unlocked artist #%s", e.Values.Str("artist_id"))
			},
			JSONFields: []string{"artist_id"},
		},
		{
			Kind: "artist_user_link",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Linked %s to artist #%s", target, e.Values.Str("artist_id"))
			},
			JSONFields: []string{"artist_id", "user_id"},
		},
		{
			Kind: "artist_user_unlink",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Unlinked %s from artist #%s", target, e.Values.Str("artist_id"))
			},
			JSONFields: []string{"artist_id", "user_id"},
		},

		// Ban
		{
			Kind: "ban_create",
			Text: func(e *Entry, target string, _ bool) string {
				if d, ok := e.Values.Int("duration"); ok {
					if d < 0 {
						return fmt.Sprintf("Banned %s permanently", target)
					}
					return fmt.Sprintf("Banned %s for %d %s", target, d, pluralDays(d))
				}
				if e.Values.Has("duration") && e.Values["duration"] != nil {
					return fmt.Sprintf("Banned %s for %s days", target, e.Values.Str("duration"))
				}
				return fmt.Sprintf("Banned %s", target)
			},
			JSONFields: []string{"duration", "user_id"},
		},
		{
			Kind: "ban_delete",
			Text: func(_ *Entry, target string, _ bool) string {
				return fmt.Sprintf("Unbanned %s", target)
			},
			JSONFields: []string{"user_id"},
		},
		{
			Kind: "ban_update",
			Text: func(e *Entry, target string, _ bool) string {
				var b strings.Builder
				fmt.Fprintf(&b, "Updated ban #%s for %s", e.Values.Str("ban_id"), target)
				d, dok := e.Values.Int("duration")
				was, wok := e.Values.Int("duration_was")
				if dok && wok && d != was {
					fmt.Fprintf(&b, "\nChanged duration from %s to %s", banDuration(was), banDuration(d))
				}
				if e.Values.Str("reason") != e.Values.Str("reason_was") {
					fmt.Fprintf(&b, "\nChanged reason: [section=Old]%s[/section] [section=New]%s[/section]",
						e.Values.Str("reason_was"), e.Values.Str("reason"))
				}
				return b.String()
			},
			JSONFields: []string{"duration", "duration_was", "reason", "reason_was", "ban_id", "user_id"},
		},

		// Comment
		{
			Kind: "comment_delete",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Deleted comment #%s by %s", e.Values.Str("comment_id"), target)
			},
			JSONFields: []string{"comment_id", "user_id"},
		},
		{
			Kind: "comment_hide",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Hid comment #%s by %s", e.Values.Str("comment_id"), target)
			},
			JSONFields: []string{"comment_id", "user_id"},
		},
		{
			Kind: "comment_unhide",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Unhid comment #%s by %s", e.Values.Str("comment_id"), target)
			},
			JSONFields: []string{"comment_id", "user_id"},
		},
		{
			Kind: "comment_update",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Edited comment #%s by %s", e.Values.Str("comment_id"), target)
			},
			JSONFields: []string{"comment_id", "user_id"},
		},

		// Forum category
		{
			Kind: "forum_category_create",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Created forum category #%s", e.Values.Str("forum_category_id"))
			},
			JSONFields: []string{"forum_category_id"},
		},
		{
			Kind: "forum_category_delete",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Deleted forum category #%s", e.Values.Str("forum_category_id"))
			},
			JSONFields: []string{"forum_category_id"},
		},
		{
			Kind: "forum_category_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Updated forum category #%s", e.Values.Str("forum_category_id"))
			},
			JSONFields: []string{"forum_category_id"},
		},

		// Forum post
		{
			Kind: "forum_post_delete",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Delete forum #%s in topic #%s by %s",
					e.Values.Str("forum_post_id"), e.Values.Str("forum_topic_id"), target)
			},
			JSONFields: []string{"forum_post_id", "forum_topic_id", "user_id"},
		},
		{
			Kind: "forum_post_hide",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Hid forum #%s in topic #%s by %s",
					e.Values.Str("forum_post_id"), e.Values.Str("forum_topic_id"), target)
			},
			JSONFields: []string{"forum_post_id", "forum_topic_id", "user_id"},
		},
		{
			Kind: "forum_post_unhide",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Unhid forum #%s in topic #%s by %s",
					e.Values.Str("forum_post_id"), e.Values.Str("forum_topic_id"), target)
			},
			JSONFields: []string{"forum_post_id", "forum_topic_id", "user_id"},
		},
		{
			Kind: "forum_post_update",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Edited forum #%s in topic #%s by %s",
					e.Values.Str("forum_post_id"), e.Values.Str("forum_topic_id"), target)
			},
			JSONFields: []string{"forum_post_id", "forum_topic_id", "user_id"},
		},

		// Forum topic
		forumTopicDescriptor("forum_topic_delete", "Deleted"),
		forumTopicDescriptor("forum_topic_hide", "Hid"),
		forumTopicDescriptor("forum_topic_lock", "Locked"),
		forumTopicDescriptor("forum_topic_stick", "Stickied"),
		forumTopicDescriptor("forum_topic_unhide", "Unhid"),
		forumTopicDescriptor("forum_topic_unlock", "Unlocked"),
		forumTopicDescriptor("forum_topic_unstick", "Unstickied"),

		// Help pages
		helpDescriptor("help_create", "Created"),
		helpDescriptor("help_delete", "Deleted"),
		helpDescriptor("help_update", "Updated"),

		// IP ban: the address and reason appear only in the text rendering,
		// and only for elevated viewers. The JSON allowlist is empty on
		// purpose; do not generalize this asymmetry.
		{
			Kind: "ip_ban_create",
			Text: func(e *Entry, _ string, elevated bool) string {
				if elevated {
					return fmt.Sprintf("Created ip ban %s\nBan reason: %s",
						e.Values.Str("ip_addr"), e.Values.Str("reason"))
				}
				return "Created ip ban"
			},
			JSONFields: []string{},
		},
		{
			Kind: "ip_ban_delete",
			Text: func(e *Entry, _ string, elevated bool) string {
				if elevated {
					return fmt.Sprintf("Deleted ip ban %s\nBan reason: %s",
						e.Values.Str("ip_addr"), e.Values.Str("reason"))
				}
				return "Deleted ip ban"
			},
			JSONFields: []string{},
		},

		// Mascot
		{
			Kind: "mascot_create",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Created mascot #%s", e.Values.Str("mascot_id"))
			},
			JSONFields: []string{"mascot_id"},
		},
		{
			Kind: "mascot_delete",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Deleted mascot #%s", e.Values.Str("mascot_id"))
			},
			JSONFields: []string{"mascot_id"},
		},
		{
			Kind: "mascot_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Updated mascot #%s", e.Values.Str("mascot_id"))
			},
			JSONFields: []string{"mascot_id"},
		},

		// Bulk update requests
		{
			Kind: "mass_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Mass updated [[%s]] -> [[%s]]",
					e.Values.Str("antecedent"), e.Values.Str("consequent"))
			},
			JSONFields: []string{"antecedent", "consequent"},
		},
		// nuke_tag carries no text formatter in the inherited taxonomy, so
		// it renders through the unknown-action fallback. Kept as-is pending
		// a product decision; see DESIGN.md.
		{
			Kind:       "nuke_tag",
			JSONFields: []string{"tag_name"},
		},

		// Pools
		{
			Kind: "pool_delete",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Deleted pool #%s (named %s) by %s",
					e.Values.Str("pool_id"), e.Values.Str("pool_name"), target)
			},
			JSONFields: []string{"pool_id", "pool_name", "user_id"},
		},

		// Post sets
		{
			Kind: "set_change_visibility",
			Text: func(e *Entry, target string, _ bool) string {
				visibility := "private"
				if e.Values.Bool("is_public") {
					visibility = "public"
				}
				return fmt.Sprintf("Made set #%s by %s %s", e.Values.Str("set_id"), target, visibility)
			},
			JSONFields: []string{"is_public", "set_id", "user_id"},
		},
		{
			Kind: "set_delete",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Deleted set #%s by %s", e.Values.Str("set_id"), target)
			},
			JSONFields: []string{"set_id", "user_id"},
		},
		{
			Kind: "set_update",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Edited set #%s by %s", e.Values.Str("set_id"), target)
			},
			JSONFields: []string{"set_id", "user_id"},
		},

		// Tag aliases
		{
			Kind: "tag_alias_create",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Created tag alias %s", e.Values.Str("alias_desc"))
			},
			JSONFields: []string{"alias_desc"},
		},
		{
			Kind: "tag_alias_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Updated tag alias %s\n%s",
					e.Values.Str("alias_desc"), e.Values.Str("change_desc"))
			},
			JSONFields: []string{"alias_desc", "change_desc"},
		},

		// Tag implications
		{
			Kind: "tag_implication_create",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Created tag implication %s", e.Values.Str("implication_desc"))
			},
			JSONFields: []string{"implication_desc"},
		},
		{
			Kind: "tag_implication_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Updated tag implication %s\n%s",
					e.Values.Str("implication_desc"), e.Values.Str("change_desc"))
			},
			JSONFields: []string{"implication_desc", "change_desc"},
		},

		// Takedowns
		{
			Kind: "takedown_process",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Completed takedown #%s", e.Values.Str("takedown_id"))
			},
			JSONFields: []string{"takedown_id"},
		},
		{
			Kind: "takedown_delete",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Deleted takedown #%s", e.Values.Str("takedown_id"))
			},
			JSONFields: []string{"takedown_id"},
		},

		// Tickets
		{
			Kind: "ticket_claim",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Claimed ticket #%s", e.Values.Str("ticket_id"))
			},
			JSONFields: []string{"ticket_id"},
		},
		{
			Kind: "ticket_unclaim",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Unclaimed ticket #%s", e.Values.Str("ticket_id"))
			},
			JSONFields: []string{"ticket_id"},
		},
		{
			Kind: "ticket_update",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Modified ticket #%s", e.Values.Str("ticket_id"))
			},
			JSONFields: []string{"ticket_id"},
		},

		// Upload whitelist: elevated viewers see the pattern, everyone else
		// the note, and hidden entries show nothing to non-elevated viewers.
		{
			Kind: "upload_whitelist_create",
			Text: func(e *Entry, _ string, elevated bool) string {
				if e.Values.Bool("hidden") && !elevated {
					return "Created whitelist entry"
				}
				return fmt.Sprintf("Created whitelist entry '%s'", whitelistLabel(e, elevated))
			},
			JSONFields: []string{"hidden"},
		},
		{
			Kind: "upload_whitelist_delete",
			Text: func(e *Entry, _ string, elevated bool) string {
				if e.Values.Bool("hidden") && !elevated {
					return "Deleted whitelist entry"
				}
				return fmt.Sprintf("Deleted whitelist entry '%s'", whitelistLabel(e, elevated))
			},
			JSONFields: []string{"hidden"},
		},
		{
			Kind: "upload_whitelist_update",
			Text: func(e *Entry, _ string, elevated bool) string {
				if e.Values.Bool("hidden") && !elevated {
					return "Updated whitelist entry"
				}
				oldPattern := e.Values.Str("old_pattern")
				pattern := e.Values.Str("pattern")
				if elevated && oldPattern != "" && oldPattern != pattern {
					return fmt.Sprintf("Updated whitelist entry '%s' -> '%s'", oldPattern, pattern)
				}
				return fmt.Sprintf("Updated whitelist entry '%s'", whitelistLabel(e, elevated))
			},
			JSONFields: []string{"hidden"},
		},

		// Users
		{
			Kind: "user_blacklist_change",
			Text: func(_ *Entry, target string, _ bool) string {
				return fmt.Sprintf("Edited blacklist of %s", target)
			},
			JSONFields: []string{"user_id"},
		},
		{
			Kind: "user_delete",
			Text: func(_ *Entry, target string, _ bool) string {
				return fmt.Sprintf("Deleted user %s", target)
			},
			JSONFields: []string{"user_id"},
		},
		{
			Kind: "user_flags_change",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Changed %s flags. Added: [%s] Removed: [%s]",
					target, e.Values.Str("added"), e.Values.Str("removed"))
			},
			JSONFields: []string{"added", "removed", "user_id"},
		},
		{
			Kind: "user_level_change",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Changed %s level from %s to %s",
					target, e.Values.Str("level_was"), e.Values.Str("level"))
			},
			JSONFields: []string{"level", "level_was", "user_id"},
		},
		{
			Kind: "user_name_change",
			Text: func(_ *Entry, target string, _ bool) string {
				return fmt.Sprintf("Changed name of %s", target)
			},
			JSONFields: []string{"user_id"},
		},
		{
			Kind: "user_text_change",
			Text: func(_ *Entry, target string, _ bool) string {
				return fmt.Sprintf("Edited profile text of %s", target)
			},
			JSONFields: []string{"user_id"},
		},
		{
			Kind: "user_upload_limit_change",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Changed upload limit of %s from %s to %s",
					target, e.Values.Str("old_upload_limit"), e.Values.Str("new_upload_limit"))
			},
			JSONFields: []string{"old_upload_limit", "new_upload_limit", "user_id"},
		},

		// User feedback
		{
			Kind: "user_feedback_create",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Created %s record #%s for %s with reason: %s",
					e.Values.Str("type"), e.Values.Str("record_id"), target, e.Values.Str("reason"))
			},
			JSONFields: []string{"type", "record_id", "reason", "user_id"},
		},
		{
			Kind: "user_feedback_delete",
			Text: func(e *Entry, target string, _ bool) string {
				return fmt.Sprintf("Deleted %s record for %s with reason: %s",
					e.Values.Str("type"), target, e.Values.Str("reason"))
			},
			JSONFields: []string{"type", "reason", "user_id"},
		},
		{
			Kind: "user_feedback_update",
			Text: func(e *Entry, target string, _ bool) string {
				var b strings.Builder
				fmt.Fprintf(&b, "Edited record #%s for %s", e.Values.Str("record_id"), target)
				if e.Values.Str("type") != e.Values.Str("type_was") {
					fmt.Fprintf(&b, "\nChanged type from %s to %s",
						e.Values.Str("type_was"), e.Values.Str("type"))
				}
				if e.Values.Str("reason") != e.Values.Str("reason_was") {
					fmt.Fprintf(&b, "\nChanged reason: [section=Old]%s[/section] [section=New]%s[/section]",
						e.Values.Str("reason_was"), e.Values.Str("reason"))
				}
				return b.String()
			},
			JSONFields: []string{"type", "type_was", "reason", "reason_was", "record_id", "user_id"},
		},

		// Wiki
		{
			Kind: "wiki_page_delete",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Deleted wiki page [[%s]]", e.Values.Str("wiki_page_title"))
			},
			JSONFields: []string{"wiki_page_id", "wiki_page_title"},
		},
		{
			Kind: "wiki_page_lock",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Locked wiki page [[%s]]", e.Values.Str("wiki_page_title"))
			},
			JSONFields: []string{"wiki_page_id", "wiki_page_title"},
		},
		{
			Kind: "wiki_page_rename",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Renamed wiki page ([[%s]] -> [[%s]])",
					e.Values.Str("old_title"), e.Values.Str("new_title"))
			},
			JSONFields: []string{"wiki_page_id", "old_title", "new_title"},
		},
		{
			Kind: "wiki_page_unlock",
			Text: func(e *Entry, _ string, _ bool) string {
				return fmt.Sprintf("Unlocked wiki page [[%s]]", e.Values.Str("wiki_page_title"))
			},
			JSONFields: []string{"wiki_page_id", "wiki_page_title"},
		},
	}
}

func forumTopicDescriptor(kind, verb string) Descriptor {
	return Descriptor{
		Kind: kind,
		Text: func(e *Entry, target string, _ bool) string {
			return fmt.Sprintf("%s topic #%s (with title %s) by %s",
				verb, e.Values.Str("forum_topic_id"), e.Values.Str("forum_topic_title"), target)
		},
		JSONFields: []string{"forum_topic_id", "forum_topic_title", "user_id"},
	}
}

func helpDescriptor(kind, verb string) Descriptor {
	return Descriptor{
		Kind: kind,
		Text: func(e *Entry, _ string, _ bool) string {
			name := e.Values.Str("name")
			return fmt.Sprintf("%s help entry %q:/help/%s ([[%s]])",
				verb, name, normalizeHelpName(name), e.Values.Str("wiki_page"))
		},
		JSONFields: []string{"name", "wiki_page"},
	}
}

func whitelistLabel(e *Entry, elevated bool) string {
	if elevated {
		return e.Values.Str("pattern")
	}
	return e.Values.Str("note")
}

func pluralDays(n int64) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func banDuration(n int64) string {
	if n < 0 {
		return "permanent"
	}
	return fmt.Sprintf("%d %s", n, pluralDays(n))
}

// normalizeHelpName turns a help entry name into its URL slug.
func normalizeHelpName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
