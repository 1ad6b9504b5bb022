// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

// KnownFields is the shared field vocabulary for values bags. Every kind
// populates a sparse subset of these. The list is advisory: unknown fields
// are accepted on write so that registry updates can deploy out of sync
// with writers.
var KnownFields = []string{
	"user_id",
	"name",
	"mascot_id",
	"takedown_id",
	"tag_name",
	"ip_addr",
	"ticket_id",
	"change_desc",
	"reason", "reason_was",
	"description", "description_was",
	"antecedent", "consequent",
	"alias_id", "alias_desc",
	"implication_id", "implication_desc",
	"set_id", "is_public",
	"added", "removed", "level", "level_was",
	"new_name", "old_name", "artist_id",
	"duration", "expires_at", "expires_at_was",
	"comment_id",
	"forum_category_id", "forum_post_id", "forum_topic_id", "forum_topic_title",
	"pool_id", "pool_name",
	"pattern", "old_pattern", "note", "hidden",
	"type", "type_was", "record_id",
	"wiki_page", "wiki_page_id", "wiki_page_title", "new_title", "old_title",
}
