package wikitools

import "agentbench/internal/discover"

// NewWikiDiscovery builds fetch_wiki_entities over the wiki tables.
func NewWikiDiscovery() *discover.Tool {
	return discover.New("fetch_wiki_entities",
		"Fetches wiki entities (spaces, pages, versions, permissions, comments) with optional filters").
		Add("wiki_spaces", discover.Entity{Table: "wiki_spaces", Filters: []string{
			"space_id", "space_key", "space_name", "status", "created_by",
		}}).
		Add("wiki_pages", discover.Entity{Table: "wiki_pages", Filters: []string{
			"page_id", "space_id", "title", "status", "created_by",
			"version_min", "version_max",
		}}).
		Add("page_versions", discover.Entity{Table: "page_versions", Filters: []string{
			"version_id", "page_id", "version_min", "version_max",
			"created_at_from", "created_at_to",
		}}).
		Add("page_permissions", discover.Entity{Table: "page_permissions", Filters: []string{
			"permission_id", "page_id", "user_id", "permission_level", "granted_by",
		}}).
		Add("wiki_comments", discover.Entity{Table: "wiki_comments", Filters: []string{
			"comment_id", "page_id", "status", "created_by",
		}})
}
