// Package wikitools holds the enterprise-wiki tool descriptors: spaces,
// pages with versioned content, page permissions and comments, plus the
// read-side discovery tool.
package wikitools

// Roles appearing in wiki snapshots.
const (
	roleWikiAdmin  = "wiki_admin"
	roleSpaceAdmin = "space_admin"
	roleEditor     = "editor"
)

var permissionLevels = []string{"view", "comment", "edit", "admin"}
