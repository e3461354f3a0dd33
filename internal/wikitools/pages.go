package wikitools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewPageTool builds manage_wiki_pages. Content edits are versioned: each
// update bumps the page's version and appends a page_versions row carrying
// the superseded content, under a single audit row referencing the page.
func NewPageTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_wiki_pages",
		Description:    "Creates wiki pages and manages their content versions and lifecycle",
		PrimaryIDField: "page_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_page",
				Description: "Create a draft page in an active space",
				Required:    []string{"space_id", "title", "content", "user_id"},
				Fields: []toolkit.Field{
					{Name: "space_id", Kind: toolkit.KindString},
					{Name: "title", Kind: toolkit.KindString, Description: "Page title, unique across the wiki"},
					{Name: "content", Kind: toolkit.KindString, Description: "Page body"},
				},
				Refs: []toolkit.Reference{
					{Field: "space_id", Table: "wiki_spaces", Label: "Space"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleEditor, roleSpaceAdmin},
					AdminRoles: []string{roleWikiAdmin},
				},
				Uniques: []toolkit.UniqueRule{{
					Table: "wiki_pages", RecordField: "title", PayloadField: "title",
					Fold: true, Label: "Page with this title",
				}},
				Action: createPage,
			},
			{
				Tag:         "update_page_content",
				Description: "Replace a page's content, bumping its version and archiving the previous content",
				Required:    []string{"page_id", "content", "user_id"},
				Fields: []toolkit.Field{
					{Name: "page_id", Kind: toolkit.KindString},
					{Name: "content", Kind: toolkit.KindString, Description: "New page body"},
				},
				Refs: []toolkit.Reference{
					{Field: "page_id", Table: "wiki_pages", Label: "Page"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleEditor, roleSpaceAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleWikiAdmin},
				},
				AuthTargetField: "page_id",
				Action:          updatePageContent,
			},
			pageEdge("publish_page", "Publish a draft page", "published"),
			pageEdge("archive_page", "Archive a published page", "archived"),
			pageEdge("restore_page", "Restore an archived page to published", "published"),
		},
	}
}

func pageEdge(tag, description, next string) toolkit.Operation {
	return toolkit.Operation{
		Tag:         tag,
		Description: description,
		Required:    []string{"page_id", "user_id"},
		Refs: []toolkit.Reference{
			{Field: "page_id", Table: "wiki_pages", Label: "Page"},
		},
		Auth: authz.Rule{
			Roles:       []string{roleEditor, roleSpaceAdmin},
			OwnerFields: []string{"created_by"},
			AdminRoles:  []string{roleWikiAdmin},
		},
		AuthTargetField: "page_id",
		Transition: &toolkit.TransitionRule{
			RefField: "page_id", StatusField: "status",
			Graph: validate.PageStatus, Next: next,
		},
		Action: func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
			id := ctx.Str("page_id")
			page := ctx.Ref("page_id")
			old, _ := page["status"].(string)
			rec := ctx.Modified(page, map[string]any{"status": ctx.Next()})

			return &toolkit.Outcome{
				PrimaryID: id,
				Message:   "Page status updated",
				Writes:    []toolkit.Write{{Table: "wiki_pages", ID: id, Record: rec}},
				Audit: []audit.Entry{{
					ReferenceID: id, ReferenceType: audit.RefPage,
					Action: audit.ActionUpdate, FieldName: "status",
					OldValue: old, NewValue: ctx.Next(),
				}},
			}, nil
		},
	}
}

func createPage(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	space := ctx.Ref("space_id")
	if status, _ := space["status"].(string); status != "active" {
		return nil, domain.Haltf("Space is not active")
	}

	id := ctx.Mint("wiki_pages")
	rec := store.Record{
		"page_id":    id,
		"space_id":   ctx.Str("space_id"),
		"title":      ctx.Str("title"),
		"content":    ctx.Str("content"),
		"version":    1.0,
		"status":     "draft",
		"created_by": ctx.CallerID,
		"created_at": ctx.Stamp(),
		"updated_at": ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Page created successfully",
		Writes:    []toolkit.Write{{Table: "wiki_pages", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPage,
			Action: audit.ActionCreate, NewValue: ctx.Str("title"),
		}},
	}, nil
}

func updatePageContent(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("page_id")
	page := ctx.Ref("page_id")
	if status, _ := page["status"].(string); status == "archived" {
		return nil, domain.Haltf("Page is archived")
	}

	version, fail := validate.Number(page["version"], "version")
	if fail != nil {
		version = 1
	}
	versionID := ctx.Mint("page_versions")
	superseded := store.Record{
		"version_id": versionID,
		"page_id":    id,
		"version":    version,
		"content":    page["content"],
		"created_at": ctx.Stamp(),
	}
	rec := ctx.Modified(page, map[string]any{
		"content": ctx.Str("content"),
		"version": version + 1,
	})

	// One audit row for the page; the version row is bookkeeping, not a
	// separately audited mutation.
	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Page content updated",
		Writes: []toolkit.Write{
			{Table: "wiki_pages", ID: id, Record: rec},
			{Table: "page_versions", ID: versionID, Record: superseded},
		},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPage,
			Action: audit.ActionUpdate, FieldName: "version",
			OldValue: version, NewValue: version + 1,
		}},
	}, nil
}
