package wikitools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewCommentTool builds manage_wiki_comments: open threads on pages and
// their resolution. Any active user may comment; resolution is open to the
// comment author and the editor roles.
func NewCommentTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_wiki_comments",
		Description:    "Adds comments to wiki pages and resolves them",
		PrimaryIDField: "comment_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "add_comment",
				Description: "Open a comment thread on a page",
				Required:    []string{"page_id", "comment_text", "user_id"},
				Fields: []toolkit.Field{
					{Name: "page_id", Kind: toolkit.KindString},
					{Name: "comment_text", Kind: toolkit.KindString, Description: "Comment body"},
				},
				Refs: []toolkit.Reference{
					{Field: "page_id", Table: "wiki_pages", Label: "Page"},
				},
				Action: addComment,
			},
			{
				Tag:         "resolve_comment",
				Description: "Resolve an open comment",
				Required:    []string{"comment_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "comment_id", Table: "wiki_comments", Label: "Comment"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleEditor, roleSpaceAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleWikiAdmin},
				},
				AuthTargetField: "comment_id",
				Transition: &toolkit.TransitionRule{
					RefField: "comment_id", StatusField: "status",
					Graph: validate.CommentStatus, Next: "resolved",
				},
				Action: resolveComment,
			},
		},
	}
}

func addComment(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	page := ctx.Ref("page_id")
	if status, _ := page["status"].(string); status == "archived" {
		return nil, domain.Haltf("Page is archived")
	}

	id := ctx.Mint("wiki_comments")
	rec := store.Record{
		"comment_id":   id,
		"page_id":      ctx.Str("page_id"),
		"comment_text": ctx.Str("comment_text"),
		"status":       "open",
		"created_by":   ctx.CallerID,
		"created_at":   ctx.Stamp(),
		"updated_at":   ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Comment added successfully",
		Writes:    []toolkit.Write{{Table: "wiki_comments", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefComment,
			Action: audit.ActionCreate, NewValue: ctx.Str("page_id"),
		}},
	}, nil
}

func resolveComment(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("comment_id")
	comment := ctx.Ref("comment_id")
	rec := ctx.Modified(comment, map[string]any{"status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Comment resolved",
		Writes:    []toolkit.Write{{Table: "wiki_comments", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefComment,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: "open", NewValue: "resolved",
		}},
	}, nil
}
