package wikitools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewSpaceTool builds manage_wiki_spaces: creation under a unique uppercase
// key and archival.
func NewSpaceTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_wiki_spaces",
		Description:    "Creates and archives wiki spaces",
		PrimaryIDField: "space_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_space",
				Description: "Create a wiki space under a unique uppercase key",
				Required:    []string{"space_name", "space_key", "user_id"},
				Optional:    []string{"description"},
				Fields: []toolkit.Field{
					{Name: "space_name", Kind: toolkit.KindString, Description: "Display name of the space"},
					{Name: "space_key", Kind: toolkit.KindPattern, Pattern: validate.PatternSpaceKey, Hint: validate.HintSpaceKey, Description: "Short uppercase key"},
					{Name: "description", Kind: toolkit.KindString},
				},
				Auth: authz.Rule{
					Roles:      []string{roleSpaceAdmin},
					AdminRoles: []string{roleWikiAdmin},
				},
				Uniques: []toolkit.UniqueRule{{
					Table: "wiki_spaces", RecordField: "space_key", PayloadField: "space_key",
					Fold: true, Label: "Space with this key",
				}},
				Action: createSpace,
			},
			{
				Tag:         "archive_space",
				Description: "Archive an active space",
				Required:    []string{"space_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "space_id", Table: "wiki_spaces", Label: "Space"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleSpaceAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleWikiAdmin},
				},
				AuthTargetField: "space_id",
				Transition: &toolkit.TransitionRule{
					RefField: "space_id", StatusField: "status",
					Graph: validate.SpaceStatus, Next: "archived",
				},
				Action: archiveSpace,
			},
		},
	}
}

func createSpace(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("wiki_spaces")
	rec := store.Record{
		"space_id":   id,
		"space_name": ctx.Str("space_name"),
		"space_key":  ctx.Str("space_key"),
		"status":     "active",
		"created_by": ctx.CallerID,
		"created_at": ctx.Stamp(),
		"updated_at": ctx.Stamp(),
	}
	if ctx.Has("description") {
		rec["description"] = ctx.Str("description")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Space created successfully",
		Writes:    []toolkit.Write{{Table: "wiki_spaces", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefSpace,
			Action: audit.ActionCreate, NewValue: ctx.Str("space_key"),
		}},
	}, nil
}

func archiveSpace(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("space_id")
	space := ctx.Ref("space_id")
	rec := ctx.Modified(space, map[string]any{"status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Space archived",
		Writes:    []toolkit.Write{{Table: "wiki_spaces", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefSpace,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: "active", NewValue: "archived",
		}},
	}, nil
}
