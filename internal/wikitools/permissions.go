package wikitools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// NewPagePermissionTool builds manage_page_permissions. Permission rows are
// detached entities: revocation physically deletes the row rather than
// archiving it.
func NewPagePermissionTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_page_permissions",
		Description:    "Grants and revokes per-user page permissions",
		PrimaryIDField: "permission_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "grant_page_permission",
				Description: "Grant a user a permission level on a page",
				Required:    []string{"page_id", "grantee_id", "permission_level", "user_id"},
				Fields: []toolkit.Field{
					{Name: "page_id", Kind: toolkit.KindString},
					{Name: "grantee_id", Kind: toolkit.KindString, Description: "User receiving the permission"},
					{Name: "permission_level", Kind: toolkit.KindEnum, Enum: permissionLevels},
				},
				Refs: []toolkit.Reference{
					{Field: "page_id", Table: "wiki_pages", Label: "Page"},
					{Field: "grantee_id", Table: "users", Label: "Grantee"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleSpaceAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleWikiAdmin},
				},
				AuthTargetField: "page_id",
				Action:          grantPagePermission,
			},
			{
				Tag:         "revoke_page_permission",
				Description: "Revoke a granted page permission, removing the row",
				Required:    []string{"permission_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "permission_id", Table: "page_permissions", Label: "Permission"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleSpaceAdmin},
					OwnerFields: []string{"granted_by"},
					AdminRoles:  []string{roleWikiAdmin},
				},
				AuthTargetField: "permission_id",
				Action:          revokePagePermission,
			},
		},
	}
}

func grantPagePermission(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	pageID := ctx.Str("page_id")
	granteeID := ctx.Str("grantee_id")
	for _, perm := range ctx.Snapshot.Table("page_permissions") {
		if perm["page_id"] == pageID && perm["user_id"] == granteeID {
			return nil, domain.Haltf("Permission already granted to this user on this page")
		}
	}

	id := ctx.Mint("page_permissions")
	rec := store.Record{
		"permission_id":    id,
		"page_id":          pageID,
		"user_id":          granteeID,
		"permission_level": ctx.Str("permission_level"),
		"granted_by":       ctx.CallerID,
		"created_at":       ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Permission granted successfully",
		Writes:    []toolkit.Write{{Table: "page_permissions", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPagePermission,
			Action: audit.ActionGrant, NewValue: granteeID,
		}},
	}, nil
}

func revokePagePermission(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("permission_id")
	perm := ctx.Ref("permission_id")

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Permission revoked successfully",
		Deletes:   []toolkit.Delete{{Table: "page_permissions", ID: id}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefPagePermission,
			Action: audit.ActionRevoke, OldValue: perm["user_id"],
		}},
	}, nil
}
