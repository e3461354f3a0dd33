package hometools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// NewHomePermissionTool builds manage_home_permissions over the
// user_device_permissions table. Like wiki page permissions, revocation
// deletes the detached row outright.
func NewHomePermissionTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_home_permissions",
		Description:    "Grants and revokes per-user device access",
		PrimaryIDField: "permission_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "grant_device_access",
				Description: "Grant a user an access level on a device",
				Required:    []string{"device_id", "grantee_id", "permission_level", "user_id"},
				Fields: []toolkit.Field{
					{Name: "device_id", Kind: toolkit.KindString},
					{Name: "grantee_id", Kind: toolkit.KindString, Description: "User receiving access"},
					{Name: "permission_level", Kind: toolkit.KindEnum, Enum: devicePermissionLevels},
				},
				Refs: []toolkit.Reference{
					{Field: "device_id", Table: "devices", Label: "Device"},
					{Field: "grantee_id", Table: "users", Label: "Grantee"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHomeAdmin},
					AdminRoles: []string{roleHomeOwner},
				},
				AuthTargetField: "device_id",
				Action:          grantDeviceAccess,
			},
			{
				Tag:         "revoke_device_access",
				Description: "Revoke a granted device access, removing the row",
				Required:    []string{"permission_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "permission_id", Table: "user_device_permissions", Label: "Permission"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleHomeAdmin},
					OwnerFields: []string{"granted_by"},
					AdminRoles:  []string{roleHomeOwner},
				},
				AuthTargetField: "permission_id",
				Action:          revokeDeviceAccess,
			},
		},
	}
}

func grantDeviceAccess(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	deviceID := ctx.Str("device_id")
	granteeID := ctx.Str("grantee_id")
	for _, perm := range ctx.Snapshot.Table("user_device_permissions") {
		if perm["device_id"] == deviceID && perm["user_id"] == granteeID {
			return nil, domain.Haltf("Permission already granted to this user on this device")
		}
	}

	id := ctx.Mint("user_device_permissions")
	rec := store.Record{
		"permission_id":    id,
		"device_id":        deviceID,
		"user_id":          granteeID,
		"permission_level": ctx.Str("permission_level"),
		"granted_by":       ctx.CallerID,
		"created_at":       ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Device access granted successfully",
		Writes:    []toolkit.Write{{Table: "user_device_permissions", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDevicePermission,
			Action: audit.ActionGrant, NewValue: granteeID,
		}},
	}, nil
}

func revokeDeviceAccess(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("permission_id")
	perm := ctx.Ref("permission_id")

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Device access revoked successfully",
		Deletes:   []toolkit.Delete{{Table: "user_device_permissions", ID: id}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDevicePermission,
			Action: audit.ActionRevoke, OldValue: perm["user_id"],
		}},
	}, nil
}
