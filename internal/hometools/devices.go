package hometools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewDeviceTool builds manage_devices: registration under a unique MAC,
// state reporting and group assignment.
func NewDeviceTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_devices",
		Description:    "Registers smart-home devices and manages their state and group membership",
		PrimaryIDField: "device_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "register_device",
				Description: "Register a device with a unique MAC address",
				Required:    []string{"device_name", "device_type", "mac_address", "user_id"},
				Optional:    []string{"group_id"},
				Fields: []toolkit.Field{
					{Name: "device_name", Kind: toolkit.KindString, Description: "Display name"},
					{Name: "device_type", Kind: toolkit.KindEnum, Enum: deviceTypes},
					{Name: "mac_address", Kind: toolkit.KindPattern, Pattern: validate.PatternMAC, Hint: validate.HintMAC},
				},
				Refs: []toolkit.Reference{
					{Field: "group_id", Table: "groups", Label: "Group", Optional: true},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHomeAdmin},
					AdminRoles: []string{roleHomeOwner},
				},
				Uniques: []toolkit.UniqueRule{{
					Table: "devices", RecordField: "mac_address", PayloadField: "mac_address",
					Fold: true, Label: "Device with this MAC address",
				}},
				Action: registerDevice,
			},
			{
				Tag:         "update_device_state",
				Description: "Report a device state change",
				Required:    []string{"device_id", "new_state", "user_id"},
				Fields: []toolkit.Field{
					{Name: "device_id", Kind: toolkit.KindString},
					{Name: "new_state", Kind: toolkit.KindEnum, Enum: deviceStates, Description: "Reported state"},
				},
				Refs: []toolkit.Reference{
					{Field: "device_id", Table: "devices", Label: "Device"},
				},
				Auth: authz.Rule{
					Roles:           []string{roleHomeAdmin},
					DirectPermField: fieldAuthorizedDevices,
					GroupPermField:  fieldAuthorizedGroups,
					AdminRoles:      []string{roleHomeOwner},
				},
				AuthTargetField: "device_id",
				Transition: &toolkit.TransitionRule{
					RefField: "device_id", StatusField: "state",
					Graph: validate.DeviceState, NextField: "new_state",
				},
				Action: updateDeviceState,
			},
			{
				Tag:         "assign_device_to_group",
				Description: "Move a device into a group",
				Required:    []string{"device_id", "group_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "device_id", Table: "devices", Label: "Device"},
					{Field: "group_id", Table: "groups", Label: "Group"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHomeAdmin},
					AdminRoles: []string{roleHomeOwner},
				},
				AuthTargetField: "device_id",
				Action:          assignDeviceToGroup,
			},
		},
	}
}

func registerDevice(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("devices")
	rec := store.Record{
		"device_id":   id,
		"device_name": ctx.Str("device_name"),
		"device_type": ctx.Str("device_type"),
		"mac_address": ctx.Str("mac_address"),
		"state":       "offline",
		"created_by":  ctx.CallerID,
		"created_at":  ctx.Stamp(),
		"updated_at":  ctx.Stamp(),
	}
	if ctx.Has("group_id") {
		rec["group_id"] = ctx.Str("group_id")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Device registered successfully",
		Writes:    []toolkit.Write{{Table: "devices", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDevice,
			Action: audit.ActionCreate, NewValue: ctx.Str("mac_address"),
		}},
	}, nil
}

func updateDeviceState(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("device_id")
	device := ctx.Ref("device_id")
	old, _ := device["state"].(string)
	rec := ctx.Modified(device, map[string]any{"state": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Device state updated",
		Writes:    []toolkit.Write{{Table: "devices", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDevice,
			Action: audit.ActionUpdate, FieldName: "state",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}

func assignDeviceToGroup(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("device_id")
	device := ctx.Ref("device_id")
	old := device["group_id"]
	rec := ctx.Modified(device, map[string]any{"group_id": ctx.Str("group_id")})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Device assigned to group",
		Writes:    []toolkit.Write{{Table: "devices", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDevice,
			Action: audit.ActionUpdate, FieldName: "group_id",
			OldValue: old, NewValue: ctx.Str("group_id"),
		}},
	}, nil
}
