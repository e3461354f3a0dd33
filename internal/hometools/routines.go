package hometools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewRoutineTool builds manage_routines: scheduled automations whose
// schedule must parse as a standard 5-field cron expression.
func NewRoutineTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_routines",
		Description:    "Creates cron-scheduled routines, toggles them and attaches device actions",
		PrimaryIDField: "routine_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_routine",
				Description: "Create a disabled routine on a cron schedule",
				Required:    []string{"routine_name", "schedule", "user_id"},
				Fields: []toolkit.Field{
					{Name: "routine_name", Kind: toolkit.KindString, Description: "Display name"},
					{Name: "schedule", Kind: toolkit.KindCron, Description: "Standard 5-field cron expression"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHomeAdmin, roleMember},
					AdminRoles: []string{roleHomeOwner},
				},
				Action: createRoutine,
			},
			{
				Tag:         "set_routine_enabled",
				Description: "Enable or disable a routine",
				Required:    []string{"routine_id", "enabled", "user_id"},
				Fields: []toolkit.Field{
					{Name: "routine_id", Kind: toolkit.KindString},
					{Name: "enabled", Kind: toolkit.KindBool, Description: "Target state"},
				},
				Refs: []toolkit.Reference{
					{Field: "routine_id", Table: "routines", Label: "Routine"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleHomeAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleHomeOwner},
				},
				AuthTargetField: "routine_id",
				Action:          setRoutineEnabled,
			},
			{
				Tag:         "add_routine_action",
				Description: "Attach a device action to a routine; the caller needs access to the device",
				Required:    []string{"routine_id", "device_id", "command", "user_id"},
				Fields: []toolkit.Field{
					{Name: "routine_id", Kind: toolkit.KindString},
					{Name: "device_id", Kind: toolkit.KindString},
					{Name: "command", Kind: toolkit.KindString, Description: "Command sent to the device"},
				},
				Refs: []toolkit.Reference{
					{Field: "routine_id", Table: "routines", Label: "Routine"},
					{Field: "device_id", Table: "devices", Label: "Device"},
				},
				Auth: authz.Rule{
					Roles:           []string{roleHomeAdmin},
					DirectPermField: fieldAuthorizedDevices,
					GroupPermField:  fieldAuthorizedGroups,
					AdminRoles:      []string{roleHomeOwner},
				},
				AuthTargetField: "device_id",
				Action:          addRoutineAction,
			},
		},
	}
}

func createRoutine(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("routines")
	rec := store.Record{
		"routine_id":   id,
		"routine_name": ctx.Str("routine_name"),
		"schedule":     ctx.Str("schedule"),
		"status":       "disabled",
		"created_by":   ctx.CallerID,
		"created_at":   ctx.Stamp(),
		"updated_at":   ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Routine created successfully",
		Writes:    []toolkit.Write{{Table: "routines", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefRoutine,
			Action: audit.ActionCreate, NewValue: ctx.Str("routine_name"),
		}},
	}, nil
}

// setRoutineEnabled maps the boolean payload onto the disabled/enabled
// machine; enabling an enabled routine is an invalid transition like any
// other no-op edge.
func setRoutineEnabled(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("routine_id")
	routine := ctx.Ref("routine_id")
	current, _ := routine["status"].(string)
	target := "disabled"
	if ctx.Bool("enabled") {
		target = "enabled"
	}
	if fail := validate.Transition(current, target, validate.RoutineState); fail != nil {
		return nil, fail
	}
	rec := ctx.Modified(routine, map[string]any{"status": target})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Routine status updated",
		Writes:    []toolkit.Write{{Table: "routines", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefRoutine,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: current, NewValue: target,
		}},
	}, nil
}

func addRoutineAction(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("routine_device_actions")
	rec := store.Record{
		"action_id":  id,
		"routine_id": ctx.Str("routine_id"),
		"device_id":  ctx.Str("device_id"),
		"command":    ctx.Str("command"),
		"created_by": ctx.CallerID,
		"created_at": ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: ctx.Str("routine_id"),
		Message:   "Routine action added",
		Extra:     map[string]any{"action_id": id},
		Writes:    []toolkit.Write{{Table: "routine_device_actions", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefRoutineAction,
			Action: audit.ActionCreate, NewValue: ctx.Str("device_id"),
		}},
	}, nil
}
