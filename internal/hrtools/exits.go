package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewExitTool builds manage_employee_exits. An exit carries two machines:
// the composite clearance_status recomputed from manager clearance and
// equipment return, and finance_settlement_status which may only advance
// once the clearance is done.
func NewExitTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_employee_exits",
		Description:    "Tracks employee exits through clearance sign-offs and final settlement",
		PrimaryIDField: "exit_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_employee_exit",
				Description: "Open an exit record for a departing employee",
				Required:    []string{"employee_id", "exit_date", "user_id"},
				Optional:    []string{"exit_reason"},
				Fields: []toolkit.Field{
					{Name: "employee_id", Kind: toolkit.KindString},
					{Name: "exit_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Last working day"},
					{Name: "exit_reason", Kind: toolkit.KindString, Description: "Free-text reason for leaving"},
				},
				Refs: []toolkit.Reference{
					{Field: "employee_id", Table: "employees", Label: "Employee"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createExit,
			},
			{
				Tag:         "record_manager_clearance",
				Description: "Record the manager's clearance decision for an exit",
				Required:    []string{"exit_id", "decision", "user_id"},
				Fields: []toolkit.Field{
					{Name: "exit_id", Kind: toolkit.KindString},
					{Name: "decision", Kind: toolkit.KindEnum, Enum: clearanceDecisions, Description: "Manager clearance decision"},
				},
				Refs: []toolkit.Reference{
					{Field: "exit_id", Table: "employee_exits", Label: "Employee exit"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleDeptManager, roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "exit_id",
				Action:          clearanceAction("manager_clearance", "decision"),
			},
			{
				Tag:         "record_equipment_return",
				Description: "Record the IT equipment return outcome for an exit",
				Required:    []string{"exit_id", "return_status", "user_id"},
				Fields: []toolkit.Field{
					{Name: "exit_id", Kind: toolkit.KindString},
					{Name: "return_status", Kind: toolkit.KindEnum, Enum: equipmentReturnStates, Description: "Whether equipment was returned or none was issued"},
				},
				Refs: []toolkit.Reference{
					{Field: "exit_id", Table: "employee_exits", Label: "Employee exit"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleITAdmin},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "exit_id",
				Action:          clearanceAction("it_equipment_return", "return_status"),
			},
			{
				Tag:         "process_settlement",
				Description: "Calculate and approve the final settlement for a cleared exit",
				Required:    []string{"exit_id", "final_pay_amount", "leave_encashment_amount", "approved_by", "approval_date", "user_id"},
				Fields: []toolkit.Field{
					{Name: "exit_id", Kind: toolkit.KindString},
					{Name: "final_pay_amount", Kind: toolkit.KindNumber, NonNegative: true, Description: "Final pay owed to the employee"},
					{Name: "leave_encashment_amount", Kind: toolkit.KindNumber, NonNegative: true, Description: "Encashment for unused leave"},
					{Name: "approval_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Date the settlement was approved"},
				},
				Refs: []toolkit.Reference{
					{Field: "exit_id", Table: "employee_exits", Label: "Employee exit"},
					{Field: "approved_by", Table: "users", Label: "Approver"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleFinance},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "exit_id",
				Action:          processSettlement,
			},
			{
				Tag:         "complete_settlement",
				Description: "Mark an approved settlement paid or failed",
				Required:    []string{"exit_id", "decision", "user_id"},
				Fields: []toolkit.Field{
					{Name: "exit_id", Kind: toolkit.KindString},
					{Name: "decision", Kind: toolkit.KindEnum, Enum: settlementDecisions, Description: "Settlement outcome"},
				},
				Refs: []toolkit.Reference{
					{Field: "exit_id", Table: "employee_exits", Label: "Employee exit"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleFinance, rolePayrollAdmin},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "exit_id",
				Transition: &toolkit.TransitionRule{
					RefField: "exit_id", StatusField: "finance_settlement_status",
					Graph: validate.FinanceSettlementStatus, NextField: "decision",
				},
				Action: completeSettlement,
			},
		},
	}
}

func createExit(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("employee_exits")
	rec := store.Record{
		"exit_id":                   id,
		"employee_id":               ctx.Str("employee_id"),
		"exit_date":                 ctx.Str("exit_date"),
		"manager_clearance":         nil,
		"it_equipment_return":       nil,
		"clearance_status":          "pending",
		"finance_settlement_status": "draft",
		"created_by":                ctx.CallerID,
		"created_at":                ctx.Stamp(),
		"updated_at":                ctx.Stamp(),
	}
	if ctx.Has("exit_reason") {
		rec["exit_reason"] = ctx.Str("exit_reason")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Employee exit created successfully",
		Writes:    []toolkit.Write{{Table: "employee_exits", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefExit,
			Action: audit.ActionCreate, NewValue: ctx.Str("employee_id"),
		}},
	}, nil
}

// clearanceAction records one clearance input and recomputes the composite
// clearance_status from both of them.
func clearanceAction(field, valueField string) func(*toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	return func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
		id := ctx.Str("exit_id")
		exit := ctx.Ref("exit_id")
		if status, _ := exit["clearance_status"].(string); status != "pending" {
			return nil, domain.Haltf("Exit clearance is already %s", status)
		}

		old := exit[field]
		rec := ctx.Modified(exit, map[string]any{field: ctx.Str(valueField)})
		rec["clearance_status"] = clearanceStatus(rec)

		return &toolkit.Outcome{
			PrimaryID: id,
			Message:   "Clearance recorded",
			Writes:    []toolkit.Write{{Table: "employee_exits", ID: id, Record: rec}},
			Audit: []audit.Entry{{
				ReferenceID: id, ReferenceType: audit.RefExit,
				Action: audit.ActionUpdate, FieldName: field,
				OldValue: old, NewValue: ctx.Str(valueField),
			}},
		}, nil
	}
}

// clearanceStatus derives the composite value: cleared once the manager has
// approved and equipment is accounted for, rejected as soon as the manager
// rejects, pending otherwise.
func clearanceStatus(exit store.Record) string {
	manager, _ := exit["manager_clearance"].(string)
	equipment, _ := exit["it_equipment_return"].(string)
	switch {
	case manager == "rejected":
		return "rejected"
	case manager == "approved" && (equipment == "returned" || equipment == "not_applicable"):
		return "cleared"
	default:
		return "pending"
	}
}

// processSettlement drives finance_settlement_status from draft through
// calculated to approved in one step, storing the amounts alongside.
func processSettlement(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("exit_id")
	exit := ctx.Ref("exit_id")
	if status, _ := exit["clearance_status"].(string); status != "cleared" {
		return nil, domain.Haltf("Exit clearances are not completed")
	}
	if status, _ := exit["finance_settlement_status"].(string); status != "draft" {
		return nil, domain.Haltf("Invalid status transition from %s to approved", status)
	}

	rec := ctx.Modified(exit, map[string]any{
		"finance_settlement_status": "approved",
		"final_pay_amount":          ctx.Num("final_pay_amount"),
		"leave_encashment_amount":   ctx.Num("leave_encashment_amount"),
		"settlement_approved_by":    ctx.Str("approved_by"),
		"settlement_approval_date":  ctx.Str("approval_date"),
	})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Settlement processed and approved",
		Writes:    []toolkit.Write{{Table: "employee_exits", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefExit,
			Action: audit.ActionApprove, FieldName: "finance_settlement_status",
			OldValue: "draft", NewValue: "approved",
		}},
	}, nil
}

func completeSettlement(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("exit_id")
	exit := ctx.Ref("exit_id")
	old, _ := exit["finance_settlement_status"].(string)
	rec := ctx.Modified(exit, map[string]any{"finance_settlement_status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Settlement completed",
		Writes:    []toolkit.Write{{Table: "employee_exits", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefExit,
			Action: audit.ActionProcess, FieldName: "finance_settlement_status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}
