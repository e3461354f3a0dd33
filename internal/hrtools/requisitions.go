package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// approverSlots maps an approving caller's role to the requisition slot it
// fills. All three slots must be filled before the requisition leaves
// pending_approval.
var approverSlots = map[string]string{
	roleHRManager:   "hr_manager_approver",
	roleFinance:     "finance_manager_approver",
	roleDeptManager: "dept_head_approver",
}

var approverDateFields = map[string]string{
	"hr_manager_approver":      "hr_manager_approval_date",
	"finance_manager_approver": "finance_manager_approval_date",
	"dept_head_approver":       "dept_head_approval_date",
}

// NewRequisitionTool builds manage_requisitions: the draft → pending_approval
// → approved → posted → closed flow with a three-slot approval gate.
func NewRequisitionTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_requisitions",
		Description:    "Creates job requisitions and drives them through approval, posting and closure",
		PrimaryIDField: "requisition_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_requisition",
				Description: "Create a draft requisition",
				Required:    []string{"job_title", "department_id", "hiring_manager_id", "employment_type", "user_id"},
				Optional:    []string{"budget", "location_id"},
				Fields: []toolkit.Field{
					{Name: "job_title", Kind: toolkit.KindString, Description: "Title of the position"},
					{Name: "employment_type", Kind: toolkit.KindEnum, Enum: employmentTypes},
					{Name: "budget", Kind: toolkit.KindNumber, Positive: true, Description: "Annual budget for the position"},
				},
				Refs: []toolkit.Reference{
					{Field: "department_id", Table: "departments", Label: "Department"},
					{Field: "hiring_manager_id", Table: "users", Label: "Hiring manager"},
					{Field: "location_id", Table: "locations", Label: "Location", Optional: true},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter, roleDeptManager},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createRequisition,
			},
			{
				Tag:         "submit_requisition",
				Description: "Submit a draft requisition for approval",
				Required:    []string{"requisition_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleHRManager, roleRecruiter},
					OwnerFields: []string{"created_by", "hiring_manager_id"},
					AdminRoles:  []string{roleHRDirector},
				},
				AuthTargetField: "requisition_id",
				Transition: &toolkit.TransitionRule{
					RefField: "requisition_id", StatusField: "status",
					Graph: validate.RequisitionStatus, Next: "pending_approval",
				},
				Action: advanceRequisition("Requisition submitted for approval"),
			},
			{
				Tag:         "approve_requisition",
				Description: "Record one role's approval; the requisition is approved once HR, Finance and the department head have all signed off",
				Required:    []string{"requisition_id", "user_id", "approval_date"},
				Fields: []toolkit.Field{
					{Name: "requisition_id", Kind: toolkit.KindString},
					{Name: "approval_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Date of the approval"},
				},
				Refs: []toolkit.Reference{
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles: []string{roleHRManager, roleFinance, roleDeptManager},
				},
				AuthTargetField: "requisition_id",
				Action:          approveRequisition,
			},
			{
				Tag:         "post_requisition",
				Description: "Publish an approved requisition",
				Required:    []string{"requisition_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "requisition_id",
				Transition: &toolkit.TransitionRule{
					RefField: "requisition_id", StatusField: "status",
					Graph: validate.RequisitionStatus, Next: "posted",
				},
				Action: advanceRequisition("Requisition posted"),
			},
			{
				Tag:         "close_requisition",
				Description: "Close a posted requisition",
				Required:    []string{"requisition_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "requisition_id",
				Transition: &toolkit.TransitionRule{
					RefField: "requisition_id", StatusField: "status",
					Graph: validate.RequisitionStatus, Next: "closed",
				},
				Action: advanceRequisition("Requisition closed"),
			},
			{
				Tag:         "cancel_requisition",
				Description: "Cancel an approved requisition",
				Required:    []string{"requisition_id", "user_id"},
				Optional:    []string{"reason"},
				Refs: []toolkit.Reference{
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "requisition_id",
				Transition: &toolkit.TransitionRule{
					RefField: "requisition_id", StatusField: "status",
					Graph: validate.RequisitionStatus, Next: "cancelled",
				},
				Action: advanceRequisition("Requisition cancelled"),
			},
		},
	}
}

func createRequisition(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("job_requisitions")
	rec := store.Record{
		"requisition_id":           id,
		"job_title":                ctx.Str("job_title"),
		"department_id":            ctx.Str("department_id"),
		"hiring_manager_id":        ctx.Str("hiring_manager_id"),
		"employment_type":          ctx.Str("employment_type"),
		"status":                   "draft",
		"hr_manager_approver":      nil,
		"finance_manager_approver": nil,
		"dept_head_approver":       nil,
		"created_by":               ctx.CallerID,
		"created_at":               ctx.Stamp(),
		"updated_at":               ctx.Stamp(),
	}
	if ctx.Has("budget") {
		rec["budget"] = ctx.Num("budget")
	}
	if ctx.Has("location_id") {
		rec["location_id"] = ctx.Str("location_id")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Requisition created successfully",
		Writes:    []toolkit.Write{{Table: "job_requisitions", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefRequisition,
			Action: audit.ActionCreate, NewValue: ctx.Str("job_title"),
		}},
	}, nil
}

// advanceRequisition covers the plain status edges; the pipeline has already
// checked the transition, so the action only stamps and records the delta.
func advanceRequisition(message string) func(*toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	return func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
		id := ctx.Str("requisition_id")
		req := ctx.Ref("requisition_id")
		old, _ := req["status"].(string)
		rec := ctx.Modified(req, map[string]any{"status": ctx.Next()})

		return &toolkit.Outcome{
			PrimaryID: id,
			Message:   message,
			Writes:    []toolkit.Write{{Table: "job_requisitions", ID: id, Record: rec}},
			Audit: []audit.Entry{{
				ReferenceID: id, ReferenceType: audit.RefRequisition,
				Action: audit.ActionUpdate, FieldName: "status",
				OldValue: old, NewValue: ctx.Next(),
			}},
		}, nil
	}
}

func approveRequisition(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("requisition_id")
	req := ctx.Ref("requisition_id")
	status, _ := req["status"].(string)
	if status != "pending_approval" {
		return nil, domain.Haltf("Invalid status transition from %s to approved", status)
	}

	role := authz.Role(ctx.Caller)
	slot := approverSlots[role]
	if existing, ok := req[slot].(string); ok && existing != "" {
		return nil, domain.Haltf("Requisition already approved by a %s", role)
	}

	changes := map[string]any{
		slot:                     ctx.CallerID,
		approverDateFields[slot]: ctx.Str("approval_date"),
	}
	rec := ctx.Modified(req, changes)

	message := "Approval recorded; awaiting remaining approvers"
	if slotsFilled(rec) {
		rec["status"] = "approved"
		message = "Requisition fully approved"
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   message,
		Writes:    []toolkit.Write{{Table: "job_requisitions", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefRequisition,
			Action: audit.ActionApprove, FieldName: slot,
			OldValue: nil, NewValue: ctx.CallerID,
		}},
	}, nil
}

func slotsFilled(req store.Record) bool {
	for _, slot := range approverSlots {
		if v, ok := req[slot].(string); !ok || v == "" {
			return false
		}
	}
	return true
}
