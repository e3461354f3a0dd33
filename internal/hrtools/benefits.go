package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewBenefitsTool builds manage_benefits: enrollments created inside the
// plan's enrollment window, then approved and activated.
func NewBenefitsTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_benefits",
		Description:    "Enrolls employees into benefit plans and advances enrollments to active",
		PrimaryIDField: "enrollment_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_benefit_enrollment",
				Description: "Enroll an employee into a benefit plan; the selection date must fall inside the plan's enrollment window",
				Required:    []string{"employee_id", "plan_id", "selection_date", "user_id"},
				Fields: []toolkit.Field{
					{Name: "employee_id", Kind: toolkit.KindString},
					{Name: "plan_id", Kind: toolkit.KindString},
					{Name: "selection_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Date the employee made the selection"},
				},
				Refs: []toolkit.Reference{
					{Field: "employee_id", Table: "employees", Label: "Employee"},
					{Field: "plan_id", Table: "benefit_plans", Label: "Benefit plan"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleBenefitsAdmin},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createEnrollment,
			},
			enrollmentEdge("approve_benefit_enrollment", "Approve a pending enrollment", "approved"),
			enrollmentEdge("activate_benefit_enrollment", "Activate an approved enrollment", "active"),
		},
	}
}

func enrollmentEdge(tag, description, next string) toolkit.Operation {
	return toolkit.Operation{
		Tag:         tag,
		Description: description,
		Required:    []string{"enrollment_id", "user_id"},
		Refs: []toolkit.Reference{
			{Field: "enrollment_id", Table: "benefit_enrollments", Label: "Benefit enrollment"},
		},
		Auth: authz.Rule{
			Roles:      []string{roleHRManager, roleBenefitsAdmin},
			AdminRoles: []string{roleHRDirector},
		},
		AuthTargetField: "enrollment_id",
		Transition: &toolkit.TransitionRule{
			RefField: "enrollment_id", StatusField: "status",
			Graph: validate.EnrollmentStatus, Next: next,
		},
		Action: func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
			id := ctx.Str("enrollment_id")
			enrollment := ctx.Ref("enrollment_id")
			old, _ := enrollment["status"].(string)
			rec := ctx.Modified(enrollment, map[string]any{"status": ctx.Next()})

			return &toolkit.Outcome{
				PrimaryID: id,
				Message:   "Enrollment status updated",
				Writes:    []toolkit.Write{{Table: "benefit_enrollments", ID: id, Record: rec}},
				Audit: []audit.Entry{{
					ReferenceID: id, ReferenceType: audit.RefEnrollment,
					Action: audit.ActionApprove, FieldName: "status",
					OldValue: old, NewValue: ctx.Next(),
				}},
			}, nil
		},
	}
}

func createEnrollment(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	plan := ctx.Ref("plan_id")
	selection := ctx.Str("selection_date")
	windowStart, _ := plan["enrollment_start"].(string)
	windowEnd, _ := plan["enrollment_end"].(string)
	if windowStart != "" && selection < windowStart || windowEnd != "" && selection > windowEnd {
		return nil, domain.Haltf("Selection date is outside the plan enrollment window")
	}

	id := ctx.Mint("benefit_enrollments")
	rec := store.Record{
		"enrollment_id":  id,
		"employee_id":    ctx.Str("employee_id"),
		"plan_id":        ctx.Str("plan_id"),
		"selection_date": selection,
		"status":         "pending",
		"created_by":     ctx.CallerID,
		"created_at":     ctx.Stamp(),
		"updated_at":     ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Benefit enrollment created successfully",
		Writes:    []toolkit.Write{{Table: "benefit_enrollments", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefEnrollment,
			Action: audit.ActionCreate, NewValue: ctx.Str("plan_id"),
		}},
	}, nil
}
