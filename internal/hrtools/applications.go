package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewApplicationTool builds process_applications: intake and the linear
// stage progression from applied through onboarding.
func NewApplicationTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "process_applications",
		Description:    "Registers candidate applications and advances them through the hiring pipeline",
		PrimaryIDField: "application_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_application",
				Description: "Register a candidate's application against a posted requisition",
				Required:    []string{"candidate_id", "requisition_id", "user_id"},
				Refs: []toolkit.Reference{
					{Field: "candidate_id", Table: "candidates", Label: "Candidate"},
					{Field: "requisition_id", Table: "job_requisitions", Label: "Requisition"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleRecruiter, roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createApplication,
			},
			{
				Tag:         "advance_application_stage",
				Description: "Move an application to the next stage of the pipeline",
				Required:    []string{"application_id", "new_stage", "user_id"},
				Fields: []toolkit.Field{
					{Name: "application_id", Kind: toolkit.KindString},
					{Name: "new_stage", Kind: toolkit.KindEnum, Enum: applicationStages, Description: "Target stage"},
				},
				Refs: []toolkit.Reference{
					{Field: "application_id", Table: "applications", Label: "Application"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleRecruiter, roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "application_id",
				Transition: &toolkit.TransitionRule{
					RefField: "application_id", StatusField: "status",
					Graph: validate.ApplicationStage, NextField: "new_stage",
				},
				Action: advanceApplication,
			},
		},
	}
}

func createApplication(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	req := ctx.Ref("requisition_id")
	if status, _ := req["status"].(string); status != "posted" {
		return nil, domain.Haltf("Requisition is not open for applications")
	}

	id := ctx.Mint("applications")
	rec := store.Record{
		"application_id": id,
		"candidate_id":   ctx.Str("candidate_id"),
		"requisition_id": ctx.Str("requisition_id"),
		"status":         "applied",
		"applied_date":   ctx.Clock.Today(),
		"created_at":     ctx.Stamp(),
		"updated_at":     ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Application created successfully",
		Writes:    []toolkit.Write{{Table: "applications", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefApplication,
			Action: audit.ActionCreate, NewValue: ctx.Str("candidate_id"),
		}},
	}, nil
}

func advanceApplication(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("application_id")
	app := ctx.Ref("application_id")
	old, _ := app["status"].(string)
	rec := ctx.Modified(app, map[string]any{"status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Application stage updated",
		Writes:    []toolkit.Write{{Table: "applications", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefApplication,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}
