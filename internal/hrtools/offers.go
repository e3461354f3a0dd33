package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewOfferTool builds manage_offers: draft → compliance_verified →
// approved_for_issue → issued → accepted/declined.
func NewOfferTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "manage_offers",
		Description:    "Creates offers for selected candidates and drives them through compliance, approval, issue and decision",
		PrimaryIDField: "offer_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_offer",
				Description: "Draft an offer for a selected application",
				Required:    []string{"application_id", "candidate_id", "base_salary", "user_id"},
				Optional:    []string{"start_date"},
				Fields: []toolkit.Field{
					{Name: "application_id", Kind: toolkit.KindString},
					{Name: "candidate_id", Kind: toolkit.KindString},
					{Name: "base_salary", Kind: toolkit.KindNumber, Positive: true, Description: "Annual base salary"},
					{Name: "start_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Proposed start date"},
				},
				Refs: []toolkit.Reference{
					{Field: "application_id", Table: "applications", Label: "Application"},
					{Field: "candidate_id", Table: "candidates", Label: "Candidate"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createOffer,
			},
			offerEdge("verify_offer_compliance", "Mark an offer as compliance verified", "compliance_verified",
				authz.Rule{Roles: []string{roleCompliance}, AdminRoles: []string{roleHRDirector}}),
			offerEdge("approve_offer", "Approve a compliance-verified offer for issue", "approved_for_issue",
				authz.Rule{Roles: []string{roleHRManager}, AdminRoles: []string{roleHRDirector}}),
			offerEdge("issue_offer", "Issue an approved offer to the candidate", "issued",
				authz.Rule{Roles: []string{roleHRManager, roleRecruiter}, AdminRoles: []string{roleHRDirector}}),
			{
				Tag:         "record_offer_decision",
				Description: "Record the candidate's decision on an issued offer",
				Required:    []string{"offer_id", "decision", "user_id"},
				Fields: []toolkit.Field{
					{Name: "offer_id", Kind: toolkit.KindString},
					{Name: "decision", Kind: toolkit.KindEnum, Enum: offerDecisions, Description: "Candidate decision"},
				},
				Refs: []toolkit.Reference{
					{Field: "offer_id", Table: "offers", Label: "Offer"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "offer_id",
				Transition: &toolkit.TransitionRule{
					RefField: "offer_id", StatusField: "status",
					Graph: validate.OfferStatus, NextField: "decision",
				},
				Action: recordOfferDecision,
			},
		},
	}
}

// offerEdge declares one fixed status advance on an offer.
func offerEdge(tag, description, next string, rule authz.Rule) toolkit.Operation {
	return toolkit.Operation{
		Tag:         tag,
		Description: description,
		Required:    []string{"offer_id", "user_id"},
		Refs: []toolkit.Reference{
			{Field: "offer_id", Table: "offers", Label: "Offer"},
		},
		Auth:            rule,
		AuthTargetField: "offer_id",
		Transition: &toolkit.TransitionRule{
			RefField: "offer_id", StatusField: "status",
			Graph: validate.OfferStatus, Next: next,
		},
		Action: func(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
			id := ctx.Str("offer_id")
			offer := ctx.Ref("offer_id")
			old, _ := offer["status"].(string)
			changes := map[string]any{"status": ctx.Next()}
			if ctx.Next() == "issued" {
				changes["issued_date"] = ctx.Clock.Today()
			}
			rec := ctx.Modified(offer, changes)

			return &toolkit.Outcome{
				PrimaryID: id,
				Message:   "Offer status updated",
				Writes:    []toolkit.Write{{Table: "offers", ID: id, Record: rec}},
				Audit: []audit.Entry{{
					ReferenceID: id, ReferenceType: audit.RefOffer,
					Action: audit.ActionUpdate, FieldName: "status",
					OldValue: old, NewValue: ctx.Next(),
				}},
			}, nil
		},
	}
}

func createOffer(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	app := ctx.Ref("application_id")
	if status, _ := app["status"].(string); status != "selected" {
		return nil, domain.Haltf("Application is not in selected status")
	}

	id := ctx.Mint("offers")
	rec := store.Record{
		"offer_id":       id,
		"application_id": ctx.Str("application_id"),
		"candidate_id":   ctx.Str("candidate_id"),
		"base_salary":    ctx.Num("base_salary"),
		"status":         "draft",
		"created_by":     ctx.CallerID,
		"created_at":     ctx.Stamp(),
		"updated_at":     ctx.Stamp(),
	}
	if ctx.Has("start_date") {
		rec["start_date"] = ctx.Str("start_date")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Offer created successfully",
		Writes:    []toolkit.Write{{Table: "offers", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefOffer,
			Action: audit.ActionCreate, NewValue: ctx.Str("candidate_id"),
		}},
	}, nil
}

func recordOfferDecision(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("offer_id")
	offer := ctx.Ref("offer_id")
	rec := ctx.Modified(offer, map[string]any{
		"status":        ctx.Next(),
		"decision_date": ctx.Clock.Today(),
	})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Offer decision recorded",
		Writes:    []toolkit.Write{{Table: "offers", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefOffer,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: "issued", NewValue: ctx.Next(),
		}},
	}, nil
}
