package hometools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewAnnouncementTool builds dispatch_announcements.
func NewAnnouncementTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "dispatch_announcements",
		Description:    "Creates hub announcements and records their delivery outcomes",
		PrimaryIDField: "announcement_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_announcement",
				Description: "Queue an announcement for the hub's speakers",
				Required:    []string{"announcement_type", "message", "user_id"},
				Optional:    []string{"target_device_id"},
				Fields: []toolkit.Field{
					{Name: "announcement_type", Kind: toolkit.KindEnum, Enum: announcementTypes},
					{Name: "message", Kind: toolkit.KindString, Description: "Announcement body"},
					{Name: "target_device_id", Kind: toolkit.KindString, Description: "Speaker for targeted announcements"},
				},
				Refs: []toolkit.Reference{
					{Field: "target_device_id", Table: "devices", Label: "Device", Optional: true},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHomeAdmin, roleMember},
					AdminRoles: []string{roleHomeOwner},
				},
				Action: createAnnouncement,
			},
			{
				Tag:         "update_announcement_status",
				Description: "Record the delivery outcome of a pending announcement",
				Required:    []string{"announcement_id", "new_status", "user_id"},
				Fields: []toolkit.Field{
					{Name: "announcement_id", Kind: toolkit.KindString},
					{Name: "new_status", Kind: toolkit.KindEnum, Enum: announcementOutcomes, Description: "Delivery outcome"},
				},
				Refs: []toolkit.Reference{
					{Field: "announcement_id", Table: "announcements", Label: "Announcement"},
				},
				AuthTargetField: "announcement_id",
				Transition: &toolkit.TransitionRule{
					RefField: "announcement_id", StatusField: "status",
					Graph: validate.AnnouncementStatus, NextField: "new_status",
				},
				Action: updateAnnouncement,
			},
		},
	}
}

func createAnnouncement(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	kind := ctx.Str("announcement_type")
	if kind == "targeted" && !ctx.Has("target_device_id") {
		return nil, domain.Haltf("Targeted announcements require target_device_id")
	}

	id := ctx.Mint("announcements")
	rec := store.Record{
		"announcement_id":   id,
		"announcement_type": kind,
		"message":           ctx.Str("message"),
		"status":            "pending",
		"created_by":        ctx.CallerID,
		"created_at":        ctx.Stamp(),
		"updated_at":        ctx.Stamp(),
	}
	if ctx.Has("target_device_id") {
		rec["target_device_id"] = ctx.Str("target_device_id")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Announcement created successfully",
		Writes:    []toolkit.Write{{Table: "announcements", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefAnnouncement,
			Action: audit.ActionCreate, NewValue: kind,
		}},
	}, nil
}

func updateAnnouncement(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("announcement_id")
	ann := ctx.Ref("announcement_id")
	old, _ := ann["status"].(string)
	rec := ctx.Modified(ann, map[string]any{"status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Announcement status updated",
		Writes:    []toolkit.Write{{Table: "announcements", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefAnnouncement,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}
