package hrtools

import (
	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewNotificationTool builds dispatch_notifications: pending rows and their
// delivery outcome.
func NewNotificationTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "dispatch_notifications",
		Description:    "Creates outbound notifications and records their delivery outcomes",
		PrimaryIDField: "notification_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "create_notification",
				Description: "Queue a notification for a recipient",
				Required:    []string{"recipient_id", "notification_type", "message", "user_id"},
				Fields: []toolkit.Field{
					{Name: "recipient_id", Kind: toolkit.KindString},
					{Name: "notification_type", Kind: toolkit.KindEnum, Enum: notificationTypes},
					{Name: "message", Kind: toolkit.KindString, Description: "Notification body"},
				},
				Refs: []toolkit.Reference{
					{Field: "recipient_id", Table: "users", Label: "Recipient"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, rolePayrollAdmin, roleBenefitsAdmin},
					AdminRoles: []string{roleHRDirector},
				},
				Action: createNotification,
			},
			{
				Tag:         "update_notification_status",
				Description: "Record the delivery outcome of a pending notification",
				Required:    []string{"notification_id", "new_status", "user_id"},
				Fields: []toolkit.Field{
					{Name: "notification_id", Kind: toolkit.KindString},
					{Name: "new_status", Kind: toolkit.KindEnum, Enum: notificationStatuses, Description: "Delivery outcome"},
				},
				Refs: []toolkit.Reference{
					{Field: "notification_id", Table: "notifications", Label: "Notification"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleHRManager, roleITAdmin},
					OwnerFields: []string{"created_by"},
					AdminRoles:  []string{roleHRDirector},
				},
				AuthTargetField: "notification_id",
				Transition: &toolkit.TransitionRule{
					RefField: "notification_id", StatusField: "status",
					Graph: validate.NotificationStatus, NextField: "new_status",
				},
				Action: updateNotification,
			},
		},
	}
}

func createNotification(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Mint("notifications")
	rec := store.Record{
		"notification_id":   id,
		"recipient_id":      ctx.Str("recipient_id"),
		"notification_type": ctx.Str("notification_type"),
		"message":           ctx.Str("message"),
		"status":            "pending",
		"created_by":        ctx.CallerID,
		"created_at":        ctx.Stamp(),
		"updated_at":        ctx.Stamp(),
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Notification created successfully",
		Writes:    []toolkit.Write{{Table: "notifications", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefNotification,
			Action: audit.ActionCreate, NewValue: ctx.Str("recipient_id"),
		}},
	}, nil
}

func updateNotification(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("notification_id")
	notif := ctx.Ref("notification_id")
	old, _ := notif["status"].(string)
	rec := ctx.Modified(notif, map[string]any{"status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Notification status updated",
		Writes:    []toolkit.Write{{Table: "notifications", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefNotification,
			Action: audit.ActionUpdate, FieldName: "status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}
