package hrtools

import (
	"path"
	"strings"

	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/toolkit"
	"agentbench/internal/validate"
)

// NewDocumentTool builds administer_document_operations: upload, lifecycle
// status changes, and verification of HR documents.
func NewDocumentTool() *toolkit.Tool {
	return &toolkit.Tool{
		Name:           "administer_document_operations",
		Description:    "Uploads HR documents and manages their lifecycle and verification status",
		PrimaryIDField: "document_id",
		Operations: []toolkit.Operation{
			{
				Tag:         "upload_document",
				Description: "Upload a new document tied to a candidate, employee, requisition or offer",
				Required:    []string{"document_category", "related_entity_type", "related_entity_id", "file_name", "uploaded_by"},
				Optional:    []string{"expiry_date"},
				CallerField: "uploaded_by",
				Fields: []toolkit.Field{
					{Name: "document_category", Kind: toolkit.KindEnum, Enum: documentCategories, Description: "Category of the document"},
					{Name: "related_entity_type", Kind: toolkit.KindEnum, Enum: relatedEntityTypes, Description: "Kind of entity the document belongs to"},
					{Name: "related_entity_id", Kind: toolkit.KindString, Description: "ID of the related entity"},
					{Name: "file_name", Kind: toolkit.KindString, Description: "File name including extension"},
					{Name: "expiry_date", Kind: toolkit.KindDate, AllowFuture: true, Description: "Expiry date of the document"},
					{Name: "uploaded_by", Kind: toolkit.KindString, Description: "User ID of the uploader"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleHRManager, roleRecruiter, roleCompliance},
					AdminRoles: []string{roleHRDirector},
				},
				Uniques: []toolkit.UniqueRule{{
					Table: "documents", RecordField: "file_name", PayloadField: "file_name",
					Fold: true, Label: "Document with this file name",
				}},
				Action: uploadDocument,
			},
			{
				Tag:         "update_document_status",
				Description: "Archive, expire or reactivate a document",
				Required:    []string{"document_id", "new_status", "user_id"},
				Fields: []toolkit.Field{
					{Name: "document_id", Kind: toolkit.KindString},
					{Name: "new_status", Kind: toolkit.KindEnum, Enum: documentStatuses, Description: "Target lifecycle status"},
				},
				Refs: []toolkit.Reference{
					{Field: "document_id", Table: "documents", Label: "Document"},
				},
				Auth: authz.Rule{
					Roles:       []string{roleHRManager, roleCompliance},
					OwnerFields: []string{"uploaded_by"},
					AdminRoles:  []string{roleHRDirector},
				},
				AuthTargetField: "document_id",
				Transition: &toolkit.TransitionRule{
					RefField: "document_id", StatusField: "document_status",
					Graph: validate.DocumentStatus, NextField: "new_status",
				},
				Action: updateDocumentStatus,
			},
			{
				Tag:         "verify_document",
				Description: "Record the verification outcome of a pending document",
				Required:    []string{"document_id", "verification_result", "user_id"},
				Fields: []toolkit.Field{
					{Name: "document_id", Kind: toolkit.KindString},
					{Name: "verification_result", Kind: toolkit.KindEnum, Enum: verificationResults, Description: "Outcome of the verification"},
				},
				Refs: []toolkit.Reference{
					{Field: "document_id", Table: "documents", Label: "Document"},
				},
				Auth: authz.Rule{
					Roles:      []string{roleCompliance, roleHRManager},
					AdminRoles: []string{roleHRDirector},
				},
				AuthTargetField: "document_id",
				Transition: &toolkit.TransitionRule{
					RefField: "document_id", StatusField: "verification_status",
					Graph: validate.VerificationStatus, NextField: "verification_result",
				},
				Action: verifyDocument,
			},
		},
	}
}

func uploadDocument(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	fileName := ctx.Str("file_name")
	format := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
	if !fileFormats[format] {
		return nil, domain.Invalidf("Invalid file_name: unsupported or missing file extension")
	}

	id := ctx.Mint("documents")
	rec := store.Record{
		"document_id":         id,
		"document_category":   ctx.Str("document_category"),
		"related_entity_type": ctx.Str("related_entity_type"),
		"related_entity_id":   ctx.Str("related_entity_id"),
		"file_name":           fileName,
		"file_format":         format,
		"document_status":     "active",
		"uploaded_by":         ctx.CallerID,
		"created_at":          ctx.Stamp(),
		"updated_at":          ctx.Stamp(),
	}
	if verificationCategories[ctx.Str("document_category")] {
		rec["verification_status"] = "pending"
	} else {
		rec["verification_status"] = nil
	}
	if ctx.Has("expiry_date") {
		rec["expiry_date"] = ctx.Str("expiry_date")
	}

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Document uploaded successfully",
		Writes:    []toolkit.Write{{Table: "documents", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDocument,
			Action: audit.ActionCreate, NewValue: fileName,
		}},
	}, nil
}

func updateDocumentStatus(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("document_id")
	doc := ctx.Ref("document_id")
	old, _ := doc["document_status"].(string)
	rec := ctx.Modified(doc, map[string]any{"document_status": ctx.Next()})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Document status updated successfully",
		Writes:    []toolkit.Write{{Table: "documents", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDocument,
			Action: audit.ActionUpdate, FieldName: "document_status",
			OldValue: old, NewValue: ctx.Next(),
		}},
	}, nil
}

func verifyDocument(ctx *toolkit.Context) (*toolkit.Outcome, *domain.Failure) {
	id := ctx.Str("document_id")
	doc := ctx.Ref("document_id")
	rec := ctx.Modified(doc, map[string]any{
		"verification_status": ctx.Next(),
		"verified_by":         ctx.CallerID,
		"verified_at":         ctx.Stamp(),
	})

	return &toolkit.Outcome{
		PrimaryID: id,
		Message:   "Document verification recorded",
		Writes:    []toolkit.Write{{Table: "documents", ID: id, Record: rec}},
		Audit: []audit.Entry{{
			ReferenceID: id, ReferenceType: audit.RefDocument,
			Action: audit.ActionUpdate, FieldName: "verification_status",
			OldValue: "pending", NewValue: ctx.Next(),
		}},
	}, nil
}
