package hrtools

import (
	"strings"
	"testing"

	"agentbench/internal/audit"
	"agentbench/internal/store"
)

func TestUploadDocument_ShouldMintAt9001AndEnterVerification(t *testing.T) {
	snap := hrSnap()

	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type":      "upload_document",
		"document_category":   "id_proof",
		"related_entity_type": "candidate",
		"related_entity_id":   "42",
		"file_name":           "offer_alice.pdf",
		"uploaded_by":         "1",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	if out["document_id"] != "9001" {
		t.Errorf("expected first document ID 9001, got %v", out["document_id"])
	}
	rec, ok := snap.Lookup("documents", "9001")
	if !ok {
		t.Fatal("expected document committed")
	}
	if rec["file_format"] != "pdf" {
		t.Errorf("expected file_format derived from extension, got %v", rec["file_format"])
	}
	if rec["verification_status"] != "pending" {
		t.Errorf("id_proof documents enter verification at pending, got %v", rec["verification_status"])
	}
	if rec["document_status"] != "active" {
		t.Errorf("expected active document, got %v", rec["document_status"])
	}
	if len(snap.Table(audit.TableName)) != 1 {
		t.Errorf("expected exactly one audit row, got %d", len(snap.Table(audit.TableName)))
	}
}

func TestUploadDocument_NonVerificationCategory_ShouldStoreNullVerification(t *testing.T) {
	snap := hrSnap()

	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type":      "upload_document",
		"document_category":   "offer_letter",
		"related_entity_type": "candidate",
		"related_entity_id":   "42",
		"file_name":           "letter.docx",
		"uploaded_by":         "1",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("documents", out["document_id"].(string))
	if v, present := rec["verification_status"]; !present || v != nil {
		t.Errorf("expected verification_status present and null, got %v", v)
	}
}

func TestUploadDocument_DuplicateFileName_ShouldHaltWithoutMutating(t *testing.T) {
	snap := hrSnap()
	snap.Put("documents", "9001", store.Record{
		"document_id": "9001", "file_name": "OFFER_ALICE.pdf", "document_status": "active",
	})
	before := snap.Clone()

	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type":      "upload_document",
		"document_category":   "id_proof",
		"related_entity_type": "candidate",
		"related_entity_id":   "42",
		"file_name":           "offer_alice.pdf",
		"uploaded_by":         "1",
	})

	if !strings.Contains(message(out), "Halt: Document with this file name already exists") {
		t.Errorf("unexpected message %q", message(out))
	}
	if v, present := out["document_id"]; !present || v != nil {
		t.Error("expected document_id present and null on failure")
	}
	if !store.Equal(before, snap) {
		t.Error("failed upload must leave the snapshot unchanged")
	}
}

func TestUploadDocument_UnsupportedExtension_ShouldFail(t *testing.T) {
	out := invokeTool(t, NewDocumentTool(), hrSnap(), map[string]any{
		"operation_type":      "upload_document",
		"document_category":   "contract",
		"related_entity_type": "employee",
		"related_entity_id":   "42",
		"file_name":           "contract.exe",
		"uploaded_by":         "1",
	})

	if out["success"] != false || !strings.Contains(message(out), "file extension") {
		t.Errorf("expected extension rejection, got %v", message(out))
	}
}

func TestVerifyDocument_NullVerificationStatus_ShouldHalt(t *testing.T) {
	snap := hrSnap()
	snap.Put("documents", "9001", store.Record{
		"document_id": "9001", "file_name": "letter.pdf",
		"document_status": "active", "verification_status": nil,
	})

	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type":      "verify_document",
		"document_id":         "9001",
		"verification_result": "verified",
		"user_id":             "4",
	})

	if !strings.Contains(message(out), "Invalid status transition") {
		t.Errorf("documents outside verification must not be verifiable: %q", message(out))
	}
}

func TestUpdateDocumentStatus_ArchiveThenReactivate_ShouldFollowGraph(t *testing.T) {
	snap := hrSnap()
	snap.Put("documents", "9001", store.Record{
		"document_id": "9001", "file_name": "letter.pdf",
		"document_status": "active", "uploaded_by": "3",
	})

	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type": "update_document_status",
		"document_id":    "9001", "new_status": "archived", "user_id": "1",
	})
	if out["success"] != true {
		t.Fatalf("expected archive to succeed, got %v", message(out))
	}

	out = invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type": "update_document_status",
		"document_id":    "9001", "new_status": "active", "user_id": "1",
	})
	if out["success"] != true {
		t.Fatalf("expected reactivation to succeed, got %v", message(out))
	}
	rec, _ := snap.Lookup("documents", "9001")
	if rec["document_status"] != "active" {
		t.Errorf("expected active after reactivation, got %v", rec["document_status"])
	}
}

func TestUpdateDocumentStatus_Owner_ShouldBeAuthorized(t *testing.T) {
	snap := hrSnap()
	snap.Put("documents", "9001", store.Record{
		"document_id": "9001", "file_name": "cv.pdf",
		"document_status": "active", "uploaded_by": "3",
	})

	// User 3 is a recruiter, outside the role list, but owns the document.
	out := invokeTool(t, NewDocumentTool(), snap, map[string]any{
		"operation_type": "update_document_status",
		"document_id":    "9001", "new_status": "archived", "user_id": "3",
	})

	if out["success"] != true {
		t.Fatalf("expected owner to be authorized, got %v", message(out))
	}
}
