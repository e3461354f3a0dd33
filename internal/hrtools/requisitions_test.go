package hrtools

import (
	"strings"
	"testing"

	"agentbench/internal/audit"
	"agentbench/internal/store"
)

func pendingRequisition() store.Record {
	return store.Record{
		"requisition_id": "55", "job_title": "Data Engineer",
		"department_id": "D1", "hiring_manager_id": "9",
		"status":                   "pending_approval",
		"hr_manager_approver":      "1",
		"finance_manager_approver": "2",
		"dept_head_approver":       nil,
	}
}

func TestApproveRequisition_FinalApprover_ShouldCompleteApproval(t *testing.T) {
	snap := hrSnap()
	snap.Put("job_requisitions", "55", pendingRequisition())

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type": "approve_requisition",
		"requisition_id": "55", "user_id": "9", "approval_date": "2025-10-10",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("job_requisitions", "55")
	if rec["dept_head_approver"] != "9" {
		t.Errorf("expected dept head slot filled, got %v", rec["dept_head_approver"])
	}
	if rec["dept_head_approval_date"] != "2025-10-10" {
		t.Errorf("expected approval date stored, got %v", rec["dept_head_approval_date"])
	}
	if rec["status"] != "approved" {
		t.Errorf("all three approvers present, expected approved, got %v", rec["status"])
	}
	for _, row := range snap.Table(audit.TableName) {
		if row["action"] != string(audit.ActionApprove) {
			t.Errorf("expected approve audit action, got %v", row["action"])
		}
	}
}

func TestApproveRequisition_PartialApproval_ShouldStayPending(t *testing.T) {
	snap := hrSnap()
	req := pendingRequisition()
	req["finance_manager_approver"] = nil
	snap.Put("job_requisitions", "55", req)

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type": "approve_requisition",
		"requisition_id": "55", "user_id": "9", "approval_date": "2025-10-10",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("job_requisitions", "55")
	if rec["status"] != "pending_approval" {
		t.Errorf("finance slot still empty, expected pending_approval, got %v", rec["status"])
	}
}

func TestApproveRequisition_SameRoleTwice_ShouldHalt(t *testing.T) {
	snap := hrSnap()
	snap.Put("job_requisitions", "55", pendingRequisition())

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type": "approve_requisition",
		"requisition_id": "55", "user_id": "1", "approval_date": "2025-10-10",
	})

	if !strings.Contains(message(out), "already approved by a hr_manager") {
		t.Errorf("unexpected message %q", message(out))
	}
}

func TestApproveRequisition_NotPendingApproval_ShouldHalt(t *testing.T) {
	snap := hrSnap()
	req := pendingRequisition()
	req["status"] = "draft"
	snap.Put("job_requisitions", "55", req)

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type": "approve_requisition",
		"requisition_id": "55", "user_id": "9", "approval_date": "2025-10-10",
	})

	if !strings.Contains(message(out), "Invalid status transition from draft to approved") {
		t.Errorf("unexpected message %q", message(out))
	}
}

func TestCreateRequisition_ShouldStartDraftWithEmptySlots(t *testing.T) {
	snap := hrSnap()
	snap.Put("departments", "D1", store.Record{"department_id": "D1", "department_name": "Data"})

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type":    "create_requisition",
		"job_title":         "Data Engineer",
		"department_id":     "D1",
		"hiring_manager_id": "9",
		"employment_type":   "full_time",
		"budget":            120000.0,
		"user_id":           "1",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("job_requisitions", out["requisition_id"].(string))
	if rec["status"] != "draft" {
		t.Errorf("expected draft, got %v", rec["status"])
	}
	for _, slot := range []string{"hr_manager_approver", "finance_manager_approver", "dept_head_approver"} {
		if v, present := rec[slot]; !present || v != nil {
			t.Errorf("expected %s present and null, got %v", slot, v)
		}
	}
}

func TestSubmitRequisition_FromDraft_ShouldEnterApproval(t *testing.T) {
	snap := hrSnap()
	snap.Put("job_requisitions", "60", store.Record{
		"requisition_id": "60", "status": "draft", "created_by": "3",
	})

	out := invokeTool(t, NewRequisitionTool(), snap, map[string]any{
		"operation_type": "submit_requisition", "requisition_id": "60", "user_id": "3",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("job_requisitions", "60")
	if rec["status"] != "pending_approval" {
		t.Errorf("expected pending_approval, got %v", rec["status"])
	}
}
