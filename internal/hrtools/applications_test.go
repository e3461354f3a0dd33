package hrtools

import (
	"strings"
	"testing"

	"agentbench/internal/store"
)

func hiringSnap() store.Snapshot {
	snap := hrSnap()
	snap.Put("candidates", "C1", store.Record{"candidate_id": "C1", "email": "a@b.test"})
	snap.Put("job_requisitions", "55", store.Record{"requisition_id": "55", "status": "posted"})
	return snap
}

func TestCreateApplication_PostedRequisition_ShouldStartApplied(t *testing.T) {
	snap := hiringSnap()

	out := invokeTool(t, NewApplicationTool(), snap, map[string]any{
		"operation_type": "create_application",
		"candidate_id":   "C1", "requisition_id": "55", "user_id": "3",
	})

	if out["success"] != true {
		t.Fatalf("expected success, got %v", message(out))
	}
	rec, _ := snap.Lookup("applications", out["application_id"].(string))
	if rec["status"] != "applied" || rec["applied_date"] != "2025-10-01" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestCreateApplication_UnpostedRequisition_ShouldHalt(t *testing.T) {
	snap := hiringSnap()
	snap.Put("job_requisitions", "55", store.Record{"requisition_id": "55", "status": "draft"})

	out := invokeTool(t, NewApplicationTool(), snap, map[string]any{
		"operation_type": "create_application",
		"candidate_id":   "C1", "requisition_id": "55", "user_id": "3",
	})

	if !strings.Contains(message(out), "Halt: Requisition is not open for applications") {
		t.Errorf("unexpected message %q", message(out))
	}
}

func TestAdvanceApplicationStage_SkippingStage_ShouldHalt(t *testing.T) {
	snap := hiringSnap()
	snap.Put("applications", "A1", store.Record{"application_id": "A1", "status": "applied"})

	out := invokeTool(t, NewApplicationTool(), snap, map[string]any{
		"operation_type": "advance_application_stage",
		"application_id": "A1", "new_stage": "selected", "user_id": "3",
	})

	if !strings.Contains(message(out), "Invalid status transition from applied to selected") {
		t.Errorf("unexpected message %q", message(out))
	}
}

func TestCreateOffer_ApplicationNotSelected_ShouldHalt(t *testing.T) {
	snap := hiringSnap()
	snap.Put("applications", "A1", store.Record{"application_id": "A1", "status": "shortlisted"})

	out := invokeTool(t, NewOfferTool(), snap, map[string]any{
		"operation_type": "create_offer",
		"application_id": "A1", "candidate_id": "C1",
		"base_salary": 90000.0, "user_id": "1",
	})

	if !strings.Contains(message(out), "Halt: Application is not in selected status") {
		t.Errorf("unexpected message %q", message(out))
	}
}

func TestOffer_FullLifecycle_ShouldReachAccepted(t *testing.T) {
	snap := hiringSnap()
	snap.Put("applications", "A1", store.Record{"application_id": "A1", "status": "selected"})

	out := invokeTool(t, NewOfferTool(), snap, map[string]any{
		"operation_type": "create_offer",
		"application_id": "A1", "candidate_id": "C1",
		"base_salary": 90000.0, "user_id": "1",
	})
	if out["success"] != true {
		t.Fatalf("create failed: %v", message(out))
	}
	offerID := out["offer_id"].(string)

	steps := []map[string]any{
		{"operation_type": "verify_offer_compliance", "offer_id": offerID, "user_id": "4"},
		{"operation_type": "approve_offer", "offer_id": offerID, "user_id": "1"},
		{"operation_type": "issue_offer", "offer_id": offerID, "user_id": "3"},
		{"operation_type": "record_offer_decision", "offer_id": offerID, "decision": "accepted", "user_id": "3"},
	}
	for _, step := range steps {
		out = invokeTool(t, NewOfferTool(), snap, step)
		if out["success"] != true {
			t.Fatalf("%s failed: %v", step["operation_type"], message(out))
		}
	}

	rec, _ := snap.Lookup("offers", offerID)
	if rec["status"] != "accepted" {
		t.Errorf("expected accepted, got %v", rec["status"])
	}
	if rec["issued_date"] != "2025-10-01" || rec["decision_date"] != "2025-10-01" {
		t.Errorf("expected fixture dates stamped, got %v", rec)
	}
}
