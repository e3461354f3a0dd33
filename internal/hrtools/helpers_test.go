package hrtools

import (
	"encoding/json"
	"testing"

	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// hrSnap seeds the caller population shared by the HR tests: one user per
// role, all active.
func hrSnap() store.Snapshot {
	return store.Snapshot{
		"users": store.Table{
			"1": store.Record{"user_id": "1", "role": roleHRManager, "account_status": "active"},
			"2": store.Record{"user_id": "2", "role": roleFinance, "account_status": "active"},
			"3": store.Record{"user_id": "3", "role": roleRecruiter, "account_status": "active"},
			"4": store.Record{"user_id": "4", "role": roleCompliance, "account_status": "active"},
			"5": store.Record{"user_id": "5", "role": rolePayrollAdmin, "account_status": "active"},
			"6": store.Record{"user_id": "6", "role": roleITAdmin, "account_status": "active"},
			"7": store.Record{"user_id": "7", "role": roleBenefitsAdmin, "account_status": "active"},
			// Department manager carries employment_status instead of
			// account_status, exercising the resolver's fallback.
			"9": store.Record{"user_id": "9", "role": roleDeptManager, "employment_status": "active"},
		},
	}
}

func invokeTool(t *testing.T, tool *toolkit.Tool, snap store.Snapshot, payload map[string]any) map[string]any {
	t.Helper()
	h := toolkit.Bind(tool, toolkit.NewRuntime())
	raw := h.Invoke(snap, payload)
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("envelope is not valid JSON: %v\n%s", err, raw)
	}
	return out
}

func message(out map[string]any) string {
	s, _ := out["message"].(string)
	return s
}
