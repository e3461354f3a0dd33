package store

import (
	"testing"
)

// =============================================================================
// FromJSON / ToJSON
// =============================================================================

func TestFromJSON_WhenValidObject_ShouldDecodeTables(t *testing.T) {
	data := []byte(`{"users": {"1": {"user_id": "1", "role": "hr_manager"}}}`)

	snap, err := FromJSON(data)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	rec, ok := snap.Lookup("users", "1")
	if !ok {
		t.Fatal("expected users/1 to exist")
	}
	if rec["role"] != "hr_manager" {
		t.Errorf("expected role hr_manager, got %v", rec["role"])
	}
}

func TestFromJSON_WhenMalformed_ShouldReturnError(t *testing.T) {
	if _, err := FromJSON([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for non-object snapshot")
	}
}

func TestFromJSON_WhenNull_ShouldReturnEmptySnapshot(t *testing.T) {
	snap, err := FromJSON([]byte(`null`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
}

// =============================================================================
// Table access and mutation
// =============================================================================

func TestTable_WhenAbsent_ShouldReturnNilWithoutCreating(t *testing.T) {
	snap := Snapshot{}

	if got := snap.Table("documents"); got != nil {
		t.Errorf("expected nil table, got %v", got)
	}
	if _, exists := snap["documents"]; exists {
		t.Error("read access must not create the table")
	}
}

func TestPut_WhenTableAbsent_ShouldCreateOnFirstWrite(t *testing.T) {
	snap := Snapshot{}

	snap.Put("documents", "9001", Record{"document_id": "9001"})

	rec, ok := snap.Lookup("documents", "9001")
	if !ok || rec["document_id"] != "9001" {
		t.Fatalf("expected documents/9001 after Put, got %v ok=%v", rec, ok)
	}
}

func TestDelete_WhenMissing_ShouldBeNoOp(t *testing.T) {
	snap := Snapshot{"users": Table{"1": Record{}}}

	snap.Delete("users", "2")
	snap.Delete("ghost", "1")

	if len(snap["users"]) != 1 {
		t.Error("existing record must survive no-op deletes")
	}
}

// =============================================================================
// Clone / Equal
// =============================================================================

func TestClone_ShouldBeDeepAndIndependent(t *testing.T) {
	snap := Snapshot{
		"users": Table{"1": Record{"tags": []any{"a"}, "meta": map[string]any{"x": 1.0}}},
	}

	clone := snap.Clone()
	clone["users"]["1"]["role"] = "admin"
	clone["users"]["1"]["meta"].(map[string]any)["x"] = 2.0

	if _, exists := snap["users"]["1"]["role"]; exists {
		t.Error("clone mutation leaked into the original record")
	}
	if snap["users"]["1"]["meta"].(map[string]any)["x"] != 1.0 {
		t.Error("clone mutation leaked into nested map")
	}
}

func TestEqual_WhenIdentical_ShouldReturnTrue(t *testing.T) {
	a := Snapshot{"users": Table{"1": Record{"n": 1.0}}}
	b := a.Clone()

	if !Equal(a, b) {
		t.Error("expected clones to compare equal")
	}
}

func TestEqual_WhenDiverged_ShouldReturnFalse(t *testing.T) {
	a := Snapshot{"users": Table{"1": Record{"n": 1.0}}}
	b := a.Clone()
	b["users"]["1"]["n"] = 2.0

	if Equal(a, b) {
		t.Error("expected diverged snapshots to compare unequal")
	}
}

// =============================================================================
// IDs ordering
// =============================================================================

func TestIDs_ShouldSortNumerically(t *testing.T) {
	snap := Snapshot{"documents": Table{"10": Record{}, "9": Record{}, "9001": Record{}}}

	got := snap.IDs("documents")

	want := []string{"9", "10", "9001"}
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
