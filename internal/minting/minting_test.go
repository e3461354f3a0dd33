package minting

import (
	"testing"

	"agentbench/internal/store"
)

func TestMint_WhenTableEmpty_ShouldReturnStartID(t *testing.T) {
	m := New()
	snap := store.Snapshot{}

	cases := []struct {
		table string
		want  string
	}{
		{"documents", "9001"},
		{"payments", "10001"},
		{"benefit_enrollments", "11001"},
		{"job_requisitions", "1"},
	}
	for _, tc := range cases {
		if got := m.Mint(snap, tc.table); got != tc.want {
			t.Errorf("Mint(%s): expected %s, got %s", tc.table, tc.want, got)
		}
	}
}

func TestMint_WhenTablePopulated_ShouldReturnMaxPlusOne(t *testing.T) {
	m := New()
	snap := store.Snapshot{
		"documents": store.Table{"9001": store.Record{}, "9005": store.Record{}},
	}

	if got := m.Mint(snap, "documents"); got != "9006" {
		t.Errorf("expected 9006, got %s", got)
	}
}

func TestMint_ShouldIgnoreNonNumericKeys(t *testing.T) {
	m := New()
	snap := store.Snapshot{
		"documents": store.Table{"draft-copy": store.Record{}, "9002": store.Record{}},
	}

	if got := m.Mint(snap, "documents"); got != "9003" {
		t.Errorf("expected 9003, got %s", got)
	}
}

func TestMint_WhenOnlyNonNumericKeys_ShouldFallBackToStart(t *testing.T) {
	m := New()
	snap := store.Snapshot{"documents": store.Table{"legacy": store.Record{}}}

	if got := m.Mint(snap, "documents"); got != "9001" {
		t.Errorf("expected 9001, got %s", got)
	}
}

func TestMint_TwiceAfterCommit_ShouldBeStrictlyIncreasing(t *testing.T) {
	m := New()
	snap := store.Snapshot{}

	first := m.Mint(snap, "payments")
	snap.Put("payments", first, store.Record{"payment_id": first})
	second := m.Mint(snap, "payments")

	if first == second {
		t.Fatalf("expected distinct IDs, got %s twice", first)
	}
	if second != "10002" {
		t.Errorf("expected 10002 after committing %s, got %s", first, second)
	}
}

func TestWithStart_ShouldOverrideTableStart(t *testing.T) {
	m := New(WithStart("sessions", 500))

	if got := m.Mint(store.Snapshot{}, "sessions"); got != "500" {
		t.Errorf("expected 500, got %s", got)
	}
}
