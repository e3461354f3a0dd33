package validate

import (
	"strings"
	"testing"

	"agentbench/internal/simclock"
	"agentbench/internal/store"
)

// =============================================================================
// Required
// =============================================================================

func TestRequired_WhenAllPresent_ShouldPass(t *testing.T) {
	payload := map[string]any{"user_id": "7", "amount": 10.0}

	if fail := Required(payload, []string{"user_id", "amount"}); fail != nil {
		t.Errorf("expected pass, got %v", fail.Text())
	}
}

func TestRequired_WhenMissingOrNull_ShouldHaltListingFields(t *testing.T) {
	payload := map[string]any{"user_id": nil, "file_name": "  "}

	fail := Required(payload, []string{"user_id", "file_name", "amount"})

	if fail == nil || !fail.Halt {
		t.Fatal("expected halt failure")
	}
	text := fail.Text()
	for _, want := range []string{"Halt: Missing mandatory fields", "user_id", "file_name", "amount"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in %q", want, text)
		}
	}
}

// =============================================================================
// Enum / formats
// =============================================================================

func TestEnum_ShouldBeCaseSensitive(t *testing.T) {
	if fail := Enum("active", "status", []string{"active", "archived"}); fail != nil {
		t.Errorf("expected member to pass, got %v", fail.Text())
	}
	fail := Enum("Active", "status", []string{"active", "archived"})
	if fail == nil || fail.Halt {
		t.Fatal("expected plain validation failure for case mismatch")
	}
	if !strings.Contains(fail.Text(), "Valid values: active, archived") {
		t.Errorf("expected valid values echoed, got %q", fail.Text())
	}
}

func TestDateYMD_ShouldEnforceFormatAndFutureRule(t *testing.T) {
	clk := simclock.New() // today = 2025-10-01

	if _, fail := DateYMD("2025-09-30", "approval_date", false, clk); fail != nil {
		t.Errorf("expected past date to pass, got %v", fail.Text())
	}
	if _, fail := DateYMD("09/30/2025", "approval_date", false, clk); fail == nil {
		t.Error("expected slash format to fail")
	}
	if _, fail := DateYMD("2025-12-01", "approval_date", false, clk); fail == nil {
		t.Error("expected future date to fail when disallowed")
	}
	if _, fail := DateYMD("2025-12-01", "start_date", true, clk); fail != nil {
		t.Errorf("expected future date to pass when allowed, got %v", fail.Text())
	}
}

func TestDateFlexible_ShouldCanonicalizeMDY(t *testing.T) {
	clk := simclock.New()

	canonical, fail := DateFlexible("09-15-2025", "date_of_birth", false, clk)
	if fail != nil {
		t.Fatalf("expected pass, got %v", fail.Text())
	}
	if canonical != "2025-09-15" {
		t.Errorf("expected canonical 2025-09-15, got %s", canonical)
	}
}

func TestMatch_Patterns(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"12345678", true},
		{"12345678901234567", true},
		{"1234567", false},
		{"123456789012345678", false},
		{"12a45678", false},
	}
	for _, tc := range cases {
		fail := Match(tc.value, "account_number", PatternAccountNumber, HintAccountNumber)
		if (fail == nil) != tc.ok {
			t.Errorf("account_number %q: expected ok=%v, got %v", tc.value, tc.ok, fail)
		}
	}
	if fail := Match("AA:BB:CC:00:11:22", "mac_address", PatternMAC, HintMAC); fail != nil {
		t.Errorf("expected MAC to pass, got %v", fail.Text())
	}
	if fail := Match("alice@example.com", "email", PatternEmail, HintEmail); fail != nil {
		t.Errorf("expected email to pass, got %v", fail.Text())
	}
}

// =============================================================================
// Numbers
// =============================================================================

func TestNumber_ShouldCoerceStringsAndRejectJunk(t *testing.T) {
	if v, fail := Number("1234.56", "amount"); fail != nil || v != 1234.56 {
		t.Errorf("expected 1234.56, got %v / %v", v, fail)
	}
	if _, fail := Number("lots", "amount"); fail == nil {
		t.Error("expected non-numeric string to fail")
	}
	if _, fail := Number(true, "amount"); fail == nil {
		t.Error("expected bool to fail")
	}
}

func TestRangeHelpers(t *testing.T) {
	if fail := Range(5, 1, 10, "hours"); fail != nil {
		t.Errorf("expected in-range to pass, got %v", fail.Text())
	}
	if fail := Range(11, 1, 10, "hours"); fail == nil {
		t.Error("expected out-of-range to fail")
	}
	if fail := NonNegative(0, "amount"); fail != nil {
		t.Errorf("expected zero to be non-negative, got %v", fail.Text())
	}
	if fail := Positive(0, "amount"); fail == nil {
		t.Error("expected zero to fail strictly-positive check")
	}
}

// =============================================================================
// Exists / Unique
// =============================================================================

func TestExists_ShouldHaltOnMissingReference(t *testing.T) {
	snap := store.Snapshot{"candidates": store.Table{"42": store.Record{}}}

	if fail := Exists(snap, "candidates", "42", "Candidate"); fail != nil {
		t.Errorf("expected pass, got %v", fail.Text())
	}
	fail := Exists(snap, "candidates", "43", "Candidate")
	if fail == nil || !fail.Halt {
		t.Fatal("expected halt for missing reference")
	}
	if !strings.Contains(fail.Text(), "Candidate 43 not found") {
		t.Errorf("unexpected message %q", fail.Text())
	}
}

func TestUnique_ShouldFoldCaseAndExcludeSelf(t *testing.T) {
	snap := store.Snapshot{
		"documents": store.Table{"9001": store.Record{"file_name": "Offer_Alice.PDF"}},
	}

	fail := Unique(snap, "documents", "file_name", "offer_alice.pdf", true, "", "Document with this file name")
	if fail == nil || !fail.Halt {
		t.Fatal("expected duplicate halt")
	}
	if !strings.Contains(fail.Text(), "Halt: Document with this file name already exists") {
		t.Errorf("unexpected message %q", fail.Text())
	}
	if fail := Unique(snap, "documents", "file_name", "offer_alice.pdf", true, "9001", "Document with this file name"); fail != nil {
		t.Errorf("expected self-exclusion to pass, got %v", fail.Text())
	}
	if fail := Unique(snap, "documents", "file_name", "Offer_Alice.PDF", false, "9002", "Document with this file name"); fail == nil {
		t.Error("expected exact-case duplicate to fail even without folding")
	}
}

// =============================================================================
// Transitions
// =============================================================================

func TestTransition_ShouldAllowDeclaredEdgesOnly(t *testing.T) {
	if fail := Transition("active", "archived", DocumentStatus); fail != nil {
		t.Errorf("expected declared edge to pass, got %v", fail.Text())
	}
	fail := Transition("archived", "expired", DocumentStatus)
	if fail == nil || !fail.Halt {
		t.Fatal("expected halt for undeclared edge")
	}
	if fail.Text() != "Halt: Invalid status transition from archived to expired" {
		t.Errorf("unexpected message %q", fail.Text())
	}
}

func TestTransition_TerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, terminal := range []string{"verified", "failed"} {
		if fail := Transition(terminal, "pending", VerificationStatus); fail == nil {
			t.Errorf("expected %s to be terminal", terminal)
		}
	}
	for _, terminal := range []string{"sent", "failed", "bounced"} {
		if fail := Transition(terminal, "pending", NotificationStatus); fail == nil {
			t.Errorf("expected %s to be terminal", terminal)
		}
	}
}

func TestGraph_States_ShouldListEveryMentionedState(t *testing.T) {
	states := PaymentStatus.States()

	want := []string{"failed", "pending", "processed", "reversed"}
	if len(states) != len(want) {
		t.Fatalf("expected %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, states)
		}
	}
}
