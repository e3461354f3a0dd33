package authz

import (
	"strings"
	"testing"

	"agentbench/internal/store"
)

func snapWithUsers(users map[string]store.Record) store.Snapshot {
	t := store.Table{}
	for id, rec := range users {
		t[id] = rec
	}
	return store.Snapshot{UsersTable: t}
}

// =============================================================================
// Resolve
// =============================================================================

func TestResolve_WhenUserMissing_ShouldEscalate(t *testing.T) {
	snap := snapWithUsers(nil)

	_, fail := Resolve(snap, "99")

	if fail == nil || !fail.TransferToHuman {
		t.Fatal("expected escalating halt for unknown user")
	}
	if !strings.Contains(fail.Text(), "Halt: User 99 not found") {
		t.Errorf("unexpected message %q", fail.Text())
	}
}

func TestResolve_WhenSuspended_ShouldEscalate(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"3": {"role": "member", "account_status": "suspended"},
	})

	_, fail := Resolve(snap, "3")

	if fail == nil || !strings.Contains(fail.Text(), "not active") {
		t.Fatalf("expected inactive halt, got %v", fail)
	}
}

func TestResolve_ShouldAcceptEmploymentStatusField(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"7": {"role": "hr_manager", "employment_status": "active"},
	})

	user, fail := Resolve(snap, "7")
	if fail != nil {
		t.Fatalf("expected active HR user to resolve, got %v", fail.Text())
	}
	if Role(user) != "hr_manager" {
		t.Errorf("expected role hr_manager, got %s", Role(user))
	}
}

func TestResolve_WhenNoStatusField_ShouldTreatAsActive(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{"1": {"role": "admin"}})

	if _, fail := Resolve(snap, "1"); fail != nil {
		t.Errorf("expected statusless user to resolve, got %v", fail.Text())
	}
}

// =============================================================================
// Authorize: rule clauses
// =============================================================================

func TestAuthorize_RoleClause(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"7": {"role": "hr_manager", "account_status": "active"},
		"8": {"role": "employee", "account_status": "active"},
	})
	rule := Rule{Roles: []string{"hr_manager", "finance_manager"}}

	if _, fail := Authorize(snap, "7", rule, "", nil); fail != nil {
		t.Errorf("expected hr_manager to pass, got %v", fail.Text())
	}
	_, fail := Authorize(snap, "8", rule, "", nil)
	if fail == nil || !fail.TransferToHuman {
		t.Fatal("expected escalating deny for employee")
	}
	if !strings.HasPrefix(fail.Text(), "Halt: Unauthorized") {
		t.Errorf("unexpected deny message %q", fail.Text())
	}
}

func TestAuthorize_OwnershipClause_ShouldAllowRecordOwner(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"5": {"role": "employee", "account_status": "active"},
	})
	rule := Rule{Roles: []string{"hr_manager"}, OwnerFields: []string{"created_by", "hiring_manager_id"}}
	target := store.Record{"hiring_manager_id": "5"}

	if _, fail := Authorize(snap, "5", rule, "55", target); fail != nil {
		t.Errorf("expected owner to pass, got %v", fail.Text())
	}
}

func TestAuthorize_DirectPermissionClause(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"2": {"role": "member", "account_status": "active", "authorized_device_ids": []any{"10", "11"}},
	})
	rule := Rule{DirectPermField: "authorized_device_ids"}

	if _, fail := Authorize(snap, "2", rule, "11", store.Record{"device_id": "11"}); fail != nil {
		t.Errorf("expected direct permission to pass, got %v", fail.Text())
	}
	if _, fail := Authorize(snap, "2", rule, "12", store.Record{"device_id": "12"}); fail == nil {
		t.Error("expected deny for unlisted device")
	}
}

func TestAuthorize_GroupInheritedClause(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"2": {"role": "member", "account_status": "active", "authorized_group_ids": []any{"3"}},
	})
	rule := Rule{GroupPermField: "authorized_group_ids"}
	target := store.Record{"device_id": "20", "group_id": "3"}

	if _, fail := Authorize(snap, "2", rule, "20", target); fail != nil {
		t.Errorf("expected group-inherited permission to pass, got %v", fail.Text())
	}
}

func TestAuthorize_AdminShortCircuit_RespectsOwnerOnly(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"1": {"role": "Admin", "account_status": "active"},
	})
	target := store.Record{"created_by": "9"}

	open := Rule{OwnerFields: []string{"created_by"}, AdminRoles: []string{"Admin"}}
	if _, fail := Authorize(snap, "1", open, "4", target); fail != nil {
		t.Errorf("expected admin bypass, got %v", fail.Text())
	}

	ownerOnly := Rule{OwnerFields: []string{"created_by"}, AdminRoles: []string{"Admin"}, OwnerOnly: true}
	if _, fail := Authorize(snap, "1", ownerOnly, "4", target); fail == nil {
		t.Error("expected owner-only rule to deny admin")
	}
}

func TestAuthorize_ZeroRule_ShouldOnlyRequireActiveCaller(t *testing.T) {
	snap := snapWithUsers(map[string]store.Record{
		"2": {"role": "member", "account_status": "active"},
		"3": {"role": "member", "account_status": "inactive"},
	})

	if _, fail := Authorize(snap, "2", Rule{}, "", nil); fail != nil {
		t.Errorf("expected zero rule to pass for active caller, got %v", fail.Text())
	}
	if _, fail := Authorize(snap, "3", Rule{}, "", nil); fail == nil {
		t.Error("expected zero rule to deny inactive caller")
	}
}

// =============================================================================
// StringList
// =============================================================================

func TestStringList_ShouldSkipNonStrings(t *testing.T) {
	rec := store.Record{"ids": []any{"1", 2.0, "3"}}

	got := StringList(rec, "ids")

	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("expected [1 3], got %v", got)
	}
}
