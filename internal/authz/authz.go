package authz

import (
	"agentbench/internal/domain"
	"agentbench/internal/store"
)

// UsersTable is where caller principals live in every domain snapshot.
const UsersTable = "users"

// Rule is an operation's authorization predicate, drawn from the closed
// catalog: role membership, role-or-ownership, direct object permission,
// group-inherited permission, with an optional admin short-circuit. A caller
// passes when ANY configured clause grants access; the active-status check
// always applies first. A zero Rule only requires an active caller.
type Rule struct {
	// Roles allowed outright.
	Roles []string
	// OwnerFields are target-record fields naming an owning user ID
	// (created_by, manager_id, hiring_manager_id, ...). Ownership grants
	// access regardless of role.
	OwnerFields []string
	// DirectPermField is a caller-record list field (authorized_device_ids,
	// authorized_group_ids) that must contain the target ID.
	DirectPermField string
	// GroupPermField is a caller-record list field that must contain the
	// target record's group_id.
	GroupPermField string
	// AdminRoles bypass object-level clauses unless OwnerOnly is set.
	AdminRoles []string
	// OwnerOnly disables the admin short-circuit.
	OwnerOnly bool
}

// Resolve looks up the caller and enforces the universal active-status
// requirement. Principals carry the status under account_status in the
// smart-home and wiki fixtures and employment_status in HR; records with
// neither field are treated as active.
func Resolve(snap store.Snapshot, userID string) (store.Record, *domain.Failure) {
	user, ok := snap.Lookup(UsersTable, userID)
	if !ok {
		return nil, domain.Escalatef("User %s not found", userID)
	}
	if !active(user) {
		return nil, domain.Escalatef("User account is not active")
	}
	return user, nil
}

// Authorize evaluates the rule for the caller against an optional target
// record. targetID is the primary ID of the target (used for direct object
// permissions); target may be nil for create-family operations.
func Authorize(snap store.Snapshot, userID string, rule Rule, targetID string, target store.Record) (store.Record, *domain.Failure) {
	user, fail := Resolve(snap, userID)
	if fail != nil {
		return nil, fail
	}
	if !rule.configured() {
		return user, nil
	}
	role := Role(user)
	if !rule.OwnerOnly && contains(rule.AdminRoles, role) {
		return user, nil
	}
	if contains(rule.Roles, role) {
		return user, nil
	}
	if target != nil {
		for _, f := range rule.OwnerFields {
			if owner, ok := target[f].(string); ok && owner == userID {
				return user, nil
			}
		}
	}
	if rule.DirectPermField != "" && targetID != "" {
		if contains(StringList(user, rule.DirectPermField), targetID) {
			return user, nil
		}
	}
	if rule.GroupPermField != "" && target != nil {
		if groupID, ok := target["group_id"].(string); ok && groupID != "" {
			if contains(StringList(user, rule.GroupPermField), groupID) {
				return user, nil
			}
		}
	}
	return nil, domain.Escalatef("Unauthorized: user %s is not permitted to perform this action", userID)
}

// Role returns the caller's role, empty when absent.
func Role(user store.Record) string {
	role, _ := user["role"].(string)
	return role
}

// StringList reads a record field holding a JSON array of strings.
func StringList(rec store.Record, field string) []string {
	raw, ok := rec[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func active(user store.Record) bool {
	for _, field := range []string{"account_status", "employment_status", "status"} {
		if status, ok := user[field].(string); ok {
			return status == "active"
		}
	}
	return true
}

func (r Rule) configured() bool {
	return len(r.Roles) > 0 || len(r.OwnerFields) > 0 ||
		r.DirectPermField != "" || r.GroupPermField != "" || len(r.AdminRoles) > 0
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
