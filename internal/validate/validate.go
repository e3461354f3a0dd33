package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"agentbench/internal/domain"
	"agentbench/internal/simclock"
	"agentbench/internal/store"
)

// Required checks that every listed key is present with a non-null value.
// Declared-but-null is rejected here, never tolerated downstream.
func Required(payload map[string]any, fields []string) *domain.Failure {
	var missing []string
	for _, f := range fields {
		v, ok := payload[f]
		if !ok || v == nil {
			missing = append(missing, f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return domain.Haltf("Missing mandatory fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Enum checks case-sensitive membership.
func Enum(value, field string, allowed []string) *domain.Failure {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return domain.Invalidf("Invalid %s: %s. Valid values: %s", field, value, strings.Join(allowed, ", "))
}

// String coerces a payload value to string. IDs arrive as strings from the
// harness, but agents occasionally send bare numbers; those are accepted and
// rendered without an exponent.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}

// DateYMD checks the canonical YYYY-MM-DD form. With allowFuture=false the
// date must not be after the simulated today. Returns the canonical value.
func DateYMD(value, field string, allowFuture bool, clk *simclock.Clock) (string, *domain.Failure) {
	parsed, err := time.Parse(simclock.DateLayout, value)
	if err != nil {
		return "", domain.Invalidf("Invalid %s: expected YYYY-MM-DD, got %s", field, value)
	}
	if !allowFuture && parsed.After(clk.Now()) {
		return "", domain.Invalidf("Invalid %s: %s is in the future", field, value)
	}
	return value, nil
}

// DateFlexible accepts YYYY-MM-DD or MM-DD-YYYY and returns the canonical
// YYYY-MM-DD form for storage.
func DateFlexible(value, field string, allowFuture bool, clk *simclock.Clock) (string, *domain.Failure) {
	if canonical, fail := DateYMD(value, field, allowFuture, clk); fail == nil {
		return canonical, nil
	}
	parsed, err := time.Parse("01-02-2006", value)
	if err != nil {
		return "", domain.Invalidf("Invalid %s: expected YYYY-MM-DD or MM-DD-YYYY, got %s", field, value)
	}
	canonical := parsed.Format(simclock.DateLayout)
	if !allowFuture && parsed.After(clk.Now()) {
		return "", domain.Invalidf("Invalid %s: %s is in the future", field, canonical)
	}
	return canonical, nil
}

// Match checks an anchored regular-expression format.
func Match(value, field string, pattern *regexp.Regexp, hint string) *domain.Failure {
	if !pattern.MatchString(value) {
		return domain.Invalidf("Invalid %s format: expected %s", field, hint)
	}
	return nil
}

// Number coerces a payload value to float64. JSON numbers decode as float64;
// numeric strings are tolerated because several fixtures store amounts as
// strings.
func Number(v any, field string) (float64, *domain.Failure) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, domain.Invalidf("Invalid %s: must be a number", field)
		}
		return parsed, nil
	default:
		return 0, domain.Invalidf("Invalid %s: must be a number", field)
	}
}

// Range checks an inclusive numeric interval.
func Range(v float64, min, max float64, field string) *domain.Failure {
	if v < min || v > max {
		return domain.Invalidf("Invalid %s: must be between %s and %s", field, trimFloat(min), trimFloat(max))
	}
	return nil
}

// AtLeast rejects values below the floor.
func AtLeast(v, min float64, field string) *domain.Failure {
	if v < min {
		return domain.Invalidf("Invalid %s: must be at least %s", field, trimFloat(min))
	}
	return nil
}

// AtMost rejects values above the ceiling.
func AtMost(v, max float64, field string) *domain.Failure {
	if v > max {
		return domain.Invalidf("Invalid %s: must be at most %s", field, trimFloat(max))
	}
	return nil
}

// NonNegative rejects values below zero.
func NonNegative(v float64, field string) *domain.Failure {
	if v < 0 {
		return domain.Invalidf("Invalid %s: must be non-negative", field)
	}
	return nil
}

// Positive rejects zero and below.
func Positive(v float64, field string) *domain.Failure {
	if v <= 0 {
		return domain.Invalidf("Invalid %s: must be greater than zero", field)
	}
	return nil
}

/// Exists checks referential integrity: the ID must be present in the table.
func Exists(snap store.Snapshot, table, id, label string) *domain.Failure {
	if _, ok := snap.Lookup(table, id); !ok {
		return domain.Haltf("%s %s not found", label, id)
	}
	return nil
}

// Unique checks that no record in the table carries the same field value.
// excludeID skips the record being updated so it does not collide with
// itself. Matching is case-insensitive when fold is true.
func Unique(snap store.Snapshot, table, field, value string, fold bool, excludeID, label string) *domain.Failure {
	needle := value
	if fold {
		needle = strings.ToLower(value)
	}
	for id, rec := range snap.Table(table) {
		if id == excludeID {
			continue
		}
		existing, ok := rec[field].(string)
		if !ok {
			continue
		}
		if fold {
			existing = strings.ToLower(existing)
		}
		if existing == needle {
			return domain.Haltf("%s already exists", label)
		}
	}
	return nil
}

// Graph is a directed status-transition graph: state to allowed successors.
// States absent from the map are terminal.
type Graph map[string][]string

// Allowed reports whether from->to is a declared edge.
func (g Graph) Allowed(from, to string) bool {
	for _, next := range g[from] {
		if next == to {
			return true
		}
	}
	return false
}

// States returns every state mentioned in the graph, sorted.
func (g Graph) States() []string {
	seen := map[string]bool{}
	for from, tos := range g {
		seen[from] = true
		for _, to := range tos {
			seen[to] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Transition checks that current->next is a declared edge of the graph.
func Transition(current, next string, g Graph) *domain.Failure {
	if !g.Allowed(current, next) {
		return domain.Haltf("Invalid status transition from %s to %s", current, next)
	}
	return nil
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
