// Package discover is the read-side companion to the tool framework: exact,
// date-range and numeric-bound filtering over one table, with filter-key
// whitelisting and range-conflict detection. Discovery is read-only, returns
// the full matching sub-map, and never writes audit rows.
package discover

import (
	"sort"
	"strconv"
	"strings"

	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/validate"
)

// Suffixes of the three filter families. A key with no suffix is an exact
// match; _from/_to are inclusive lexical bounds over YYYY-MM-DD strings;
// _min/_max are inclusive numeric bounds.
const (
	suffixFrom = "_from"
	suffixTo   = "_to"
	suffixMin  = "_min"
	suffixMax  = "_max"
)

// Entity maps a queryable entity type to its table and filter-key whitelist.
// Range keys are listed explicitly (e.g. "amount_min", "amount_max").
type Entity struct {
	Table   string
	Filters []string
}

// Tool is a discovery handler over a set of entity types. It satisfies the
// same handler surface as the mutation tools so registries can hold both.
type Tool struct {
	name        string
	description string
	entities    map[string]Entity
	order       []string
}

// New returns an empty discovery tool.
func New(name, description string) *Tool {
	return &Tool{name: name, description: description, entities: map[string]Entity{}}
}

// Add registers one entity type. Returns the tool for chaining.
func (t *Tool) Add(entityType string, e Entity) *Tool {
	if _, exists := t.entities[entityType]; !exists {
		t.order = append(t.order, entityType)
	}
	t.entities[entityType] = e
	return t
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Description returns the tool description.
func (t *Tool) Description() string { return t.description }

// Invoke runs one discovery query. The payload carries entity_type and an
// optional filters object. Failures use the same envelope as mutations;
// the snapshot is never modified.
func (t *Tool) Invoke(snap store.Snapshot, payload map[string]any) string {
	if snap == nil {
		return fail(domain.Invalidf("Invalid database snapshot"))
	}
	entityType, _ := payload["entity_type"].(string)
	if entityType == "" {
		return fail(domain.Haltf("Missing mandatory fields: entity_type"))
	}
	entity, ok := t.entities[entityType]
	if !ok {
		return fail(domain.Invalidf("Invalid entity_type: %s. Valid values: %s",
			entityType, strings.Join(t.order, ", ")))
	}

	filters := map[string]any{}
	if raw, present := payload["filters"]; present && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return fail(domain.Invalidf("Invalid filters: must be an object"))
		}
		filters = m
	}

	if f := checkKeys(entityType, entity, filters); f != nil {
		return fail(f)
	}
	if f := checkRangeConflicts(filters); f != nil {
		return fail(f)
	}

	results := map[string]any{}
	for id, rec := range snap.Table(entity.Table) {
		if matches(rec, filters) {
			results[id] = rec
		}
	}

	env := domain.Envelope{Success: true, Message: "Entities fetched successfully"}
	env.Extra = map[string]any{
		"entity_type": entityType,
		"count":       len(results),
		"filters":     filters,
		"results":     results,
	}
	return env.Encode()
}

func checkKeys(entityType string, entity Entity, filters map[string]any) *domain.Failure {
	allowed := map[string]bool{}
	for _, k := range entity.Filters {
		allowed[k] = true
	}
	var unknown []string
	for k := range filters {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return domain.Haltf("Invalid filter keys for %s: %s. Valid filter keys: %s",
		entityType, strings.Join(unknown, ", "), strings.Join(entity.Filters, ", "))
}

// checkRangeConflicts rejects queries whose bounds cannot match anything:
// _from after _to, or _min above _max.
func checkRangeConflicts(filters map[string]any) *domain.Failure {
	for key, v := range filters {
		base, ok := strings.CutSuffix(key, suffixMin)
		if ok {
			upper, present := filters[base+suffixMax]
			if !present {
				continue
			}
			lo, failLo := validate.Number(v, key)
			hi, failHi := validate.Number(upper, base+suffixMax)
			if failLo != nil || failHi != nil {
				continue // non-numeric bounds fail at match time as empty results
			}
			if lo > hi {
				return domain.Haltf("Filters would produce conflicting results for %s range: %s > %s",
					base, formatNumber(lo), formatNumber(hi))
			}
		}
		if base, ok := strings.CutSuffix(key, suffixFrom); ok {
			upper, present := filters[base+suffixTo]
			if !present {
				continue
			}
			from, okFrom := v.(string)
			to, okTo := upper.(string)
			if okFrom && okTo && from > to {
				return domain.Haltf("Filters would produce conflicting results for %s range: %s > %s",
					base, from, to)
			}
		}
	}
	return nil
}

func matches(rec store.Record, filters map[string]any) bool {
	for key, want := range filters {
		switch {
		case strings.HasSuffix(key, suffixFrom):
			base := strings.TrimSuffix(key, suffixFrom)
			got, ok := rec[base].(string)
			bound, okBound := want.(string)
			if !ok || !okBound || got < bound {
				return false
			}
		case strings.HasSuffix(key, suffixTo):
			base := strings.TrimSuffix(key, suffixTo)
			got, ok := rec[base].(string)
			bound, okBound := want.(string)
			if !ok || !okBound || got > bound {
				return false
			}
		case strings.HasSuffix(key, suffixMin):
			base := strings.TrimSuffix(key, suffixMin)
			got, failGot := validate.Number(rec[base], base)
			bound, failBound := validate.Number(want, key)
			if failGot != nil || failBound != nil || got < bound {
				return false
			}
		case strings.HasSuffix(key, suffixMax):
			base := strings.TrimSuffix(key, suffixMax)
			got, failGot := validate.Number(rec[base], base)
			bound, failBound := validate.Number(want, key)
			if failGot != nil || failBound != nil || got > bound {
				return false
			}
		default:
			if !exactMatch(rec[key], want) {
				return false
			}
		}
	}
	return true
}

// exactMatch compares an exact filter against a record value. Strings fold
// case; numbers compare numerically even when one side is a numeric string.
func exactMatch(got, want any) bool {
	gs, gIsStr := got.(string)
	ws, wIsStr := want.(string)
	if gIsStr && wIsStr {
		return strings.EqualFold(gs, ws)
	}
	gn, failG := validate.Number(got, "")
	wn, failW := validate.Number(want, "")
	if failG == nil && failW == nil {
		return gn == wn
	}
	return got == want
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fail(f *domain.Failure) string {
	return domain.Fail("", f).Encode()
}
