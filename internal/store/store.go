package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Record is a single row: a JSON object keyed by field name. Values carry the
// JSON type system (string, float64, bool, nil, []any, map[string]any).
type Record = map[string]any

// Table maps record ID (a string of decimal digits) to the record.
type Table = map[string]Record

// Snapshot is the whole in-memory database: table name to table. A Snapshot is
// owned by exactly one tool call at a time; the harness serializes callers, so
// no locking is needed.
type Snapshot map[string]Table

// FromJSON decodes a snapshot from its canonical JSON form: an object whose
// top-level keys are table names.
func FromJSON(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	if s == nil {
		s = Snapshot{}
	}
	return s, nil
}

// ToJSON encodes the snapshot with stable (sorted) keys and indentation.
func (s Snapshot) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Table returns the named table, or nil if it does not exist. Absent tables
// read as empty; use Ensure before writing.
func (s Snapshot) Table(name string) Table {
	return s[name]
}

// Ensure returns the named table, creating it when absent. Only commit paths
// call this; read paths must not leave empty tables behind.
func (s Snapshot) Ensure(name string) Table {
	t, ok := s[name]
	if !ok {
		t = Table{}
		s[name] = t
	}
	return t
}

// Lookup fetches one record by table and ID.
func (s Snapshot) Lookup(table, id string) (Record, bool) {
	t, ok := s[table]
	if !ok {
		return nil, false
	}
	r, ok := t[id]
	return r, ok
}

// Put writes a record, creating the table on first write.
func (s Snapshot) Put(table, id string, rec Record) {
	s.Ensure(table)[id] = rec
}

// Delete removes a record. Missing tables or IDs are a no-op.
func (s Snapshot) Delete(table, id string) {
	if t, ok := s[table]; ok {
		delete(t, id)
	}
}

// Clone returns a deep copy of the snapshot. Tool actions prepare deltas
// against locals and commit at the end, so Clone is only needed by tests and
// the scenario runner to assert the no-mutation-on-failure property.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for name, t := range s {
		ct := make(Table, len(t))
		for id, rec := range t {
			ct[id] = cloneValue(rec).(map[string]any)
		}
		out[name] = ct
	}
	return out
}

// CloneRecord deep-copies a single record. Actions prepare their deltas on
// clones so a later validation failure cannot leave a half-mutated row.
func CloneRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	return cloneValue(map[string]any(rec)).(map[string]any)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		l := make([]any, len(val))
		for i, inner := range val {
			l[i] = cloneValue(inner)
		}
		return l
	default:
		return v
	}
}

// Equal reports whether two snapshots hold byte-identical data. Comparison is
// done over canonical JSON (encoding/json sorts map keys), which matches the
// failure-atomicity contract: a failed call must leave the snapshot
// byte-identical to its pre-call state.
func Equal(a, b Snapshot) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}

// IDs returns the record IDs of a table in ascending numeric-string order.
// Non-numeric keys sort after numeric ones lexically.
func (s Snapshot) IDs(table string) []string {
	t := s[table]
	out := make([]string, 0, len(t))
	for id := range t {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
