// Package toolkit is the tool dispatch and validated mutation core. Every
// domain tool is a declarative descriptor (required fields, per-field
// validators, authorization rule, referential edges, uniqueness rules, status
// transition, core action); a single interpreter runs the validation pipeline
// over the descriptor, commits the prepared delta, and writes the audit row.
package toolkit

import (
	"regexp"

	"agentbench/internal/audit"
	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/minting"
	"agentbench/internal/simclock"
	"agentbench/internal/store"
	"agentbench/internal/validate"
)

// Payload is the decoded JSON argument object of one tool call.
type Payload map[string]any

// Kind selects the validator family for a field.
type Kind int

const (
	// KindString is any string; no format constraint.
	KindString Kind = iota
	// KindEnum is a string drawn from a closed, case-sensitive set.
	KindEnum
	// KindDate is a YYYY-MM-DD date.
	KindDate
	// KindFlexDate accepts YYYY-MM-DD or MM-DD-YYYY and canonicalizes the
	// payload value to YYYY-MM-DD before the action runs.
	KindFlexDate
	// KindNumber is a JSON number (numeric strings tolerated).
	KindNumber
	// KindBool is a JSON boolean.
	KindBool
	// KindPattern is a string matching an anchored regular expression.
	KindPattern
	// KindCron is a standard 5-field cron expression.
	KindCron
)

// Field declares the validation contract of one payload field.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	// KindEnum
	Enum []string
	// KindPattern
	Pattern *regexp.Regexp
	Hint    string
	// KindNumber bounds; nil means unbounded.
	Min         *float64
	Max         *float64
	NonNegative bool
	Positive    bool
	// KindDate / KindFlexDate
	AllowFuture bool
}

// Reference declares a referential-integrity edge: the payload field holds an
// ID that must exist in Table. Optional references are only checked when the
// field is present.
type Reference struct {
	Field    string
	Table    string
	Label    string
	Optional bool
}

// UniqueRule declares a global uniqueness constraint within a table.
type UniqueRule struct {
	Table        string
	RecordField  string
	PayloadField string
	Fold         bool
	// Label is the message subject: "<Label> already exists".
	Label string
	// ExcludeFromField names the payload field holding the record's own ID
	// so updates do not collide with themselves.
	ExcludeFromField string
}

// TransitionRule declares the status edge an operation performs. The record
// being transitioned must be declared as a Reference on RefField. The target
// status is either fixed (Next) or read from a payload field (NextField).
type TransitionRule struct {
	RefField    string
	StatusField string
	Graph       validate.Graph
	Next        string
	NextField   string
}

// Operation is the declarative descriptor of a single tagged action.
type Operation struct {
	Tag         string
	Description string
	Required    []string
	Optional    []string
	Fields      []Field
	// CallerField names the payload field carrying the caller's user ID.
	// Empty means "user_id".
	CallerField string
	Auth        authz.Rule
	// AuthTargetField names the Reference whose resolved record is the
	// authorization target (ownership and permission clauses).
	AuthTargetField string
	Refs            []Reference
	Uniques         []UniqueRule
	Transition      *TransitionRule
	// Action is the core transformation. It prepares the delta against
	// cloned records and never mutates the snapshot itself.
	Action func(ctx *Context) (*Outcome, *domain.Failure)
}

// Tool groups the operations sharing one dispatch entry point and one
// primary ID field in the response envelope.
type Tool struct {
	Name           string
	Description    string
	PrimaryIDField string
	Operations     []Operation
}

func (t *Tool) operation(tag string) (*Operation, bool) {
	for i := range t.Operations {
		if t.Operations[i].Tag == tag {
			return &t.Operations[i], true
		}
	}
	return nil, false
}

func (t *Tool) tags() []string {
	out := make([]string, len(t.Operations))
	for i, op := range t.Operations {
		out[i] = op.Tag
	}
	return out
}

// Context is what an operation's action sees: the validated payload, the
// resolved caller and references, and the runtime's clock and minter.
type Context struct {
	Snapshot store.Snapshot
	Payload  Payload
	CallerID string
	Caller   store.Record
	Refs     map[string]store.Record
	Clock    *simclock.Clock
	Minter   *minting.Minter

	next string
}

// Str reads a payload field as a string (numbers are rendered).
func (c *Context) Str(field string) string {
	v, ok := c.Payload[field]
	if !ok || v == nil {
		return ""
	}
	s, _ := validate.String(v)
	return s
}

// Num reads a payload field as a float64; zero when absent or non-numeric.
// Fields that matter are validated as KindNumber before actions run.
func (c *Context) Num(field string) float64 {
	v, ok := c.Payload[field]
	if !ok || v == nil {
		return 0
	}
	n, fail := validate.Number(v, field)
	if fail != nil {
		return 0
	}
	return n
}

// Bool reads a payload field as a boolean.
func (c *Context) Bool(field string) bool {
	b, _ := c.Payload[field].(bool)
	return b
}

// Has reports whether a payload field is present and non-null.
func (c *Context) Has(field string) bool {
	v, ok := c.Payload[field]
	return ok && v != nil
}

// Ref returns the record resolved for a declared reference field.
func (c *Context) Ref(field string) store.Record {
	return c.Refs[field]
}

// Next returns the transition target status checked by the pipeline.
func (c *Context) Next() string { return c.next }

// Mint returns the next ID for a table.
func (c *Context) Mint(table string) string {
	return c.Minter.Mint(c.Snapshot, table)
}

// Stamp returns the simulated timestamp.
func (c *Context) Stamp() string { return c.Clock.Stamp() }

// Modified clones a record and applies changes plus an updated_at stamp.
func (c *Context) Modified(rec store.Record, changes map[string]any) store.Record {
	out := store.CloneRecord(rec)
	for k, v := range changes {
		out[k] = v
	}
	out["updated_at"] = c.Stamp()
	return out
}

// Write is one prepared record put.
type Write struct {
	Table  string
	ID     string
	Record store.Record
}

// Delete is one prepared record removal (detached entities only, e.g.
// permission rows).
type Delete struct {
	Table string
	ID    string
}

// Outcome is the delta an action hands back for committing. Exactly one
// audit entry per mutated primary entity is the norm; the interpreter
// appends them after applying writes and deletes.
type Outcome struct {
	PrimaryID string
	Message   string
	Extra     map[string]any
	Writes    []Write
	Deletes   []Delete
	Audit     []audit.Entry
}
