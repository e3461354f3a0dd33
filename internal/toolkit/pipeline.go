package toolkit

import (
	"strings"

	"github.com/robfig/cron/v3"

	"agentbench/internal/authz"
	"agentbench/internal/domain"
	"agentbench/internal/store"
	"agentbench/internal/validate"
)

// Handler is the callable surface the harness sees: one named tool taking a
// single JSON object and returning a JSON-encoded envelope. Mirrors the
// get_info/invoke pairing of function-calling agents.
type Handler interface {
	Name() string
	Description() string
	Info() domain.ToolInfo
	Invoke(snap store.Snapshot, payload map[string]any) string
}

// Bind wires a tool descriptor to a runtime, producing an invokable handler.
func Bind(tool *Tool, rt *Runtime) Handler {
	return &boundTool{tool: tool, rt: rt}
}

type boundTool struct {
	tool *Tool
	rt   *Runtime
}

func (b *boundTool) Name() string        { return b.tool.Name }
func (b *boundTool) Description() string { return b.tool.Description }

func (b *boundTool) Info() domain.ToolInfo { return b.tool.Info() }

// Invoke runs the full pipeline: dispatch, shape, syntax, semantics,
// referential, authorization, uniqueness, transition, action, commit. The
// first failing check short-circuits; a failed call leaves the snapshot
// byte-identical. No panic escapes.
func (b *boundTool) Invoke(snap store.Snapshot, payload map[string]any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			b.rt.log().Error("tool panicked", "tool", b.tool.Name, "panic", r)
			out = domain.Fail(b.tool.PrimaryIDField, domain.Invalidf("Internal error while processing the request")).Encode()
		}
	}()

	if snap == nil {
		return b.fail(domain.Invalidf("Invalid database snapshot"))
	}
	p := Payload(payload)
	if p == nil {
		p = Payload{}
	}

	tag := strOrEmpty(p["operation_type"])
	op, ok := b.tool.operation(tag)
	if !ok {
		return b.fail(domain.Invalidf("Invalid operation_type: %s. Valid operations: %s",
			tag, strings.Join(b.tool.tags(), ", ")))
	}

	ctx := &Context{
		Snapshot: snap,
		Payload:  p,
		Refs:     map[string]store.Record{},
		Clock:    b.rt.Clock,
		Minter:   b.rt.Minter,
	}

	if fail := b.run(op, ctx); fail != nil {
		return b.fail(fail)
	}

	outcome, fail := op.Action(ctx)
	if fail != nil {
		return b.fail(fail)
	}
	b.commit(ctx, outcome)

	env := domain.OK(b.tool.PrimaryIDField, outcome.PrimaryID, outcome.Message)
	env.Extra = outcome.Extra
	return env.Encode()
}

// run executes every declared check in pipeline order, leaving resolved
// state on the context for the action.
func (b *boundTool) run(op *Operation, ctx *Context) *domain.Failure {
	// Shape.
	if fail := validate.Required(ctx.Payload, op.Required); fail != nil {
		return fail
	}
	// Syntax.
	for i := range op.Fields {
		if fail := b.checkSyntax(&op.Fields[i], ctx); fail != nil {
			return fail
		}
	}
	// Semantics.
	for i := range op.Fields {
		if fail := b.checkSemantics(&op.Fields[i], ctx); fail != nil {
			return fail
		}
	}
	// Referential.
	for _, ref := range op.Refs {
		id := ctx.Str(ref.Field)
		if id == "" {
			if ref.Optional {
				continue
			}
			return domain.Haltf("%s not found", ref.Label)
		}
		if fail := validate.Exists(ctx.Snapshot, ref.Table, id, ref.Label); fail != nil {
			return fail
		}
		rec, _ := ctx.Snapshot.Lookup(ref.Table, id)
		ctx.Refs[ref.Field] = rec
	}
	// Authorization.
	callerField := op.CallerField
	if callerField == "" {
		callerField = "user_id"
	}
	ctx.CallerID = ctx.Str(callerField)
	var target store.Record
	var targetID string
	if op.AuthTargetField != "" {
		target = ctx.Refs[op.AuthTargetField]
		targetID = ctx.Str(op.AuthTargetField)
	}
	caller, fail := authz.Authorize(ctx.Snapshot, ctx.CallerID, op.Auth, targetID, target)
	if fail != nil {
		return fail
	}
	ctx.Caller = caller
	// Uniqueness.
	for _, u := range op.Uniques {
		value := ctx.Str(u.PayloadField)
		if value == "" {
			continue
		}
		exclude := ""
		if u.ExcludeFromField != "" {
			exclude = ctx.Str(u.ExcludeFromField)
		}
		if fail := validate.Unique(ctx.Snapshot, u.Table, u.RecordField, value, u.Fold, exclude, u.Label); fail != nil {
			return fail
		}
	}
	// Transition.
	if tr := op.Transition; tr != nil {
		rec := ctx.Refs[tr.RefField]
		if rec == nil {
			return domain.Haltf("Record for %s not found", tr.RefField)
		}
		current, _ := rec[tr.StatusField].(string)
		if current == "" {
			// Null status (e.g. non-verification documents) has no edges.
			current = "none"
		}
		next := tr.Next
		if next == "" {
			next = ctx.Str(tr.NextField)
		}
		if fail := validate.Transition(current, next, tr.Graph); fail != nil {
			return fail
		}
		ctx.next = next
	}
	return nil
}

func (b *boundTool) checkSyntax(f *Field, ctx *Context) *domain.Failure {
	v, ok := ctx.Payload[f.Name]
	if !ok || v == nil {
		return nil
	}
	switch f.Kind {
	case KindString:
		if _, ok := validate.String(v); !ok {
			return domain.Invalidf("Invalid %s: must be a string", f.Name)
		}
	case KindEnum:
		s, ok := validate.String(v)
		if !ok {
			return domain.Invalidf("Invalid %s: must be a string", f.Name)
		}
		return validate.Enum(s, f.Name, f.Enum)
	case KindPattern:
		s, ok := v.(string)
		if !ok {
			return domain.Invalidf("Invalid %s: must be a string", f.Name)
		}
		return validate.Match(s, f.Name, f.Pattern, f.Hint)
	case KindDate:
		s, ok := v.(string)
		if !ok {
			return domain.Invalidf("Invalid %s: expected YYYY-MM-DD", f.Name)
		}
		// Format only here; the future/past rule is semantic.
		if _, fail := validate.DateYMD(s, f.Name, true, ctx.Clock); fail != nil {
			return fail
		}
	case KindFlexDate:
		s, ok := v.(string)
		if !ok {
			return domain.Invalidf("Invalid %s: expected YYYY-MM-DD or MM-DD-YYYY", f.Name)
		}
		canonical, fail := validate.DateFlexible(s, f.Name, true, ctx.Clock)
		if fail != nil {
			return fail
		}
		ctx.Payload[f.Name] = canonical
	case KindNumber:
		if _, fail := validate.Number(v, f.Name); fail != nil {
			return fail
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return domain.Invalidf("Invalid %s: must be a boolean", f.Name)
		}
	case KindCron:
		s, ok := v.(string)
		if !ok {
			return domain.Invalidf("Invalid %s: must be a string", f.Name)
		}
		if _, err := cron.ParseStandard(s); err != nil {
			return domain.Invalidf("Invalid %s: not a valid cron expression", f.Name)
		}
	}
	return nil
}

func (b *boundTool) checkSemantics(f *Field, ctx *Context) *domain.Failure {
	v, ok := ctx.Payload[f.Name]
	if !ok || v == nil {
		return nil
	}
	switch f.Kind {
	case KindNumber:
		n, fail := validate.Number(v, f.Name)
		if fail != nil {
			return fail
		}
		if f.Positive {
			if fail := validate.Positive(n, f.Name); fail != nil {
				return fail
			}
		} else if f.NonNegative {
			if fail := validate.NonNegative(n, f.Name); fail != nil {
				return fail
			}
		}
		switch {
		case f.Min != nil && f.Max != nil:
			return validate.Range(n, *f.Min, *f.Max, f.Name)
		case f.Min != nil:
			return validate.AtLeast(n, *f.Min, f.Name)
		case f.Max != nil:
			return validate.AtMost(n, *f.Max, f.Name)
		}
	case KindDate, KindFlexDate:
		if !f.AllowFuture {
			s, _ := ctx.Payload[f.Name].(string)
			if _, fail := validate.DateYMD(s, f.Name, false, ctx.Clock); fail != nil {
				return fail
			}
		}
	}
	return nil
}

// commit applies the prepared delta and appends audit rows. All validation
// has passed; from here the operation completes in full.
func (b *boundTool) commit(ctx *Context, outcome *Outcome) {
	for _, w := range outcome.Writes {
		ctx.Snapshot.Put(w.Table, w.ID, w.Record)
	}
	for _, d := range outcome.Deletes {
		ctx.Snapshot.Delete(d.Table, d.ID)
	}
	for _, entry := range outcome.Audit {
		if entry.UserID == "" {
			entry.UserID = ctx.CallerID
		}
		b.rt.Audit.Append(ctx.Snapshot, entry)
	}
}

func (b *boundTool) fail(f *domain.Failure) string {
	return domain.Fail(b.tool.PrimaryIDField, f).Encode()
}

func strOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
