package toolkit

import (
	"encoding/json"
	"fmt"
	"strings"

	invopop "github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"agentbench/internal/domain"
)

// Info derives the OpenAI-style function schema from the tool's operation
// descriptors. Because the same descriptors drive the runtime pipeline, the
// advertised schema cannot diverge from actual behavior.
func (t *Tool) Info() domain.ToolInfo {
	params := &invopop.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *invopop.Schema](),
		Required:   []string{"operation_type"},
	}

	tags := make([]any, len(t.Operations))
	descs := make([]string, len(t.Operations))
	for i, op := range t.Operations {
		tags[i] = op.Tag
		descs[i] = fmt.Sprintf("%s (%s)", op.Tag, op.Description)
	}
	params.Properties.Set("operation_type", &invopop.Schema{
		Type:        "string",
		Enum:        tags,
		Description: "The operation to perform: " + strings.Join(descs, "; "),
	})

	for _, op := range t.Operations {
		for i := range op.Fields {
			f := &op.Fields[i]
			if _, present := params.Properties.Get(f.Name); present {
				continue
			}
			params.Properties.Set(f.Name, fieldSchema(f, t.usage(f.Name)))
		}
	}

	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		// Descriptor values marshal by construction; keep a valid fallback.
		data = []byte(`{"type": "object"}`)
	}
	return domain.ToolInfo{
		Type: "function",
		Function: domain.FunctionInfo{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  json.RawMessage(data),
		},
	}
}

// usage summarizes which operations require and which merely accept a field.
func (t *Tool) usage(field string) string {
	var required, optional []string
	for _, op := range t.Operations {
		switch {
		case contains(op.Required, field):
			required = append(required, op.Tag)
		case contains(op.Optional, field):
			optional = append(optional, op.Tag)
		}
	}
	var parts []string
	if len(required) > 0 {
		parts = append(parts, "Required for: "+strings.Join(required, ", "))
	}
	if len(optional) > 0 {
		parts = append(parts, "Optional for: "+strings.Join(optional, ", "))
	}
	return strings.Join(parts, ". ")
}

func fieldSchema(f *Field, usage string) *invopop.Schema {
	s := &invopop.Schema{Description: joinSentences(f.Description, usage)}
	switch f.Kind {
	case KindEnum:
		s.Type = "string"
		s.Enum = make([]any, len(f.Enum))
		for i, e := range f.Enum {
			s.Enum[i] = e
		}
	case KindDate:
		s.Type = "string"
		s.Description = joinSentences(s.Description, "Format: YYYY-MM-DD")
	case KindFlexDate:
		s.Type = "string"
		s.Description = joinSentences(s.Description, "Format: YYYY-MM-DD or MM-DD-YYYY")
	case KindNumber:
		s.Type = "number"
	case KindBool:
		s.Type = "boolean"
	case KindPattern:
		s.Type = "string"
		s.Pattern = f.Pattern.String()
	case KindCron:
		s.Type = "string"
		s.Description = joinSentences(s.Description, "A standard 5-field cron expression")
	default:
		s.Type = "string"
	}
	return s
}

func joinSentences(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ". " + b
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
