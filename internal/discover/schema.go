package discover

import (
	"encoding/json"
	"strings"

	invopop "github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"agentbench/internal/domain"
)

// Info derives the OpenAI-style function schema from the entity registry.
// Filter keys are advertised per entity type in the filters description so
// agents know the whitelist before calling.
func (t *Tool) Info() domain.ToolInfo {
	params := &invopop.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *invopop.Schema](),
		Required:   []string{"entity_type"},
	}

	types := make([]any, len(t.order))
	var keyDocs []string
	for i, et := range t.order {
		types[i] = et
		keyDocs = append(keyDocs, et+": "+strings.Join(t.entities[et].Filters, ", "))
	}
	params.Properties.Set("entity_type", &invopop.Schema{
		Type:        "string",
		Enum:        types,
		Description: "The entity family to query",
	})
	params.Properties.Set("filters", &invopop.Schema{
		Type: "object",
		Description: "Optional filters. Plain keys match exactly (strings fold case); " +
			"<field>_from/<field>_to bound YYYY-MM-DD dates inclusively; " +
			"<field>_min/<field>_max bound numbers inclusively. Valid keys per entity type: " +
			strings.Join(keyDocs, "; "),
	})

	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		data = []byte(`{"type": "object"}`)
	}
	return domain.ToolInfo{
		Type: "function",
		Function: domain.FunctionInfo{
			Name:        t.name,
			Description: t.description,
			Parameters:  json.RawMessage(data),
		},
	}
}
