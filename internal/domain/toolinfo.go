package domain

import "encoding/json"

// ToolInfo is the OpenAI-style function schema advertised to agents via
// get_info. Parameters holds a JSON Schema object derived from the tool's
// operation descriptors, so the advertised schema and the runtime validation
// pipeline share one source of truth.
type ToolInfo struct {
	Type     string       `json:"type"`
	Function FunctionInfo `json:"function"`
}

// FunctionInfo describes one callable tool.
type FunctionInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}
