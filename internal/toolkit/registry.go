package toolkit

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"agentbench/internal/domain"
)

// Registry holds handlers keyed by tool name. The harness uses it to
// enumerate get_info definitions for the agent and to dispatch calls.
type Registry struct {
	handlers map[string]Handler
	order    []string
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register adds a handler. It rejects nil handlers and duplicate names, and
// compiles the handler's advertised parameter schema so a descriptor that
// yields an invalid JSON Schema fails at wiring time, not mid-benchmark.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("handler must not be nil")
	}
	name := h.Name()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	params := h.Info().Function.Parameters
	if _, err := jsonschema.CompileString(name+".json", string(params)); err != nil {
		return fmt.Errorf("tool %q advertises an invalid schema: %w", name, err)
	}
	r.handlers[name] = h
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers and panics on error; for static wiring at startup.
func (r *Registry) MustRegister(h Handler) {
	if err := r.Register(h); err != nil {
		panic(err)
	}
}

// Get returns the handler with the given name.
func (r *Registry) Get(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %q", name)
	}
	return h, nil
}

// List returns all handlers in registration order.
func (r *Registry) List() []Handler {
	out := make([]Handler, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.handlers[name])
	}
	return out
}

// Infos returns the get_info definition of every registered tool, in
// registration order, suitable for an agent's function-calling API.
func (r *Registry) Infos() []domain.ToolInfo {
	out := make([]domain.ToolInfo, 0, len(r.order))
	for _, h := range r.List() {
		out = append(out, h.Info())
	}
	return out
}
