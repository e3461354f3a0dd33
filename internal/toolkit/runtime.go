package toolkit

import (
	"log/slog"

	"agentbench/internal/audit"
	"agentbench/internal/minting"
	"agentbench/internal/simclock"
)

// Runtime bundles the shared collaborators every bound tool needs: the
// simulated clock, the ID minter, the audit writer, and a logger.
type Runtime struct {
	Clock  *simclock.Clock
	Minter *minting.Minter
	Audit  *audit.Writer
	logger *slog.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithClock overrides the simulated clock.
func WithClock(c *simclock.Clock) RuntimeOption {
	return func(rt *Runtime) { rt.Clock = c }
}

// WithMinter overrides the ID minter.
func WithMinter(m *minting.Minter) RuntimeOption {
	return func(rt *Runtime) { rt.Minter = m }
}

// WithLogger sets the structured logger. Nil is ignored and the default slog
// logger is used.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// NewRuntime returns a Runtime with fixture defaults, options applied, and
// an audit writer wired to the resulting clock and minter.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		Clock:  simclock.New(),
		Minter: minting.New(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.Audit = audit.New(rt.Clock, rt.Minter, audit.WithLogger(rt.logger))
	return rt
}

func (rt *Runtime) log() *slog.Logger {
	if rt.logger != nil {
		return rt.logger
	}
	return slog.Default()
}
