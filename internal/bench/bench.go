// Package bench assembles the full fixture: one runtime shared by every
// tool, and a registry holding all three domains. The CLI and the scenario
// runner both start here.
package bench

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"agentbench/internal/config"
	"agentbench/internal/hometools"
	"agentbench/internal/hrtools"
	"agentbench/internal/minting"
	"agentbench/internal/simclock"
	"agentbench/internal/toolkit"
	"agentbench/internal/wikitools"
)

// NewLogger builds a slog logger from the config. Unknown levels fall back
// to info, unknown formats to text.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// NewRuntime builds the shared runtime from the config: the simulated
// clock (optionally pinned by cfg.Now) and the minter with any start-ID
// overrides.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*toolkit.Runtime, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	clockOpts := []simclock.Option{}
	if cfg.Now != "" {
		now, err := time.Parse(simclock.TimestampLayout, cfg.Now)
		if err != nil {
			return nil, fmt.Errorf("invalid now override %q: %w", cfg.Now, err)
		}
		clockOpts = append(clockOpts, simclock.WithNow(now))
	}
	mintOpts := []minting.Option{}
	if len(cfg.StartIDs) > 0 {
		mintOpts = append(mintOpts, minting.WithStarts(cfg.StartIDs))
	}
	return toolkit.NewRuntime(
		toolkit.WithClock(simclock.New(clockOpts...)),
		toolkit.WithMinter(minting.New(mintOpts...)),
		toolkit.WithLogger(logger),
	), nil
}

// NewRegistry registers every domain's tools against the runtime.
func NewRegistry(rt *toolkit.Runtime) (*toolkit.Registry, error) {
	reg := toolkit.NewRegistry()
	if err := hrtools.Register(reg, rt); err != nil {
		return nil, fmt.Errorf("hr tools: %w", err)
	}
	if err := wikitools.Register(reg, rt); err != nil {
		return nil, fmt.Errorf("wiki tools: %w", err)
	}
	if err := hometools.Register(reg, rt); err != nil {
		return nil, fmt.Errorf("home tools: %w", err)
	}
	return reg, nil
}
