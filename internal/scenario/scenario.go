// Package scenario replays YAML-scripted tool-call sequences against a
// registry: an initial snapshot, an ordered call list, and per-call
// expectations. It is harness-side tooling for reproducing benchmark
// episodes, not part of the tool core.
package scenario

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"agentbench/internal/store"
	"agentbench/internal/toolkit"
)

// Scenario is one replayable episode.
type Scenario struct {
	Name     string                               `yaml:"name"`
	Snapshot map[string]map[string]map[string]any `yaml:"snapshot"`
	Calls    []Call                               `yaml:"calls"`
}

// Call is one scripted tool invocation with optional expectations.
type Call struct {
	Tool    string         `yaml:"tool"`
	Payload map[string]any `yaml:"payload"`
	Expect  Expect         `yaml:"expect"`
}

// Expect describes what the envelope of a call must look like. Nil Success
// means "don't care".
type Expect struct {
	Success         *bool  `yaml:"success"`
	MessageContains string `yaml:"message_contains"`
}

// Result is the outcome of a full run.
type Result struct {
	RunID    string
	Scenario string
	Steps    []StepResult
	Passed   bool
	// Snapshot is the database state after the last call.
	Snapshot store.Snapshot
}

// StepResult records one call's envelope and expectation verdict.
type StepResult struct {
	Tool     string
	Response map[string]any
	OK       bool
	Reason   string
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario load: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals a scenario and normalizes all numeric values to float64
// so payloads and snapshot records carry JSON types.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario parse: %w", err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario parse: name is required")
	}
	for i := range sc.Calls {
		if sc.Calls[i].Tool == "" {
			return nil, fmt.Errorf("scenario parse: call %d has no tool", i+1)
		}
		sc.Calls[i].Payload = normalizeMap(sc.Calls[i].Payload)
	}
	for _, table := range sc.Snapshot {
		for id, rec := range table {
			table[id] = normalizeMap(rec)
		}
	}
	return &sc, nil
}

// Run replays the scenario's calls in order against the registry. The run
// carries a uuid tag through every log line. A step whose expectation fails
// does not stop the run; the remaining calls still execute so the full
// episode is visible.
func Run(reg *toolkit.Registry, sc *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	snap := buildSnapshot(sc.Snapshot)
	result := &Result{
		RunID:    uuid.NewString(),
		Scenario: sc.Name,
		Passed:   true,
		Snapshot: snap,
	}
	log := logger.With("run_id", result.RunID, "scenario", sc.Name)
	log.Info("scenario start", "calls", len(sc.Calls))

	for i, call := range sc.Calls {
		handler, err := reg.Get(call.Tool)
		if err != nil {
			return nil, fmt.Errorf("scenario call %d: %w", i+1, err)
		}
		raw := handler.Invoke(snap, call.Payload)
		var response map[string]any
		if err := json.Unmarshal([]byte(raw), &response); err != nil {
			return nil, fmt.Errorf("scenario call %d: envelope is not JSON: %w", i+1, err)
		}

		step := StepResult{Tool: call.Tool, Response: response, OK: true}
		if reason := check(call.Expect, response); reason != "" {
			step.OK = false
			step.Reason = reason
			result.Passed = false
		}
		result.Steps = append(result.Steps, step)
		log.Info("scenario step",
			"step", i+1, "tool", call.Tool,
			"success", response["success"], "ok", step.OK)
	}

	log.Info("scenario done", "passed", result.Passed)
	return result, nil
}

func check(expect Expect, response map[string]any) string {
	if expect.Success != nil {
		got, _ := response["success"].(bool)
		if got != *expect.Success {
			return fmt.Sprintf("expected success=%v, got %v", *expect.Success, got)
		}
	}
	if expect.MessageContains != "" {
		msg, _ := response["message"].(string)
		if !strings.Contains(msg, expect.MessageContains) {
			return fmt.Sprintf("expected message containing %q, got %q", expect.MessageContains, msg)
		}
	}
	return ""
}

func buildSnapshot(tables map[string]map[string]map[string]any) store.Snapshot {
	snap := store.Snapshot{}
	for table, rows := range tables {
		for id, rec := range rows {
			snap.Put(table, id, store.Record(rec))
		}
	}
	return snap
}

// normalizeMap rewrites yaml's integer types to float64 so values compare
// like JSON-decoded ones.
func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]any:
		return normalizeMap(t)
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		return v
	}
}
