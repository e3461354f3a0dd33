// Package config loads and writes the agentbench.json runtime configuration:
// the simulated instant, per-table start-ID overrides, logging, and the
// optional archive database URL.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// marshalIndent and writeFile are used by WriteDefault and Save; tests may
// replace them to force errors.
var (
	marshalIndent = json.MarshalIndent
	writeFile     = os.WriteFile
)

// Config is the full runtime configuration.
type Config struct {
	// Now overrides the simulated instant ("2006-01-02T15:04:05").
	// Empty means the built-in fixture default.
	Now string `json:"now"`
	// StartIDs overrides per-table minting start IDs.
	StartIDs map[string]int `json:"start_ids"`
	Log      LogConfig      `json:"log"`
	// DatabaseURL is the snapshot-archive target (file: or libsql: URL).
	DatabaseURL string `json:"database_url"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// WriteDefault writes a default Config to path (e.g. agentbench.json).
// Parent directories are not created.
func WriteDefault(path string) error {
	cfg := &Config{
		Now:      "",
		StartIDs: map[string]int{},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
	data, err := marshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data, 0644)
}

// Load reads path and unmarshals it. Returns an error if the file is
// missing or not valid JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	return &c, nil
}

// Save writes cfg to path as JSON, creating parent directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config save: nil config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config save mkdir: %w", err)
	}
	data, err := marshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config save marshal: %w", err)
	}
	if err := writeFile(path, data, 0644); err != nil {
		return fmt.Errorf("config save write: %w", err)
	}
	return nil
}
