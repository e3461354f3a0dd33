package bench

import (
	"testing"

	"agentbench/internal/config"
)

func TestNewRegistry_ShouldHoldEveryDomainTool(t *testing.T) {
	rt, err := NewRuntime(nil, nil)
	if err != nil {
		t.Fatalf("runtime failed: %v", err)
	}

	reg, err := NewRegistry(rt)
	if err != nil {
		t.Fatalf("registry failed: %v", err)
	}

	// 10 HR + 5 wiki + 6 home tools.
	if got := len(reg.List()); got != 21 {
		t.Errorf("expected 21 tools, got %d", got)
	}
	for _, name := range []string{
		"administer_document_operations", "manage_wiki_pages", "run_scene",
	} {
		if _, err := reg.Get(name); err != nil {
			t.Errorf("expected %s registered: %v", name, err)
		}
	}
}

func TestNewRuntime_NowOverride_ShouldPinClock(t *testing.T) {
	cfg := &config.Config{Now: "2024-01-15T08:30:00"}

	rt, err := NewRuntime(cfg, nil)
	if err != nil {
		t.Fatalf("runtime failed: %v", err)
	}

	if rt.Clock.Stamp() != "2024-01-15T08:30:00" {
		t.Errorf("expected pinned clock, got %s", rt.Clock.Stamp())
	}
}

func TestNewRuntime_BadNowOverride_ShouldReturnError(t *testing.T) {
	if _, err := NewRuntime(&config.Config{Now: "yesterday"}, nil); err == nil {
		t.Fatal("expected error for unparseable now override, got nil")
	}
}

func TestNewRuntime_StartIDOverride_ShouldReachMinter(t *testing.T) {
	cfg := &config.Config{StartIDs: map[string]int{"documents": 500}}

	rt, err := NewRuntime(cfg, nil)
	if err != nil {
		t.Fatalf("runtime failed: %v", err)
	}

	if rt.Minter.Start("documents") != 500 {
		t.Errorf("expected override 500, got %d", rt.Minter.Start("documents"))
	}
}
