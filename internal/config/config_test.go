package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultEngineConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte("tick:\n  logic_rate: 60\npools:\n  ai_slots: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tick.LogicRate != 60 {
		t.Errorf("Tick.LogicRate = %d, expected 60", cfg.Tick.LogicRate)
	}
	if cfg.Pools.AISlots != 8 {
		t.Errorf("Pools.AISlots = %d, expected 8", cfg.Pools.AISlots)
	}
	if cfg.Pathing.Budget != DefaultEngineConfig().Pathing.Budget {
		t.Errorf("Pathing.Budget = %d, expected the default", cfg.Pathing.Budget)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("tick: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad} {
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q) should fail", path)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
		fixed  string
		check  func(EngineConfig) bool
	}{
		{"zero tick rate", func(c *EngineConfig) { c.Tick.LogicRate = 0 }, "tick.logic_rate",
			func(c EngineConfig) bool { return c.Tick.LogicRate == 30 }},
		{"negative budget", func(c *EngineConfig) { c.Pathing.Budget = -3 }, "pathing.budget",
			func(c EngineConfig) bool { return c.Pathing.Budget == 5 }},
		{"zero camera speed", func(c *EngineConfig) { c.Camera.ChaseSpeed = 0 }, "camera.chase_speed",
			func(c EngineConfig) bool { return c.Camera.ChaseSpeed == 10 }},
		{"unknown log level", func(c *EngineConfig) { c.Log.Level = "loud" }, "log.level",
			func(c EngineConfig) bool { return c.Log.Level == "info" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)
			fixed := cfg.Validate()
			if len(fixed) != 1 || fixed[0] != tt.fixed {
				t.Errorf("Validate() = %v, expected [%s]", fixed, tt.fixed)
			}
			if !tt.check(cfg) {
				t.Errorf("Validate() did not reset %s", tt.fixed)
			}
		})
	}

	cfg := DefaultEngineConfig()
	if fixed := cfg.Validate(); len(fixed) != 0 {
		t.Errorf("Validate() on defaults = %v, expected none", fixed)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Log.Level = "DEBUG"
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, expected debug", cfg.LogLevel())
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Tick.Seed = 99
	cfg.Pools.AISlots = 3

	opts := cfg.EngineOptions()
	if opts.Runtime.Seed != 99 {
		t.Errorf("Runtime.Seed = %d, expected 99", opts.Runtime.Seed)
	}
	if opts.AISlots != 3 {
		t.Errorf("AISlots = %d, expected 3", opts.AISlots)
	}
	if opts.Thresholds != cfg.Interpolation {
		t.Errorf("Thresholds = %+v, expected %+v", opts.Thresholds, cfg.Interpolation)
	}
}
