// Package config provides YAML-based engine configuration loading.
package config

import (
	"github.com/vovakirdan/tomb-engine/internal/camera"
	"github.com/vovakirdan/tomb-engine/internal/interp"
)

// EngineConfig contains all configuration for the engine and its tools.
type EngineConfig struct {
	Tick          TickConfig        `yaml:"tick"`
	Interpolation interp.Thresholds `yaml:"interpolation"`
	Camera        camera.Config     `yaml:"camera"`
	Pools         PoolsConfig       `yaml:"pools"`
	Pathing       PathingConfig     `yaml:"pathing"`
	Log           LogConfig         `yaml:"log"`
	Sentry        SentryConfig      `yaml:"sentry"`
	Paths         PathsConfig       `yaml:"paths"`
}

// TickConfig defines the simulation and presentation rates.
type TickConfig struct {
	LogicRate   int   `yaml:"logic_rate"`  // Simulation ticks per second
	RenderRate  int   `yaml:"render_rate"` // Presentation frames per second
	Interpolate bool  `yaml:"interpolate"`
	Seed        int32 `yaml:"seed"`
}

// PoolsConfig sizes the entity arenas.
type PoolsConfig struct {
	Headroom       int `yaml:"headroom"`        // Dynamic item slots above the level items
	EffectCapacity int `yaml:"effect_capacity"` // Effect arena size
	AISlots        int `yaml:"ai_slots"`        // Creatures holding a LOT at once
}

// PathingConfig bounds the box search.
type PathingConfig struct {
	Budget int `yaml:"budget"` // Box expansions per creature per tick
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// SentryConfig defines fault reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string  `yaml:"dsn"`
	Environment string  `yaml:"environment"`
	SampleRate  float64 `yaml:"sample_rate"`
}

// PathsConfig locates data on disk.
type PathsConfig struct {
	DataRoot string `yaml:"data_root"`
	SaveDB   string `yaml:"save_db"`
}
