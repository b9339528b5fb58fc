package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
)

// Load loads the engine configuration. Missing keys keep their defaults.
// Search order: customPath -> ~/.tomb/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func Load(customPath string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("engine.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultEngineConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/engine.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultEngineConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tomb", "configs", filename)
}

// Validate replaces out-of-range values with their defaults and returns a
// note for each one it fixed.
func (c *EngineConfig) Validate() []string {
	def := DefaultEngineConfig()
	var fixed []string
	fix := func(name string, bad bool, reset func()) {
		if bad {
			reset()
			fixed = append(fixed, name)
		}
	}

	fix("tick.logic_rate", c.Tick.LogicRate <= 0, func() { c.Tick.LogicRate = def.Tick.LogicRate })
	fix("tick.render_rate", c.Tick.RenderRate <= 0, func() { c.Tick.RenderRate = def.Tick.RenderRate })

	fix("interpolation.camera_shift", c.Interpolation.CameraShift <= 0, func() { c.Interpolation.CameraShift = def.Interpolation.CameraShift })
	fix("interpolation.camera_position", c.Interpolation.CameraPos <= 0, func() { c.Interpolation.CameraPos = def.Interpolation.CameraPos })
	fix("interpolation.item_position", c.Interpolation.ItemPos <= 0, func() { c.Interpolation.ItemPos = def.Interpolation.ItemPos })
	fix("interpolation.effect_position", c.Interpolation.EffectPos <= 0, func() { c.Interpolation.EffectPos = def.Interpolation.EffectPos })
	fix("interpolation.hair", c.Interpolation.Hair <= 0, func() { c.Interpolation.Hair = def.Interpolation.Hair })
	fix("interpolation.rotation_cone", c.Interpolation.RotCone <= 0, func() { c.Interpolation.RotCone = def.Interpolation.RotCone })

	fix("camera.chase_speed", c.Camera.ChaseSpeed <= 0, func() { c.Camera.ChaseSpeed = def.Camera.ChaseSpeed })
	fix("camera.combat_speed", c.Camera.CombatSpeed <= 0, func() { c.Camera.CombatSpeed = def.Camera.CombatSpeed })
	fix("camera.look_speed", c.Camera.LookSpeed <= 0, func() { c.Camera.LookSpeed = def.Camera.LookSpeed })
	fix("camera.fixed_speed", c.Camera.FixedSpeed <= 0, func() { c.Camera.FixedSpeed = def.Camera.FixedSpeed })
	fix("camera.chase_distance", c.Camera.ChaseDistance <= 0, func() { c.Camera.ChaseDistance = def.Camera.ChaseDistance })

	fix("pools.headroom", c.Pools.Headroom < 0, func() { c.Pools.Headroom = def.Pools.Headroom })
	fix("pools.effect_capacity", c.Pools.EffectCapacity <= 0, func() { c.Pools.EffectCapacity = def.Pools.EffectCapacity })
	fix("pools.ai_slots", c.Pools.AISlots <= 0, func() { c.Pools.AISlots = def.Pools.AISlots })
	fix("pathing.budget", c.Pathing.Budget <= 0, func() { c.Pathing.Budget = def.Pathing.Budget })

	_, err := log.ParseLevel(c.Log.Level)
	fix("log.level", err != nil, func() { c.Log.Level = def.Log.Level })
	fix("sentry.sample_rate", c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1, func() { c.Sentry.SampleRate = def.Sentry.SampleRate })

	return fixed
}

// LogLevel returns the parsed log level, info when it does not parse.
func (c EngineConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// EngineOptions converts the configuration into world options.
func (c EngineConfig) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Runtime = core.RuntimeConfig{
		TickRate:    c.Tick.LogicRate,
		RenderRate:  c.Tick.RenderRate,
		Seed:        c.Tick.Seed,
		Interpolate: c.Tick.Interpolate,
	}
	opts.Thresholds = c.Interpolation
	opts.Camera = c.Camera
	opts.Headroom = c.Pools.Headroom
	opts.EffectCapacity = c.Pools.EffectCapacity
	opts.AISlots = c.Pools.AISlots
	opts.PathBudget = c.Pathing.Budget
	return opts
}
