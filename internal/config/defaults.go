package config

import (
	_ "embed"

	"github.com/vovakirdan/tomb-engine/internal/camera"
	"github.com/vovakirdan/tomb-engine/internal/interp"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Tick: TickConfig{
			LogicRate:   30,
			RenderRate:  60,
			Interpolate: true,
		},
		Interpolation: interp.DefaultThresholds(),
		Camera:        camera.DefaultConfig(),
		Pools: PoolsConfig{
			Headroom:       256,
			EffectCapacity: 100,
			AISlots:        5,
		},
		Pathing: PathingConfig{
			Budget: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Sentry: SentryConfig{
			Environment: "development",
			SampleRate:  1.0,
		},
		Paths: PathsConfig{
			DataRoot: "~/.tomb",
			SaveDB:   "~/.tomb/saves.db",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultEngineYAML
}
