// tomb runs levels of the tomb engine headless or in a terminal viewer.
//
// Usage:
//
//	tomb objects                 - List registered object types
//	tomb run [level]             - Run a level headless and print its hash
//	tomb watch [level]           - Watch and steer a level in the terminal
//	tomb serve                   - Serve the viewer over SSH
//	tomb saves list|show|delete|load
//
// Global flags:
//
//	--config <path>     - Engine config YAML (default: search ~/.tomb/configs, ./configs)
//	--log-level <lvl>   - Override the configured log level
//	--db <path>         - Save database path (default: from config)
//	--seed <value>      - RNG seed for reproducible runs
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tomb-engine/internal/config"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/levels"
	"github.com/vovakirdan/tomb-engine/internal/platform"
	"github.com/vovakirdan/tomb-engine/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagDBPath   string
	flagSeed     int32
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tomb",
	Short: "Tomb engine - level simulation in your terminal",
	Long: `tomb loads YAML level descriptions and runs them on the tomb engine's
fixed-step simulation.

Available commands:
  objects  - Show all registered object types
  run      - Run a level headless and print the determinism hash
  watch    - Watch and steer a level in the terminal
  serve    - Start SSH server for remote viewers
  saves    - Manage save slots

Examples:
  tomb objects
  tomb run --ticks 300 --seed 7
  tomb run levels/hall.yaml --dump frames.msgpack
  tomb watch
  tomb serve --ssh :23235
  tomb saves list`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database")
	rootCmd.PersistentFlags().Int32Var(&flagSeed, "seed", 0, "RNG seed (0 = configured seed)")

	rootCmd.AddCommand(objectsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
}

// env is everything a command needs to build worlds.
type env struct {
	cfg    config.EngineConfig
	logger *log.Logger
	hub    *sentry.Hub
}

// setup loads the configuration and creates the logger and the fault hub.
// The returned func flushes pending fault reports.
func setup() (*env, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagSeed != 0 {
		cfg.Tick.Seed = flagSeed
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tomb",
	})
	for _, name := range cfg.Validate() {
		logger.Warn("config value out of range, using default", "key", name)
	}
	logger.SetLevel(cfg.LogLevel())

	e := &env{cfg: cfg, logger: logger}
	flush := func() {}
	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		})
		if err != nil {
			logger.Warn("fault reporting disabled", "err", err)
		} else {
			e.hub = sentry.CurrentHub().Clone()
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}
	return e, flush, nil
}

// options returns world options with the command's logger and hub.
func (e *env) options() engine.Options {
	opts := e.cfg.EngineOptions()
	opts.Logger = e.logger
	opts.Sentry = e.hub
	return opts
}

// loadLevel resolves a level argument. No argument means the built-in demo;
// an existing file is loaded directly; anything else is looked up by id
// under the configured data root.
func (e *env) loadLevel(args []string) (levels.Level, error) {
	if len(args) == 0 || args[0] == "demo" {
		return levels.Demo(), nil
	}
	arg := args[0]
	if _, err := os.Stat(arg); err == nil {
		return levels.NewLoader(filepath.Dir(arg)).LoadFile(arg)
	}

	root, err := platform.GetFullPath(filepath.Join(e.cfg.Paths.DataRoot, "levels"))
	if err != nil {
		return levels.Level{}, err
	}
	return levels.NewLoader(root).LoadByID(arg)
}

// openStore opens the save database from --db or the config.
func (e *env) openStore() (*storage.Store, error) {
	path := flagDBPath
	if path == "" {
		path = e.cfg.Paths.SaveDB
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening save database: %w", err)
	}
	return store, nil
}
