package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/levels"
	"github.com/vovakirdan/tomb-engine/internal/platform"
	"github.com/vovakirdan/tomb-engine/internal/platform/tui"
)

var (
	flagMusic   string
	flagVolume  float64
	flagNoMusic bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [level]",
	Short: "Watch and steer a level in the terminal",
	Long: `Run a level in real time and show a top-down map of the committed
frames with a table of live entities.

Controls:
  W/A/S/D, arrows  - Move and turn Lara
  Space            - Jump
  E                - Action
  1                - Draw or holster weapons
  F                - Flare
  Tab              - Follow the camera
  +/-              - Zoom
  P/Esc            - Pause
  ?                - Help
  Q/Ctrl+C         - Quit

Examples:
  tomb watch
  tomb watch levels/hall.yaml --seed 3
  tomb watch levels/hall.yaml --music theme.wav --volume 0.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagMusic, "music", "", "Wav file to loop while watching (overrides the level's music)")
	watchCmd.Flags().Float64Var(&flagVolume, "volume", 1, "Music volume from 0 to 1")
	watchCmd.Flags().BoolVar(&flagNoMusic, "no-music", false, "Do not play music")
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	lvl, err := e.loadLevel(args)
	if err != nil {
		return err
	}
	w, err := lvl.NewWorld(e.options())
	if err != nil {
		return fmt.Errorf("building level %s: %w", lvl.ID, err)
	}
	return watchWorld(e, w, lvl)
}

// musicPath picks the track for lvl: the --music flag, then the level's own.
func musicPath(lvl levels.Level) string {
	if flagNoMusic {
		return ""
	}
	if flagMusic != "" {
		return flagMusic
	}
	return lvl.Music()
}

// watchWorld runs w in a session and views it until the viewer quits.
func watchWorld(e *env, w *engine.World, lvl levels.Level) error {
	width, height := 100, 30 // Defaults
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = tw
		height = th
	}

	// The viewer owns the terminal, so the log goes to a file.
	if f, err := openLogFile(e); err == nil {
		e.logger.SetOutput(f)
		defer f.Close()
	} else {
		e.logger.SetOutput(io.Discard)
	}

	session := tui.NewSession(w, e.logger)
	if path := musicPath(lvl); path != "" {
		if m, ok := platform.OpenStream(path); ok {
			m.SetVolume(flagVolume)
			session.SetMusic(m)
		} else {
			e.logger.Warn("music not playable", "path", path)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	err := tui.Run(session, width, height)
	cancel()
	<-session.Done()
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	fmt.Printf("%016x\n", w.Hash())
	return nil
}

// openLogFile opens tomb.log under the data root for appending.
func openLogFile(e *env) (*os.File, error) {
	path, err := platform.GetFullPath(filepath.Join(e.cfg.Paths.DataRoot, "tomb.log"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
