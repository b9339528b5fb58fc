package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/platform"
	"github.com/vovakirdan/tomb-engine/internal/savegame"
	"github.com/vovakirdan/tomb-engine/internal/storage"
)

var (
	flagTicks    int
	flagHold     string
	flagDump     string
	flagSaveSlot int
	flagNoRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run [level]",
	Short: "Run a level headless",
	Long: `Run a level for a fixed number of ticks without presentation and print
the world's determinism hash. Two runs with the same level, seed and input
print the same hash.

The level is a YAML file path, a level id under the data root, or "demo"
(the default).

Examples:
  tomb run --ticks 300
  tomb run --seed 42 --hold forward,action
  tomb run levels/hall.yaml --dump frames.msgpack
  tomb run --save-slot 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 300, "Number of ticks to run")
	runCmd.Flags().StringVar(&flagHold, "hold", "", "Comma-separated actions held for the whole run")
	runCmd.Flags().StringVar(&flagDump, "dump", "", "Write committed frames as msgpack to this file")
	runCmd.Flags().IntVar(&flagSaveSlot, "save-slot", 0, "Store a save in this slot when the run ends (0 = none)")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in the save database")
}

// parseHold parses a comma-separated action list into an input frame.
func parseHold(list string) (core.InputFrame, error) {
	in := core.NewInputFrame()
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		a, ok := core.ParseAction(name)
		if !ok {
			return in, fmt.Errorf("unknown action %q", name)
		}
		in.Set(a)
	}
	return in, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	in, err := parseHold(flagHold)
	if err != nil {
		return err
	}
	lvl, err := e.loadLevel(args)
	if err != nil {
		return err
	}
	w, err := lvl.NewWorld(e.options())
	if err != nil {
		return fmt.Errorf("building level %s: %w", lvl.ID, err)
	}

	var dump bytes.Buffer
	var enc *engine.FrameEncoder
	if flagDump != "" {
		enc = engine.NewFrameEncoder(&dump)
	}

	for range flagTicks {
		w.Tick(in)
		if enc != nil {
			if err := enc.Encode(w.Frame()); err != nil {
				return fmt.Errorf("encoding frame: %w", err)
			}
		}
		if w.LevelComplete() {
			e.logger.Info("level complete", "tick", w.Ticks())
			break
		}
	}

	hash := fmt.Sprintf("%016x", w.Hash())
	e.logger.Info("run finished", "level", lvl.Name, "ticks", w.Ticks(), "faults", w.Faults())
	fmt.Println(hash)

	if enc != nil {
		if err := platform.WriteFile(flagDump, dump.Bytes()); err != nil {
			return err
		}
		e.logger.Info("frames written", "path", flagDump, "bytes", dump.Len())
	}

	if flagSaveSlot == 0 && flagNoRecord {
		return nil
	}
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagSaveSlot != 0 {
		data := saveOrDie(e.logger, w)
		err := store.PutSlot(storage.Slot{
			Slot:      flagSaveSlot,
			Level:     w.Level().Number,
			LevelName: lvl.ID,
			Tick:      w.Ticks(),
			Data:      data,
		})
		if err != nil {
			return err
		}
		e.logger.Info("saved", "slot", flagSaveSlot, "bytes", len(data))
	}

	if !flagNoRecord {
		_, err := store.RecordRun(storage.RunResult{
			LevelName: lvl.ID,
			Seed:      e.cfg.Tick.Seed,
			Ticks:     w.Ticks(),
			Hash:      hash,
			Faults:    w.Faults(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// saveOrDie encodes a save image. An oversized image is fatal.
func saveOrDie(logger *log.Logger, w *engine.World) (data []byte) {
	defer func() {
		if r := recover(); r != nil {
			if oe, ok := r.(*savegame.OverflowError); ok {
				logger.Fatal("save failed", "err", oe)
			}
			panic(r)
		}
	}()
	return savegame.Save(w)
}
