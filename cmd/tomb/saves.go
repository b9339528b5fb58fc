package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/savegame"
	"github.com/vovakirdan/tomb-engine/internal/storage"
)

var (
	flagLoadTicks int
	flagLoadWatch bool
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long: `List, inspect, delete and load the save slots stored in the save
database.

Examples:
  tomb saves list
  tomb saves show 1
  tomb saves delete 1
  tomb saves load 1 --ticks 60
  tomb saves load 1 --watch`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots and recent runs",
	Args:  cobra.NoArgs,
	RunE:  runSavesList,
}

var savesShowCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Decode a save slot and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesShow,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

var savesLoadCmd = &cobra.Command{
	Use:   "load <slot> [level]",
	Short: "Load a save slot and continue the run",
	Long: `Build the slot's level, apply the save and continue. Without --watch
the world runs headless for --ticks ticks and the hash is printed.

The level defaults to the one the slot was saved from.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSavesLoad,
}

func init() {
	savesLoadCmd.Flags().IntVar(&flagLoadTicks, "ticks", 0, "Ticks to run after loading")
	savesLoadCmd.Flags().BoolVar(&flagLoadWatch, "watch", false, "Open the viewer after loading")

	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesShowCmd)
	savesCmd.AddCommand(savesDeleteCmd)
	savesCmd.AddCommand(savesLoadCmd)
}

func parseSlot(arg string) (int, error) {
	slot, err := strconv.Atoi(arg)
	if err != nil || slot <= 0 {
		return 0, fmt.Errorf("invalid slot %q: expected a positive number", arg)
	}
	return slot, nil
}

func runSavesList(cmd *cobra.Command, args []string) error {
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.ListSlots()
	if err != nil {
		return err
	}

	fmt.Println("Save slots")
	fmt.Println()
	if len(slots) == 0 {
		fmt.Println("No saves yet.")
		fmt.Println()
		fmt.Println("Run 'tomb run --save-slot 1' to store one.")
	} else {
		fmt.Printf("  %-4s  %-12s  %-5s  %-8s  %-6s  %s\n", "Slot", "Level", "No.", "Tick", "Bytes", "Saved")
		fmt.Printf("  %-4s  %-12s  %-5s  %-8s  %-6s  %s\n", "----", "-----", "---", "----", "-----", "-----")
		for _, s := range slots {
			fmt.Printf("  %-4d  %-12s  %-5d  %-8d  %-6d  %s\n",
				s.Slot, s.LevelName, s.Level, s.Tick, s.Size, s.SavedAt.Format("2006-01-02 15:04"))
		}
	}

	runs, err := store.RecentRuns("", 5)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs")
		fmt.Println()
		for _, r := range runs {
			fmt.Printf("  %-12s  seed %-6d  %6d ticks  %s  faults %d\n",
				r.LevelName, r.Seed, r.Ticks, r.Hash, r.Faults)
		}
	}
	return nil
}

func runSavesShow(cmd *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.GetSlot(slot)
	if err != nil {
		return err
	}
	lvl, err := e.loadLevel([]string{s.LevelName})
	if err != nil {
		return err
	}
	w, err := lvl.NewWorld(e.options())
	if err != nil {
		return err
	}
	st, err := savegame.Decode(w, s.Data)
	if err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}

	format := "current"
	if st.Legacy {
		format = "legacy"
	}
	fmt.Printf("Slot %d - %s (level %d)\n", s.Slot, s.LevelName, st.Level)
	fmt.Println()
	fmt.Printf("  Format:   %s, %d bytes\n", format, len(s.Data))
	fmt.Printf("  Saved:    %s at tick %d\n", s.SavedAt.Format("2006-01-02 15:04"), s.Tick)
	fmt.Printf("  Flipped:  %v\n", st.FlipStatus)
	fmt.Printf("  Items:    %d\n", len(st.Items))
	fmt.Printf("  Flares:   %d\n", st.Lara.Flares)
	fmt.Printf("  Ammo:     %v\n", st.Lara.Ammo)
	fmt.Printf("  Deaths:   %d\n", st.Lara.DeathCount)

	if num := w.LaraNum(); num >= 0 && int(num) < len(st.Items) {
		rec := st.Items[num]
		if rec.HasPosition {
			fmt.Printf("  Lara:     room %d at (%d, %d, %d) facing %d°\n",
				rec.Room, rec.Pos.X, rec.Pos.Y, rec.Pos.Z, int(uint16(rec.Rot.Y))*360/65536)
		}
		if rec.HasHitPoints {
			fmt.Printf("  Health:   %d\n", rec.HitPoints)
		}
	}
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSlot(slot); err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return fmt.Errorf("slot %d is empty", slot)
		}
		return err
	}
	fmt.Printf("Deleted slot %d\n", slot)
	return nil
}

func runSavesLoad(cmd *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	store, err := e.openStore()
	if err != nil {
		return err
	}
	s, err := store.GetSlot(slot)
	store.Close()
	if err != nil {
		return err
	}

	levelArgs := []string{s.LevelName}
	if len(args) > 1 {
		levelArgs = args[1:]
	}
	lvl, err := e.loadLevel(levelArgs)
	if err != nil {
		return err
	}
	w, err := lvl.NewWorld(e.options())
	if err != nil {
		return err
	}
	if err := savegame.Load(w, s.Data); err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}
	e.logger.Info("save loaded", "slot", slot, "level", lvl.Name)

	if flagLoadWatch {
		return watchWorld(e, w, lvl)
	}
	for range flagLoadTicks {
		w.Tick(core.NewInputFrame())
	}
	fmt.Printf("%016x\n", w.Hash())
	return nil
}
