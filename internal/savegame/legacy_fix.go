package savegame

import (
	"fmt"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// LegacyFixLevel is the level whose doppelganger was saved with a
// different record layout by older builds.
const LegacyFixLevel = 14

// legacyFix returns a decoder that tries both doppelganger layouts, or
// nil when the image does not need one.
func legacyFix(w *engine.World, data []byte, lays []layout, objs []*registry.Object) func() (*State, error) {
	if len(data) < 2 || int16(uint16(data[0])|uint16(data[1])<<8) != LegacyFixLevel {
		return nil
	}
	var bacon []int
	for i, obj := range objs {
		if obj != nil && obj.ID == registry.ObjBaconLara {
			bacon = append(bacon, i)
		}
	}
	if len(bacon) == 0 {
		return nil
	}

	return func() (*State, error) {
		alt := make([]layout, len(lays))
		copy(alt, lays)
		for _, i := range bacon {
			alt[i] = layout{}
		}
		var lastErr error
		for _, candidate := range [][]layout{lays, alt} {
			st, err := decodeLegacyWith(data, candidate)
			if err != nil {
				lastErr = err
				continue
			}
			if err := inBounds(w.Level(), st); err != nil {
				lastErr = err
				continue
			}
			w.Logger().Debug("legacy layout resolved", "level", st.Level, "doppelganger", candidate[bacon[0]].Position)
			return st, nil
		}
		return nil, lastErr
	}
}

// inBounds checks that every positioned record sits inside its room.
func inBounds(lvl *level.Level, st *State) error {
	for i, rec := range st.Items {
		if !rec.HasPosition || killed(rec.Flags) {
			continue
		}
		room := lvl.Room(rec.Room)
		if room == nil {
			return fmt.Errorf("%w: item %d in invalid room %d", ErrCorrupt, i, rec.Room)
		}
		xs := (rec.Pos.X - room.Pos.X) >> core.WallShift
		zs := (rec.Pos.Z - room.Pos.Z) >> core.WallShift
		if room.Sector(xs, zs) == nil {
			return fmt.Errorf("%w: item %d outside room %d", ErrCorrupt, i, rec.Room)
		}
	}
	return nil
}
