package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// FlipMap swaps every flippable room with its alternate, letting resident
// items react before and after the swap. Creature searches restart since
// the zones differ per flip state.
func (w *World) FlipMap() {
	w.lvl.FlipMap(
		func(room int16) { w.roomFlip(room, registry.FlipBefore) },
		func(room int16) { w.roomFlip(room, registry.FlipAfter) },
	)
	for _, num := range w.aiSlots {
		item := w.items.Get(num)
		if item == nil {
			continue
		}
		if c := item.Creature(); c != nil && c.LOT != nil {
			c.LOT.TargetBox = box.NoBox
		}
	}
	w.log.Debug("flip map", "status", w.lvl.FlipStatus, "tick", w.tick)
}

// SetFlipStatus flips the map when its status differs from status. Used
// when restoring a save.
func (w *World) SetFlipStatus(status bool) {
	if w.lvl.FlipStatus != status {
		w.FlipMap()
	}
}

func (w *World) roomFlip(room int16, stage registry.FlipStage) {
	for _, num := range w.items.RoomItems(room) {
		item := w.items.Get(num)
		obj, ok := registry.Lookup(item.Object)
		if !ok {
			continue
		}
		if h := obj.RoomFlipHandler(); h != nil {
			w.dispatch("flip", num, false, func() { h.HandleRoomFlip(w, num, stage) })
		}
	}
}
