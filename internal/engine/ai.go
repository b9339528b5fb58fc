package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// EnableAI gives a creature one of the AI slots, creating its creature
// block and LOT. When every slot is taken, the creature farthest from the
// camera loses its slot if always is set or if it is farther away than
// the newcomer; the evicted creature turns invisible.
func (w *World) EnableAI(num int16, always bool) bool {
	item := w.items.Get(num)
	if item == nil || !item.InUse {
		return false
	}
	if c := item.Creature(); c != nil && c.LOT != nil {
		return true
	}

	for i, slot := range w.aiSlots {
		if slot == entity.NoItem {
			w.initialiseSlot(i, num)
			return true
		}
	}

	camPos := w.camera.Pos.Pos
	worst, worstDist := -1, int64(-1)
	for i, slot := range w.aiSlots {
		d := core.Dist3D(w.items.Get(slot).Pos, camPos)
		if d > worstDist {
			worst, worstDist = i, d
		}
	}
	if worst < 0 {
		return false
	}
	if !always && core.Dist3D(item.Pos, camPos) >= worstDist {
		return false
	}

	evicted := w.aiSlots[worst]
	w.log.Debug("ai slot replaced", "slot", worst, "evicted", evicted, "item", num)
	w.releaseSlot(worst)
	w.items.Get(evicted).Status = entity.StatusInvisible
	w.initialiseSlot(worst, num)
	return true
}

// RestoreAI recreates a creature block from a save. The creature takes a
// free AI slot when there is one and never evicts another creature; without
// a slot it keeps its data and claims one once it becomes active again.
func (w *World) RestoreAI(num int16) *entity.Creature {
	item := w.items.Get(num)
	if item == nil || !item.InUse {
		return nil
	}
	c := w.creatureBlock(num)
	if c.LOT != nil {
		return c
	}
	for i, slot := range w.aiSlots {
		if slot == entity.NoItem {
			w.initialiseSlot(i, num)
			return c
		}
	}
	w.log.Debug("ai slots full on restore", "item", num)
	return c
}

// DisableAI frees the creature's AI slot, if it holds one.
func (w *World) DisableAI(num int16) {
	for i, slot := range w.aiSlots {
		if slot == num {
			w.releaseSlot(i)
			return
		}
	}
}

// AISlots returns the item held by each slot, entity.NoItem when free.
func (w *World) AISlots() []int16 {
	return append([]int16(nil), w.aiSlots...)
}

// creatureBlock returns the item's creature block, creating it if needed.
func (w *World) creatureBlock(num int16) *entity.Creature {
	item := w.items.Get(num)
	c := item.Creature()
	if c == nil {
		c = &entity.Creature{
			ItemNum:     num,
			MaximumTurn: core.Deg1,
			Mood:        entity.MoodBored,
			Enemy:       entity.NoItem,
			Target:      item.Pos,
		}
		item.Data = c
	}
	return c
}

func (w *World) initialiseSlot(slot int, num int16) {
	item := w.items.Get(num)
	c := w.creatureBlock(num)

	step, drop, fly := box.GroundStep, box.GroundDrop, int16(0)
	if obj, ok := registry.Lookup(item.Object); ok && obj.Step != 0 {
		step, drop, fly = obj.Step, obj.Drop, obj.Fly
	}
	c.LOT = w.boxes.NewLOT(step, drop, fly)
	w.aiSlots[slot] = num
}

func (w *World) releaseSlot(slot int) {
	num := w.aiSlots[slot]
	w.aiSlots[slot] = entity.NoItem
	if c := w.items.Get(num).Creature(); c != nil {
		c.LOT = nil
	}
}
