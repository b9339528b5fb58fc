package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// GetHeight returns the floor height under a point: the static geometry
// first, then every in-play item named by the floor sector's trigger whose
// object overrides floors, in command order.
func (w *World) GetHeight(sector *level.Sector, x, y, z int32) int32 {
	floor := w.lvl.FloorSector(sector, x, z)
	height := w.lvl.StaticHeight(sector, x, y, z)
	if height == level.NoHeight || floor == nil || floor.Trigger == nil {
		return height
	}
	for _, num := range floor.Trigger.Objects() {
		item, obj := w.overrideItem(num)
		if item == nil || obj.FloorHeighter() == nil {
			continue
		}
		height = obj.FloorHeighter().FloorHeight(w, num, x, y, z, height)
	}
	return height
}

// GetCeiling returns the ceiling height above a point, composed like
// GetHeight.
func (w *World) GetCeiling(sector *level.Sector, x, y, z int32) int32 {
	height := w.lvl.StaticCeiling(sector, x, y, z)
	if height == level.NoHeight {
		return height
	}
	// Ceiling items are triggered from the floor sector below.
	floor := w.lvl.FloorSector(sector, x, z)
	if floor == nil || floor.Trigger == nil {
		return height
	}
	for _, num := range floor.Trigger.Objects() {
		item, obj := w.overrideItem(num)
		if item == nil || obj.CeilingHeighter() == nil {
			continue
		}
		height = obj.CeilingHeighter().CeilingHeight(w, num, x, y, z, height)
	}
	return height
}

// overrideItem returns an item that may adjust heights: in play and
// registered.
func (w *World) overrideItem(num int16) (*entity.Item, *registry.Object) {
	item := w.items.Get(num)
	if item == nil || !item.InPlay() {
		return nil, nil
	}
	obj, ok := registry.Lookup(item.Object)
	if !ok {
		return nil, nil
	}
	return item, obj
}
