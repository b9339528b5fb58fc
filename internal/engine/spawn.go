package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// CreateItem spawns a dynamic item and initialises it. It returns
// entity.NoItem when the headroom is exhausted or the request is invalid.
func (w *World) CreateItem(object entity.ObjectID, pos core.Vec3, rot core.Rot, room int16) int16 {
	if _, ok := registry.Lookup(object); !ok || !w.lvl.ValidRoom(room) {
		w.log.Warn("invalid spawn", "object", object, "room", room)
		return entity.NoItem
	}
	num := w.items.Create()
	if num == entity.NoItem {
		w.log.Debug("item pool exhausted", "object", object)
		return entity.NoItem
	}
	item := w.items.Get(num)
	item.Object = object
	item.Pos = pos
	item.Rot = rot
	w.items.AddToRoom(num, room)
	w.initialiseItem(num)
	return num
}

// KillItem takes an item out of play and drops every reference the world
// holds to it.
func (w *World) KillItem(num int16) {
	item := w.items.Get(num)
	if item == nil || !item.InUse {
		return
	}
	w.DisableAI(num)
	if w.lara != nil && w.lara.Target == num {
		w.lara.Target = entity.NoItem
	}
	if w.lookAt == num {
		w.lookAt = entity.NoItem
	}
	w.items.Kill(num)
	item.Interp.Force(item.Pose())
}

// ActivateItem runs the object's activation slot, or puts the item on the
// active list.
func (w *World) ActivateItem(num int16) {
	item := w.items.Get(num)
	if item == nil || !item.InUse {
		return
	}
	if obj, ok := registry.Lookup(item.Object); ok {
		if a := obj.Activator(); a != nil {
			w.dispatch("activate", num, false, func() { a.Activate(w, num) })
			return
		}
	}
	w.items.AddActive(num)
}

// DeactivateItem takes an item off the active list and frees its AI slot.
func (w *World) DeactivateItem(num int16) {
	w.items.RemoveActive(num)
	w.DisableAI(num)
}

// ItemNewRoom moves an item to another room.
func (w *World) ItemNewRoom(num, room int16) {
	w.items.NewRoom(num, room)
}

// CreateEffect spawns an effect. It returns entity.NoEffect when the
// arena is full.
func (w *World) CreateEffect(object entity.ObjectID, pos core.Vec3, rot core.Rot, room int16) int16 {
	if !w.lvl.ValidRoom(room) {
		return entity.NoEffect
	}
	num := w.effects.Create(room)
	if num == entity.NoEffect {
		w.log.Debug("effect pool exhausted", "object", object)
		return entity.NoEffect
	}
	fx := w.effects.Get(num)
	fx.Object = object
	fx.Pos = pos
	fx.Rot = rot
	fx.Interp.Reset(fx.Pose())
	return num
}

// KillEffect removes an effect. Safe during the effect walk.
func (w *World) KillEffect(num int16) {
	w.effects.Kill(num)
}

// MorphEffect retypes an effect in place.
func (w *World) MorphEffect(num int16, object entity.ObjectID) bool {
	return w.effects.Morph(num, object)
}

// EffectNewRoom moves an effect to another room.
func (w *World) EffectNewRoom(num, room int16) {
	w.effects.NewRoom(num, room)
}
