package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/camera"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// collideRange bounds the Lara-versus-item collision broad phase. Object
// collision slots do their own fine test.
const collideRange = core.WallL * 4

// Tick advances the world by one fixed step:
// remember poses, player control with collisions and triggers, active
// items, the effect chain, the camera, then commit the tick's poses.
func (w *World) Tick(input core.InputFrame) {
	w.input = input
	w.Remember()

	w.controlLara()
	w.controlItems()
	w.controlEffects()
	w.updateCamera()

	w.tick++
	w.Commit(1)
}

func (w *World) controlLara() {
	if w.lara == nil {
		return
	}
	num := w.laraNum
	lara := w.items.Get(num)
	if !lara.InPlay() {
		return
	}
	if obj, ok := registry.Lookup(lara.Object); ok {
		w.dispatch("control", num, false, func() { obj.Behavior.Control(w, num) })
	}
	if !lara.InPlay() {
		return
	}
	w.collideLara(num)
	w.TestTriggers(num, false)
}

// collideLara calls the collision slot of every collidable item near Lara
// in her room and the rooms it sees through portals.
func (w *World) collideLara(laraNum int16) {
	lara := w.items.Get(laraNum)
	for _, room := range w.nearbyRooms(lara.Room) {
		for _, num := range w.items.RoomItems(room) {
			if num == laraNum {
				continue
			}
			item := w.items.Get(num)
			if !item.Collidable || item.Status == entity.StatusInvisible || !item.InPlay() {
				continue
			}
			d := item.Pos.Sub(lara.Pos)
			if core.Abs(d.X) >= collideRange || core.Abs(d.Y) >= collideRange || core.Abs(d.Z) >= collideRange {
				continue
			}
			obj, ok := registry.Lookup(item.Object)
			if !ok {
				continue
			}
			w.dispatch("collision", num, false, func() { obj.Behavior.Collision(w, num, laraNum) })
			if !lara.InPlay() {
				return
			}
		}
	}
}

// nearbyRooms returns room and its portal neighbours, without repeats.
func (w *World) nearbyRooms(room int16) []int16 {
	r := w.lvl.Room(room)
	if r == nil {
		return nil
	}
	rooms := []int16{room}
	for _, p := range r.Portals {
		seen := false
		for _, have := range rooms {
			seen = seen || have == p.AdjoiningRoom
		}
		if !seen && w.lvl.ValidRoom(p.AdjoiningRoom) {
			rooms = append(rooms, p.AdjoiningRoom)
		}
	}
	return rooms
}

// controlItems runs every active item except Lara once. The walk follows a
// snapshot so items activated during it start next tick, and skips items
// deactivated or killed earlier in the walk.
func (w *World) controlItems() {
	for _, num := range w.items.ActiveItems() {
		if num == w.laraNum {
			continue
		}
		item := w.items.Get(num)
		if !item.Active || !item.InUse || item.Killed() {
			continue
		}
		obj, ok := registry.Lookup(item.Object)
		if !ok {
			continue
		}
		w.dispatch("control", num, false, func() { obj.Behavior.Control(w, num) })
	}
}

// controlEffects walks the effect chain once. The successor is read after
// the control call: a killed effect keeps its forward link and a morphed
// effect stays in place.
func (w *World) controlEffects() {
	num := w.effects.ActiveHead()
	for guard := w.effects.Len(); num != entity.NoEffect && guard >= 0; guard-- {
		fx := w.effects.Get(num)
		if obj, ok := registry.Lookup(fx.Object); ok && fx.InUse {
			w.dispatch("control", num, true, func() { obj.Behavior.Control(w, num) })
		}
		num = fx.NextActive
	}
	w.effects.Reclaim()
}

func (w *World) updateCamera() {
	s := camera.Subject{}
	if w.lara != nil {
		s.Item = w.items.Get(w.laraNum)
		s.Look = w.input.Has(core.ActionLook)
		s.Head = w.lara.HeadRot
		if t := w.items.Get(w.lara.Target); t != nil && t.InPlay() && w.lara.GunStatus == registry.GunReady {
			s.Enemy = t
		}
	}
	if f := w.items.Get(w.lookAt); f != nil && f.InPlay() {
		s.Focus = f
	}

	before := w.camera.Type
	w.camera.Update(w, s)
	if w.camera.Type != before {
		w.log.Debug("camera mode", "from", before, "to", w.camera.Type, "tick", w.tick)
		if w.camera.Type == camera.Chase {
			w.lookAt = entity.NoItem
		}
	}
}

// Remember snapshots every interpolatable pose at the start of a tick.
func (w *World) Remember() {
	w.camera.Remember()
	if w.lara != nil {
		w.lara.LeftArm.Interp.Remember(interp.Pose{Rot: w.lara.LeftArm.Rot})
		w.lara.RightArm.Interp.Remember(interp.Pose{Rot: w.lara.RightArm.Rot})
		for i := range w.lara.Hair {
			seg := &w.lara.Hair[i]
			seg.Interp.Remember(interp.Pose{Pos: seg.Pos, Rot: seg.Rot})
		}
	}
	for i := range w.items.Items {
		item := &w.items.Items[i]
		if item.InUse {
			item.Interp.Remember(item.Pose())
		}
	}
	for i := range w.effects.Effects {
		fx := &w.effects.Effects[i]
		if fx.InUse {
			fx.Interp.Remember(fx.Pose())
		}
	}
}

// Commit writes the render-facing poses for a blend ratio between the
// remembered and the current state. Inactive, killed and invisible items
// show their current pose.
func (w *World) Commit(ratio float64) {
	if !w.opts.Runtime.Interpolate {
		ratio = 1
	}
	w.ratio = ratio
	thr := w.opts.Thresholds

	for i := range w.items.Items {
		item := &w.items.Items[i]
		if !item.InUse {
			continue
		}
		if !item.Active || !item.InPlay() || item.Status == entity.StatusInvisible {
			item.Interp.Force(item.Pose())
			continue
		}
		item.Interp.Commit(item.Pose(), ratio, thr.ItemPos, interp.VerticalThreshold(thr.ItemPos, item.FallSpeed), thr.RotCone)
	}
	for i := range w.effects.Effects {
		fx := &w.effects.Effects[i]
		if fx.InUse && fx.Room != level.NoRoom {
			fx.Interp.Commit(fx.Pose(), ratio, thr.EffectPos, interp.VerticalThreshold(thr.EffectPos, fx.FallSpeed), thr.RotCone)
		}
	}
	if w.lara != nil {
		w.lara.LeftArm.Interp.Commit(interp.Pose{Rot: w.lara.LeftArm.Rot}, ratio, 0, 0, thr.RotCone)
		w.lara.RightArm.Interp.Commit(interp.Pose{Rot: w.lara.RightArm.Rot}, ratio, 0, 0, thr.RotCone)
		for i := range w.lara.Hair {
			seg := &w.lara.Hair[i]
			seg.Interp.Commit(interp.Pose{Pos: seg.Pos, Rot: seg.Rot}, ratio, thr.Hair, thr.Hair, thr.RotCone)
		}
	}
	w.camera.Commit(w, ratio)
}
