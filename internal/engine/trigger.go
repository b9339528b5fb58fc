package engine

import (
	"math"

	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// TestTriggers evaluates the trigger of the floor sector under an item.
// Lara tests with heavy unset every tick; pushed blocks and other heavy
// objects test with heavy set.
func (w *World) TestTriggers(num int16, heavy bool) {
	item := w.items.Get(num)
	if item == nil || !item.InPlay() {
		return
	}
	sector, _ := w.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	floor := w.lvl.FloorSector(sector, item.Pos.X, item.Pos.Z)
	if floor == nil || floor.Trigger == nil {
		return
	}
	trig := floor.Trigger

	switch trig.Type {
	case level.TriggerDummy:
		return
	case level.TriggerHeavy:
		if !heavy {
			return
		}
	default:
		if heavy {
			return
		}
	}

	switchOff := false
	switch trig.Type {
	case level.TriggerPad, level.TriggerAntipad:
		if item.Pos.Y != w.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z) {
			return
		}
		switchOff = trig.Type == level.TriggerAntipad
	case level.TriggerSwitch:
		sw := w.items.Get(trig.Item)
		if sw == nil || sw.Status != entity.StatusDeactivated {
			return
		}
		sw.Status = entity.StatusInactive
		switchOff = sw.CurrentAnimState == 0
	case level.TriggerKey:
		key := w.items.Get(trig.Item)
		if key == nil || key.Status != entity.StatusActive {
			return
		}
		key.Status = entity.StatusDeactivated
	case level.TriggerPickup:
		pickup := w.items.Get(trig.Item)
		if pickup == nil || pickup.Status != entity.StatusInvisible {
			return
		}
		pickup.Status = entity.StatusDeactivated
	case level.TriggerCombat:
		if w.lara == nil || w.lara.GunStatus != registry.GunReady {
			return
		}
	}

	w.runCommands(trig, item, sector, switchOff)
}

// timerTicks converts an authored trigger timer to ticks. Values above one
// are seconds; zero and one pass through unchanged. Long timers saturate.
func (w *World) timerTicks(timer int16) int16 {
	if timer <= 1 {
		return timer
	}
	return int16(min(int32(timer)*int32(w.opts.Runtime.TickRate), math.MaxInt16))
}

func (w *World) runCommands(trig *level.Trigger, source *entity.Item, sector *level.Sector, switchOff bool) {
	timer := w.timerTicks(trig.Timer)
	isSwitch := trig.Type == level.TriggerSwitch
	mask := entity.Flags(trig.Mask) & entity.FlagCodeBits
	flip := false

	for _, cmd := range trig.Commands {
		switch cmd.Kind {
		case level.CmdObject:
			w.triggerItem(cmd.Arg, mask, timer, trig.OneShot, isSwitch, switchOff)

		case level.CmdCamera:
			// Zero means one tick; the camera latches when that tick runs out.
			camTimer := w.timerTicks(cmd.CameraTimer)
			if isSwitch && switchOff && camTimer != 0 {
				continue
			}
			if trig.Type == level.TriggerCombat {
				continue
			}
			before := w.camera.Type
			if w.camera.Trigger(w.lvl, cmd.Arg, camTimer, cmd.CameraHeavy, cmd.CameraOnce) {
				w.log.Debug("camera mode", "from", before, "to", w.camera.Type, "camera", cmd.Arg)
			}

		case level.CmdLookAt:
			w.lookAt = cmd.Arg

		case level.CmdFlipMap:
			if w.lvl.FlipTrigger(int(cmd.Arg), trig.Mask, isSwitch, trig.OneShot) {
				flip = true
			}

		case level.CmdFlipOn:
			if w.lvl.FlipOnRequested(int(cmd.Arg)) {
				flip = true
			}

		case level.CmdFlipOff:
			if w.lvl.FlipOffRequested(int(cmd.Arg)) {
				flip = true
			}

		case level.CmdFloor:
			w.lvl.SetFloor(source.Room, source.Pos.X, source.Pos.Z, int32(cmd.Arg))

		case level.CmdEndLevel:
			if !w.levelComplete {
				w.log.Info("level complete", "tick", w.tick)
			}
			w.levelComplete = true
		}
	}

	if flip {
		w.FlipMap()
	}
}

// triggerItem applies an object command to its target item.
func (w *World) triggerItem(num int16, mask entity.Flags, timer int16, oneShot, isSwitch, switchOff bool) {
	item := w.items.Get(num)
	if item == nil || !item.InUse || item.Killed() {
		return
	}
	if item.Flags&entity.FlagOneShot != 0 {
		return
	}
	item.Timer = timer

	switch {
	case isSwitch:
		item.Flags ^= mask
	case switchOff:
		item.Flags &^= mask
	default:
		item.Flags |= mask
	}
	if item.Flags&entity.FlagCodeBits != entity.FlagCodeBits {
		return
	}
	if oneShot {
		item.Flags |= entity.FlagOneShot
	}
	if item.Active {
		return
	}

	obj, ok := registry.Lookup(item.Object)
	if ok && obj.Intelligent {
		switch item.Status {
		case entity.StatusInactive:
			w.items.AddActive(num)
			w.EnableAI(num, true)
		case entity.StatusInvisible:
			if w.EnableAI(num, false) {
				item.Status = entity.StatusActive
			}
			w.items.AddActive(num)
		}
		return
	}
	w.ActivateItem(num)
}
