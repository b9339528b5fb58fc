// Package common holds helpers shared by object behaviours.
package common

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// TriggerActive reports whether an item's trigger currently holds it on,
// counting down its timer. A reversed item reads inverted.
func TriggerActive(item *entity.Item) bool {
	ok := item.Flags&entity.FlagReverse == 0
	if item.Flags&entity.FlagCodeBits != entity.FlagCodeBits {
		return !ok
	}
	switch item.Timer {
	case 0:
		return ok
	case -1:
		return !ok
	}
	item.Timer--
	if item.Timer == 0 {
		item.Timer = -1
	}
	return ok
}

// Near reports whether two positions are within radius horizontally and
// within height vertically.
func Near(a, b core.Vec3, radius, height int32) bool {
	return core.Dist2D(a, b) < int64(radius)*int64(radius) && core.Abs(a.Y-b.Y) < height
}

// PushLara moves Lara out of an item's radius along the line between them.
// It reports whether a push happened.
func PushLara(ctx registry.Context, num, laraNum int16, radius int32) bool {
	item, lara := ctx.Item(num), ctx.Item(laraNum)
	if item == nil || lara == nil || !Near(item.Pos, lara.Pos, radius, core.WallL) {
		return false
	}
	d := lara.Pos.Sub(item.Pos)
	if d.X == 0 && d.Z == 0 {
		d.Z = -1
	}
	angle := core.Atan(d.Z, d.X)
	out := core.Rotate(item.Pos, angle, radius)
	out.Y = lara.Pos.Y

	sector, room := ctx.GetSector(out.X, out.Y, out.Z, lara.Room)
	if sector == nil {
		return false
	}
	if h := ctx.GetHeight(sector, out.X, out.Y, out.Z); h == level.NoHeight || h < out.Y-core.StepL {
		// Pushed into a wall: stay put.
		return false
	}
	lara.Pos.X, lara.Pos.Z = out.X, out.Z
	if room != lara.Room {
		ctx.ItemNewRoom(laraNum, room)
	}
	return true
}

// Damage lowers an item's hit points, never below zero.
func Damage(item *entity.Item, amount int16) {
	item.HitPoints = max(item.HitPoints-amount, 0)
}

// Blood spawns a blood effect at pos.
func Blood(ctx registry.Context, pos core.Vec3, yaw int16, room int16) int16 {
	num := ctx.CreateEffect(registry.ObjBlood, pos, core.Rot{Y: yaw}, room)
	if num != entity.NoEffect {
		ctx.Effect(num).Speed = int16(ctx.Random().Control() >> 10)
	}
	return num
}

// Ricochet spawns a spark at pos.
func Ricochet(ctx registry.Context, pos core.Vec3, room int16) int16 {
	num := ctx.CreateEffect(registry.ObjRicochet, pos, core.Rot{Y: int16(ctx.Random().Control() << 1)}, room)
	if num != entity.NoEffect {
		ctx.Effect(num).Counter = 4
	}
	return num
}

// MoveEffect advances an effect along its yaw and pitch by its speeds and
// follows it across rooms. It reports false when the effect left the
// world or hit geometry.
func MoveEffect(ctx registry.Context, num int16) bool {
	fx := ctx.Effect(num)
	fx.Pos = core.Rotate(fx.Pos, fx.Rot.Y, int32(fx.Speed)*core.Cos(fx.Rot.X)>>core.TrigShift)
	fx.Pos.Y += int32(fx.FallSpeed) - int32(fx.Speed)*core.Sin(fx.Rot.X)>>core.TrigShift

	sector, room := ctx.GetSector(fx.Pos.X, fx.Pos.Y, fx.Pos.Z, fx.Room)
	if sector == nil {
		return false
	}
	floor := ctx.GetHeight(sector, fx.Pos.X, fx.Pos.Y, fx.Pos.Z)
	ceiling := ctx.GetCeiling(sector, fx.Pos.X, fx.Pos.Y, fx.Pos.Z)
	if floor == level.NoHeight || fx.Pos.Y >= floor || fx.Pos.Y <= ceiling {
		return false
	}
	if room != fx.Room {
		ctx.EffectNewRoom(num, room)
	}
	return true
}
