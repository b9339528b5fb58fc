package general

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Emitter states.
const (
	EmitterIdle int16 = iota
	EmitterFire
)

const (
	muzzleOffset = core.WallL / 2
	dartSpeed    = 256
	dartDamage   = 50
	missileSpeed = 200
)

// emitter is a wall trap firing one projectile per animation cycle while
// its trigger holds.
type emitter struct {
	registry.Glyph
	fire func(ctx registry.Context, pos core.Vec3, rot core.Rot, room int16)
}

func (e emitter) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	switch {
	case !common.TriggerActive(item):
		item.GoalAnimState = EmitterIdle
	case item.CurrentAnimState == EmitterIdle:
		item.GoalAnimState = EmitterFire
	default:
		item.GoalAnimState = EmitterIdle
	}
	ctx.AnimateItem(num)

	if item.CurrentAnimState == EmitterFire && item.FrameNum == 0 {
		pos := core.Rotate(item.Pos, item.Rot.Y, muzzleOffset)
		_, room := ctx.GetSector(pos.X, pos.Y, pos.Z, item.Room)
		if room == level.NoRoom {
			room = item.Room
		}
		e.fire(ctx, pos, item.Rot, room)
	}
}

func fireDart(ctx registry.Context, pos core.Vec3, rot core.Rot, room int16) {
	num := ctx.CreateItem(registry.ObjDart, pos, rot, room)
	if num == entity.NoItem {
		return
	}
	ctx.Item(num).Speed = dartSpeed
	ctx.ActivateItem(num)
	common.Ricochet(ctx, pos, room)
}

func fireMissile(ctx registry.Context, pos core.Vec3, rot core.Rot, room int16) {
	num := ctx.CreateEffect(registry.ObjMissile, pos, rot, room)
	if num != entity.NoEffect {
		ctx.Effect(num).Speed = missileSpeed
	}
}

// dart flies straight until it hits geometry or Lara.
type dart struct {
	registry.Glyph
}

func (dart) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	ctx.AnimateItem(num)

	sector, room := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	if sector == nil {
		ctx.KillItem(num)
		return
	}
	floor := ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	ceiling := ctx.GetCeiling(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	if floor == level.NoHeight || item.Pos.Y >= floor || item.Pos.Y <= ceiling {
		common.Ricochet(ctx, item.Pos, item.Room)
		ctx.KillItem(num)
		return
	}
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}

	lara := ctx.Item(ctx.LaraNum())
	if lara == nil || lara.HitPoints <= 0 {
		return
	}
	chest := lara.Pos
	chest.Y -= core.StepL * 2
	if common.Near(item.Pos, chest, core.StepL, core.StepL*2) {
		common.Damage(lara, dartDamage)
		common.Blood(ctx, item.Pos, item.Rot.Y, item.Room)
		ctx.KillItem(num)
	}
}

func init() {
	registry.Register(registry.Object{
		ID:        registry.ObjDartEmitter,
		Name:      "dart_emitter",
		Frames:    8,
		AnimIndex: 34,
		SaveFlags: true,
		SaveAnim:  true,
		Behavior: emitter{
			Glyph: registry.Glyph{Rune: '>', Color: core.ColorGray},
			fire:  fireDart,
		},
	})
	registry.Register(registry.Object{
		ID:        registry.ObjMissileTrap,
		Name:      "missile_trap",
		Frames:    16,
		AnimIndex: 36,
		SaveFlags: true,
		SaveAnim:  true,
		Behavior: emitter{
			Glyph: registry.Glyph{Rune: '>', Color: core.ColorRed},
			fire:  fireMissile,
		},
	})
	registry.Register(registry.Object{
		ID:       registry.ObjDart,
		Name:     "dart",
		Frames:   1,
		Behavior: dart{Glyph: registry.Glyph{Rune: '.', Color: core.ColorWhite}},
	})
}
