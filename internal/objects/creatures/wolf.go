// Package creatures implements the intelligent enemies.
package creatures

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/objects/ai"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Wolf states.
const (
	WolfStop int16 = iota + 1
	WolfWalk
	WolfRun
	WolfStalk
	WolfLunge
	WolfBite
	WolfSleep
	WolfDeath
)

const (
	wolfWalkSpeed  = 12
	wolfStalkSpeed = 20
	wolfRunSpeed   = 48

	wolfWalkTurn  = 2 * core.Deg1
	wolfStalkTurn = 2 * core.Deg1
	wolfRunTurn   = 5 * core.Deg1

	wolfBiteDamage  = 100
	wolfLungeDamage = 50

	wolfWakeChance  = 0x20
	wolfSleepChance = 0x10
	wolfReach       = 400
)

var (
	wolfBiteRange  = sq(core.StepL * 3 / 2)
	wolfLungeRange = sq(core.WallL * 3 / 2)
	wolfStalkRange = sq(core.WallL * 3)
)

func sq(v int32) int64 { return int64(v) * int64(v) }

type wolf struct {
	registry.Glyph
}

func (wolf) Initialise(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	item.CurrentAnimState = WolfSleep
	item.GoalAnimState = WolfSleep
}

func (wolf) Control(ctx registry.Context, num int16) {
	if !ai.Active(ctx, num) {
		return
	}
	item := ctx.Item(num)
	if item.HitPoints <= 0 {
		ai.Die(ctx, num, WolfDeath)
		ai.Animate(ctx, num)
		return
	}

	info := ai.GetInfo(ctx, num)
	ai.Mood(ctx, num, info, false)
	c := item.Creature()
	if c == nil {
		return
	}
	ai.Turn(ctx, num)
	lara := ctx.Item(ctx.LaraNum())

	switch item.CurrentAnimState {
	case WolfSleep:
		c.MaximumTurn = 0
		item.Speed = 0
		if c.Mood == entity.MoodEscape || info.SameZone() || ctx.Random().Control() < wolfWakeChance {
			item.GoalAnimState = WolfStop
		}

	case WolfStop:
		c.MaximumTurn = 0
		item.Speed = 0
		switch {
		case item.RequiredAnimState != 0:
			item.GoalAnimState = item.RequiredAnimState
		case c.Mood == entity.MoodBored && ctx.Random().Control() < wolfSleepChance:
			item.GoalAnimState = WolfSleep
		default:
			item.GoalAnimState = WolfWalk
		}

	case WolfWalk:
		c.MaximumTurn = wolfWalkTurn
		item.Speed = wolfWalkSpeed
		if c.Mood != entity.MoodBored {
			item.GoalAnimState = WolfStalk
		} else if ctx.Random().Control() < wolfSleepChance {
			item.GoalAnimState = WolfStop
		}

	case WolfStalk:
		c.MaximumTurn = wolfStalkTurn
		item.Speed = wolfStalkSpeed
		switch c.Mood {
		case entity.MoodEscape:
			item.GoalAnimState = WolfRun
		case entity.MoodBored:
			item.GoalAnimState = WolfWalk
		default:
			switch {
			case info.Ahead && info.Distance < wolfBiteRange:
				item.GoalAnimState = WolfBite
			case info.Ahead && info.Distance < wolfLungeRange && c.Mood == entity.MoodAttack:
				item.GoalAnimState = WolfLunge
			case info.Distance > wolfStalkRange || c.Mood == entity.MoodAttack:
				item.GoalAnimState = WolfRun
			}
		}

	case WolfRun:
		c.MaximumTurn = wolfRunTurn
		item.Speed = wolfRunSpeed
		switch {
		case info.Ahead && info.Distance < wolfLungeRange && c.Mood == entity.MoodAttack:
			item.GoalAnimState = WolfLunge
		case c.Mood == entity.MoodStalk && info.Distance < wolfStalkRange:
			item.GoalAnimState = WolfStalk
		case c.Mood == entity.MoodBored:
			item.GoalAnimState = WolfStalk
		}

	case WolfLunge:
		c.MaximumTurn = 0
		item.Speed = wolfRunSpeed
		if item.RequiredAnimState == 0 && lara != nil && common.Near(item.Pos, lara.Pos, wolfReach, core.WallL) {
			common.Damage(lara, wolfLungeDamage)
			common.Blood(ctx, lara.Pos, item.Rot.Y, lara.Room)
			item.RequiredAnimState = WolfRun
		}
		item.GoalAnimState = WolfRun

	case WolfBite:
		c.MaximumTurn = wolfWalkTurn
		item.Speed = 0
		if item.RequiredAnimState == 0 && lara != nil && info.Ahead && common.Near(item.Pos, lara.Pos, wolfReach, core.WallL) {
			common.Damage(lara, wolfBiteDamage)
			common.Blood(ctx, lara.Pos, item.Rot.Y, lara.Room)
			item.RequiredAnimState = WolfStalk
		}
		item.GoalAnimState = WolfStalk

	default:
		item.GoalAnimState = WolfStop
	}

	ai.Animate(ctx, num)
}

func (wolf) Collision(ctx registry.Context, num, laraNum int16) {
	if item := ctx.Item(num); item != nil && item.HitPoints > 0 {
		common.PushLara(ctx, num, laraNum, wolfReach/2)
	}
}

func init() {
	registry.Register(registry.Object{
		ID:            registry.ObjWolf,
		Name:          "wolf",
		HitPoints:     6,
		Radius:        340,
		Shadow:        128,
		Frames:        1,
		Intelligent:   true,
		Step:          box.GroundStep,
		Drop:          box.GroundDrop,
		SavePosition:  true,
		SaveHitpoints: true,
		SaveFlags:     true,
		SaveAnim:      true,
		Behavior:      wolf{Glyph: registry.Glyph{Rune: 'w', Color: core.ColorRed}},
	})
}
