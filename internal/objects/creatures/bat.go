package creatures

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/objects/ai"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Bat states.
const (
	BatHang int16 = iota + 1
	BatFly
	BatAttack
	BatFall
	BatDeath
)

const (
	batFlySpeed  = 32
	batTurn      = 20 * core.Deg1
	batDamage    = 2
	batReach     = core.StepL
	batWakeRange = core.WallL * 5
	batClimb     = 20 * core.WallL
)

type bat struct {
	registry.Glyph
}

func (bat) Initialise(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	item.CurrentAnimState = BatHang
	item.GoalAnimState = BatHang
}

func (bat) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	if item.HitPoints <= 0 {
		batFall(ctx, num)
		return
	}
	if !ai.Active(ctx, num) {
		return
	}

	info := ai.GetInfo(ctx, num)
	ai.Mood(ctx, num, info, false)
	c := item.Creature()
	if c == nil {
		return
	}
	c.MaximumTurn = batTurn
	ai.Turn(ctx, num)

	lara := ctx.Item(ctx.LaraNum())
	touching := false
	if lara != nil {
		head := lara.Pos
		head.Y -= core.StepL * 3
		touching = common.Near(item.Pos, head, batReach, core.WallL/2)
	}

	switch item.CurrentAnimState {
	case BatHang:
		item.Speed = 0
		if info.Distance < sq(batWakeRange) || ctx.Random().Control() < 0x10 {
			item.GoalAnimState = BatFly
		}
	case BatFly:
		item.Speed = batFlySpeed
		if touching {
			item.GoalAnimState = BatAttack
		}
	case BatAttack:
		item.Speed = batFlySpeed / 2
		if touching {
			common.Damage(lara, batDamage)
			if ctx.Random().Control() < 0x1000 {
				common.Blood(ctx, lara.Pos, item.Rot.Y, lara.Room)
			}
		} else {
			item.GoalAnimState = BatFly
		}
	default:
		item.GoalAnimState = BatFly
	}

	ai.Animate(ctx, num)
}

// batFall drops a dead bat to the floor, where it stays.
func batFall(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	ctx.DisableAI(num)
	item.Collidable = false
	item.Speed = 0
	if item.CurrentAnimState == BatDeath {
		return
	}

	sector, _ := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	floor := level.NoHeight
	if sector != nil {
		floor = ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}
	if floor == level.NoHeight || item.Pos.Y < floor {
		item.GoalAnimState = BatFall
		item.Gravity = true
		ctx.AnimateItem(num)
		if floor == level.NoHeight || item.Pos.Y < floor {
			return
		}
	}
	item.Pos.Y = floor
	item.Floor = floor
	item.Gravity = false
	item.FallSpeed = 0
	item.CurrentAnimState = BatDeath
	item.GoalAnimState = BatDeath
}

func (b bat) Draw(d registry.Drawable, canvas *core.Canvas) {
	r := b.Rune
	if d.State == BatDeath {
		r = '_'
	}
	canvas.Plot(d.Pose.Pos, r, b.Color)
}

func init() {
	registry.Register(registry.Object{
		ID:            registry.ObjBat,
		Name:          "bat",
		HitPoints:     1,
		Radius:        102,
		Frames:        1,
		AnimIndex:     20,
		Intelligent:   true,
		Step:          batClimb,
		Drop:          -batClimb,
		Fly:           box.FlySpeed,
		SavePosition:  true,
		SaveHitpoints: true,
		SaveFlags:     true,
		SaveAnim:      true,
		Behavior:      bat{Glyph: registry.Glyph{Rune: 'v', Color: core.ColorMagenta}},
	})
}
