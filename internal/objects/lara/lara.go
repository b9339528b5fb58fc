// Package lara implements the player character: movement against floor
// heights, weapons and targeting, free look, flares, air and the hair
// chain.
package lara

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Lara's states.
const (
	StateStop int16 = iota
	StateWalk
	StateRun
	StateBack
	StateTurnLeft
	StateTurnRight
	StateJump
	StateFall
	StateDeath
	StateSwim
)

// HitPoints is Lara's full health.
const HitPoints = 1000

const (
	walkSpeed = 12
	runSpeed  = 32
	backSpeed = -12
	swimSpeed = 24
	jumpSpeed = -20
	swimRise  = 16

	turnRate     = 4 * core.Deg1
	fastTurnRate = 6 * core.Deg1

	// Height is the distance from Lara's feet to the top of her head.
	Height = 762

	damageStart  = 140
	damageLength = 14

	maxAir      = 1800
	airRecovery = 10
	drownDamage = 5
)

// state is the input history Lara needs to tell presses from holds.
type state struct {
	prev      uint32
	fireTimer int16
}

func (*state) DataKind() string { return "lara" }

type lara struct {
	registry.Glyph
}

func (lara) Initialise(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	item.Data = &state{}
	item.CurrentAnimState = StateStop
	item.GoalAnimState = StateStop
}

func (lara) Control(ctx registry.Context, num int16) {
	item, l := ctx.Item(num), ctx.Lara()
	if l == nil {
		return
	}
	st, ok := item.Data.(*state)
	if !ok {
		st = &state{}
		item.Data = st
	}
	in := ctx.Input()
	pressed := func(a core.Action) bool {
		return in.Has(a) && st.prev&(1<<uint(a)) == 0
	}
	defer func() { st.prev = in.Bits() }()

	if item.HitPoints <= 0 {
		die(ctx, num)
		return
	}
	room := ctx.Level().Room(item.Room)
	underwater := room != nil && room.Underwater()

	if in.Has(core.ActionLook) {
		look(l, in)
	} else {
		relaxHead(l)
		turn(item, in)
	}
	move(ctx, num, in, pressed, underwater)
	updateGuns(ctx, num, st, in, pressed, underwater)
	if pressed(core.ActionFlare) {
		throwFlare(ctx, num)
	}
	updateAir(item, l, underwater)

	old := item.Pos
	ctx.AnimateItem(num)
	collide(ctx, num, old, in, underwater)
	UpdateHair(ctx, num)
}

func turn(item *entity.Item, in core.InputFrame) {
	rate := int16(turnRate)
	if item.CurrentAnimState == StateRun {
		rate = fastTurnRate
	}
	if in.Has(core.ActionLeft) {
		item.Rot.Y -= rate
	}
	if in.Has(core.ActionRight) {
		item.Rot.Y += rate
	}
}

// move picks Lara's goal state and speeds from the input.
func move(ctx registry.Context, num int16, in core.InputFrame, pressed func(core.Action) bool, underwater bool) {
	item := ctx.Item(num)
	if underwater {
		item.Gravity = false
		item.FallSpeed = 0
		item.GoalAnimState = StateSwim
		item.Speed = 0
		if in.Has(core.ActionForward) {
			item.Speed = swimSpeed
		}
		if in.Has(core.ActionJump) {
			item.Pos.Y -= swimRise
		}
		if in.Has(core.ActionBack) {
			item.Pos.Y += swimRise
		}
		return
	}

	if item.Gravity {
		if item.FallSpeed > 0 {
			item.GoalAnimState = StateFall
		}
		return
	}

	switch {
	case pressed(core.ActionJump):
		item.GoalAnimState = StateJump
		item.Gravity = true
		item.FallSpeed = jumpSpeed
	case in.Has(core.ActionForward) && in.Has(core.ActionWalk):
		item.GoalAnimState = StateWalk
		item.Speed = walkSpeed
	case in.Has(core.ActionForward):
		item.GoalAnimState = StateRun
		item.Speed = runSpeed
	case in.Has(core.ActionBack):
		item.GoalAnimState = StateBack
		item.Speed = backSpeed
	case in.Has(core.ActionLeft) && !in.Has(core.ActionLook):
		item.GoalAnimState = StateTurnLeft
		item.Speed = 0
	case in.Has(core.ActionRight) && !in.Has(core.ActionLook):
		item.GoalAnimState = StateTurnRight
		item.Speed = 0
	default:
		item.GoalAnimState = StateStop
		item.Speed = 0
	}
}

// collide resolves Lara's move against the floor and ceiling: walls and
// steps higher than StepL stop her, drops make her fall unless she walks,
// and landing hard hurts.
func collide(ctx registry.Context, num int16, old core.Vec3, in core.InputFrame, underwater bool) {
	item := ctx.Item(num)
	sector, room := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	floor, ceiling := level.NoHeight, level.NoHeight
	if sector != nil {
		floor = ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
		ceiling = ctx.GetCeiling(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}

	blocked := sector == nil || floor == level.NoHeight ||
		floor < old.Y-core.StepL ||
		ceiling > floor-Height
	if !blocked && !item.Gravity && !underwater && floor > old.Y+core.StepL && in.Has(core.ActionWalk) {
		blocked = true
	}
	if blocked {
		item.Pos.X, item.Pos.Z = old.X, old.Z
		if !item.Gravity {
			item.Speed = 0
		}
		sector, room = ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
		if sector == nil {
			return
		}
		floor = ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
		ceiling = ctx.GetCeiling(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}

	switch {
	case underwater:
		item.Pos.Y = core.Clamp(item.Pos.Y, ceiling+core.ClickL, floor)
	case item.Gravity:
		if item.FallSpeed < 0 && item.Pos.Y-Height < ceiling {
			item.Pos.Y = ceiling + Height
			item.FallSpeed = 0
		}
		if item.Pos.Y >= floor {
			land(item, floor)
		}
	case floor > item.Pos.Y+core.StepL:
		item.Gravity = true
		item.FallSpeed = 0
		item.GoalAnimState = StateFall
	default:
		item.Pos.Y = floor
	}

	item.Floor = floor
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}
}

func land(item *entity.Item, floor int32) {
	if item.FallSpeed > damageStart {
		if item.FallSpeed > damageStart+damageLength {
			item.HitPoints = 0
		} else {
			over := int32(item.FallSpeed - damageStart)
			common.Damage(item, int16(HitPoints*over*over/(damageLength*damageLength)))
		}
	}
	item.Pos.Y = floor
	item.FallSpeed = 0
	item.Gravity = false
	item.Speed = 0
	if item.HitPoints > 0 {
		item.GoalAnimState = StateStop
	}
}

func die(ctx registry.Context, num int16) {
	item, l := ctx.Item(num), ctx.Lara()
	if item.CurrentAnimState != StateDeath {
		l.DeathCount++
		item.GoalAnimState = StateDeath
		l.GunStatus = registry.GunHolstered
		l.Target = entity.NoItem
	}
	item.Speed = 0
	old := item.Pos
	ctx.AnimateItem(num)
	collide(ctx, num, old, core.InputFrame{}, false)
	UpdateHair(ctx, num)
}

func updateAir(item *entity.Item, l *registry.Lara, underwater bool) {
	if !underwater {
		l.AirTimer = min(l.AirTimer+airRecovery, maxAir)
		return
	}
	l.AirTimer--
	if l.AirTimer < 0 {
		l.AirTimer = -1
		common.Damage(item, drownDamage)
	}
}

// throwFlare spawns a lit flare in front of Lara.
func throwFlare(ctx registry.Context, num int16) {
	item, l := ctx.Item(num), ctx.Lara()
	if l.Flares <= 0 {
		return
	}
	if f := ctx.Item(l.FlareItem); f != nil && f.InPlay() && f.Object == registry.ObjFlare {
		return
	}
	pos := core.Rotate(item.Pos, item.Rot.Y, core.ClickL)
	pos.Y -= core.StepL * 2
	n := ctx.CreateItem(registry.ObjFlare, pos, core.Rot{Y: item.Rot.Y}, item.Room)
	if n == entity.NoItem {
		return
	}
	f := ctx.Item(n)
	f.Speed = 24 + max(item.Speed, 0)/2
	f.FallSpeed = -12
	f.Gravity = true
	ctx.ActivateItem(n)
	l.Flares--
	l.FlareItem = n
	l.FlareAge = 0
	ctx.Logger().Debug("flare thrown", "item", n, "left", l.Flares)
}

func (g lara) Draw(d registry.Drawable, canvas *core.Canvas) {
	if d.State == StateDeath {
		canvas.Plot(d.Pose.Pos, 'x', core.ColorRed)
		return
	}
	canvas.Plot(d.Pose.Pos, g.Rune, g.Color)
}

func init() {
	registry.Register(registry.Object{
		ID:            registry.ObjLara,
		Name:          "lara",
		HitPoints:     HitPoints,
		Radius:        100,
		Shadow:        160,
		Frames:        1,
		SavePosition:  true,
		SaveHitpoints: true,
		SaveFlags:     true,
		SaveAnim:      true,
		Behavior:      lara{Glyph: registry.Glyph{Rune: '@', Color: core.ColorYellow}},
	})
}
