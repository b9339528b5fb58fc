package general

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// FlareLife is how many ticks a flare burns.
const FlareLife = 30 * 60

// flareData counts how long a flare has burnt.
type flareData struct {
	Age int16
}

func (*flareData) DataKind() string { return "flare" }

type flare struct {
	registry.Glyph
}

func (flare) Initialise(ctx registry.Context, num int16) {
	ctx.Item(num).Data = &flareData{}
}

func (flare) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	d, ok := item.Data.(*flareData)
	if !ok {
		d = &flareData{}
		item.Data = d
	}
	d.Age++

	lara := ctx.Lara()
	if lara != nil && lara.FlareItem == num {
		lara.FlareAge = d.Age
	}
	if d.Age >= FlareLife {
		if lara != nil && lara.FlareItem == num {
			lara.FlareItem = entity.NoItem
		}
		ctx.KillItem(num)
		return
	}
	if !item.Gravity && item.Speed == 0 {
		return
	}

	old := item.Pos
	ctx.AnimateItem(num)
	sector, room := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	floor := level.NoHeight
	if sector != nil {
		floor = ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}
	if floor == level.NoHeight || floor < old.Y-core.StepL {
		// Bounced off a wall.
		item.Pos.X, item.Pos.Z = old.X, old.Z
		item.Rot.Y += core.Deg180
		item.Speed /= 2
		sector, room = ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
		if sector == nil {
			return
		}
		floor = ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}
	if item.Pos.Y >= floor {
		item.Pos.Y = floor
		item.FallSpeed = 0
		item.Gravity = false
		item.Speed /= 2
	}
	item.Floor = floor
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}
}

func (flare) Collision(ctx registry.Context, num, laraNum int16) {
	item, laraItem, lara := ctx.Item(num), ctx.Item(laraNum), ctx.Lara()
	if lara == nil || item.Gravity || !ctx.Input().Has(core.ActionAction) || lara.GunStatus != registry.GunHolstered {
		return
	}
	d, _ := item.Data.(*flareData)
	if d != nil && d.Age > FlareLife/2 {
		return
	}
	if common.Near(item.Pos, laraItem.Pos, core.StepL, core.StepL) {
		lara.Flares++
		if lara.FlareItem == num {
			lara.FlareItem = entity.NoItem
		}
		ctx.KillItem(num)
	}
}

func (f flare) Draw(d registry.Drawable, canvas *core.Canvas) {
	col := f.Color
	if d.Frame%4 == 0 {
		col = core.ColorYellow
	}
	canvas.Plot(d.Pose.Pos, f.Rune, col)
}

func init() {
	registry.Register(registry.Object{
		ID:       registry.ObjFlare,
		Name:     "flare",
		Frames:   8,
		Behavior: flare{Glyph: registry.Glyph{Rune: '*', Color: core.ColorOrange}},
	})
}
