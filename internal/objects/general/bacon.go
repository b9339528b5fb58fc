package general

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/objects/lara"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// baconHurt multiplies damage dealt to the doppelganger onto Lara.
const baconHurt = 10

// baconData is the point the doppelganger mirrors Lara through.
type baconData struct {
	Center core.Vec3
}

func (*baconData) DataKind() string { return "bacon_lara" }

// baconLara mirrors Lara's position through a fixed point and passes any
// damage it takes on to her.
type baconLara struct {
	registry.Glyph
}

func (baconLara) Initialise(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	if laraItem := ctx.Item(ctx.LaraNum()); laraItem != nil {
		item.Data = mirror(item, laraItem)
	}
}

// mirror places the mirror point halfway between the doppelganger and Lara.
func mirror(item, laraItem *entity.Item) *baconData {
	return &baconData{Center: core.Vec3{
		X: (item.Pos.X + laraItem.Pos.X) / 2,
		Z: (item.Pos.Z + laraItem.Pos.Z) / 2,
	}}
}

func (baconLara) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	laraItem := ctx.Item(ctx.LaraNum())
	if laraItem == nil {
		return
	}

	if obj, ok := registry.Lookup(item.Object); ok && item.HitPoints < obj.HitPoints {
		common.Damage(laraItem, (obj.HitPoints-item.HitPoints)*baconHurt)
		item.HitPoints = obj.HitPoints
	}

	d, ok := item.Data.(*baconData)
	if !ok {
		d = mirror(item, laraItem)
		item.Data = d
	}

	if item.CurrentAnimState == lara.StateDeath {
		falling(ctx, num)
		return
	}

	x := 2*d.Center.X - laraItem.Pos.X
	z := 2*d.Center.Z - laraItem.Pos.Z
	sector, room := ctx.GetSector(x, laraItem.Pos.Y, z, item.Room)
	if sector == nil {
		return
	}
	floor := ctx.GetHeight(sector, x, laraItem.Pos.Y, z)
	if floor == level.NoHeight {
		return
	}

	item.Pos = core.Vec3{X: x, Y: laraItem.Pos.Y, Z: z}
	item.Rot = laraItem.Rot
	item.Rot.Y += core.Deg180
	item.CurrentAnimState = laraItem.CurrentAnimState
	item.GoalAnimState = laraItem.GoalAnimState
	item.FrameNum = laraItem.FrameNum
	item.Floor = floor
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}

	if floor > laraItem.Floor+core.WallL {
		// Mirrored into a pit.
		item.CurrentAnimState = lara.StateDeath
		item.GoalAnimState = lara.StateDeath
		item.Gravity = true
		item.Speed = 0
	}
}

func falling(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	if !item.Gravity {
		return
	}
	ctx.AnimateItem(num)
	sector, room := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	if sector == nil {
		return
	}
	if floor := ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z); floor != level.NoHeight && item.Pos.Y >= floor {
		item.Pos.Y = floor
		item.Gravity = false
		item.FallSpeed = 0
	}
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}
}

func (baconLara) HandleSaveStage(ctx registry.Context, num int16, stage registry.SaveStage) {
	if stage == registry.SaveAfterLoad {
		// The mirror point is recomputed from the restored positions.
		ctx.Item(num).Data = nil
	}
}

func init() {
	registry.Register(registry.Object{
		ID:            registry.ObjBaconLara,
		Name:          "bacon_lara",
		HitPoints:     1000,
		Frames:        1,
		SavePosition:  true,
		SaveHitpoints: true,
		SaveFlags:     true,
		SaveAnim:      true,
		Behavior:      baconLara{Glyph: registry.Glyph{Rune: '@', Color: core.ColorCyan}},
	})
}
