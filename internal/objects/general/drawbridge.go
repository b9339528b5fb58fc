package general

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// drawbridgeLength is the number of sectors a lowered bridge spans in
// front of its hinge.
const drawbridgeLength = 2

type drawbridge struct {
	registry.Glyph
}

func (drawbridge) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	if common.TriggerActive(item) {
		item.GoalAnimState = Open
	} else {
		item.GoalAnimState = Closed
	}
	ctx.AnimateItem(num)
}

func (drawbridge) Collision(ctx registry.Context, num, laraNum int16) {
	if ctx.Item(num).CurrentAnimState == Closed {
		common.PushLara(ctx, num, laraNum, core.WallL/2)
	}
}

// onBridge reports whether world (x, z) lies on one of the sectors the
// lowered bridge covers.
func onBridge(ctx registry.Context, num int16, x, z int32) bool {
	item := ctx.Item(num)
	xs, zs := x>>core.WallShift, z>>core.WallShift
	for i := int32(1); i <= drawbridgeLength; i++ {
		p := core.Rotate(item.Pos, item.Rot.Y, i*core.WallL)
		if p.X>>core.WallShift == xs && p.Z>>core.WallShift == zs {
			return true
		}
	}
	return false
}

func (drawbridge) FloorHeight(ctx registry.Context, num int16, x, y, z, height int32) int32 {
	item := ctx.Item(num)
	if item.CurrentAnimState != Open || !onBridge(ctx, num, x, z) {
		return height
	}
	if y <= item.Pos.Y {
		return item.Pos.Y
	}
	return height
}

func (drawbridge) CeilingHeight(ctx registry.Context, num int16, x, y, z, height int32) int32 {
	item := ctx.Item(num)
	if item.CurrentAnimState != Open || !onBridge(ctx, num, x, z) {
		return height
	}
	if y > item.Pos.Y {
		return item.Pos.Y + core.StepL
	}
	return height
}

func (d drawbridge) Draw(dr registry.Drawable, canvas *core.Canvas) {
	if dr.State != Open {
		canvas.Plot(dr.Pose.Pos, '|', d.Color)
		return
	}
	for i := int32(1); i <= drawbridgeLength; i++ {
		canvas.Plot(core.Rotate(dr.Pose.Pos, dr.Pose.Rot.Y, i*core.WallL), d.Rune, d.Color)
	}
}

func init() {
	registry.Register(registry.Object{
		ID:        registry.ObjDrawbridge,
		Name:      "drawbridge",
		Frames:    4,
		AnimIndex: 32,
		SaveFlags: true,
		SaveAnim:  true,
		Behavior:  drawbridge{Glyph: registry.Glyph{Rune: '=', Color: core.ColorOrange}},
	})
}
