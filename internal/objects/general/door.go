// Package general implements the non-intelligent level objects: doors,
// bridges, traps, pickups and the mirrored doppelganger.
package general

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/objects/ai"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Door and drawbridge states.
const (
	Closed int16 = iota
	Open
)

// doorData remembers which pathing box a door blocks.
type doorData struct {
	Box int16
}

func (*doorData) DataKind() string { return "door" }

type door struct {
	registry.Base
}

func (door) Initialise(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	d := &doorData{Box: box.NoBox}
	item.Data = d
	refreshDoor(ctx, num)
}

func (door) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	if common.TriggerActive(item) {
		item.GoalAnimState = Open
	} else {
		item.GoalAnimState = Closed
	}
	ctx.AnimateItem(num)
	applyDoor(ctx, num)
}

func (door) Collision(ctx registry.Context, num, laraNum int16) {
	if ctx.Item(num).CurrentAnimState == Closed {
		common.PushLara(ctx, num, laraNum, core.WallL/2+core.ClickL)
	}
}

func (door) HandleRoomFlip(ctx registry.Context, num int16, stage registry.FlipStage) {
	switch stage {
	case registry.FlipBefore:
		if d := data(ctx, num); d != nil && ctx.Boxes().Valid(d.Box) {
			ctx.Boxes().Unblock(d.Box)
		}
	case registry.FlipAfter:
		refreshDoor(ctx, num)
	}
}

func (door) HandleSaveStage(ctx registry.Context, num int16, stage registry.SaveStage) {
	if stage == registry.SaveAfterLoad {
		refreshDoor(ctx, num)
	}
}

func (door) Draw(d registry.Drawable, canvas *core.Canvas) {
	if d.State == Open {
		canvas.Plot(d.Pose.Pos, '\'', core.ColorGray)
		return
	}
	canvas.Plot(d.Pose.Pos, '+', core.ColorYellow)
}

func data(ctx registry.Context, num int16) *doorData {
	d, _ := ctx.Item(num).Data.(*doorData)
	return d
}

// refreshDoor looks up the box under the door in the current geometry and
// applies the door's state to it.
func refreshDoor(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	d := data(ctx, num)
	if d == nil {
		return
	}
	d.Box = ai.BoxAt(ctx, item.Pos, item.Room)
	applyDoor(ctx, num)
}

func applyDoor(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	d := data(ctx, num)
	if d == nil || !ctx.Boxes().Valid(d.Box) {
		return
	}
	if item.CurrentAnimState == Open {
		ctx.Boxes().Unblock(d.Box)
	} else {
		ctx.Boxes().Block(d.Box)
	}
}

func init() {
	registry.Register(registry.Object{
		ID:        registry.ObjDoor,
		Name:      "door",
		Frames:    4,
		AnimIndex: 30,
		SaveFlags: true,
		SaveAnim:  true,
		Behavior:  door{},
	})
}
