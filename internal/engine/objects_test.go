package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Object ids used only by these tests.
const (
	objPlatform entity.ObjectID = 500
	objMover    entity.ObjectID = 501
	objPanicker entity.ObjectID = 502
	objSpark    entity.ObjectID = 503
	objShell    entity.ObjectID = 504
	objCreature entity.ObjectID = 506
	objDoor     entity.ObjectID = 508
	objFlipper  entity.ObjectID = 509
	objAnimated entity.ObjectID = 510
)

type testLara struct{ registry.Base }

func (testLara) Control(ctx registry.Context, num int16) {
	ctx.AnimateItem(num)
}

type platform struct{ registry.Base }

func (platform) FloorHeight(ctx registry.Context, num int16, x, y, z, height int32) int32 {
	if ctx.Item(num).CurrentAnimState == 1 {
		return height - core.StepL
	}
	return height
}

type mover struct{ registry.Base }

func (mover) Control(ctx registry.Context, num int16) {
	item := ctx.Item(num)
	item.Pos.X += 16
	item.Pos.Z += ctx.Random().Control()%33 - 16
}

type panicker struct{ registry.Base }

func (panicker) Control(ctx registry.Context, num int16) {
	panic("boom")
}

type spark struct{ registry.Base }

func (spark) Control(ctx registry.Context, num int16) {
	fx := ctx.Effect(num)
	fx.Counter++
	if fx.Counter >= 2 {
		ctx.KillEffect(num)
	}
}

type shell struct{ registry.Base }

func (shell) Control(ctx registry.Context, num int16) {
	ctx.MorphEffect(num, objSpark)
}

var flipCalls = map[registry.FlipStage]int{}

type flipper struct{ registry.Base }

func (flipper) HandleRoomFlip(ctx registry.Context, num int16, stage registry.FlipStage) {
	flipCalls[stage]++
}

func init() {
	registry.Register(registry.Object{ID: registry.ObjLara, Name: "lara", HitPoints: 1000, Behavior: testLara{}})
	registry.Register(registry.Object{ID: objPlatform, Name: "platform", Behavior: platform{}})
	registry.Register(registry.Object{ID: objMover, Name: "mover", Behavior: mover{}})
	registry.Register(registry.Object{ID: objPanicker, Name: "panicker", Behavior: panicker{}})
	registry.Register(registry.Object{ID: objSpark, Name: "spark", Kind: registry.KindEffect, Behavior: spark{}})
	registry.Register(registry.Object{ID: objShell, Name: "shell", Kind: registry.KindEffect, Behavior: shell{}})
	registry.Register(registry.Object{ID: objCreature, Name: "creature", HitPoints: 6, Intelligent: true, Behavior: registry.Base{}})
	registry.Register(registry.Object{ID: objDoor, Name: "door", Behavior: registry.Base{}})
	registry.Register(registry.Object{ID: objFlipper, Name: "flipper", Behavior: flipper{}})
	registry.Register(registry.Object{ID: objAnimated, Name: "animated", Frames: 4, AnimIndex: 10, Behavior: registry.Base{}})
}
