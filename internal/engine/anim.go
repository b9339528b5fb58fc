package engine

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Fall acceleration.
const (
	gravity       = 6
	fastFallSpeed = 128
)

// AnimateItem advances an item's animation by one frame and integrates
// its speeds. The goal state becomes current at the end of a cycle.
func (w *World) AnimateItem(num int16) {
	item := w.items.Get(num)
	if item == nil || !item.InUse {
		return
	}
	frames := int16(1)
	animBase := int16(0)
	if obj, ok := registry.Lookup(item.Object); ok {
		frames = max(obj.Frames, 1)
		animBase = obj.AnimIndex
	}

	item.FrameNum++
	if item.FrameNum >= frames {
		item.FrameNum = 0
		if item.CurrentAnimState != item.GoalAnimState {
			item.CurrentAnimState = item.GoalAnimState
			item.AnimNum = animBase + item.CurrentAnimState
		}
		if item.RequiredAnimState == item.CurrentAnimState {
			item.RequiredAnimState = 0
		}
	}

	if item.Gravity {
		if item.FallSpeed < fastFallSpeed {
			item.FallSpeed += gravity
		} else {
			item.FallSpeed++
		}
		item.Pos.Y += int32(item.FallSpeed)
	}
	item.Pos = core.Rotate(item.Pos, item.Rot.Y, int32(item.Speed))
}
