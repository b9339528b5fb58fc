package lara

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

const (
	hairLength   = 48
	hairGravity  = 10
	hairHead     = 700
	hairBackward = 32
)

// UpdateHair pins the first segment behind Lara's head and drags the rest
// of the chain after it at fixed link length, letting it sag and resting
// it on the floor.
func UpdateHair(ctx registry.Context, num int16) {
	item, l := ctx.Item(num), ctx.Lara()
	if l == nil {
		return
	}
	room := ctx.Level().Room(item.Room)
	sag := int32(hairGravity)
	if room != nil && room.Underwater() {
		sag /= 2
	}

	head := core.Rotate(item.Pos, item.Rot.Y+l.HeadRot.Y, -hairBackward)
	head.Y -= hairHead
	l.Hair[0].Pos = head
	l.Hair[0].Rot = core.Rot{Y: item.Rot.Y}

	for i := 1; i < len(l.Hair); i++ {
		prev := l.Hair[i-1].Pos
		seg := &l.Hair[i]
		seg.Pos.Y += sag
		if sector, _ := ctx.GetSector(seg.Pos.X, seg.Pos.Y, seg.Pos.Z, item.Room); sector != nil {
			if floor := ctx.GetHeight(sector, seg.Pos.X, seg.Pos.Y, seg.Pos.Z); floor != level.NoHeight && seg.Pos.Y > floor {
				seg.Pos.Y = floor
			}
		}

		d := seg.Pos.Sub(prev)
		dist := core.Sqrt(int64(d.X)*int64(d.X) + int64(d.Y)*int64(d.Y) + int64(d.Z)*int64(d.Z))
		if dist == 0 {
			d, dist = core.Vec3{Y: hairLength}, hairLength
		}
		seg.Pos = core.Vec3{
			X: prev.X + d.X*hairLength/dist,
			Y: prev.Y + d.Y*hairLength/dist,
			Z: prev.Z + d.Z*hairLength/dist,
		}

		back := prev.Sub(seg.Pos)
		seg.Rot.Y = core.Atan(back.Z, back.X)
		seg.Rot.X = -core.Atan(core.Sqrt(core.Dist2D(prev, seg.Pos)), back.Y)
	}
}
