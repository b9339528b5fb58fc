package engine

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Hash returns a digest of the authoritative world state. Two worlds fed
// the same level, seed and inputs hash equal after every tick.
func (w *World) Hash() uint64 {
	b := make([]byte, 0, 64*(len(w.items.Items)+len(w.effects.Effects)/2+4))
	le := binary.LittleEndian

	b = le.AppendUint64(b, w.tick)
	control, draw := w.rnd.State()
	b = le.AppendUint32(b, uint32(control))
	b = le.AppendUint32(b, uint32(draw))
	b = appendBool(b, w.lvl.FlipStatus)
	b = append(b, w.lvl.FlipFlags[:]...)

	for i := range w.items.Items {
		it := &w.items.Items[i]
		if !it.InUse {
			continue
		}
		b = le.AppendUint16(b, uint16(it.Num))
		b = le.AppendUint16(b, uint16(it.Object))
		b = appendVec(b, it.Pos.X, it.Pos.Y, it.Pos.Z)
		b = appendInt16s(b, it.Rot.X, it.Rot.Y, it.Rot.Z, it.Room,
			it.CurrentAnimState, it.GoalAnimState, it.RequiredAnimState,
			it.AnimNum, it.FrameNum, it.Speed, it.FallSpeed, it.HitPoints,
			int16(it.Flags), it.Timer)
		b = append(b, byte(it.Status))
		b = appendBool(b, it.Active)
	}

	for _, num := range w.effects.ActiveEffects() {
		fx := w.effects.Get(num)
		b = le.AppendUint16(b, uint16(fx.Num))
		b = le.AppendUint16(b, uint16(fx.Object))
		b = appendVec(b, fx.Pos.X, fx.Pos.Y, fx.Pos.Z)
		b = appendInt16s(b, fx.Rot.Y, fx.Room, fx.Speed, fx.FallSpeed, fx.FrameNum, fx.Counter)
	}

	c := w.camera
	b = append(b, byte(c.Type))
	b = appendVec(b, c.Pos.Pos.X, c.Pos.Pos.Y, c.Pos.Pos.Z)
	b = appendVec(b, c.Target.Pos.X, c.Target.Pos.Y, c.Target.Pos.Z)

	if w.lara != nil {
		b = appendInt16s(b, w.lara.GunStatus, w.lara.GunType, w.lara.Target, w.lara.Flares)
	}
	return xxh3.Hash(b)
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendVec(b []byte, x, y, z int32) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(x))
	b = binary.LittleEndian.AppendUint32(b, uint32(y))
	return binary.LittleEndian.AppendUint32(b, uint32(z))
}

func appendInt16s(b []byte, vs ...int16) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint16(b, uint16(v))
	}
	return b
}
