package savegame

import (
	"fmt"

	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/entity"
)

// Packed state word of the legacy format.
const (
	legacyActive     uint16 = 0x0001
	legacyStatusMask uint16 = 0x0006
	legacyStatusShift       = 1
	legacyGravity    uint16 = 0x0008
	legacyCollidable uint16 = 0x0010
	legacyCreature   uint16 = 0x8000
)

func decodeLegacy(w *engine.World, data []byte) (*State, error) {
	lays, objs := layouts(w)
	if fix := legacyFix(w, data, lays, objs); fix != nil {
		return fix()
	}
	return decodeLegacyWith(data, lays)
}

// decodeLegacyWith parses a legacy image with explicit per-item layouts.
// The image carries no item count or checksum, so it must be consumed
// exactly.
func decodeLegacyWith(data []byte, lays []layout) (*State, error) {
	r := newReader(data)
	st := &State{Legacy: true, Level: r.i16(), FlipStatus: r.i32() != 0}
	copy(st.FlipFlags[:], r.take(len(st.FlipFlags)))
	readLara(r, &st.Lara, true)

	st.Items = make([]ItemRecord, len(lays))
	for i, lay := range lays {
		rec := &st.Items[i]
		readCommon(r, rec, lay)
		if !lay.Flags {
			continue
		}
		rec.HasFlags = true
		rec.Flags = entity.Flags(r.u16())
		rec.Timer = r.i16()
		packed := r.u16()
		rec.Active = packed&legacyActive != 0
		rec.Status = entity.Status((packed & legacyStatusMask) >> legacyStatusShift)
		rec.Gravity = packed&legacyGravity != 0
		rec.Collidable = packed&legacyCollidable != 0
		if packed&legacyCreature != 0 {
			rec.Creature = &CreatureRecord{
				HeadRotation: r.i16(),
				NeckRotation: r.i16(),
				MaximumTurn:  r.i16(),
				Flags:        r.u16(),
				Mood:         entity.Mood(r.i16()),
			}
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSizeMismatch, r.remaining())
	}
	return st, nil
}

// encodeLegacy writes a state in the legacy layout, following each
// record's Has fields.
func encodeLegacy(st *State) []byte {
	wr := newWriter()
	wr.i16(st.Level)
	if st.FlipStatus {
		wr.i32(1)
	} else {
		wr.i32(0)
	}
	wr.bytes(st.FlipFlags[:])
	writeLara(wr, &st.Lara, true)
	for i := range st.Items {
		rec := &st.Items[i]
		writeCommon(wr, rec)
		if !rec.HasFlags {
			continue
		}
		wr.u16(uint16(rec.Flags))
		wr.i16(rec.Timer)
		packed := uint16(rec.Status)<<legacyStatusShift&legacyStatusMask
		if rec.Active {
			packed |= legacyActive
		}
		if rec.Gravity {
			packed |= legacyGravity
		}
		if rec.Collidable {
			packed |= legacyCollidable
		}
		if rec.Creature != nil {
			packed |= legacyCreature
		}
		wr.u16(packed)
		if c := rec.Creature; c != nil {
			wr.i16(c.HeadRotation)
			wr.i16(c.NeckRotation)
			wr.i16(c.MaximumTurn)
			wr.u16(c.Flags)
			wr.i16(int16(c.Mood))
		}
	}
	return wr.buf
}
