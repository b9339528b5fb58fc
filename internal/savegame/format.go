package savegame

import (
	"bytes"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Magic tags the current format. Legacy images carry no tag.
var Magic = []byte("TSG2")

// Version is the current format revision.
const Version = 1

const checksumSize = 8

// Item state bits of the current format.
const (
	bitActive     uint8 = 0x01
	bitGravity    uint8 = 0x02
	bitCollidable uint8 = 0x04
)

// layout says which record sections an item carries.
type layout struct {
	Position, Anim, HitPoints, Flags bool
}

func layoutOf(obj *registry.Object) layout {
	if obj == nil {
		return layout{}
	}
	return layout{
		Position:  obj.SavePosition,
		Anim:      obj.SaveAnim,
		HitPoints: obj.SaveHitpoints,
		Flags:     obj.SaveFlags,
	}
}

// layouts returns the record layout of every level item in order.
func layouts(w *engine.World) ([]layout, []*registry.Object) {
	items := w.Items()
	out := make([]layout, items.LevelCount)
	objs := make([]*registry.Object, items.LevelCount)
	for i := range out {
		obj, _ := registry.Lookup(items.Get(int16(i)).Object)
		out[i], objs[i] = layoutOf(obj), obj
	}
	return out, objs
}

// Save captures a world and encodes it in the current format. It panics
// with *OverflowError when the image exceeds MaxSize.
func Save(w *engine.World) []byte {
	return Encode(Capture(w))
}

// Encode writes a state in the current format.
func Encode(st *State) []byte {
	wr := newWriter()
	wr.bytes(Magic)
	wr.u16(Version)
	wr.i16(st.Level)
	wr.bool(st.FlipStatus)
	wr.bytes(st.FlipFlags[:])
	wr.u16(uint16(len(st.Items)))
	writeLara(wr, &st.Lara, false)
	for i := range st.Items {
		writeItem(wr, &st.Items[i])
	}
	wr.u64(xxh3.Hash(wr.buf))
	return wr.buf
}

// Decode parses a save image for a world without touching it. The format
// is detected by its tag.
func Decode(w *engine.World, data []byte) (*State, error) {
	if bytes.HasPrefix(data, Magic) {
		return decodeCurrent(w, data)
	}
	return decodeLegacy(w, data)
}

// Load decodes a save image and applies it. A failed load leaves the
// world as it was.
func Load(w *engine.World, data []byte) error {
	st, err := Decode(w, data)
	if err == nil {
		err = Apply(w, st)
	}
	if err != nil {
		w.Logger().Warn("load failed", "err", err, "size", len(data))
	}
	return err
}

func decodeCurrent(w *engine.World, data []byte) (*State, error) {
	if len(data) < len(Magic)+checksumSize {
		return nil, ErrSizeMismatch
	}
	body := data[:len(data)-checksumSize]
	r := newReader(data[len(body):])
	if r.u64() != xxh3.Hash(body) {
		return nil, fmt.Errorf("%w: checksum", ErrCorrupt)
	}

	r = newReader(body)
	r.take(len(Magic))
	if v := r.u16(); v != Version {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, v)
	}
	st := &State{Level: r.i16(), FlipStatus: r.bool()}
	copy(st.FlipFlags[:], r.take(len(st.FlipFlags)))

	lays, _ := layouts(w)
	if n := int(r.u16()); n != len(lays) {
		return nil, fmt.Errorf("%w: %d items, level has %d", ErrSizeMismatch, n, len(lays))
	}
	readLara(r, &st.Lara, false)
	st.Items = make([]ItemRecord, len(lays))
	for i, lay := range lays {
		readItem(r, &st.Items[i], lay)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSizeMismatch, r.remaining())
	}
	return st, nil
}

func writeLara(wr *writer, l *LaraRecord, legacy bool) {
	wr.i16(l.GunStatus)
	wr.i16(l.GunType)
	for _, arm := range []*ArmRecord{&l.LeftArm, &l.RightArm} {
		writeRot(wr, arm.Rot)
		wr.i16(arm.FrameNum)
		if legacy {
			wr.i16(boolToI16(arm.Lock))
		} else {
			wr.bool(arm.Lock)
		}
	}
	writeRot(wr, l.HeadRot)
	writeRot(wr, l.TorsoRot)
	wr.i16(l.AirTimer)
	wr.i16(l.Flares)
	for _, a := range l.Ammo {
		wr.i32(a)
	}
	if !legacy {
		for _, c := range l.Clips {
			wr.i16(c)
		}
	}
	wr.i16(l.DeathCount)
}

func readLara(r *reader, l *LaraRecord, legacy bool) {
	l.GunStatus = r.i16()
	l.GunType = r.i16()
	for _, arm := range []*ArmRecord{&l.LeftArm, &l.RightArm} {
		arm.Rot = readRot(r)
		arm.FrameNum = r.i16()
		if legacy {
			arm.Lock = r.i16() != 0
		} else {
			arm.Lock = r.bool()
		}
	}
	l.HeadRot = readRot(r)
	l.TorsoRot = readRot(r)
	l.AirTimer = r.i16()
	l.Flares = r.i16()
	for i := range l.Ammo {
		l.Ammo[i] = r.i32()
	}
	if !legacy {
		for i := range l.Clips {
			l.Clips[i] = r.i16()
		}
	}
	l.DeathCount = r.i16()
}

// writeCommon writes the position, animation and hit point sections.
func writeCommon(wr *writer, rec *ItemRecord) {
	if rec.HasPosition {
		wr.i32(rec.Pos.X)
		wr.i32(rec.Pos.Y)
		wr.i32(rec.Pos.Z)
		writeRot(wr, rec.Rot)
		wr.i16(rec.Room)
		wr.i16(rec.Speed)
		wr.i16(rec.FallSpeed)
	}
	if rec.HasAnim {
		wr.i16(rec.CurrentAnimState)
		wr.i16(rec.GoalAnimState)
		wr.i16(rec.RequiredAnimState)
		wr.i16(rec.AnimNum)
		wr.i16(rec.FrameNum)
	}
	if rec.HasHitPoints {
		wr.i16(rec.HitPoints)
	}
}

func readCommon(r *reader, rec *ItemRecord, lay layout) {
	if lay.Position {
		rec.HasPosition = true
		rec.Pos.X, rec.Pos.Y, rec.Pos.Z = r.i32(), r.i32(), r.i32()
		rec.Rot = readRot(r)
		rec.Room = r.i16()
		rec.Speed = r.i16()
		rec.FallSpeed = r.i16()
	}
	if lay.Anim {
		rec.HasAnim = true
		rec.CurrentAnimState = r.i16()
		rec.GoalAnimState = r.i16()
		rec.RequiredAnimState = r.i16()
		rec.AnimNum = r.i16()
		rec.FrameNum = r.i16()
	}
	if lay.HitPoints {
		rec.HasHitPoints = true
		rec.HitPoints = r.i16()
	}
}

func writeItem(wr *writer, rec *ItemRecord) {
	writeCommon(wr, rec)
	if !rec.HasFlags {
		return
	}
	wr.u16(uint16(rec.Flags))
	wr.i16(rec.Timer)
	wr.u8(uint8(rec.Status))
	var bits uint8
	if rec.Active {
		bits |= bitActive
	}
	if rec.Gravity {
		bits |= bitGravity
	}
	if rec.Collidable {
		bits |= bitCollidable
	}
	wr.u8(bits)
	writeCreature(wr, rec.Creature)
}

func readItem(r *reader, rec *ItemRecord, lay layout) {
	readCommon(r, rec, lay)
	if !lay.Flags {
		return
	}
	rec.HasFlags = true
	rec.Flags = entity.Flags(r.u16())
	rec.Timer = r.i16()
	rec.Status = entity.Status(r.u8())
	bits := r.u8()
	rec.Active = bits&bitActive != 0
	rec.Gravity = bits&bitGravity != 0
	rec.Collidable = bits&bitCollidable != 0
	rec.Creature = readCreature(r)
}

// writeCreature writes the presence byte and, when set, the creature
// record.
func writeCreature(wr *writer, c *CreatureRecord) {
	if c == nil {
		wr.u8(0)
		return
	}
	wr.u8(1)
	wr.i16(c.HeadRotation)
	wr.i16(c.NeckRotation)
	wr.i16(c.MaximumTurn)
	wr.u16(c.Flags)
	wr.u8(uint8(c.Mood))
}

func readCreature(r *reader) *CreatureRecord {
	if r.u8() == 0 {
		return nil
	}
	return &CreatureRecord{
		HeadRotation: r.i16(),
		NeckRotation: r.i16(),
		MaximumTurn:  r.i16(),
		Flags:        r.u16(),
		Mood:         entity.Mood(r.u8()),
	}
}
