package savegame

import (
	"fmt"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// State is a decoded save, staged before it touches a world.
type State struct {
	Legacy     bool
	Level      int16
	FlipStatus bool
	FlipFlags  [level.MaxFlipMaps]uint8
	Lara       LaraRecord
	Items      []ItemRecord
}

// ItemRecord is one level item. The Has fields mirror the object's save
// flags at the time the record was written.
type ItemRecord struct {
	HasPosition bool
	Pos         core.Vec3
	Rot         core.Rot
	Room        int16
	Speed       int16
	FallSpeed   int16

	HasAnim           bool
	CurrentAnimState  int16
	GoalAnimState     int16
	RequiredAnimState int16
	AnimNum           int16
	FrameNum          int16

	HasHitPoints bool
	HitPoints    int16

	HasFlags   bool
	Flags      entity.Flags
	Timer      int16
	Status     entity.Status
	Active     bool
	Gravity    bool
	Collidable bool
	Creature   *CreatureRecord
}

// CreatureRecord is the saved part of a creature block.
type CreatureRecord struct {
	HeadRotation int16
	NeckRotation int16
	MaximumTurn  int16
	Flags        uint16
	Mood         entity.Mood
}

// LaraRecord is the saved part of Lara's extension block.
type LaraRecord struct {
	GunStatus  int16
	GunType    int16
	LeftArm    ArmRecord
	RightArm   ArmRecord
	HeadRot    core.Rot
	TorsoRot   core.Rot
	AirTimer   int16
	Flares     int16
	Ammo       [4]int32
	Clips      [4]int16
	DeathCount int16
}

// ArmRecord is the saved pose of one arm.
type ArmRecord struct {
	Rot      core.Rot
	FrameNum int16
	Lock     bool
}

// Capture snapshots a world into a State.
func Capture(w *engine.World) *State {
	lvl := w.Level()
	st := &State{
		Level:      int16(lvl.Number),
		FlipStatus: lvl.FlipStatus,
		FlipFlags:  lvl.FlipFlags,
	}
	if l := w.Lara(); l != nil {
		st.Lara = LaraRecord{
			GunStatus:  l.GunStatus,
			GunType:    l.GunType,
			LeftArm:    ArmRecord{Rot: l.LeftArm.Rot, FrameNum: l.LeftArm.FrameNum, Lock: l.LeftArm.Lock},
			RightArm:   ArmRecord{Rot: l.RightArm.Rot, FrameNum: l.RightArm.FrameNum, Lock: l.RightArm.Lock},
			HeadRot:    l.HeadRot,
			TorsoRot:   l.TorsoRot,
			AirTimer:   l.AirTimer,
			Flares:     l.Flares,
			Ammo:       l.Ammo,
			Clips:      l.Clips,
			DeathCount: l.DeathCount,
		}
	}

	items := w.Items()
	st.Items = make([]ItemRecord, items.LevelCount)
	for i := range st.Items {
		item := items.Get(int16(i))
		obj, ok := registry.Lookup(item.Object)
		if !ok {
			continue
		}
		st.Items[i] = capture(item, obj)
	}
	return st
}

func capture(item *entity.Item, obj *registry.Object) ItemRecord {
	rec := ItemRecord{}
	if obj.SavePosition {
		rec.HasPosition = true
		rec.Pos, rec.Rot = item.Pos, item.Rot
		rec.Room, rec.Speed, rec.FallSpeed = item.Room, item.Speed, item.FallSpeed
	}
	if obj.SaveAnim {
		rec.HasAnim = true
		rec.CurrentAnimState = item.CurrentAnimState
		rec.GoalAnimState = item.GoalAnimState
		rec.RequiredAnimState = item.RequiredAnimState
		rec.AnimNum = item.AnimNum
		rec.FrameNum = item.FrameNum
	}
	if obj.SaveHitpoints {
		rec.HasHitPoints = true
		rec.HitPoints = item.HitPoints
	}
	if obj.SaveFlags {
		rec.HasFlags = true
		rec.Flags, rec.Timer = item.Flags, item.Timer
		rec.Status, rec.Active = item.Status, item.Active
		rec.Gravity, rec.Collidable = item.Gravity, item.Collidable
		if c := item.Creature(); obj.Intelligent && c != nil {
			rec.Creature = &CreatureRecord{
				HeadRotation: c.HeadRotation,
				NeckRotation: c.NeckRotation,
				MaximumTurn:  c.MaximumTurn,
				Flags:        c.Flags,
				Mood:         c.Mood,
			}
		}
	}
	return rec
}

// validate checks a staged state against the world it will be applied to.
func (st *State) validate(w *engine.World) error {
	if len(st.Items) != w.Items().LevelCount {
		return fmt.Errorf("%w: %d items, level has %d", ErrSizeMismatch, len(st.Items), w.Items().LevelCount)
	}
	lvl := w.Level()
	for i, rec := range st.Items {
		if rec.HasPosition && !killed(rec.Flags) && !lvl.ValidRoom(rec.Room) {
			return fmt.Errorf("%w: item %d in invalid room %d", ErrCorrupt, i, rec.Room)
		}
		if rec.HasFlags && rec.Status > entity.StatusInvisible {
			return fmt.Errorf("%w: item %d has status %d", ErrCorrupt, i, rec.Status)
		}
	}
	if st.Lara.GunType < 0 || st.Lara.GunType > registry.GunShotgun {
		return fmt.Errorf("%w: gun type %d", ErrCorrupt, st.Lara.GunType)
	}
	return nil
}

// Apply validates a staged state and writes it into a world. A state that
// fails validation leaves the world untouched.
func Apply(w *engine.World, st *State) error {
	if err := st.validate(w); err != nil {
		return err
	}

	stage(w, registry.SaveBeforeLoad)
	w.SetFlipStatus(st.FlipStatus)
	w.Level().FlipFlags = st.FlipFlags

	// Saves hold level items only; dynamic items of the running world go.
	items := w.Items()
	for i := items.LevelCount; i < items.Len(); i++ {
		if it := items.Get(int16(i)); it.InUse {
			w.KillItem(int16(i))
		}
	}
	for _, num := range w.AISlots() {
		if num != entity.NoItem {
			w.DisableAI(num)
		}
	}
	for i, rec := range st.Items {
		apply(w, int16(i), rec)
	}
	if l := w.Lara(); l != nil {
		r := st.Lara
		l.GunStatus, l.GunType = r.GunStatus, r.GunType
		l.LeftArm.Rot, l.LeftArm.FrameNum, l.LeftArm.Lock = r.LeftArm.Rot, r.LeftArm.FrameNum, r.LeftArm.Lock
		l.RightArm.Rot, l.RightArm.FrameNum, l.RightArm.Lock = r.RightArm.Rot, r.RightArm.FrameNum, r.RightArm.Lock
		l.HeadRot, l.TorsoRot = r.HeadRot, r.TorsoRot
		l.AirTimer, l.Flares = r.AirTimer, r.Flares
		l.Ammo, l.DeathCount = r.Ammo, r.DeathCount
		if !st.Legacy {
			l.Clips = r.Clips
		}
		l.Target = entity.NoItem
	}
	stage(w, registry.SaveAfterLoad)

	for i := 0; i < w.Items().Len(); i++ {
		item := w.Items().Get(int16(i))
		item.Interp.Reset(item.Pose())
	}
	if lara := w.Item(w.LaraNum()); lara != nil && lara.InPlay() {
		w.Camera().Place(w, core.GameVector{Pos: lara.Pos, Room: lara.Room}, lara.Rot.Y)
	}
	w.Logger().Info("save applied", "level", st.Level, "items", len(st.Items), "legacy", st.Legacy)
	return nil
}

func killed(f entity.Flags) bool {
	return f&entity.FlagKilled != 0
}

func apply(w *engine.World, num int16, rec ItemRecord) {
	item := w.Item(num)
	obj, ok := registry.Lookup(item.Object)
	if !ok {
		return
	}

	if rec.HasPosition {
		item.Pos, item.Rot = rec.Pos, rec.Rot
		item.Speed, item.FallSpeed = rec.Speed, rec.FallSpeed
		if item.Room == level.NoRoom && !killed(rec.Flags) {
			w.Items().AddToRoom(num, rec.Room)
		} else if rec.Room != item.Room {
			w.ItemNewRoom(num, rec.Room)
		}
	}
	if rec.HasAnim {
		item.CurrentAnimState = rec.CurrentAnimState
		item.GoalAnimState = rec.GoalAnimState
		item.RequiredAnimState = rec.RequiredAnimState
		item.AnimNum = rec.AnimNum
		item.FrameNum = rec.FrameNum
	}
	if rec.HasHitPoints {
		item.HitPoints = rec.HitPoints
	}
	if !rec.HasFlags {
		return
	}

	if killed(rec.Flags) {
		w.KillItem(num)
		item.Flags = rec.Flags
		return
	}
	item.Flags, item.Timer = rec.Flags, rec.Timer
	if rec.Active {
		w.Items().AddActive(num)
	} else {
		w.Items().RemoveActive(num)
	}
	item.Status = rec.Status
	item.Gravity, item.Collidable = rec.Gravity, rec.Collidable

	switch {
	case rec.Creature != nil:
		if c := w.RestoreAI(num); c != nil {
			c.HeadRotation = rec.Creature.HeadRotation
			c.NeckRotation = rec.Creature.NeckRotation
			c.MaximumTurn = rec.Creature.MaximumTurn
			c.Flags = rec.Creature.Flags
			c.Mood = rec.Creature.Mood
		}
	case obj.Intelligent:
		w.DisableAI(num)
		item.Data = nil
	}
}

// stage calls the save stage handler of every level item.
func stage(w *engine.World, s registry.SaveStage) {
	items := w.Items()
	for i := 0; i < items.LevelCount; i++ {
		num := int16(i)
		item := items.Get(num)
		if !item.InUse {
			continue
		}
		obj, ok := registry.Lookup(item.Object)
		if !ok {
			continue
		}
		if h := obj.SaveStageHandler(); h != nil {
			h.HandleSaveStage(w, num, s)
		}
	}
}
