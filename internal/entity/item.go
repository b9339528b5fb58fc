// Package entity holds the fixed-capacity arenas of simulated entities:
// persistent items and transient effects, their room membership lists and
// their active lists.
package entity

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// Sentinels returned by exhausted pools and terminating lists.
const (
	NoItem   int16 = -1
	NoEffect int16 = -1
)

// ObjectID identifies an object type.
type ObjectID int16

// NoObject is the object id of an unused slot.
const NoObject ObjectID = -1

// Status is the lifecycle state of an item.
type Status uint8

const (
	StatusInactive Status = iota
	StatusActive
	StatusDeactivated
	StatusInvisible
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusDeactivated:
		return "deactivated"
	case StatusInvisible:
		return "invisible"
	default:
		return "unknown"
	}
}

// Flags is the save-relevant item flags word.
type Flags uint16

const (
	FlagOneShot  Flags = 0x0100
	FlagCodeBits Flags = 0x3E00
	FlagReverse  Flags = 0x4000
	FlagKilled   Flags = 0x8000
)

// Data is the typed per-item data block owned by the object's initialiser.
type Data interface {
	DataKind() string
}

// Item is a persistent entity.
type Item struct {
	Num    int16
	Object ObjectID

	Pos   core.Vec3
	Rot   core.Rot
	Floor int32
	Room  int16

	CurrentAnimState  int16
	GoalAnimState     int16
	RequiredAnimState int16
	AnimNum           int16
	FrameNum          int16

	Speed     int16
	FallSpeed int16
	HitPoints int16

	Status Status
	Flags  Flags
	Timer  int16

	Active     bool
	Gravity    bool
	Collidable bool
	// Dynamic is set for items created at runtime from the headroom.
	Dynamic bool
	// InUse is cleared for free dynamic slots.
	InUse bool

	Data   Data
	Interp interp.Record

	NextItem   int16
	NextActive int16
	PrevActive int16
}

// Pose returns the authoritative interpolatable pose.
func (it *Item) Pose() interp.Pose {
	return interp.Pose{Pos: it.Pos, Rot: it.Rot}
}

// Killed reports whether the item has been killed.
func (it *Item) Killed() bool {
	return it.Flags&FlagKilled != 0
}

// InPlay reports whether the item exists in the world: allocated, not
// killed and resident in a room.
func (it *Item) InPlay() bool {
	return it.InUse && !it.Killed() && it.Room != level.NoRoom
}

// Creature returns the item's creature block, or nil.
func (it *Item) Creature() *Creature {
	c, _ := it.Data.(*Creature)
	return c
}

// reset clears a slot for reuse.
func (it *Item) reset(num int16) {
	*it = Item{
		Num:        num,
		Object:     NoObject,
		Room:       level.NoRoom,
		NextItem:   NoItem,
		NextActive: NoItem,
		PrevActive: NoItem,
	}
}

// Spawn describes a level item as placed by the level description.
type Spawn struct {
	Object ObjectID
	Pos    core.Vec3
	Rot    core.Rot
	Room   int16
	Flags  Flags
}
