package registry

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
)

// Kind says which arena instances of an object live in.
type Kind uint8

const (
	KindItem Kind = iota
	KindEffect
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindEffect {
		return "effect"
	}
	return "item"
}

// Object is the static descriptor of an object type, shared by every
// instance and never mutated after registration.
type Object struct {
	ID   entity.ObjectID
	Name string
	Kind Kind

	MeshCount int16
	MeshIndex int16
	AnimIndex int16
	// Frames is the length of one animation cycle in ticks.
	Frames int16

	HitPoints int16
	Radius    int16
	Shadow    int16
	Pivot     int16

	// Step, Drop and Fly are the pathing class of intelligent objects.
	// A zero Step means the ground class.
	Step int16
	Drop int16
	Fly  int16

	Intelligent     bool
	SemiTransparent bool
	SavePosition    bool
	SaveHitpoints   bool
	SaveFlags       bool
	SaveAnim        bool

	Behavior Behavior

	initialiser     Initialiser
	floorHeighter   FloorHeighter
	ceilingHeighter CeilingHeighter
	activator       Activator
	flipHandler     RoomFlipHandler
	saveHandler     SaveStageHandler
}

// resolve detects the optional slots the behaviour implements.
func (o *Object) resolve() {
	o.initialiser, _ = o.Behavior.(Initialiser)
	o.floorHeighter, _ = o.Behavior.(FloorHeighter)
	o.ceilingHeighter, _ = o.Behavior.(CeilingHeighter)
	o.activator, _ = o.Behavior.(Activator)
	o.flipHandler, _ = o.Behavior.(RoomFlipHandler)
	o.saveHandler, _ = o.Behavior.(SaveStageHandler)
}

// Initialiser returns the initialise slot, or nil.
func (o *Object) Initialiser() Initialiser { return o.initialiser }

// FloorHeighter returns the floor override slot, or nil.
func (o *Object) FloorHeighter() FloorHeighter { return o.floorHeighter }

// CeilingHeighter returns the ceiling override slot, or nil.
func (o *Object) CeilingHeighter() CeilingHeighter { return o.ceilingHeighter }

// Activator returns the activation slot, or nil.
func (o *Object) Activator() Activator { return o.activator }

// RoomFlipHandler returns the room flip slot, or nil.
func (o *Object) RoomFlipHandler() RoomFlipHandler { return o.flipHandler }

// SaveStageHandler returns the save stage slot, or nil.
func (o *Object) SaveStageHandler() SaveStageHandler { return o.saveHandler }

// Slots lists the names of the optional slots the object fills.
func (o *Object) Slots() []string {
	var slots []string
	if o.initialiser != nil {
		slots = append(slots, "initialise")
	}
	if o.floorHeighter != nil {
		slots = append(slots, "floor")
	}
	if o.ceilingHeighter != nil {
		slots = append(slots, "ceiling")
	}
	if o.activator != nil {
		slots = append(slots, "activate")
	}
	if o.flipHandler != nil {
		slots = append(slots, "flip")
	}
	if o.saveHandler != nil {
		slots = append(slots, "save")
	}
	return slots
}

// Drawable is what a renderer sees of an entity: its blended pose and a
// few display fields. It never exposes the authoritative pose.
type Drawable struct {
	Num    int16
	Object entity.ObjectID
	Effect bool
	Room   int16
	Pose   interp.Pose
	State  int16
	Frame  int16
}

// Behavior is the required slot set of an object type.
type Behavior interface {
	// Control runs once per tick while the entity is active. It sets
	// GoalAnimState and reads CurrentAnimState; it writes the current
	// state only for a hard reset.
	Control(ctx Context, num int16)
	// Collision runs when Lara's bounds meet this item.
	Collision(ctx Context, num, laraNum int16)
	// Draw renders the entity from its committed pose.
	Draw(d Drawable, canvas *core.Canvas)
}

// Initialiser is called once when an item enters play.
type Initialiser interface {
	Initialise(ctx Context, num int16)
}

// FloorHeighter adjusts the floor height of sectors whose trigger names
// the item. It receives the height computed so far and returns the new one.
type FloorHeighter interface {
	FloorHeight(ctx Context, num int16, x, y, z, height int32) int32
}

// CeilingHeighter adjusts ceiling heights like FloorHeighter.
type CeilingHeighter interface {
	CeilingHeight(ctx Context, num int16, x, y, z, height int32) int32
}

// Activator replaces the default activation (joining the active list).
type Activator interface {
	Activate(ctx Context, num int16)
}

// FlipStage marks the side of a flip-map swap a handler is called on.
type FlipStage uint8

const (
	FlipBefore FlipStage = iota
	FlipAfter
)

// RoomFlipHandler lets an item react to its room being swapped.
type RoomFlipHandler interface {
	HandleRoomFlip(ctx Context, num int16, stage FlipStage)
}

// SaveStage marks the side of a save load a handler is called on.
type SaveStage uint8

const (
	SaveBeforeLoad SaveStage = iota
	SaveAfterLoad
)

// SaveStageHandler lets an item fix up derived state around a load.
type SaveStageHandler interface {
	HandleSaveStage(ctx Context, num int16, stage SaveStage)
}
