package registry

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// Context is the world as seen by object behaviours. The engine's World
// implements it; tests may supply their own.
type Context interface {
	Logger() *log.Logger
	Random() *core.Random
	Input() core.InputFrame
	// Ticks returns the number of completed simulation ticks.
	Ticks() uint64

	Level() *level.Level
	Boxes() *box.Graph
	Items() *entity.ItemPool
	Effects() *entity.EffectPool

	Item(num int16) *entity.Item
	Effect(num int16) *entity.Effect
	// LaraNum returns the player item, or entity.NoItem.
	LaraNum() int16
	Lara() *Lara

	GetSector(x, y, z int32, room int16) (*level.Sector, int16)
	// GetHeight is the floor height including item overrides.
	GetHeight(sector *level.Sector, x, y, z int32) int32
	// GetCeiling is the ceiling height including item overrides.
	GetCeiling(sector *level.Sector, x, y, z int32) int32

	// CreateItem spawns a dynamic item and runs its initialiser. Returns
	// entity.NoItem when the headroom is exhausted.
	CreateItem(object entity.ObjectID, pos core.Vec3, rot core.Rot, room int16) int16
	KillItem(num int16)
	// ActivateItem runs the object's activation slot, or adds the item
	// to the active list.
	ActivateItem(num int16)
	DeactivateItem(num int16)
	ItemNewRoom(num, room int16)
	AnimateItem(num int16)

	// CreateEffect spawns an effect. Returns entity.NoEffect when full.
	CreateEffect(object entity.ObjectID, pos core.Vec3, rot core.Rot, room int16) int16
	KillEffect(num int16)
	MorphEffect(num int16, object entity.ObjectID) bool
	EffectNewRoom(num, room int16)

	// EnableAI claims an AI slot for a creature. With always set a full
	// table evicts the creature farthest from the camera.
	EnableAI(num int16, always bool) bool
	DisableAI(num int16)
	// PathBudget is the number of box expansions a creature may run per
	// tick.
	PathBudget() int

	FlipMap()
	// BounceCamera shakes the camera; negative values decay over time.
	BounceCamera(bounce int32)
	// TestTriggers runs the trigger of the sector at the item position.
	TestTriggers(num int16, heavy bool)
}

// Lara is the player extension block kept beside the player item.
type Lara struct {
	ItemNum    int16
	GunStatus  int16
	GunType    int16
	LeftArm    Arm
	RightArm   Arm
	HeadRot    core.Rot
	TorsoRot   core.Rot
	Target     int16
	AirTimer   int16
	Flares     int16
	Ammo       [4]int32
	Clips      [4]int16
	FlareItem  int16
	FlareAge   int16
	Hair       [HairSegments]HairSegment
	DeathCount int16
	// LOT is searched from Lara's box when a creature checks whether she
	// can follow it somewhere.
	LOT *box.LOT
}

// HairSegments is the number of simulated hair segments.
const HairSegments = 7

// Arm is the pose of one of Lara's arms.
type Arm struct {
	Rot      core.Rot
	FrameNum int16
	Lock     bool
	Flash    int16
	Interp   interp.Record
}

// HairSegment is one link of the hair chain.
type HairSegment struct {
	Pos    core.Vec3
	Rot    core.Rot
	Interp interp.Record
}
