// Package level holds the static spatial model of a loaded level: rooms,
// their sector grids, portals between rooms, floor data triggers and the
// flip-map alternates.
package level

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
)

// Sentinels for spatial misses.
const (
	// NoRoom marks a missing room link or a point outside every room.
	NoRoom int16 = -1
	// NoHeight marks a void floor or ceiling.
	NoHeight int32 = -32512
	// NoHead terminates room item and effect lists.
	NoHead int16 = -1

	// MaxFlipMaps is the number of flip flag slots persisted in a save.
	MaxFlipMaps = 10
)

// Surface is a floor or ceiling: a base height plus a two-axis tilt.
// TiltX skews the surface along Z and TiltZ along X, each in quarter
// units per world unit.
type Surface struct {
	Height int32
	TiltX  int8
	TiltZ  int8
}

// Sector is one WallL x WallL cell of a room.
type Sector struct {
	Floor   Surface
	Ceiling Surface

	// Box is the pathing box this sector belongs to, or box.NoBox.
	Box int16

	PortalWall int16 // room entered by crossing this sector horizontally
	PortalPit  int16 // room below
	PortalSky  int16 // room above

	// FloorData is the opaque offset into the level's floor data.
	FloorData int32
	// Trigger is the decoded trigger, or nil.
	Trigger *Trigger
}

// Portal is an opening from a room into an adjoining room.
type Portal struct {
	AdjoiningRoom int16
	Normal        core.Vec3
	Vertices      [4]core.Vec3
}

// Sprite is a billboard in a room mesh.
type Sprite struct {
	Vertex  uint16
	Texture uint16
}

// Mesh is the static room geometry, carried for the renderer.
type Mesh struct {
	Vertices  []core.Vec3
	Quads     [][4]uint16
	Triangles [][3]uint16
	Sprites   []Sprite
}

// RoomFlags are per-room attributes.
type RoomFlags uint16

const (
	RoomUnderwater RoomFlags = 1 << 0
	RoomOutside    RoomFlags = 1 << 3
)

// Room is one node of the portal graph.
type Room struct {
	// Index is the room's own slot in Level.Rooms.
	Index int16

	// Pos is the world origin of sector (0, 0). Sectors extend in +X and +Z.
	Pos        core.Vec3
	MinFloor   int32
	MaxCeiling int32
	XSize      int32
	ZSize      int32

	// Sectors is indexed z + x*ZSize.
	Sectors []Sector
	Mesh    Mesh
	Portals []Portal
	Flags   RoomFlags

	// FlippedRoom is the alternate swapped in by FlipMap, or NoRoom.
	FlippedRoom int16

	// ItemHead and EffectHead start the resident entity lists. They belong
	// to the room slot and survive flip swaps.
	ItemHead   int16
	EffectHead int16
}

// Sector returns the sector at grid coordinates, or nil out of range.
func (r *Room) Sector(xs, zs int32) *Sector {
	if xs < 0 || zs < 0 || xs >= r.XSize || zs >= r.ZSize {
		return nil
	}
	return &r.Sectors[zs+xs*r.ZSize]
}

// WorldSector returns the sector containing world (x, z), clamped to the
// room grid.
func (r *Room) WorldSector(x, z int32) *Sector {
	xs := core.Clamp((x-r.Pos.X)>>core.WallShift, 0, r.XSize-1)
	zs := core.Clamp((z-r.Pos.Z)>>core.WallShift, 0, r.ZSize-1)
	return &r.Sectors[zs+xs*r.ZSize]
}

// Contains reports whether world (x, z) lies inside the room's inner grid,
// excluding the border wall ring.
func (r *Room) Contains(x, z int32) bool {
	xs := (x - r.Pos.X) >> core.WallShift
	zs := (z - r.Pos.Z) >> core.WallShift
	return xs > 0 && zs > 0 && xs < r.XSize-1 && zs < r.ZSize-1
}

// Underwater reports whether the room is flooded.
func (r *Room) Underwater() bool {
	return r.Flags&RoomUnderwater != 0
}

// FixedCamera is a level-authored viewpoint selectable by triggers.
type FixedCamera struct {
	Pos   core.Vec3
	Room  int16
	Flags uint16
}

// FixedCameraOnce marks a camera that can be triggered only once. It is
// set at runtime the first time a one-shot trigger fires.
const FixedCameraOnce uint16 = 0x0100

// Level is the complete static spatial model plus the runtime flip state.
type Level struct {
	Name    string
	Number  int
	Rooms   []Room
	Cameras []FixedCamera

	// FlipStatus is true while alternate rooms are swapped in.
	FlipStatus bool
	// FlipFlags holds the per-slot activation masks of flip triggers.
	FlipFlags [MaxFlipMaps]uint8
}

// NewRoom creates an empty room of the given size with every sector open,
// no portals and no box. Floors default to base y, ceilings to y - height.
func NewRoom(index int16, pos core.Vec3, xSize, zSize, height int32) Room {
	r := Room{
		Index:       index,
		Pos:         pos,
		MinFloor:    pos.Y,
		MaxCeiling:  pos.Y - height,
		XSize:       xSize,
		ZSize:       zSize,
		Sectors:     make([]Sector, xSize*zSize),
		FlippedRoom: NoRoom,
		ItemHead:    NoHead,
		EffectHead:  NoHead,
	}
	for i := range r.Sectors {
		r.Sectors[i] = Sector{
			Floor:      Surface{Height: pos.Y},
			Ceiling:    Surface{Height: pos.Y - height},
			Box:        box.NoBox,
			PortalWall: NoRoom,
			PortalPit:  NoRoom,
			PortalSky:  NoRoom,
		}
	}
	return r
}

// ValidRoom reports whether n indexes a room.
func (l *Level) ValidRoom(n int16) bool {
	return n >= 0 && int(n) < len(l.Rooms)
}

// Room returns room n, or nil.
func (l *Level) Room(n int16) *Room {
	if !l.ValidRoom(n) {
		return nil
	}
	return &l.Rooms[n]
}

// Clone returns a deep copy of the geometry and flip state. Triggers are
// immutable after load and are shared.
func (l *Level) Clone() *Level {
	c := *l
	c.Rooms = make([]Room, len(l.Rooms))
	for i, r := range l.Rooms {
		r.Sectors = append([]Sector(nil), r.Sectors...)
		r.Portals = append([]Portal(nil), r.Portals...)
		r.Mesh = Mesh{
			Vertices:  append([]core.Vec3(nil), r.Mesh.Vertices...),
			Quads:     append([][4]uint16(nil), r.Mesh.Quads...),
			Triangles: append([][3]uint16(nil), r.Mesh.Triangles...),
			Sprites:   append([]Sprite(nil), r.Mesh.Sprites...),
		}
		c.Rooms[i] = r
	}
	c.Cameras = append([]FixedCamera(nil), l.Cameras...)
	return &c
}
