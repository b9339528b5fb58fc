package camera

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// losStep is the sampling distance of the line-of-sight walk.
const losStep = core.StepL

// open reports whether y at (x, z) lies in free space of the sector.
func open(w World, sector *level.Sector, x, y, z int32) bool {
	floor := w.GetHeight(sector, x, y, z)
	if floor == level.NoHeight || y > floor {
		return false
	}
	ceiling := w.GetCeiling(sector, x, y, z)
	return ceiling == level.NoHeight || y >= ceiling
}

// lineOfSight walks from from toward to and returns the farthest sample
// that is still in open space, tagged with its room.
func (c *Camera) lineOfSight(w World, from core.GameVector, to core.Vec3) core.GameVector {
	d := to.Sub(from.Pos)
	dist := max(core.Abs(d.X), core.Abs(d.Y), core.Abs(d.Z))
	steps := dist/losStep + 1

	best := from
	room := from.Room
	for i := int32(1); i <= steps; i++ {
		p := core.Vec3{
			X: from.Pos.X + int32(int64(d.X)*int64(i)/int64(steps)),
			Y: from.Pos.Y + int32(int64(d.Y)*int64(i)/int64(steps)),
			Z: from.Pos.Z + int32(int64(d.Z)*int64(i)/int64(steps)),
		}
		sector, r := w.GetSector(p.X, p.Y, p.Z, room)
		if sector == nil || !open(w, sector, p.X, p.Y, p.Z) {
			break
		}
		best = core.GameVector{Pos: p, Room: r}
		room = r
	}
	return best
}

// ShiftClamp keeps a camera position Clearance units away from the solid
// edges of its box and between its floor and ceiling. When the floor and
// ceiling are closer than twice the clearance the camera takes the
// midpoint.
func (c *Camera) ShiftClamp(w World, pos core.GameVector) core.GameVector {
	p := pos.Pos
	sector, room := w.GetSector(p.X, p.Y, p.Z, pos.Room)
	if sector == nil {
		return pos
	}
	clear := c.cfg.Clearance

	solid := func(x, z int32) bool {
		s, _ := w.GetSector(x, p.Y, z, room)
		return s == nil || !open(w, s, x, p.Y, z)
	}

	g := w.Boxes()
	if g != nil && g.Valid(sector.Box) {
		minX, maxX, minZ, maxZ := g.Boxes[sector.Box].Bounds()
		switch {
		case p.X < minX+clear && solid(p.X-clear, p.Z):
			p.X = minX + clear
		case p.X > maxX-clear && solid(p.X+clear, p.Z):
			p.X = maxX - clear
		}
		switch {
		case p.Z < minZ+clear && solid(p.X, p.Z-clear):
			p.Z = minZ + clear
		case p.Z > maxZ-clear && solid(p.X, p.Z+clear):
			p.Z = maxZ - clear
		}
		sector, room = w.GetSector(p.X, p.Y, p.Z, room)
		if sector == nil {
			return pos
		}
	}

	floor := w.GetHeight(sector, p.X, p.Y, p.Z)
	ceiling := w.GetCeiling(sector, p.X, p.Y, p.Z)
	if floor != level.NoHeight && ceiling != level.NoHeight {
		p.Y = ClampVertical(p.Y, floor, ceiling, clear)
		if _, r := w.GetSector(p.X, p.Y, p.Z, room); r != level.NoRoom {
			room = r
		}
	}
	return core.GameVector{Pos: p, Room: room}
}

// ClampVertical keeps y clearance units below the ceiling and above the
// floor, falling back to the midpoint when the gap is too small.
func ClampVertical(y, floor, ceiling, clearance int32) int32 {
	lo, hi := ceiling+clearance, floor-clearance
	if lo > hi {
		return (floor + ceiling) / 2
	}
	return core.Clamp(y, lo, hi)
}
