package level

import "github.com/vovakirdan/tomb-engine/internal/core"

// hopBudget bounds portal walks so a stale hint or a cyclic portal set
// cannot spin forever.
func (l *Level) hopBudget() int {
	return 2*len(l.Rooms) + 2
}

// GetSector resolves a world point to its sector, starting from roomHint
// and following wall portals horizontally, then pit and sky portals
// vertically. It returns the sector and the room that owns it, or
// (nil, NoRoom) when the hint is invalid or the walk does not settle.
func (l *Level) GetSector(x, y, z int32, roomHint int16) (*Sector, int16) {
	if !l.ValidRoom(roomHint) {
		return nil, NoRoom
	}

	room := roomHint
	hops := l.hopBudget()
	var sector *Sector
	for {
		r := &l.Rooms[room]
		if r.XSize <= 0 || r.ZSize <= 0 {
			return nil, NoRoom
		}
		xs := (x - r.Pos.X) >> core.WallShift
		zs := (z - r.Pos.Z) >> core.WallShift

		// The outer ring is wall; points beyond an edge are pulled onto
		// the nearest inner sector of that edge so its wall portal is seen.
		switch {
		case zs <= 0:
			zs = 0
			xs = core.Clamp(xs, 1, max(1, r.XSize-2))
		case zs >= r.ZSize-1:
			zs = r.ZSize - 1
			xs = core.Clamp(xs, 1, max(1, r.XSize-2))
		default:
			xs = core.Clamp(xs, 0, r.XSize-1)
		}
		xs = core.Clamp(xs, 0, r.XSize-1)

		sector = &r.Sectors[zs+xs*r.ZSize]
		if sector.PortalWall == NoRoom || !l.ValidRoom(sector.PortalWall) {
			break
		}
		room = sector.PortalWall
		hops--
		if hops < 0 {
			return nil, NoRoom
		}
	}

	if y >= sector.Floor.Height {
		for sector.PortalPit != NoRoom && l.ValidRoom(sector.PortalPit) {
			room = sector.PortalPit
			sector = l.Rooms[room].WorldSector(x, z)
			if y < sector.Floor.Height {
				break
			}
			hops--
			if hops < 0 {
				return nil, NoRoom
			}
		}
	} else if y < sector.Ceiling.Height {
		for sector.PortalSky != NoRoom && l.ValidRoom(sector.PortalSky) {
			room = sector.PortalSky
			sector = l.Rooms[room].WorldSector(x, z)
			if y >= sector.Ceiling.Height {
				break
			}
			hops--
			if hops < 0 {
				return nil, NoRoom
			}
		}
	}

	return sector, room
}

// FloorSector follows pit portals down to the sector that carries the
// floor below (x, z).
func (l *Level) FloorSector(sector *Sector, x, z int32) *Sector {
	hops := l.hopBudget()
	for sector != nil && sector.PortalPit != NoRoom && l.ValidRoom(sector.PortalPit) && hops > 0 {
		sector = l.Rooms[sector.PortalPit].WorldSector(x, z)
		hops--
	}
	return sector
}

// CeilingSector follows sky portals up to the sector that carries the
// ceiling above (x, z).
func (l *Level) CeilingSector(sector *Sector, x, z int32) *Sector {
	hops := l.hopBudget()
	for sector != nil && sector.PortalSky != NoRoom && l.ValidRoom(sector.PortalSky) && hops > 0 {
		sector = l.Rooms[sector.PortalSky].WorldSector(x, z)
		hops--
	}
	return sector
}

// StaticHeight returns the floor height under (x, z) from geometry alone:
// the base height of the lowest sector plus its tilt. Dynamic floor items
// are composed on top of this by the world.
func (l *Level) StaticHeight(sector *Sector, x, y, z int32) int32 {
	sector = l.FloorSector(sector, x, z)
	if sector == nil || sector.Floor.Height == NoHeight {
		return NoHeight
	}
	return sector.Floor.Height + FloorTilt(sector.Floor, x, z)
}

// StaticCeiling returns the ceiling height above (x, z) from geometry alone.
func (l *Level) StaticCeiling(sector *Sector, x, y, z int32) int32 {
	sector = l.CeilingSector(sector, x, z)
	if sector == nil || sector.Ceiling.Height == NoHeight {
		return NoHeight
	}
	return sector.Ceiling.Height + CeilingTilt(sector.Ceiling, x, z)
}

// FloorTilt returns the slope offset of a floor surface at (x, z).
func FloorTilt(s Surface, x, z int32) int32 {
	var h int32
	xoff, zoff := int32(s.TiltX), int32(s.TiltZ)
	if xoff < 0 {
		h -= (xoff * (z & (core.WallL - 1))) >> 2
	} else {
		h += (xoff * ((core.WallL - 1 - z) & (core.WallL - 1))) >> 2
	}
	if zoff < 0 {
		h -= (zoff * (x & (core.WallL - 1))) >> 2
	} else {
		h += (zoff * ((core.WallL - 1 - x) & (core.WallL - 1))) >> 2
	}
	return h
}

// CeilingTilt returns the slope offset of a ceiling surface at (x, z).
func CeilingTilt(s Surface, x, z int32) int32 {
	var h int32
	xoff, zoff := int32(s.TiltX), int32(s.TiltZ)
	if xoff < 0 {
		h += (xoff * ((core.WallL - 1 - z) & (core.WallL - 1))) >> 2
	} else {
		h -= (xoff * (z & (core.WallL - 1))) >> 2
	}
	if zoff < 0 {
		h += (zoff * (x & (core.WallL - 1))) >> 2
	} else {
		h -= (zoff * ((core.WallL - 1 - x) & (core.WallL - 1))) >> 2
	}
	return h
}

// SetFloor changes the base floor height of the sector containing (x, z)
// in a room. Used by triggers and objects that reshape the level.
func (l *Level) SetFloor(room int16, x, z, height int32) bool {
	r := l.Room(room)
	if r == nil || r.XSize <= 0 || r.ZSize <= 0 {
		return false
	}
	r.WorldSector(x, z).Floor.Height = height
	return true
}

// FindRoom scans every room for one whose inner grid contains (x, z) with
// y between its ceiling and floor. It is the fallback when no usable hint
// exists; it returns NoRoom for a point in the void.
func (l *Level) FindRoom(x, y, z int32) int16 {
	for i := range l.Rooms {
		r := &l.Rooms[i]
		if !r.Contains(x, z) {
			continue
		}
		if y <= r.MinFloor && y >= r.MaxCeiling {
			return r.Index
		}
	}
	return NoRoom
}
