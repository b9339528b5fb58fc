package level

import (
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

// corridor builds n rooms in a row along +X. Each room is 4x3 sectors with
// a one-sector inner strip; neighbouring rooms share their border ring.
func corridor(n int) *Level {
	l := &Level{Name: "corridor"}
	for i := 0; i < n; i++ {
		pos := core.Vec3{X: int32(i) * 2 * core.WallL, Y: 0, Z: 0}
		r := NewRoom(int16(i), pos, 4, 3, 2048)
		if i > 0 {
			r.Sector(0, 1).PortalWall = int16(i - 1)
		}
		if i < n-1 {
			r.Sector(3, 1).PortalWall = int16(i + 1)
		}
		l.Rooms = append(l.Rooms, r)
	}
	return l
}

func center(l *Level, room int16) (int32, int32) {
	r := l.Room(room)
	return r.Pos.X + core.WallL + core.WallL/2, r.Pos.Z + core.WallL + core.WallL/2
}

func TestGetSectorWalksPortals(t *testing.T) {
	l := corridor(10)

	tests := []struct {
		name     string
		target   int16
		hint     int16
		expected int16
	}{
		{"same room", 3, 3, 3},
		{"forward walk", 7, 0, 7},
		{"backward walk", 1, 9, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, z := center(l, tc.target)
			sector, room := l.GetSector(x, -100, z, tc.hint)
			if sector == nil {
				t.Fatal("GetSector() returned nil sector")
			}
			if room != tc.expected {
				t.Errorf("GetSector() room = %d, expected %d", room, tc.expected)
			}
		})
	}
}

func TestGetSectorInvalidHint(t *testing.T) {
	l := corridor(2)
	if s, room := l.GetSector(0, 0, 0, 42); s != nil || room != NoRoom {
		t.Errorf("GetSector() with bad hint = (%v, %d), expected (nil, NoRoom)", s, room)
	}
}

func TestGetSectorTerminatesOnPortalCycle(t *testing.T) {
	l := &Level{}
	a := NewRoom(0, core.Vec3{}, 3, 3, 1024)
	b := NewRoom(1, core.Vec3{}, 3, 3, 1024)
	for i := range a.Sectors {
		a.Sectors[i].PortalWall = 1
		b.Sectors[i].PortalWall = 0
	}
	l.Rooms = []Room{a, b}

	s, room := l.GetSector(1500, 0, 1500, 0)
	if s != nil || room != NoRoom {
		t.Errorf("GetSector() on a portal cycle = (%v, %d), expected (nil, NoRoom)", s, room)
	}
}

func TestGetSectorFollowsPits(t *testing.T) {
	l := &Level{}
	upper := NewRoom(0, core.Vec3{Y: 0}, 3, 3, 1024)
	lower := NewRoom(1, core.Vec3{Y: 2048}, 3, 3, 1024)
	upper.Sector(1, 1).PortalPit = 1
	lower.Sector(1, 1).PortalSky = 0
	l.Rooms = []Room{upper, lower}

	_, room := l.GetSector(1500, 500, 1500, 0)
	if room != 1 {
		t.Errorf("GetSector() below a pit = room %d, expected 1", room)
	}
	_, room = l.GetSector(1500, -500, 1500, 1)
	if room != 0 {
		t.Errorf("GetSector() above a sky portal = room %d, expected 0", room)
	}

	sector, _ := l.GetSector(1500, -100, 1500, 0)
	if h := l.StaticHeight(sector, 1500, -100, 1500); h != 2048 {
		t.Errorf("StaticHeight() through pit = %d, expected 2048", h)
	}
}

func TestStaticHeightTilt(t *testing.T) {
	l := corridor(1)
	s := l.Rooms[0].Sector(1, 1)
	s.Floor.Height = 768
	s.Floor.TiltX = -2

	x, z := int32(1500), int32(1024+512)
	if h := l.StaticHeight(s, x, 0, z); h != 768+256 {
		t.Errorf("StaticHeight() = %d, expected %d", h, 768+256)
	}

	s.Floor.TiltX = 0
	if h := l.StaticHeight(s, x, 0, z); h != 768 {
		t.Errorf("StaticHeight() flat = %d, expected 768", h)
	}

	s.Floor.Height = NoHeight
	if h := l.StaticHeight(s, x, 0, z); h != NoHeight {
		t.Errorf("StaticHeight() void = %d, expected NoHeight", h)
	}
}

func TestSetFloor(t *testing.T) {
	l := corridor(1)
	if !l.SetFloor(0, 1500, 1500, 512) {
		t.Fatal("SetFloor() = false")
	}
	if got := l.Rooms[0].Sector(1, 1).Floor.Height; got != 512 {
		t.Errorf("floor = %d, expected 512", got)
	}
	if l.SetFloor(5, 0, 0, 0) {
		t.Error("SetFloor() on a missing room should fail")
	}
}

func TestFindRoom(t *testing.T) {
	l := corridor(3)
	x, z := center(l, 2)
	if got := l.FindRoom(x, -10, z); got != 2 {
		t.Errorf("FindRoom() = %d, expected 2", got)
	}
	if got := l.FindRoom(-50000, 0, 0); got != NoRoom {
		t.Errorf("FindRoom() in the void = %d, expected NoRoom", got)
	}
}
