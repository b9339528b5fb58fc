package camera

import (
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

type testWorld struct {
	lvl *level.Level
	g   *box.Graph
	rnd *core.Random
}

func (w *testWorld) Level() *level.Level  { return w.lvl }
func (w *testWorld) Boxes() *box.Graph    { return w.g }
func (w *testWorld) Random() *core.Random { return w.rnd }

func (w *testWorld) GetSector(x, y, z int32, room int16) (*level.Sector, int16) {
	return w.lvl.GetSector(x, y, z, room)
}

func (w *testWorld) GetHeight(s *level.Sector, x, y, z int32) int32 {
	return w.lvl.StaticHeight(s, x, y, z)
}

func (w *testWorld) GetCeiling(s *level.Sector, x, y, z int32) int32 {
	return w.lvl.StaticCeiling(s, x, y, z)
}

// hall builds a 10x10 room with solid outer walls, one box over the open
// floor and one fixed camera.
func hall() *testWorld {
	r := level.NewRoom(0, core.Vec3{}, 10, 10, 2048)
	g := box.NewGraph()
	g.InitialiseBoxes(1)
	g.Boxes[0] = box.Box{Left: 1, Right: 9, Top: 1, Bottom: 9}
	for x := int32(0); x < 10; x++ {
		for z := int32(0); z < 10; z++ {
			s := r.Sector(x, z)
			if x == 0 || z == 0 || x == 9 || z == 9 {
				s.Floor.Height = level.NoHeight
				s.Ceiling.Height = level.NoHeight
				continue
			}
			s.Box = 0
		}
	}
	lvl := &level.Level{
		Name:    "hall",
		Rooms:   []level.Room{r},
		Cameras: []level.FixedCamera{{Pos: core.Vec3{X: 2048, Y: -1024, Z: 2048}, Room: 0}},
	}
	return &testWorld{lvl: lvl, g: g, rnd: core.NewRandom(7)}
}

func lara() *entity.Item {
	return &entity.Item{Pos: core.Vec3{X: 5120, Y: 0, Z: 5120}, Room: 0}
}

func TestCommitSnapVsBlend(t *testing.T) {
	tests := []struct {
		name     string
		moveTo   int32
		expected int32
	}{
		{"blend", 400, 200},
		{"snap", 600, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig(), interp.DefaultThresholds())
			c.Pos = core.GameVector{Pos: core.Vec3{X: 0, Y: -1024, Z: 0}, Room: 0}
			c.Remember()
			c.Pos.Pos.X = tt.moveTo
			c.Commit(nil, 0.5)

			if c.ResultPos.X != tt.expected {
				t.Errorf("ResultPos.X = %d, expected %d", c.ResultPos.X, tt.expected)
			}
		})
	}
}

func TestCommitRecomputesRoom(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	c.Pos = core.GameVector{Pos: core.Vec3{X: 3000, Y: -1024, Z: 3000}, Room: 0}
	c.Remember()
	c.Commit(w, 1)

	if c.ResultRoom != 0 {
		t.Errorf("ResultRoom = %d, expected 0", c.ResultRoom)
	}
}

func TestChaseSitsBehindAndAbove(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	item := lara()

	c.Update(w, Subject{Item: item})

	if c.Type != Chase {
		t.Fatalf("Type = %v, expected chase", c.Type)
	}
	if c.Target.Pos.Y != item.Pos.Y-c.cfg.EyeHeight {
		t.Errorf("Target.Y = %d, expected %d", c.Target.Pos.Y, item.Pos.Y-c.cfg.EyeHeight)
	}
	if c.Pos.Pos.Z >= item.Pos.Z {
		t.Errorf("camera Z = %d, expected behind %d", c.Pos.Pos.Z, item.Pos.Z)
	}
	if c.Pos.Pos.Y >= c.Target.Pos.Y {
		t.Errorf("camera Y = %d, expected above target %d", c.Pos.Pos.Y, c.Target.Pos.Y)
	}
	if c.Pos.Room != 0 {
		t.Errorf("camera room = %d, expected 0", c.Pos.Room)
	}
}

func TestFixedTimerLatches(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	item := lara()

	if !c.Trigger(w.lvl, 0, 3, false, false) {
		t.Fatal("Trigger() = false, expected true")
	}

	// Lara stands on the trigger: it fires every tick.
	steps := []struct {
		timer int16
		typ   Type
	}{
		{2, Fixed},
		{1, Fixed},
		{-1, Chase},
		{-1, Chase},
	}
	for i, s := range steps {
		if i > 0 && c.Trigger(w.lvl, 0, 3, false, false) {
			t.Fatalf("tick %d: Trigger() = true, expected suppressed", i)
		}
		c.Update(w, Subject{Item: item})
		if c.Timer != s.timer || c.Type != s.typ {
			t.Errorf("tick %d: timer %d type %v, expected %d %v", i, c.Timer, c.Type, s.timer, s.typ)
		}
	}
	// Lara steps off: the latch clears and the camera can fire again.
	c.Update(w, Subject{Item: item})
	if c.Timer != 0 {
		t.Errorf("Timer = %d after leaving trigger, expected 0", c.Timer)
	}
	if !c.Trigger(w.lvl, 0, 3, false, false) {
		t.Error("Trigger() after unlatch = false, expected true")
	}
}

func TestUntimedTriggerLatchesAfterOneTick(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())

	if !c.Trigger(w.lvl, 0, 0, false, false) {
		t.Fatal("Trigger() = false, expected true")
	}
	if c.Timer != 1 {
		t.Errorf("Timer = %d, expected 1", c.Timer)
	}
	c.Update(w, Subject{Item: lara()})
	if c.Timer != -1 || c.Type != Chase {
		t.Errorf("timer %d type %v, expected -1 chase", c.Timer, c.Type)
	}
}

func TestFixedCameraPosition(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	c.Trigger(w.lvl, 0, 5, false, false)
	c.Update(w, Subject{Item: lara()})

	if c.Pos.Pos != w.lvl.Cameras[0].Pos {
		t.Errorf("Pos = %v, expected %v", c.Pos.Pos, w.lvl.Cameras[0].Pos)
	}
}

func TestHeavyReturnsNextTick(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	item := lara()

	c.Trigger(w.lvl, 0, 2, true, false)
	c.Update(w, Subject{Item: item})
	if c.Timer != 1 || c.Type != Heavy {
		t.Fatalf("tick 1: timer %d type %v, expected 1 heavy", c.Timer, c.Type)
	}
	c.Update(w, Subject{Item: item})
	if c.Timer != -1 || c.Type != Heavy {
		t.Fatalf("tick 2: timer %d type %v, expected -1 heavy", c.Timer, c.Type)
	}
	c.Update(w, Subject{Item: item})
	if c.Type != Chase {
		t.Errorf("tick 3: type %v, expected chase", c.Type)
	}
}

func TestTriggerOnce(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())

	if !c.Trigger(w.lvl, 0, 1, false, true) {
		t.Fatal("first Trigger() = false, expected true")
	}
	c.Update(w, Subject{Item: lara()})
	c.Update(w, Subject{Item: lara()})

	if c.Trigger(w.lvl, 0, 1, false, false) {
		t.Error("Trigger() of a used one-shot camera = true, expected false")
	}
	if c.Trigger(w.lvl, 5, 1, false, false) {
		t.Error("Trigger() of a missing camera = true, expected false")
	}
}

func TestBounceDecays(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	item := lara()
	c.Update(w, Subject{Item: item})

	c.Bounce = -20
	expected := []int32{-15, -10, -5, 0, 0}
	for i, e := range expected {
		c.Update(w, Subject{Item: item})
		if c.Bounce != e {
			t.Errorf("tick %d: Bounce = %d, expected %d", i, c.Bounce, e)
		}
	}

	c.Bounce = 100
	c.Update(w, Subject{Item: item})
	if c.Bounce != 0 {
		t.Errorf("positive Bounce = %d after one tick, expected 0", c.Bounce)
	}
}

func TestClampVertical(t *testing.T) {
	tests := []struct {
		name     string
		y        int32
		floor    int32
		ceiling  int32
		expected int32
	}{
		{"near floor", -100, 0, -2048, -256},
		{"near ceiling", -2000, 0, -2048, -1792},
		{"inside", -1000, 0, -2048, -1000},
		{"inverted takes midpoint", -100, 0, -300, -150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampVertical(tt.y, tt.floor, tt.ceiling, 256); got != tt.expected {
				t.Errorf("ClampVertical() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestShiftClampPushesOffWalls(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())

	got := c.ShiftClamp(w, core.GameVector{Pos: core.Vec3{X: 1100, Y: -1024, Z: 5000}, Room: 0})
	if got.Pos.X != 1024+256 {
		t.Errorf("X = %d, expected %d", got.Pos.X, 1024+256)
	}
	if got.Pos.Z != 5000 {
		t.Errorf("Z = %d, expected unchanged 5000", got.Pos.Z)
	}

	got = c.ShiftClamp(w, core.GameVector{Pos: core.Vec3{X: 5000, Y: -1024, Z: 9100}, Room: 0})
	if got.Pos.Z != 9*1024-256 {
		t.Errorf("Z = %d, expected %d", got.Pos.Z, 9*1024-256)
	}
}

func TestEaseReclampsOverRaisedFloor(t *testing.T) {
	w := hall()
	r := &w.lvl.Rooms[0]
	for z := int32(1); z < 9; z++ {
		r.Sector(4, z).Floor.Height = -1024
	}
	c := New(DefaultConfig(), interp.DefaultThresholds())
	c.Pos = core.GameVector{Pos: core.Vec3{X: 1536, Y: -300, Z: 5120}, Room: 0}
	c.Target = core.GameVector{Pos: core.Vec3{X: 7680, Y: -300, Z: 5120}, Room: 0}
	c.Speed = 2

	c.move(w, c.Target.Pos)

	if c.Pos.Pos.X != 4608 {
		t.Fatalf("X = %d, expected 4608 over the raised column", c.Pos.Pos.X)
	}
	if expected := int32(-1024 - 256); c.Pos.Pos.Y != expected {
		t.Errorf("Y = %d, expected %d", c.Pos.Pos.Y, expected)
	}
	if c.Pos.Room != 0 {
		t.Errorf("Room = %d, expected 0", c.Pos.Room)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name      string
		yaw       int16
		elevation int16
		expected  core.Vec3
	}{
		{"behind north", 0, 0, core.Vec3{X: 0, Y: 0, Z: -1024}},
		{"behind east", core.Deg90, 0, core.Vec3{X: -1024, Y: 0, Z: 0}},
		{"straight above", 0, -core.Deg90, core.Vec3{X: 0, Y: -1024, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Offset(1024, tt.yaw, tt.elevation); got != tt.expected {
				t.Errorf("Offset() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCinematicAndPhoto(t *testing.T) {
	w := hall()
	c := New(DefaultConfig(), interp.DefaultThresholds())
	origin := core.GameVector{Pos: core.Vec3{X: 4096, Y: -512, Z: 4096}, Room: 0}
	frames := []CineFrame{
		{Pos: core.Vec3{X: 0, Y: 0, Z: -1024}, Fov: 80},
		{Pos: core.Vec3{X: 0, Y: 0, Z: -512}, Fov: 70},
	}

	c.StartCinematic(origin, 0, frames)
	c.Update(w, Subject{})
	if c.Pos.Pos != (core.Vec3{X: 4096, Y: -512, Z: 3072}) || c.Fov != 80 {
		t.Errorf("frame 0: pos %v fov %d", c.Pos.Pos, c.Fov)
	}
	c.Update(w, Subject{})
	c.Update(w, Subject{})
	if c.Type != Chase {
		t.Errorf("Type after last frame = %v, expected chase", c.Type)
	}

	c.SetPhoto(true)
	before := c.Pos
	c.Update(w, Subject{Item: lara()})
	if c.Pos != before {
		t.Errorf("photo mode moved camera from %v to %v", before, c.Pos)
	}
	c.SetPhoto(false)
	if c.Type != Chase {
		t.Errorf("Type after photo = %v, expected chase", c.Type)
	}
}
