package engine

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

func runHash(t *testing.T, seed int32, ticks int) uint64 {
	t.Helper()
	opts := testOptions()
	opts.Runtime.Seed = seed
	w := newWorld(t, testLevel(), []entity.Spawn{
		laraSpawn(),
		{Object: objMover, Pos: sectorPos(2, 5), Room: 0, Flags: entity.FlagCodeBits},
		{Object: objMover, Pos: sectorPos(3, 5), Room: 0, Flags: entity.FlagCodeBits},
	}, opts)
	for i := 0; i < ticks; i++ {
		w.Tick(core.NewInputFrame())
	}
	return w.Hash()
}

func TestDeterminism(t *testing.T) {
	a := runHash(t, 7, 50)
	b := runHash(t, 7, 50)
	if a != b {
		t.Errorf("same seed hashes differ: %x != %x", a, b)
	}
	if c := runHash(t, 8, 50); c == a {
		t.Errorf("different seeds hash equal: %x", c)
	}
}

func TestFaultIsolation(t *testing.T) {
	w := newWorld(t, testLevel(), []entity.Spawn{
		laraSpawn(),
		{Object: objPanicker, Pos: sectorPos(2, 2), Room: 0, Flags: entity.FlagCodeBits},
		{Object: objMover, Pos: sectorPos(3, 3), Room: 0, Flags: entity.FlagCodeBits},
	}, testOptions())

	start := w.Item(2).Pos.X
	w.Tick(core.NewInputFrame())
	w.Tick(core.NewInputFrame())

	if w.Faults() != 1 {
		t.Errorf("Faults() = %d, expected 1", w.Faults())
	}
	if !w.Item(1).Killed() {
		t.Error("faulting item should be killed")
	}
	if got := w.Item(2).Pos.X; got != start+32 {
		t.Errorf("mover X = %d, expected %d", got, start+32)
	}
}

func TestEffectChainKillAndMorph(t *testing.T) {
	w := newWorld(t, testLevel(), []entity.Spawn{laraSpawn()}, testOptions())

	for i := 0; i < 3; i++ {
		if w.CreateEffect(objSpark, sectorPos(4, 4), core.Rot{}, 0) == entity.NoEffect {
			t.Fatal("CreateEffect() failed")
		}
	}
	shellNum := w.CreateEffect(objShell, sectorPos(4, 4), core.Rot{}, 0)

	expected := []int{4, 1, 0}
	for i, e := range expected {
		w.Tick(core.NewInputFrame())
		if got := len(w.Effects().ActiveEffects()); got != e {
			t.Errorf("tick %d: %d active effects, expected %d", i+1, got, e)
		}
		if i == 0 && w.Effect(shellNum).Object != objSpark {
			t.Errorf("shell object = %d after tick 1, expected %d", w.Effect(shellNum).Object, objSpark)
		}
	}
	if got := len(w.Effects().RoomEffects(0)); got != 0 {
		t.Errorf("room 0 holds %d effects, expected 0", got)
	}
}

func TestAISlots(t *testing.T) {
	opts := testOptions()
	opts.AISlots = 2
	spawns := []entity.Spawn{laraSpawn()}
	for _, x := range []int32{1, 3, 8, 9} {
		spawns = append(spawns, entity.Spawn{Object: objCreature, Pos: sectorPos(x, 5), Room: 0})
	}
	w := newWorld(t, testLevel(), spawns, opts)
	w.camera.Pos.Pos = core.Vec3{X: 0, Y: 0, Z: sectorPos(0, 5).Z}

	near, mid, far, farthest := int16(1), int16(2), int16(3), int16(4)

	if !w.EnableAI(near, true) || !w.EnableAI(far, true) {
		t.Fatal("EnableAI() into free slots failed")
	}
	if c := w.Item(near).Creature(); c == nil || c.LOT == nil {
		t.Fatal("creature should hold a LOT")
	}

	if !w.EnableAI(mid, false) {
		t.Error("EnableAI(mid, false) = false, expected to replace the farther creature")
	}
	if w.Item(far).Status != entity.StatusInvisible {
		t.Errorf("evicted status = %v, expected invisible", w.Item(far).Status)
	}
	if c := w.Item(far).Creature(); c == nil || c.LOT != nil {
		t.Error("evicted creature should keep its block and lose its LOT")
	}

	if w.EnableAI(farthest, false) {
		t.Error("EnableAI(farthest, false) = true, expected false")
	}
	if !w.EnableAI(farthest, true) {
		t.Error("EnableAI(farthest, true) = false, expected true")
	}

	slots := w.AISlots()
	if slots[0] != near && slots[1] != near {
		t.Errorf("AISlots() = %v, near creature should keep its slot", slots)
	}

	w.DisableAI(near)
	if c := w.Item(near).Creature(); c.LOT != nil {
		t.Error("DisableAI() should drop the LOT")
	}
}

func TestTriggerActivatesItem(t *testing.T) {
	lvl := testLevel()
	lvl.Rooms[0].Sector(7, 7).Trigger = &level.Trigger{
		Type:    level.TriggerPlain,
		Mask:    uint16(entity.FlagCodeBits),
		OneShot: true,
		Commands: []level.Command{
			{Kind: level.CmdObject, Arg: 1},
			{Kind: level.CmdEndLevel},
		},
	}
	w := newWorld(t, lvl, []entity.Spawn{
		laraSpawn(),
		{Object: objDoor, Pos: sectorPos(2, 2), Room: 0},
	}, testOptions())

	door := w.Item(1)
	if door.Active {
		t.Fatal("door should start inactive")
	}
	w.Tick(core.NewInputFrame())

	if !door.Active || door.Status != entity.StatusActive {
		t.Errorf("door active=%v status=%v, expected active", door.Active, door.Status)
	}
	if door.Flags&entity.FlagOneShot == 0 {
		t.Error("one-shot trigger should mark the door")
	}
	if !w.LevelComplete() {
		t.Error("LevelComplete() = false, expected true")
	}
}

func TestFlipMapCallsHandlers(t *testing.T) {
	lvl := testLevel()
	lvl.Rooms = append(lvl.Rooms, level.NewRoom(1, core.Vec3{Y: 768}, 10, 10, 2048))
	lvl.Rooms[0].FlippedRoom = 1
	w := newWorld(t, lvl, []entity.Spawn{
		{Object: objFlipper, Pos: sectorPos(2, 2), Room: 0},
	}, testOptions())

	clear(flipCalls)
	w.FlipMap()
	if !lvl.FlipStatus {
		t.Error("FlipStatus = false after FlipMap")
	}
	if flipCalls[registry.FlipBefore] != 1 || flipCalls[registry.FlipAfter] != 1 {
		t.Errorf("flip calls = %v, expected one before and one after", flipCalls)
	}
	if w.Item(0).Room != 0 {
		t.Errorf("item room = %d, expected 0", w.Item(0).Room)
	}

	w.SetFlipStatus(true)
	if flipCalls[registry.FlipBefore] != 1 {
		t.Error("SetFlipStatus() with equal status should not flip")
	}
	w.SetFlipStatus(false)
	if lvl.FlipStatus {
		t.Error("FlipStatus = true after restoring")
	}
}

func TestAnimateItem(t *testing.T) {
	w := newWorld(t, testLevel(), []entity.Spawn{
		{Object: objAnimated, Pos: sectorPos(2, 2), Room: 0},
	}, testOptions())
	item := w.Item(0)
	item.GoalAnimState = 2
	item.Speed = 100

	for i := 0; i < 3; i++ {
		w.AnimateItem(0)
	}
	if item.CurrentAnimState != 0 {
		t.Errorf("state mid-cycle = %d, expected 0", item.CurrentAnimState)
	}
	w.AnimateItem(0)
	if item.CurrentAnimState != 2 || item.AnimNum != 12 {
		t.Errorf("state %d anim %d at cycle end, expected 2 and 12", item.CurrentAnimState, item.AnimNum)
	}
	if item.Pos.Z != sectorPos(2, 2).Z+400 {
		t.Errorf("Z = %d, expected %d", item.Pos.Z, sectorPos(2, 2).Z+400)
	}

	item.Gravity = true
	y := item.Pos.Y
	w.AnimateItem(0)
	if item.FallSpeed != 6 || item.Pos.Y != y+6 {
		t.Errorf("fall speed %d y %d, expected 6 and %d", item.FallSpeed, item.Pos.Y, y+6)
	}
}

func TestCreateItemHeadroom(t *testing.T) {
	opts := testOptions()
	opts.Headroom = 1
	w := newWorld(t, testLevel(), []entity.Spawn{laraSpawn()}, opts)

	num := w.CreateItem(objDoor, sectorPos(3, 3), core.Rot{}, 0)
	if num == entity.NoItem {
		t.Fatal("CreateItem() failed")
	}
	if got := w.CreateItem(objDoor, sectorPos(3, 3), core.Rot{}, 0); got != entity.NoItem {
		t.Errorf("CreateItem() on full headroom = %d, expected NoItem", got)
	}
	w.KillItem(num)
	if got := w.CreateItem(objDoor, sectorPos(3, 3), core.Rot{}, 0); got != num {
		t.Errorf("CreateItem() after kill = %d, expected %d", got, num)
	}
}

func TestFrameDump(t *testing.T) {
	w := newWorld(t, testLevel(), []entity.Spawn{
		laraSpawn(),
		{Object: objMover, Pos: sectorPos(3, 3), Room: 0, Flags: entity.FlagCodeBits},
	}, testOptions())

	var buf bytes.Buffer
	enc := NewFrameEncoder(&buf)
	for i := 0; i < 2; i++ {
		w.Tick(core.NewInputFrame())
		if err := enc.Encode(w.Frame()); err != nil {
			t.Fatalf("Encode() failed: %v", err)
		}
	}

	frames, err := DecodeFrames(&buf)
	if err != nil {
		t.Fatalf("DecodeFrames() failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("decoded %d frames, expected 2", len(frames))
	}
	last := frames[1]
	if last.Tick != 2 || len(last.Items) != 2 {
		t.Errorf("frame tick %d items %d, expected 2 and 2", last.Tick, len(last.Items))
	}
	if last.Items[1].Name != "mover" && last.Items[0].Name != "mover" {
		t.Errorf("frame items %v missing mover", last.Items)
	}
	if len(last.Hair) != registry.HairSegments {
		t.Errorf("hair segments = %d, expected %d", len(last.Hair), registry.HairSegments)
	}
}
