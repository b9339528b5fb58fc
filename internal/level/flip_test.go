package level

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

func flippable() *Level {
	l := corridor(2)
	alt := NewRoom(2, l.Rooms[0].Pos, 4, 3, 2048)
	for i := range alt.Sectors {
		alt.Sectors[i].Floor.Height = 512
	}
	alt.Mesh.Vertices = []core.Vec3{{X: 1, Y: 2, Z: 3}}
	l.Rooms = append(l.Rooms, alt)
	l.Rooms[0].FlippedRoom = 2
	l.Rooms[0].ItemHead = 7
	l.Rooms[0].EffectHead = 3
	return l
}

func TestFlipMapParity(t *testing.T) {
	l := flippable()
	before := l.Clone()

	l.FlipMap(nil, nil)
	if !l.FlipStatus {
		t.Error("FlipStatus should be set after one flip")
	}
	if reflect.DeepEqual(before.Rooms, l.Rooms) {
		t.Fatal("first flip should change room state")
	}

	l.FlipMap(nil, nil)
	if !reflect.DeepEqual(before, l) {
		t.Errorf("two flips should restore the original state")
	}
}

func TestFlipMapKeepsSlotIdentity(t *testing.T) {
	l := flippable()
	l.FlipMap(nil, nil)

	r := &l.Rooms[0]
	if r.Index != 0 {
		t.Errorf("Index = %d, expected 0", r.Index)
	}
	if r.FlippedRoom != 2 {
		t.Errorf("FlippedRoom = %d, expected 2", r.FlippedRoom)
	}
	if r.ItemHead != 7 || r.EffectHead != 3 {
		t.Errorf("heads = (%d, %d), expected (7, 3)", r.ItemHead, r.EffectHead)
	}
	if h := r.Sector(1, 1).Floor.Height; h != 512 {
		t.Errorf("flipped floor = %d, expected 512", h)
	}
	if len(r.Mesh.Vertices) != 1 {
		t.Errorf("flipped mesh not swapped in")
	}
}

func TestFlipMapCallbacks(t *testing.T) {
	l := flippable()
	var calls []string
	l.FlipMap(
		func(room int16) { calls = append(calls, "before") },
		func(room int16) { calls = append(calls, "after") },
	)
	if !reflect.DeepEqual(calls, []string{"before", "after"}) {
		t.Errorf("callbacks = %v, expected [before after]", calls)
	}
}

func TestFlipTrigger(t *testing.T) {
	l := corridor(1)

	// Two triggers each contributing part of the code bits.
	if l.FlipTrigger(0, 0x0E00, false, false) {
		t.Error("partial code bits should not flip")
	}
	if !l.FlipTrigger(0, 0x3000, false, true) {
		t.Error("completing the code bits should flip")
	}
	if l.FlipFlags[0]&FlipOneShot == 0 {
		t.Error("one-shot trigger should latch the slot")
	}
	if l.FlipTrigger(0, 0x3E00, true, false) {
		t.Error("a latched slot should ignore further triggers")
	}

	if l.FlipTrigger(MaxFlipMaps, 0x3E00, false, false) {
		t.Error("out of range slot should be ignored")
	}
}

func TestFlipOnOff(t *testing.T) {
	l := corridor(1)
	l.FlipFlags[1] = FlipCodeBits

	if !l.FlipOnRequested(1) {
		t.Error("FlipOnRequested() should flip while unflipped")
	}
	if l.FlipOffRequested(1) {
		t.Error("FlipOffRequested() should not flip while unflipped")
	}
	l.FlipStatus = true
	if !l.FlipOffRequested(1) {
		t.Error("FlipOffRequested() should flip while flipped")
	}
}
