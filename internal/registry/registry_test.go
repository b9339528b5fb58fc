package registry

import (
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
)

type plain struct{ Base }

type platform struct {
	Base
	raise int32
}

func (p platform) FloorHeight(ctx Context, num int16, x, y, z, height int32) int32 {
	return height - p.raise
}

func (platform) Initialise(ctx Context, num int16) {}

func TestRegisterAndLookup(t *testing.T) {
	Register(Object{ID: 900, Name: "test-plain", Behavior: plain{}})
	Register(Object{ID: 901, Name: "test-platform", Behavior: platform{raise: 256}})

	o, ok := Lookup(900)
	if !ok {
		t.Fatal("Lookup(900) failed")
	}
	if o.Name != "test-plain" {
		t.Errorf("Lookup(900).Name = %q, expected %q", o.Name, "test-plain")
	}
	if o.FloorHeighter() != nil {
		t.Error("plain object should not have a floor slot")
	}

	p, ok := ByName("test-platform")
	if !ok {
		t.Fatal("ByName(test-platform) failed")
	}
	if p.FloorHeighter() == nil {
		t.Fatal("platform object should have a floor slot")
	}
	if got := p.FloorHeighter().FloorHeight(nil, 0, 0, 0, 0, 1024); got != 768 {
		t.Errorf("FloorHeight() = %d, expected 768", got)
	}

	slots := p.Slots()
	if len(slots) != 2 || slots[0] != "initialise" || slots[1] != "floor" {
		t.Errorf("Slots() = %v, expected [initialise floor]", slots)
	}

	if _, ok := Lookup(999); ok {
		t.Error("Lookup(999) should fail")
	}
	if !Exists(901) {
		t.Error("Exists(901) = false, expected true")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Object{ID: 910, Name: "test-dup", Behavior: plain{}})

	tests := []struct {
		name string
		obj  Object
	}{
		{"same id", Object{ID: 910, Name: "test-dup-2", Behavior: plain{}}},
		{"same name", Object{ID: 911, Name: "test-dup", Behavior: plain{}}},
		{"no behaviour", Object{ID: 912, Name: "test-nil"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			Register(tt.obj)
		})
	}
}

func TestListSorted(t *testing.T) {
	Register(Object{ID: 922, Name: "test-list-b", Behavior: plain{}})
	Register(Object{ID: 921, Name: "test-list-a", Behavior: plain{}})

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted at %d: %d >= %d", i, list[i-1].ID, list[i].ID)
		}
	}
}

func TestGlyphDraw(t *testing.T) {
	canvas := core.NewCanvas(4, 4)
	g := Glyph{Rune: 'w', Color: core.ColorRed}

	g.Draw(Drawable{Object: entity.ObjectID(1), Pose: interp.Pose{Pos: core.Vec3{X: 1024, Z: 2048}}}, canvas)

	x, y := canvas.Project(core.Vec3{X: 1024, Z: 2048})
	if cell := canvas.Get(x, y); cell.Rune != 'w' || cell.Color != core.ColorRed {
		t.Errorf("Get(%d, %d) = %+v, expected w/red", x, y, cell)
	}
}
