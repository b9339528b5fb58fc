package savegame

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	_ "github.com/vovakirdan/tomb-engine/internal/objects"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

const floorY = 768

func hall(number int) (*level.Level, *box.Graph) {
	r := level.NewRoom(0, core.Vec3{Y: floorY}, 10, 10, 4096)
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
	g := box.NewGraph()
	g.InitialiseBoxes(1)
	g.Boxes[0] = box.Box{Left: 1, Right: 9, Top: 1, Bottom: 9, Height: floorY, OverlapIndex: box.Blockable}
	if err := g.SetOverlaps(0, nil); err != nil {
		panic(err)
	}
	return &level.Level{Name: "hall", Number: number, Rooms: []level.Room{r}}, g
}

func at(xs, zs int32) core.Vec3 {
	return core.Vec3{X: xs*core.WallL + core.WallL/2, Y: floorY, Z: zs*core.WallL + core.WallL/2}
}

// newWorld builds Lara, a wolf, a door and a doppelganger in one room.
func newWorld(t *testing.T, number int) *engine.World {
	t.Helper()
	lvl, g := hall(number)
	spawns := []entity.Spawn{
		{Object: registry.ObjLara, Pos: at(2, 2)},
		{Object: registry.ObjWolf, Pos: at(6, 6)},
		{Object: registry.ObjDoor, Pos: at(4, 7)},
		{Object: registry.ObjBaconLara, Pos: at(7, 2)},
	}
	opts := engine.DefaultOptions()
	opts.Logger = log.New(io.Discard)
	w, err := engine.New(lvl, g, spawns, opts)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	return w
}

func TestRoundTrip(t *testing.T) {
	w := newWorld(t, 1)
	wolf := w.Item(1)
	wolf.Pos = core.Vec3{X: 100, Y: 200, Z: 300}
	wolf.Rot = core.Rot{Y: 8192}
	wolf.CurrentAnimState, wolf.GoalAnimState = 2, 3
	wolf.HitPoints = 45
	w.Lara().Flares = 7
	w.Lara().Clips[1] = 3

	data := Save(w)
	fresh := newWorld(t, 1)
	if err := Load(fresh, data); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got := fresh.Item(1)
	if got.Pos != wolf.Pos {
		t.Errorf("Pos = %+v, expected %+v", got.Pos, wolf.Pos)
	}
	if got.Rot != wolf.Rot {
		t.Errorf("Rot = %+v, expected %+v", got.Rot, wolf.Rot)
	}
	if got.CurrentAnimState != 2 || got.GoalAnimState != 3 {
		t.Errorf("states = (%d, %d), expected (2, 3)", got.CurrentAnimState, got.GoalAnimState)
	}
	if got.HitPoints != 45 {
		t.Errorf("HitPoints = %d, expected 45", got.HitPoints)
	}
	if fresh.Lara().Flares != 7 {
		t.Errorf("Flares = %d, expected 7", fresh.Lara().Flares)
	}
	if fresh.Lara().Clips[1] != 3 {
		t.Errorf("Clips[1] = %d, expected 3", fresh.Lara().Clips[1])
	}
}

func TestEncodeIsStable(t *testing.T) {
	w := newWorld(t, 1)
	a := Save(w)
	st, err := Decode(w, a)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	b := Encode(st)
	if string(a) != string(b) {
		t.Error("re-encoding a decoded save changed the image")
	}
}

func TestCurrentRejectsDamage(t *testing.T) {
	w := newWorld(t, 1)
	data := Save(w)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"flipped byte", func(d []byte) []byte { d[10] ^= 0xFF; return d }, ErrCorrupt},
		{"truncated", func(d []byte) []byte { return d[:len(d)-3] }, ErrCorrupt},
		{"tag only", func(d []byte) []byte { return d[:len(Magic)] }, ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]byte(nil), data...)
			fresh := newWorld(t, 1)
			before := fresh.Hash()
			err := Load(fresh, tt.mutate(buf))
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, expected %v", err, tt.want)
			}
			if fresh.Hash() != before {
				t.Error("failed load changed the world")
			}
		})
	}
}

func TestApplyRejectsBadRoom(t *testing.T) {
	w := newWorld(t, 1)
	st := Capture(w)
	st.Items[1].Room = 5

	before := w.Hash()
	if err := Apply(w, st); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Apply() error = %v, expected ErrCorrupt", err)
	}
	if w.Hash() != before {
		t.Error("rejected state changed the world")
	}
}

func TestEncodeOverflowPanics(t *testing.T) {
	st := &State{Items: make([]ItemRecord, 1000)}
	for i := range st.Items {
		st.Items[i] = ItemRecord{HasPosition: true, HasAnim: true, HasHitPoints: true, HasFlags: true}
	}

	defer func() {
		r := recover()
		if _, ok := r.(*OverflowError); !ok {
			t.Errorf("recover() = %v, expected *OverflowError", r)
		}
	}()
	Encode(st)
	t.Error("Encode() did not panic")
}

func TestLegacyCreatureBit(t *testing.T) {
	w := newWorld(t, 1)
	st := Capture(w)
	st.Items[1].Creature = &CreatureRecord{MaximumTurn: 546, Mood: entity.MoodAttack}

	fresh := newWorld(t, 1)
	if err := Load(fresh, encodeLegacy(st)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	c := fresh.Item(1).Creature()
	if c == nil {
		t.Fatal("wolf has no creature block after a creature record")
	}
	if c.Mood != entity.MoodAttack || c.MaximumTurn != 546 {
		t.Errorf("creature = (%v, %d), expected (%v, 546)", c.Mood, c.MaximumTurn, entity.MoodAttack)
	}

	st.Items[1].Creature = nil
	if err := Load(fresh, encodeLegacy(st)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if fresh.Item(1).Creature() != nil {
		t.Error("wolf kept its creature block without a creature record")
	}
}

func TestLegacyKeepsClips(t *testing.T) {
	w := newWorld(t, 1)
	w.Lara().Clips[2] = 4
	st := Capture(w)
	st.Lara.Clips[2] = 9

	if err := Load(w, encodeLegacy(st)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if w.Lara().Clips[2] != 4 {
		t.Errorf("Clips[2] = %d, expected 4", w.Lara().Clips[2])
	}
}

func TestLegacyLength(t *testing.T) {
	w := newWorld(t, 1)
	data := encodeLegacy(Capture(w))

	if _, err := Decode(w, data[:len(data)-1]); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short Decode() error = %v, expected ErrSizeMismatch", err)
	}
	if _, err := Decode(w, append(data, 0)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("long Decode() error = %v, expected ErrSizeMismatch", err)
	}
}

func TestLegacyFix(t *testing.T) {
	tests := []struct {
		name     string
		stripped bool
	}{
		{"current layout", false},
		{"old layout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t, LegacyFixLevel)
			st := Capture(w)
			if tt.stripped {
				st.Items[3] = ItemRecord{}
			}

			got, err := Decode(w, encodeLegacy(st))
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if got.Items[3].HasPosition == tt.stripped {
				t.Errorf("doppelganger HasPosition = %v, expected %v", got.Items[3].HasPosition, !tt.stripped)
			}
			if got.Items[1].Pos != st.Items[1].Pos {
				t.Errorf("wolf Pos = %+v, expected %+v", got.Items[1].Pos, st.Items[1].Pos)
			}
		})
	}
}

func TestLegacyFixOnlyOnItsLevel(t *testing.T) {
	w := newWorld(t, 3)
	st := Capture(w)
	st.Items[3] = ItemRecord{}

	if _, err := Decode(w, encodeLegacy(st)); err == nil {
		t.Error("Decode() accepted an old doppelganger layout outside its level")
	}
}

func TestLoadKeepsCreaturesBeyondSlots(t *testing.T) {
	build := func() *engine.World {
		lvl, g := hall(1)
		spawns := []entity.Spawn{
			{Object: registry.ObjLara, Pos: at(2, 2)},
			{Object: registry.ObjWolf, Pos: at(6, 6)},
			{Object: registry.ObjWolf, Pos: at(7, 7)},
			{Object: registry.ObjWolf, Pos: at(8, 8)},
		}
		opts := engine.DefaultOptions()
		opts.Logger = log.New(io.Discard)
		opts.AISlots = 2
		w, err := engine.New(lvl, g, spawns, opts)
		if err != nil {
			t.Fatalf("engine.New() failed: %v", err)
		}
		return w
	}

	st := Capture(build())
	for num := 1; num <= 3; num++ {
		rec := &st.Items[num]
		rec.Status = entity.StatusActive
		rec.Active = true
		rec.Creature = &CreatureRecord{MaximumTurn: int16(100 * num), Mood: entity.MoodStalk}
	}

	fresh := build()
	if err := Load(fresh, Encode(st)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	for num := int16(1); num <= 3; num++ {
		item := fresh.Item(num)
		if item.Status != entity.StatusActive {
			t.Errorf("wolf %d Status = %v, expected %v", num, item.Status, entity.StatusActive)
		}
		c := item.Creature()
		if c == nil {
			t.Errorf("wolf %d has no creature block", num)
			continue
		}
		if c.MaximumTurn != 100*num || c.Mood != entity.MoodStalk {
			t.Errorf("wolf %d creature = (%d, %v), expected (%d, %v)", num, c.MaximumTurn, c.Mood, 100*num, entity.MoodStalk)
		}
	}

	held := 0
	for _, num := range fresh.AISlots() {
		if num != entity.NoItem {
			held++
		}
	}
	if held != 2 {
		t.Errorf("held slots = %d, expected 2", held)
	}
}

func TestLoadDropsDynamicItems(t *testing.T) {
	w := newWorld(t, 1)
	data := Save(w)

	flare := w.CreateItem(registry.ObjFlare, at(3, 3), core.Rot{}, 0)
	if flare == entity.NoItem {
		t.Fatal("CreateItem() returned NoItem")
	}
	if err := Load(w, data); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if w.Item(flare).InUse {
		t.Errorf("flare %d still in use after loading a save without it", flare)
	}
	for _, num := range w.Items().RoomItems(0) {
		if num == flare {
			t.Errorf("flare %d still listed in room 0", flare)
		}
	}
}
