package entity

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

func rooms(n int) *level.Level {
	l := &level.Level{}
	for i := 0; i < n; i++ {
		pos := core.Vec3{X: int32(i) * 4 * core.WallL}
		l.Rooms = append(l.Rooms, level.NewRoom(int16(i), pos, 4, 4, 2048))
	}
	return l
}

// membership counts how many room lists contain each item.
func membership(p *ItemPool, l *level.Level) map[int16][]int16 {
	seen := make(map[int16][]int16)
	for r := range l.Rooms {
		for _, num := range p.RoomItems(int16(r)) {
			seen[num] = append(seen[num], int16(r))
		}
	}
	return seen
}

func TestNewRoomAtomicity(t *testing.T) {
	l := rooms(10)
	p := NewItemPool(l, 8, 0)
	r := core.NewRandom(99)

	for i := 0; i < 8; i++ {
		p.AddToRoom(int16(i), int16(r.Intn(10)))
	}

	for step := 0; step < 1000; step++ {
		num := int16(r.Intn(8))
		room := int16(r.Intn(10))
		p.NewRoom(num, room)

		seen := membership(p, l)
		for i := int16(0); i < 8; i++ {
			rs := seen[i]
			if len(rs) != 1 {
				t.Fatalf("step %d: item %d in %d room lists, expected 1", step, i, len(rs))
			}
			if rs[0] != p.Items[i].Room {
				t.Fatalf("step %d: item %d listed in room %d but Room = %d", step, i, rs[0], p.Items[i].Room)
			}
		}
	}
}

func TestCreateExhaustion(t *testing.T) {
	l := rooms(1)
	p := NewItemPool(l, 2, 3)

	var created []int16
	for i := 0; i < 3; i++ {
		num := p.Create()
		if num == NoItem {
			t.Fatalf("Create() #%d = NoItem, expected a slot", i)
		}
		created = append(created, num)
	}
	if !reflect.DeepEqual(created, []int16{2, 3, 4}) {
		t.Errorf("created = %v, expected [2 3 4]", created)
	}
	if num := p.Create(); num != NoItem {
		t.Errorf("Create() on a full pool = %d, expected NoItem", num)
	}

	p.Kill(3)
	if num := p.Create(); num != 3 {
		t.Errorf("Create() after Kill(3) = %d, expected 3", num)
	}
}

func TestKillLevelItemVersusDynamic(t *testing.T) {
	l := rooms(2)
	p := NewItemPool(l, 1, 1)

	p.AddToRoom(0, 1)
	p.AddActive(0)
	p.Kill(0)

	it := p.Get(0)
	if !it.Killed() {
		t.Error("killed level item should carry FlagKilled")
	}
	if !it.InUse {
		t.Error("killed level item should keep its slot")
	}
	if it.Active || len(p.ActiveItems()) != 0 {
		t.Error("killed item should leave the active list")
	}
	if len(p.RoomItems(1)) != 0 || it.Room != level.NoRoom {
		t.Error("killed item should leave its room")
	}

	dyn := p.Create()
	p.AddToRoom(dyn, 0)
	p.Kill(dyn)
	if p.Get(dyn).InUse {
		t.Error("killed dynamic item should return to the pool")
	}
	if p.Get(dyn).Killed() {
		t.Error("dynamic items are freed, not flagged")
	}
}

func TestActiveList(t *testing.T) {
	l := rooms(1)
	p := NewItemPool(l, 5, 0)

	for i := int16(0); i < 5; i++ {
		p.AddActive(i)
	}
	p.AddActive(2) // idempotent

	if got := p.ActiveItems(); !reflect.DeepEqual(got, []int16{4, 3, 2, 1, 0}) {
		t.Errorf("ActiveItems() = %v, expected [4 3 2 1 0]", got)
	}

	tests := []struct {
		name     string
		remove   int16
		expected []int16
	}{
		{"middle", 2, []int16{4, 3, 1, 0}},
		{"head", 4, []int16{3, 1, 0}},
		{"tail", 0, []int16{3, 1}},
		{"already removed", 0, []int16{3, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p.RemoveActive(tc.remove)
			if got := p.ActiveItems(); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ActiveItems() = %v, expected %v", got, tc.expected)
			}
		})
	}

	if p.Get(3).Status != StatusActive {
		t.Errorf("Status = %v, expected active", p.Get(3).Status)
	}
}

func TestItemData(t *testing.T) {
	l := rooms(1)
	p := NewItemPool(l, 1, 0)
	it := p.Get(0)

	if it.Creature() != nil {
		t.Error("Creature() on an item without data should be nil")
	}
	it.Data = &Creature{Mood: MoodAttack}
	if c := it.Creature(); c == nil || c.Mood != MoodAttack {
		t.Errorf("Creature() = %v, expected attack mood", c)
	}
}
