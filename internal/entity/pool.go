package entity

import (
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// ItemPool is the item arena: level items first, then dynamic headroom.
// Room membership lists start at level.Room.ItemHead and chain through
// Item.NextItem; the active list is doubly linked through
// NextActive/PrevActive.
type ItemPool struct {
	Items      []Item
	LevelCount int

	lvl        *level.Level
	freeHead   int16
	activeHead int16
}

// NewItemPool allocates levelCount level items plus headroom dynamic slots.
// Level items start allocated but outside any room.
func NewItemPool(lvl *level.Level, levelCount, headroom int) *ItemPool {
	p := &ItemPool{
		Items:      make([]Item, levelCount+headroom),
		LevelCount: levelCount,
		lvl:        lvl,
		freeHead:   NoItem,
		activeHead: NoItem,
	}
	for i := range p.Items {
		p.Items[i].reset(int16(i))
	}
	for i := 0; i < levelCount; i++ {
		p.Items[i].InUse = true
	}
	// Free list in ascending order.
	for i := len(p.Items) - 1; i >= levelCount; i-- {
		p.Items[i].Dynamic = true
		p.Items[i].NextItem = p.freeHead
		p.freeHead = int16(i)
	}
	return p
}

// Len returns the capacity of the arena.
func (p *ItemPool) Len() int {
	return len(p.Items)
}

// Get returns item num, or nil when out of range.
func (p *ItemPool) Get(num int16) *Item {
	if num < 0 || int(num) >= len(p.Items) {
		return nil
	}
	return &p.Items[num]
}

// Create takes a dynamic slot from the headroom. It returns NoItem when the
// headroom is exhausted; callers skip the spawn.
func (p *ItemPool) Create() int16 {
	num := p.freeHead
	if num == NoItem {
		return NoItem
	}
	it := &p.Items[num]
	p.freeHead = it.NextItem
	it.reset(num)
	it.Dynamic = true
	it.InUse = true
	return num
}

// Kill takes an item out of play: it leaves the active list and its room.
// Dynamic slots return to the headroom; level items keep their slot and get
// FlagKilled so saves remember them.
func (p *ItemPool) Kill(num int16) {
	it := p.Get(num)
	if it == nil || !it.InUse {
		return
	}
	p.RemoveActive(num)
	p.RemoveFromRoom(num)

	if int(num) < p.LevelCount {
		it.Flags |= FlagKilled
		return
	}
	it.InUse = false
	it.Object = NoObject
	it.Data = nil
	it.NextItem = p.freeHead
	p.freeHead = num
}

// AddActive puts an item on the active list. Adding an active item is a
// no-op.
func (p *ItemPool) AddActive(num int16) {
	it := p.Get(num)
	if it == nil || it.Active {
		return
	}
	if it.Status == StatusInactive {
		it.Status = StatusActive
	}
	it.Active = true
	it.PrevActive = NoItem
	it.NextActive = p.activeHead
	if p.activeHead != NoItem {
		p.Items[p.activeHead].PrevActive = num
	}
	p.activeHead = num
}

// RemoveActive takes an item off the active list. Removing an inactive
// item is a no-op.
func (p *ItemPool) RemoveActive(num int16) {
	it := p.Get(num)
	if it == nil || !it.Active {
		return
	}
	it.Active = false
	if it.PrevActive != NoItem {
		p.Items[it.PrevActive].NextActive = it.NextActive
	} else {
		p.activeHead = it.NextActive
	}
	if it.NextActive != NoItem {
		p.Items[it.NextActive].PrevActive = it.PrevActive
	}
	it.NextActive = NoItem
	it.PrevActive = NoItem
}

// ActiveHead returns the first active item, or NoItem.
func (p *ItemPool) ActiveHead() int16 {
	return p.activeHead
}

// ActiveItems returns the active list in list order. The tick walks this
// snapshot so items activated mid-walk first run on the next tick.
func (p *ItemPool) ActiveItems() []int16 {
	var items []int16
	for num := p.activeHead; num != NoItem; num = p.Items[num].NextActive {
		items = append(items, num)
		if len(items) > len(p.Items) {
			break
		}
	}
	return items
}

// AddToRoom links an item at the head of a room's item list.
func (p *ItemPool) AddToRoom(num, room int16) {
	it := p.Get(num)
	r := p.lvl.Room(room)
	if it == nil || r == nil {
		return
	}
	it.Room = room
	it.NextItem = r.ItemHead
	r.ItemHead = num
}

// RemoveFromRoom unlinks an item from its room's list and clears its room.
func (p *ItemPool) RemoveFromRoom(num int16) {
	it := p.Get(num)
	if it == nil {
		return
	}
	r := p.lvl.Room(it.Room)
	if r != nil {
		if r.ItemHead == num {
			r.ItemHead = it.NextItem
		} else {
			for link := r.ItemHead; link != NoItem; link = p.Items[link].NextItem {
				if p.Items[link].NextItem == num {
					p.Items[link].NextItem = it.NextItem
					break
				}
			}
		}
	}
	it.Room = level.NoRoom
	it.NextItem = NoItem
}

// NewRoom moves an item into another room. Removal, insertion and the room
// field update happen in this one call.
func (p *ItemPool) NewRoom(num, room int16) {
	it := p.Get(num)
	if it == nil || it.Room == room || p.lvl.Room(room) == nil {
		return
	}
	p.RemoveFromRoom(num)
	p.AddToRoom(num, room)
}

// RoomItems returns the items resident in a room, head first.
func (p *ItemPool) RoomItems(room int16) []int16 {
	r := p.lvl.Room(room)
	if r == nil {
		return nil
	}
	var items []int16
	for num := r.ItemHead; num != NoItem; num = p.Items[num].NextItem {
		items = append(items, num)
		if len(items) > len(p.Items) {
			break
		}
	}
	return items
}

// Live returns the number of allocated, unkilled items.
func (p *ItemPool) Live() int {
	n := 0
	for i := range p.Items {
		if p.Items[i].InUse && !p.Items[i].Killed() {
			n++
		}
	}
	return n
}
