package entity

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// Effect is a transient entity: blood, debris, explosions, projectile glow.
type Effect struct {
	Num    int16
	Object ObjectID

	Pos  core.Vec3
	Rot  core.Rot
	Room int16

	Speed     int16
	FallSpeed int16
	FrameNum  int16
	Counter   int16
	Shade     int16

	InUse  bool
	Interp interp.Record

	NextEffect int16 // room list, or free list when unused
	NextActive int16
}

// Pose returns the authoritative interpolatable pose.
func (e *Effect) Pose() interp.Pose {
	return interp.Pose{Pos: e.Pos, Rot: e.Rot}
}

// EffectPool is the bounded effect arena with its singly linked active
// chain. New effects go to the head of the chain.
//
// A killed effect keeps its NextActive, and its slot is not handed out
// again until Reclaim, so a walk standing on it can still step forward.
type EffectPool struct {
	Effects []Effect

	lvl        *level.Level
	freeHead   int16
	activeHead int16
	graveyard  []int16
}

// DefaultEffectCapacity is the stock effect pool size.
const DefaultEffectCapacity = 100

// NewEffectPool allocates capacity effect slots.
func NewEffectPool(lvl *level.Level, capacity int) *EffectPool {
	p := &EffectPool{
		Effects:    make([]Effect, capacity),
		lvl:        lvl,
		freeHead:   NoEffect,
		activeHead: NoEffect,
	}
	for i := capacity - 1; i >= 0; i-- {
		p.Effects[i] = Effect{
			Num:        int16(i),
			Object:     NoObject,
			Room:       level.NoRoom,
			NextEffect: p.freeHead,
			NextActive: NoEffect,
		}
		p.freeHead = int16(i)
	}
	return p
}

// Len returns the capacity of the arena.
func (p *EffectPool) Len() int {
	return len(p.Effects)
}

// Get returns effect num, or nil when out of range.
func (p *EffectPool) Get(num int16) *Effect {
	if num < 0 || int(num) >= len(p.Effects) {
		return nil
	}
	return &p.Effects[num]
}

// Create takes a free slot, links it at the head of the active chain and
// into room. It returns NoEffect when the pool is exhausted.
func (p *EffectPool) Create(room int16) int16 {
	num := p.freeHead
	if num == NoEffect {
		return NoEffect
	}
	e := &p.Effects[num]
	p.freeHead = e.NextEffect

	*e = Effect{
		Num:        num,
		Object:     NoObject,
		Room:       level.NoRoom,
		InUse:      true,
		NextEffect: NoEffect,
		NextActive: p.activeHead,
	}
	p.activeHead = num
	p.addToRoom(num, room)
	return num
}

// Kill unlinks an effect from the active chain, patching its predecessor,
// and from its room. The slot becomes reusable after Reclaim.
func (p *EffectPool) Kill(num int16) {
	e := p.Get(num)
	if e == nil || !e.InUse {
		return
	}

	if p.activeHead == num {
		p.activeHead = e.NextActive
	} else {
		for link := p.activeHead; link != NoEffect; link = p.Effects[link].NextActive {
			if p.Effects[link].NextActive == num {
				p.Effects[link].NextActive = e.NextActive
				break
			}
		}
	}

	p.removeFromRoom(num)
	e.InUse = false
	p.graveyard = append(p.graveyard, num)
}

// Reclaim returns killed slots to the free list. The tick calls it once the
// effect walk is over.
func (p *EffectPool) Reclaim() {
	for _, num := range p.graveyard {
		e := &p.Effects[num]
		e.Object = NoObject
		e.NextActive = NoEffect
		e.NextEffect = p.freeHead
		p.freeHead = num
	}
	p.graveyard = p.graveyard[:0]
}

// Morph retypes a live effect in place and restarts its animation. The
// slot, position and chain links are unchanged.
func (p *EffectPool) Morph(num int16, object ObjectID) bool {
	e := p.Get(num)
	if e == nil || !e.InUse {
		return false
	}
	e.Object = object
	e.FrameNum = 0
	e.Counter = 0
	return true
}

// ActiveHead returns the first active effect, or NoEffect.
func (p *EffectPool) ActiveHead() int16 {
	return p.activeHead
}

// ActiveEffects returns the active chain in order.
func (p *EffectPool) ActiveEffects() []int16 {
	var effects []int16
	for num := p.activeHead; num != NoEffect; num = p.Effects[num].NextActive {
		effects = append(effects, num)
		if len(effects) > len(p.Effects) {
			break
		}
	}
	return effects
}

// NewRoom moves an effect into another room.
func (p *EffectPool) NewRoom(num, room int16) {
	e := p.Get(num)
	if e == nil || !e.InUse || e.Room == room || p.lvl.Room(room) == nil {
		return
	}
	p.removeFromRoom(num)
	p.addToRoom(num, room)
}

// RoomEffects returns the effects resident in a room.
func (p *EffectPool) RoomEffects(room int16) []int16 {
	r := p.lvl.Room(room)
	if r == nil {
		return nil
	}
	var effects []int16
	for num := r.EffectHead; num != NoEffect; num = p.Effects[num].NextEffect {
		effects = append(effects, num)
		if len(effects) > len(p.Effects) {
			break
		}
	}
	return effects
}

func (p *EffectPool) addToRoom(num, room int16) {
	r := p.lvl.Room(room)
	if r == nil {
		return
	}
	e := &p.Effects[num]
	e.Room = room
	e.NextEffect = r.EffectHead
	r.EffectHead = num
}

func (p *EffectPool) removeFromRoom(num int16) {
	e := &p.Effects[num]
	r := p.lvl.Room(e.Room)
	if r != nil {
		if r.EffectHead == num {
			r.EffectHead = e.NextEffect
		} else {
			for link := r.EffectHead; link != NoEffect; link = p.Effects[link].NextEffect {
				if p.Effects[link].NextEffect == num {
					p.Effects[link].NextEffect = e.NextEffect
					break
				}
			}
		}
	}
	e.Room = level.NoRoom
	e.NextEffect = NoEffect
}
