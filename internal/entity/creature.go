package entity

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
)

// Mood is the high-level intent of a creature.
type Mood uint8

const (
	MoodBored Mood = iota
	MoodAttack
	MoodEscape
	MoodStalk
)

// String returns the mood name.
func (m Mood) String() string {
	switch m {
	case MoodBored:
		return "bored"
	case MoodAttack:
		return "attack"
	case MoodEscape:
		return "escape"
	case MoodStalk:
		return "stalk"
	default:
		return "unknown"
	}
}

// Creature is the AI data block of an intelligent item. It holds a LOT
// only while the item owns one of the limited AI slots.
type Creature struct {
	ItemNum      int16
	HeadRotation int16
	NeckRotation int16
	MaximumTurn  int16
	Flags        uint16
	Mood         Mood

	Enemy  int16
	Target core.Vec3
	LOT    *box.LOT
}

// DataKind implements Data.
func (*Creature) DataKind() string {
	return "creature"
}

var _ Data = (*Creature)(nil)
