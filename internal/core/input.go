package core

import "strings"

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionForward        // W, Up arrow
	ActionBack           // S, Down arrow
	ActionLeft           // A, Left arrow - turn left
	ActionRight          // D, Right arrow - turn right
	ActionJump           // Space
	ActionAction         // E, Ctrl - use / fire
	ActionDraw           // 1 - draw or holster weapons
	ActionLook           // L - free look
	ActionWalk           // Shift - walk, no ledge drops
	ActionFlare          // F - throw a flare
	ActionRoll           // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBack:
		return "Back"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAction:
		return "Action"
	case ActionDraw:
		return "Draw"
	case ActionLook:
		return "Look"
	case ActionWalk:
		return "Walk"
	case ActionFlare:
		return "Flare"
	case ActionRoll:
		return "Roll"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction returns the action with the given name, ignoring case.
func ParseAction(name string) (Action, bool) {
	for a := ActionForward; a <= ActionPause; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame represents the player input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were held this tick.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Bits packs the frame into a bitmask, ordered by Action value.
// Used for input recordings and the determinism hash.
func (f InputFrame) Bits() uint32 {
	var bits uint32
	for a, held := range f.Actions {
		if held && a > ActionNone && a < 32 {
			bits |= 1 << uint(a)
		}
	}
	return bits
}

// InputFromBits is the inverse of Bits.
func InputFromBits(bits uint32) InputFrame {
	f := NewInputFrame()
	for a := ActionForward; a <= ActionPause; a++ {
		if bits&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	return f
}
