package core

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(30)
	step := c.Step()

	ticks, ratio := c.Advance(step / 2)
	if ticks != 0 {
		t.Errorf("ticks = %d, expected 0", ticks)
	}
	if ratio < 0.49 || ratio > 0.51 {
		t.Errorf("ratio = %f, expected 0.5", ratio)
	}

	ticks, _ = c.Advance(step)
	if ticks != 1 {
		t.Errorf("ticks = %d, expected 1", ticks)
	}
	if c.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", c.Ticks())
	}
}

func TestClockCapsStall(t *testing.T) {
	c := NewClock(30)
	ticks, _ := c.Advance(10 * time.Second)
	if ticks > 8 {
		t.Errorf("ticks = %d after a stall, expected at most 8", ticks)
	}
}

func TestInputBitsRoundTrip(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionForward)
	f.Set(ActionJump)

	g := InputFromBits(f.Bits())
	if !g.Has(ActionForward) || !g.Has(ActionJump) || g.Has(ActionBack) {
		t.Errorf("InputFromBits(Bits()) = %v, expected forward+jump", g.Actions)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		expected Action
		ok       bool
	}{
		{"forward", ActionForward, true},
		{"Jump", ActionJump, true},
		{"FLARE", ActionFlare, true},
		{"pause", ActionPause, true},
		{"none", ActionNone, false},
		{"duck", ActionNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseAction(tt.name)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseAction(%q) = (%v, %v), expected (%v, %v)", tt.name, got, ok, tt.expected, tt.ok)
		}
	}
}
