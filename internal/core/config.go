package core

import "time"

// RuntimeConfig contains the settings a world is created with.
type RuntimeConfig struct {
	TickRate    int   // Simulation ticks per second (default 30)
	RenderRate  int   // Presentation frames per second (default 60)
	Seed        int32 // Seed for both random streams
	Interpolate bool  // Blend poses between ticks when presenting
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate:    30,
		RenderRate:  60,
		Seed:        0,
		Interpolate: true,
	}
}

// maxFrameTime caps the time fed to the accumulator in one call so a stall
// does not trigger a burst of catch-up ticks.
const maxFrameTime = 250 * time.Millisecond

// Clock drives a fixed-step simulation from a variable-rate presentation
// loop. Advance reports how many ticks are due and the blend ratio to
// present with.
type Clock struct {
	step        time.Duration
	accumulator time.Duration
	ticks       uint64
}

// NewClock creates a clock running at tickRate ticks per second.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 30
	}
	return &Clock{step: time.Second / time.Duration(tickRate)}
}

// Advance adds elapsed real time and returns the number of ticks to run
// and the interpolation ratio in [0, 1) for the frame presented afterwards.
func (c *Clock) Advance(elapsed time.Duration) (ticks int, ratio float64) {
	if elapsed > maxFrameTime {
		elapsed = maxFrameTime
	}
	if elapsed < 0 {
		elapsed = 0
	}
	c.accumulator += elapsed
	for c.accumulator >= c.step {
		c.accumulator -= c.step
		ticks++
	}
	c.ticks += uint64(ticks)
	return ticks, float64(c.accumulator) / float64(c.step)
}

// Step returns the fixed tick duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Ticks returns the total number of ticks issued.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
