package registry

import "github.com/vovakirdan/tomb-engine/internal/core"

// Base provides no-op implementations of the required slots. Embed it and
// override what the object needs.
type Base struct{}

// Control implements Behavior.
func (Base) Control(ctx Context, num int16) {}

// Collision implements Behavior.
func (Base) Collision(ctx Context, num, laraNum int16) {}

// Draw implements Behavior.
func (Base) Draw(d Drawable, canvas *core.Canvas) {}

var _ Behavior = Base{}

// Glyph draws an entity as a single map character.
type Glyph struct {
	Base
	Rune  rune
	Color core.Color
}

// Draw implements Behavior.
func (g Glyph) Draw(d Drawable, canvas *core.Canvas) {
	canvas.Plot(d.Pose.Pos, g.Rune, g.Color)
}

var _ Behavior = Glyph{}
