// Package effects implements the transient effect objects.
package effects

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Effect lifetimes in frames.
const (
	bloodFrames     = 4
	explosionFrames = 8
)

const (
	missileDamage  = 200
	explosionShake = -30
)

// sprite is an effect drawn as a glyph that cycles through frames.
type sprite struct {
	registry.Base
	runes []rune
	color core.Color
}

func (s sprite) Draw(d registry.Drawable, canvas *core.Canvas) {
	canvas.Plot(d.Pose.Pos, s.runes[int(d.Frame)%len(s.runes)], s.color)
}

// blood drifts along its yaw and fades out.
type blood struct{ sprite }

func (blood) Control(ctx registry.Context, num int16) {
	fx := ctx.Effect(num)
	fx.Pos = core.Rotate(fx.Pos, fx.Rot.Y, int32(fx.Speed))
	fx.FrameNum++
	if fx.FrameNum >= bloodFrames {
		ctx.KillEffect(num)
	}
}

// ricochet is a spark that lives for its counter.
type ricochet struct{ sprite }

func (ricochet) Control(ctx registry.Context, num int16) {
	fx := ctx.Effect(num)
	fx.Shade = int16(ctx.Random().Draw() >> 7)
	fx.FrameNum++
	fx.Counter--
	if fx.Counter <= 0 {
		ctx.KillEffect(num)
	}
}

// missile flies straight and becomes an explosion in place when it hits
// geometry or Lara.
type missile struct{ sprite }

func (missile) Control(ctx registry.Context, num int16) {
	fx := ctx.Effect(num)
	fx.FrameNum++
	if !common.MoveEffect(ctx, num) {
		ctx.MorphEffect(num, registry.ObjExplosion)
		return
	}

	lara := ctx.Item(ctx.LaraNum())
	if lara == nil || lara.HitPoints <= 0 {
		return
	}
	chest := lara.Pos
	chest.Y -= core.StepL * 2
	if common.Near(fx.Pos, chest, core.StepL, core.StepL*2) {
		common.Damage(lara, missileDamage)
		common.Blood(ctx, fx.Pos, fx.Rot.Y, fx.Room)
		ctx.MorphEffect(num, registry.ObjExplosion)
	}
}

// explosion shakes the camera on its first frame and burns out.
type explosion struct{ sprite }

func (explosion) Control(ctx registry.Context, num int16) {
	fx := ctx.Effect(num)
	if fx.FrameNum == 0 {
		ctx.BounceCamera(explosionShake)
	}
	fx.FrameNum++
	if fx.FrameNum >= explosionFrames {
		ctx.KillEffect(num)
	}
}

func init() {
	registry.Register(registry.Object{
		ID:       registry.ObjBlood,
		Name:     "blood",
		Kind:     registry.KindEffect,
		Frames:   bloodFrames,
		Behavior: blood{sprite{runes: []rune{',', ';', '.', '.'}, color: core.ColorRed}},
	})
	registry.Register(registry.Object{
		ID:       registry.ObjRicochet,
		Name:     "ricochet",
		Kind:     registry.KindEffect,
		Frames:   1,
		Behavior: ricochet{sprite{runes: []rune{'\'', '`'}, color: core.ColorWhite}},
	})
	registry.Register(registry.Object{
		ID:              registry.ObjMissile,
		Name:            "missile",
		Kind:            registry.KindEffect,
		Frames:          1,
		SemiTransparent: true,
		Behavior:        missile{sprite{runes: []rune{'o', 'O'}, color: core.ColorOrange}},
	})
	registry.Register(registry.Object{
		ID:              registry.ObjExplosion,
		Name:            "explosion",
		Kind:            registry.KindEffect,
		Frames:          explosionFrames,
		SemiTransparent: true,
		Behavior:        explosion{sprite{runes: []rune{'*', '#', '#', '%', '%', '+', '.', ' '}, color: core.ColorYellow}},
	})
}
