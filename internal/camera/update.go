package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// Subject is what the camera follows this tick.
type Subject struct {
	Item *entity.Item
	// Enemy selects combat mode when set.
	Enemy *entity.Item
	// Look selects look mode, aimed by Head relative to the item.
	Look bool
	Head core.Rot
	// Focus replaces Item as the look-at point of fixed cameras.
	Focus *entity.Item
}

// bounceStep is how fast a negative bounce decays toward zero.
const bounceStep = 5

// Update advances the rig by one tick.
func (c *Camera) Update(w World, s Subject) {
	defer c.endTick()

	switch c.Type {
	case Photo:
		return
	case Cinematic:
		c.updateCinematic(w)
		c.applyBounce(w.Random())
		return
	}
	if s.Item == nil || s.Item.Room == level.NoRoom {
		return
	}

	if c.Type == Heavy && c.Timer == -1 {
		c.releaseFixed()
	}

	switch {
	case c.Type == Fixed || c.Type == Heavy:
		focus := s.Item
		if s.Focus != nil && s.Focus.Room != level.NoRoom {
			focus = s.Focus
		}
		c.updateFixed(w, focus)
	case s.Look:
		c.setType(Look)
		c.updateLook(w, s.Item, s.Head)
	case s.Enemy != nil:
		c.setType(Combat)
		c.updateCombat(w, s.Item, s.Enemy)
	default:
		c.setType(Chase)
		c.updateChase(w, s.Item)
	}

	c.applyBounce(w.Random())
}

func (c *Camera) endTick() {
	// A latched camera unlatches once its trigger stops firing.
	if c.Timer == -1 && c.Type != Heavy && !c.triggered {
		c.Timer = 0
	}
	c.triggered = false
}

func (c *Camera) releaseFixed() {
	c.Last = c.Fixed
	c.Speed = c.cfg.ChaseSpeed
	c.setType(Chase)
}

// target computes the look-at point above the item, lowering the eye
// when the ceiling is close.
func (c *Camera) target(w World, item *entity.Item) core.GameVector {
	sector, room := w.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	if sector == nil {
		return core.GameVector{Pos: item.Pos, Room: item.Room}
	}

	shift := -c.cfg.EyeHeight
	ceiling := w.GetCeiling(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	if ceiling != level.NoHeight {
		shift = core.Clamp(shift, ceiling+core.ClickL-item.Pos.Y, 0)
	}
	c.Shift = shift

	pos := item.Pos
	pos.Y += shift
	_, targetRoom := w.GetSector(pos.X, pos.Y, pos.Z, room)
	if targetRoom == level.NoRoom {
		targetRoom = room
	}
	return core.GameVector{Pos: pos, Room: targetRoom}
}

func (c *Camera) updateChase(w World, item *entity.Item) {
	c.TargetDistance = c.cfg.ChaseDistance
	c.TargetElevation = c.cfg.ChaseElevation
	c.Speed = c.cfg.ChaseSpeed

	c.Target = c.target(w, item)
	ideal := c.Target.Pos.Add(Offset(c.TargetDistance, item.Rot.Y+c.TargetAngle, c.TargetElevation))
	c.move(w, ideal)
}

func (c *Camera) updateLook(w World, item *entity.Item, head core.Rot) {
	c.TargetDistance = c.cfg.LookDistance
	c.TargetElevation = c.cfg.ChaseElevation + head.X
	c.Speed = c.cfg.LookSpeed

	c.Target = c.target(w, item)
	yaw := item.Rot.Y + head.Y
	// Aim past the head so the camera looks where Lara looks.
	c.Target.Pos = core.Rotate(c.Target.Pos, yaw, core.WallL)
	ideal := c.Target.Pos.Add(Offset(c.TargetDistance+core.WallL, yaw, c.TargetElevation))
	c.move(w, ideal)
}

func (c *Camera) updateCombat(w World, item, enemy *entity.Item) {
	c.TargetDistance = c.cfg.CombatDistance
	c.Speed = c.cfg.CombatSpeed

	eye := c.target(w, item)
	mid := Midpoint(eye.Pos, enemy.Pos)
	_, room := w.GetSector(mid.X, mid.Y, mid.Z, eye.Room)
	if room == level.NoRoom {
		mid, room = eye.Pos, eye.Room
	}
	c.Target = core.GameVector{Pos: mid, Room: room}

	d := enemy.Pos.Sub(eye.Pos)
	yaw := core.Atan(d.Z, d.X)
	horiz := core.Sqrt(int64(d.X)*int64(d.X) + int64(d.Z)*int64(d.Z))
	c.TargetElevation = c.cfg.ChaseElevation - core.Atan(horiz, d.Y)

	ideal := c.Target.Pos.Add(Offset(c.TargetDistance, yaw, c.TargetElevation))
	c.move(w, ideal)
}

func (c *Camera) updateFixed(w World, item *entity.Item) {
	lvl := w.Level()
	if c.Fixed < 0 || int(c.Fixed) >= len(lvl.Cameras) {
		c.releaseFixed()
		c.updateChase(w, item)
		return
	}
	fixed := lvl.Cameras[c.Fixed]
	c.Target = c.target(w, item)

	speed := max(c.Speed, 1)
	c.Pos.Pos = ease(c.Pos.Pos, fixed.Pos, speed)
	if _, room := w.GetSector(c.Pos.Pos.X, c.Pos.Pos.Y, c.Pos.Pos.Z, fixed.Room); room != level.NoRoom {
		c.Pos.Room = room
	} else {
		c.Pos.Room = fixed.Room
	}

	if c.Timer > 0 {
		c.Timer--
		if c.Timer == 0 {
			c.Timer = -1
			if c.Type == Fixed {
				c.releaseFixed()
			}
		}
	}
}

func (c *Camera) updateCinematic(w World) {
	if c.cineFrame >= len(c.cineFrames) {
		c.cineFrames = nil
		c.setType(Chase)
		return
	}
	f := c.cineFrames[c.cineFrame]
	c.cineFrame++

	c.Pos.Pos = c.cineOrigin.Pos.Add(rotateY(f.Pos, c.cineYaw))
	c.Target.Pos = c.cineOrigin.Pos.Add(rotateY(f.Target, c.cineYaw))
	c.Fov = f.Fov
	c.Roll = f.Roll

	if _, room := w.GetSector(c.Pos.Pos.X, c.Pos.Pos.Y, c.Pos.Pos.Z, c.cineOrigin.Room); room != level.NoRoom {
		c.Pos.Room = room
	}
	c.Target.Room = c.cineOrigin.Room
}

// move eases the camera toward ideal after line-of-sight shortening and
// box clamping.
func (c *Camera) move(w World, ideal core.Vec3) {
	goal := c.lineOfSight(w, c.Target, ideal)
	goal = c.ShiftClamp(w, goal)

	if c.Pos.Room == level.NoRoom {
		c.Pos = goal
		return
	}
	speed := max(c.Speed, 1)
	next := ease(c.Pos.Pos, goal.Pos, speed)
	sector, room := w.GetSector(next.X, next.Y, next.Z, c.Pos.Room)
	if room == level.NoRoom {
		sector, room = w.GetSector(next.X, next.Y, next.Z, goal.Room)
	}
	if room == level.NoRoom {
		c.Pos = goal
		return
	}

	// The eased eye can cross a floor or ceiling the goal never saw.
	floor := w.GetHeight(sector, next.X, next.Y, next.Z)
	ceiling := w.GetCeiling(sector, next.X, next.Y, next.Z)
	if floor == level.NoHeight {
		c.Pos = goal
		return
	}
	if ceiling != level.NoHeight {
		next.Y = ClampVertical(next.Y, floor, ceiling, c.cfg.Clearance)
	} else {
		next.Y = min(next.Y, floor-c.cfg.Clearance)
	}
	if _, r := w.GetSector(next.X, next.Y, next.Z, room); r != level.NoRoom {
		room = r
	}
	c.Pos = core.GameVector{Pos: next, Room: room}
}

// applyBounce shakes the camera. A negative bounce jitters position and
// target with the draw stream and decays; a positive one is a single-tick
// vertical offset.
func (c *Camera) applyBounce(rnd *core.Random) {
	switch {
	case c.Bounce < 0:
		jitter := func() int32 {
			return (rnd.Draw() - 0x4000) * c.Bounce / core.RandMax
		}
		c.Pos.Pos.X += jitter()
		c.Pos.Pos.Y += jitter()
		c.Pos.Pos.Z += jitter()
		c.Target.Pos.X += jitter()
		c.Target.Pos.Y += jitter()
		c.Target.Pos.Z += jitter()
		c.Bounce = min(c.Bounce+bounceStep, 0)
	case c.Bounce > 0:
		c.Pos.Pos.Y += c.Bounce
		c.Target.Pos.Y += c.Bounce
		c.Bounce = 0
	}
}

// ease moves cur a 1/speed fraction of the way to ideal.
func ease(cur, ideal core.Vec3, speed int32) core.Vec3 {
	return core.Vec3{
		X: cur.X + (ideal.X-cur.X)/speed,
		Y: cur.Y + (ideal.Y-cur.Y)/speed,
		Z: cur.Z + (ideal.Z-cur.Z)/speed,
	}
}

// Offset returns the vector from a target to a camera distance units away,
// behind the yaw direction and raised by a negative elevation.
func Offset(distance int32, yaw, elevation int16) core.Vec3 {
	rot := mgl64.Rotate3DY(core.AngleRad(yaw)).Mul3(mgl64.Rotate3DX(core.AngleRad(elevation)))
	v := rot.Mul3x1(mgl64.Vec3{0, 0, -float64(distance)})
	return fromVec(v)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b core.Vec3) core.Vec3 {
	return fromVec(toVec(a).Add(toVec(b)).Mul(0.5))
}

func rotateY(p core.Vec3, yaw int16) core.Vec3 {
	return fromVec(mgl64.Rotate3DY(core.AngleRad(yaw)).Mul3x1(toVec(p)))
}

func toVec(p core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

func fromVec(v mgl64.Vec3) core.Vec3 {
	return core.Vec3{
		X: int32(math.Round(v.X())),
		Y: int32(math.Round(v.Y())),
		Z: int32(math.Round(v.Z())),
	}
}
