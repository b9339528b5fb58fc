// Package ai implements the shared creature behaviour: sensing the enemy,
// choosing a mood, steering along the LOT and moving with the box limits.
package ai

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Info is what a creature senses about its enemy this tick.
type Info struct {
	Box       int16
	EnemyBox  int16
	Zone      int16
	EnemyZone int16

	// Distance is squared and horizontal.
	Distance int64
	Ahead    bool
	// Angle is the bearing of the enemy relative to the creature's yaw.
	Angle int16
	// EnemyFacing is the enemy's yaw relative to the bearing back to us.
	EnemyFacing int16
}

// SameZone reports whether creature and enemy can reach each other.
func (i Info) SameZone() bool {
	return i.Zone == i.EnemyZone && i.Zone >= 0
}

// Creature returns the item and its creature block when it holds an AI
// slot. Creatures evicted from their slot have no LOT and stay put.
func Creature(ctx registry.Context, num int16) (*entity.Item, *entity.Creature, bool) {
	item := ctx.Item(num)
	if item == nil {
		return nil, nil, false
	}
	c := item.Creature()
	if c == nil || c.LOT == nil {
		return item, nil, false
	}
	return item, c, true
}

// Active brings a creature back into play when it lost or never had its
// AI slot. It reports whether the creature can think this tick.
func Active(ctx registry.Context, num int16) bool {
	item := ctx.Item(num)
	if item == nil || item.Killed() {
		return false
	}
	if c := item.Creature(); c != nil && c.LOT != nil && item.Status != entity.StatusInvisible {
		return true
	}
	if item.HitPoints <= 0 {
		return false
	}
	if !ctx.EnableAI(num, false) {
		return false
	}
	item.Status = entity.StatusActive
	return true
}

// BoxAt returns the pathing box under a position.
func BoxAt(ctx registry.Context, pos core.Vec3, room int16) int16 {
	sector, _ := ctx.GetSector(pos.X, pos.Y, pos.Z, room)
	if sector == nil {
		return box.NoBox
	}
	return sector.Box
}

// GetInfo senses the enemy, which is always Lara.
func GetInfo(ctx registry.Context, num int16) Info {
	item, c, ok := Creature(ctx, num)
	info := Info{Box: box.NoBox, EnemyBox: box.NoBox, Zone: -1, EnemyZone: -2}
	if !ok {
		return info
	}
	enemy := ctx.Item(ctx.LaraNum())
	if enemy == nil {
		return info
	}
	c.Enemy = enemy.Num

	flipped := ctx.Level().FlipStatus
	zone := ctx.Boxes().GetZone(c.LOT, flipped)
	info.Box = BoxAt(ctx, item.Pos, item.Room)
	info.EnemyBox = BoxAt(ctx, enemy.Pos, enemy.Room)
	info.Zone = zoneOf(zone, info.Box)
	info.EnemyZone = zoneOf(zone, info.EnemyBox)
	if c.LOT.Fly != 0 && info.Box != box.NoBox && info.EnemyBox != box.NoBox {
		info.EnemyZone = info.Zone
	}

	d := enemy.Pos.Sub(item.Pos)
	info.Distance = core.Dist2D(enemy.Pos, item.Pos)
	bearing := core.Atan(d.Z, d.X)
	info.Angle = bearing - item.Rot.Y
	info.EnemyFacing = bearing + core.Deg180 - enemy.Rot.Y
	info.Ahead = info.Angle > -core.Deg90 && info.Angle < core.Deg90
	return info
}

func zoneOf(zone []int16, n int16) int16 {
	if n < 0 || int(n) >= len(zone) {
		return -1
	}
	return zone[n]
}

// Mood picks the creature's intent and points its LOT at a matching box.
// Violent creatures attack whenever they can reach the enemy; the others
// stalk first and escape when cornered.
func Mood(ctx registry.Context, num int16, info Info, violent bool) {
	item, c, ok := Creature(ctx, num)
	if !ok {
		return
	}
	enemy := ctx.Item(c.Enemy)
	lot := c.LOT
	graph := ctx.Boxes()
	rnd := ctx.Random()

	switch {
	case enemy == nil || enemy.HitPoints <= 0:
		c.Mood = entity.MoodBored
	case info.SameZone():
		if violent || c.Mood == entity.MoodAttack || info.Distance < int64(3*core.WallL)*int64(3*core.WallL) {
			c.Mood = entity.MoodAttack
		} else {
			c.Mood = entity.MoodStalk
		}
		if obj, ok := registry.Lookup(item.Object); ok && !violent && item.HitPoints < obj.HitPoints/4 {
			c.Mood = entity.MoodEscape
		}
	case c.Mood == entity.MoodAttack && rnd.Control() < 0x200:
		c.Mood = entity.MoodStalk
	default:
		if c.Mood != entity.MoodEscape {
			c.Mood = entity.MoodBored
		}
	}

	switch c.Mood {
	case entity.MoodAttack:
		lot.Target = enemy.Pos
		lot.RequiredBox = info.EnemyBox
		if lot.Fly != 0 {
			lot.Target.Y -= core.StepL * 3
		}
	case entity.MoodStalk, entity.MoodBored, entity.MoodEscape:
		if lot.RequiredBox == box.NoBox || graph.Reachable(lot, info.Box) && info.Box == lot.TargetBox || rnd.Control() < 0x100 {
			pick := int16(rnd.Intn(int32(len(graph.Boxes))))
			ok := graph.Valid(pick) && (lot.Fly != 0 || box.SameZone(graph.GetZone(lot, ctx.Level().FlipStatus), info.Box, pick))
			if ok && c.Mood == entity.MoodEscape && enemy != nil {
				ok = EscapeBox(ctx, item, enemy, info, pick)
			}
			if ok {
				b := &graph.Boxes[pick]
				lot.RequiredBox = pick
				lot.Target = b.Center()
			}
		}
	}

	graph.UpdateLOT(lot, ctx.PathBudget(), ctx.Level().FlipStatus)
	c.Target = graph.NextTarget(lot, info.Box, item.Pos)
	if c.Mood == entity.MoodAttack && info.Box == info.EnemyBox {
		c.Target = enemy.Pos
	}
}

// EscapeBox reports whether pick takes a creature away from its enemy:
// Lara has no route to it, or it lies beyond the creature on both axes.
func EscapeBox(ctx registry.Context, item, enemy *entity.Item, info Info, pick int16) bool {
	graph := ctx.Boxes()
	if l := ctx.Lara(); l != nil && l.LOT != nil && enemy.Num == l.ItemNum {
		if _, ok := graph.FindRoute(l.LOT, info.EnemyBox, pick, ctx.Level().FlipStatus); !ok {
			return true
		}
	}
	center := graph.Boxes[pick].Center()
	away := func(to, self int32) bool {
		return to == 0 || self == 0 || (to < 0) == (self < 0)
	}
	return away(center.X-enemy.Pos.X, item.Pos.X-enemy.Pos.X) &&
		away(center.Z-enemy.Pos.Z, item.Pos.Z-enemy.Pos.Z)
}

// Turn rotates the creature toward its target by at most MaximumTurn and
// returns the angle turned.
func Turn(ctx registry.Context, num int16) int16 {
	item, c, ok := Creature(ctx, num)
	if !ok || item.Speed == 0 && c.MaximumTurn == 0 {
		return 0
	}
	d := c.Target.Sub(item.Pos)
	angle := core.Atan(d.Z, d.X) - item.Rot.Y
	angle = core.Clamp(angle, -c.MaximumTurn, c.MaximumTurn)
	item.Rot.Y += angle
	return angle
}

// Animate advances the creature and keeps it inside boxes it can walk
// into. A move into an unreachable box is undone horizontally. Ground
// creatures stick to the floor; flyers climb toward their target.
func Animate(ctx registry.Context, num int16) {
	item, c, ok := Creature(ctx, num)
	if !ok {
		ctx.AnimateItem(num)
		return
	}
	old := item.Pos
	oldBox := BoxAt(ctx, old, item.Room)
	ctx.AnimateItem(num)
	if item.Killed() || !item.InUse {
		return
	}

	sector, room := ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
	if sector == nil || !canEnter(ctx, c.LOT, oldBox, sector.Box) {
		item.Pos.X, item.Pos.Z = old.X, old.Z
		sector, room = ctx.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room)
		if sector == nil {
			return
		}
	}

	floor := ctx.GetHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	ceiling := ctx.GetCeiling(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	if c.LOT.Fly != 0 && item.HitPoints > 0 {
		dy := core.Clamp(c.Target.Y-item.Pos.Y, -int32(c.LOT.Fly), int32(c.LOT.Fly))
		item.Pos.Y += dy
		if floor != level.NoHeight {
			item.Pos.Y = min(item.Pos.Y, floor-core.ClickL)
		}
		item.Pos.Y = max(item.Pos.Y, ceiling+core.ClickL)
	} else if floor != level.NoHeight {
		if item.Pos.Y >= floor || !item.Gravity {
			item.Pos.Y = floor
			item.FallSpeed = 0
			item.Gravity = false
		}
	}
	item.Floor = floor
	if room != item.Room {
		ctx.ItemNewRoom(num, room)
	}
}

func canEnter(ctx registry.Context, lot *box.LOT, from, to int16) bool {
	graph := ctx.Boxes()
	if !graph.Valid(to) {
		return false
	}
	if from == to || !graph.Valid(from) {
		return true
	}
	if graph.IsBlocked(to) && lot.BlockMask&box.Blocked != 0 {
		return false
	}
	if lot.Fly != 0 {
		return true
	}
	change := graph.Boxes[to].Height - graph.Boxes[from].Height
	return change <= int32(lot.Step) && change >= int32(lot.Drop)
}

// Die switches a dying creature to its death state once and frees its AI
// slot so another creature can use it.
func Die(ctx registry.Context, num int16, deathState int16) {
	item := ctx.Item(num)
	if item == nil {
		return
	}
	if item.CurrentAnimState != deathState {
		item.GoalAnimState = deathState
		item.Speed = 0
	}
	if item.CurrentAnimState == deathState {
		ctx.DisableAI(num)
		item.Collidable = false
	}
}
