package lara

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/objects/common"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Weapon is the static description of one of Lara's guns.
type Weapon struct {
	Name     string
	Damage   int16
	Rate     int16
	Range    int32
	ClipSize int32
	Shots    int
}

// Weapons is indexed by registry.GunPistols and friends.
var Weapons = [4]Weapon{
	registry.GunPistols: {Name: "pistols", Damage: 1, Rate: 9, Range: 8 * core.WallL},
	registry.GunMagnums: {Name: "magnums", Damage: 2, Rate: 12, Range: 8 * core.WallL, ClipSize: 50},
	registry.GunUzis:    {Name: "uzis", Damage: 1, Rate: 3, Range: 8 * core.WallL, ClipSize: 100},
	registry.GunShotgun: {Name: "shotgun", Damage: 3, Rate: 26, Range: 8 * core.WallL, ClipSize: 12, Shots: 5},
}

const (
	drawFrames = 5
	armTurn    = 10 * core.Deg1
	aimCone    = core.Deg90
	lockCone   = 10 * core.Deg1
	hitChance  = 0x6000
	flashTicks = 2
)

func updateGuns(ctx registry.Context, num int16, st *state, in core.InputFrame, pressed func(core.Action) bool, underwater bool) {
	l := ctx.Lara()
	if st.fireTimer > 0 {
		st.fireTimer--
	}
	l.LeftArm.Flash = max(l.LeftArm.Flash-1, 0)
	l.RightArm.Flash = max(l.RightArm.Flash-1, 0)

	switch l.GunStatus {
	case registry.GunHolstered:
		if pressed(core.ActionDraw) && !underwater {
			l.GunStatus = registry.GunDrawing
			ctx.Logger().Debug("drawing weapon", "gun", Weapons[l.GunType].Name)
		}
	case registry.GunDrawing:
		l.LeftArm.FrameNum++
		l.RightArm.FrameNum++
		if l.RightArm.FrameNum >= drawFrames {
			l.GunStatus = registry.GunReady
		}
	case registry.GunReady:
		if pressed(core.ActionDraw) || underwater {
			l.GunStatus = registry.GunUndrawing
			l.Target = entity.NoItem
			return
		}
		aim(ctx, num, in)
		if in.Has(core.ActionAction) && st.fireTimer == 0 {
			fire(ctx, num)
			st.fireTimer = Weapons[l.GunType].Rate
		}
	case registry.GunUndrawing:
		l.LeftArm.FrameNum--
		l.RightArm.FrameNum--
		l.LeftArm.Rot, l.RightArm.Rot = core.Rot{}, core.Rot{}
		l.LeftArm.Lock, l.RightArm.Lock = false, false
		if l.RightArm.FrameNum <= 0 {
			l.LeftArm.FrameNum, l.RightArm.FrameNum = 0, 0
			l.GunStatus = registry.GunHolstered
		}
	}
}

// aim keeps or acquires a target and swings both arms toward it.
func aim(ctx registry.Context, num int16, in core.InputFrame) {
	item, l := ctx.Item(num), ctx.Lara()
	if !in.Has(core.ActionAction) || !validTarget(ctx, num, l.Target) {
		l.Target = FindTarget(ctx, num)
	}

	want := core.Rot{}
	if t := ctx.Item(l.Target); t != nil {
		d := t.Pos.Sub(item.Pos)
		want.Y = core.Atan(d.Z, d.X) - item.Rot.Y
		horiz := core.Sqrt(core.Dist2D(t.Pos, item.Pos))
		want.X = core.Atan(horiz, -d.Y)
		l.HeadRot.Y = want.Y / 2
		l.TorsoRot.Y = want.Y / 2
	}
	for _, arm := range []*registry.Arm{&l.LeftArm, &l.RightArm} {
		arm.Rot.Y += core.Clamp(want.Y-arm.Rot.Y, -armTurn, armTurn)
		arm.Rot.X += core.Clamp(want.X-arm.Rot.X, -armTurn, armTurn)
		arm.Lock = l.Target != entity.NoItem && core.Abs(want.Y-arm.Rot.Y) < lockCone
	}
}

func validTarget(ctx registry.Context, num, target int16) bool {
	item, t := ctx.Item(num), ctx.Item(target)
	if t == nil || !t.InPlay() || t.HitPoints <= 0 || t.Status == entity.StatusInvisible {
		return false
	}
	obj, ok := registry.Lookup(t.Object)
	if !ok || !obj.Intelligent {
		return false
	}
	r := Weapons[ctx.Lara().GunType].Range
	if core.Dist3D(t.Pos, item.Pos) > int64(r)*int64(r) {
		return false
	}
	d := t.Pos.Sub(item.Pos)
	angle := core.Atan(d.Z, d.X) - item.Rot.Y
	return angle > -aimCone && angle < aimCone
}

// FindTarget returns the nearest active creature in front of Lara and in
// range of her weapon, or entity.NoItem.
func FindTarget(ctx registry.Context, num int16) int16 {
	item := ctx.Item(num)
	best, bestDist := entity.NoItem, int64(-1)
	for _, n := range ctx.Items().ActiveItems() {
		if n == num || !validTarget(ctx, num, n) {
			continue
		}
		d := core.Dist3D(ctx.Item(n).Pos, item.Pos)
		if bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// fire shoots the current weapon once, spending ammunition.
func fire(ctx registry.Context, num int16) {
	item, l := ctx.Item(num), ctx.Lara()
	w := Weapons[l.GunType]
	if l.GunType != registry.GunPistols {
		if l.Ammo[l.GunType] <= 0 && l.Clips[l.GunType] > 0 {
			l.Clips[l.GunType]--
			l.Ammo[l.GunType] += w.ClipSize
		}
		if l.Ammo[l.GunType] <= 0 {
			l.GunType = registry.GunPistols
			ctx.Logger().Debug("out of ammo", "gun", w.Name)
			return
		}
		l.Ammo[l.GunType]--
	}
	l.LeftArm.Flash = flashTicks
	l.RightArm.Flash = flashTicks

	t := ctx.Item(l.Target)
	for shot := 0; shot < max(w.Shots, 1); shot++ {
		if t == nil || !l.RightArm.Lock {
			miss := core.Rotate(item.Pos, item.Rot.Y+l.RightArm.Rot.Y, w.Range/2)
			miss.Y -= core.StepL * 2
			if sector, room := ctx.GetSector(miss.X, miss.Y, miss.Z, item.Room); sector != nil {
				common.Ricochet(ctx, miss, room)
			}
			continue
		}
		hit := t.Pos
		hit.Y -= core.StepL
		if ctx.Random().Control() < hitChance {
			common.Damage(t, w.Damage)
			common.Blood(ctx, hit, item.Rot.Y, t.Room)
			if t.HitPoints <= 0 {
				ctx.Logger().Debug("target down", "item", t.Num, "gun", w.Name)
			}
		} else {
			common.Ricochet(ctx, hit, t.Room)
		}
	}
}
