// Package interp blends simulation poses between fixed ticks.
//
// Every interpolatable entity keeps a Record next to its authoritative pose.
// Remember copies the authoritative pose into Prev at the start of a tick;
// Commit writes the blended pose into Result once the tick is done. Renderers
// read Result only.
package interp

import "github.com/vovakirdan/tomb-engine/internal/core"

// Thresholds holds the per-field jump limits past which a blend snaps.
type Thresholds struct {
	CameraShift int32 `yaml:"camera_shift"`
	CameraPos   int32 `yaml:"camera_position"`
	ItemPos     int32 `yaml:"item_position"`
	EffectPos   int32 `yaml:"effect_position"`
	Hair        int32 `yaml:"hair"`
	RotCone     int16 `yaml:"rotation_cone"`
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CameraShift: 128,
		CameraPos:   512,
		ItemPos:     128,
		EffectPos:   128,
		Hair:        128,
		RotCone:     core.Deg45,
	}
}

// Lerp blends prev toward cur. A delta of maxDiff or more snaps to cur;
// ratio >= 1 always yields cur. The result truncates toward prev so it never
// leaves [min(prev, cur), max(prev, cur)].
func Lerp(prev, cur int32, ratio float64, maxDiff int32) int32 {
	if ratio >= 1 {
		return cur
	}
	if ratio <= 0 {
		ratio = 0
	}
	diff := int64(cur) - int64(prev)
	if core.Abs(diff) >= int64(maxDiff) {
		return cur
	}
	return prev + int32(float64(diff)*ratio)
}

// LerpAngle blends along the shortest arc between two binary angles.
// A turn of cone or more snaps to cur.
func LerpAngle(prev, cur int16, ratio float64, cone int16) int16 {
	if ratio >= 1 {
		return cur
	}
	if ratio <= 0 {
		ratio = 0
	}
	diff := core.AngleDiff(prev, cur)
	if core.Abs(int32(diff)) >= int32(cone) {
		return cur
	}
	return prev + int16(float64(diff)*ratio)
}

// VerticalThreshold scales the vertical snap limit with fall speed so a
// fast-falling entity keeps blending instead of stuttering.
func VerticalThreshold(base int32, fallSpeed int16) int32 {
	return max(base, 2*core.Abs(int32(fallSpeed)))
}

// Pose is the interpolatable part of an entity.
type Pose struct {
	Pos core.Vec3
	Rot core.Rot
}

// Record holds the tick-start snapshot and the render-facing blend.
type Record struct {
	Prev   Pose
	Result Pose
}

// Remember snapshots the authoritative pose as the blend start.
func (r *Record) Remember(cur Pose) {
	r.Prev = cur
}

// Commit blends Prev toward cur. xz and y are the positional snap limits,
// cone the rotational one.
func (r *Record) Commit(cur Pose, ratio float64, xz, y int32, cone int16) {
	r.Result.Pos = core.Vec3{
		X: Lerp(r.Prev.Pos.X, cur.Pos.X, ratio, xz),
		Y: Lerp(r.Prev.Pos.Y, cur.Pos.Y, ratio, y),
		Z: Lerp(r.Prev.Pos.Z, cur.Pos.Z, ratio, xz),
	}
	r.Result.Rot = core.Rot{
		X: LerpAngle(r.Prev.Rot.X, cur.Rot.X, ratio, cone),
		Y: LerpAngle(r.Prev.Rot.Y, cur.Rot.Y, ratio, cone),
		Z: LerpAngle(r.Prev.Rot.Z, cur.Rot.Z, ratio, cone),
	}
}

// Force commits cur without blending. Used for inactive, killed and
// invisible entities so they never slide from a stale snapshot.
func (r *Record) Force(cur Pose) {
	r.Result = cur
}

// Reset sets both snapshots to cur, e.g. after a teleport or a save load.
func (r *Record) Reset(cur Pose) {
	r.Prev = cur
	r.Result = cur
}
