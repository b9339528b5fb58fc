// Package core provides fundamental world types and utilities for the engine.
// It contains no external dependencies so simulation code stays pure and
// testable.
package core

import "cmp"

// World unit constants. One sector is WallL units wide; vertical steps are
// quarter sectors.
const (
	WallShift = 10
	WallL     = 1 << WallShift // 1024
	StepL     = WallL / 4      // 256
	ClickL    = StepL / 2      // 128
)

// Vec3 is an integer world position. Y grows downward.
type Vec3 struct {
	X, Y, Z int32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Rot is an orientation in 16-bit binary angle units (65536 per turn).
type Rot struct {
	X, Y, Z int16
}

// GameVector is a position tagged with the room that contains it.
type GameVector struct {
	Pos  Vec3
	Room int16
}

// Rect represents an axis-aligned rectangle on the XZ plane or on a canvas.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Integer is the set of integer kinds used for world values.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs[T Integer](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Dist2D returns the squared horizontal distance between two positions.
func Dist2D(a, b Vec3) int64 {
	dx := int64(a.X - b.X)
	dz := int64(a.Z - b.Z)
	return dx*dx + dz*dz
}

// Dist3D returns the squared distance between two positions.
func Dist3D(a, b Vec3) int64 {
	dy := int64(a.Y - b.Y)
	return Dist2D(a, b) + dy*dy
}
