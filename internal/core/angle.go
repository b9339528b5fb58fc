package core

import "math"

// Binary angle constants.
const (
	Deg1   = 182
	Deg45  = 8192
	Deg90  = 16384
	Deg180 = -32768

	// TrigShift is the fixed-point shift of Sin/Cos results.
	TrigShift = 14
)

// DegToAngle converts whole degrees to binary angle units.
func DegToAngle(deg int) int16 {
	return int16(deg * 65536 / 360)
}

// AngleDiff returns the shortest signed difference b - a.
// Wrapping int16 arithmetic gives the shortest path for free.
func AngleDiff(a, b int16) int16 {
	return b - a
}

// Sin returns sin(angle) scaled by 1<<TrigShift.
func Sin(angle int16) int32 {
	return int32(math.Round(math.Sin(AngleRad(angle)) * (1 << TrigShift)))
}

// Cos returns cos(angle) scaled by 1<<TrigShift.
func Cos(angle int16) int32 {
	return int32(math.Round(math.Cos(AngleRad(angle)) * (1 << TrigShift)))
}

// AngleRad converts a binary angle to radians.
func AngleRad(angle int16) float64 {
	return float64(angle) * math.Pi / 32768
}

// RadToAngle converts radians to a binary angle.
func RadToAngle(rad float64) int16 {
	return int16(int32(math.Round(rad * 32768 / math.Pi)))
}

// Atan returns the binary angle of the vector (x, z) measured from +Z.
func Atan(z, x int32) int16 {
	if x == 0 && z == 0 {
		return 0
	}
	return RadToAngle(math.Atan2(float64(x), float64(z)))
}

// Sqrt returns the integer square root of a non-negative value.
func Sqrt(v int64) int32 {
	if v <= 0 {
		return 0
	}
	return int32(math.Sqrt(float64(v)))
}

// Rotate moves a point by distance along the yaw direction.
func Rotate(pos Vec3, yaw int16, distance int32) Vec3 {
	pos.X += (Sin(yaw) * distance) >> TrigShift
	pos.Z += (Cos(yaw) * distance) >> TrigShift
	return pos
}
