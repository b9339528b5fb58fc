package core

import "testing"

func TestAngleDiffWraps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int16
		expected int16
	}{
		{"small positive", 100, 300, 200},
		{"small negative", 300, 100, -200},
		{"across +180", 32000, -32000, 1536},
		{"across -180", -32000, 32000, -1536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AngleDiff(tc.a, tc.b); got != tc.expected {
				t.Errorf("AngleDiff(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestTrig(t *testing.T) {
	if got := Sin(0); got != 0 {
		t.Errorf("Sin(0) = %d, expected 0", got)
	}
	if got := Sin(Deg90); got != 1<<TrigShift {
		t.Errorf("Sin(90) = %d, expected %d", got, 1<<TrigShift)
	}
	if got := Cos(0); got != 1<<TrigShift {
		t.Errorf("Cos(0) = %d, expected %d", got, 1<<TrigShift)
	}
	if got := Atan(1024, 0); got != 0 {
		t.Errorf("Atan(+z) = %d, expected 0", got)
	}
	if got := Atan(0, 1024); got != Deg90 {
		t.Errorf("Atan(+x) = %d, expected %d", got, Deg90)
	}
}

func TestRotateMovesAlongYaw(t *testing.T) {
	p := Rotate(Vec3{}, Deg90, 1000)
	if p.X != 1000 || p.Z != 0 {
		t.Errorf("Rotate(90, 1000) = %v, expected {1000 0 0}", p)
	}
}
