package core

// Random holds the two deterministic LCG streams of the engine.
// The control stream drives simulation; the draw stream drives cosmetic
// jitter (camera bounce, sparks) so rendering never perturbs gameplay.
type Random struct {
	control int32
	draw    int32
}

const (
	randMul = 0x41C64E6D
	randAdd = 0x3039

	// RandMax is the largest value returned by either stream.
	RandMax = 0x7FFF
)

// NewRandom creates both streams from the same seed.
func NewRandom(seed int32) *Random {
	return &Random{control: seed, draw: seed}
}

// SeedControl resets the control stream.
func (r *Random) SeedControl(seed int32) {
	r.control = seed
}

// SeedDraw resets the draw stream.
func (r *Random) SeedDraw(seed int32) {
	r.draw = seed
}

// Control returns the next value of the control stream in [0, RandMax].
func (r *Random) Control() int32 {
	r.control = randMul*r.control + randAdd
	return (r.control >> 10) & RandMax
}

// Draw returns the next value of the draw stream in [0, RandMax].
func (r *Random) Draw() int32 {
	r.draw = randMul*r.draw + randAdd
	return (r.draw >> 10) & RandMax
}

// Intn returns a control-stream value in [0, n).
func (r *Random) Intn(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return r.Control() * n / (RandMax + 1)
}

// State returns both stream states, for hashing and save games.
func (r *Random) State() (control, draw int32) {
	return r.control, r.draw
}
