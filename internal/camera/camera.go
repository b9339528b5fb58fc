// Package camera implements the camera rig: a state machine over chase,
// combat, look, fixed, heavy, cinematic and photo modes, with box-aware
// clamping and its own interpolation record.
package camera

import (
	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// Type is the camera mode.
type Type uint8

const (
	Chase Type = iota
	Combat
	Look
	Fixed
	Heavy
	Cinematic
	Photo
)

// String returns the mode name.
func (t Type) String() string {
	switch t {
	case Chase:
		return "chase"
	case Combat:
		return "combat"
	case Look:
		return "look"
	case Fixed:
		return "fixed"
	case Heavy:
		return "heavy"
	case Cinematic:
		return "cinematic"
	case Photo:
		return "photo"
	default:
		return "unknown"
	}
}

// NoCamera is the fixed camera index when none is selected.
const NoCamera int16 = -1

// World is what the camera needs to query the level.
type World interface {
	Level() *level.Level
	Boxes() *box.Graph
	Random() *core.Random
	GetSector(x, y, z int32, room int16) (*level.Sector, int16)
	GetHeight(sector *level.Sector, x, y, z int32) int32
	GetCeiling(sector *level.Sector, x, y, z int32) int32
}

// Config holds the tunables of the rig.
type Config struct {
	ChaseDistance  int32 `yaml:"chase_distance"`
	ChaseElevation int16 `yaml:"chase_elevation"`
	ChaseSpeed     int32 `yaml:"chase_speed"`
	CombatDistance int32 `yaml:"combat_distance"`
	CombatSpeed    int32 `yaml:"combat_speed"`
	LookDistance   int32 `yaml:"look_distance"`
	LookSpeed      int32 `yaml:"look_speed"`
	FixedSpeed     int32 `yaml:"fixed_speed"`
	EyeHeight      int32 `yaml:"eye_height"`
	Clearance      int32 `yaml:"clearance"`
}

// DefaultConfig returns the stock camera tunables.
func DefaultConfig() Config {
	return Config{
		ChaseDistance:  core.WallL * 3 / 2,
		ChaseElevation: -10 * core.Deg1,
		ChaseSpeed:     10,
		CombatDistance: core.WallL * 2,
		CombatSpeed:    8,
		LookDistance:   core.WallL,
		LookSpeed:      4,
		FixedSpeed:     1,
		EyeHeight:      core.StepL * 3,
		Clearance:      core.StepL,
	}
}

// CineFrame is one frame of a cinematic, relative to the cinematic origin.
type CineFrame struct {
	Pos    core.Vec3
	Target core.Vec3
	Fov    int16
	Roll   int16
}

// Camera is the rig state.
type Camera struct {
	Pos    core.GameVector
	Target core.GameVector

	Type     Type
	LastType Type

	// Fixed is the selected fixed camera, Last the one used before.
	Fixed int16
	Last  int16
	// Timer counts fixed camera ticks down; -1 marks an expired camera
	// that stays latched until its trigger stops firing.
	Timer int16
	Speed int32

	Bounce int32
	Shift  int32

	TargetDistance  int32
	TargetAngle     int16
	TargetElevation int16

	Fov  int16
	Roll int16

	cfg        Config
	thresholds interp.Thresholds

	triggered bool

	cineFrames []CineFrame
	cineFrame  int
	cineOrigin core.GameVector
	cineYaw    int16

	posInterp    interp.Record
	targetInterp interp.Record
	prevShift    int32

	// Results of the last Commit.
	ResultPos    core.Vec3
	ResultTarget core.Vec3
	ResultShift  int32
	ResultRoom   int16
}

// New creates a chase camera.
func New(cfg Config, thresholds interp.Thresholds) *Camera {
	if cfg.ChaseSpeed <= 0 {
		cfg.ChaseSpeed = 1
	}
	if cfg.CombatSpeed <= 0 {
		cfg.CombatSpeed = 1
	}
	if cfg.LookSpeed <= 0 {
		cfg.LookSpeed = 1
	}
	if cfg.FixedSpeed <= 0 {
		cfg.FixedSpeed = 1
	}
	return &Camera{
		Type:            Chase,
		Fixed:           NoCamera,
		Last:            NoCamera,
		Speed:           cfg.ChaseSpeed,
		TargetDistance:  cfg.ChaseDistance,
		TargetElevation: cfg.ChaseElevation,
		Shift:           -cfg.EyeHeight,
		cfg:             cfg,
		thresholds:      thresholds,
		ResultRoom:      level.NoRoom,
		Pos:             core.GameVector{Room: level.NoRoom},
		Target:          core.GameVector{Room: level.NoRoom},
	}
}

// Config returns the rig tunables.
func (c *Camera) Config() Config {
	return c.cfg
}

// Place puts the camera behind a position without easing and resets the
// interpolation, e.g. on level start or after a load.
func (c *Camera) Place(w World, target core.GameVector, yaw int16) {
	c.Target = target
	c.Target.Pos.Y += c.Shift
	ideal := c.Target.Pos.Add(Offset(c.TargetDistance, yaw+c.TargetAngle, c.TargetElevation))
	c.Pos = c.lineOfSight(w, c.Target, ideal)
	c.Reset()
	c.ResultRoom = c.Pos.Room
}

// Trigger requests fixed camera num for timer ticks. It reports whether
// the request was taken.
func (c *Camera) Trigger(lvl *level.Level, num, timer int16, heavy, once bool) bool {
	if num < 0 || int(num) >= len(lvl.Cameras) {
		return false
	}
	if c.Type == Look || c.Type == Combat || c.Type == Cinematic || c.Type == Photo {
		return false
	}
	fixed := &lvl.Cameras[num]
	if fixed.Flags&level.FixedCameraOnce != 0 {
		return false
	}

	if num == c.Fixed {
		c.triggered = true
		if c.Timer != 0 {
			// Running or latched.
			return false
		}
	}

	// An untimed camera holds for one tick. The -1 latch is only entered
	// by expiry, so a caller cannot start a camera already latched.
	if timer <= 0 {
		timer = 1
	}
	if once {
		fixed.Flags |= level.FixedCameraOnce
	}

	c.Fixed = num
	c.Timer = timer
	c.Speed = c.cfg.FixedSpeed
	c.triggered = true
	if heavy {
		c.setType(Heavy)
	} else {
		c.setType(Fixed)
	}
	return true
}

// StartCinematic plays frames relative to origin rotated by yaw.
func (c *Camera) StartCinematic(origin core.GameVector, yaw int16, frames []CineFrame) {
	if len(frames) == 0 {
		return
	}
	c.cineFrames = frames
	c.cineFrame = 0
	c.cineOrigin = origin
	c.cineYaw = yaw
	c.setType(Cinematic)
}

// SetPhoto enters or leaves photo mode, which freezes the rig.
func (c *Camera) SetPhoto(on bool) {
	switch {
	case on && c.Type != Photo:
		c.setType(Photo)
	case !on && c.Type == Photo:
		c.Type, c.LastType = c.LastType, Photo
		if c.Type == Photo {
			c.Type = Chase
		}
	}
}

func (c *Camera) setType(t Type) {
	if c.Type == t {
		return
	}
	c.LastType = c.Type
	c.Type = t
}

// Remember snapshots the pose at the start of a tick.
func (c *Camera) Remember() {
	c.posInterp.Remember(interp.Pose{Pos: c.Pos.Pos})
	c.targetInterp.Remember(interp.Pose{Pos: c.Target.Pos})
	c.prevShift = c.Shift
}

// Commit blends the remembered pose toward the current one and recomputes
// the room of the blended position.
func (c *Camera) Commit(w World, ratio float64) {
	thr := c.thresholds
	c.posInterp.Commit(interp.Pose{Pos: c.Pos.Pos}, ratio, thr.CameraPos, thr.CameraPos, thr.RotCone)
	c.targetInterp.Commit(interp.Pose{Pos: c.Target.Pos}, ratio, thr.CameraPos, thr.CameraPos, thr.RotCone)
	c.ResultPos = c.posInterp.Result.Pos
	c.ResultTarget = c.targetInterp.Result.Pos
	c.ResultShift = interp.Lerp(c.prevShift, c.Shift, ratio, thr.CameraShift)

	c.ResultRoom = c.Pos.Room
	if w != nil && c.Pos.Room != level.NoRoom {
		p := c.ResultPos
		if _, room := w.GetSector(p.X, p.Y, p.Z, c.Pos.Room); room != level.NoRoom {
			c.ResultRoom = room
		}
	}
}

// Reset drops the blend history so the next Commit shows the current pose.
func (c *Camera) Reset() {
	c.posInterp.Reset(interp.Pose{Pos: c.Pos.Pos})
	c.targetInterp.Reset(interp.Pose{Pos: c.Target.Pos})
	c.prevShift = c.Shift
	c.ResultPos = c.Pos.Pos
	c.ResultTarget = c.Target.Pos
	c.ResultShift = c.Shift
	c.ResultRoom = c.Pos.Room
}
