package lara

import (
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

const (
	lookRate    = 2 * core.Deg1
	lookLimitY  = 44 * core.Deg1
	lookLimitUp = 30 * core.Deg1
	lookLimitDn = 35 * core.Deg1
)

// look turns the head with the movement keys, splitting the yaw with the
// torso.
func look(l *registry.Lara, in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		l.HeadRot.Y -= lookRate
	}
	if in.Has(core.ActionRight) {
		l.HeadRot.Y += lookRate
	}
	if in.Has(core.ActionForward) {
		l.HeadRot.X -= lookRate
	}
	if in.Has(core.ActionBack) {
		l.HeadRot.X += lookRate
	}
	l.HeadRot.Y = core.Clamp(l.HeadRot.Y, -lookLimitY, lookLimitY)
	l.HeadRot.X = core.Clamp(l.HeadRot.X, -lookLimitUp, lookLimitDn)
	l.TorsoRot.Y = l.HeadRot.Y / 2
}

// relaxHead eases the head and torso back to neutral.
func relaxHead(l *registry.Lara) {
	if l.GunStatus == registry.GunReady && l.Target != entity.NoItem {
		return
	}
	l.HeadRot.X -= l.HeadRot.X / 8
	l.HeadRot.Y -= l.HeadRot.Y / 8
	l.TorsoRot.Y -= l.TorsoRot.Y / 8
	l.TorsoRot.X -= l.TorsoRot.X / 8
}
