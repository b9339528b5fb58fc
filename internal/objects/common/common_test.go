package common

import (
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
)

func TestTriggerActive(t *testing.T) {
	tests := []struct {
		name      string
		flags     entity.Flags
		timer     int16
		expected  bool
		nextTimer int16
	}{
		{"untriggered", 0, 0, false, 0},
		{"triggered", entity.FlagCodeBits, 0, true, 0},
		{"reversed untriggered", entity.FlagReverse, 0, true, 0},
		{"reversed triggered", entity.FlagCodeBits | entity.FlagReverse, 0, false, 0},
		{"counting", entity.FlagCodeBits, 3, true, 2},
		{"last tick", entity.FlagCodeBits, 1, true, -1},
		{"expired", entity.FlagCodeBits, -1, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &entity.Item{Flags: tt.flags, Timer: tt.timer}
			if got := TriggerActive(item); got != tt.expected {
				t.Errorf("TriggerActive() = %v, expected %v", got, tt.expected)
			}
			if item.Timer != tt.nextTimer {
				t.Errorf("Timer = %d, expected %d", item.Timer, tt.nextTimer)
			}
		})
	}
}

func TestNear(t *testing.T) {
	origin := core.Vec3{}
	tests := []struct {
		name     string
		pos      core.Vec3
		expected bool
	}{
		{"same spot", core.Vec3{}, true},
		{"inside radius", core.Vec3{X: 60, Z: 60}, true},
		{"outside radius", core.Vec3{X: 100, Z: 1}, false},
		{"too high", core.Vec3{Y: -600}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Near(origin, tt.pos, 100, 512); got != tt.expected {
				t.Errorf("Near(%+v) = %v, expected %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestDamageFloorsAtZero(t *testing.T) {
	item := &entity.Item{HitPoints: 30}
	Damage(item, 20)
	if item.HitPoints != 10 {
		t.Errorf("HitPoints = %d, expected 10", item.HitPoints)
	}
	Damage(item, 50)
	if item.HitPoints != 0 {
		t.Errorf("HitPoints = %d, expected 0", item.HitPoints)
	}
}
