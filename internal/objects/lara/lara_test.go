package lara

import (
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/entity"
)

func TestLandingDamage(t *testing.T) {
	tests := []struct {
		name      string
		fallSpeed int16
		expected  int16
	}{
		{"soft", 100, HitPoints},
		{"threshold", damageStart, HitPoints},
		{"hard", damageStart + 7, HitPoints - 250},
		{"fatal", damageStart + damageLength + 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &entity.Item{HitPoints: HitPoints, FallSpeed: tt.fallSpeed, Gravity: true}
			land(item, 512)
			if item.HitPoints != tt.expected {
				t.Errorf("HitPoints = %d, expected %d", item.HitPoints, tt.expected)
			}
			if item.Pos.Y != 512 || item.Gravity || item.FallSpeed != 0 {
				t.Errorf("landed at %d gravity %v fall %d, expected 512 false 0", item.Pos.Y, item.Gravity, item.FallSpeed)
			}
		})
	}
}

func TestWeaponsTable(t *testing.T) {
	for i, w := range Weapons {
		if w.Name == "" || w.Damage <= 0 || w.Rate <= 0 {
			t.Errorf("weapon %d is incomplete: %+v", i, w)
		}
	}
}
