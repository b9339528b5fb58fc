package registry

import "github.com/vovakirdan/tomb-engine/internal/entity"

// Object ids referenced by the engine and save code.
const (
	ObjLara        entity.ObjectID = 0
	ObjWolf        entity.ObjectID = 7
	ObjBat         entity.ObjectID = 10
	ObjBaconLara   entity.ObjectID = 30
	ObjDartEmitter entity.ObjectID = 40
	ObjDart        entity.ObjectID = 41
	ObjDrawbridge  entity.ObjectID = 42
	ObjDoor        entity.ObjectID = 57
	ObjFlare       entity.ObjectID = 60
	ObjMissileTrap entity.ObjectID = 61

	ObjBlood     entity.ObjectID = 158
	ObjExplosion entity.ObjectID = 159
	ObjRicochet  entity.ObjectID = 164
	ObjMissile   entity.ObjectID = 173
)

// Lara's weapons, indexing Lara.Ammo and Lara.Clips.
const (
	GunPistols int16 = iota
	GunMagnums
	GunUzis
	GunShotgun
)

// Lara.GunStatus values.
const (
	GunHolstered int16 = iota
	GunDrawing
	GunReady
	GunUndrawing
)
