// Package engine owns the simulated world: it wires the level, the box
// graph, the entity arenas and the camera together and runs the fixed
// tick over them.
package engine

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"

	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/camera"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/level"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Options configures a World.
type Options struct {
	Logger     *log.Logger
	Runtime    core.RuntimeConfig
	Thresholds interp.Thresholds
	Camera     camera.Config

	// Headroom is the number of dynamic item slots.
	Headroom int
	// EffectCapacity is the size of the effect arena.
	EffectCapacity int
	// AISlots bounds how many creatures hold a LOT at once.
	AISlots int
	// PathBudget is the box expansions per creature per tick.
	PathBudget int

	// Sentry receives entity faults when set.
	Sentry *sentry.Hub
}

// DefaultOptions returns the stock world options.
func DefaultOptions() Options {
	return Options{
		Runtime:        core.DefaultConfig(),
		Thresholds:     interp.DefaultThresholds(),
		Camera:         camera.DefaultConfig(),
		Headroom:       256,
		EffectCapacity: entity.DefaultEffectCapacity,
		AISlots:        5,
		PathBudget:     5,
	}
}

// World is the simulation context handed to every object behaviour.
type World struct {
	log  *log.Logger
	opts Options

	lvl     *level.Level
	boxes   *box.Graph
	items   *entity.ItemPool
	effects *entity.EffectPool
	camera  *camera.Camera
	rnd     *core.Random

	input core.InputFrame
	tick  uint64
	ratio float64

	lara    *registry.Lara
	laraNum int16

	aiSlots []int16
	// lookAt is the item a fixed camera should look at, or NoItem.
	lookAt int16

	hub    *sentry.Hub
	faults int

	levelComplete bool
}

var _ registry.Context = (*World)(nil)

// New builds a world from a loaded level, its box graph and the level item
// placements, and initialises every item.
func New(lvl *level.Level, boxes *box.Graph, spawns []entity.Spawn, opts Options) (*World, error) {
	if lvl == nil || len(lvl.Rooms) == 0 {
		return nil, fmt.Errorf("engine: level has no rooms")
	}
	if boxes == nil {
		boxes = box.NewGraph()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine"})
	}
	if opts.EffectCapacity <= 0 {
		opts.EffectCapacity = entity.DefaultEffectCapacity
	}
	if opts.AISlots <= 0 {
		opts.AISlots = 1
	}
	if opts.PathBudget <= 0 {
		opts.PathBudget = 1
	}

	w := &World{
		log:     opts.Logger,
		opts:    opts,
		lvl:     lvl,
		boxes:   boxes,
		items:   entity.NewItemPool(lvl, len(spawns), opts.Headroom),
		effects: entity.NewEffectPool(lvl, opts.EffectCapacity),
		camera:  camera.New(opts.Camera, opts.Thresholds),
		rnd:     core.NewRandom(opts.Runtime.Seed),
		input:   core.NewInputFrame(),
		ratio:   1,
		laraNum: entity.NoItem,
		lookAt:  entity.NoItem,
		aiSlots: make([]int16, opts.AISlots),
		hub:     opts.Sentry,
	}
	for i := range w.aiSlots {
		w.aiSlots[i] = entity.NoItem
	}

	for i, s := range spawns {
		if _, ok := registry.Lookup(s.Object); !ok {
			return nil, fmt.Errorf("engine: item %d: unknown object %d", i, s.Object)
		}
		if !lvl.ValidRoom(s.Room) {
			return nil, fmt.Errorf("engine: item %d: invalid room %d", i, s.Room)
		}
		item := w.items.Get(int16(i))
		item.Object = s.Object
		item.Pos = s.Pos
		item.Rot = s.Rot
		item.Flags = s.Flags
		w.items.AddToRoom(int16(i), s.Room)
	}
	for i := range spawns {
		w.initialiseItem(int16(i))
	}

	if w.laraNum != entity.NoItem {
		lara := w.items.Get(w.laraNum)
		w.camera.Place(w, core.GameVector{Pos: lara.Pos, Room: lara.Room}, lara.Rot.Y)
	}

	w.log.Info("level loaded", "name", lvl.Name, "rooms", len(lvl.Rooms), "boxes", len(boxes.Boxes), "items", len(spawns))
	return w, nil
}

// initialiseItem brings a placed or spawned item into play.
func (w *World) initialiseItem(num int16) {
	item := w.items.Get(num)
	obj, ok := registry.Lookup(item.Object)
	if !ok {
		return
	}

	item.HitPoints = obj.HitPoints
	item.Collidable = true
	item.Status = entity.StatusInactive
	item.CurrentAnimState = 0
	item.GoalAnimState = 0
	if sector, _ := w.GetSector(item.Pos.X, item.Pos.Y, item.Pos.Z, item.Room); sector != nil {
		item.Floor = w.lvl.StaticHeight(sector, item.Pos.X, item.Pos.Y, item.Pos.Z)
	}

	if item.Object == registry.ObjLara {
		w.initialiseLara(num)
	}

	if init := obj.Initialiser(); init != nil {
		init.Initialise(w, num)
	}

	if item.Flags&entity.FlagCodeBits == entity.FlagCodeBits && !item.Killed() {
		item.Flags &^= entity.FlagCodeBits
		item.Flags |= entity.FlagReverse
		w.ActivateItem(num)
	}

	item.Interp.Reset(item.Pose())
}

// initialiseLara sets up the player extension block.
func (w *World) initialiseLara(num int16) {
	w.laraNum = num
	w.lara = &registry.Lara{
		ItemNum:   num,
		GunStatus: registry.GunHolstered,
		GunType:   registry.GunPistols,
		Target:    entity.NoItem,
		FlareItem: entity.NoItem,
		AirTimer:  1800,
		Flares:    2,
		LOT:       w.boxes.NewLOT(box.GroundStep, box.GroundDrop, 0),
	}
	w.lara.Ammo[registry.GunPistols] = 1000
	item := w.items.Get(num)
	for i := range w.lara.Hair {
		seg := &w.lara.Hair[i]
		seg.Pos = item.Pos
		seg.Pos.Y -= int32(core.StepL*3 - i*48)
		seg.Interp.Reset(interp.Pose{Pos: seg.Pos})
	}
	w.items.AddActive(num)
}

// Logger returns the world logger.
func (w *World) Logger() *log.Logger { return w.log }

// Random returns the random streams.
func (w *World) Random() *core.Random { return w.rnd }

// Input returns the input of the current tick.
func (w *World) Input() core.InputFrame { return w.input }

// Ticks returns the number of completed ticks.
func (w *World) Ticks() uint64 { return w.tick }

// Level returns the spatial model.
func (w *World) Level() *level.Level { return w.lvl }

// Boxes returns the pathing graph.
func (w *World) Boxes() *box.Graph { return w.boxes }

// Items returns the item arena.
func (w *World) Items() *entity.ItemPool { return w.items }

// Effects returns the effect arena.
func (w *World) Effects() *entity.EffectPool { return w.effects }

// Camera returns the camera rig.
func (w *World) Camera() *camera.Camera { return w.camera }

// Item returns item num, or nil.
func (w *World) Item(num int16) *entity.Item { return w.items.Get(num) }

// Effect returns effect num, or nil.
func (w *World) Effect(num int16) *entity.Effect { return w.effects.Get(num) }

// LaraNum returns the player item, or entity.NoItem.
func (w *World) LaraNum() int16 { return w.laraNum }

// Lara returns the player extension, or nil when the level has no player.
func (w *World) Lara() *registry.Lara { return w.lara }

// PathBudget returns the per-creature expansion budget.
func (w *World) PathBudget() int { return w.opts.PathBudget }

// Options returns the options the world was built with.
func (w *World) Options() Options { return w.opts }

// Faults returns how many entity faults were recovered.
func (w *World) Faults() int { return w.faults }

// LevelComplete reports whether an end-level trigger fired.
func (w *World) LevelComplete() bool { return w.levelComplete }

// GetSector resolves a point to its sector and room.
func (w *World) GetSector(x, y, z int32, room int16) (*level.Sector, int16) {
	return w.lvl.GetSector(x, y, z, room)
}

// BounceCamera shakes the camera.
func (w *World) BounceCamera(bounce int32) {
	w.camera.Bounce = bounce
}
