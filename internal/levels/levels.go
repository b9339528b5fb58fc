// Package levels loads level descriptions from YAML files into the
// spatial model, the pathing graph and the item spawn list.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tomb-engine/internal/box"
	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/level"
	_ "github.com/vovakirdan/tomb-engine/internal/objects"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// ErrInvalidLevel reports a level description that cannot be built.
var ErrInvalidLevel = errors.New("levels: invalid level")

//go:embed data/demo.yaml
var demoYAML []byte

// Level is a parsed level description. Build turns it into fresh runtime
// structures; every world gets its own copy.
type Level struct {
	ID       string
	Name     string
	Number   int
	Metadata map[string]string
	FilePath string

	src YAMLLevel
}

// Parse parses and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("%w: yaml unmarshal: %v", ErrInvalidLevel, err)
	}
	l := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Number:   yl.Number,
		Metadata: yl.Metadata,
		src:      yl,
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	if _, _, _, err := l.Build(); err != nil {
		return Level{}, err
	}
	return l, nil
}

// Demo returns the embedded demo level.
func Demo() Level {
	l, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded demo: %v", err))
	}
	return l
}

// Music returns the level's music track, or "" when it has none. A
// relative path is resolved against the level file's directory.
func (l *Level) Music() string {
	m := l.src.Music
	if m == "" || l.FilePath == "" || filepath.IsAbs(m) || strings.HasPrefix(m, "~") {
		return m
	}
	return filepath.Join(filepath.Dir(l.FilePath), m)
}

// NewWorld builds the level and creates a world on it.
func (l *Level) NewWorld(opts engine.Options) (*engine.World, error) {
	lvl, g, spawns, err := l.Build()
	if err != nil {
		return nil, err
	}
	return engine.New(lvl, g, spawns, opts)
}

// Build creates the room model, the box graph with both zone tables and
// the spawn list.
func (l *Level) Build() (*level.Level, *box.Graph, []entity.Spawn, error) {
	yl := &l.src
	if len(yl.Rooms) == 0 {
		return nil, nil, nil, invalid("no rooms")
	}

	g, err := buildBoxes(yl.Boxes)
	if err != nil {
		return nil, nil, nil, err
	}

	lvl := &level.Level{Name: l.Name, Number: l.Number}
	for i := range yl.Rooms {
		r, err := buildRoom(int16(i), &yl.Rooms[i], len(yl.Rooms), g)
		if err != nil {
			return nil, nil, nil, err
		}
		lvl.Rooms = append(lvl.Rooms, r)
	}

	for i, c := range yl.Cameras {
		if !lvl.ValidRoom(c.Room) {
			return nil, nil, nil, invalid("camera %d: invalid room %d", i, c.Room)
		}
		lvl.Cameras = append(lvl.Cameras, level.FixedCamera{
			Pos:  core.Vec3{X: c.Pos[0], Y: c.Pos[1], Z: c.Pos[2]},
			Room: c.Room,
		})
	}

	spawns := make([]entity.Spawn, 0, len(yl.Items))
	for i, it := range yl.Items {
		s, err := buildSpawn(lvl, it)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("item %d: %w", i, err)
		}
		spawns = append(spawns, s)
	}

	if err := checkTriggers(lvl, len(spawns)); err != nil {
		return nil, nil, nil, err
	}
	return lvl, g, spawns, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

func buildBoxes(boxes []YAMLBox) (*box.Graph, error) {
	g := box.NewGraph()
	g.InitialiseBoxes(len(boxes))
	total := 0
	for _, b := range boxes {
		total += len(b.Overlaps)
	}
	g.InitialiseOverlaps(total)

	for i, b := range boxes {
		if b.Right <= b.Left || b.Bottom <= b.Top {
			return nil, invalid("box %d: empty rectangle", i)
		}
		g.Boxes[i] = box.Box{Left: b.Left, Right: b.Right, Top: b.Top, Bottom: b.Bottom, Height: b.Height}
		if b.Blockable {
			g.Boxes[i].OverlapIndex = box.Blockable
		}
	}
	for i, b := range boxes {
		if err := g.SetOverlaps(int16(i), b.Overlaps); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
		}
	}

	g.ComputeZones(0)
	for i, b := range boxes {
		if b.FlipHeight != nil {
			g.Boxes[i].Height = *b.FlipHeight
		}
	}
	g.ComputeZones(1)
	for i, b := range boxes {
		g.Boxes[i].Height = b.Height
	}
	return g, nil
}

var roomFlags = map[string]level.RoomFlags{
	"underwater": level.RoomUnderwater,
	"outside":    level.RoomOutside,
}

func buildRoom(index int16, yr *YAMLRoom, rooms int, g *box.Graph) (level.Room, error) {
	xSize, zSize := yr.Size[0], yr.Size[1]
	if xSize < 1 || zSize < 1 {
		return level.Room{}, invalid("room %d: size %dx%d", index, xSize, zSize)
	}
	if yr.Height <= 0 {
		return level.Room{}, invalid("room %d: height %d", index, yr.Height)
	}
	validRoom := func(n int16) bool { return n >= 0 && int(n) < rooms && n != index }
	validBox := func(n int16) bool { return n == box.NoBox || g.Valid(n) }

	r := level.NewRoom(index, core.Vec3{X: yr.Pos[0], Y: yr.Pos[1], Z: yr.Pos[2]}, xSize, zSize, yr.Height)
	for _, name := range yr.Flags {
		f, ok := roomFlags[name]
		if !ok {
			return level.Room{}, invalid("room %d: unknown flag %q", index, name)
		}
		r.Flags |= f
	}
	if yr.Flipped != nil {
		if !validRoom(*yr.Flipped) {
			return level.Room{}, invalid("room %d: invalid flipped room %d", index, *yr.Flipped)
		}
		r.FlippedRoom = *yr.Flipped
	}

	for x := int32(0); x < xSize; x++ {
		for z := int32(0); z < zSize; z++ {
			s := r.Sector(x, z)
			if !yr.Open && (x == 0 || z == 0 || x == xSize-1 || z == zSize-1) {
				s.Floor.Height, s.Ceiling.Height = level.NoHeight, level.NoHeight
				continue
			}
			if yr.Box != nil {
				if !validBox(*yr.Box) {
					return level.Room{}, invalid("room %d: invalid box %d", index, *yr.Box)
				}
				s.Box = *yr.Box
			}
		}
	}

	for i, ys := range yr.Sectors {
		x0, z0, x1, z1, ok := sectorRect(ys)
		if !ok || x0 < 0 || z0 < 0 || x1 >= xSize || z1 >= zSize || x1 < x0 || z1 < z0 {
			return level.Room{}, invalid("room %d sector %d: bad coordinates", index, i)
		}
		trig, err := buildTrigger(ys.Trigger)
		if err != nil {
			return level.Room{}, fmt.Errorf("room %d sector %d: %w", index, i, err)
		}
		for x := x0; x <= x1; x++ {
			for z := z0; z <= z1; z++ {
				s := r.Sector(x, z)
				if ys.Wall {
					s.Floor.Height, s.Ceiling.Height = level.NoHeight, level.NoHeight
				}
				if ys.Floor != nil {
					s.Floor.Height = *ys.Floor
				}
				if ys.Ceiling != nil {
					s.Ceiling.Height = *ys.Ceiling
				}
				if ys.Tilt != nil {
					s.Floor.TiltX, s.Floor.TiltZ = ys.Tilt[0], ys.Tilt[1]
				}
				if ys.Box != nil {
					if !validBox(*ys.Box) {
						return level.Room{}, invalid("room %d sector %d: invalid box %d", index, i, *ys.Box)
					}
					s.Box = *ys.Box
				}
				if p := ys.Portal; p != nil {
					for _, link := range []struct {
						to  *int16
						dst *int16
					}{{p.Wall, &s.PortalWall}, {p.Pit, &s.PortalPit}, {p.Sky, &s.PortalSky}} {
						if link.to == nil {
							continue
						}
						if !validRoom(*link.to) {
							return level.Room{}, invalid("room %d sector %d: invalid portal room %d", index, i, *link.to)
						}
						*link.dst = *link.to
					}
				}
				if trig != nil {
					s.Trigger = trig
				}
			}
		}
	}

	finishRoom(&r)
	return r, nil
}

func sectorRect(ys YAMLSector) (x0, z0, x1, z1 int32, ok bool) {
	switch {
	case ys.At != nil && ys.Rect == nil:
		return ys.At[0], ys.At[1], ys.At[0], ys.At[1], true
	case ys.Rect != nil && ys.At == nil:
		return ys.Rect[0], ys.Rect[1], ys.Rect[2], ys.Rect[3], true
	default:
		return 0, 0, 0, 0, false
	}
}

// finishRoom derives the portal list and the vertical extent.
func finishRoom(r *level.Room) {
	seen := map[int16]bool{}
	for i := range r.Sectors {
		s := &r.Sectors[i]
		for _, to := range []int16{s.PortalWall, s.PortalPit, s.PortalSky} {
			if to != level.NoRoom && !seen[to] {
				seen[to] = true
				r.Portals = append(r.Portals, level.Portal{AdjoiningRoom: to})
			}
		}
		if s.Floor.Height != level.NoHeight {
			r.MinFloor = max(r.MinFloor, s.Floor.Height)
		}
		if s.Ceiling.Height != level.NoHeight {
			r.MaxCeiling = min(r.MaxCeiling, s.Ceiling.Height)
		}
	}
	sort.Slice(r.Portals, func(i, j int) bool {
		return r.Portals[i].AdjoiningRoom < r.Portals[j].AdjoiningRoom
	})
}

func buildTrigger(yt *YAMLTrigger) (*level.Trigger, error) {
	if yt == nil {
		return nil, nil
	}
	typ, ok := level.ParseTriggerType(yt.Type)
	if !ok {
		return nil, invalid("unknown trigger type %q", yt.Type)
	}
	if yt.Mask > 0x1F {
		return nil, invalid("trigger mask %#x wider than five bits", yt.Mask)
	}
	t := &level.Trigger{
		Type:    typ,
		Timer:   yt.Timer,
		OneShot: yt.Once,
		Mask:    yt.Mask << 9,
		Item:    yt.Item,
	}
	for _, yc := range yt.Commands {
		kind, ok := level.ParseCommandKind(yc.Kind)
		if !ok {
			return nil, invalid("unknown trigger command %q", yc.Kind)
		}
		t.Commands = append(t.Commands, level.Command{
			Kind:        kind,
			Arg:         yc.Arg,
			CameraTimer: yc.CameraTimer,
			CameraOnce:  yc.CameraOnce,
			CameraHeavy: yc.CameraHeavy,
		})
	}
	return t, nil
}

// checkTriggers validates the item, camera and flip slot arguments of
// every trigger once the item count is known.
func checkTriggers(lvl *level.Level, items int) error {
	for ri := range lvl.Rooms {
		for si := range lvl.Rooms[ri].Sectors {
			t := lvl.Rooms[ri].Sectors[si].Trigger
			if t == nil {
				continue
			}
			if (t.Type == level.TriggerSwitch || t.Type == level.TriggerKey) && (t.Item < 0 || int(t.Item) >= items) {
				return invalid("room %d: trigger names invalid item %d", ri, t.Item)
			}
			for _, c := range t.Commands {
				switch c.Kind {
				case level.CmdObject, level.CmdLookAt:
					if c.Arg < 0 || int(c.Arg) >= items {
						return invalid("room %d: trigger names invalid item %d", ri, c.Arg)
					}
				case level.CmdCamera:
					if c.Arg < 0 || int(c.Arg) >= len(lvl.Cameras) {
						return invalid("room %d: trigger names invalid camera %d", ri, c.Arg)
					}
				case level.CmdFlipMap, level.CmdFlipOn, level.CmdFlipOff:
					if c.Arg < 0 || c.Arg >= level.MaxFlipMaps {
						return invalid("room %d: trigger names invalid flip slot %d", ri, c.Arg)
					}
				}
			}
		}
	}
	return nil
}

func buildSpawn(lvl *level.Level, it YAMLItem) (entity.Spawn, error) {
	obj, ok := registry.ByName(it.Object)
	if !ok {
		return entity.Spawn{}, invalid("unknown object %q", it.Object)
	}
	r := lvl.Room(it.Room)
	if r == nil {
		return entity.Spawn{}, invalid("invalid room %d", it.Room)
	}
	if it.CodeBits > 0x1F {
		return entity.Spawn{}, invalid("code bits %#x wider than five bits", it.CodeBits)
	}

	var pos core.Vec3
	switch {
	case it.Pos != nil && it.At == nil:
		pos = core.Vec3{X: it.Pos[0], Y: it.Pos[1], Z: it.Pos[2]}
	case it.At != nil && it.Pos == nil:
		s := r.Sector(it.At[0], it.At[1])
		if s == nil || s.Floor.Height == level.NoHeight {
			return entity.Spawn{}, invalid("sector %v is not open floor", *it.At)
		}
		pos = core.Vec3{
			X: r.Pos.X + it.At[0]*core.WallL + core.WallL/2,
			Y: s.Floor.Height,
			Z: r.Pos.Z + it.At[1]*core.WallL + core.WallL/2,
		}
	default:
		return entity.Spawn{}, invalid("exactly one of pos and at is required")
	}

	flags := entity.Flags(it.CodeBits) << 9
	if it.Once {
		flags |= entity.FlagOneShot
	}
	if it.Reverse {
		flags |= entity.FlagReverse
	}
	return entity.Spawn{
		Object: obj.ID,
		Pos:    pos,
		Rot:    core.Rot{Y: core.DegToAngle(it.Yaw)},
		Room:   it.Room,
		Flags:  flags,
	}, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	if lvl.ID == "" {
		lvl.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
