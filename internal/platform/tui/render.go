package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/level"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderCanvas converts a canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *core.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			cell := c.Get(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < c.Width() {
				cell = c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// mapCell is one sector of the static map.
type mapCell struct {
	Pos   core.Vec3
	Rune  rune
	Color core.Color
}

// mapRoom is the drawn form of one room. Bounds are in sectors, with Y
// holding the Z axis.
type mapRoom struct {
	Bounds core.Rect
	Cells  []mapCell
}

// MapSnapshot is a copy of the room geometry taken before a world starts
// ticking, so viewers can draw it without reading live level state.
// Layers hold the normal and the flipped geometry.
type MapSnapshot struct {
	layers      [2][]mapRoom
	baseFlipped bool

	MinX, MinZ int32
	MaxX, MaxZ int32
}

// NewMapSnapshot captures lvl.
func NewMapSnapshot(lvl *level.Level) MapSnapshot {
	m := MapSnapshot{baseFlipped: lvl.FlipStatus}
	if len(lvl.Rooms) == 0 {
		return m
	}

	alternate := make(map[int16]bool)
	for i := range lvl.Rooms {
		if f := lvl.Rooms[i].FlippedRoom; f != level.NoRoom && lvl.ValidRoom(f) {
			alternate[f] = true
		}
	}

	first := true
	for i := range lvl.Rooms {
		r := &lvl.Rooms[i]
		if alternate[r.Index] {
			continue
		}
		normal := newMapRoom(r)
		m.layers[0] = append(m.layers[0], normal)
		if f := lvl.Room(r.FlippedRoom); f != nil {
			m.layers[1] = append(m.layers[1], newMapRoom(f))
		} else {
			m.layers[1] = append(m.layers[1], normal)
		}

		x1 := r.Pos.X + r.XSize*core.WallL
		z1 := r.Pos.Z + r.ZSize*core.WallL
		if first {
			m.MinX, m.MinZ, m.MaxX, m.MaxZ = r.Pos.X, r.Pos.Z, x1, z1
			first = false
			continue
		}
		m.MinX = min(m.MinX, r.Pos.X)
		m.MinZ = min(m.MinZ, r.Pos.Z)
		m.MaxX = max(m.MaxX, x1)
		m.MaxZ = max(m.MaxZ, z1)
	}
	return m
}

func newMapRoom(r *level.Room) mapRoom {
	mr := mapRoom{
		Bounds: core.NewRect(
			int(r.Pos.X>>core.WallShift), int(r.Pos.Z>>core.WallShift),
			int(r.XSize), int(r.ZSize),
		),
		Cells: make([]mapCell, 0, len(r.Sectors)),
	}
	water := r.Underwater()
	for xs := range r.XSize {
		for zs := range r.ZSize {
			s := r.Sector(xs, zs)
			c := mapCell{
				Pos: core.Vec3{
					X: r.Pos.X + xs*core.WallL + core.WallL/2,
					Z: r.Pos.Z + zs*core.WallL + core.WallL/2,
				},
				Rune:  '.',
				Color: core.ColorGray,
			}
			switch {
			case s.Floor.Height == level.NoHeight:
				c.Rune, c.Color = '#', core.ColorWhite
			case s.PortalWall != level.NoRoom:
				c.Rune, c.Color = ':', core.ColorYellow
			case s.Trigger != nil:
				c.Rune, c.Color = '^', core.ColorMagenta
			case water:
				c.Rune, c.Color = '~', core.ColorBlue
			case s.Floor.Height < r.Pos.Y:
				c.Rune = '='
			}
			mr.Cells = append(mr.Cells, c)
		}
	}
	return mr
}

// viewport returns the part of the world the canvas shows, in sectors.
func viewport(canvas *core.Canvas) core.Rect {
	scale := canvas.Scale
	if scale <= 0 {
		scale = core.WallL
	}
	return core.NewRect(
		int(canvas.OriginX>>core.WallShift), int(canvas.OriginZ>>core.WallShift),
		int(int32(canvas.Width())*scale>>core.WallShift)+1,
		int(int32(canvas.Height())*scale>>core.WallShift)+1,
	)
}

// Draw plots the layer matching the frame's flip state. Rooms outside the
// canvas are skipped.
func (m MapSnapshot) Draw(canvas *core.Canvas, flipped bool) {
	layer := 0
	if flipped != m.baseFlipped {
		layer = 1
	}
	view := viewport(canvas)
	for _, r := range m.layers[layer] {
		if !r.Bounds.Intersects(view) {
			continue
		}
		for _, c := range r.Cells {
			canvas.Plot(c.Pos, c.Rune, c.Color)
		}
	}
}

// Fit sets the canvas origin and scale so the whole map is visible. One
// cell covers at least one sector.
func (m MapSnapshot) Fit(canvas *core.Canvas) {
	w, h := int32(max(canvas.Width(), 1)), int32(max(canvas.Height(), 1))
	need := max((m.MaxX-m.MinX+w-1)/w, (m.MaxZ-m.MinZ+h-1)/h)
	canvas.Scale = max(need, core.WallL)
	canvas.OriginX = m.MinX
	canvas.OriginZ = m.MinZ
}

// FollowCamera centers the canvas on the camera target, keeping the scale.
func FollowCamera(canvas *core.Canvas, f engine.Frame) {
	scale := canvas.Scale
	if scale <= 0 {
		scale = core.WallL
	}
	canvas.OriginX = f.Camera.Target.X - int32(canvas.Width()/2)*scale
	canvas.OriginZ = f.Camera.Target.Z - int32(canvas.Height()/2)*scale
}

// DrawFrame renders the map and then every entity of the frame.
func DrawFrame(canvas *core.Canvas, m MapSnapshot, f engine.Frame) {
	canvas.Clear()
	m.Draw(canvas, f.Flipped)
	if f.Camera.Type != "" {
		canvas.Plot(f.Camera.Pos, 'C', core.ColorCyan)
	}
	f.Draw(canvas)
	if f.Complete {
		banner(canvas, "LEVEL COMPLETE")
	}
}

// banner draws text in a filled box at the center of the canvas.
func banner(canvas *core.Canvas, text string) {
	w := len(text) + 4
	box := core.NewRect((canvas.Width()-w)/2, canvas.Height()/2-1, w, 3)
	canvas.DrawRect(box, ' ', core.ColorDefault)
	canvas.DrawText(box.X+2, box.Y+1, text, core.ColorYellow)
}
