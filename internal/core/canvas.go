package core

import (
	"strings"
)

// Color represents a foreground color for a canvas cell.
type Color uint8

// Colors used by the map view.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Cell is one character of a canvas.
type Cell struct {
	Rune  rune
	Color Color
}

// Canvas is a top-down character map of the world. Objects draw themselves
// into it through Plot, which projects world XZ coordinates to cells.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell

	// Origin is the world position shown at cell (0, 0); Scale is world
	// units per cell.
	OriginX, OriginZ int32
	Scale            int32
}

// NewCanvas creates a canvas with the given dimensions and one sector per cell.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		Scale:  WallL,
	}
	c.allocate()
	c.Clear()
	return c
}

// allocate creates the underlying cell storage.
func (c *Canvas) allocate() {
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the canvas dimensions. Content is discarded.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.allocate()
	c.Clear()
}

// Clear fills the entire canvas with spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given cell. Out-of-bounds cells are ignored.
func (c *Canvas) Set(x, y int, r rune, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Color: col}
}

// Get returns the cell at the given position, or a blank cell out of bounds.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Project converts a world position to canvas coordinates. North (+Z) is up.
func (c *Canvas) Project(pos Vec3) (x, y int) {
	scale := c.Scale
	if scale <= 0 {
		scale = WallL
	}
	x = int((pos.X - c.OriginX) / scale)
	y = c.height - 1 - int((pos.Z-c.OriginZ)/scale)
	return x, y
}

// Plot draws a rune at a world position.
func (c *Canvas) Plot(pos Vec3, r rune, col Color) {
	x, y := c.Project(pos)
	c.Set(x, y, r, col)
}

// DrawText writes a string horizontally starting at (x, y), clipped at the edges.
func (c *Canvas) DrawText(x, y int, text string, col Color) {
	for i, r := range []rune(text) {
		c.Set(x+i, y, r, col)
	}
}

// DrawRect fills a rectangular area with the given rune.
func (c *Canvas) DrawRect(r Rect, fill rune, col Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.Set(x, y, fill, col)
		}
	}
}

// String converts the canvas to plain text, rows joined with newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	var sb strings.Builder
	for _, cell := range c.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
