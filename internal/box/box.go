// Package box implements the coarse pathing graph that creatures navigate:
// rectangular boxes over sectors, overlap adjacency, connectivity zones per
// movement class and flip state, and the incremental LOT search.
package box

import (
	"fmt"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

// NoBox marks a sector outside the pathing graph and terminates LOT queues.
const NoBox int16 = 0x7FF

// Overlap index flags.
const (
	Blockable    uint16 = 0x8000
	Blocked      uint16 = 0x4000
	OverlapIndex uint16 = 0x3FFF

	// EndBit marks the last entry of a box's overlap list.
	EndBit   uint16 = 0x8000
	BoxIndex uint16 = 0x7FFF
)

// FlipStates is the number of zone table variants (normal and flipped).
const FlipStates = 2

// Box is a rectangle in sector units. Left/Right bound Z and Top/Bottom
// bound X; upper bounds are exclusive. Height is the floor height.
type Box struct {
	Left, Right  int32
	Top, Bottom  int32
	Height       int32
	OverlapIndex uint16
}

// Contains reports whether a world (x, z) lies inside the box.
func (b *Box) Contains(x, z int32) bool {
	xs, zs := x>>core.WallShift, z>>core.WallShift
	return zs >= b.Left && zs < b.Right && xs >= b.Top && xs < b.Bottom
}

// Bounds returns the box extent in world units: min and exclusive max.
func (b *Box) Bounds() (minX, maxX, minZ, maxZ int32) {
	return b.Top << core.WallShift, b.Bottom << core.WallShift,
		b.Left << core.WallShift, b.Right << core.WallShift
}

// Center returns the world centre of the box at its floor height.
func (b *Box) Center() core.Vec3 {
	minX, maxX, minZ, maxZ := b.Bounds()
	return core.Vec3{X: (minX + maxX) / 2, Y: b.Height, Z: (minZ + maxZ) / 2}
}

// Graph owns the box table, the shared overlap array and the zone tables.
type Graph struct {
	Boxes    []Box
	Overlaps []uint16

	// GroundZones[flip][class] and FlyZones[flip] hold one zone id per box.
	GroundZones [FlipStates][StepClasses][]int16
	FlyZones    [FlipStates][]int16
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// InitialiseBoxes allocates the box table and every zone table for count
// boxes.
func (g *Graph) InitialiseBoxes(count int) {
	g.Boxes = make([]Box, count)
	for flip := 0; flip < FlipStates; flip++ {
		for class := 0; class < StepClasses; class++ {
			g.GroundZones[flip][class] = make([]int16, count)
		}
		g.FlyZones[flip] = make([]int16, count)
	}
}

// InitialiseOverlaps allocates the shared overlap array with room for
// count entries. SetOverlaps fills it.
func (g *Graph) InitialiseOverlaps(count int) {
	g.Overlaps = make([]uint16, 0, count)
}

// Valid reports whether n indexes a box.
func (g *Graph) Valid(n int16) bool {
	return n >= 0 && n != NoBox && int(n) < len(g.Boxes)
}

// SetOverlaps appends a box's neighbour list to the overlap array and points
// the box at it. Used by loaders that build the graph from a neighbour map.
func (g *Graph) SetOverlaps(n int16, neighbours []int16) error {
	if !g.Valid(n) {
		return fmt.Errorf("box: overlaps for invalid box %d", n)
	}
	b := &g.Boxes[n]
	if len(neighbours) == 0 {
		b.OverlapIndex = b.OverlapIndex&^OverlapIndex | OverlapIndex
		return nil
	}
	start := len(g.Overlaps)
	if start > int(OverlapIndex)-1 {
		return fmt.Errorf("box: overlap array full")
	}
	for i, nb := range neighbours {
		if !g.Valid(nb) {
			return fmt.Errorf("box: box %d overlaps invalid box %d", n, nb)
		}
		v := uint16(nb)
		if i == len(neighbours)-1 {
			v |= EndBit
		}
		g.Overlaps = append(g.Overlaps, v)
	}
	b.OverlapIndex = b.OverlapIndex&^OverlapIndex | uint16(start)
	return nil
}

// Neighbours calls fn with each box overlapping n, in list order.
func (g *Graph) Neighbours(n int16, fn func(nb int16)) {
	if !g.Valid(n) {
		return
	}
	index := int(g.Boxes[n].OverlapIndex & OverlapIndex)
	if index == int(OverlapIndex) {
		return
	}
	for index < len(g.Overlaps) {
		v := g.Overlaps[index]
		index++
		fn(int16(v & BoxIndex))
		if v&EndBit != 0 {
			return
		}
	}
}

// Block marks a blockable box as blocked, e.g. by a closed door.
func (g *Graph) Block(n int16) {
	if g.Valid(n) && g.Boxes[n].OverlapIndex&Blockable != 0 {
		g.Boxes[n].OverlapIndex |= Blocked
	}
}

// Unblock clears the blocked flag of a box.
func (g *Graph) Unblock(n int16) {
	if g.Valid(n) {
		g.Boxes[n].OverlapIndex &^= Blocked
	}
}

// IsBlocked reports whether a box is currently blocked.
func (g *Graph) IsBlocked(n int16) bool {
	return g.Valid(n) && g.Boxes[n].OverlapIndex&Blocked != 0
}
