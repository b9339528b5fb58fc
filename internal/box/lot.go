package box

import "github.com/vovakirdan/tomb-engine/internal/core"

// Node is the per-box search state of one LOT.
type Node struct {
	// SearchNum is the generation that last reached this box.
	SearchNum uint32
	// Blocked is set when the box was reached only through a blocked box.
	Blocked bool
	// ExitBox is the next box on the way to the target, or NoBox.
	ExitBox int16
	// NextExpansion links the expansion queue, or NoBox.
	NextExpansion int16
}

// LOT is a pathing descriptor: movement capability plus the incremental
// search state toward a target box. Searches run outward from the target,
// so after enough expansions every reached box knows its exit toward it.
type LOT struct {
	Nodes []Node
	Head  int16
	Tail  int16

	// SearchNum grows by one per new target; nodes from older generations
	// count as unvisited without being reset.
	SearchNum uint32
	BlockMask uint16

	Step int16 // highest climb
	Drop int16 // deepest descent, negative
	Fly  int16 // non-zero for flyers

	TargetBox   int16
	RequiredBox int16
	Target      core.Vec3
}

// Stock movement classes.
const (
	GroundStep int16 = core.StepL
	GroundDrop int16 = -core.StepL
	ClimbStep  int16 = core.WallL
	ClimbDrop  int16 = -core.WallL
	FlySpeed   int16 = core.StepL / 16
)

// NewLOT creates a LOT sized for the graph with the given capability.
func (g *Graph) NewLOT(step, drop, fly int16) *LOT {
	lot := &LOT{
		Step:      step,
		Drop:      drop,
		Fly:       fly,
		BlockMask: Blocked,
	}
	g.ClearLOT(lot)
	return lot
}

// ClearLOT resets the queue and every node, keeping the capability fields.
func (g *Graph) ClearLOT(lot *LOT) {
	if len(lot.Nodes) != len(g.Boxes) {
		lot.Nodes = make([]Node, len(g.Boxes))
	}
	lot.Head = NoBox
	lot.Tail = NoBox
	lot.SearchNum = 0
	lot.TargetBox = NoBox
	lot.RequiredBox = NoBox
	for i := range lot.Nodes {
		lot.Nodes[i] = Node{ExitBox: NoBox, NextExpansion: NoBox}
	}
}

// UpdateLOT starts a new search generation when RequiredBox has changed,
// then expands at most expansion boxes. It reports whether the queue still
// has work; running out of budget is not an error, the search resumes on
// the next call.
func (g *Graph) UpdateLOT(lot *LOT, expansion int, flipped bool) bool {
	if lot.RequiredBox != NoBox && lot.RequiredBox != lot.TargetBox && g.Valid(lot.RequiredBox) {
		lot.TargetBox = lot.RequiredBox
		expand := &lot.Nodes[lot.TargetBox]
		if expand.NextExpansion == NoBox && lot.Tail != lot.TargetBox {
			expand.NextExpansion = lot.Head
			if lot.Head == NoBox {
				lot.Tail = lot.TargetBox
			}
			lot.Head = lot.TargetBox
		}
		lot.SearchNum++
		expand.SearchNum = lot.SearchNum
		expand.Blocked = false
		expand.ExitBox = NoBox
	}
	return g.SearchLOT(lot, expansion, flipped)
}

// SearchLOT expands up to expansion queued boxes. Each expansion visits
// the overlaps of the queue head and hands them this generation, recording
// the head as their exit box. Boxes in another zone or beyond the step and
// drop limits are skipped; boxes matching BlockMask propagate a blocked
// generation that does not record exits.
func (g *Graph) SearchLOT(lot *LOT, expansion int, flipped bool) bool {
	zone := g.GetZone(lot, flipped)

	for i := 0; i < expansion; i++ {
		if lot.Head == NoBox {
			lot.Tail = NoBox
			return false
		}

		head := lot.Head
		node := &lot.Nodes[head]
		from := &g.Boxes[head]
		searchZone := zoneOf(zone, head)

		g.Neighbours(head, func(nb int16) {
			if lot.Fly == 0 && zoneOf(zone, nb) != searchZone {
				return
			}
			change := g.Boxes[nb].Height - from.Height
			if change > int32(lot.Step) || change < int32(lot.Drop) {
				return
			}

			expand := &lot.Nodes[nb]
			if node.SearchNum < expand.SearchNum {
				return
			}
			if node.Blocked {
				if node.SearchNum == expand.SearchNum {
					return
				}
				expand.SearchNum = node.SearchNum
				expand.Blocked = true
			} else {
				if node.SearchNum == expand.SearchNum && !expand.Blocked {
					return
				}
				expand.SearchNum = node.SearchNum
				if g.Boxes[nb].OverlapIndex&lot.BlockMask != 0 {
					expand.Blocked = true
				} else {
					expand.Blocked = false
					expand.ExitBox = head
				}
			}

			if expand.NextExpansion == NoBox && nb != lot.Tail {
				lot.Nodes[lot.Tail].NextExpansion = nb
				lot.Tail = nb
			}
		})

		lot.Head = node.NextExpansion
		node.NextExpansion = NoBox
	}
	return true
}

func zoneOf(zone []int16, n int16) int16 {
	if n < 0 || int(n) >= len(zone) {
		return -1
	}
	return zone[n]
}

// Reachable reports whether the current generation has reached from with
// an unblocked path, i.e. from has a usable exit toward the target.
func (g *Graph) Reachable(lot *LOT, from int16) bool {
	if !g.Valid(from) || !g.Valid(lot.TargetBox) {
		return false
	}
	if from == lot.TargetBox {
		return true
	}
	n := &lot.Nodes[from]
	return n.SearchNum == lot.SearchNum && !n.Blocked && n.ExitBox != NoBox
}

// FindRoute runs a complete search from target back to from and returns
// the box sequence from -> target. A NoBox endpoint, a different zone or an
// exhausted search returns ok == false. Each box enters the queue at most
// twice (once blocked, once clear), so the search is linear in the box
// count.
func (g *Graph) FindRoute(lot *LOT, from, to int16, flipped bool) (route []int16, ok bool) {
	if !g.Valid(from) || !g.Valid(to) {
		return nil, false
	}
	zone := g.GetZone(lot, flipped)
	if lot.Fly == 0 && zoneOf(zone, from) != zoneOf(zone, to) {
		return nil, false
	}

	lot.RequiredBox = to
	if lot.TargetBox == to {
		// Force a fresh generation for an explicit query.
		lot.TargetBox = NoBox
	}
	budget := 2*len(g.Boxes) + 2
	for g.UpdateLOT(lot, 1, flipped) && budget > 0 {
		budget--
	}
	if !g.Reachable(lot, from) {
		return nil, false
	}

	route = append(route, from)
	for cur := from; cur != to; {
		cur = lot.Nodes[cur].ExitBox
		if cur == NoBox || len(route) > len(g.Boxes) {
			return nil, false
		}
		route = append(route, cur)
	}
	return route, true
}

// NextTarget returns where a creature standing at pos in box from should
// head: the nearest point inside the exit box, or the LOT target when
// already in the target box or when no exit is known.
func (g *Graph) NextTarget(lot *LOT, from int16, pos core.Vec3) core.Vec3 {
	if !g.Valid(from) || from == lot.TargetBox || !g.Reachable(lot, from) {
		return lot.Target
	}
	exit := lot.Nodes[from].ExitBox
	if !g.Valid(exit) {
		return lot.Target
	}
	minX, maxX, minZ, maxZ := g.Boxes[exit].Bounds()
	const margin = core.WallL / 2
	return core.Vec3{
		X: core.Clamp(pos.X, minX+margin, maxX-margin),
		Y: g.Boxes[exit].Height,
		Z: core.Clamp(pos.Z, minZ+margin, maxZ-margin),
	}
}
