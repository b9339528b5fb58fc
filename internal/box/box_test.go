package box

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

// chain builds n boxes in a row along X, each one sector, linked to its
// neighbours, with the given floor heights (zero when heights is short).
func chain(n int, heights ...int32) *Graph {
	g := NewGraph()
	g.InitialiseBoxes(n)
	g.InitialiseOverlaps(2 * n)
	for i := 0; i < n; i++ {
		g.Boxes[i] = Box{Left: 0, Right: 1, Top: int32(i), Bottom: int32(i + 1)}
		if i < len(heights) {
			g.Boxes[i].Height = heights[i]
		}
	}
	for i := 0; i < n; i++ {
		var nb []int16
		if i > 0 {
			nb = append(nb, int16(i-1))
		}
		if i < n-1 {
			nb = append(nb, int16(i+1))
		}
		if err := g.SetOverlaps(int16(i), nb); err != nil {
			panic(err)
		}
	}
	g.ComputeZones(0)
	g.ComputeZones(1)
	return g
}

func TestNeighbours(t *testing.T) {
	g := chain(3)
	var got []int16
	g.Neighbours(1, func(nb int16) { got = append(got, nb) })

	if !reflect.DeepEqual(got, []int16{0, 2}) {
		t.Errorf("Neighbours(1) = %v, expected [0 2]", got)
	}
	if g.Overlaps[len(g.Overlaps)-1]&EndBit == 0 {
		t.Error("last overlap entry should carry the end bit")
	}
}

func TestFindRouteChain(t *testing.T) {
	g := chain(5)
	lot := g.NewLOT(GroundStep, GroundDrop, 0)

	route, ok := g.FindRoute(lot, 0, 4, false)
	if !ok {
		t.Fatal("FindRoute() = unreachable, expected a route")
	}
	if !reflect.DeepEqual(route, []int16{0, 1, 2, 3, 4}) {
		t.Errorf("route = %v, expected [0 1 2 3 4]", route)
	}
}

func TestFindRouteRejectsNoBox(t *testing.T) {
	g := chain(3)
	lot := g.NewLOT(GroundStep, GroundDrop, 0)

	if _, ok := g.FindRoute(lot, NoBox, 2, false); ok {
		t.Error("NoBox start should be rejected")
	}
	if _, ok := g.FindRoute(lot, 0, NoBox, false); ok {
		t.Error("NoBox target should be rejected")
	}
}

func TestFindRouteUnreachableTerminates(t *testing.T) {
	const n = 200
	g := NewGraph()
	g.InitialiseBoxes(n)
	// A ring of n-1 boxes plus one isolated target; zones left unset so
	// the zone pre-check cannot short-circuit the search.
	for i := 0; i < n-1; i++ {
		g.Boxes[i] = Box{Top: int32(i), Bottom: int32(i + 1), Right: 1}
		prev := int16((i + n - 2) % (n - 1))
		next := int16((i + 1) % (n - 1))
		if err := g.SetOverlaps(int16(i), []int16{prev, next}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SetOverlaps(n-1, nil); err != nil {
		t.Fatal(err)
	}

	lot := g.NewLOT(GroundStep, GroundDrop, 0)
	if _, ok := g.FindRoute(lot, 0, n-1, false); ok {
		t.Error("FindRoute() to an isolated box should be unreachable")
	}

	// The other direction explores the whole ring and must still stop.
	if _, ok := g.FindRoute(lot, n-1, 0, false); ok {
		t.Error("FindRoute() from an isolated box should be unreachable")
	}
	if lot.Head != NoBox {
		t.Errorf("search queue should be drained, head = %d", lot.Head)
	}
}

func TestStepLimits(t *testing.T) {
	g := chain(3, 0, -1024, -1024)

	ground := g.NewLOT(GroundStep, GroundDrop, 0)
	if _, ok := g.FindRoute(ground, 0, 2, false); ok {
		t.Error("ground LOT should not climb a full wall")
	}

	climber := g.NewLOT(ClimbStep, ClimbDrop, 0)
	if _, ok := g.FindRoute(climber, 0, 2, false); !ok {
		t.Error("climbing LOT should reach the ledge")
	}

	flyer := g.NewLOT(ClimbStep, ClimbDrop, FlySpeed)
	if _, ok := g.FindRoute(flyer, 2, 0, false); !ok {
		t.Error("flying LOT should ignore ground zones")
	}
}

func TestBlockedBox(t *testing.T) {
	g := chain(3)
	g.Boxes[1].OverlapIndex |= Blockable
	g.Block(1)

	lot := g.NewLOT(GroundStep, GroundDrop, 0)
	if _, ok := g.FindRoute(lot, 0, 2, false); ok {
		t.Error("route through a blocked box should be unreachable")
	}

	g.Unblock(1)
	if _, ok := g.FindRoute(lot, 0, 2, false); !ok {
		t.Error("route should open once the box is unblocked")
	}
}

func TestUpdateLOTIsBudgeted(t *testing.T) {
	g := chain(10)
	lot := g.NewLOT(GroundStep, GroundDrop, 0)
	lot.RequiredBox = 9

	if !g.UpdateLOT(lot, 1, false) {
		t.Fatal("first UpdateLOT() should leave work queued")
	}
	if lot.SearchNum != 1 {
		t.Errorf("SearchNum = %d, expected 1", lot.SearchNum)
	}
	if g.Reachable(lot, 0) {
		t.Error("box 0 should not be reached after one expansion")
	}

	for i := 0; i < 20 && g.UpdateLOT(lot, 1, false); i++ {
	}
	if !g.Reachable(lot, 0) {
		t.Error("box 0 should be reached once the search completes")
	}
	if lot.Nodes[0].ExitBox != 1 {
		t.Errorf("exit of box 0 = %d, expected 1", lot.Nodes[0].ExitBox)
	}

	// A new target starts a new generation and stales old results.
	lot.RequiredBox = 0
	g.UpdateLOT(lot, 0, false)
	if lot.SearchNum != 2 {
		t.Errorf("SearchNum = %d, expected 2", lot.SearchNum)
	}
	if g.Reachable(lot, 9) {
		t.Error("results of the previous generation should be stale")
	}
}

func TestComputeZones(t *testing.T) {
	g := chain(4, 0, 0, -512, -512)

	class := StepClass(GroundStep)
	if !SameZone(g.GroundZones[0][class], 0, 1) {
		t.Error("boxes 0 and 1 should share the step zone")
	}
	if SameZone(g.GroundZones[0][class], 1, 2) {
		t.Error("a 512 rise should split the 256 step zone")
	}
	if !SameZone(g.GroundZones[0][StepClass(512)], 0, 3) {
		t.Error("the 512 class should join every box")
	}
	if !SameZone(g.FlyZones[1], 0, 3) {
		t.Error("fly zone should join every box")
	}
}

func TestNextTarget(t *testing.T) {
	g := chain(3)
	lot := g.NewLOT(GroundStep, GroundDrop, 0)
	lot.Target = core.Vec3{X: 2*core.WallL + 512, Z: 512}
	if _, ok := g.FindRoute(lot, 0, 2, false); !ok {
		t.Fatal("FindRoute() failed")
	}

	next := g.NextTarget(lot, 0, core.Vec3{X: 100, Z: 512})
	if !g.Boxes[1].Contains(next.X, next.Z) {
		t.Errorf("NextTarget() = %v, expected a point inside box 1", next)
	}
	if got := g.NextTarget(lot, 2, core.Vec3{}); got != lot.Target {
		t.Errorf("NextTarget() in the target box = %v, expected %v", got, lot.Target)
	}
}
