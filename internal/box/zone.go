package box

import "github.com/vovakirdan/tomb-engine/internal/core"

// StepClasses is the number of ground zone tables, one per climbable step.
const StepClasses = 3

// classSteps is the step height each ground zone class allows.
var classSteps = [StepClasses]int32{core.StepL, 2 * core.StepL, 4 * core.StepL}

// StepClass returns the ground zone class for a creature step height.
func StepClass(step int16) int {
	for class, s := range classSteps {
		if int32(step) <= s {
			return class
		}
	}
	return StepClasses - 1
}

// GetZone selects the zone table a LOT searches in: the fly zones for
// flyers, otherwise the ground zone matching the LOT's step height, for the
// given flip state.
func (g *Graph) GetZone(lot *LOT, flipped bool) []int16 {
	flip := 0
	if flipped {
		flip = 1
	}
	if lot.Fly != 0 {
		return g.FlyZones[flip]
	}
	return g.GroundZones[flip][StepClass(lot.Step)]
}

// ComputeZones fills the zone tables of one flip state by flood fill over
// overlaps. Ground classes join neighbours whose height differs by at most
// the class step; fly zones join every overlap. Blocked boxes stay
// connected since blocking is transient.
func (g *Graph) ComputeZones(flip int) {
	if flip < 0 || flip >= FlipStates {
		return
	}
	for class := 0; class < StepClasses; class++ {
		step := classSteps[class]
		g.GroundZones[flip][class] = g.floodFill(func(a, b int16) bool {
			return core.Abs(g.Boxes[b].Height-g.Boxes[a].Height) <= step
		})
	}
	g.FlyZones[flip] = g.floodFill(func(a, b int16) bool { return true })
}

// floodFill labels connected components under the join predicate.
func (g *Graph) floodFill(join func(a, b int16) bool) []int16 {
	zones := make([]int16, len(g.Boxes))
	for i := range zones {
		zones[i] = -1
	}

	var next int16
	queue := make([]int16, 0, len(g.Boxes))
	for start := range g.Boxes {
		if zones[start] != -1 {
			continue
		}
		zones[start] = next
		queue = append(queue[:0], int16(start))
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			g.Neighbours(cur, func(nb int16) {
				if zones[nb] == -1 && join(cur, nb) {
					zones[nb] = next
					queue = append(queue, nb)
				}
			})
		}
		next++
	}
	return zones
}

// SameZone reports whether two boxes share a zone in the table.
func SameZone(zone []int16, a, b int16) bool {
	if a < 0 || b < 0 || int(a) >= len(zone) || int(b) >= len(zone) {
		return false
	}
	return zone[a] == zone[b]
}
