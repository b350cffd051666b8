package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MoveParams configures the move search fan.
type MoveParams struct {
	Fan       float64 // half-width of the searched angle range (rad)
	FanStep   float64 // angular increment (rad)
	MinRadius float64 // shortest step tried (m)
}

// MoveDelta searches for where a worm at pos facing heading can step to and returns the displacement.
//
// Candidate points lie on arcs of decreasing radius (from the worm radius down to MinRadius in
// resolution steps) spread over the fan. A candidate replaces the current best when its angular
// deviation plus its distance shortfall is lower, and only if it is adjacent to solid terrain.
// When no adjacent candidate exists, the worm steps straight ahead to the farthest passable point.
// A zero vector means no move was found.
func MoveDelta(t *Terrain, pos r2.Vec, heading, radius float64, p MoveParams) r2.Vec {
	best := pos
	bestDist := 0.0
	bestDev := math.Abs(heading)
	found := false

	interval := t.MinResolution()
	fanSteps := int(math.Floor(2*p.Fan/p.FanStep + 1e-9))

	for _, dist := range testDistances(radius, p.MinRadius, interval) {
		for i := 0; i <= fanSteps; i++ {
			angle := heading - p.Fan + float64(i)*p.FanStep
			c := r2.Add(pos, r2.Scale(dist, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
			d := r2.Sub(c, pos)
			dev := math.Abs(heading - math.Atan2(d.Y, d.X))

			if (dev-bestDev)+(bestDist-dist) >= 0 {
				continue
			}
			if !t.IsAdjacent(c.X, c.Y, radius) {
				continue
			}
			found = true
			best, bestDist, bestDev = c, dist, dev
		}
	}

	if !found {
		dir := r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}
		for _, dist := range testDistances(radius, p.MinRadius, interval) {
			c := r2.Add(pos, r2.Scale(dist, dir))
			if t.IsPassable(c.X, c.Y, radius) {
				best = c
				break
			}
		}
	}

	return r2.Sub(best, pos)
}

// testDistances lists step lengths from radius down to minRadius, spaced by interval.
func testDistances(radius, minRadius, interval float64) []float64 {
	if interval <= 0 {
		if radius >= minRadius {
			return []float64{radius}
		}
		return nil
	}
	var out []float64
	for d := radius; d >= minRadius; d -= interval {
		out = append(out, d)
	}
	return out
}

// MoveCost returns the AP cost of a displacement: steeper moves cost more.
// A zero displacement is priced as a horizontal step.
func MoveCost(delta r2.Vec) int {
	n := r2.Norm(delta)
	if n == 0 {
		return 1
	}
	// |cos| and |sin| of the slope, taken from the components so that
	// axis-aligned moves price exactly
	cos := math.Abs(delta.X) / n
	sin := math.Abs(delta.Y) / n
	return int(math.Ceil(cos + 4*sin))
}

// TurnCost returns the AP cost of turning by angle, where fullCircle is the cost of 2π.
func TurnCost(angle, fullCircle float64) int {
	return int(math.Ceil(math.Abs(angle) * fullCircle / (2 * math.Pi)))
}
