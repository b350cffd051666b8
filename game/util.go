package game

import "math"

// ceilInt rounds up to the next integer.
func ceilInt(v float64) int {
	return int(math.Ceil(v))
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stepToward moves v toward target in increments of step until done(v) holds or
// v is within slack of target. It never overshoots target.
func stepToward(v, target, step, slack float64, done func(float64) bool) float64 {
	if step <= 0 {
		return v
	}
	for math.Abs(target-v) > slack && !done(v) {
		if v < target {
			v = math.Min(v+step, target)
		} else {
			v = math.Max(v-step, target)
		}
	}
	return v
}
