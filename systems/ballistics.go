package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// launchImpulseTime is how long the launch force acts, in seconds.
const launchImpulseTime = 0.5

// Trajectory is a parabolic flight from a fixed origin.
type Trajectory struct {
	Origin  r2.Vec
	Heading float64 // radians
	Speed   float64 // m/s
	Gravity float64 // m/s^2
}

// NewTrajectory builds a trajectory for a body of mass pushed by force for half a second.
func NewTrajectory(origin r2.Vec, heading, force, mass, gravity float64) Trajectory {
	return Trajectory{
		Origin:  origin,
		Heading: heading,
		Speed:   LaunchSpeed(force, mass),
		Gravity: gravity,
	}
}

// LaunchSpeed returns the initial speed imparted by force over the launch impulse.
func LaunchSpeed(force, mass float64) float64 {
	return force * launchImpulseTime / mass
}

// At returns the position after t seconds of flight.
func (tr Trajectory) At(t float64) r2.Vec {
	vx := tr.Speed * math.Cos(tr.Heading)
	vy := tr.Speed * math.Sin(tr.Heading)
	return r2.Vec{
		X: tr.Origin.X + vx*t,
		Y: tr.Origin.Y + vy*t - 0.5*tr.Gravity*t*t,
	}
}

// Fly samples the trajectory at t = 0, dt, 2dt, ... and hands each point to visit
// until visit returns false. It returns the time of the last accepted sample and
// the point that was rejected. If the origin itself is rejected, last is 0 and
// ok is false.
//
// Sample times are computed as i*dt rather than accumulated, so re-flying the same
// trajectory visits bit-identical points. dt must be positive; flight ends because
// gravity eventually carries the body out of any bounded world.
func (tr Trajectory) Fly(dt float64, visit func(t float64, p r2.Vec) bool) (last float64, stop r2.Vec, ok bool) {
	for i := 0; ; i++ {
		t := float64(i) * dt
		p := tr.At(t)
		if !visit(t, p) {
			return last, p, i > 0
		}
		last = t
	}
}
