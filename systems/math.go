package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ClampAngle clamps an angle to [-Pi, Pi]. Facing is clamped, not wrapped.
func ClampAngle(angle float64) float64 {
	if angle > math.Pi {
		return math.Pi
	}
	if angle < -math.Pi {
		return -math.Pi
	}
	return angle
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return r2.Norm(r2.Sub(r2.Vec{X: x2, Y: y2}, r2.Vec{X: x1, Y: y1}))
}

// IsOverlapping reports whether two discs overlap: center distance strictly below the sum of radii.
func IsOverlapping(x1, y1, radius1, x2, y2, radius2 float64) bool {
	return Distance(x1, y1, x2, y2) < radius1+radius2
}

// SphereMass returns the mass of a sphere of the given radius; factor is density * 4/3 * Pi.
func SphereMass(factor, radius float64) float64 {
	return factor * radius * radius * radius
}

// SphereRadius inverts SphereMass.
func SphereRadius(factor, mass float64) float64 {
	return math.Cbrt(mass / factor)
}
