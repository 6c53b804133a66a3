package meshgen

import (
	"math"

	"github.com/golang/geo/r3"
)

// TorusReference holds the analytic principal curvatures and directions of a
// torus at one surface point, under the inward-normal sign convention.
type TorusReference struct {
	Kappa1, Kappa2 float64
	T1, T2         r3.Vector
}

// TorusCurvature evaluates the analytic principal curvatures and directions
// of the torus generated by Torus(ringRadius, tubeRadius, ...) at the surface
// point p. Kappa1 = 1/tubeRadius everywhere; Kappa2 varies with the tube
// angle and is negative on the inner rim.
func TorusCurvature(ringRadius, tubeRadius float64, p r3.Vector) TorusReference {
	rxy := math.Hypot(p.X, p.Y)
	u := math.Atan2(p.Y, p.X)
	v := math.Atan2(p.Z, rxy-ringRadius)
	sinU, cosU := math.Sincos(u)
	sinV, cosV := math.Sincos(v)
	return TorusReference{
		Kappa1: 1 / tubeRadius,
		Kappa2: cosV / rxy,
		T1:     r3.Vector{X: -cosU * sinV, Y: -sinU * sinV, Z: cosV},
		T2:     r3.Vector{X: -sinU, Y: cosU},
	}
}
