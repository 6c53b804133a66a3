package gocurv

import "github.com/golang/geo/r3"

// OrientationClass labels the local surface patch type found by the normal
// voting pass.
type OrientationClass int

const (
	// ClassSurfacePatch marks a node with one dominant normal direction.
	ClassSurfacePatch OrientationClass = iota
	// ClassCreaseJunction marks a node on a crease or junction between patches.
	ClassCreaseJunction
	// ClassNoOrientation marks a node with no preferred orientation.
	ClassNoOrientation
)

func (c OrientationClass) String() string {
	switch c {
	case ClassSurfacePatch:
		return "surface_patch"
	case ClassCreaseJunction:
		return "crease_junction"
	case ClassNoOrientation:
		return "no_preferred_orientation"
	default:
		return "unknown"
	}
}

// Method selects how the second pass recovers principal curvatures.
type Method int

const (
	// MethodTensorVoting accumulates a curvature tensor from normal-curvature
	// weighted tangent votes.
	MethodTensorVoting Method = iota
	// MethodCurveFitting samples neighbors along the two candidate principal
	// directions and fits parabolas.
	MethodCurveFitting
)

func (m Method) String() string {
	switch m {
	case MethodTensorVoting:
		return "tensor-voting"
	case MethodCurveFitting:
		return "curve-fitting"
	default:
		return "unknown"
	}
}

// CurvatureRecord is the per-node output of the pipeline. T1 and T2 are unit
// principal directions, mutually orthogonal and orthogonal to Normal, with
// Kappa1 >= Kappa2.
type CurvatureRecord struct {
	NodeID int64
	Point  r3.Vector

	Normal r3.Vector // refined normal estimate
	T1     r3.Vector // maximal principal direction
	T2     r3.Vector // minimal principal direction
	Kappa1 float64   // maximal principal curvature
	Kappa2 float64   // minimal principal curvature

	GaussCurvature float64 // Kappa1 * Kappa2
	MeanCurvature  float64 // (Kappa1 + Kappa2) / 2
	ShapeIndex     float64 // (2/pi) * atan2(Kappa1+Kappa2, Kappa1-Kappa2)
	Curvedness     float64 // sqrt((Kappa1^2 + Kappa2^2) / 2)

	Class OrientationClass
	// LowConfidence is set when the neighborhood was too small or too
	// degenerate for a curvature estimate; such records carry zero curvatures
	// and an arbitrary orthonormal tangent basis.
	LowConfidence bool
}

// Result is the output of Estimate.
type Result struct {
	// Records holds one entry per retained node, ordered by node id.
	Records []CurvatureRecord

	// EmptyAfterFiltering is true when the border and component purges removed
	// every node. This is a legitimate terminal state, not an error.
	EmptyAfterFiltering bool

	// Radius is the resolved geodesic neighborhood radius.
	Radius float64

	// LowConfidenceCount is the number of records flagged LowConfidence.
	LowConfidenceCount int
	// ClassCounts indexes node counts by OrientationClass.
	ClassCounts [3]int
}
