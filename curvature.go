package gocurv

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// principalResult is the outcome of the curvature pass for one node.
type principalResult struct {
	T1, T2         r3.Vector
	Kappa1, Kappa2 float64
	LowConfidence  bool
}

// lowConfidenceResult returns the degenerate fallback: zero curvatures and an
// arbitrary orthonormal basis of the tangent plane.
func lowConfidenceResult(normal r3.Vector) principalResult {
	e1, e2 := tangentBasis(normal)
	return principalResult{T1: e1, T2: e2, LowConfidence: true}
}

// estimateCurvature recovers the principal directions and curvatures of one
// node from its neighborhood, using the refined normal to define the tangent
// plane. The curvature tensor accumulates, per neighbor, the estimated normal
// curvature toward that neighbor times the outer product of the
// tangent-projected direction; Taubin's correction maps the weight-normalized
// tensor eigenvalues (m1 >= m2) to kappa1 = 3*m1 - m2, kappa2 = 3*m2 - m1.
// With the curve-fitting method the tensor still supplies the directions, but
// the curvatures come from parabola fits along them.
//
// Neighborhoods with fewer than three usable directions, or with all
// directions collinear, produce a zero-curvature low-confidence result
// instead of failing.
func estimateCurvature(sg *SurfaceGraph, node *SurfaceNode, nbrs []Neighbor,
	radius, maxArea float64, cfg Config,
) principalResult {
	n := node.Normal
	e1, e2 := tangentBasis(n)
	if e1 == (r3.Vector{}) {
		return lowConfidenceResult(r3.Vector{Z: 1})
	}

	// Accumulate the 2x2 curvature tensor in the (e1, e2) tangent basis,
	// plus an unweighted direction scatter for the degeneracy check.
	var b11, b12, b22, sumW float64
	var s11, s12, s22 float64
	valid := 0
	for _, nb := range nbrs {
		nj := sg.Node(nb.ID)
		if nj == nil {
			continue
		}
		v := nj.Center.Sub(node.Center)
		t, ok := tangentProject(v, n)
		if !ok {
			continue
		}
		// Normal curvature toward the neighbor: 2 * n.v / |v|^2, positive when
		// the surface bends toward its normal. Exact on a sphere.
		kappa := 2 * n.Dot(v) / v.Norm2()
		w := decay(nb.Dist, radius)
		if cfg.WeightCurvatureByArea {
			w *= nj.Area / maxArea
		}
		tx, ty := t.Dot(e1), t.Dot(e2)
		b11 += w * kappa * tx * tx
		b12 += w * kappa * tx * ty
		b22 += w * kappa * ty * ty
		s11 += tx * tx
		s12 += tx * ty
		s22 += ty * ty
		sumW += w
		valid++
	}

	if valid < 3 || sumW <= 0 {
		return lowConfidenceResult(n)
	}
	// All tangent directions collinear: the tensor cannot span the plane.
	if _, smin, _, _ := eigenSym2(s11, s12, s22); smin < 1e-9*float64(valid) {
		return lowConfidenceResult(n)
	}

	m1, m2, c, s := eigenSym2(b11/sumW, b12/sumW, b22/sumW)
	t1 := e1.Mul(c).Add(e2.Mul(s)).Normalize()
	t2 := n.Cross(t1)

	res := principalResult{
		T1:     t1,
		T2:     t2,
		Kappa1: 3*m1 - m2,
		Kappa2: 3*m2 - m1,
	}
	if cfg.Method == MethodCurveFitting {
		res = fitCurvatures(sg, node, nbrs, res, cfg.NumPoints)
	}
	return res
}

// eigenSym2 solves the symmetric 2x2 eigenproblem analytically, returning
// eigenvalues l1 >= l2 and the (c, s) components of the unit eigenvector for
// l1 in the accumulation basis.
func eigenSym2(a11, a12, a22 float64) (l1, l2, c, s float64) {
	half := (a11 + a22) / 2
	disc := math.Hypot((a11-a22)/2, a12)
	l1 = half + disc
	l2 = half - disc
	if a12 != 0 {
		norm := math.Hypot(a12, l1-a11)
		c, s = a12/norm, (l1-a11)/norm
	} else if a11 >= a22 {
		c, s = 1, 0
	} else {
		c, s = 0, 1
	}
	return l1, l2, c, s
}

// fitCurvatures re-estimates the two principal curvatures by least-squares
// parabola fits along the candidate principal directions, keeping the tensor
// estimate for a direction with too few usable samples. Directions are
// reordered afterward so that Kappa1 >= Kappa2 holds again.
func fitCurvatures(sg *SurfaceGraph, node *SurfaceNode, nbrs []Neighbor,
	tensor principalResult, numPoints int,
) principalResult {
	n := node.Normal
	k1, ok1 := fitParabola(sg, node, n, tensor.T1, nbrs, numPoints)
	if !ok1 {
		k1 = tensor.Kappa1
	}
	k2, ok2 := fitParabola(sg, node, n, tensor.T2, nbrs, numPoints)
	if !ok2 {
		k2 = tensor.Kappa2
	}

	res := tensor
	res.Kappa1, res.Kappa2 = k1, k2
	if res.Kappa1 < res.Kappa2 {
		res.Kappa1, res.Kappa2 = res.Kappa2, res.Kappa1
		res.T1, res.T2 = res.T2, res.T1
	}
	return res
}

// fitParabola fits y = a*x^2 through the node along one tangent direction,
// where x is the displacement along the direction and y the displacement
// along the normal, using the nearest numPoints neighbors whose tangent
// projection lies within 30 degrees of the direction. The normal curvature is
// 2a. Reports false with fewer than three samples.
func fitParabola(sg *SurfaceGraph, node *SurfaceNode, n, dir r3.Vector,
	nbrs []Neighbor, numPoints int,
) (float64, bool) {
	const minAlign = 0.866 // cos(30 deg)

	type sample struct{ x, y float64 }
	var samples []sample
	for _, nb := range nbrs {
		nj := sg.Node(nb.ID)
		if nj == nil {
			continue
		}
		v := nj.Center.Sub(node.Center)
		t, ok := tangentProject(v, n)
		if !ok {
			continue
		}
		if math.Abs(t.Dot(dir)) < minAlign {
			continue
		}
		samples = append(samples, sample{x: v.Dot(dir), y: v.Dot(n)})
	}
	if len(samples) < 3 {
		return 0, false
	}
	sort.Slice(samples, func(i, j int) bool {
		return math.Abs(samples[i].x) < math.Abs(samples[j].x)
	})
	if len(samples) > numPoints {
		samples = samples[:numPoints]
	}

	// Least squares for the single coefficient: a = sum(x^2 y) / sum(x^4).
	var num, den float64
	for _, s := range samples {
		x2 := s.x * s.x
		num += x2 * s.y
		den += x2 * x2
	}
	if den == 0 {
		return 0, false
	}
	return 2 * num / den, true
}

// derivedScalars computes the scalar curvature fields from the principal
// curvatures: Gaussian and mean curvature, shape index, and curvedness.
func derivedScalars(k1, k2 float64) (gauss, mean, shapeIndex, curvedness float64) {
	gauss = k1 * k2
	mean = (k1 + k2) / 2
	shapeIndex = (2 / math.Pi) * math.Atan2(k1+k2, k1-k2)
	curvedness = math.Sqrt((k1*k1 + k2*k2) / 2)
	return gauss, mean, shapeIndex, curvedness
}
