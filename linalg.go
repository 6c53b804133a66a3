package gocurv

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// perpendicularVector returns a unit vector perpendicular to v, picking a
// stable axis pair by v's first non-zero component. Returns the zero vector
// for zero input.
func perpendicularVector(v r3.Vector) r3.Vector {
	c := [3]float64{v.X, v.Y, v.Z}
	m := 0
	for m = 0; m < 3; m++ {
		if c[m] != 0 {
			break
		}
	}
	if m == 3 {
		return r3.Vector{}
	}
	n := (m + 1) % 3
	var out [3]float64
	out[n] = c[m]
	out[m] = -c[n]
	p := r3.Vector{X: out[0], Y: out[1], Z: out[2]}
	return p.Normalize()
}

// tangentBasis returns two orthonormal vectors spanning the plane
// perpendicular to the unit normal n.
func tangentBasis(n r3.Vector) (r3.Vector, r3.Vector) {
	e1 := perpendicularVector(n)
	e2 := n.Cross(e1).Normalize()
	return e1, e2
}

// tangentProject projects v onto the tangent plane of the unit normal n and
// normalizes. Returns false when the projection is numerically negligible.
func tangentProject(v, n r3.Vector) (r3.Vector, bool) {
	t := v.Sub(n.Mul(v.Dot(n)))
	norm := t.Norm()
	if norm < 1e-12 {
		return r3.Vector{}, false
	}
	return t.Mul(1 / norm), true
}

// accumTensor is a symmetric 3x3 accumulator for weighted outer products,
// stored row-major like the covariance accumulation in the first-pass tensor.
type accumTensor [9]float64

// addOuter adds w * v v^T.
func (a *accumTensor) addOuter(v r3.Vector, w float64) {
	a[0] += w * v.X * v.X
	a[1] += w * v.X * v.Y
	a[2] += w * v.X * v.Z
	a[4] += w * v.Y * v.Y
	a[5] += w * v.Y * v.Z
	a[8] += w * v.Z * v.Z
}

// sym materializes the accumulator as a gonum symmetric matrix.
func (a *accumTensor) sym() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		a[0], a[1], a[2],
		a[1], a[4], a[5],
		a[2], a[5], a[8],
	})
}

// eigenSym3 factorizes a symmetric 3x3 tensor and returns eigenvalues in
// descending order with matching unit eigenvectors.
func eigenSym3(s *mat.SymDense) (vals [3]float64, vecs [3]r3.Vector, ok bool) {
	var eigen mat.EigenSym
	if !eigen.Factorize(s, true) {
		return vals, vecs, false
	}
	ev := eigen.Values(nil)
	var m mat.Dense
	eigen.VectorsTo(&m)
	// gonum returns ascending eigenvalues; reverse to descending.
	for i := 0; i < 3; i++ {
		col := 2 - i
		vals[i] = ev[col]
		vecs[i] = r3.Vector{X: m.At(0, col), Y: m.At(1, col), Z: m.At(2, col)}
	}
	return vals, vecs, true
}
