package gocurv

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestPerpendicularVector(t *testing.T) {
	cases := []r3.Vector{
		{X: 1}, {Y: 1}, {Z: 1},
		{X: 1, Y: 2, Z: 3},
		{X: -0.5, Z: 2},
		{Y: 1e-8},
	}
	for _, v := range cases {
		p := perpendicularVector(v)
		if math.Abs(p.Norm()-1) > 1e-12 {
			t.Errorf("perpendicularVector(%v) has norm %g, want 1", v, p.Norm())
		}
		if dot := math.Abs(p.Dot(v)); dot > 1e-12*v.Norm() {
			t.Errorf("perpendicularVector(%v) not perpendicular: dot %g", v, dot)
		}
	}

	if p := perpendicularVector(r3.Vector{}); p != (r3.Vector{}) {
		t.Errorf("perpendicularVector(zero) = %v, want zero", p)
	}
}

func TestTangentBasis_Orthonormal(t *testing.T) {
	n := r3.Vector{X: 1, Y: -2, Z: 0.5}.Normalize()
	e1, e2 := tangentBasis(n)
	for name, v := range map[string]r3.Vector{"e1": e1, "e2": e2} {
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Errorf("%s has norm %g", name, v.Norm())
		}
		if dot := math.Abs(v.Dot(n)); dot > 1e-12 {
			t.Errorf("%s not tangent: dot with normal %g", name, dot)
		}
	}
	if dot := math.Abs(e1.Dot(e2)); dot > 1e-12 {
		t.Errorf("e1 and e2 not orthogonal: dot %g", dot)
	}
}

func TestTangentProject(t *testing.T) {
	n := r3.Vector{Z: 1}
	v := r3.Vector{X: 3, Y: 4, Z: 7}
	p, ok := tangentProject(v, n)
	if !ok {
		t.Fatal("projection reported as degenerate")
	}
	want := r3.Vector{X: 0.6, Y: 0.8}
	if p.Sub(want).Norm() > 1e-12 {
		t.Errorf("projection %v, want %v", p, want)
	}

	if _, ok := tangentProject(r3.Vector{Z: 5}, n); ok {
		t.Error("projection of a normal-parallel vector should be degenerate")
	}
}

func TestEigenSym2(t *testing.T) {
	// [[2 1] [1 2]] has eigenvalues 3 and 1, leading eigenvector (1,1)/sqrt2.
	l1, l2, c, s := eigenSym2(2, 1, 2)
	if math.Abs(l1-3) > 1e-12 || math.Abs(l2-1) > 1e-12 {
		t.Errorf("eigenvalues (%g, %g), want (3, 1)", l1, l2)
	}
	inv := 1 / math.Sqrt2
	if math.Abs(c-inv) > 1e-12 || math.Abs(s-inv) > 1e-12 {
		t.Errorf("eigenvector (%g, %g), want (%g, %g)", c, s, inv, inv)
	}

	// Diagonal matrices keep the axis directions.
	l1, l2, c, s = eigenSym2(5, 0, 2)
	if l1 != 5 || l2 != 2 || c != 1 || s != 0 {
		t.Errorf("diag(5,2): got l=(%g,%g) v=(%g,%g)", l1, l2, c, s)
	}
	l1, l2, c, s = eigenSym2(2, 0, 5)
	if l1 != 5 || l2 != 2 || c != 0 || s != 1 {
		t.Errorf("diag(2,5): got l=(%g,%g) v=(%g,%g)", l1, l2, c, s)
	}
}

func TestEigenSym3_Descending(t *testing.T) {
	var acc accumTensor
	acc.addOuter(r3.Vector{X: 1}, 3)
	acc.addOuter(r3.Vector{Y: 1}, 1)
	acc.addOuter(r3.Vector{Z: 1}, 2)

	vals, vecs, ok := eigenSym3(acc.sym())
	if !ok {
		t.Fatal("factorization failed")
	}
	want := [3]float64{3, 2, 1}
	axes := [3]r3.Vector{{X: 1}, {Z: 1}, {Y: 1}}
	for i := range vals {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("eigenvalue %d = %g, want %g", i, vals[i], want[i])
		}
		if d := math.Abs(vecs[i].Dot(axes[i])); math.Abs(d-1) > 1e-12 {
			t.Errorf("eigenvector %d = %v, want +-%v", i, vecs[i], axes[i])
		}
	}
}

func TestDerivedScalars(t *testing.T) {
	// Unit sphere point: cap-shaped, shape index 1.
	gauss, mean, si, cv := derivedScalars(1, 1)
	if gauss != 1 || mean != 1 || math.Abs(si-1) > 1e-12 || math.Abs(cv-1) > 1e-12 {
		t.Errorf("sphere: got (%g, %g, %g, %g)", gauss, mean, si, cv)
	}

	// Symmetric saddle: shape index 0.
	gauss, mean, si, cv = derivedScalars(1, -1)
	if gauss != -1 || mean != 0 || si != 0 || math.Abs(cv-1) > 1e-12 {
		t.Errorf("saddle: got (%g, %g, %g, %g)", gauss, mean, si, cv)
	}

	// Flat point: everything zero, including the shape index.
	gauss, mean, si, cv = derivedScalars(0, 0)
	if gauss != 0 || mean != 0 || si != 0 || cv != 0 {
		t.Errorf("flat: got (%g, %g, %g, %g)", gauss, mean, si, cv)
	}

	// Cylinder point: ridge, shape index 1/2.
	_, _, si, _ = derivedScalars(1, 0)
	if math.Abs(si-0.5) > 1e-12 {
		t.Errorf("cylinder: shape index %g, want 0.5", si)
	}
}
