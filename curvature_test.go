package gocurv

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

// arcFixture builds a graph whose node centers lie on a sphere of the given
// radius touching the origin from above: the receiver sits at the origin with
// normal +Z and its neighbors at (x, y, h(x, y)) with h the sphere height.
// Triangles share no vertices; the neighbor list is supplied by hand.
func arcFixture(t *testing.T, r float64, offsets []r3.Vector) (*SurfaceGraph, *SurfaceNode, []Neighbor) {
	t.Helper()
	shape := [3]r3.Vector{{X: 0.01}, {X: -0.01, Y: 0.01}, {Y: -0.01}}
	area := shape[1].Sub(shape[0]).Cross(shape[2].Sub(shape[0])).Norm() / 2
	at := func(c r3.Vector) Triangle {
		return Triangle{
			V:      [3]r3.Vector{c.Add(shape[0]), c.Add(shape[1]), c.Add(shape[2])},
			Normal: r3.Vector{Z: 1},
			Area:   area,
		}
	}

	tris := []Triangle{at(r3.Vector{})}
	nbrs := make([]Neighbor, 0, len(offsets))
	for i, off := range offsets {
		rho := math.Hypot(off.X, off.Y)
		c := r3.Vector{X: off.X, Y: off.Y, Z: r - math.Sqrt(r*r-rho*rho)}
		tris = append(tris, at(c))
		nbrs = append(nbrs, Neighbor{ID: int64(i + 1), Dist: rho})
	}
	sg, err := BuildGraph(tris)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	return sg, sg.Node(0), nbrs
}

func ringOffsets(rho float64, count int) []r3.Vector {
	out := make([]r3.Vector, count)
	for i := range out {
		phi := 2 * math.Pi * float64(i) / float64(count)
		out[i] = r3.Vector{X: rho * math.Cos(phi), Y: rho * math.Sin(phi)}
	}
	return out
}

func TestEstimateCurvature_SphericalCap(t *testing.T) {
	// Uniform angular sampling on a sphere of radius 10: Taubin's correction
	// recovers kappa1 = kappa2 = 1/10 exactly up to the chord approximation.
	const r = 10.0
	offsets := append(ringOffsets(1, 8), ringOffsets(2, 8)...)
	sg, node, nbrs := arcFixture(t, r, offsets)

	cfg := DefaultConfig()
	cfg.RadiusHit = 4
	res := estimateCurvature(sg, node, nbrs, 4, sg.maxArea(), cfg)
	if res.LowConfidence {
		t.Fatal("spherical cap flagged low confidence")
	}
	for name, k := range map[string]float64{"kappa1": res.Kappa1, "kappa2": res.Kappa2} {
		if math.Abs(k-1/r) > 0.01/r {
			t.Errorf("%s = %g, want %g within 1%%", name, k, 1/r)
		}
	}
	if res.Kappa1 < res.Kappa2 {
		t.Errorf("kappa1 %g < kappa2 %g", res.Kappa1, res.Kappa2)
	}
	checkRecordFrame(t, node.Normal, res.T1, res.T2)
}

func TestEstimateCurvature_TooFewNeighbors(t *testing.T) {
	sg, node, nbrs := arcFixture(t, 10, ringOffsets(1, 2))
	cfg := DefaultConfig()
	cfg.RadiusHit = 4
	res := estimateCurvature(sg, node, nbrs, 4, sg.maxArea(), cfg)
	if !res.LowConfidence {
		t.Fatal("two neighbors should be low confidence")
	}
	if res.Kappa1 != 0 || res.Kappa2 != 0 {
		t.Errorf("low confidence curvatures (%g, %g), want zero", res.Kappa1, res.Kappa2)
	}
	checkRecordFrame(t, node.Normal, res.T1, res.T2)
}

func TestEstimateCurvature_CollinearNeighbors(t *testing.T) {
	// All neighbors along one tangent line: the direction scatter cannot span
	// the tangent plane.
	offsets := []r3.Vector{{X: 1}, {X: -1}, {X: 2}, {X: -2}}
	sg, node, nbrs := arcFixture(t, 10, offsets)
	cfg := DefaultConfig()
	cfg.RadiusHit = 4
	res := estimateCurvature(sg, node, nbrs, 4, sg.maxArea(), cfg)
	if !res.LowConfidence {
		t.Fatal("collinear neighborhood should be low confidence")
	}
}

func TestFitParabola_CircularArc(t *testing.T) {
	const r = 10.0
	offsets := []r3.Vector{{X: 0.5}, {X: -0.5}, {X: 1}, {X: -1}, {X: 1.5}, {X: -1.5}}
	sg, node, nbrs := arcFixture(t, r, offsets)

	k, ok := fitParabola(sg, node, r3.Vector{Z: 1}, r3.Vector{X: 1}, nbrs, 4)
	if !ok {
		t.Fatal("fit reported too few samples")
	}
	if math.Abs(k-1/r) > 0.02/r {
		t.Errorf("fitted curvature %g, want %g within 2%%", k, 1/r)
	}

	// Neighbors outside the 30-degree cone around the direction do not count.
	if _, ok := fitParabola(sg, node, r3.Vector{Z: 1}, r3.Vector{Y: 1}, nbrs, 4); ok {
		t.Error("perpendicular direction should have no usable samples")
	}
}

func checkRecordFrame(t *testing.T, n, t1, t2 r3.Vector) {
	t.Helper()
	for name, v := range map[string]r3.Vector{"T1": t1, "T2": t2} {
		if math.Abs(v.Norm()-1) > 1e-9 {
			t.Errorf("%s has norm %g", name, v.Norm())
		}
		if d := math.Abs(v.Dot(n)); d > 1e-9 {
			t.Errorf("%s not tangent: dot with normal %g", name, d)
		}
	}
	if d := math.Abs(t1.Dot(t2)); d > 1e-9 {
		t.Errorf("T1 and T2 not orthogonal: dot %g", d)
	}
}
