package gocurv

import (
	"math"

	"github.com/golang/geo/r3"
)

// decay is the vote attenuation over geodesic distance g for a neighborhood
// radius r: exp(-g / (r/3)), smooth and monotonically non-increasing, about
// 5% of the peak weight at the radius boundary so the cutoff introduces no
// sharp discontinuity.
func decay(g, radius float64) float64 {
	return math.Exp(-3 * g / radius)
}

// normalVote is the vote a neighbor with unit normal nj casts at a receiver
// reached along the unit direction d: nj reflected across the plane normal to
// d. On a plane the vote equals nj; on a sphere it reproduces the receiver's
// normal exactly.
func normalVote(nj, d r3.Vector) r3.Vector {
	return nj.Sub(d.Mul(2 * nj.Dot(d)))
}

// estimateNormal runs the normal voting step for one node: accumulate the
// voting tensor over the neighborhood, eigen-decompose it, classify the local
// patch type by the eigenvalue gaps, and return the refined normal.
//
// Classification: lambda1-lambda2 >= epsilon*lambda1 means surface patch
// (inclusive, so epsilon = eta = 0 classifies every node as a surface patch);
// else lambda2-lambda3 > eta*lambda1 means crease junction; else no preferred
// orientation. Only surface patches adopt the refined normal; other classes
// keep the input normal as a best effort.
func estimateNormal(sg *SurfaceGraph, node *SurfaceNode, nbrs []Neighbor,
	radius, maxArea, epsilon, eta float64,
) (r3.Vector, OrientationClass) {
	if len(nbrs) == 0 {
		return node.Normal, ClassNoOrientation
	}

	var acc accumTensor
	for _, nb := range nbrs {
		nj := sg.Node(nb.ID)
		if nj == nil {
			continue
		}
		d := nj.Center.Sub(node.Center)
		norm := d.Norm()
		if norm == 0 {
			continue
		}
		d = d.Mul(1 / norm)
		w := (nj.Area / maxArea) * decay(nb.Dist, radius)
		acc.addOuter(normalVote(nj.Normal, d), w)
	}

	vals, vecs, ok := eigenSym3(acc.sym())
	if !ok {
		return node.Normal, ClassNoOrientation
	}

	switch {
	case vals[0]-vals[1] >= epsilon*vals[0]:
		n := vecs[0]
		// Votes are direction-agnostic; orient along the input normal.
		if n.Dot(node.Normal) < 0 {
			n = n.Mul(-1)
		}
		return n, ClassSurfacePatch
	case vals[1]-vals[2] > eta*vals[0]:
		return node.Normal, ClassCreaseJunction
	default:
		return node.Normal, ClassNoOrientation
	}
}
