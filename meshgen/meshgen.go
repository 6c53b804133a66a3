// Package meshgen generates triangulated benchmark surfaces with known
// analytic curvature: planes, open cylinders, UV spheres, and tori. Normals
// point inward (toward the local center of curvature) so that curvatures are
// positive by the estimator's sign convention; use Invert for the outward
// convention.
package meshgen

import (
	"math"
	"math/rand"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/GrotjahnLab/gocurv"
)

// newTriangle assembles a face from three vertices, computing the geometric
// normal and area, with the normal oriented along the hint direction.
func newTriangle(a, b, c, hint r3.Vector) (gocurv.Triangle, bool) {
	cross := b.Sub(a).Cross(c.Sub(a))
	area := cross.Norm() / 2
	if area == 0 {
		return gocurv.Triangle{}, false
	}
	n := cross.Mul(1 / (2 * area))
	if n.Dot(hint) < 0 {
		n = n.Mul(-1)
	}
	return gocurv.Triangle{V: [3]r3.Vector{a, b, c}, Normal: n, Area: area}, true
}

func appendQuad(tris []gocurv.Triangle, a, b, c, d, hint r3.Vector) []gocurv.Triangle {
	if t, ok := newTriangle(a, b, c, hint); ok {
		tris = append(tris, t)
	}
	if t, ok := newTriangle(a, c, d, hint); ok {
		tris = append(tris, t)
	}
	return tris
}

// Plane generates a square planar patch in the XY plane centered at the
// origin, spanning [-halfSize, halfSize] with res divisions per axis. Normals
// point along +Z.
func Plane(halfSize float64, res int) []gocurv.Triangle {
	up := r3.Vector{Z: 1}
	step := 2 * halfSize / float64(res)
	at := func(i, j int) r3.Vector {
		return r3.Vector{X: -halfSize + float64(i)*step, Y: -halfSize + float64(j)*step}
	}
	var tris []gocurv.Triangle
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			tris = appendQuad(tris, at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1), up)
		}
	}
	return tris
}

// Cylinder generates an open cylinder (no caps) of the given radius and
// height, axis along Z from 0 to height, with res segments around the
// circumference and hres along the axis. Normals point toward the axis.
func Cylinder(radius, height float64, res, hres int) []gocurv.Triangle {
	at := func(i, j int) r3.Vector {
		u := 2 * math.Pi * float64(i%res) / float64(res)
		return r3.Vector{
			X: radius * math.Cos(u),
			Y: radius * math.Sin(u),
			Z: height * float64(j) / float64(hres),
		}
	}
	var tris []gocurv.Triangle
	for i := 0; i < res; i++ {
		for j := 0; j < hres; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			center := a.Add(b).Add(c).Add(d).Mul(0.25)
			hint := r3.Vector{X: -center.X, Y: -center.Y}
			tris = appendQuad(tris, a, b, c, d, hint)
		}
	}
	return tris
}

// Sphere generates a closed UV sphere of the given radius centered at the
// origin, with latRes latitude bands and lonRes longitude segments, the polar
// bands built as triangle fans to avoid degenerate faces. Normals point
// toward the center.
func Sphere(radius float64, latRes, lonRes int) []gocurv.Triangle {
	at := func(i, j int) r3.Vector {
		phi := math.Pi * float64(i) / float64(latRes)
		theta := 2 * math.Pi * float64(j%lonRes) / float64(lonRes)
		return r3.Vector{
			X: radius * math.Sin(phi) * math.Cos(theta),
			Y: radius * math.Sin(phi) * math.Sin(theta),
			Z: radius * math.Cos(phi),
		}
	}
	north := r3.Vector{Z: radius}
	south := r3.Vector{Z: -radius}

	var tris []gocurv.Triangle
	inward := func(pts ...r3.Vector) r3.Vector {
		var c r3.Vector
		for _, p := range pts {
			c = c.Add(p)
		}
		return c.Mul(-1)
	}
	for j := 0; j < lonRes; j++ {
		a, b := at(1, j), at(1, j+1)
		if t, ok := newTriangle(north, a, b, inward(north, a, b)); ok {
			tris = append(tris, t)
		}
		a, b = at(latRes-1, j), at(latRes-1, j+1)
		if t, ok := newTriangle(south, b, a, inward(south, a, b)); ok {
			tris = append(tris, t)
		}
	}
	for i := 1; i < latRes-1; i++ {
		for j := 0; j < lonRes; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			tris = appendQuad(tris, a, b, c, d, inward(a, b, c, d))
		}
	}
	return tris
}

// Torus generates a closed torus with the given ring (major) and tube
// (minor) radii, the ring in the XY plane centered at the origin, with uRes
// segments around the ring and vRes around the tube. Normals point toward
// the local tube center.
func Torus(ringRadius, tubeRadius float64, uRes, vRes int) []gocurv.Triangle {
	at := func(i, j int) r3.Vector {
		u := 2 * math.Pi * float64(i%uRes) / float64(uRes)
		v := 2 * math.Pi * float64(j%vRes) / float64(vRes)
		r := ringRadius + tubeRadius*math.Cos(v)
		return r3.Vector{X: r * math.Cos(u), Y: r * math.Sin(u), Z: tubeRadius * math.Sin(v)}
	}
	var tris []gocurv.Triangle
	for i := 0; i < uRes; i++ {
		for j := 0; j < vRes; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			center := a.Add(b).Add(c).Add(d).Mul(0.25)
			tris = appendQuad(tris, a, b, c, d, tubeCenter(ringRadius, center).Sub(center))
		}
	}
	return tris
}

// tubeCenter returns the point on the torus ring circle nearest to p.
func tubeCenter(ringRadius float64, p r3.Vector) r3.Vector {
	rxy := math.Hypot(p.X, p.Y)
	if rxy == 0 {
		return r3.Vector{X: ringRadius}
	}
	return r3.Vector{X: ringRadius * p.X / rxy, Y: ringRadius * p.Y / rxy}
}

// Invert flips all face normals, switching between the inward and outward
// curvature sign conventions.
func Invert(tris []gocurv.Triangle) []gocurv.Triangle {
	out := make([]gocurv.Triangle, len(tris))
	for i, t := range tris {
		t.Normal = t.Normal.Mul(-1)
		out[i] = t
	}
	return out
}

// AddNoise displaces every distinct mesh vertex along its average face normal
// by a Gaussian offset with sigma = percent/100 of the average edge length,
// then rebuilds face normals and areas. Shared vertices move together so the
// mesh stays watertight.
func AddNoise(tris []gocurv.Triangle, percent float64, rng *rand.Rand) []gocurv.Triangle {
	normals := make(map[r3.Vector]r3.Vector)
	var edgeSum float64
	var edgeCount int
	for _, t := range tris {
		for i, v := range t.V {
			normals[v] = normals[v].Add(t.Normal)
			edgeSum += t.V[i].Sub(t.V[(i+1)%3]).Norm()
			edgeCount++
		}
	}
	sigma := percent / 100 * edgeSum / float64(edgeCount)

	// Map iteration order is random; displace in a sorted pass so the same
	// seed always produces the same surface.
	displaced := make(map[r3.Vector]r3.Vector, len(normals))
	for _, v := range sortedKeys(normals) {
		displaced[v] = v
		if n := normals[v]; n.Norm() > 0 {
			displaced[v] = v.Add(n.Normalize().Mul(rng.NormFloat64() * sigma))
		}
	}

	out := make([]gocurv.Triangle, 0, len(tris))
	for _, t := range tris {
		nt, ok := newTriangle(displaced[t.V[0]], displaced[t.V[1]], displaced[t.V[2]], t.Normal)
		if !ok {
			continue
		}
		out = append(out, nt)
	}
	return out
}

func sortedKeys(m map[r3.Vector]r3.Vector) []r3.Vector {
	keys := make([]r3.Vector, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return keys
}
