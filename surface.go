package gocurv

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Triangle is one face of the input surface mesh. The mesh generator supplies
// three vertex positions, a unit normal, and the face area. The normal
// orientation fixes the curvature sign convention: a surface curving toward
// its normals has positive principal curvatures.
type Triangle struct {
	V      [3]r3.Vector // vertex positions
	Normal r3.Vector    // unit normal
	Area   float64      // face area
}

// Center returns the centroid of the triangle, which becomes the graph node
// position.
func (t Triangle) Center() r3.Vector {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Mul(1.0 / 3.0)
}

// validate rejects zero-area triangles and duplicate vertex positions. The
// mesh generator is responsible for pre-filtering these; the graph builder
// refuses them rather than propagating NaNs downstream.
func (t Triangle) validate(idx int) error {
	if t.Area <= 0 {
		return fmt.Errorf("%w: triangle %d has area %g", ErrDegenerateMesh, idx, t.Area)
	}
	if t.V[0] == t.V[1] || t.V[1] == t.V[2] || t.V[0] == t.V[2] {
		return fmt.Errorf("%w: triangle %d has duplicate vertices", ErrDegenerateMesh, idx)
	}
	return nil
}
