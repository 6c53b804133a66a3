package gocurv

import "errors"

var (
	// ErrDegenerateMesh is returned when the input mesh contains a zero-area
	// triangle or a triangle with duplicate vertex positions.
	ErrDegenerateMesh = errors.New("mesh contains a degenerate triangle")

	// ErrInvalidConfig is returned when the configuration cannot be resolved,
	// e.g. neither or both of RadiusHit and K are set, or method parameters
	// conflict.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyMesh is returned when the input contains no triangles.
	ErrEmptyMesh = errors.New("mesh contains no triangles")
)
