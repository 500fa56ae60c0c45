// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/facemorph/internal/delaunay"
)

// Sentinel errors for mesh package.
var (
	// ErrTooFewPoints is wrapped by DegenerateInputError for fewer than 3 points.
	ErrTooFewPoints = delaunay.ErrTooFewPoints

	// ErrCollinear is wrapped by DegenerateInputError when all points are collinear.
	ErrCollinear = delaunay.ErrCollinear

	// ErrNoTriangles is returned when a precomputed triangulation is empty.
	ErrNoTriangles = errors.New("mesh: no triangles")

	// ErrRepeatedCorner is returned when a triangle uses a vertex twice.
	ErrRepeatedCorner = errors.New("mesh: triangle repeats a corner")

	// ErrUnusedVertex is wrapped by UnusedVertexError.
	ErrUnusedVertex = errors.New("mesh: vertex belongs to no triangle")
)

// DegenerateInputError is returned when a point set cannot be triangulated:
// fewer than 3 points, or no three points that are not collinear.
type DegenerateInputError struct {
	Points int
	Err    error
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("mesh: cannot triangulate %d points: %v", e.Points, e.Err)
}

func (e *DegenerateInputError) Unwrap() error {
	return e.Err
}

// TriangleIndexError is returned when a precomputed triangle references a
// vertex outside the point set.
type TriangleIndexError struct {
	Triangle int
	Vertex   int
	Points   int
}

func (e *TriangleIndexError) Error() string {
	return fmt.Sprintf("mesh: triangle %d references vertex %d, mesh has %d points", e.Triangle, e.Vertex, e.Points)
}

// UnusedVertexError is returned when a precomputed triangulation leaves a
// vertex outside every triangle, typically a table built for a different
// landmark count.
type UnusedVertexError struct {
	Vertex int
	Points int
}

func (e *UnusedVertexError) Error() string {
	return fmt.Sprintf("mesh: vertex %d of %d belongs to no triangle", e.Vertex, e.Points)
}

func (e *UnusedVertexError) Unwrap() error {
	return ErrUnusedVertex
}
