// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"fmt"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/internal/delaunay"
	"github.com/gogpu/facemorph/internal/logging"
)

// Triangle is an unordered triple of point indices into a Mesh.
type Triangle struct {
	A, B, C int
}

// Indices returns the corners as an array.
func (t Triangle) Indices() [3]int {
	return [3]int{t.A, t.B, t.C}
}

// Has reports whether i is one of the corners.
func (t Triangle) Has(i int) bool {
	return t.A == i || t.B == i || t.C == i
}

// Adjacency maps each vertex index to the indices of the triangles that use
// it as a corner, in ascending triangle order.
type Adjacency [][]int

// Mesh is an immutable triangulation of a landmark point set together with
// its vertex adjacency. It is safe for concurrent readers.
type Mesh struct {
	points    []geom.Point
	triangles []Triangle
	adjacency Adjacency
}

// Triangulate builds a Delaunay triangulation of points and its adjacency.
// The result is deterministic for a given point slice.
//
// It returns a *DegenerateInputError when fewer than 3 points are given or
// all points are collinear.
func Triangulate(points []geom.Point) (*Mesh, error) {
	raw, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, &DegenerateInputError{Points: len(points), Err: err}
	}

	tris := make([]Triangle, len(raw))
	for i, r := range raw {
		tris[i] = Triangle{A: r[0], B: r[1], C: r[2]}
	}

	m := newMesh(points, tris)
	logging.Logger().Debug("mesh: triangulated",
		"points", len(points),
		"triangles", len(tris))
	return m, nil
}

// New builds a Mesh from a precomputed triangulation of points.
// Every corner index must be in range, every triangle must use three
// distinct vertices, and every vertex must belong to at least one triangle.
func New(points []geom.Point, triangles []Triangle) (*Mesh, error) {
	if len(points) < 3 {
		return nil, &DegenerateInputError{Points: len(points), Err: ErrTooFewPoints}
	}
	if len(triangles) == 0 {
		return nil, ErrNoTriangles
	}
	for i, t := range triangles {
		for _, v := range t.Indices() {
			if v < 0 || v >= len(points) {
				return nil, &TriangleIndexError{Triangle: i, Vertex: v, Points: len(points)}
			}
		}
		if t.A == t.B || t.B == t.C || t.A == t.C {
			return nil, fmt.Errorf("%w: triangle %d %v", ErrRepeatedCorner, i, t.Indices())
		}
	}

	m := newMesh(points, triangles)
	for v, inc := range m.adjacency {
		if len(inc) == 0 {
			return nil, &UnusedVertexError{Vertex: v, Points: len(points)}
		}
	}
	return m, nil
}

// FromIndices is like New with the triangles given as a flat index list,
// three entries per triangle.
func FromIndices(points []geom.Point, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index list length %d is not a multiple of 3", len(indices))
	}
	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tris = append(tris, Triangle{A: indices[i], B: indices[i+1], C: indices[i+2]})
	}
	return New(points, tris)
}

func newMesh(points []geom.Point, triangles []Triangle) *Mesh {
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	tris := make([]Triangle, len(triangles))
	copy(tris, triangles)

	return &Mesh{
		points:    pts,
		triangles: tris,
		adjacency: BuildAdjacency(len(pts), tris),
	}
}

// BuildAdjacency returns the vertex-to-triangle index for n vertices.
// Triangle indices are appended in triangle order, so each list is sorted
// and holds every incident triangle exactly once.
func BuildAdjacency(n int, triangles []Triangle) Adjacency {
	adj := make(Adjacency, n)
	for ti, t := range triangles {
		for _, v := range t.Indices() {
			adj[v] = append(adj[v], ti)
		}
	}
	return adj
}

// Len returns the number of vertices.
func (m *Mesh) Len() int { return len(m.points) }

// Point returns vertex i.
func (m *Mesh) Point(i int) geom.Point { return m.points[i] }

// Points returns a copy of the vertices.
func (m *Mesh) Points() []geom.Point {
	out := make([]geom.Point, len(m.points))
	copy(out, m.points)
	return out
}

// NumTriangles returns the number of triangles.
func (m *Mesh) NumTriangles() int { return len(m.triangles) }

// Triangle returns triangle t.
func (m *Mesh) Triangle(t int) Triangle { return m.triangles[t] }

// Triangles returns a copy of the triangle list.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// Incident returns the triangles that have vertex i as a corner.
// The returned slice must not be modified.
func (m *Mesh) Incident(i int) []int {
	if i < 0 || i >= len(m.adjacency) {
		return nil
	}
	return m.adjacency[i]
}

// Area returns the total area covered by the triangles.
func (m *Mesh) Area() float64 {
	var sum float64
	for _, t := range m.triangles {
		sum += geom.TriangleArea(m.points[t.A], m.points[t.B], m.points[t.C])
	}
	return sum
}

// Corners returns the positions of triangle t's corners.
func (m *Mesh) Corners(t int) (a, b, c geom.Point) {
	tri := m.triangles[t]
	return m.points[tri.A], m.points[tri.B], m.points[tri.C]
}
