// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package delaunay implements a sweep-hull Delaunay triangulation of a
// planar point set.
//
// Points are inserted in order of distance from the circumcenter of a seed
// triangle. Each new point is connected to the visible part of an advancing
// convex hull, and the new edges are flipped until they satisfy the Delaunay
// condition. Visible hull edges are found through a small hash keyed by the
// pseudo-angle around the seed center, which keeps the whole build at
// O(n log n) for well distributed input.
//
// The result depends only on the input coordinates and order, so a fixed
// point set always yields the same triangle list.
package delaunay

import (
	"errors"
	"math"
	"slices"

	"github.com/gogpu/facemorph/geom"
)

// Sentinel errors for delaunay package.
var (
	// ErrTooFewPoints is returned for fewer than 3 input points.
	ErrTooFewPoints = errors.New("delaunay: need at least 3 points")

	// ErrCollinear is returned when no three input points span a triangle.
	ErrCollinear = errors.New("delaunay: all points are collinear")
)

const (
	// duplicateEps is the squared distance below which consecutive points in
	// sweep order are treated as duplicates.
	duplicateEps = 1e-9
)

var infinity = math.Inf(1)

// Triangulate returns the triangles of a Delaunay triangulation of points as
// index triples into points. Triangles are counter-clockwise in a y-up frame.
func Triangulate(points []geom.Point) ([][3]int, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	s := &sweep{points: points}
	if err := s.run(); err != nil {
		return nil, err
	}

	tris := make([][3]int, 0, len(s.triangles)/3)
	for i := 0; i < len(s.triangles); i += 3 {
		tris = append(tris, [3]int{s.triangles[i], s.triangles[i+1], s.triangles[i+2]})
	}
	return tris, nil
}

// sweep holds the working state of one triangulation.
type sweep struct {
	points []geom.Point
	center geom.Point

	// triangles holds corner indices, three per triangle; halfedges[e] is the
	// opposite half-edge of e in the adjacent triangle, or -1 on the hull.
	triangles []int
	halfedges []int
	n         int

	hull *hullNode
	hash []*hullNode
}

func (s *sweep) run() error {
	points := s.points
	n := len(points)

	bounds := geom.Bounds(points)
	mid := bounds.Min.Lerp(bounds.Max, 0.5)

	// Seed point closest to the middle of the bounding box.
	i0 := 0
	best := infinity
	for i, p := range points {
		if d := squaredDistance(p, mid); d < best {
			i0, best = i, d
		}
	}

	// Nearest distinct neighbour of the seed.
	i1 := -1
	best = infinity
	for i, p := range points {
		if i == i0 {
			continue
		}
		if d := squaredDistance(p, points[i0]); d > 0 && d < best {
			i1, best = i, d
		}
	}
	if i1 < 0 {
		return ErrCollinear
	}

	// Third point forming the smallest circumcircle.
	i2 := -1
	best = infinity
	for i, p := range points {
		if i == i0 || i == i1 {
			continue
		}
		if r := circumradius(points[i0], points[i1], p); r < best {
			i2, best = i, r
		}
	}
	if i2 < 0 {
		return ErrCollinear
	}

	if orient(points[i0], points[i1], points[i2]) < 0 {
		i1, i2 = i2, i1
	}
	s.center = circumcenter(points[i0], points[i1], points[i2])

	// Sweep order: distance from the seed circumcenter, then x, then y.
	dist := make([]float64, n)
	ids := make([]int, n)
	for i, p := range points {
		dist[i] = squaredDistance(p, s.center)
		ids[i] = i
	}
	slices.SortFunc(ids, func(a, b int) int {
		if dist[a] != dist[b] {
			if dist[a] < dist[b] {
				return -1
			}
			return 1
		}
		pa, pb := points[a], points[b]
		switch {
		case pa.X < pb.X:
			return -1
		case pa.X > pb.X:
			return 1
		case pa.Y < pb.Y:
			return -1
		case pa.Y > pb.Y:
			return 1
		}
		return a - b
	})

	s.hash = make([]*hullNode, int(math.Ceil(math.Sqrt(float64(n)))))
	nodes := make([]hullNode, n)

	e := insertNode(nodes, i0, nil)
	e.t = 0
	s.hashEdge(e)
	e = insertNode(nodes, i1, e)
	e.t = 1
	s.hashEdge(e)
	e = insertNode(nodes, i2, e)
	e.t = 2
	s.hashEdge(e)
	s.hull = e

	maxTriangles := 2*n - 5
	s.triangles = make([]int, maxTriangles*3)
	s.halfedges = make([]int, maxTriangles*3)
	s.addTriangle(i0, i1, i2, -1, -1, -1)

	prev := geom.Point{X: infinity, Y: infinity}
	for _, i := range ids {
		p := points[i]

		if squaredDistance(p, prev) < duplicateEps {
			continue
		}
		prev = p

		if i == i0 || i == i1 || i == i2 {
			continue
		}

		// Find a visible hull edge starting from the hashed bucket.
		var start *hullNode
		key := s.hashKey(p)
		for range len(s.hash) {
			start = s.hash[key]
			if start != nil && start.i >= 0 {
				break
			}
			key++
			if key >= len(s.hash) {
				key = 0
			}
		}
		start = start.prev

		e := start
		for orient(p, points[e.i], points[e.next.i]) >= 0 {
			e = e.next
			if e == start {
				e = nil
				break
			}
		}
		if e == nil {
			// Near-duplicate of a hull point.
			continue
		}
		walkBack := e == start

		t := s.addTriangle(e.i, i, e.next.i, -1, -1, e.t)
		e.t = t
		e = insertNode(nodes, i, e)
		e.t = s.legalize(t + 2)

		// Walk forward along the hull.
		q := e.next
		for orient(p, points[q.i], points[q.next.i]) < 0 {
			t = s.addTriangle(q.i, i, q.next.i, q.prev.t, -1, q.t)
			q.prev.t = s.legalize(t + 2)
			s.hull = q.remove()
			q = q.next
		}

		if walkBack {
			// Walk backward from the other side.
			q := e.prev
			for orient(p, points[q.prev.i], points[q.i]) < 0 {
				t = s.addTriangle(q.prev.i, i, q.i, -1, q.t, q.prev.t)
				s.legalize(t + 2)
				q.prev.t = t
				s.hull = q.remove()
				q = q.prev
			}
		}

		s.hashEdge(e)
		s.hashEdge(e.prev)
	}

	s.triangles = s.triangles[:s.n]
	s.halfedges = s.halfedges[:s.n]
	return nil
}

func (s *sweep) hashKey(p geom.Point) int {
	d := p.Sub(s.center)
	return int(pseudoAngle(d.X, d.Y) * float64(len(s.hash)))
}

func (s *sweep) hashEdge(e *hullNode) {
	s.hash[s.hashKey(s.points[e.i])] = e
}

// addTriangle appends triangle (i0, i1, i2) whose edges are linked to the
// half-edges a, b, c, and returns the index of its first half-edge.
func (s *sweep) addTriangle(i0, i1, i2, a, b, c int) int {
	i := s.n
	s.triangles[i] = i0
	s.triangles[i+1] = i1
	s.triangles[i+2] = i2
	s.link(i, a)
	s.link(i+1, b)
	s.link(i+2, c)
	s.n += 3
	return i
}

func (s *sweep) link(a, b int) {
	s.halfedges[a] = b
	if b >= 0 {
		s.halfedges[b] = a
	}
}

// legalize flips half-edge a and its twin when the opposite corner of the
// neighbouring triangle falls inside the circumcircle, recursing into the
// two edges exposed by the flip:
//
//	         pl                    pl
//	        /||\                  /  \
//	     al/ || \bl            al/    \a
//	      /  ||  \              /      \
//	     /  a||b  \    flip    /___ar___\
//	   p0\   ||   /p1   =>   p0\---bl---/p1
//	      \  ||  /              \      /
//	     ar\ || /br             b\    /br
//	        \||/                  \  /
//	         pr                    pr
func (s *sweep) legalize(a int) int {
	b := s.halfedges[a]

	a0 := a - a%3
	ar := a0 + (a+2)%3
	if b < 0 {
		return ar
	}

	b0 := b - b%3
	al := a0 + (a+1)%3
	bl := b0 + (b+2)%3

	p0 := s.triangles[ar]
	pr := s.triangles[a]
	pl := s.triangles[al]
	p1 := s.triangles[bl]

	if !inCircle(s.points[p0], s.points[pr], s.points[pl], s.points[p1]) {
		return ar
	}

	s.triangles[a] = p1
	s.triangles[b] = p0

	// The flipped edge was on the hull: repoint the hull node that
	// referenced bl.
	if s.halfedges[bl] == -1 {
		e := s.hull
		for {
			if e.t == bl {
				e.t = a
				break
			}
			e = e.next
			if e == s.hull {
				break
			}
		}
	}

	s.link(a, s.halfedges[bl])
	s.link(b, s.halfedges[ar])
	s.link(ar, bl)

	br := b0 + (b+1)%3
	s.legalize(a)
	return s.legalize(br)
}
