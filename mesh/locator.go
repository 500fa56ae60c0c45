// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "github.com/gogpu/facemorph/geom"

// Location is the result of locating one query point.
type Location struct {
	// Triangle is the index of the containing triangle, or -1 when Found is false.
	Triangle int

	// Coords are the barycentric weights of the query point relative to the
	// triangle's corners A, B, C.
	Coords geom.Barycentric

	// Found reports whether a containing triangle exists.
	Found bool

	// Scanned reports whether the point was found by the exhaustive scan
	// rather than among its vertex's incident triangles.
	Scanned bool
}

// LocateStats counts the work done by the last Locate call.
type LocateStats struct {
	Queries       int // points located
	AdjacencyHits int // points found among their vertex's incident triangles
	ScanHits      int // points found by the exhaustive scan
	Misses        int // points outside every triangle
	Tests         int // barycentric containment tests performed
}

// Locator finds the triangles containing displaced mesh vertices.
//
// Query i is taken to be the displaced position of vertex i. Its incident
// triangles are probed first since a small displacement usually stays within
// them; only when they all miss does the locator scan the whole triangle list,
// skipping triangles already tested for the same query.
//
// A Locator owns scratch state and is not safe for concurrent use; create
// one per goroutine. The Mesh itself may be shared.
type Locator struct {
	mesh *Mesh
	eps  float64

	// tested[t] is the index of the last query tested against triangle t
	// during the current Locate call, -1 if none.
	tested []int
	stats  LocateStats
}

// NewLocator returns a Locator over m using eps as the barycentric tolerance.
// A non-positive eps selects geom.DefaultEpsilon.
func NewLocator(m *Mesh, eps float64) *Locator {
	if eps <= 0 {
		eps = geom.DefaultEpsilon
	}
	return &Locator{
		mesh:   m,
		eps:    eps,
		tested: make([]int, len(m.triangles)),
	}
}

// Epsilon returns the barycentric tolerance.
func (l *Locator) Epsilon() float64 { return l.eps }

// Locate returns one Location per query, in query order.
func (l *Locator) Locate(queries []geom.Point) []Location {
	return l.LocateInto(make([]Location, len(queries)), queries)
}

// LocateInto is like Locate but writes into dst, which must have at least
// len(queries) elements, and returns dst[:len(queries)].
func (l *Locator) LocateInto(dst []Location, queries []geom.Point) []Location {
	for t := range l.tested {
		l.tested[t] = -1
	}
	l.stats = LocateStats{Queries: len(queries)}

	dst = dst[:len(queries)]
	for i, q := range queries {
		dst[i] = l.locate(i, q)
	}
	return dst
}

// Stats returns the counters of the last Locate call.
func (l *Locator) Stats() LocateStats { return l.stats }

func (l *Locator) locate(i int, q geom.Point) Location {
	for _, t := range l.mesh.Incident(i) {
		if w, ok := l.test(i, t, q); ok {
			l.stats.AdjacencyHits++
			return Location{Triangle: t, Coords: w, Found: true}
		}
	}

	for t := range l.mesh.triangles {
		if l.tested[t] == i {
			continue
		}
		if w, ok := l.test(i, t, q); ok {
			l.stats.ScanHits++
			return Location{Triangle: t, Coords: w, Found: true, Scanned: true}
		}
	}

	l.stats.Misses++
	return Location{Triangle: -1}
}

func (l *Locator) test(i, t int, q geom.Point) (geom.Barycentric, bool) {
	l.tested[t] = i
	l.stats.Tests++
	a, b, c := l.mesh.Corners(t)
	return geom.BarycentricCoords(a, b, c, q, l.eps)
}

// Locate is a convenience wrapper that runs a fresh Locator over queries.
func (m *Mesh) Locate(queries []geom.Point, eps float64) []Location {
	return NewLocator(m, eps).Locate(queries)
}
