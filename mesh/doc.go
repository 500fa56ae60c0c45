// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh triangulates canonical landmark sets and locates displaced
// landmarks inside the triangulation.
//
// # Construction
//
// A Mesh is built once per canonical model, either by Triangulate (Delaunay)
// or from a precomputed triangle list with New, FromIndices or the built-in
// Face68Triangles. Construction also derives the vertex adjacency used by
// the Locator. A Mesh never changes after construction and may be shared
// between goroutines.
//
// # Point location
//
//	loc := mesh.NewLocator(m, geom.DefaultEpsilon)
//	for i, r := range loc.Locate(displaced) {
//	    if r.Found {
//	        a, b, c := m.Corners(r.Triangle)
//	        _ = r.Coords.Apply(a, b, c) // == displaced[i]
//	    }
//	}
package mesh
