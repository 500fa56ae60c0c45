// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the 2D primitives shared by the mesh, expression and
// transfer packages: landmark points, rectangles, triangle areas and
// area-based barycentric coordinates.
//
// Areas are computed from 3D cross products of points lifted to z=0, which
// keeps the sign handling out of the containment test: a point is inside a
// triangle exactly when the three sub-triangle areas it forms add up to the
// triangle area.
package geom
