// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "gonum.org/v1/gonum/spatial/r3"

// DefaultEpsilon is the relative tolerance used to reject points whose
// sub-triangle areas overshoot the triangle area.
const DefaultEpsilon = 1e-5

// Barycentric holds the weights of a point relative to the corners (a, b, c)
// of a triangle:
//
//	p = Alpha*a + Beta*b + Gamma*c
//	Alpha + Beta + Gamma = 1
type Barycentric struct {
	Alpha, Beta, Gamma float64
}

// Apply returns the point with these weights on triangle (a, b, c).
func (w Barycentric) Apply(a, b, c Point) Point {
	return Point{
		X: w.Alpha*a.X + w.Beta*b.X + w.Gamma*c.X,
		Y: w.Alpha*a.Y + w.Beta*b.Y + w.Gamma*c.Y,
	}
}

// Sum returns Alpha + Beta + Gamma.
func (w Barycentric) Sum() float64 {
	return w.Alpha + w.Beta + w.Gamma
}

// TriangleArea returns the unsigned area of triangle (a, b, c): half the
// magnitude of the cross product of (b-a) and (c-a) with both edges lifted
// to z=0. Collinear corners give 0.
func TriangleArea(a, b, c Point) float64 {
	ab := r3.Sub(b.Vec3(), a.Vec3())
	ac := r3.Sub(c.Vec3(), a.Vec3())
	return r3.Norm(r3.Cross(ab, ac)) / 2
}

// BarycentricCoords returns the barycentric coordinates of p in triangle
// (a, b, c), or ok=false when p lies outside it.
//
// Each weight is the area of the sub-triangle opposite its corner. p is
// outside when the three sub-areas add up to more than area*(1+eps), or when
// the comparison is undefined because p or eps is not finite. The weights are normalised by the sub-area sum, so they add up to 1 and none
// is negative.
//
// A zero-area triangle contains only its first corner: p == a yields
// (1, 0, 0), anything else is outside.
func BarycentricCoords(a, b, c, p Point, eps float64) (w Barycentric, ok bool) {
	area := TriangleArea(a, b, c)
	if area == 0 {
		if p == a {
			return Barycentric{Alpha: 1}, true
		}
		return Barycentric{}, false
	}

	sa := TriangleArea(p, b, c)
	sb := TriangleArea(a, p, c)
	sc := TriangleArea(a, b, p)
	sum := sa + sb + sc
	if !(sum <= area*(1+eps)) {
		return Barycentric{}, false
	}

	return Barycentric{Alpha: sa / sum, Beta: sb / sum, Gamma: sc / sum}, true
}
