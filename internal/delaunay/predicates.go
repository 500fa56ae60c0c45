// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package delaunay

import (
	"math"

	"github.com/gogpu/facemorph/geom"
)

// pseudoAngleEps keeps pseudoAngle strictly below 1 so hash keys stay in range.
const pseudoAngleEps = 1e-9

func squaredDistance(a, b geom.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// orient is negative when a, b, c turn one way and positive the other way;
// zero for collinear points. The sign convention matches the hull walk.
func orient(a, b, c geom.Point) float64 {
	return (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
}

// inCircle reports whether p lies strictly inside the circumcircle of a, b, c.
func inCircle(a, b, c, p geom.Point) bool {
	dx := a.X - p.X
	dy := a.Y - p.Y
	ex := b.X - p.X
	ey := b.Y - p.Y
	fx := c.X - p.X
	fy := c.Y - p.Y

	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	return dx*(ey*cp-bp*fy)-dy*(ex*cp-bp*fx)+ap*(ex*fy-ey*fx) < 0
}

// circumradius returns the squared circumradius of a, b, c, or +Inf when the
// points are degenerate.
func circumradius(a, b, c geom.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ex := c.X - a.X
	ey := c.Y - a.Y

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := dx*ey - dy*ex
	if bl == 0 || cl == 0 || d == 0 {
		return infinity
	}

	x := (ey*bl - dy*cl) * 0.5 / d
	y := (dx*cl - ex*bl) * 0.5 / d
	r := x*x + y*y
	if r == 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return infinity
	}
	return r
}

func circumcenter(a, b, c geom.Point) geom.Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ex := c.X - a.X
	ey := c.Y - a.Y

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := dx*ey - dy*ex

	return geom.Point{
		X: a.X + (ey*bl-dy*cl)*0.5/d,
		Y: a.Y + (dx*cl-ex*bl)*0.5/d,
	}
}

// pseudoAngle maps a direction to [0, 1) monotonically with its angle,
// without trigonometry.
func pseudoAngle(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		p = (3 - p) / 4
	} else {
		p = (1 + p) / 4
	}
	return math.Max(0, math.Min(1-pseudoAngleEps, p))
}

// hullNode is an element of the circular doubly-linked list holding the
// advancing convex hull.
type hullNode struct {
	i    int // point index, -1 once removed
	t    int // half-edge of the hull triangle adjacent to this edge
	prev *hullNode
	next *hullNode
}

// insertNode places the node for point i after prev, or starts a new
// one-element ring when prev is nil.
func insertNode(nodes []hullNode, i int, prev *hullNode) *hullNode {
	n := &nodes[i]
	n.i = i
	if prev == nil {
		n.prev = n
		n.next = n
	} else {
		n.next = prev.next
		n.prev = prev
		prev.next.prev = n
		prev.next = n
	}
	return n
}

// remove unlinks the node and returns its predecessor.
func (n *hullNode) remove() *hullNode {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.i = -1
	return n.prev
}
