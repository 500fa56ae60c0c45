// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package expression

import (
	"fmt"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/internal/logging"
)

// Kind identifies a model variant.
type Kind int

const (
	// KindLinear is a PCA model, see [Linear].
	KindLinear Kind = iota
	// KindKeyframes is a keyframe model, see [Keyframes].
	KindKeyframes
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindKeyframes:
		return "keyframes"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Params are the per-frame inputs to a model. Each variant reads only its
// own fields.
type Params struct {
	// Epsilon holds one coefficient per principal component (Linear).
	Epsilon []float64

	// Activation selects a position in the keyframe sequence, 0 for the
	// first frame and 1 for the last (Keyframes). Values outside [0, 1] are
	// clamped.
	Activation float64

	// Expression names the keyframe sequence (Keyframes). Empty selects the
	// alphabetically first sequence.
	Expression string
}

// Model is a read-only expression model. The set of implementations is
// closed: it is either a [*Linear] or a [*Keyframes].
type Model interface {
	// Kind reports the variant.
	Kind() Kind

	// Len returns the number of landmarks the model produces.
	Len() int

	// Canonical returns a copy of the undisplaced landmark set.
	Canonical() []geom.Point

	// Eyebrows returns the landmark range moved by the eyebrow offset,
	// already clipped to Len.
	Eyebrows() Range

	// Displace returns a freshly allocated displaced landmark set.
	Displace(p Params) ([]geom.Point, error)

	modelMarker()
}

// Range is the half-open landmark index range [Start, End).
type Range struct {
	Start, End int
}

// DefaultEyebrows covers the left and right eyebrows of the 68-point
// landmark layout.
var DefaultEyebrows = Range{Start: 17, End: 27}

// Len returns the number of indices in r.
func (r Range) Len() int { return max(r.End-r.Start, 0) }

// Contains reports whether i lies in r.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Clip restricts r to [0, n).
func (r Range) Clip(n int) Range {
	c := Range{Start: min(max(r.Start, 0), n), End: min(max(r.End, 0), n)}
	if c.End < c.Start {
		c.End = c.Start
	}
	return c
}

// Option configures a model at construction.
type Option func(*options)

type options struct {
	eyebrows    Range
	eyebrowsSet bool
}

func defaultOptions() options {
	return options{eyebrows: DefaultEyebrows}
}

// WithEyebrows overrides [DefaultEyebrows].
func WithEyebrows(r Range) Option {
	return func(o *options) {
		o.eyebrows = r
		o.eyebrowsSet = true
	}
}

func (o *options) clipEyebrows(n int) Range {
	c := o.eyebrows.Clip(n)
	if c != o.eyebrows && o.eyebrowsSet {
		logging.Logger().Warn("expression: eyebrow range clipped",
			"start", o.eyebrows.Start, "end", o.eyebrows.End, "points", n)
	}
	return c
}

// Apply displaces m with p and adds offset to the Y coordinate of every
// landmark in the model's eyebrow range.
func Apply(m Model, p Params, offset float64) ([]geom.Point, error) {
	pts, err := m.Displace(p)
	if err != nil {
		return nil, err
	}
	if offset != 0 {
		r := m.Eyebrows()
		for i := r.Start; i < r.End; i++ {
			pts[i].Y += offset
		}
	}
	return pts, nil
}

func clonePoints(pts []geom.Point) []geom.Point {
	return append([]geom.Point(nil), pts...)
}
