// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package expression

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/internal/logging"
)

// Keyframes is an expression model made of named sequences of recorded
// landmark frames.
type Keyframes struct {
	n           int
	expressions map[string][][]geom.Point
	names       []string // sorted
	neutral     []geom.Point
	eyebrows    Range
}

// NewKeyframes builds a keyframe model. Every frame, and neutral when
// non-nil, must have the same number of landmarks. Without a neutral frame
// the canonical shape is frame 0 of the alphabetically first expression.
func NewKeyframes(expressions map[string][][]geom.Point, neutral []geom.Point, opts ...Option) (*Keyframes, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(expressions) == 0 {
		return nil, ErrEmptyModel
	}
	names := slices.Sorted(maps.Keys(expressions))

	m := &Keyframes{
		expressions: make(map[string][][]geom.Point, len(expressions)),
		names:       names,
	}
	for _, name := range names {
		frames := expressions[name]
		if len(frames) == 0 {
			return nil, fmt.Errorf("%w: expression %q has no frames", ErrEmptyModel, name)
		}
		if m.n == 0 {
			m.n = len(frames[0])
			if m.n == 0 {
				return nil, ErrEmptyModel
			}
		}
		copied := make([][]geom.Point, len(frames))
		for i, f := range frames {
			if len(f) != m.n {
				return nil, &FrameLengthError{Expression: name, Frame: i, Want: m.n, Got: len(f)}
			}
			copied[i] = clonePoints(f)
		}
		m.expressions[name] = copied
	}

	if neutral != nil {
		if len(neutral) != m.n {
			return nil, &FrameLengthError{Want: m.n, Got: len(neutral)}
		}
		m.neutral = clonePoints(neutral)
	} else {
		m.neutral = m.expressions[names[0]][0]
	}
	m.eyebrows = o.clipEyebrows(m.n)
	return m, nil
}

// Kind returns KindKeyframes.
func (m *Keyframes) Kind() Kind { return KindKeyframes }

// Len returns the number of landmarks.
func (m *Keyframes) Len() int { return m.n }

// Eyebrows returns the eyebrow landmark range.
func (m *Keyframes) Eyebrows() Range { return m.eyebrows }

// Canonical returns the neutral frame.
func (m *Keyframes) Canonical() []geom.Point { return clonePoints(m.neutral) }

// Names returns the expression names in sorted order.
func (m *Keyframes) Names() []string { return slices.Clone(m.names) }

// Frames returns the number of frames of the named expression, or 0 when it
// does not exist.
func (m *Keyframes) Frames(name string) int { return len(m.expressions[name]) }

// Displace interpolates the sequence named by p.Expression at
// p.Activation * (frames - 1).
func (m *Keyframes) Displace(p Params) ([]geom.Point, error) {
	name := p.Expression
	if name == "" {
		name = m.names[0]
	}
	frames, ok := m.expressions[name]
	if !ok {
		return nil, &UnknownExpressionError{Name: name, Known: m.Names()}
	}

	a := p.Activation
	if !(a >= 0 && a <= 1) {
		clamped := 0.0
		if a > 1 {
			clamped = 1
		}
		logging.Logger().Warn("expression: activation clamped",
			"activation", a, "clamped", clamped, "expression", name)
		a = clamped
	}

	if len(frames) == 1 {
		return clonePoints(frames[0]), nil
	}

	pos := a * float64(len(frames)-1)
	i := int(math.Floor(pos))
	if i >= len(frames)-1 {
		i = len(frames) - 2
	}
	t := pos - float64(i)

	from, to := frames[i], frames[i+1]
	out := make([]geom.Point, m.n)
	for j := range out {
		out[j] = from[j].Lerp(to[j], t)
	}
	return out, nil
}

// modelMarker implements the sealed Model interface.
func (*Keyframes) modelMarker() {}
