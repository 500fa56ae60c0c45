// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package expression

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyModel is returned when a model has no landmarks, no components
	// or no frames.
	ErrEmptyModel = errors.New("expression: empty model")

	// ErrAmbiguousAsset is returned by Load when an asset describes both a
	// linear and a keyframe model, or neither.
	ErrAmbiguousAsset = errors.New("expression: asset must describe exactly one model kind")

	// ErrOddLength is returned when a flat coordinate vector has an odd
	// number of values.
	ErrOddLength = errors.New("expression: flat coordinates must come in x, y pairs")
)

// DimensionMismatchError reports a parameter vector whose length does not
// match the model.
type DimensionMismatchError struct {
	What string // what was measured, e.g. "epsilon" or "scales"
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("expression: %s has %d values, model has %d", e.What, e.Got, e.Want)
}

// UnknownExpressionError reports a keyframe expression name the model does
// not define.
type UnknownExpressionError struct {
	Name  string
	Known []string
}

func (e *UnknownExpressionError) Error() string {
	return fmt.Sprintf("expression: unknown expression %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// FrameLengthError reports a frame or component whose landmark count differs
// from the rest of the model.
type FrameLengthError struct {
	Expression string // empty for linear components and the neutral frame
	Frame      int
	Want       int
	Got        int
}

func (e *FrameLengthError) Error() string {
	if e.Expression == "" {
		return fmt.Sprintf("expression: frame %d has %d points, want %d", e.Frame, e.Got, e.Want)
	}
	return fmt.Sprintf("expression: %q frame %d has %d points, want %d", e.Expression, e.Frame, e.Got, e.Want)
}
