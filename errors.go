// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAuxLayout is returned for an AuxLayout other than
	// AuxNone, AuxFaceBox and AuxFaceAndImage.
	ErrUnsupportedAuxLayout = errors.New("facemorph: unsupported auxiliary layout")

	// ErrNoFace is returned by Augment when a face box is requested for an
	// empty face.
	ErrNoFace = errors.New("facemorph: no face landmarks")

	// ErrNilTarget is returned by Transfer for a nil target.
	ErrNilTarget = errors.New("facemorph: nil target landmark set")

	// ErrClosed is returned by TransferAll after Close.
	ErrClosed = errors.New("facemorph: engine closed")
)

// LandmarkCountError reports a target landmark set whose length differs from
// the canonical set.
type LandmarkCountError struct {
	Want int
	Got  int
}

func (e *LandmarkCountError) Error() string {
	return fmt.Sprintf("facemorph: target has %d landmarks, canonical set has %d", e.Got, e.Want)
}

// LayoutMismatchError reports a target landmark set built with a different
// auxiliary layout than the engine.
type LayoutMismatchError struct {
	Want AuxLayout
	Got  AuxLayout
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("facemorph: target auxiliary layout %v, engine uses %v", e.Got, e.Want)
}

// FaceError wraps an error from one face of a TransferAll batch.
type FaceError struct {
	Face int
	Err  error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("facemorph: face %d: %v", e.Face, e.Err)
}

func (e *FaceError) Unwrap() error { return e.Err }
