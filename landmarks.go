// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"fmt"

	"github.com/gogpu/facemorph/geom"
)

// LandmarkIndex identifies a landmark. Index i of the canonical set and
// index i of every target set denote the same facial feature.
type LandmarkIndex int

// AuxLayout is the auxiliary tail of a landmark set. Its value is the number
// of auxiliary points.
type AuxLayout int

const (
	// AuxNone has no auxiliary points.
	AuxNone AuxLayout = 0

	// AuxFaceBox appends the padded face bounding box: top-left, top-right,
	// bottom-left, bottom-right.
	AuxFaceBox AuxLayout = 4

	// AuxFaceAndImage appends the padded face bounding box followed by the
	// image corners in the same order.
	AuxFaceAndImage AuxLayout = 8
)

// DefaultPadding is the face box padding as a fraction of the image size.
const DefaultPadding = 0.1

// Len returns the number of auxiliary points.
func (l AuxLayout) Len() int { return int(l) }

// Valid reports whether l is one of the supported layouts.
func (l AuxLayout) Valid() bool {
	return l == AuxNone || l == AuxFaceBox || l == AuxFaceAndImage
}

func (l AuxLayout) String() string {
	switch l {
	case AuxNone:
		return "none"
	case AuxFaceBox:
		return "face-box"
	case AuxFaceAndImage:
		return "face-and-image"
	default:
		return fmt.Sprintf("AuxLayout(%d)", int(l))
	}
}

// LandmarkSet is an ordered list of face landmarks followed by an auxiliary
// tail, together with the size of the image they were detected on.
type LandmarkSet struct {
	// Points holds the face landmarks followed by Aux.Len() auxiliary points.
	Points []geom.Point

	// Aux describes the auxiliary tail.
	Aux AuxLayout

	// Width and Height are the source image dimensions.
	Width, Height float64
}

// Augment appends the auxiliary tail for layout to a detected face. The face
// box is padded by DefaultPadding of the image size.
func Augment(face []geom.Point, width, height float64, layout AuxLayout) (*LandmarkSet, error) {
	return AugmentPadded(face, width, height, layout, DefaultPadding)
}

// AugmentPadded is like Augment with an explicit padding fraction.
func AugmentPadded(face []geom.Point, width, height float64, layout AuxLayout, padding float64) (*LandmarkSet, error) {
	frame := geom.Rect{Max: geom.Pt(width, height)}
	pts, err := augment(face, frame, layout, padding)
	if err != nil {
		return nil, err
	}
	return &LandmarkSet{Points: pts, Aux: layout, Width: width, Height: height}, nil
}

// augment returns face followed by the auxiliary tail for frame.
func augment(face []geom.Point, frame geom.Rect, layout AuxLayout, padding float64) ([]geom.Point, error) {
	if !layout.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAuxLayout, int(layout))
	}
	pts := make([]geom.Point, len(face), len(face)+layout.Len())
	copy(pts, face)
	if layout == AuxNone {
		return pts, nil
	}
	if len(face) == 0 {
		return nil, ErrNoFace
	}

	box := geom.Bounds(face).Inset(frame.Width()*padding, frame.Height()*padding)
	corners := box.Corners()
	pts = append(pts, corners[:]...)
	if layout == AuxFaceAndImage {
		corners = frame.Corners()
		pts = append(pts, corners[:]...)
	}
	return pts, nil
}

// Len returns the total number of points, auxiliary tail included.
func (s *LandmarkSet) Len() int { return len(s.Points) }

// Face returns the face landmarks without the auxiliary tail. The result
// aliases s.Points.
func (s *LandmarkSet) Face() []geom.Point {
	return s.Points[:s.faceLen()]
}

// Auxiliary returns the auxiliary tail. The result aliases s.Points.
func (s *LandmarkSet) Auxiliary() []geom.Point {
	return s.Points[s.faceLen():]
}

// At returns landmark i.
func (s *LandmarkSet) At(i LandmarkIndex) geom.Point { return s.Points[i] }

// Clone returns a deep copy of s.
func (s *LandmarkSet) Clone() *LandmarkSet {
	c := *s
	c.Points = append([]geom.Point(nil), s.Points...)
	return &c
}

func (s *LandmarkSet) faceLen() int {
	return max(len(s.Points)-s.Aux.Len(), 0)
}
