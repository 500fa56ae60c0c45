// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/mesh"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Built-in 68-point topology, canonical landmarks recorded on 640x480
//	e, err := facemorph.NewEngine(model,
//		facemorph.WithTriangles(mesh.Face68Triangles),
//		facemorph.WithCanonicalFrame(640, 480))
type Option func(*options)

type options struct {
	epsilon       float64
	aux           AuxLayout
	padding       float64
	triangles     []mesh.Triangle
	width, height float64
	workers       int
}

func defaultOptions() options {
	return options{
		epsilon: geom.DefaultEpsilon,
		aux:     AuxFaceAndImage,
		padding: DefaultPadding,
	}
}

// WithEpsilon sets the barycentric tolerance used when locating displaced
// landmarks. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// WithAuxLayout sets the auxiliary tail appended to the canonical landmarks.
// Target landmark sets passed to Transfer must use the same layout.
func WithAuxLayout(l AuxLayout) Option {
	return func(o *options) {
		o.aux = l
	}
}

// WithPadding sets the face box padding as a fraction of the frame size,
// used when building the canonical auxiliary tail. Negative values are
// ignored.
func WithPadding(p float64) Option {
	return func(o *options) {
		if p >= 0 {
			o.padding = p
		}
	}
}

// WithTriangles replaces the computed Delaunay triangulation of the
// canonical set with a fixed one, such as mesh.Face68Triangles.
func WithTriangles(tris []mesh.Triangle) Option {
	return func(o *options) {
		o.triangles = tris
	}
}

// WithCanonicalFrame sets the size of the image the canonical landmarks were
// recorded on. Without it the frame is derived from the landmarks' bounding
// box grown by half its size on every side.
func WithCanonicalFrame(width, height float64) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithWorkers sets the number of goroutines TransferAll uses. Zero or
// negative selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
