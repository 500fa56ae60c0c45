// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"testing"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/mesh"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.epsilon != geom.DefaultEpsilon {
		t.Errorf("epsilon = %v, want %v", o.epsilon, geom.DefaultEpsilon)
	}
	if o.aux != AuxFaceAndImage {
		t.Errorf("aux = %v, want %v", o.aux, AuxFaceAndImage)
	}
	if o.padding != DefaultPadding {
		t.Errorf("padding = %v, want %v", o.padding, DefaultPadding)
	}
	if o.triangles != nil || o.width != 0 || o.height != 0 || o.workers != 0 {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(o options) bool
	}{
		{"epsilon", WithEpsilon(1e-3), func(o options) bool { return o.epsilon == 1e-3 }},
		{"epsilon zero ignored", WithEpsilon(0), func(o options) bool { return o.epsilon == geom.DefaultEpsilon }},
		{"epsilon negative ignored", WithEpsilon(-1), func(o options) bool { return o.epsilon == geom.DefaultEpsilon }},
		{"aux", WithAuxLayout(AuxFaceBox), func(o options) bool { return o.aux == AuxFaceBox }},
		{"padding", WithPadding(0.25), func(o options) bool { return o.padding == 0.25 }},
		{"padding zero", WithPadding(0), func(o options) bool { return o.padding == 0 }},
		{"padding negative ignored", WithPadding(-0.5), func(o options) bool { return o.padding == DefaultPadding }},
		{"triangles", WithTriangles(mesh.Face68Triangles), func(o options) bool { return len(o.triangles) == len(mesh.Face68Triangles) }},
		{"frame", WithCanonicalFrame(640, 480), func(o options) bool { return o.width == 640 && o.height == 480 }},
		{"workers", WithWorkers(3), func(o options) bool { return o.workers == 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			if !tt.check(o) {
				t.Errorf("options after %s = %+v", tt.name, o)
			}
		})
	}
}

func TestWithEpsilon_ReachesLocator(t *testing.T) {
	e := squareEngine(t, unitSquare)
	if e.Epsilon() != geom.DefaultEpsilon {
		t.Errorf("Epsilon() = %v, want default", e.Epsilon())
	}

	// A point just outside the square is accepted with a loose tolerance.
	strict := squareEngine(t, with(unitSquare, 0, geom.Pt(-0.001, 0.5)))
	out, err := strict.Transfer(squareParams, 0, doubledSquare())
	if err != nil {
		t.Fatal(err)
	}
	if out.Points[0] != geom.Pt(0, 0) {
		t.Errorf("strict engine moved landmark 0 to %v", out.Points[0])
	}

	loose, err := NewEngine(strict.Model(),
		WithAuxLayout(AuxNone),
		WithTriangles([]mesh.Triangle{{A: 0, B: 1, C: 2}, {A: 1, B: 2, C: 3}}),
		WithEpsilon(0.01))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(loose.Close)
	out, err = loose.Transfer(squareParams, 0, doubledSquare())
	if err != nil {
		t.Fatal(err)
	}
	if out.Points[0] == geom.Pt(0, 0) {
		t.Error("loose engine left landmark 0 in place")
	}
}
