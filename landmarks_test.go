// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"errors"
	"testing"

	"github.com/gogpu/facemorph/geom"
)

func TestAugment(t *testing.T) {
	face := []geom.Point{geom.Pt(40, 30), geom.Pt(60, 30), geom.Pt(50, 70)}
	box := []geom.Point{geom.Pt(30, 22), geom.Pt(70, 22), geom.Pt(30, 78), geom.Pt(70, 78)}
	image := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(0, 80), geom.Pt(100, 80)}

	tests := []struct {
		layout AuxLayout
		aux    []geom.Point
	}{
		{AuxNone, nil},
		{AuxFaceBox, box},
		{AuxFaceAndImage, append(append([]geom.Point(nil), box...), image...)},
	}
	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			s, err := Augment(face, 100, 80, tt.layout)
			if err != nil {
				t.Fatalf("Augment() error = %v", err)
			}
			if s.Len() != len(face)+tt.layout.Len() || s.Aux != tt.layout {
				t.Fatalf("Augment() = %+v", s)
			}
			if s.Width != 100 || s.Height != 80 {
				t.Errorf("size = %vx%v, want 100x80", s.Width, s.Height)
			}
			for i, p := range s.Face() {
				if p != face[i] {
					t.Errorf("face %d = %v, want %v", i, p, face[i])
				}
			}
			aux := s.Auxiliary()
			if len(aux) != len(tt.aux) {
				t.Fatalf("len(Auxiliary()) = %d, want %d", len(aux), len(tt.aux))
			}
			for i := range aux {
				if !aux[i].Approx(tt.aux[i], 1e-9) {
					t.Errorf("aux %d = %v, want %v", i, aux[i], tt.aux[i])
				}
			}
		})
	}
}

func TestAugment_DoesNotAliasInput(t *testing.T) {
	face := []geom.Point{geom.Pt(1, 1), geom.Pt(2, 1), geom.Pt(1, 2)}
	s, err := Augment(face, 10, 10, AuxFaceBox)
	if err != nil {
		t.Fatal(err)
	}
	s.Points[0] = geom.Pt(9, 9)
	if face[0] != geom.Pt(1, 1) {
		t.Error("Augment aliases the input face")
	}
}

func TestAugmentPadded(t *testing.T) {
	face := []geom.Point{geom.Pt(10, 10), geom.Pt(20, 30)}
	s, err := AugmentPadded(face, 100, 100, AuxFaceBox, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Point{geom.Pt(10, 10), geom.Pt(20, 10), geom.Pt(10, 30), geom.Pt(20, 30)}
	for i, p := range s.Auxiliary() {
		if p != want[i] {
			t.Errorf("aux %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestAugment_Errors(t *testing.T) {
	if _, err := Augment([]geom.Point{geom.Pt(1, 1)}, 10, 10, AuxLayout(5)); !errors.Is(err, ErrUnsupportedAuxLayout) {
		t.Errorf("layout 5: error = %v", err)
	}
	if _, err := Augment(nil, 10, 10, AuxFaceBox); !errors.Is(err, ErrNoFace) {
		t.Errorf("empty face: error = %v", err)
	}
	s, err := Augment(nil, 10, 10, AuxNone)
	if err != nil || s.Len() != 0 {
		t.Errorf("empty face without aux = %+v, %v", s, err)
	}
}

func TestLandmarkSet_Accessors(t *testing.T) {
	s := &LandmarkSet{
		Points: []geom.Point{geom.Pt(1, 2), geom.Pt(3, 4), geom.Pt(0, 0), geom.Pt(9, 0), geom.Pt(0, 9), geom.Pt(9, 9)},
		Aux:    AuxFaceBox,
		Width:  9,
		Height: 9,
	}
	if got := s.At(LandmarkIndex(1)); got != geom.Pt(3, 4) {
		t.Errorf("At(1) = %v", got)
	}
	if len(s.Face()) != 2 || len(s.Auxiliary()) != 4 {
		t.Errorf("Face() = %v, Auxiliary() = %v", s.Face(), s.Auxiliary())
	}

	c := s.Clone()
	c.Points[0] = geom.Pt(-1, -1)
	if s.Points[0] != geom.Pt(1, 2) {
		t.Error("Clone shares points with the original")
	}
	if c.Aux != s.Aux || c.Width != s.Width || c.Height != s.Height {
		t.Errorf("Clone() = %+v", c)
	}

	// A set shorter than its declared tail has no face.
	short := &LandmarkSet{Points: []geom.Point{geom.Pt(0, 0)}, Aux: AuxFaceAndImage}
	if len(short.Face()) != 0 || len(short.Auxiliary()) != 1 {
		t.Errorf("short set: Face() = %v, Auxiliary() = %v", short.Face(), short.Auxiliary())
	}
}

func TestAuxLayout(t *testing.T) {
	tests := []struct {
		l     AuxLayout
		valid bool
		name  string
	}{
		{AuxNone, true, "none"},
		{AuxFaceBox, true, "face-box"},
		{AuxFaceAndImage, true, "face-and-image"},
		{AuxLayout(2), false, "AuxLayout(2)"},
	}
	for _, tt := range tests {
		if tt.l.Valid() != tt.valid || tt.l.String() != tt.name {
			t.Errorf("%d: Valid() = %v, String() = %q", int(tt.l), tt.l.Valid(), tt.l.String())
		}
	}
}

func TestLandmarkSet_Coords(t *testing.T) {
	s := &LandmarkSet{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(200, 100), geom.Pt(100, 50)},
		Width:  200,
		Height: 100,
	}

	tex := s.TextureCoords()
	wantTex := []float32{0, 0, 1, 1, 0.5, 0.5}
	vtx := s.VertexCoords()
	wantVtx := []float32{-1, 1, 1, -1, 0, 0}

	if len(tex) != len(wantTex) || len(vtx) != len(wantVtx) {
		t.Fatalf("len = %d, %d, want 6", len(tex), len(vtx))
	}
	for i := range wantTex {
		if tex[i] != wantTex[i] {
			t.Errorf("TextureCoords()[%d] = %v, want %v", i, tex[i], wantTex[i])
		}
		if vtx[i] != wantVtx[i] {
			t.Errorf("VertexCoords()[%d] = %v, want %v", i, vtx[i], wantVtx[i])
		}
	}
}
