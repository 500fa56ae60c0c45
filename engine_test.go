// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/gogpu/facemorph/expression"
	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/mesh"
)

var unitSquare = []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(1, 1)}

// squareParams selects the "move" expression of squareEngine's model.
var squareParams = expression.Params{Expression: "move"}

// squareEngine returns an engine over the unit square split along the
// (1,0)-(0,1) diagonal, with no auxiliary points. Its model's "move"
// expression displaces the square to displaced.
func squareEngine(t testing.TB, displaced []geom.Point) *Engine {
	t.Helper()
	model, err := expression.NewKeyframes(map[string][][]geom.Point{
		"move": {displaced},
	}, unitSquare)
	if err != nil {
		t.Fatalf("NewKeyframes() error = %v", err)
	}
	e, err := NewEngine(model,
		WithAuxLayout(AuxNone),
		WithTriangles([]mesh.Triangle{{A: 0, B: 1, C: 2}, {A: 1, B: 2, C: 3}}))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func doubledSquare() *LandmarkSet {
	return &LandmarkSet{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(0, 2), geom.Pt(2, 2)},
		Aux:    AuxNone,
		Width:  2,
		Height: 2,
	}
}

func with(pts []geom.Point, i int, p geom.Point) []geom.Point {
	out := append([]geom.Point(nil), pts...)
	out[i] = p
	return out
}

func TestTransfer_UnitSquare(t *testing.T) {
	tests := []struct {
		name  string
		moved geom.Point // new position of landmark 0
		want  geom.Point // expected position of landmark 0 on the doubled square
	}{
		{"identity", geom.Pt(0, 0), geom.Pt(0, 0)},
		{"triangle centroid", geom.Pt(1.0/3, 1.0/3), geom.Pt(2.0/3, 2.0/3)},
		{"shared edge", geom.Pt(0.5, 0.5), geom.Pt(1, 1)},
		{"other triangle", geom.Pt(0.75, 0.75), geom.Pt(1.5, 1.5)},
		{"outside", geom.Pt(-3, 5), geom.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := squareEngine(t, with(unitSquare, 0, tt.moved))
			target := doubledSquare()

			out, err := e.Transfer(squareParams, 0, target)
			if err != nil {
				t.Fatalf("Transfer() error = %v", err)
			}
			if out.Len() != target.Len() {
				t.Fatalf("Len() = %d, want %d", out.Len(), target.Len())
			}
			if !out.Points[0].Approx(tt.want, 1e-9) {
				t.Errorf("landmark 0 = %v, want %v", out.Points[0], tt.want)
			}
			for i := 1; i < 4; i++ {
				if out.Points[i] != target.Points[i] {
					t.Errorf("landmark %d = %v, want unchanged %v", i, out.Points[i], target.Points[i])
				}
			}
		})
	}
}

func TestTransfer_SharedEdgeDeterministic(t *testing.T) {
	e := squareEngine(t, with(unitSquare, 0, geom.Pt(0.5, 0.5)))
	target := doubledSquare()

	first, err := e.Transfer(squareParams, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, err := e.Transfer(squareParams, 0, target)
		if err != nil {
			t.Fatal(err)
		}
		if again.Points[0] != first.Points[0] {
			t.Fatalf("repeat transfer = %v, first = %v", again.Points[0], first.Points[0])
		}
	}
}

func TestTransfer_MissKeepsTarget(t *testing.T) {
	e := squareEngine(t, with(unitSquare, 3, geom.Pt(7, 7)))
	target := doubledSquare()

	out, err := e.Transfer(squareParams, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	if out.Points[3] != target.Points[3] {
		t.Errorf("missed landmark = %v, want %v", out.Points[3], target.Points[3])
	}

	s := e.Stats()
	if s.Transfers != 1 || s.Located != 3 || s.Missed != 1 {
		t.Errorf("Stats() = %+v, want 1 transfer, 3 located, 1 missed", s)
	}
}

func TestTransfer_NonFiniteDisplacementKeepsTarget(t *testing.T) {
	model, err := expression.NewLinear(unitSquare, [][]float64{{1, 0, 1, 0, 1, 0, 1, 0}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(model,
		WithAuxLayout(AuxNone),
		WithTriangles([]mesh.Triangle{{A: 0, B: 1, C: 2}, {A: 1, B: 2, C: 3}}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)

	target := doubledSquare()
	out, err := e.Transfer(expression.Params{Epsilon: []float64{math.NaN()}}, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range out.Points {
		if p != target.Points[i] {
			t.Errorf("landmark %d = %v, want target %v", i, p, target.Points[i])
		}
	}
	if s := e.Stats(); s.Located != 0 || s.Missed != 4 {
		t.Errorf("Stats() = %+v, want 4 missed", s)
	}
}

func TestTransfer_DoesNotModifyTarget(t *testing.T) {
	e := squareEngine(t, with(unitSquare, 0, geom.Pt(0.2, 0.2)))
	target := doubledSquare()
	before := target.Clone()

	if _, err := e.Transfer(squareParams, 0, target); err != nil {
		t.Fatal(err)
	}
	for i := range target.Points {
		if target.Points[i] != before.Points[i] {
			t.Errorf("target landmark %d modified: %v", i, target.Points[i])
		}
	}
}

func TestTransfer_Errors(t *testing.T) {
	e := squareEngine(t, unitSquare)

	t.Run("nil target", func(t *testing.T) {
		if _, err := e.Transfer(squareParams, 0, nil); !errors.Is(err, ErrNilTarget) {
			t.Errorf("error = %v, want ErrNilTarget", err)
		}
	})

	t.Run("landmark count", func(t *testing.T) {
		target := doubledSquare()
		target.Points = target.Points[:3]
		_, err := e.Transfer(squareParams, 0, target)
		var ce *LandmarkCountError
		if !errors.As(err, &ce) || ce.Want != 4 || ce.Got != 3 {
			t.Errorf("error = %v, want LandmarkCountError{4, 3}", err)
		}
	})

	t.Run("layout", func(t *testing.T) {
		target := doubledSquare()
		target.Aux = AuxFaceBox
		_, err := e.Transfer(squareParams, 0, target)
		var le *LayoutMismatchError
		if !errors.As(err, &le) || le.Want != AuxNone || le.Got != AuxFaceBox {
			t.Errorf("error = %v, want LayoutMismatchError", err)
		}
	})

	t.Run("model error propagates", func(t *testing.T) {
		_, err := e.Transfer(expression.Params{Expression: "laugh"}, 0, doubledSquare())
		var ue *expression.UnknownExpressionError
		if !errors.As(err, &ue) || ue.Name != "laugh" {
			t.Errorf("error = %v, want UnknownExpressionError", err)
		}
	})
}

func TestNewEngine_Degenerate(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)}
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"rest": {line}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewEngine(model, WithAuxLayout(AuxNone))
	var de *mesh.DegenerateInputError
	if !errors.As(err, &de) || !errors.Is(err, mesh.ErrCollinear) {
		t.Errorf("NewEngine() error = %v, want collinear DegenerateInputError", err)
	}

	// The face box and image corners lift the same landmarks off the line.
	if _, err := NewEngine(model); err != nil {
		t.Errorf("NewEngine() with auxiliary points error = %v", err)
	}

	if _, err := NewEngine(model, WithAuxLayout(3)); !errors.Is(err, ErrUnsupportedAuxLayout) {
		t.Errorf("NewEngine(aux 3) error = %v", err)
	}
}

func TestNewEngine_Face68WrongLandmarkCount(t *testing.T) {
	face := scatterFace(70, 640, 480, 11)
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"rest": {face}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewEngine(model, WithCanonicalFrame(640, 480), WithTriangles(mesh.Face68Triangles))
	if !errors.Is(err, mesh.ErrUnusedVertex) {
		t.Errorf("NewEngine(70 landmarks, Face68Triangles) error = %v, want ErrUnusedVertex", err)
	}
}

func TestNewEngine_CanonicalSet(t *testing.T) {
	face := []geom.Point{geom.Pt(100, 100), geom.Pt(200, 100), geom.Pt(150, 200)}
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"rest": {face}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(model, WithCanonicalFrame(400, 300))
	if err != nil {
		t.Fatal(err)
	}
	c := e.Canonical()
	want := []geom.Point{
		face[0], face[1], face[2],
		geom.Pt(60, 70), geom.Pt(240, 70), geom.Pt(60, 230), geom.Pt(240, 230),
		geom.Pt(0, 0), geom.Pt(400, 0), geom.Pt(0, 300), geom.Pt(400, 300),
	}
	if c.Len() != len(want) || c.Aux != AuxFaceAndImage || c.Width != 400 || c.Height != 300 {
		t.Fatalf("Canonical() = %+v", c)
	}
	for i := range want {
		if !c.Points[i].Approx(want[i], 1e-9) {
			t.Errorf("canonical %d = %v, want %v", i, c.Points[i], want[i])
		}
	}
	if e.Mesh().Len() != len(want) {
		t.Errorf("Mesh().Len() = %d, want %d", e.Mesh().Len(), len(want))
	}

	// Without a frame the face box is grown by half its size.
	e, err = NewEngine(model, WithAuxLayout(AuxFaceAndImage))
	if err != nil {
		t.Fatal(err)
	}
	c = e.Canonical()
	if c.Width != 200 || c.Height != 200 {
		t.Errorf("derived frame = %vx%v, want 200x200", c.Width, c.Height)
	}
	if got := c.Auxiliary()[4]; got != geom.Pt(50, 50) {
		t.Errorf("derived frame origin = %v, want (50, 50)", got)
	}
}

// scatterFace returns n pseudo-random landmarks inside the central part of a
// w x h image.
func scatterFace(n int, w, h float64, seed uint64) []geom.Point {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(w*(0.3+0.4*rng.Float64()), h*(0.25+0.5*rng.Float64()))
	}
	return pts
}

func TestTransfer_AuxiliaryTailUntouched(t *testing.T) {
	canonical := scatterFace(20, 640, 480, 1)
	moved := make([]geom.Point, len(canonical))
	for i, p := range canonical {
		moved[i] = p.Add(geom.Pt(15, -10))
	}
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"shift": {canonical, moved}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(model, WithCanonicalFrame(640, 480))
	if err != nil {
		t.Fatal(err)
	}

	target, err := Augment(scatterFace(20, 1280, 720, 2), 1280, 720, AuxFaceAndImage)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range []float64{0, 0.5, 1} {
		out, err := e.Transfer(expression.Params{Expression: "shift", Activation: a}, 3, target)
		if err != nil {
			t.Fatalf("Transfer(%v) error = %v", a, err)
		}
		if out.Len() != target.Len() {
			t.Fatalf("Len() = %d, want %d", out.Len(), target.Len())
		}
		got, want := out.Auxiliary(), target.Auxiliary()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("activation %v: aux %d = %v, want %v", a, i, got[i], want[i])
			}
		}
	}
}

func TestTransfer_Face68Identity(t *testing.T) {
	canonical := scatterFace(68, 640, 480, 3)
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"rest": {canonical}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(model, WithCanonicalFrame(640, 480), WithTriangles(mesh.Face68Triangles))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if e.Mesh().NumTriangles() != len(mesh.Face68Triangles) {
		t.Errorf("NumTriangles() = %d, want %d", e.Mesh().NumTriangles(), len(mesh.Face68Triangles))
	}

	target, err := Augment(scatterFace(68, 800, 600, 4), 800, 600, AuxFaceAndImage)
	if err != nil {
		t.Fatal(err)
	}

	// Undisplaced landmarks sit on their own mesh vertices, so the target
	// comes back unchanged.
	out, err := e.Transfer(expression.Params{}, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	for i := range target.Points {
		if out.Points[i] != target.Points[i] {
			t.Errorf("landmark %d = %v, want %v", i, out.Points[i], target.Points[i])
		}
	}
	if s := e.Stats(); s.Missed != 0 || s.Scanned != 0 || s.Located != 68 {
		t.Errorf("Stats() = %+v, want 68 adjacency hits", s)
	}
}

func TestTransfer_LinearWithEyebrows(t *testing.T) {
	// 30 landmarks so the default eyebrow range [17, 27) applies.
	center := scatterFace(30, 640, 480, 5)
	components := [][]float64{make([]float64, 60)}
	model, err := expression.NewLinear(center, components, nil)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(model, WithCanonicalFrame(640, 480))
	if err != nil {
		t.Fatal(err)
	}

	// The target is the canonical set scaled by 2 about the origin, so any
	// displacement inside the mesh is scaled by 2 too.
	c := e.Canonical()
	target := &LandmarkSet{Aux: c.Aux, Width: 1280, Height: 960}
	for _, p := range c.Points {
		target.Points = append(target.Points, p.Mul(2))
	}

	out, err := e.Transfer(expression.Params{Epsilon: []float64{0}}, -2, target)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 30 {
		want := target.Points[i]
		if i >= 17 && i < 27 {
			want = want.Add(geom.Pt(0, -4))
		}
		if !out.Points[i].Approx(want, 1e-6) {
			t.Errorf("landmark %d = %v, want %v", i, out.Points[i], want)
		}
	}

	var dm *expression.DimensionMismatchError
	if _, err := e.Transfer(expression.Params{}, 0, target); !errors.As(err, &dm) {
		t.Errorf("Transfer() error = %v, want DimensionMismatchError", err)
	}
}

func TestTransfer_Concurrent(t *testing.T) {
	e := squareEngine(t, with(unitSquare, 0, geom.Pt(0.25, 0.25)))
	target := doubledSquare()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				out, err := e.Transfer(squareParams, 0, target)
				if err != nil {
					t.Error(err)
					return
				}
				if !out.Points[0].Approx(geom.Pt(0.5, 0.5), 1e-9) {
					t.Errorf("landmark 0 = %v", out.Points[0])
					return
				}
			}
		}()
	}
	wg.Wait()

	if s := e.Stats(); s.Transfers != 1600 {
		t.Errorf("Transfers = %d, want 1600", s.Transfers)
	}
}

func BenchmarkTransfer_Face68(b *testing.B) {
	canonical := scatterFace(68, 640, 480, 7)
	moved := make([]geom.Point, len(canonical))
	for i, p := range canonical {
		moved[i] = p.Add(geom.Pt(2, 3))
	}
	model, err := expression.NewKeyframes(map[string][][]geom.Point{"talk": {canonical, moved}}, nil)
	if err != nil {
		b.Fatal(err)
	}
	e, err := NewEngine(model, WithCanonicalFrame(640, 480), WithTriangles(mesh.Face68Triangles))
	if err != nil {
		b.Fatal(err)
	}
	target, err := Augment(scatterFace(68, 640, 480, 8), 640, 480, AuxFaceAndImage)
	if err != nil {
		b.Fatal(err)
	}
	params := expression.Params{Expression: "talk", Activation: 0.5}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = e.Transfer(params, 1, target)
	}
}
