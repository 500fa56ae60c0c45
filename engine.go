// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/facemorph/expression"
	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/internal/parallel"
	"github.com/gogpu/facemorph/mesh"
)

// Engine transfers expressions from one model onto target faces.
//
// The canonical mesh is built once by NewEngine and never modified. Transfer
// and TransferAll are safe for concurrent use.
type Engine struct {
	model     expression.Model
	mesh      *mesh.Mesh
	canonical *LandmarkSet
	eps       float64
	workers   int

	// locators recycles per-call locator scratch.
	locators sync.Pool

	poolMu sync.Mutex
	pool   *parallel.Pool
	closed bool

	stats statsCounter
}

// TransferStats counts located and missed landmarks across all transfers
// since the engine was created.
type TransferStats struct {
	Transfers int64 // completed Transfer calls
	Located   int64 // landmarks remapped through the mesh
	Scanned   int64 // of Located, those found by the exhaustive scan
	Missed    int64 // landmarks outside the canonical mesh, left in place
}

type statsCounter struct {
	transfers, located, scanned, missed atomic.Int64
}

// NewEngine builds the canonical landmark set of model, triangulates it and
// returns an engine ready to transfer.
//
// The canonical set is the model's canonical shape followed by the auxiliary
// tail selected by WithAuxLayout. Without WithTriangles it is triangulated
// with mesh.Triangulate, whose *mesh.DegenerateInputError is returned as is.
func NewEngine(model expression.Model, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.aux.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedAuxLayout, int(o.aux))
	}

	face := model.Canonical()
	frame := canonicalFrame(face, o.width, o.height)
	pts, err := augment(face, frame, o.aux, o.padding)
	if err != nil {
		return nil, err
	}

	var m *mesh.Mesh
	if o.triangles != nil {
		m, err = mesh.New(pts, o.triangles)
	} else {
		m, err = mesh.Triangulate(pts)
	}
	if err != nil {
		return nil, err
	}

	e := &Engine{
		model:     model,
		mesh:      m,
		canonical: &LandmarkSet{Points: pts, Aux: o.aux, Width: frame.Width(), Height: frame.Height()},
		eps:       o.epsilon,
		workers:   o.workers,
	}
	e.locators.New = func() any { return mesh.NewLocator(e.mesh, e.eps) }

	Logger().Info("facemorph: engine ready",
		"model", model.Kind(),
		"landmarks", len(face),
		"aux", o.aux,
		"triangles", m.NumTriangles())
	return e, nil
}

// canonicalFrame returns the w x h frame at the origin, or when either is
// zero the bounding box of face grown by half its size on every side.
func canonicalFrame(face []geom.Point, w, h float64) geom.Rect {
	if w > 0 && h > 0 {
		return geom.Rect{Max: geom.Pt(w, h)}
	}
	b := geom.Bounds(face)
	return b.Inset(b.Width()/2, b.Height()/2)
}

// Model returns the engine's expression model.
func (e *Engine) Model() expression.Model { return e.model }

// Mesh returns the canonical mesh.
func (e *Engine) Mesh() *mesh.Mesh { return e.mesh }

// Canonical returns a copy of the canonical landmark set, auxiliary tail
// included.
func (e *Engine) Canonical() *LandmarkSet { return e.canonical.Clone() }

// Epsilon returns the barycentric tolerance.
func (e *Engine) Epsilon() float64 { return e.eps }

// Stats returns the cumulative transfer counters.
func (e *Engine) Stats() TransferStats {
	return TransferStats{
		Transfers: e.stats.transfers.Load(),
		Located:   e.stats.located.Load(),
		Scanned:   e.stats.scanned.Load(),
		Missed:    e.stats.missed.Load(),
	}
}

// Transfer applies the model's expression for params, plus eyebrowOffset,
// to target and returns the remapped landmark set. target is not modified.
//
// Each displaced canonical landmark is located in the canonical mesh; the
// same barycentric coordinates applied to target's corresponding triangle
// give the new position. Landmarks outside the mesh and the auxiliary tail
// keep their target positions.
//
// Model errors are returned unchanged. A target whose layout or length
// differs from the canonical set yields *LayoutMismatchError or
// *LandmarkCountError.
func (e *Engine) Transfer(params expression.Params, eyebrowOffset float64, target *LandmarkSet) (*LandmarkSet, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if target.Aux != e.canonical.Aux {
		return nil, &LayoutMismatchError{Want: e.canonical.Aux, Got: target.Aux}
	}
	if target.Len() != e.canonical.Len() {
		return nil, &LandmarkCountError{Want: e.canonical.Len(), Got: target.Len()}
	}

	displaced, err := expression.Apply(e.model, params, eyebrowOffset)
	if err != nil {
		return nil, err
	}

	loc := e.locators.Get().(*mesh.Locator)
	results := loc.Locate(displaced)
	e.locators.Put(loc)

	out := target.Clone()
	var located, scanned, missed int64
	for i, r := range results {
		if !r.Found {
			missed++
			Logger().Debug("facemorph: point outside canonical mesh",
				"landmark", i, "x", displaced[i].X, "y", displaced[i].Y)
			continue
		}
		located++
		if r.Scanned {
			scanned++
		}
		tri := e.mesh.Triangle(r.Triangle)
		out.Points[i] = r.Coords.Apply(target.Points[tri.A], target.Points[tri.B], target.Points[tri.C])
	}

	e.stats.transfers.Add(1)
	e.stats.located.Add(located)
	e.stats.scanned.Add(scanned)
	e.stats.missed.Add(missed)
	return out, nil
}
