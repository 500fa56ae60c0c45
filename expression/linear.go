// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package expression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/facemorph/geom"
)

// Linear is a PCA expression model over N landmarks and K components.
//
// The displaced shape for coefficients epsilon is
//
//	center + sum_k epsilon_k * scale_k * component_k
//
// where center and each component are flat (x0, y0, x1, y1, ...) vectors.
type Linear struct {
	n, k       int
	center     *mat.VecDense // 2N
	components *mat.Dense    // K x 2N
	scales     []float64
	eyebrows   Range
}

// NewLinear builds a PCA model. Each component must hold 2*len(center)
// values. A nil scales slice means unit scales.
func NewLinear(center []geom.Point, components [][]float64, scales []float64, opts ...Option) (*Linear, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n, k := len(center), len(components)
	if n == 0 || k == 0 {
		return nil, ErrEmptyModel
	}
	if scales == nil {
		scales = make([]float64, k)
		for i := range scales {
			scales[i] = 1
		}
	}
	if len(scales) != k {
		return nil, &DimensionMismatchError{What: "scales", Want: k, Got: len(scales)}
	}

	flat := make([]float64, 0, 2*n)
	for _, p := range center {
		flat = append(flat, p.X, p.Y)
	}

	data := make([]float64, 0, k*2*n)
	for i, c := range components {
		if len(c)%2 != 0 {
			return nil, ErrOddLength
		}
		if len(c) != 2*n {
			return nil, &FrameLengthError{Frame: i, Want: n, Got: len(c) / 2}
		}
		data = append(data, c...)
	}

	return &Linear{
		n:          n,
		k:          k,
		center:     mat.NewVecDense(2*n, flat),
		components: mat.NewDense(k, 2*n, data),
		scales:     append([]float64(nil), scales...),
		eyebrows:   o.clipEyebrows(n),
	}, nil
}

// Kind returns KindLinear.
func (m *Linear) Kind() Kind { return KindLinear }

// Len returns the number of landmarks.
func (m *Linear) Len() int { return m.n }

// Components returns the number of principal components.
func (m *Linear) Components() int { return m.k }

// Eyebrows returns the eyebrow landmark range.
func (m *Linear) Eyebrows() Range { return m.eyebrows }

// Canonical returns the model center.
func (m *Linear) Canonical() []geom.Point {
	return unflatten(m.center.RawVector().Data)
}

// Displace returns the center moved along the components by p.Epsilon.
func (m *Linear) Displace(p Params) ([]geom.Point, error) {
	if len(p.Epsilon) != m.k {
		return nil, &DimensionMismatchError{What: "epsilon", Want: m.k, Got: len(p.Epsilon)}
	}

	w := mat.NewVecDense(m.k, nil)
	for i, e := range p.Epsilon {
		w.SetVec(i, e*m.scales[i])
	}

	var d mat.VecDense
	d.MulVec(m.components.T(), w)
	d.AddVec(&d, m.center)
	return unflatten(d.RawVector().Data), nil
}

// modelMarker implements the sealed Model interface.
func (*Linear) modelMarker() {}

func unflatten(flat []float64) []geom.Point {
	pts := make([]geom.Point, len(flat)/2)
	for i := range pts {
		pts[i] = geom.Pt(flat[2*i], flat[2*i+1])
	}
	return pts
}
