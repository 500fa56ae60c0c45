// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package expression

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Asset is a decoded expression asset.
type Asset struct {
	Model Model

	// Width and Height are the dimensions of the image the canonical
	// landmarks were recorded on, 0 when the asset does not say.
	Width, Height float64
}

// assetFile is the JSON layout of an expression asset. A linear asset sets
// center and components; a keyframe asset sets expressions and optionally
// neutral.
type assetFile struct {
	Center      [][2]float64              `json:"center"`
	Components  [][]float64               `json:"components"`
	Scales      []float64                 `json:"scales"`
	Neutral     [][2]float64              `json:"neutral"`
	Expressions map[string][][][2]float64 `json:"expressions"`
	Eyebrows    *[2]int                   `json:"eyebrows"`
	Width       float64                   `json:"width"`
	Height      float64                   `json:"height"`
}

// Load decodes an expression asset from r.
func Load(r io.Reader) (*Asset, error) {
	var f assetFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("expression: decode asset: %w", err)
	}

	linear := f.Center != nil || f.Components != nil || f.Scales != nil
	keyframes := f.Expressions != nil || f.Neutral != nil
	if linear == keyframes {
		return nil, ErrAmbiguousAsset
	}

	var opts []Option
	if f.Eyebrows != nil {
		opts = append(opts, WithEyebrows(Range{Start: f.Eyebrows[0], End: f.Eyebrows[1]}))
	}

	var (
		m   Model
		err error
	)
	if linear {
		m, err = NewLinear(toPoints(f.Center), f.Components, f.Scales, opts...)
	} else {
		exprs := make(map[string][][]geom.Point, len(f.Expressions))
		for name, frames := range f.Expressions {
			pts := make([][]geom.Point, len(frames))
			for i, fr := range frames {
				pts[i] = toPoints(fr)
			}
			exprs[name] = pts
		}
		m, err = NewKeyframes(exprs, toPoints(f.Neutral), opts...)
	}
	if err != nil {
		return nil, err
	}

	logging.Logger().Info("expression: model loaded", "kind", m.Kind(), "points", m.Len())
	return &Asset{Model: m, Width: f.Width, Height: f.Height}, nil
}

// LoadFile decodes the expression asset at path.
func LoadFile(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func toPoints(raw [][2]float64) []geom.Point {
	if raw == nil {
		return nil
	}
	pts := make([]geom.Point, len(raw))
	for i, p := range raw {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return pts
}
