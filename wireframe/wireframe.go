// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wireframe draws landmark meshes for debugging.
//
// Edges are rasterized as thin quads with golang.org/x/image/vector and
// vertex indices are labelled with the Go Regular font, so a transferred
// face can be checked against its triangulation by eye.
package wireframe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/facemorph/geom"
	"github.com/gogpu/facemorph/mesh"
)

// ErrEmptyImage is returned by Render for a non-positive size.
var ErrEmptyImage = errors.New("wireframe: image size must be positive")

// Option configures drawing.
type Option func(*options)

type options struct {
	lineWidth  float64
	edge       color.Color
	labels     bool
	label      color.Color
	labelSize  float64
	background color.Color
}

func defaultOptions() options {
	return options{
		lineWidth:  1,
		edge:       color.RGBA{R: 0, G: 200, B: 255, A: 255},
		labels:     true,
		label:      color.White,
		labelSize:  10,
		background: color.Black,
	}
}

// WithLineWidth sets the edge width in pixels.
func WithLineWidth(w float64) Option {
	return func(o *options) {
		if w > 0 {
			o.lineWidth = w
		}
	}
}

// WithEdgeColor sets the edge color.
func WithEdgeColor(c color.Color) Option {
	return func(o *options) { o.edge = c }
}

// WithLabels enables or disables vertex index labels.
func WithLabels(on bool) Option {
	return func(o *options) { o.labels = on }
}

// WithLabelColor sets the label color.
func WithLabelColor(c color.Color) Option {
	return func(o *options) { o.label = c }
}

// WithLabelSize sets the label font size in pixels.
func WithLabelSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.labelSize = px
		}
	}
}

// WithBackground sets the fill color Render starts from.
func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

// Draw draws the edges of tris over dst using the positions in pts, then
// labels every vertex a triangle uses with its index. Edges with an endpoint
// past the end of pts are skipped, so a face without its auxiliary tail can
// be drawn with the full topology.
func Draw(dst draw.Image, pts []geom.Point, tris []mesh.Triangle, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over

	used := make([]bool, len(pts))
	origin := geom.Pt(float64(b.Min.X), float64(b.Min.Y))
	hw := o.lineWidth / 2
	for _, t := range tris {
		idx := t.Indices()
		for k := range 3 {
			i, j := idx[k], idx[(k+1)%3]
			if i >= len(pts) || j >= len(pts) || i < 0 || j < 0 {
				continue
			}
			used[i], used[j] = true, true
			edge(r, pts[i].Sub(origin), pts[j].Sub(origin), hw)
		}
	}
	r.Draw(dst, b, image.NewUniform(o.edge), image.Point{})

	if !o.labels {
		return nil
	}
	face, err := labelFace(o.labelSize)
	if err != nil {
		return err
	}
	defer face.Close()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(o.label), Face: face}
	for i, ok := range used {
		if !ok {
			continue
		}
		d.Dot = fixed.P(int(math.Round(pts[i].X)), int(math.Round(pts[i].Y)))
		d.DrawString(strconv.Itoa(i))
	}
	return nil
}

// edge adds the quad covering segment pq to r. Every quad is wound the same
// way, so overlapping edges accumulate rather than cancel.
func edge(r *vector.Rasterizer, p, q geom.Point, hw float64) {
	d := q.Sub(p)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		return
	}
	off := geom.Pt(-d.Y/n*hw, d.X/n*hw)

	r.MoveTo(float32(p.X+off.X), float32(p.Y+off.Y))
	r.LineTo(float32(q.X+off.X), float32(q.Y+off.Y))
	r.LineTo(float32(q.X-off.X), float32(q.Y-off.Y))
	r.LineTo(float32(p.X-off.X), float32(p.Y-off.Y))
	r.ClosePath()
}

var parseGoRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

func labelFace(px float64) (font.Face, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, fmt.Errorf("wireframe: parse label font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the mesh on a new width x height image filled with the
// background color.
func Render(pts []geom.Point, tris []mesh.Triangle, width, height int, opts ...Option) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)
	if err := Draw(img, pts, tris, opts...); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderMesh renders m with its own points and triangles.
func RenderMesh(m *mesh.Mesh, width, height int, opts ...Option) (*image.RGBA, error) {
	return Render(m.Points(), m.Triangles(), width, height, opts...)
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
