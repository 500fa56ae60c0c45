// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/gogpu/facemorph"
	"github.com/gogpu/facemorph/expression"
	"github.com/gogpu/facemorph/geom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// faceFile holds detector output: one landmark list per face, without
// auxiliary points, and the image size.
type faceFile struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Faces  [][][2]float64 `json:"faces"`
}

// trackStep is one frame of per-frame parameters.
type trackStep struct {
	Epsilon    []float64 `json:"epsilon"`
	Activation float64   `json:"activation"`
	Expression string    `json:"expression"`
	Eyebrow    float64   `json:"eyebrow"`
}

func (s trackStep) params() expression.Params {
	return expression.Params{Epsilon: s.Epsilon, Activation: s.Activation, Expression: s.Expression}
}

type output struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Frames []outputFrame `json:"frames"`
}

type outputFrame struct {
	Faces [][][2]float64 `json:"faces"`
}

func newOutputFrame(sets []*facemorph.LandmarkSet) outputFrame {
	f := outputFrame{Faces: make([][][2]float64, len(sets))}
	for i, s := range sets {
		pts := make([][2]float64, len(s.Points))
		for j, p := range s.Points {
			pts[j] = [2]float64{p.X, p.Y}
		}
		f.Faces[i] = pts
	}
	return f
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func readFaces(path string) (*faceFile, error) {
	var f faceFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	if len(f.Faces) == 0 {
		return nil, fmt.Errorf("%s: no faces", path)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%s: image size must be positive", path)
	}
	return &f, nil
}

// loadTrack reads the track file, or builds an activation sweep over a
// keyframe model when none is given.
func loadTrack(c *config, m expression.Model) ([]trackStep, error) {
	if c.track != "" {
		var steps []trackStep
		if err := readJSON(c.track, &steps); err != nil {
			return nil, err
		}
		return steps, nil
	}

	if m.Kind() != expression.KindKeyframes {
		return nil, errors.New("a linear model needs -track")
	}
	if c.frames < 1 {
		return nil, errors.New("-frames must be at least 1")
	}
	steps := make([]trackStep, c.frames)
	for i := range steps {
		a := 0.0
		if c.frames > 1 {
			a = float64(i) / float64(c.frames-1)
		}
		steps[i] = trackStep{Activation: a, Expression: c.expression}
	}
	return steps, nil
}

func writeOutput(path string, stdout io.Writer, v *output) (err error) {
	w := stdout
	if path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toPoints(raw [][2]float64) []geom.Point {
	pts := make([]geom.Point, len(raw))
	for i, p := range raw {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return pts
}
