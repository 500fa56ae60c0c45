// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

// TextureCoords returns the landmarks as flat (u, v) pairs normalized by the
// image size, for sampling the source image.
func (s *LandmarkSet) TextureCoords() []float32 {
	out := make([]float32, 0, 2*len(s.Points))
	for _, p := range s.Points {
		out = append(out, float32(p.X/s.Width), float32(p.Y/s.Height))
	}
	return out
}

// VertexCoords returns the landmarks as flat (x, y) pairs in clip space:
// [-1, 1] on both axes with Y pointing up.
func (s *LandmarkSet) VertexCoords() []float32 {
	out := make([]float32, 0, 2*len(s.Points))
	for _, p := range s.Points {
		out = append(out, float32(2*p.X/s.Width-1), float32(1-2*p.Y/s.Height))
	}
	return out
}
