// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package facemorph transfers facial expressions from an expression model
// onto arbitrary faces.
//
// # Overview
//
// An [Engine] is built once per expression model. It triangulates the
// model's canonical landmarks together with a few auxiliary anchor points
// and keeps that mesh for its lifetime. Each rendered frame then calls
// [Engine.Transfer]:
//
//  1. the model is displaced by the frame's parameters and the eyebrow
//     offset is added;
//  2. every displaced landmark is located in the canonical mesh, which
//     yields a triangle and barycentric coordinates;
//  3. the same coordinates are applied to the target face's corresponding
//     triangle, giving the target's new landmark position.
//
// A landmark that leaves the mesh keeps its original target position. The
// auxiliary anchors are never moved.
//
// # Quick Start
//
//	asset, err := expression.LoadFile("model.json")
//	if err != nil {
//		return err
//	}
//	engine, err := facemorph.NewEngine(asset.Model,
//		facemorph.WithCanonicalFrame(asset.Width, asset.Height),
//		facemorph.WithTriangles(mesh.Face68Triangles))
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	face, err := facemorph.Augment(detected, imgW, imgH, facemorph.AuxFaceAndImage)
//	if err != nil {
//		return err
//	}
//	out, err := engine.Transfer(expression.Params{Epsilon: eps}, eyebrow, face)
//
// # Auxiliary points
//
// Every landmark set ends with an auxiliary tail described by [AuxLayout].
// The default layout appends eight points: the face bounding box padded by
// 10% of the image size (top-left, top-right, bottom-left, bottom-right)
// followed by the image corners in the same order.
//
// # Coordinate System
//
// Image coordinates: origin at the top-left, X to the right, Y down.
// [LandmarkSet.VertexCoords] converts to clip space with Y up.
//
// # Packages
//
//   - geom: points, rectangles and barycentric coordinates
//   - mesh: triangulation, adjacency and point location
//   - expression: PCA and keyframe expression models
//   - wireframe: debug rendering of a mesh
package facemorph
