// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command facemorph transfers an expression model onto detected faces and
// writes the remapped landmarks of every frame as JSON.
//
// Usage:
//
//	facemorph -model model.json -faces faces.json [-track track.json] [-out frames.json]
//
// Without a track file a keyframe model is swept from activation 0 to 1 over
// -frames frames.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/facemorph"
	"github.com/gogpu/facemorph/expression"
	"github.com/gogpu/facemorph/mesh"
	"github.com/gogpu/facemorph/wireframe"
)

type config struct {
	model      string
	faces      string
	track      string
	out        string
	wireframe  string
	triangles  string
	expression string
	frames     int
	aux        int
	epsilon    float64
	workers    int
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("facemorph", flag.ContinueOnError)
	fs.SetOutput(stderr)

	c := &config{}
	fs.StringVar(&c.model, "model", "", "expression asset (JSON)")
	fs.StringVar(&c.faces, "faces", "", "detected faces (JSON)")
	fs.StringVar(&c.track, "track", "", "per-frame parameters (JSON); omit to sweep a keyframe model")
	fs.StringVar(&c.out, "out", "-", "output file, - for stdout")
	fs.StringVar(&c.wireframe, "wireframe", "", "write the first frame's first face as a PNG wireframe")
	fs.StringVar(&c.triangles, "triangles", "delaunay", "triangulation: delaunay or face68")
	fs.StringVar(&c.expression, "expression", "", "keyframe expression to sweep")
	fs.IntVar(&c.frames, "frames", 30, "frames in an activation sweep")
	fs.IntVar(&c.aux, "aux", int(facemorph.AuxFaceAndImage), "auxiliary points per face: 0, 4 or 8")
	fs.Float64Var(&c.epsilon, "eps", 0, "barycentric tolerance, 0 for the default")
	fs.IntVar(&c.workers, "workers", 0, "goroutines for multi-face transfer, 0 for GOMAXPROCS")
	fs.BoolVar(&c.verbose, "v", false, "debug logging to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.model == "" || c.faces == "" {
		fs.Usage()
		return nil, errors.New("-model and -faces are required")
	}
	if c.triangles != "delaunay" && c.triangles != "face68" {
		return nil, fmt.Errorf("unknown -triangles %q", c.triangles)
	}
	return c, nil
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if c.verbose {
		facemorph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(c, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(c *config, stdout io.Writer) error {
	asset, err := expression.LoadFile(c.model)
	if err != nil {
		return err
	}
	faces, err := readFaces(c.faces)
	if err != nil {
		return err
	}

	layout := facemorph.AuxLayout(c.aux)
	opts := []facemorph.Option{
		facemorph.WithAuxLayout(layout),
		facemorph.WithEpsilon(c.epsilon),
		facemorph.WithWorkers(c.workers),
	}
	if asset.Width > 0 && asset.Height > 0 {
		opts = append(opts, facemorph.WithCanonicalFrame(asset.Width, asset.Height))
	}
	if c.triangles == "face68" {
		opts = append(opts, facemorph.WithTriangles(mesh.Face68Triangles))
	}

	engine, err := facemorph.NewEngine(asset.Model, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	targets := make([]*facemorph.LandmarkSet, len(faces.Faces))
	for i, f := range faces.Faces {
		targets[i], err = facemorph.Augment(toPoints(f), faces.Width, faces.Height, layout)
		if err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}

	track, err := loadTrack(c, asset.Model)
	if err != nil {
		return err
	}

	result := output{Width: faces.Width, Height: faces.Height, Frames: make([]outputFrame, len(track))}
	for i, step := range track {
		sets, err := engine.TransferAll(step.params(), step.Eyebrow, targets)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		result.Frames[i] = newOutputFrame(sets)

		if i == 0 && c.wireframe != "" && len(sets) > 0 {
			if err := saveWireframe(c.wireframe, engine, sets[0], faces); err != nil {
				return err
			}
		}
	}

	stats := engine.Stats()
	facemorph.Logger().Info("transfer done",
		"frames", len(track), "faces", len(targets),
		"located", stats.Located, "scanned", stats.Scanned, "missed", stats.Missed)

	return writeOutput(c.out, stdout, &result)
}

func saveWireframe(path string, e *facemorph.Engine, set *facemorph.LandmarkSet, faces *faceFile) error {
	img, err := wireframe.Render(set.Points, e.Mesh().Triangles(), int(faces.Width), int(faces.Height))
	if err != nil {
		return err
	}
	return wireframe.SavePNG(path, img)
}
