// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"log/slog"

	"github.com/gogpu/facemorph/internal/logging"
)

// SetLogger configures the logger for facemorph and all its sub-packages.
// By default, facemorph produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by facemorph:
//   - [slog.LevelDebug]: per-frame diagnostics (location misses, fallback scans)
//   - [slog.LevelInfo]: lifecycle events (mesh built, model loaded)
//   - [slog.LevelWarn]: non-fatal issues (activation clamped, eyebrow range clipped)
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	facemorph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by facemorph.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
