// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package facemorph

import (
	"errors"

	"github.com/gogpu/facemorph/expression"
	"github.com/gogpu/facemorph/internal/parallel"
)

// TransferAll transfers the same expression onto several faces in parallel.
// Results are in target order. If any face fails, the error of the first
// failing face is returned as a *FaceError and the results are discarded.
//
// The worker pool is started on first use and released by Close.
func (e *Engine) TransferAll(params expression.Params, eyebrowOffset float64, targets []*LandmarkSet) ([]*LandmarkSet, error) {
	pool, err := e.workerPool()
	if err != nil {
		return nil, err
	}

	out := make([]*LandmarkSet, len(targets))
	err = pool.Run(len(targets), func(i int) error {
		res, err := e.Transfer(params, eyebrowOffset, targets[i])
		if err != nil {
			return &FaceError{Face: i, Err: err}
		}
		out[i] = res
		return nil
	})
	if errors.Is(err, parallel.ErrClosed) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) workerPool() (*parallel.Pool, error) {
	e.poolMu.Lock()
	defer e.poolMu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}
	if e.pool == nil {
		e.pool = parallel.NewPool(e.workers)
		Logger().Debug("facemorph: worker pool started", "workers", e.pool.Workers())
	}
	return e.pool, nil
}

// Close stops the worker pool used by TransferAll. Transfer keeps working
// after Close; TransferAll returns ErrClosed. Close is safe to call multiple
// times.
func (e *Engine) Close() {
	e.poolMu.Lock()
	pool := e.pool
	e.pool = nil
	e.closed = true
	e.poolMu.Unlock()

	if pool != nil {
		pool.Close()
	}
}
