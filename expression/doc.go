// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package expression holds the read-only expression models that displace a
// canonical landmark set.
//
// A [Model] is one of two variants:
//
//   - [*Linear]: a PCA model. The displaced shape is
//     center + sum_k epsilon_k * scale_k * component_k.
//   - [*Keyframes]: named sequences of recorded landmark frames. An
//     activation in [0, 1] selects a fractional frame and the two
//     bracketing frames are interpolated linearly.
//
// Models are built with [NewLinear] and [NewKeyframes] or decoded from a JSON
// asset with [Load]. They are never mutated after construction and may be
// shared between goroutines.
//
// [Apply] displaces a model and raises or lowers its eyebrow points by a
// per-frame offset, which is what the transfer engine consumes.
package expression
