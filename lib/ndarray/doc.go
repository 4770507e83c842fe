// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package ndarray provides the rectangular numeric array value used
// throughout far: a fixed element type, an ordered shape, and a
// contiguous little-endian element buffer.
//
// Arrays are one of the four value categories the archive engine
// recognizes (composite, array, generic, unsupported) and the only
// category with a raw binary entry payload. The entry codec in this
// package produces that payload: a fixed magic, a CBOR header
// recording element type, shape, and byte order, then the contiguous
// element bytes. See [Encode] and [Decode].
//
// Construction goes through the generic helpers:
//
//	a, err := ndarray.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
//	values, err := ndarray.Slice[float64](a)
//
// The in-memory buffer is always little-endian regardless of host
// byte order; big-endian payloads are swapped on decode.
package ndarray
