// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides far's standard CBOR encoding configuration.
//
// The archive format uses two serialization formats with a clear
// boundary:
//
//   - JSON for the generic-value entries inside .far archives, where
//     the on-disk contract (shared with other readers of the format)
//     requires structured text.
//   - CBOR for compact binary headers: the ndarray entry header that
//     records element type, shape, and byte order ahead of the raw
//     element data.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every far package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, which keeps archives byte-stable for equal inputs.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
