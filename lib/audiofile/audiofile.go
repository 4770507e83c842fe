// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package audiofile defines the boundary to audio-file codec
// implementations: external collaborators that decode PCM-style
// files into a sample array plus sample rate, and encode the
// inverse. The archive engine treats implementations purely as
// array-producing and array-consuming black boxes; clipping and
// format-validity concerns belong to the implementation.
package audiofile

import "github.com/far-foundation/far/lib/ndarray"

// Options carries format-specific decode/encode parameters, such as
// the channel count and sample rate a raw header-less file cannot
// describe itself. Implementations ignore keys they do not know.
type Options map[string]any

// Codec decodes and encodes audio files. Sample arrays are
// two-dimensional, shaped (channel, sample).
type Codec interface {
	// Decode reads the file at path into a sample array of the
	// requested element type and the file's sample rate in hertz.
	Decode(path string, dtype ndarray.DType, options Options) (*ndarray.Array, int, error)

	// Encode writes samples to the file at path. The subtype names a
	// format-specific sample encoding (for example "PCM_16" or
	// "FLOAT"); an empty subtype selects the format's default.
	Encode(path string, samples *ndarray.Array, sampleRate int, subtype string, options Options) error
}
