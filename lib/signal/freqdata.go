// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"fmt"

	"github.com/far-foundation/far/lib/ndarray"
)

// FrequencyData is frequency-domain data at arbitrary bins: a
// complex128 data array whose last dimension indexes bins, plus the
// strictly increasing, non-negative bin frequencies in hertz.
type FrequencyData struct {
	data        *ndarray.Array
	frequencies *ndarray.Array
	comment     string
}

// NewFrequencyData creates frequency data. frequencies must be a
// one-dimensional strictly increasing float64 array of non-negative
// values whose length equals the last dimension of data.
func NewFrequencyData(data, frequencies *ndarray.Array, comment string) (*FrequencyData, error) {
	if data == nil || frequencies == nil {
		return nil, fmt.Errorf("frequencydata: data and frequencies must not be nil")
	}
	if data.DType() != ndarray.Complex128 {
		return nil, fmt.Errorf("frequencydata: data must be complex128, got %s", data.DType())
	}
	if frequencies.DType() != ndarray.Float64 {
		return nil, fmt.Errorf("frequencydata: frequencies must be float64, got %s", frequencies.DType())
	}
	dataShape := data.Shape()
	if len(dataShape) == 0 {
		return nil, fmt.Errorf("frequencydata: data must have at least one dimension")
	}
	frequencyShape := frequencies.Shape()
	if len(frequencyShape) != 1 {
		return nil, fmt.Errorf("frequencydata: frequencies must be one-dimensional, got shape %v", frequencyShape)
	}
	if frequencyShape[0] != dataShape[len(dataShape)-1] {
		return nil, fmt.Errorf("frequencydata: %d frequencies for %d bins",
			frequencyShape[0], dataShape[len(dataShape)-1])
	}

	bins, err := ndarray.Slice[float64](frequencies)
	if err != nil {
		return nil, fmt.Errorf("frequencydata: %w", err)
	}
	for i, bin := range bins {
		if bin < 0 {
			return nil, fmt.Errorf("frequencydata: negative frequency at index %d", i)
		}
		if i > 0 && bin <= bins[i-1] {
			return nil, fmt.Errorf("frequencydata: frequencies must be strictly increasing (index %d)", i)
		}
	}

	return &FrequencyData{data: data, frequencies: frequencies, comment: comment}, nil
}

// Data returns the complex bin array.
func (f *FrequencyData) Data() *ndarray.Array { return f.data }

// Frequencies returns the bin frequencies in hertz.
func (f *FrequencyData) Frequencies() *ndarray.Array { return f.frequencies }

// Comment returns the free-text comment.
func (f *FrequencyData) Comment() string { return f.comment }

// Equal reports whether two frequency data records carry identical
// data, frequencies, and comment.
func (f *FrequencyData) Equal(other *FrequencyData) bool {
	if f == nil || other == nil {
		return f == other
	}
	return ndarray.Equal(f.data, other.data) &&
		ndarray.Equal(f.frequencies, other.frequencies) &&
		f.comment == other.comment
}
