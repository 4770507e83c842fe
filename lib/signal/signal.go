// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"fmt"
	"math"

	"github.com/far-foundation/far/lib/ndarray"
)

// Signal is periodically sampled time-domain data: a float64 array
// whose last dimension indexes samples, plus the sampling rate in
// hertz. Leading dimensions are channel dimensions.
type Signal struct {
	data         *ndarray.Array
	samplingRate float64
	comment      string
}

// NewSignal creates a signal from sample data and a sampling rate.
// The data must be a float64 array with at least one dimension; the
// sampling rate must be positive and finite.
func NewSignal(data *ndarray.Array, samplingRate float64, comment string) (*Signal, error) {
	if data == nil {
		return nil, fmt.Errorf("signal: data must not be nil")
	}
	if data.DType() != ndarray.Float64 {
		return nil, fmt.Errorf("signal: data must be float64, got %s", data.DType())
	}
	if len(data.Shape()) == 0 {
		return nil, fmt.Errorf("signal: data must have at least one dimension")
	}
	if !(samplingRate > 0) || math.IsInf(samplingRate, 1) {
		return nil, fmt.Errorf("signal: sampling rate must be positive and finite, got %v", samplingRate)
	}
	return &Signal{data: data, samplingRate: samplingRate, comment: comment}, nil
}

// Data returns the sample array.
func (s *Signal) Data() *ndarray.Array { return s.data }

// SamplingRate returns the sampling rate in hertz.
func (s *Signal) SamplingRate() float64 { return s.samplingRate }

// Comment returns the free-text comment.
func (s *Signal) Comment() string { return s.comment }

// Samples returns the number of samples per channel (the last
// dimension size).
func (s *Signal) Samples() int {
	shape := s.data.Shape()
	return shape[len(shape)-1]
}

// Duration returns the signal length in seconds.
func (s *Signal) Duration() float64 {
	return float64(s.Samples()) / s.samplingRate
}

// Equal reports whether two signals carry identical data, sampling
// rate, and comment.
func (s *Signal) Equal(other *Signal) bool {
	if s == nil || other == nil {
		return s == other
	}
	return ndarray.Equal(s.data, other.data) &&
		s.samplingRate == other.samplingRate &&
		s.comment == other.comment
}
