// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"fmt"

	"github.com/far-foundation/far/lib/ndarray"
)

// TimeData is time-domain data sampled at arbitrary instants: a
// float64 data array whose last dimension indexes samples, plus the
// strictly increasing sampling times in seconds.
type TimeData struct {
	data    *ndarray.Array
	times   *ndarray.Array
	comment string
}

// NewTimeData creates time data. times must be a one-dimensional
// strictly increasing float64 array whose length equals the last
// dimension of data.
func NewTimeData(data, times *ndarray.Array, comment string) (*TimeData, error) {
	if data == nil || times == nil {
		return nil, fmt.Errorf("timedata: data and times must not be nil")
	}
	if data.DType() != ndarray.Float64 {
		return nil, fmt.Errorf("timedata: data must be float64, got %s", data.DType())
	}
	if times.DType() != ndarray.Float64 {
		return nil, fmt.Errorf("timedata: times must be float64, got %s", times.DType())
	}
	dataShape := data.Shape()
	if len(dataShape) == 0 {
		return nil, fmt.Errorf("timedata: data must have at least one dimension")
	}
	timesShape := times.Shape()
	if len(timesShape) != 1 {
		return nil, fmt.Errorf("timedata: times must be one-dimensional, got shape %v", timesShape)
	}
	if timesShape[0] != dataShape[len(dataShape)-1] {
		return nil, fmt.Errorf("timedata: %d time instants for %d samples",
			timesShape[0], dataShape[len(dataShape)-1])
	}

	instants, err := ndarray.Slice[float64](times)
	if err != nil {
		return nil, fmt.Errorf("timedata: %w", err)
	}
	for i := 1; i < len(instants); i++ {
		if instants[i] <= instants[i-1] {
			return nil, fmt.Errorf("timedata: times must be strictly increasing (index %d)", i)
		}
	}

	return &TimeData{data: data, times: times, comment: comment}, nil
}

// Data returns the sample array.
func (t *TimeData) Data() *ndarray.Array { return t.data }

// Times returns the sampling instants in seconds.
func (t *TimeData) Times() *ndarray.Array { return t.times }

// Comment returns the free-text comment.
func (t *TimeData) Comment() string { return t.comment }

// Equal reports whether two time data records carry identical data,
// times, and comment.
func (t *TimeData) Equal(other *TimeData) bool {
	if t == nil || other == nil {
		return t == other
	}
	return ndarray.Equal(t.data, other.data) &&
		ndarray.Equal(t.times, other.times) &&
		t.comment == other.comment
}
