// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/far-foundation/far"
	"github.com/far-foundation/far/lib/ndarray"
)

func floatArray(t *testing.T, values []float64, shape ...int) *ndarray.Array {
	t.Helper()
	array, err := ndarray.FromSlice(values, shape...)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return array
}

func complexArray(t *testing.T, values []complex128, shape ...int) *ndarray.Array {
	t.Helper()
	array, err := ndarray.FromSlice(values, shape...)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return array
}

func TestNewSignal(t *testing.T) {
	data := floatArray(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	sig, err := NewSignal(data, 44100, "stereo sweep")
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	if sig.SamplingRate() != 44100 {
		t.Errorf("SamplingRate() = %v", sig.SamplingRate())
	}
	if sig.Comment() != "stereo sweep" {
		t.Errorf("Comment() = %q", sig.Comment())
	}
	if sig.Samples() != 3 {
		t.Errorf("Samples() = %d, want 3", sig.Samples())
	}
	if got := sig.Duration(); got != 3.0/44100 {
		t.Errorf("Duration() = %v", got)
	}
}

func TestNewSignalValidation(t *testing.T) {
	data := floatArray(t, []float64{1, 2}, 2)
	intData, err := ndarray.FromSlice([]int32{1, 2}, 2)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	cases := []struct {
		name string
		data *ndarray.Array
		rate float64
	}{
		{"nil data", nil, 44100},
		{"non-float dtype", intData, 44100},
		{"zero rate", data, 0},
		{"negative rate", data, -1},
		{"nan rate", data, math.NaN()},
		{"inf rate", data, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSignal(tc.data, tc.rate, ""); err == nil {
				t.Error("NewSignal should fail")
			}
		})
	}
}

func TestSignalEqual(t *testing.T) {
	a, err := NewSignal(floatArray(t, []float64{1, 2}, 2), 48000, "c")
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	same, err := NewSignal(floatArray(t, []float64{1, 2}, 2), 48000, "c")
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	differentRate, err := NewSignal(floatArray(t, []float64{1, 2}, 2), 44100, "c")
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}

	if !a.Equal(same) {
		t.Error("identical signals compare unequal")
	}
	if a.Equal(differentRate) {
		t.Error("signals with different rates compare equal")
	}
	if a.Equal(nil) {
		t.Error("signal compares equal to nil")
	}
}

func TestNewTimeDataValidation(t *testing.T) {
	data := floatArray(t, []float64{1, 2, 3}, 3)

	cases := []struct {
		name  string
		times []float64
		shape []int
	}{
		{"length mismatch", []float64{0, 1}, []int{2}},
		{"not increasing", []float64{0, 2, 1}, []int{3}},
		{"repeated instant", []float64{0, 1, 1}, []int{3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			times := floatArray(t, tc.times, tc.shape...)
			if _, err := NewTimeData(data, times, ""); err == nil {
				t.Error("NewTimeData should fail")
			}
		})
	}

	// A 2-D times array fails regardless of element count.
	times2d := floatArray(t, []float64{0, 1, 2}, 1, 3)
	if _, err := NewTimeData(data, times2d, ""); err == nil {
		t.Error("two-dimensional times should fail")
	}

	times := floatArray(t, []float64{0, 0.5, 2}, 3)
	if _, err := NewTimeData(data, times, "irregular"); err != nil {
		t.Errorf("valid time data rejected: %v", err)
	}
}

func TestNewFrequencyDataValidation(t *testing.T) {
	data := complexArray(t, []complex128{1, 2i, 3}, 3)

	cases := []struct {
		name string
		bins []float64
	}{
		{"negative frequency", []float64{-1, 0, 1}},
		{"not increasing", []float64{0, 100, 50}},
		{"repeated bin", []float64{0, 100, 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bins := floatArray(t, tc.bins, 3)
			if _, err := NewFrequencyData(data, bins, ""); err == nil {
				t.Error("NewFrequencyData should fail")
			}
		})
	}

	// Real data arrays are rejected: bins are complex by definition.
	realData := floatArray(t, []float64{1, 2, 3}, 3)
	bins := floatArray(t, []float64{0, 100, 200}, 3)
	if _, err := NewFrequencyData(realData, bins, ""); err == nil {
		t.Error("float64 data should fail")
	}

	if _, err := NewFrequencyData(data, bins, ""); err != nil {
		t.Errorf("valid frequency data rejected: %v", err)
	}
}

func newArchiveRegistry(t *testing.T) *far.Registry {
	t.Helper()
	registry := far.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return registry
}

func TestSignalArchiveRoundtrip(t *testing.T) {
	registry := newArchiveRegistry(t)
	path := filepath.Join(t.TempDir(), "session.far")

	// Non-ASCII comment text must survive the trip.
	sig, err := NewSignal(floatArray(t, []float64{0.5, -0.5, 0.25, 0}, 2, 2), 48000, "zwei Kanäle")
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	td, err := NewTimeData(
		floatArray(t, []float64{1, 2, 3}, 3),
		floatArray(t, []float64{0, 0.1, 0.4}, 3),
		"irregular capture",
	)
	if err != nil {
		t.Fatalf("NewTimeData: %v", err)
	}
	fd, err := NewFrequencyData(
		complexArray(t, []complex128{complex(1, -1), complex(0, 2)}, 2),
		floatArray(t, []float64{125, 250}, 2),
		"",
	)
	if err != nil {
		t.Fatalf("NewFrequencyData: %v", err)
	}

	objects := map[string]any{"sig": sig, "td": td, "fd": fd}
	if err := registry.Write(path, true, objects); err != nil {
		t.Fatalf("Write: %v", err)
	}
	result, err := registry.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	gotSig, ok := result["sig"].(*Signal)
	if !ok {
		t.Fatalf("sig decoded as %T", result["sig"])
	}
	if !gotSig.Equal(sig) {
		t.Errorf("signal roundtrip mismatch")
	}

	gotTD, ok := result["td"].(*TimeData)
	if !ok {
		t.Fatalf("td decoded as %T", result["td"])
	}
	if !gotTD.Equal(td) {
		t.Errorf("time data roundtrip mismatch")
	}

	gotFD, ok := result["fd"].(*FrequencyData)
	if !ok {
		t.Fatalf("fd decoded as %T", result["fd"])
	}
	if !gotFD.Equal(fd) {
		t.Errorf("frequency data roundtrip mismatch")
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	registry := far.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := Register(registry); err == nil {
		t.Error("second Register should fail on duplicate tags")
	}
}
