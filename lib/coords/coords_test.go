// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
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

func TestNew(t *testing.T) {
	points := floatArray(t, []float64{1, 0, 0, 0, 1, 0}, 2, 3)
	weights := floatArray(t, []float64{0.5, 0.5}, 2)

	set, err := New(points, weights, "hemisphere")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if set.Comment() != "hemisphere" {
		t.Errorf("Comment() = %q", set.Comment())
	}
	if set.Weights() == nil {
		t.Error("Weights() = nil, want array")
	}
}

func TestNewValidation(t *testing.T) {
	points := floatArray(t, []float64{1, 0, 0}, 1, 3)

	cases := []struct {
		name    string
		points  *ndarray.Array
		weights *ndarray.Array
	}{
		{"nil points", nil, nil},
		{"points wrong inner dim", floatArray(t, []float64{1, 0}, 1, 2), nil},
		{"points one-dimensional", floatArray(t, []float64{1, 0, 0}, 3), nil},
		{"weight count mismatch", points, floatArray(t, []float64{1, 1}, 2)},
		{"weights two-dimensional", points, floatArray(t, []float64{1}, 1, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.points, tc.weights, ""); err == nil {
				t.Error("New should fail")
			}
		})
	}
}

func TestFromXYZ(t *testing.T) {
	set, err := FromXYZ([]float64{1, 0}, []float64{0, 1}, []float64{0, 0}, "")
	if err != nil {
		t.Fatalf("FromXYZ: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	want := floatArray(t, []float64{1, 0, 0, 0, 1, 0}, 2, 3)
	if !ndarray.Equal(set.Points(), want) {
		t.Errorf("Points() = %v, want %v", set.Points(), want)
	}

	if _, err := FromXYZ([]float64{1}, []float64{1, 2}, []float64{1}, ""); err == nil {
		t.Error("mismatched component lengths should fail")
	}
}

func TestEqual(t *testing.T) {
	a, err := FromXYZ([]float64{1}, []float64{2}, []float64{3}, "c")
	if err != nil {
		t.Fatalf("FromXYZ: %v", err)
	}
	same, err := FromXYZ([]float64{1}, []float64{2}, []float64{3}, "c")
	if err != nil {
		t.Fatalf("FromXYZ: %v", err)
	}
	weighted, err := New(a.Points(), floatArray(t, []float64{1}, 1), "c")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !a.Equal(same) {
		t.Error("identical sets compare unequal")
	}
	if a.Equal(weighted) {
		t.Error("weighted and unweighted sets compare equal")
	}
	if a.Equal(nil) {
		t.Error("set compares equal to nil")
	}
}

func TestArchiveRoundtrip(t *testing.T) {
	registry := far.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("Register: %v", err)
	}

	weighted, err := New(
		floatArray(t, []float64{1, 0, 0, 0, 0, 1}, 2, 3),
		floatArray(t, []float64{0.25, 0.75}, 2),
		"quadrature grid",
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	unweighted, err := FromXYZ([]float64{0}, []float64{0}, []float64{1.7}, "")
	if err != nil {
		t.Fatalf("FromXYZ: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grid.far")
	objects := map[string]any{"weighted": weighted, "bare": unweighted}
	if err := registry.Write(path, false, objects); err != nil {
		t.Fatalf("Write: %v", err)
	}
	result, err := registry.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	got, ok := result["weighted"].(*Coordinates)
	if !ok {
		t.Fatalf("weighted decoded as %T", result["weighted"])
	}
	if !got.Equal(weighted) {
		t.Error("weighted roundtrip mismatch")
	}

	got, ok = result["bare"].(*Coordinates)
	if !ok {
		t.Fatalf("bare decoded as %T", result["bare"])
	}
	if !got.Equal(unweighted) {
		t.Error("unweighted roundtrip mismatch")
	}
	// The optional weights field is simply absent, not a zero array.
	if got.Weights() != nil {
		t.Errorf("Weights() = %v, want nil", got.Weights())
	}
}
