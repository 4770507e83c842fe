// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package coords provides the spatial sampling record stored in .far
// archives: a set of cartesian points with optional integration
// weights. [Register] installs its composite codec into a far
// registry.
package coords

import (
	"fmt"

	"github.com/far-foundation/far"
	"github.com/far-foundation/far/lib/ndarray"
)

// Coordinates is a set of N cartesian sampling points: an (N, 3)
// float64 array of x/y/z values, optionally paired with N
// integration weights.
type Coordinates struct {
	points  *ndarray.Array
	weights *ndarray.Array
	comment string
}

// New creates a coordinate set. points must be an (N, 3) float64
// array; weights, when non-nil, a one-dimensional float64 array of
// length N.
func New(points, weights *ndarray.Array, comment string) (*Coordinates, error) {
	if points == nil {
		return nil, fmt.Errorf("coords: points must not be nil")
	}
	if points.DType() != ndarray.Float64 {
		return nil, fmt.Errorf("coords: points must be float64, got %s", points.DType())
	}
	shape := points.Shape()
	if len(shape) != 2 || shape[1] != 3 {
		return nil, fmt.Errorf("coords: points must have shape (N, 3), got %v", shape)
	}
	if weights != nil {
		if weights.DType() != ndarray.Float64 {
			return nil, fmt.Errorf("coords: weights must be float64, got %s", weights.DType())
		}
		weightShape := weights.Shape()
		if len(weightShape) != 1 || weightShape[0] != shape[0] {
			return nil, fmt.Errorf("coords: %v weights for %d points", weightShape, shape[0])
		}
	}
	return &Coordinates{points: points, weights: weights, comment: comment}, nil
}

// FromXYZ creates a coordinate set from three equal-length component
// slices.
func FromXYZ(x, y, z []float64, comment string) (*Coordinates, error) {
	if len(x) != len(y) || len(y) != len(z) {
		return nil, fmt.Errorf("coords: component lengths differ: %d, %d, %d", len(x), len(y), len(z))
	}
	interleaved := make([]float64, 0, len(x)*3)
	for i := range x {
		interleaved = append(interleaved, x[i], y[i], z[i])
	}
	points, err := ndarray.FromSlice(interleaved, len(x), 3)
	if err != nil {
		return nil, fmt.Errorf("coords: %w", err)
	}
	return New(points, nil, comment)
}

// Points returns the (N, 3) point array.
func (c *Coordinates) Points() *ndarray.Array { return c.points }

// Weights returns the integration weights, or nil when unset.
func (c *Coordinates) Weights() *ndarray.Array { return c.weights }

// Comment returns the free-text comment.
func (c *Coordinates) Comment() string { return c.comment }

// Len returns the number of points.
func (c *Coordinates) Len() int { return c.points.Shape()[0] }

// Equal reports whether two coordinate sets carry identical points,
// weights, and comment.
func (c *Coordinates) Equal(other *Coordinates) bool {
	if c == nil || other == nil {
		return c == other
	}
	return ndarray.Equal(c.points, other.points) &&
		ndarray.Equal(c.weights, other.weights) &&
		c.comment == other.comment
}

// Archive field names.
const (
	fieldPoints  = "points"
	fieldWeights = "weights"
	fieldComment = "comment"
)

// Register installs the coordinates composite codec into a registry.
func Register(registry *far.Registry) error {
	return registry.Register(coordinatesCodec{})
}

type coordinatesCodec struct{}

func (coordinatesCodec) Tag() string { return "coordinates" }

func (coordinatesCodec) Instance(v any) bool {
	_, ok := v.(*Coordinates)
	return ok
}

func (coordinatesCodec) Encode(v any) (*far.FieldMap, error) {
	record, ok := v.(*Coordinates)
	if !ok {
		return nil, fmt.Errorf("coordinates codec: cannot encode %T", v)
	}
	fields := far.NewFieldMap()
	fields.Set(fieldPoints, record.points)
	if record.weights != nil {
		fields.Set(fieldWeights, record.weights)
	}
	fields.Set(fieldComment, record.comment)
	return fields, nil
}

func (coordinatesCodec) Decode(fields *far.FieldMap) (any, error) {
	points, err := fields.Array(fieldPoints)
	if err != nil {
		return nil, err
	}
	var weights *ndarray.Array
	if _, present := fields.Get(fieldWeights); present {
		weights, err = fields.Array(fieldWeights)
		if err != nil {
			return nil, err
		}
	}
	comment, err := fields.Text(fieldComment)
	if err != nil {
		return nil, err
	}
	return New(points, weights, comment)
}
