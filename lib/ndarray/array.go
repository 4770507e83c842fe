// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Element is the closed set of Go element types an [Array] can hold.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		complex64 | complex128
}

// Array is a rectangular numeric buffer: element type, ordered shape,
// and a contiguous little-endian element buffer in row-major order.
// The zero value is not usable; construct through [New] or
// [FromSlice].
type Array struct {
	dtype DType
	shape []int
	data  []byte
}

// New creates a zero-filled array of the given element type and
// shape. An empty shape produces a zero-dimensional single-element
// array, mirroring the scalar case of the archive format.
func New(dtype DType, shape ...int) (*Array, error) {
	if dtype.Size() == 0 {
		return nil, fmt.Errorf("ndarray: invalid element type %s", dtype)
	}
	count, err := elementCount(shape)
	if err != nil {
		return nil, err
	}
	return &Array{
		dtype: dtype,
		shape: slices.Clone(shape),
		data:  make([]byte, count*dtype.Size()),
	}, nil
}

// FromSlice creates an array from values, reshaped to shape. With no
// shape the array is one-dimensional with length len(values).
// Otherwise the shape product must equal len(values).
func FromSlice[E Element](values []E, shape ...int) (*Array, error) {
	dtype := dtypeOf[E]()
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	count, err := elementCount(shape)
	if err != nil {
		return nil, err
	}
	if count != len(values) {
		return nil, fmt.Errorf("ndarray: shape %v holds %d elements, got %d values",
			shape, count, len(values))
	}
	data := make([]byte, len(values)*dtype.Size())
	encodeElements(data, values)
	return &Array{dtype: dtype, shape: slices.Clone(shape), data: data}, nil
}

// Slice returns the array's elements as a Go slice in row-major
// order. The requested element type must match the array's element
// type exactly.
func Slice[E Element](a *Array) ([]E, error) {
	dtype := dtypeOf[E]()
	if dtype != a.dtype {
		return nil, fmt.Errorf("ndarray: array holds %s, requested %s", a.dtype, dtype)
	}
	values := make([]E, a.Len())
	decodeElements(values, a.data)
	return values, nil
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Shape returns a copy of the dimension sizes.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Len returns the total element count (the shape product).
func (a *Array) Len() int {
	count := 1
	for _, dim := range a.shape {
		count *= dim
	}
	return count
}

// Bytes returns a copy of the raw little-endian element buffer.
func (a *Array) Bytes() []byte { return slices.Clone(a.data) }

// String returns a short description like "float64(2, 3)".
func (a *Array) String() string {
	dims := make([]string, len(a.shape))
	for i, dim := range a.shape {
		dims[i] = fmt.Sprint(dim)
	}
	return fmt.Sprintf("%s(%s)", a.dtype, strings.Join(dims, ", "))
}

// Equal reports whether two arrays have identical element type,
// shape, and element bytes. Two nil arrays are equal.
func Equal(a, b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.dtype == b.dtype &&
		slices.Equal(a.shape, b.shape) &&
		bytes.Equal(a.data, b.data)
}

// elementCount validates a shape and returns its product. Dimension
// sizes of zero are valid and yield an empty array.
func elementCount(shape []int) (int, error) {
	count := 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("ndarray: negative dimension size %d in shape %v", dim, shape)
		}
		count *= dim
	}
	return count, nil
}

// dtypeOf maps an element type parameter to its DType.
func dtypeOf[E Element]() DType {
	var zero E
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("ndarray: unreachable element type")
	}
}

// encodeElements writes values into data as little-endian bytes.
// data must be exactly len(values) * element size.
func encodeElements[E Element](data []byte, values []E) {
	switch typed := any(values).(type) {
	case []int8:
		for i, v := range typed {
			data[i] = byte(v)
		}
	case []uint8:
		copy(data, typed)
	case []int16:
		for i, v := range typed {
			binary.LittleEndian.PutUint16(data[i*2:], uint16(v))
		}
	case []uint16:
		for i, v := range typed {
			binary.LittleEndian.PutUint16(data[i*2:], v)
		}
	case []int32:
		for i, v := range typed {
			binary.LittleEndian.PutUint32(data[i*4:], uint32(v))
		}
	case []uint32:
		for i, v := range typed {
			binary.LittleEndian.PutUint32(data[i*4:], v)
		}
	case []int64:
		for i, v := range typed {
			binary.LittleEndian.PutUint64(data[i*8:], uint64(v))
		}
	case []uint64:
		for i, v := range typed {
			binary.LittleEndian.PutUint64(data[i*8:], v)
		}
	case []float32:
		for i, v := range typed {
			binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
		}
	case []float64:
		for i, v := range typed {
			binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
		}
	case []complex64:
		for i, v := range typed {
			binary.LittleEndian.PutUint32(data[i*8:], math.Float32bits(real(v)))
			binary.LittleEndian.PutUint32(data[i*8+4:], math.Float32bits(imag(v)))
		}
	case []complex128:
		for i, v := range typed {
			binary.LittleEndian.PutUint64(data[i*16:], math.Float64bits(real(v)))
			binary.LittleEndian.PutUint64(data[i*16+8:], math.Float64bits(imag(v)))
		}
	}
}

// decodeElements reads little-endian bytes from data into values.
// data must be exactly len(values) * element size.
func decodeElements[E Element](values []E, data []byte) {
	switch typed := any(values).(type) {
	case []int8:
		for i := range typed {
			typed[i] = int8(data[i])
		}
	case []uint8:
		copy(typed, data)
	case []int16:
		for i := range typed {
			typed[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case []uint16:
		for i := range typed {
			typed[i] = binary.LittleEndian.Uint16(data[i*2:])
		}
	case []int32:
		for i := range typed {
			typed[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
	case []uint32:
		for i := range typed {
			typed[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	case []int64:
		for i := range typed {
			typed[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
		}
	case []uint64:
		for i := range typed {
			typed[i] = binary.LittleEndian.Uint64(data[i*8:])
		}
	case []float32:
		for i := range typed {
			typed[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
	case []float64:
		for i := range typed {
			typed[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		}
	case []complex64:
		for i := range typed {
			realPart := math.Float32frombits(binary.LittleEndian.Uint32(data[i*8:]))
			imagPart := math.Float32frombits(binary.LittleEndian.Uint32(data[i*8+4:]))
			typed[i] = complex(realPart, imagPart)
		}
	case []complex128:
		for i := range typed {
			realPart := math.Float64frombits(binary.LittleEndian.Uint64(data[i*16:]))
			imagPart := math.Float64frombits(binary.LittleEndian.Uint64(data[i*16+8:]))
			typed[i] = complex(realPart, imagPart)
		}
	}
}
