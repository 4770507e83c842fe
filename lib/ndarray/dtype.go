// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package ndarray

import "fmt"

// DType identifies the element type of an array. The string form
// (via [DType.String]) is stored in archive entry headers; changing
// a name breaks archive format compatibility.
type DType uint8

const (
	Int8 DType = iota + 1
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

// String returns the header name of the element type.
func (dt DType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(dt))
	}
}

// ParseDType parses an element type from its header name.
func ParseDType(name string) (DType, error) {
	switch name {
	case "int8":
		return Int8, nil
	case "int16":
		return Int16, nil
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "uint8":
		return Uint8, nil
	case "uint16":
		return Uint16, nil
	case "uint32":
		return Uint32, nil
	case "uint64":
		return Uint64, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case "complex64":
		return Complex64, nil
	case "complex128":
		return Complex128, nil
	default:
		return 0, fmt.Errorf("unknown element type: %q", name)
	}
}

// Size returns the byte width of one element (16 for complex128).
func (dt DType) Size() int {
	switch dt {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// componentSize returns the byte width of the smallest independently
// byte-ordered unit of an element. Complex elements are two
// floating-point components, each swapped on its own when converting
// byte order.
func (dt DType) componentSize() int {
	switch dt {
	case Complex64:
		return 4
	case Complex128:
		return 8
	default:
		return dt.Size()
	}
}
