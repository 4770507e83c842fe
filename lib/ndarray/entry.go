// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/far-foundation/far/lib/codec"
)

// Entry payload format constants.
const (
	// entryVersion is the ndarray payload version byte inside the
	// magic. Version 1 is the initial format.
	entryVersion = 1

	// entryFixedSize is the fixed prefix: 8-byte magic + 4-byte
	// header length.
	entryFixedSize = 12
)

// entryMagic is the 8-byte payload signature: "FARNDA" + version byte
// + reserved byte. These values are format constants; changing them
// breaks archive compatibility.
var entryMagic = [8]byte{'F', 'A', 'R', 'N', 'D', 'A', entryVersion, 0}

// entryHeader is the CBOR header that precedes the raw element bytes
// in an ndarray entry payload.
type entryHeader struct {
	DType string  `cbor:"dtype"`
	Shape []int64 `cbor:"shape"`
	Order string  `cbor:"order"`
}

// Byte order names stored in entry headers. Payloads are always
// written little-endian; big-endian is accepted on decode for
// foreign writers.
const (
	orderLittle = "little"
	orderBig    = "big"
)

// Encode serializes an array into an archive entry payload: the
// fixed magic, a 4-byte little-endian header length, the CBOR
// header, then the raw element bytes.
func Encode(a *Array) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("ndarray: cannot encode a nil array")
	}

	shape := make([]int64, len(a.shape))
	for i, dim := range a.shape {
		shape[i] = int64(dim)
	}

	header, err := codec.Marshal(entryHeader{
		DType: a.dtype.String(),
		Shape: shape,
		Order: orderLittle,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding ndarray header: %w", err)
	}

	payload := make([]byte, 0, entryFixedSize+len(header)+len(a.data))
	payload = append(payload, entryMagic[:]...)
	payload = binary.LittleEndian.AppendUint32(payload, uint32(len(header)))
	payload = append(payload, header...)
	payload = append(payload, a.data...)
	return payload, nil
}

// Decode reconstructs an array from an entry payload. It verifies
// the magic, the element type, and that the element byte length
// matches the header-implied size exactly. Big-endian payloads are
// converted to the canonical little-endian in-memory form.
func Decode(payload []byte) (*Array, error) {
	if len(payload) < entryFixedSize {
		return nil, fmt.Errorf("ndarray payload truncated: %d bytes", len(payload))
	}
	if !bytes.Equal(payload[:6], entryMagic[:6]) {
		return nil, fmt.Errorf("not an ndarray payload (bad magic %q)", payload[:6])
	}
	if payload[6] != entryVersion {
		return nil, fmt.Errorf("unsupported ndarray payload version %d (supported: %d)",
			payload[6], entryVersion)
	}

	headerLength := int(binary.LittleEndian.Uint32(payload[8:12]))
	if entryFixedSize+headerLength > len(payload) {
		return nil, fmt.Errorf("ndarray header length %d exceeds payload size %d",
			headerLength, len(payload))
	}

	var header entryHeader
	if err := codec.Unmarshal(payload[entryFixedSize:entryFixedSize+headerLength], &header); err != nil {
		return nil, fmt.Errorf("decoding ndarray header: %w", err)
	}

	dtype, err := ParseDType(header.DType)
	if err != nil {
		return nil, fmt.Errorf("ndarray header: %w", err)
	}

	// The shape product is computed with an overflow check: a crafted
	// header whose product wraps around would otherwise slip past the
	// byte-length comparison below.
	shape := make([]int, len(header.Shape))
	count := int64(1)
	for i, dim := range header.Shape {
		if dim < 0 {
			return nil, fmt.Errorf("ndarray header: negative dimension size %d", dim)
		}
		if dim != 0 && count > math.MaxInt64/dim {
			return nil, fmt.Errorf("ndarray header: shape %v element count overflows", header.Shape)
		}
		count *= dim
		shape[i] = int(dim)
	}
	width := int64(dtype.Size())
	if count > math.MaxInt64/width {
		return nil, fmt.Errorf("ndarray header: shape %v byte size overflows", header.Shape)
	}

	data := payload[entryFixedSize+headerLength:]
	if int64(len(data)) != count*width {
		return nil, fmt.Errorf("ndarray data is %d bytes, header implies %d (%s, shape %v)",
			len(data), count*width, dtype, shape)
	}

	switch header.Order {
	case orderLittle:
		data = bytes.Clone(data)
	case orderBig:
		data = swapToLittle(data, dtype)
	default:
		return nil, fmt.Errorf("ndarray header: unknown byte order %q", header.Order)
	}

	return &Array{dtype: dtype, shape: shape, data: data}, nil
}

// swapToLittle returns a copy of data with every element component
// byte-reversed. Components, not elements: a complex128 is two
// independently ordered float64 halves.
func swapToLittle(data []byte, dtype DType) []byte {
	width := dtype.componentSize()
	swapped := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += width {
		for i := 0; i < width; i++ {
			swapped[offset+i] = data[offset+width-1-i]
		}
	}
	return swapped
}
