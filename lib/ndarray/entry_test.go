// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/far-foundation/far/lib/codec"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	arrays := []*Array{
		mustFromSlice(t, []float64{1, 2, 3, 4}, 2, 2),
		mustFromSlice(t, []float32{-1.5}, 1),
		mustFromSlice(t, []int8{-1, 0, 1}),
		mustFromSlice(t, []uint64{0, math.MaxUint64}),
		mustFromSlice(t, []complex128{complex(1, -2), complex(3, 4)}, 2, 1),
		mustFromSlice(t, []complex64{complex(0.5, -0.5)}),
		mustFromSlice(t, []int16{}, 0),
		mustFromSlice(t, []float64{}, 3, 0, 2),
	}

	for _, original := range arrays {
		payload, err := Encode(original)
		if err != nil {
			t.Fatalf("Encode(%s): %v", original, err)
		}

		decoded, err := Decode(payload)
		if err != nil {
			t.Fatalf("Decode(%s): %v", original, err)
		}

		if !Equal(original, decoded) {
			t.Errorf("roundtrip mismatch for %s", original)
		}
	}
}

func TestEncodeNilArray(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Error("nil array should fail to encode")
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	if _, err := Decode([]byte("FAR")); err == nil {
		t.Error("truncated payload should fail")
	}
}

func TestDecodeBadMagic(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2})
	payload, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	payload[0] = 'X'
	if _, err := Decode(payload); err == nil {
		t.Error("corrupted magic should fail")
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2})
	payload, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	payload[6] = entryVersion + 1
	if _, err := Decode(payload); err == nil {
		t.Error("future payload version should fail")
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2, 3})
	payload, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Drop the last element byte: data no longer matches the
	// header-implied size.
	if _, err := Decode(payload[:len(payload)-1]); err == nil {
		t.Error("byte-length mismatch should fail")
	}
}

func TestDecodeShapeOverflow(t *testing.T) {
	// Shapes whose element count or byte size wraps around int64 must
	// be rejected outright, not compared against the data length after
	// the product has wrapped.
	headers := []entryHeader{
		{DType: "uint8", Shape: []int64{1 << 32, 1 << 32}, Order: orderLittle},
		{DType: "float64", Shape: []int64{1 << 61}, Order: orderLittle},
		{DType: "uint8", Shape: []int64{-1}, Order: orderLittle},
	}

	for _, header := range headers {
		payload := buildPayload(t, header, nil)
		if _, err := Decode(payload); err == nil {
			t.Errorf("shape %v should fail to decode", header.Shape)
		}
	}
}

func TestDecodeHeaderLengthOverflow(t *testing.T) {
	a := mustFromSlice(t, []float64{1})
	payload, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	binary.LittleEndian.PutUint32(payload[8:12], uint32(len(payload)))
	if _, err := Decode(payload); err == nil {
		t.Error("header length past payload end should fail")
	}
}

func TestDecodeUnknownDType(t *testing.T) {
	payload := buildPayload(t, entryHeader{
		DType: "float16",
		Shape: []int64{1},
		Order: orderLittle,
	}, []byte{0, 0})

	if _, err := Decode(payload); err == nil {
		t.Error("unknown element type should fail")
	}
}

func TestDecodeUnknownByteOrder(t *testing.T) {
	payload := buildPayload(t, entryHeader{
		DType: "uint8",
		Shape: []int64{2},
		Order: "middle",
	}, []byte{1, 2})

	if _, err := Decode(payload); err == nil {
		t.Error("unknown byte order should fail")
	}
}

func TestDecodeBigEndian(t *testing.T) {
	// A foreign writer may store big-endian data; decode must swap
	// to the canonical little-endian form.
	data := make([]byte, 16)
	binary.BigEndian.PutUint64(data[0:], math.Float64bits(1.5))
	binary.BigEndian.PutUint64(data[8:], math.Float64bits(-2.25))

	payload := buildPayload(t, entryHeader{
		DType: "float64",
		Shape: []int64{2},
		Order: orderBig,
	}, data)

	decoded, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	values, err := Slice[float64](decoded)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if values[0] != 1.5 || values[1] != -2.25 {
		t.Errorf("big-endian decode = %v, want [1.5 -2.25]", values)
	}
}

func TestDecodeBigEndianComplex(t *testing.T) {
	// Complex components are swapped independently: two 8-byte
	// halves, not one 16-byte unit.
	data := make([]byte, 16)
	binary.BigEndian.PutUint64(data[0:], math.Float64bits(3))
	binary.BigEndian.PutUint64(data[8:], math.Float64bits(-4))

	payload := buildPayload(t, entryHeader{
		DType: "complex128",
		Shape: []int64{1},
		Order: orderBig,
	}, data)

	decoded, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	values, err := Slice[complex128](decoded)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if values[0] != complex(3, -4) {
		t.Errorf("decoded %v, want (3-4i)", values[0])
	}
}

func mustFromSlice[E Element](t *testing.T, values []E, shape ...int) *Array {
	t.Helper()
	a, err := FromSlice(values, shape...)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return a
}

// buildPayload assembles an entry payload from an arbitrary header
// and raw data, bypassing Encode's validation.
func buildPayload(t *testing.T, header entryHeader, data []byte) []byte {
	t.Helper()
	headerBytes, err := codec.Marshal(header)
	if err != nil {
		t.Fatalf("Marshal header: %v", err)
	}

	payload := append([]byte{}, entryMagic[:]...)
	payload = binary.LittleEndian.AppendUint32(payload, uint32(len(headerBytes)))
	payload = append(payload, headerBytes...)
	return append(payload, data...)
}
