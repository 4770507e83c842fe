// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"fmt"
	"slices"

	"github.com/far-foundation/far/lib/ndarray"
)

// FieldMap is an insertion-ordered mapping of composite field names
// to values. Composite codecs produce one on encode and receive one
// on decode; field order is preserved through the archive so encode
// and decode see the same sequence.
type FieldMap struct {
	names  []string
	values map[string]any
}

// NewFieldMap returns an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]any)}
}

// Set binds name to value, appending to the field order on first
// insertion and overwriting in place afterwards.
func (m *FieldMap) Set(name string, value any) {
	if _, exists := m.values[name]; !exists {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value bound to name.
func (m *FieldMap) Get(name string) (any, bool) {
	value, ok := m.values[name]
	return value, ok
}

// Names returns the field names in insertion order.
func (m *FieldMap) Names() []string {
	return slices.Clone(m.names)
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	return len(m.names)
}

// Array returns the named field as an ndarray, failing descriptively
// when the field is absent or holds a different category. Composite
// decoders use these typed getters to surface the exact missing or
// malformed field.
func (m *FieldMap) Array(name string) (*ndarray.Array, error) {
	value, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("required field %q is missing", name)
	}
	array, ok := value.(*ndarray.Array)
	if !ok {
		return nil, fmt.Errorf("field %q holds %T, want array", name, value)
	}
	return array, nil
}

// Text returns the named field as a string.
func (m *FieldMap) Text(name string) (string, error) {
	value, ok := m.values[name]
	if !ok {
		return "", fmt.Errorf("required field %q is missing", name)
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q holds %T, want string", name, value)
	}
	return text, nil
}

// Float64 returns the named field as a float64. Integer-encoded
// values are widened, matching the generic codec's numeric literal
// forms.
func (m *FieldMap) Float64(name string) (float64, error) {
	value, ok := m.values[name]
	if !ok {
		return 0, fmt.Errorf("required field %q is missing", name)
	}
	switch number := value.(type) {
	case float64:
		return number, nil
	case int64:
		return float64(number), nil
	default:
		return 0, fmt.Errorf("field %q holds %T, want number", name, value)
	}
}
