// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Tuple is a fixed-size ordered sequence of generic values. It
// round-trips through an archive as a tuple, not a list.
type Tuple []any

// Set is an unordered collection of distinct generic values.
// Elements must be Go-comparable (scalars, strings, complex numbers);
// inserting a slice-backed value panics, as for any Go map key.
type Set map[any]struct{}

// NewSet returns a set of the given elements.
func NewSet(items ...any) Set {
	set := make(Set, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Has reports whether item is in the set.
func (s Set) Has(item any) bool {
	_, ok := s[item]
	return ok
}

// FrozenSet is an immutable-by-convention set. It is a distinct type
// so archives preserve the frozen/mutable distinction exactly.
type FrozenSet map[any]struct{}

// NewFrozenSet returns a frozen set of the given elements.
func NewFrozenSet(items ...any) FrozenSet {
	set := make(FrozenSet, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Has reports whether item is in the set.
func (s FrozenSet) Has(item any) bool {
	_, ok := s[item]
	return ok
}

// Envelope tag names in the generic JSON encoding. JSON natively
// distinguishes only ordered sequences and key-value mappings among
// structured values, so every other kind is wrapped in a small
// object carrying a "$kind" tag. These names are format constants.
const (
	kindKey = "$kind"

	kindSet       = "set"
	kindFrozenSet = "frozenset"
	kindTuple     = "tuple"
	kindComplex   = "complex"
	kindBytes     = "bytes"
	kindFloat     = "float"
)

// isGeneric reports whether v's concrete kind is in the closed
// generic set. Nested element kinds are validated during encoding,
// not here.
func isGeneric(v any) bool {
	switch v.(type) {
	case bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, complex64, complex128,
		[]any, Tuple, Set, FrozenSet:
		return true
	}
	return false
}

// encodeGenericValue serializes one generic value to its JSON form.
// Integers are emitted without a decimal point and floats always
// with one (or an exponent), so the literal form alone recovers the
// original kind on decode.
func encodeGenericValue(v any) ([]byte, error) {
	switch value := v.(type) {
	case bool:
		return strconv.AppendBool(nil, value), nil

	case string:
		return json.Marshal(value)

	case int:
		return strconv.AppendInt(nil, int64(value), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(value), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(value), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(value), 10), nil
	case int64:
		return strconv.AppendInt(nil, value, 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(value), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(value), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(value), 10), nil
	case uint:
		return encodeGenericUint(uint64(value))
	case uint64:
		return encodeGenericUint(value)

	case float32:
		return encodeGenericFloat(float64(value)), nil
	case float64:
		return encodeGenericFloat(value), nil

	case complex64:
		return encodeGenericComplex(complex128(value)), nil
	case complex128:
		return encodeGenericComplex(value), nil

	case []byte:
		encoded := base64.StdEncoding.EncodeToString(value)
		return fmt.Appendf(nil, `{%q:%q,"data":%q}`, kindKey, kindBytes, encoded), nil

	case []any:
		return encodeGenericItems(value, "")

	case Tuple:
		return encodeGenericItems(value, kindTuple)

	case Set:
		return encodeGenericSet(value, kindSet)

	case FrozenSet:
		return encodeGenericSet(map[any]struct{}(value), kindFrozenSet)

	default:
		// Values nested inside generic containers fail with the same
		// typed error as top-level unsupported values, so the
		// IsUnsupportedType predicate matches at any depth.
		return nil, &UnsupportedTypeError{GoType: fmt.Sprintf("%T", v)}
	}
}

// encodeGenericUint guards the one integer range JSON round-tripping
// cannot represent as int64.
func encodeGenericUint(value uint64) ([]byte, error) {
	if value > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows the archive integer range", value)
	}
	return strconv.AppendUint(nil, value, 10), nil
}

// encodeGenericFloat emits a JSON number that always reads back as a
// float: a decimal point or exponent is guaranteed. Non-finite
// values have no JSON literal and get a $kind envelope instead.
func encodeGenericFloat(value float64) []byte {
	switch {
	case math.IsNaN(value):
		return fmt.Appendf(nil, `{%q:%q,"value":"nan"}`, kindKey, kindFloat)
	case math.IsInf(value, 1):
		return fmt.Appendf(nil, `{%q:%q,"value":"inf"}`, kindKey, kindFloat)
	case math.IsInf(value, -1):
		return fmt.Appendf(nil, `{%q:%q,"value":"-inf"}`, kindKey, kindFloat)
	}

	text := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return []byte(text)
}

// encodeGenericComplex emits the complex envelope. Components are
// numbers when finite, the float envelope's string names otherwise.
func encodeGenericComplex(value complex128) []byte {
	return fmt.Appendf(nil, `{%q:%q,"real":%s,"imag":%s}`,
		kindKey, kindComplex,
		floatComponent(real(value)), floatComponent(imag(value)))
}

func floatComponent(value float64) []byte {
	switch {
	case math.IsNaN(value):
		return []byte(`"nan"`)
	case math.IsInf(value, 1):
		return []byte(`"inf"`)
	case math.IsInf(value, -1):
		return []byte(`"-inf"`)
	}
	return []byte(strconv.FormatFloat(value, 'g', -1, 64))
}

// encodeGenericItems emits a JSON array of encoded items, bare for
// lists or wrapped in a $kind envelope for tuples.
func encodeGenericItems(items []any, kind string) ([]byte, error) {
	var buffer bytes.Buffer
	if kind != "" {
		fmt.Fprintf(&buffer, `{%q:%q,"items":`, kindKey, kind)
	}
	buffer.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buffer.WriteByte(',')
		}
		encoded, err := encodeGenericValue(item)
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte(']')
	if kind != "" {
		buffer.WriteByte('}')
	}
	return buffer.Bytes(), nil
}

// encodeGenericSet emits a set envelope. Items are sorted by their
// encoded form so equal sets always produce identical bytes.
func encodeGenericSet(set map[any]struct{}, kind string) ([]byte, error) {
	encoded := make([][]byte, 0, len(set))
	for item := range set {
		itemBytes, err := encodeGenericValue(item)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, itemBytes)
	}
	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	})

	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, `{%q:%q,"items":[`, kindKey, kind)
	for i, itemBytes := range encoded {
		if i > 0 {
			buffer.WriteByte(',')
		}
		buffer.Write(itemBytes)
	}
	buffer.WriteString("]}")
	return buffer.Bytes(), nil
}

// decodeGenericValue parses one generic value from its JSON form.
func decodeGenericValue(data []byte) (any, error) {
	tree, err := parseJSONTree(data)
	if err != nil {
		return nil, err
	}
	return decodeGenericTree(tree)
}

// parseJSONTree decodes JSON preserving the integer/float literal
// distinction via json.Number.
func parseJSONTree(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("invalid generic-value JSON: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("invalid generic-value JSON: trailing data")
	}
	return tree, nil
}

// decodeGenericTree reconstructs values from a parsed JSON tree:
// native kinds directly, enveloped kinds via their $kind tag.
func decodeGenericTree(tree any) (any, error) {
	switch value := tree.(type) {
	case bool, string:
		return value, nil

	case json.Number:
		return decodeGenericNumber(value)

	case []any:
		items := make([]any, len(value))
		for i, item := range value {
			decoded, err := decodeGenericTree(item)
			if err != nil {
				return nil, err
			}
			items[i] = decoded
		}
		return items, nil

	case map[string]any:
		return decodeGenericEnvelope(value)

	default:
		return nil, fmt.Errorf("generic value %v (%T) is not in the supported kind set", tree, tree)
	}
}

// decodeGenericNumber recovers int64 vs float64 from the literal
// form: a decimal point or exponent means float.
func decodeGenericNumber(number json.Number) (any, error) {
	text := number.String()
	if strings.ContainsAny(text, ".eE") {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q: %w", text, err)
		}
		return value, nil
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	return value, nil
}

// decodeGenericEnvelope dispatches a JSON object by its $kind tag.
// An object without the tag is malformed: bare mappings are not a
// generic kind, so every object in a generic tree is an envelope.
func decodeGenericEnvelope(object map[string]any) (any, error) {
	kindValue, present := object[kindKey]
	if !present {
		return nil, fmt.Errorf("generic object without a %q tag", kindKey)
	}
	kind, ok := kindValue.(string)
	if !ok {
		return nil, fmt.Errorf("generic %q tag holds %T, want string", kindKey, kindValue)
	}

	switch kind {
	case kindSet:
		items, err := envelopeItems(object, kind)
		if err != nil {
			return nil, err
		}
		return decodeSetItems(items, make(Set, len(items)))

	case kindFrozenSet:
		items, err := envelopeItems(object, kind)
		if err != nil {
			return nil, err
		}
		return decodeSetItems(items, make(FrozenSet, len(items)))

	case kindTuple:
		items, err := envelopeItems(object, kind)
		if err != nil {
			return nil, err
		}
		tuple := make(Tuple, len(items))
		for i, item := range items {
			decoded, err := decodeGenericTree(item)
			if err != nil {
				return nil, err
			}
			tuple[i] = decoded
		}
		return tuple, nil

	case kindComplex:
		realPart, err := envelopeFloat(object, "real")
		if err != nil {
			return nil, err
		}
		imagPart, err := envelopeFloat(object, "imag")
		if err != nil {
			return nil, err
		}
		return complex(realPart, imagPart), nil

	case kindBytes:
		text, ok := object["data"].(string)
		if !ok {
			return nil, fmt.Errorf("bytes envelope without a data field")
		}
		decoded, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("bytes envelope: %w", err)
		}
		return decoded, nil

	case kindFloat:
		return envelopeFloat(object, "value")

	default:
		return nil, &UnknownTypeTagError{Tag: kind}
	}
}

// envelopeItems extracts the items array common to the set, frozen
// set, and tuple envelopes.
func envelopeItems(object map[string]any, kind string) ([]any, error) {
	items, ok := object["items"].([]any)
	if !ok {
		return nil, fmt.Errorf("%s envelope without an items array", kind)
	}
	return items, nil
}

// decodeSetItems decodes items into set, which is either a Set or a
// FrozenSet. Decoded elements must be Go-comparable to serve as map
// keys.
func decodeSetItems[S ~map[any]struct{}](items []any, set S) (S, error) {
	for _, item := range items {
		decoded, err := decodeGenericTree(item)
		if err != nil {
			return nil, err
		}
		if decoded != nil && !reflect.TypeOf(decoded).Comparable() {
			return nil, fmt.Errorf("set element of type %T is not comparable", decoded)
		}
		set[decoded] = struct{}{}
	}
	return set, nil
}

// envelopeFloat reads a float field that is a JSON number when
// finite and one of "nan", "inf", "-inf" otherwise.
func envelopeFloat(object map[string]any, field string) (float64, error) {
	switch value := object[field].(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(value.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("float field %q: %w", field, err)
		}
		return parsed, nil
	case string:
		switch value {
		case "nan":
			return math.NaN(), nil
		case "inf":
			return math.Inf(1), nil
		case "-inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("float field %q holds unknown name %q", field, value)
	case nil:
		return 0, fmt.Errorf("float field %q is missing", field)
	default:
		return 0, fmt.Errorf("float field %q holds %T, want number", field, value)
	}
}

// encodeAggregate serializes the top-level generic values of one
// write call as a single JSON object keyed by object name, sorted
// for deterministic output.
func encodeAggregate(objects map[string]any) ([]byte, error) {
	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	slices.Sort(names)

	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		encoded, err := encodeGenericValue(objects[name])
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", name, err)
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// decodeAggregate parses the aggregate entry back into its name →
// value mapping.
func decodeAggregate(data []byte) (map[string]any, error) {
	tree, err := parseJSONTree(data)
	if err != nil {
		return nil, err
	}
	object, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("aggregate payload is %T, want JSON object", tree)
	}

	objects := make(map[string]any, len(object))
	for name, value := range object {
		decoded, err := decodeGenericTree(value)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", name, err)
		}
		objects[name] = decoded
	}
	return objects, nil
}
