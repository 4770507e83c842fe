// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"fmt"
	"strings"

	"github.com/far-foundation/far/lib/ndarray"
)

// Category is the classifier's verdict on a value offered to the
// writer.
type Category uint8

const (
	// CategoryUnsupported means no codec path accepts the value.
	// The writer turns this into an [UnsupportedTypeError].
	CategoryUnsupported Category = iota

	// CategoryComposite means a registered composite codec claims
	// the value.
	CategoryComposite

	// CategoryArray means the value is an *ndarray.Array.
	CategoryArray

	// CategoryGeneric means the value's concrete kind is in the
	// closed generic set (bool, bytes, complex, float, integer,
	// list, set, frozen set, string, tuple).
	CategoryGeneric
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryComposite:
		return "composite"
	case CategoryArray:
		return "array"
	case CategoryGeneric:
		return "generic"
	case CategoryUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// CompositeCodec converts one domain record kind to and from an
// ordered field mapping. Field values recurse through the same four
// value categories as top-level objects: they may be composites,
// arrays, or generic values.
//
// Decode must reconstruct the record from exactly the fields Encode
// produced, and must fail with a descriptive error naming any absent
// or malformed field.
type CompositeCodec interface {
	// Tag returns the codec's globally unique type tag, without the
	// reserved '$' prefix. The tag is stored in archive entry paths;
	// changing it breaks archives written with the old tag.
	Tag() string

	// Instance reports whether v is this codec's record kind.
	Instance(v any) bool

	// Encode converts a record into its ordered field mapping.
	Encode(v any) (*FieldMap, error)

	// Decode reconstructs a record from a decoded field mapping.
	Decode(fields *FieldMap) (any, error)
}

// Registry holds the composite codecs one archive engine knows
// about. It is an explicit value with no package-global counterpart:
// independent engines with different registered kinds can coexist in
// one process. A zero-codec registry still handles arrays and
// generic values.
//
// Registries are not safe for concurrent mutation; register all
// codecs before sharing one across goroutines.
type Registry struct {
	codecs []CompositeCodec
	byTag  map[string]CompositeCodec
}

// NewRegistry returns a registry with no composite kinds.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[string]CompositeCodec)}
}

// Register installs a composite codec. Codecs are consulted in
// registration order during classification. The tag must be
// non-empty, free of '/' and '$', and not collide with a built-in or
// previously registered tag.
func (r *Registry) Register(codec CompositeCodec) error {
	tag := codec.Tag()
	switch {
	case tag == "":
		return fmt.Errorf("far: composite tag must not be empty")
	case strings.ContainsAny(tag, "/$"):
		return fmt.Errorf("far: composite tag %q contains reserved characters", tag)
	case tag == tagArrayName || tag == tagBuiltinsName:
		return fmt.Errorf("far: composite tag %q collides with a built-in tag", tag)
	}
	if _, taken := r.byTag[tag]; taken {
		return fmt.Errorf("far: composite tag %q is already registered", tag)
	}
	r.codecs = append(r.codecs, codec)
	r.byTag[tag] = codec
	return nil
}

// Classify returns the category a value would be encoded under, in
// fixed priority order: composite, then array, then generic.
// Deterministic and side-effect-free.
func (r *Registry) Classify(v any) Category {
	if _, ok := r.match(v); ok {
		return CategoryComposite
	}
	if _, ok := v.(*ndarray.Array); ok {
		return CategoryArray
	}
	if isGeneric(v) {
		return CategoryGeneric
	}
	return CategoryUnsupported
}

// match returns the first registered codec claiming v.
func (r *Registry) match(v any) (CompositeCodec, bool) {
	for _, codec := range r.codecs {
		if codec.Instance(v) {
			return codec, true
		}
	}
	return nil, false
}

// lookup returns the codec registered under tag.
func (r *Registry) lookup(tag string) (CompositeCodec, bool) {
	codec, ok := r.byTag[tag]
	return codec, ok
}
