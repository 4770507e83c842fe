// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"errors"
	"fmt"
)

// UnsupportedTypeError reports a value offered to the writer that
// matches no classifier category. The write is aborted before any
// disk mutation.
type UnsupportedTypeError struct {
	// Name is the top-level object name the value was supplied
	// under, when known. Values rejected deep inside a generic
	// container carry only the type; the writer adds the object name
	// as wrapping context.
	Name string

	// GoType is the concrete Go type of the offending value.
	GoType string
}

func (err *UnsupportedTypeError) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("far: values of type %s cannot be written to an archive", err.GoType)
	}
	return fmt.Sprintf("far: object %q: values of type %s cannot be written to an archive",
		err.Name, err.GoType)
}

// IsUnsupportedType reports whether err is an [UnsupportedTypeError].
func IsUnsupportedType(err error) bool {
	var unsupported *UnsupportedTypeError
	return errors.As(err, &unsupported)
}

// NameCollisionError reports a caller-supplied object name that
// equals the reserved generic-aggregate key. The write is aborted
// before any disk mutation.
type NameCollisionError struct {
	Name string
}

func (err *NameCollisionError) Error() string {
	return fmt.Sprintf("far: object name %q is reserved for the generic-value aggregate", err.Name)
}

// IsNameCollision reports whether err is a [NameCollisionError].
func IsNameCollision(err error) bool {
	var collision *NameCollisionError
	return errors.As(err, &collision)
}

// MalformedArchiveError reports an archive entry whose payload or
// structure disagrees with what its path and header declare: byte
// lengths that do not match, missing composite fields, duplicate or
// tagless entry paths.
type MalformedArchiveError struct {
	// Object is the top-level object name the entry belongs to.
	Object string

	// Detail describes the disagreement.
	Detail string

	// Err is the underlying decode error, if any.
	Err error
}

func (err *MalformedArchiveError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("far: object %q: %s: %v", err.Object, err.Detail, err.Err)
	}
	return fmt.Sprintf("far: object %q: %s", err.Object, err.Detail)
}

func (err *MalformedArchiveError) Unwrap() error { return err.Err }

// IsMalformedArchive reports whether err is a [MalformedArchiveError].
func IsMalformedArchive(err error) bool {
	var malformed *MalformedArchiveError
	return errors.As(err, &malformed)
}

// UnknownTypeTagError reports an entry type tag (or a generic-value
// $kind tag) that the running codec registry does not recognize,
// typically an archive written by a newer, incompatible codec
// version.
type UnknownTypeTagError struct {
	// Object is the top-level object name, when known.
	Object string

	// Tag is the unrecognized tag.
	Tag string
}

func (err *UnknownTypeTagError) Error() string {
	if err.Object != "" {
		return fmt.Sprintf("far: object %q: unknown type tag %q (archive may have been written by a newer codec version)",
			err.Object, err.Tag)
	}
	return fmt.Sprintf("far: unknown type tag %q (archive may have been written by a newer codec version)", err.Tag)
}

// IsUnknownTypeTag reports whether err is an [UnknownTypeTagError].
func IsUnknownTypeTag(err error) bool {
	var unknown *UnknownTypeTagError
	return errors.As(err, &unknown)
}
