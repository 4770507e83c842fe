// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/far-foundation/far/lib/ndarray"
)

// Extension is the canonical archive file extension, appended to
// write and read paths that lack it.
const Extension = ".far"

// AggregateKey is the reserved object name under which all top-level
// generic values of one write call are bundled into a single entry.
// It never appears in a successfully read collection, and the writer
// rejects it as a caller-supplied object name.
const AggregateKey = "builtin_wrapper"

// Entry type tags. The '$' prefix separates tags from ordinary field
// names in entry paths; composite codecs contribute their own tags
// via [CompositeCodec.Tag].
const (
	tagArrayName    = "ndarray"
	tagBuiltinsName = "builtins"

	tagArray    = "$" + tagArrayName
	tagBuiltins = "$" + tagBuiltinsName
)

// archiveEntry is one named binary unit of an archive being built.
type archiveEntry struct {
	path    string
	payload []byte
}

// Write encodes objects into a .far archive at path, overwriting any
// existing file. Every object is classified and encoded into an
// in-memory buffer first; any failure aborts before the filesystem
// is touched, so no partial file is ever produced. The compress flag
// selects deflated entries over stored ones and affects on-disk size
// only, never decoded content.
func (r *Registry) Write(path string, compress bool, objects map[string]any) error {
	entries, err := r.encodeObjects(objects)
	if err != nil {
		return err
	}

	archive, err := packArchive(entries, compress)
	if err != nil {
		return err
	}

	return flushArchive(normalizePath(path), archive)
}

// encodeObjects classifies and encodes every object into the flat
// ordered entry set. Objects are processed in sorted name order and
// generic values are accumulated into the aggregate, appended as the
// final entry.
func (r *Registry) encodeObjects(objects map[string]any) ([]archiveEntry, error) {
	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	slices.Sort(names)

	var entries []archiveEntry
	aggregate := make(map[string]any)
	for _, name := range names {
		if name == AggregateKey {
			return nil, &NameCollisionError{Name: name}
		}
		if err := validateName(name); err != nil {
			return nil, fmt.Errorf("far: invalid object name %q: %w", name, err)
		}

		value := objects[name]
		if r.Classify(value) == CategoryGeneric {
			aggregate[name] = value
			continue
		}
		if err := r.encodeValue(name, name, value, &entries); err != nil {
			return nil, err
		}
	}

	if len(aggregate) > 0 {
		payload, err := encodeAggregate(aggregate)
		if err != nil {
			return nil, fmt.Errorf("far: %w", err)
		}
		entries = append(entries, archiveEntry{
			path:    AggregateKey + "/" + tagBuiltins,
			payload: payload,
		})
	}

	return entries, nil
}

// encodeValue dispatches one value, rooted at the entry path prefix,
// through the classifier's priority order: composite, array,
// generic. Composite fields recurse depth-first with the field name
// extending the path before the type tag.
func (r *Registry) encodeValue(objName, prefix string, value any, entries *[]archiveEntry) error {
	// A typed-nil pointer satisfies the composite Instance checks and
	// the array assertion below but carries nothing to encode.
	if v := reflect.ValueOf(value); v.Kind() == reflect.Pointer && v.IsNil() {
		return &UnsupportedTypeError{Name: objName, GoType: fmt.Sprintf("nil %T", value)}
	}

	if codec, ok := r.match(value); ok {
		fields, err := codec.Encode(value)
		if err != nil {
			return fmt.Errorf("far: object %q: encoding %s record: %w", objName, codec.Tag(), err)
		}

		// The tag entry marks which codec reconstructs this subtree.
		// Its payload is empty; all record content lives in the
		// field entries below it.
		*entries = append(*entries, archiveEntry{path: prefix + "/$" + codec.Tag()})

		for _, field := range fields.Names() {
			if err := validateName(field); err != nil {
				return fmt.Errorf("far: object %q: invalid field name %q: %w", objName, field, err)
			}
			fieldValue, _ := fields.Get(field)
			if err := r.encodeValue(objName, prefix+"/"+field, fieldValue, entries); err != nil {
				return err
			}
		}
		return nil
	}

	if array, ok := value.(*ndarray.Array); ok {
		payload, err := ndarray.Encode(array)
		if err != nil {
			return fmt.Errorf("far: object %q: %w", objName, err)
		}
		*entries = append(*entries, archiveEntry{path: prefix + "/" + tagArray, payload: payload})
		return nil
	}

	if isGeneric(value) {
		payload, err := encodeGenericValue(value)
		if err != nil {
			return fmt.Errorf("far: object %q: %w", objName, err)
		}
		*entries = append(*entries, archiveEntry{path: prefix + "/" + tagBuiltins, payload: payload})
		return nil
	}

	return &UnsupportedTypeError{Name: objName, GoType: fmt.Sprintf("%T", value)}
}

// validateName checks an object or field name against the path
// grammar: non-empty, no path separator, no reserved tag prefix.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name must not be empty")
	case strings.Contains(name, "/"):
		return fmt.Errorf("name must not contain '/'")
	case strings.HasPrefix(name, "$"):
		return fmt.Errorf("the '$' prefix is reserved for type tags")
	}
	return nil
}

// packArchive serializes entries into an in-memory zip archive.
// Deflate compression goes through klauspost/compress.
func packArchive(entries []archiveEntry, compress bool) ([]byte, error) {
	method := zip.Store
	if compress {
		method = zip.Deflate
	}

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	writer.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	for _, entry := range entries {
		file, err := writer.CreateHeader(&zip.FileHeader{
			Name:   entry.path,
			Method: method,
		})
		if err != nil {
			return nil, fmt.Errorf("far: creating entry %q: %w", entry.path, err)
		}
		if _, err := file.Write(entry.payload); err != nil {
			return nil, fmt.Errorf("far: writing entry %q: %w", entry.path, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("far: finalizing archive: %w", err)
	}
	return buffer.Bytes(), nil
}

// flushArchive writes the serialized archive to path through a
// temporary file in the same directory and an atomic rename, so a
// failure mid-flush never leaves a truncated file that looks valid.
func flushArchive(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".far-*")
	if err != nil {
		return fmt.Errorf("far: creating temporary archive file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("far: writing archive data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("far: closing temporary archive file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("far: renaming archive to %s: %w", path, err)
	}

	success = true
	return nil
}

// normalizePath appends the canonical extension when path lacks it.
func normalizePath(path string) string {
	if !strings.HasSuffix(path, Extension) {
		return path + Extension
	}
	return path
}
