// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package far

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/far-foundation/far/lib/ndarray"
)

// rawEntry is one archive entry with its path split into segments,
// relative to the group currently being decoded.
type rawEntry struct {
	segments []string
	payload  []byte
}

// Read opens the .far archive at path and reconstructs its full
// object mapping. Entries are grouped by top-level object name and
// decoded bottom-up, so the result is independent of entry order.
// The reserved generic aggregate is unpacked into the mapping and
// its key discarded. Any entry with an unrecognized type tag fails
// the whole read rather than silently dropping data.
func (r *Registry) Read(path string) (map[string]any, error) {
	path = normalizePath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("far: reading archive: %w", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("far: opening archive %s: %w", path, err)
	}
	reader.RegisterDecompressor(zip.Deflate, func(in io.Reader) io.ReadCloser {
		return flate.NewReader(in)
	})

	entries, err := loadEntries(reader)
	if err != nil {
		return nil, err
	}

	names, groups := groupEntries(entries)

	result := make(map[string]any, len(names))
	for _, name := range names {
		if name == AggregateKey {
			continue
		}
		value, err := r.decodeGroup(name, groups[name])
		if err != nil {
			return nil, err
		}
		result[name] = value
	}

	if aggregate, present := groups[AggregateKey]; present {
		objects, err := decodeAggregateGroup(aggregate)
		if err != nil {
			return nil, err
		}
		for name, value := range objects {
			result[name] = value
		}
	}

	return result, nil
}

// loadEntries reads every entry's path and payload, rejecting
// duplicate paths (the archive invariant no zip library enforces).
func loadEntries(reader *zip.Reader) ([]rawEntry, error) {
	entries := make([]rawEntry, 0, len(reader.File))
	seen := make(map[string]bool, len(reader.File))

	for _, file := range reader.File {
		// Directory placeholders carry no payload and are not part
		// of the entry-path contract.
		if strings.HasSuffix(file.Name, "/") {
			continue
		}
		if seen[file.Name] {
			return nil, &MalformedArchiveError{
				Object: strings.SplitN(file.Name, "/", 2)[0],
				Detail: fmt.Sprintf("duplicate entry path %q", file.Name),
			}
		}
		seen[file.Name] = true

		payload, err := readEntry(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{
			segments: strings.Split(file.Name, "/"),
			payload:  payload,
		})
	}
	return entries, nil
}

func readEntry(file *zip.File) ([]byte, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("far: opening entry %q: %w", file.Name, err)
	}
	defer opened.Close()

	payload, err := io.ReadAll(opened)
	if err != nil {
		return nil, fmt.Errorf("far: reading entry %q: %w", file.Name, err)
	}
	return payload, nil
}

// groupEntries splits entries by their leading path segment,
// preserving first-appearance order, and strips that segment.
func groupEntries(entries []rawEntry) ([]string, map[string][]rawEntry) {
	var names []string
	groups := make(map[string][]rawEntry)
	for _, entry := range entries {
		name := entry.segments[0]
		if _, present := groups[name]; !present {
			names = append(names, name)
		}
		groups[name] = append(groups[name], rawEntry{
			segments: entry.segments[1:],
			payload:  entry.payload,
		})
	}
	return names, groups
}

// decodeGroup reconstructs one object (or one composite field) from
// the entries under its path. The terminal type-tag entry selects
// the decoder; for composites, all child groups are resolved into a
// field mapping before the codec's Decode runs.
func (r *Registry) decodeGroup(objName string, entries []rawEntry) (any, error) {
	var tag string
	var tagPayload []byte
	for _, entry := range entries {
		if len(entry.segments) != 1 || !strings.HasPrefix(entry.segments[0], "$") {
			continue
		}
		if tag != "" {
			return nil, &MalformedArchiveError{
				Object: objName,
				Detail: fmt.Sprintf("conflicting type tags %q and %q", tag, entry.segments[0]),
			}
		}
		tag = entry.segments[0]
		tagPayload = entry.payload
	}
	if tag == "" {
		return nil, &MalformedArchiveError{Object: objName, Detail: "no type tag entry"}
	}

	switch tag {
	case tagArray:
		if len(entries) > 1 {
			return nil, &MalformedArchiveError{Object: objName, Detail: "array entry has nested entries"}
		}
		array, err := ndarray.Decode(tagPayload)
		if err != nil {
			return nil, &MalformedArchiveError{Object: objName, Detail: "decoding array entry", Err: err}
		}
		return array, nil

	case tagBuiltins:
		if len(entries) > 1 {
			return nil, &MalformedArchiveError{Object: objName, Detail: "generic entry has nested entries"}
		}
		value, err := decodeGenericValue(tagPayload)
		if err != nil {
			if IsUnknownTypeTag(err) {
				return nil, fmt.Errorf("far: object %q: %w", objName, err)
			}
			return nil, &MalformedArchiveError{Object: objName, Detail: "decoding generic entry", Err: err}
		}
		return value, nil

	default:
		return r.decodeComposite(objName, tag, entries)
	}
}

// decodeComposite resolves all child entries into a field mapping,
// then hands it to the registered codec for the tag. Child fields
// keep the archive's entry order, which is the encode-time field
// order.
func (r *Registry) decodeComposite(objName, tag string, entries []rawEntry) (any, error) {
	codec, ok := r.lookup(strings.TrimPrefix(tag, "$"))
	if !ok {
		return nil, &UnknownTypeTagError{Object: objName, Tag: tag}
	}

	fieldNames, fieldGroups := groupEntries(filterChildren(entries))
	fields := NewFieldMap()
	for _, field := range fieldNames {
		value, err := r.decodeGroup(objName, fieldGroups[field])
		if err != nil {
			return nil, err
		}
		fields.Set(field, value)
	}

	record, err := codec.Decode(fields)
	if err != nil {
		return nil, &MalformedArchiveError{
			Object: objName,
			Detail: fmt.Sprintf("decoding %s record", codec.Tag()),
			Err:    err,
		}
	}
	return record, nil
}

// filterChildren drops the tag entry, leaving only nested field
// entries.
func filterChildren(entries []rawEntry) []rawEntry {
	children := entries[:0:0]
	for _, entry := range entries {
		if len(entry.segments) == 1 && strings.HasPrefix(entry.segments[0], "$") {
			continue
		}
		children = append(children, entry)
	}
	return children
}

// decodeAggregateGroup unpacks the reserved aggregate entry into its
// name → value mapping.
func decodeAggregateGroup(entries []rawEntry) (map[string]any, error) {
	if len(entries) != 1 || len(entries[0].segments) != 1 || entries[0].segments[0] != tagBuiltins {
		return nil, &MalformedArchiveError{
			Object: AggregateKey,
			Detail: "aggregate must be a single generic entry",
		}
	}

	objects, err := decodeAggregate(entries[0].payload)
	if err != nil {
		if IsUnknownTypeTag(err) {
			return nil, fmt.Errorf("far: object %q: %w", AggregateKey, err)
		}
		return nil, &MalformedArchiveError{Object: AggregateKey, Detail: "decoding aggregate entry", Err: err}
	}
	return objects, nil
}
