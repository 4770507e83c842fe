// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package far reads and writes .far workspace archives: single
// container files holding a named collection of heterogeneous values
// (domain composite records, multi-dimensional numeric arrays, and
// generic scalar/collection values) reconstructed exactly on read,
// independent of the order they were saved.
//
// A .far file is a zip-compatible archive. Every stored object
// becomes one or more entries addressed by slash-separated paths of
// the form
//
//	<object-name>/<...nested field segments...>/<type-tag>
//
// where the type tag is a reserved $-prefixed segment ($ndarray for
// raw array payloads, $builtins for generic values, $<kind> for each
// registered composite kind). The entry paths are the only
// compatibility contract; there is no file-level metadata beyond what
// zip itself requires.
//
// All codec configuration lives in an explicit [Registry]. A registry
// with no composite kinds handles arrays and generic values; domain
// packages install their record kinds on top:
//
//	registry := far.NewRegistry()
//	signal.Register(registry)
//	coords.Register(registry)
//
//	err := registry.Write("workspace.far", false, map[string]any{
//		"impulse":  mySignal,
//		"window":   myArray,
//		"settings": far.Tuple{int64(1), "a", 3.0},
//	})
//	objects, err := registry.Read("workspace.far")
//
// Writes are atomic: the complete archive is assembled in memory,
// then flushed through a temporary file and a rename, so a failed
// write never leaves a truncated file behind. Generic values are
// aggregated under the reserved object name "builtin_wrapper"
// ([AggregateKey]) to avoid one entry per scalar; the reserved name
// never appears in a successfully read collection and is rejected as
// a caller-supplied object name.
package far
