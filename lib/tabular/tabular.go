// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package tabular defines the boundary to delimited-text parsers:
// external collaborators that read exported measurement tables into
// coordinate and data records. Parsing is entirely outside the
// archive format; the engine only stores the parser's outputs.
package tabular

import "github.com/far-foundation/far/lib/coords"

// Parser reads one delimited text file into the archive's record
// kinds.
type Parser interface {
	// Parse returns the table's sampling coordinates and its data
	// record: a time-domain composite when the table carries time
	// columns, a frequency-domain composite when it carries
	// frequency columns.
	Parse(path string) (*coords.Coordinates, any, error)
}
