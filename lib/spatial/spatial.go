// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial defines the boundary to spatial-measurement
// converters: external collaborators that map a measurement-file
// object (loaded elsewhere) onto the archive's record kinds. The
// engine's only requirement on implementations is that their outputs
// classify as composite or array values under the registry in use.
package spatial

import "github.com/far-foundation/far/lib/coords"

// Converter maps one externally loaded measurement object to a
// domain record plus its source and receiver geometries.
type Converter interface {
	// Convert produces the measurement's data record (a registered
	// composite kind, typically time- or frequency-domain) and the
	// coordinate sets of its sources and receivers.
	Convert(measurement any) (record any, source, receiver *coords.Coordinates, err error)
}
