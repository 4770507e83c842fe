// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Package signal provides the audio-domain composite records stored
// in .far archives: periodically sampled data ([Signal]), arbitrarily
// sampled time data ([TimeData]), and spectral data
// ([FrequencyData]).
//
// Each record kind registers a composite codec with a far registry:
//
//	registry := far.NewRegistry()
//	if err := signal.Register(registry); err != nil { ... }
//
// Records are immutable after construction; constructors validate
// shape and sampling invariants so that archive decoding re-checks
// the same rules an in-process caller is held to.
package signal
