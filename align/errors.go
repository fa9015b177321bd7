// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import "errors"

// Sentinel errors for programmatic error handling.
var (
	// ErrUnknownFormat: the sniffer exhausted its scan budget without
	// recognizing the input.
	ErrUnknownFormat = errors.New("unknown input format")

	// ErrAmbiguousTopology: a pairwise hit set with zero or two
	// constant sides, so no unique shared anchor exists.
	ErrAmbiguousTopology = errors.New("ambiguous alignment topology")

	// ErrUnequalLength: aligned input sequences differ in length.
	ErrUnequalLength = errors.New("aligned sequences of unequal length")

	// ErrInvalidTrimRange: requested trim columns meet or exceed the
	// alignment width.
	ErrInvalidTrimRange = errors.New("invalid trim range")

	// ErrOptionCombination: mutually incompatible pipeline options,
	// e.g. flanking output on a non-hit-derived model.
	ErrOptionCombination = errors.New("invalid option combination")

	// ErrCorruptSnapshot: a persisted model failed structural or
	// checksum validation.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
