// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"fmt"

	"github.com/seqtools/malign/crossmatch"
)

// AnchorSide says which side of a pairwise hit set is the fixed shared
// reference.
type AnchorSide int

const (
	AnchorQuery AnchorSide = iota
	AnchorSubject
)

// ResolveAnchor determines the anchor side of a hit set. Exactly one of
// the two identifier columns must be constant across all hits: a set
// where both are constant is a single pairwise pair, and a set where
// neither is has no shared coordinate line.
func ResolveAnchor(hits []crossmatch.Hit) (AnchorSide, error) {
	if len(hits) == 0 {
		return 0, fmt.Errorf("%w: empty hit set", ErrAmbiguousTopology)
	}
	queryConstant, subjectConstant := true, true
	for _, h := range hits[1:] {
		if h.QueryID != hits[0].QueryID {
			queryConstant = false
		}
		if h.SubjectID != hits[0].SubjectID {
			subjectConstant = false
		}
	}
	switch {
	case queryConstant && subjectConstant:
		return 0, fmt.Errorf("%w: single sequence pair %v/%v",
			ErrAmbiguousTopology, hits[0].QueryID, hits[0].SubjectID)
	case queryConstant:
		return AnchorQuery, nil
	case subjectConstant:
		return AnchorSubject, nil
	default:
		return 0, fmt.Errorf("%w: no constant identifier across %d hits",
			ErrAmbiguousTopology, len(hits))
	}
}
