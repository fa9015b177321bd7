// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import "fmt"

// Trim removes left and right columns from each edge of every row.
// Each removed sequence-bearing byte moves that row's edge coordinate
// by one in the direction implied by its strand. The cached consensus
// is dropped.
func (m *Model) Trim(left, right int) error {
	if left < 0 || right < 0 || left+right >= m.width {
		return fmt.Errorf("%w: %d+%d columns of %d", ErrInvalidTrimRange, left, right, m.width)
	}
	for _, r := range m.Rows {
		leftReal := countReal(r.Aligned[:left])
		rightReal := countReal(r.Aligned[m.width-right:])
		if r.Strand == '-' {
			r.SeqStart -= leftReal
			r.SeqEnd += rightReal
		} else {
			r.SeqStart += leftReal
			r.SeqEnd -= rightReal
		}
		r.Aligned = r.Aligned[left : m.width-right]
	}
	m.width -= left + right
	m.dropConsensus()
	return m.CheckWidths()
}

func countReal(cols []byte) int {
	n := 0
	for _, c := range cols {
		if !IsGapOrPad(c) {
			n++
		}
	}
	return n
}

// NormalizeCoordinates renumbers every row in reference-column space,
// discarding prior absolute numbering: a row's SeqStart becomes the
// 1-based count of reference sequence-bearing columns up to its first
// own sequence-bearing column (all columns count when the model has no
// reference row), and SeqEnd follows from its ungapped length. Strand
// is preserved. Idempotent: the result depends only on column layout.
func (m *Model) NormalizeCoordinates() {
	ref := m.Reference()
	pos := make([]int, m.width)
	count := 0
	for c := 0; c < m.width; c++ {
		if ref == nil || !IsGapOrPad(ref.Aligned[c]) {
			count++
		}
		pos[c] = count
	}
	for _, r := range m.Rows {
		first := -1
		for c, b := range r.Aligned {
			if !IsGapOrPad(b) {
				first = c
				break
			}
		}
		if first < 0 {
			r.SeqStart, r.SeqEnd = 1, 0
			continue
		}
		start := pos[first]
		if start == 0 {
			start = 1 // row begins in an insertion block before the first reference base
		}
		r.SeqStart = start
		r.SeqEnd = start + r.UngappedLength() - 1
	}
	m.dropConsensus()
}
