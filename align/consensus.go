// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

// consensusOrder fixes the tie-break: on equal tallies the symbol
// listed earliest wins. Plain bases come before ambiguity codes.
var consensusOrder = []byte("ACGTRYMKWSBDHVN")

var consensusRank = func() (rank [256]int) {
	for i := range rank {
		rank[i] = -1
	}
	for i, c := range consensusOrder {
		rank[c] = i
		rank[c|0x20] = i // lower case
	}
	return rank
}()

// Consensus derives the per-column plurality symbol over all
// sequence-bearing bytes. The reference row is excluded unless
// includeReference is set, so the reference cannot dominate its own
// derived consensus. Columns carrying no data yield a gap. The result
// is memoized until the next mutation.
func (m *Model) Consensus(includeReference bool) []byte {
	if m.consensus != nil && m.consensusWithRef == includeReference {
		return m.consensus
	}
	ref := m.Reference()
	consensus := make([]byte, m.width)
	tally := make([]int, len(consensusOrder))
	for c := 0; c < m.width; c++ {
		for i := range tally {
			tally[i] = 0
		}
		for _, r := range m.Rows {
			if r == ref && !includeReference {
				continue
			}
			if k := consensusRank[r.Aligned[c]]; k >= 0 {
				tally[k]++
			}
		}
		best, bestCount := -1, 0
		for i, n := range tally {
			if n > bestCount {
				best, bestCount = i, n
			}
		}
		if best < 0 {
			consensus[c] = Gap
		} else {
			consensus[c] = consensusOrder[best]
		}
	}
	m.consensus = consensus
	m.consensusWithRef = includeReference
	return consensus
}
