// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package ali writes the blocked human-readable alignment view: rows in
// fixed-width column blocks with per-line native coordinates, an
// optional consensus line, and an optional per-row score column.
package ali

import (
	"bufio"
	"fmt"
	"io"

	"github.com/seqtools/malign/align"
)

// DefaultBlockWidth is the column count of one block.
const DefaultBlockWidth = 100

// Options controls the blocked view.
type Options struct {
	BlockWidth       int
	Consensus        []byte // consensus line on top of each block, when non-nil
	IncludeReference bool
	ShowScore        bool
}

// Write serializes the model as the blocked view. Rows that carry no
// sequence in a block are left out of that block.
func Write(w io.Writer, m *align.Model, opts Options) error {
	blockWidth := opts.BlockWidth
	if blockWidth <= 0 {
		blockWidth = DefaultBlockWidth
	}
	out := bufio.NewWriter(w)

	ref := m.Reference()
	nameWidth := len("consensus")
	for _, r := range m.Rows {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	// Per-row coordinate cursors advance by the sequence-bearing bytes
	// each block consumes, in the direction implied by strand.
	cursor := make(map[*align.Row]int, len(m.Rows))
	for _, r := range m.Rows {
		cursor[r] = r.SeqStart
	}

	for start := 0; start < m.Width(); start += blockWidth {
		end := start + blockWidth
		if end > m.Width() {
			end = m.Width()
		}
		if opts.Consensus != nil {
			fmt.Fprintf(out, "%-*s  %8d %s %d\n",
				nameWidth, "consensus", start+1, opts.Consensus[start:end], end)
		}
		for _, r := range m.Rows {
			consumed := 0
			for _, c := range r.Aligned[start:end] {
				if !align.IsGapOrPad(c) {
					consumed++
				}
			}
			if r == ref && !opts.IncludeReference {
				cursor[r] = advance(cursor[r], consumed, r.Strand)
				continue
			}
			if consumed == 0 {
				continue
			}
			from := cursor[r]
			to := advance(from, consumed-1, r.Strand)
			cursor[r] = advance(from, consumed, r.Strand)
			fmt.Fprintf(out, "%-*s  %8d %s %d",
				nameWidth, r.Name, from, r.Aligned[start:end], to)
			if opts.ShowScore {
				fmt.Fprintf(out, " %d", r.Score)
			}
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}

func advance(coord, n int, strand byte) int {
	if strand == '-' {
		return coord - n
	}
	return coord + n
}
