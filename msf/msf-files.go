// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package msf writes GCG MSF interchange text: a header block carrying
// per-row lengths and GCG checksums, then 50-column body blocks.
package msf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/seqtools/malign/align"
)

const blockWidth = 50

// Checksum is the GCG sequence checksum: position-weighted character
// sum modulo 10000. It is computed over the ungapped, uppercased
// sequence.
func Checksum(seq []byte) int {
	sum := 0
	for i, c := range seq {
		if c >= 'a' && c <= 'z' {
			c &= 0xDF
		}
		sum += (i%57 + 1) * int(c)
	}
	return sum % 10000
}

// Write serializes the model as MSF.
func Write(w io.Writer, m *align.Model) error {
	out := bufio.NewWriter(w)

	grand := 0
	checks := make([]int, len(m.Rows))
	nameWidth := 0
	for i, r := range m.Rows {
		checks[i] = Checksum(r.Ungapped())
		grand += checks[i]
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}
	grand %= 10000

	fmt.Fprint(out, "PileUp\n\n")
	fmt.Fprintf(out, " MSF: %d  Type: N  Check: %d  ..\n\n", m.Width(), grand)
	for i, r := range m.Rows {
		fmt.Fprintf(out, " Name: %-*s  Len: %d  Check: %d  Weight: 1.00\n",
			nameWidth, r.Name, m.Width(), checks[i])
	}
	fmt.Fprint(out, "\n//\n\n")

	for start := 0; start < m.Width(); start += blockWidth {
		end := start + blockWidth
		if end > m.Width() {
			end = m.Width()
		}
		for _, r := range m.Rows {
			fmt.Fprintf(out, "%-*s ", nameWidth, r.Name)
			for c := start; c < end; c++ {
				if (c-start)%10 == 0 {
					out.WriteByte(' ')
				}
				b := r.Aligned[c]
				if align.IsGapOrPad(b) {
					b = '.'
				}
				out.WriteByte(b)
			}
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}
