// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package utils

import (
	"github.com/bits-and-blooms/bitset"
)

// Byte-class sets over the full byte range. Sequence text is classified
// by set membership rather than per-byte switch statements.
var (
	// Nucleotides holds the unambiguous DNA codes, both cases.
	Nucleotides = newByteSet("ACGTacgt")

	// Ambiguity holds the IUPAC ambiguity codes, both cases.
	Ambiguity = newByteSet("NRYMKWSBDHVnrymkwsbdhv")

	// SeqText holds every byte that may occur in an aligned sequence
	// line: nucleotides, ambiguity codes, gaps, and pads.
	SeqText = newByteSet("ACGTacgtNRYMKWSBDHVnrymkwsbdhv-. *")
)

func newByteSet(chars string) *bitset.BitSet {
	s := bitset.New(256)
	for i := 0; i < len(chars); i++ {
		s.Set(uint(chars[i]))
	}
	return s
}

// IsSeqText reports whether every byte of line is valid aligned-sequence
// text. Empty lines do not qualify.
func IsSeqText(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	for _, c := range line {
		if !SeqText.Test(uint(c)) {
			return false
		}
	}
	return true
}

var complementTable = func() (table [256]byte) {
	for i := 0; i < 256; i++ {
		table[i] = byte(i)
	}
	const from = "ACGTRYMKWSBDHVacgtrymkwsbdhv"
	const to = "TGCAYRKMWSVHDBtgcayrkmwsvhdb"
	for i := 0; i < len(from); i++ {
		table[from[i]] = to[i]
	}
	return table
}()

// Complement returns the DNA complement of base, preserving case.
// Gaps, pads, and N map to themselves.
func Complement(base byte) byte {
	return complementTable[base]
}

// ReverseComplement reverse-complements seq in place and returns it.
func ReverseComplement(seq []byte) []byte {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = Complement(seq[j]), Complement(seq[i])
	}
	if l := len(seq); l%2 == 1 {
		seq[l/2] = Complement(seq[l/2])
	}
	return seq
}
