// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package utils

import "testing"

func TestIsSeqText(t *testing.T) {
	if !IsSeqText([]byte("ACGT-ACGT")) || !IsSeqText([]byte("acgtnryM KW.")) {
		t.Error("sequence text not recognized")
	}
	if IsSeqText([]byte("ACGT;")) || IsSeqText([]byte("score 42")) {
		t.Error("non-sequence text recognized")
	}
	if IsSeqText(nil) {
		t.Error("empty lines do not qualify")
	}
}

func TestComplement(t *testing.T) {
	pairs := [][2]byte{{'A', 'T'}, {'C', 'G'}, {'a', 't'}, {'g', 'c'}, {'N', 'N'}, {'-', '-'}, {' ', ' '}}
	for _, p := range pairs {
		if Complement(p[0]) != p[1] {
			t.Errorf("complement of %c is %c", p[0], Complement(p[0]))
		}
		if Complement(p[1]) != p[0] {
			t.Errorf("complement of %c is %c", p[1], Complement(p[1]))
		}
	}
}

func TestReverseComplement(t *testing.T) {
	seq := []byte("ACGT-TA")
	ReverseComplement(seq)
	if string(seq) != "TA-ACGT" {
		t.Errorf("reverse complement %q", seq)
	}
	odd := []byte("ACG")
	ReverseComplement(odd)
	if string(odd) != "CGT" {
		t.Errorf("reverse complement %q", odd)
	}
	empty := []byte(nil)
	ReverseComplement(empty)
}
