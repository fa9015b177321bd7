// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"errors"
	"testing"
)

func TestFromAlignedBlocks(t *testing.T) {
	m, err := FromAlignedBlocks([]SeqRecord{
		{ID: "AluY", Seq: []byte("--ACGT-ACGT--")},
		{ID: "AluY", Seq: []byte("CCACGTTACGTAA")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Width() != 13 {
		t.Fatalf("width %d", m.Width())
	}
	if m.ReferenceID != "" || m.Reference() != nil {
		t.Error("flat builds have no reference row")
	}
	// the second AluY is renamed, not fatal
	first, second := m.RowByName("AluY"), m.RowByName("AluY_1")
	if first == nil || second == nil {
		t.Fatal("expected rows AluY and AluY_1")
	}
	// leading/trailing gap runs are pad, the interior gap is real
	if string(first.Aligned) != "  ACGT-ACGT  " {
		t.Errorf("aligned %q", first.Aligned)
	}
	if first.SeqStart != 1 || first.SeqEnd != 8 {
		t.Errorf("coordinates %d-%d", first.SeqStart, first.SeqEnd)
	}
	if second.SeqStart != 1 || second.SeqEnd != 13 {
		t.Errorf("coordinates %d-%d", second.SeqStart, second.SeqEnd)
	}
}

func TestFromAlignedBlocksUnequal(t *testing.T) {
	_, err := FromAlignedBlocks([]SeqRecord{
		{ID: "a", Seq: []byte("ACGT")},
		{ID: "b", Seq: []byte("ACG")},
	})
	if !errors.Is(err, ErrUnequalLength) {
		t.Error("expected ErrUnequalLength, got", err)
	}
}

func TestFromMarkup(t *testing.T) {
	m, err := FromMarkup([]SeqRecord{
		{ID: "REF/11-16", Seq: []byte("ACGT-C")},
		{ID: "hit/30-25", Seq: []byte("AC-TAC")},
		{ID: "plain", Seq: []byte("..GTAC")},
	}, "REF")
	if err != nil {
		t.Fatal(err)
	}
	if m.ReferenceID != "REF" {
		t.Error("reference id", m.ReferenceID)
	}
	r := m.RowByName("hit")
	if r.SeqStart != 30 || r.SeqEnd != 25 || r.Strand != '-' {
		t.Errorf("ranged minus row %d-%d %c", r.SeqStart, r.SeqEnd, r.Strand)
	}
	r = m.RowByName("plain")
	if r.SeqStart != 1 || r.SeqEnd != 4 || r.Strand != '+' {
		t.Errorf("defaulted row %d-%d %c", r.SeqStart, r.SeqEnd, r.Strand)
	}
	if string(r.Aligned) != "  GTAC" {
		t.Errorf("dots should read as pad: %q", r.Aligned)
	}
}
