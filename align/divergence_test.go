// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"math"
	"testing"
)

func TestKimuraDivergence(t *testing.T) {
	m := &Model{
		ReferenceID: "ref",
		width:       4,
		Rows: []*Row{
			{Name: "ref", Aligned: []byte("ACGT"), Strand: '+'},
			{Name: "identical", Aligned: []byte("ACGT"), Strand: '+'},
			{Name: "transition", Aligned: []byte("GCGT"), Strand: '+'},
			{Name: "gappy", Aligned: []byte("AC--"), Strand: '+'},
		},
	}
	consensus := []byte("ACGT")
	d := m.KimuraDivergence(consensus)
	if len(d.Rows) != 3 {
		t.Fatalf("%d rows, reference must be excluded", len(d.Rows))
	}
	if d.Rows[0].Name != "identical" || d.Rows[1].Name != "transition" || d.Rows[2].Name != "gappy" {
		t.Fatal("rows out of order:", d.Rows)
	}
	if d.Rows[0].Distance != 0 || d.Rows[0].Saturated {
		t.Error("identical row should be at distance 0")
	}
	// one A->G transition over 4 compared columns:
	// -0.5*ln(1-0.5) - 0.25*ln(1)
	expected := -0.5 * math.Log(0.5)
	if diff := math.Abs(d.Rows[1].Distance - expected); diff > 1e-12 {
		t.Errorf("transition distance %v, expected %v", d.Rows[1].Distance, expected)
	}
	// gaps do not count as compared columns
	if d.Rows[2].Distance != 0 || d.Rows[2].Saturated {
		t.Error("gappy row compares only its two matching columns")
	}
	if d.Finite != 3 || d.Saturated != 0 {
		t.Errorf("finite %d saturated %d", d.Finite, d.Saturated)
	}
	if diff := math.Abs(d.Average - expected/3); diff > 1e-12 {
		t.Errorf("average %v", d.Average)
	}
}

func TestKimuraSaturation(t *testing.T) {
	// P=0.4 and Q=0.4 over ten compared columns: 1-2P-Q = -0.2, the
	// row is reported saturated and left out of the average.
	m := &Model{
		width: 10,
		Rows: []*Row{
			{Name: "sane", Aligned: []byte("AAAAACCCCC"), Strand: '+'},
			{Name: "hot", Aligned: []byte("GGGGAAAAAC"), Strand: '+'},
		},
	}
	consensus := []byte("AAAAACCCCC")
	d := m.KimuraDivergence(consensus)
	if len(d.Rows) != 2 {
		t.Fatal("expected two rows")
	}
	if !d.Rows[1].Saturated {
		t.Error("hot row should be saturated")
	}
	if d.Saturated != 1 || d.Finite != 1 {
		t.Errorf("finite %d saturated %d", d.Finite, d.Saturated)
	}
	if d.Average != 0 {
		t.Errorf("average over the sane row only, got %v", d.Average)
	}
}

func TestKimuraAmbiguityExcluded(t *testing.T) {
	m := &Model{
		width: 4,
		Rows: []*Row{
			{Name: "n", Aligned: []byte("NCGT"), Strand: '+'},
		},
	}
	d := m.KimuraDivergence([]byte("ACGT"))
	if d.Rows[0].Distance != 0 || d.Rows[0].Saturated {
		t.Error("N never counts as a compared column")
	}
}
