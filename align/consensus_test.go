// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import "testing"

func consensusModel() *Model {
	return &Model{
		ReferenceID: "ref",
		width:       4,
		Rows: []*Row{
			{Name: "ref", Aligned: []byte("AC-T"), SeqStart: 1, SeqEnd: 3, Strand: '+'},
			{Name: "r1", Aligned: []byte("ACG "), SeqStart: 1, SeqEnd: 3, Strand: '+'},
			{Name: "r2", Aligned: []byte("CCGT"), SeqStart: 1, SeqEnd: 4, Strand: '+'},
			{Name: "r3", Aligned: []byte("Cc--"), SeqStart: 1, SeqEnd: 2, Strand: '+'},
		},
	}
}

func TestConsensusExcludesReference(t *testing.T) {
	m := consensusModel()
	// column 0 tallies {A,C,C} without the reference A: plurality C
	if got := string(m.Consensus(false)); got != "CCGT" {
		t.Errorf("consensus %q, expected CCGT", got)
	}
}

func TestConsensusTieBreak(t *testing.T) {
	m := consensusModel()
	// with the reference, column 0 ties A=2 C=2: A wins by fixed order
	if got := string(m.Consensus(true)); got != "ACGT" {
		t.Errorf("consensus %q, expected ACGT", got)
	}
}

func TestConsensusAllGapColumn(t *testing.T) {
	m := &Model{
		width: 3,
		Rows: []*Row{
			{Name: "a", Aligned: []byte("A- "), Strand: '+'},
			{Name: "b", Aligned: []byte("A-."), Strand: '+'},
		},
	}
	// '.' is not tallied either; gap comes out for data-free columns
	m.Rows[1].Aligned[2] = Pad
	if got := string(m.Consensus(false)); got != "A--" {
		t.Errorf("consensus %q, expected A--", got)
	}
}

func TestConsensusDeterministicAndMemoized(t *testing.T) {
	m := consensusModel()
	first := m.Consensus(false)
	second := m.Consensus(false)
	if &first[0] != &second[0] {
		t.Error("repeated calls should return the memoized consensus")
	}
	third := m.Consensus(true)
	if string(third) == "" || &third[0] == &first[0] {
		t.Error("changing the reference flag must recompute")
	}
	fresh := consensusModel()
	if string(fresh.Consensus(false)) != string(first) {
		t.Error("identical inputs must yield identical consensus")
	}
}
