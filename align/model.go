// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package align implements the multiple-alignment model: building it
// from pairwise hits, aligned blocks, markup rows, or a snapshot;
// trimming and renumbering its columns; and deriving consensus and
// Kimura divergence from it.
package align

import "fmt"

// Alignment byte values. Gap marks a true indel; Pad marks absence of
// data at an unaligned edge.
const (
	Gap = '-'
	Pad = ' '
)

// IsGapOrPad reports whether c carries no sequence data.
func IsGapOrPad(c byte) bool {
	return c == Gap || c == Pad
}

// Row is one aligned sequence. Aligned always has the width of the
// owning model. SeqStart and SeqEnd are 1-based native coordinates in
// alignment orientation: SeqStart belongs to the leftmost aligned base,
// so SeqStart > SeqEnd on minus-strand rows.
type Row struct {
	Name          string
	Aligned       []byte
	SeqStart      int
	SeqEnd        int
	Strand        byte // '+' or '-'
	Score         int
	LeftFlankLen  int
	RightFlankLen int
	LeftFlank     []byte
	RightFlank    []byte
}

// UngappedLength returns the number of sequence-bearing bytes of the row.
func (r *Row) UngappedLength() int {
	n := 0
	for _, c := range r.Aligned {
		if !IsGapOrPad(c) {
			n++
		}
	}
	return n
}

// Ungapped returns the row's sequence with gaps and pads stripped.
func (r *Row) Ungapped() []byte {
	seq := make([]byte, 0, len(r.Aligned))
	for _, c := range r.Aligned {
		if !IsGapOrPad(c) {
			seq = append(seq, c)
		}
	}
	return seq
}

// SeqRecord is a pre-split identifier/sequence pair from aligned FASTA
// or markup text.
type SeqRecord struct {
	ID  string
	Seq []byte
}

// Model is the multiple-alignment model. It owns its rows; rows carry
// no back-reference. A model is built once, mutated in place only by
// Trim and NormalizeCoordinates, and read by everything else.
type Model struct {
	ReferenceID string
	Rows        []*Row

	width int

	// consensus cache, dropped on trim
	consensus        []byte
	consensusWithRef bool
}

// Width returns the shared aligned length of every row.
func (m *Model) Width() int {
	return m.width
}

// Reference returns the reference row, or nil when the model was built
// without one.
func (m *Model) Reference() *Row {
	if m.ReferenceID == "" {
		return nil
	}
	for _, r := range m.Rows {
		if r.Name == m.ReferenceID {
			return r
		}
	}
	return nil
}

// RowByName returns the named row, or nil.
func (m *Model) RowByName(name string) *Row {
	for _, r := range m.Rows {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// CheckWidths verifies the column-consistency invariant. It is cheap
// and called by the mutating operations.
func (m *Model) CheckWidths() error {
	for _, r := range m.Rows {
		if len(r.Aligned) != m.width {
			return fmt.Errorf("row %v has %d columns, model has %d",
				r.Name, len(r.Aligned), m.width)
		}
	}
	return nil
}

func (m *Model) dropConsensus() {
	m.consensus = nil
}

// CachedConsensus returns the memoized consensus, if one has been
// computed since the last mutation.
func (m *Model) CachedConsensus() (consensus []byte, includesReference bool, ok bool) {
	if m.consensus == nil {
		return nil, false, false
	}
	return m.consensus, m.consensusWithRef, true
}

// SetCachedConsensus installs a consensus computed elsewhere, e.g. by
// the snapshot codec when restoring a persisted model.
func (m *Model) SetCachedConsensus(consensus []byte, includesReference bool) {
	m.consensus = consensus
	m.consensusWithRef = includesReference
}

// SnapshotBuilder assembles a model from persisted parts. It is the
// fourth build variant, fed by the snapshot codec; Build validates the
// invariants the codec's line parser cannot see.
type SnapshotBuilder struct {
	ReferenceID      string
	Rows             []*Row
	Consensus        []byte
	ConsensusWithRef bool
}

// Build finalizes the restored model.
func (b SnapshotBuilder) Build(width int) (*Model, error) {
	if len(b.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrCorruptSnapshot)
	}
	m := &Model{ReferenceID: b.ReferenceID, Rows: b.Rows, width: width}
	if err := m.CheckWidths(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if b.ReferenceID != "" && m.Reference() == nil {
		return nil, fmt.Errorf("%w: reference %v has no row", ErrCorruptSnapshot, b.ReferenceID)
	}
	if b.Consensus != nil {
		if len(b.Consensus) != width {
			return nil, fmt.Errorf("%w: consensus has %d columns, model has %d",
				ErrCorruptSnapshot, len(b.Consensus), width)
		}
		m.SetCachedConsensus(b.Consensus, b.ConsensusWithRef)
	}
	return m, nil
}

// uniqueName disambiguates duplicate row names with a numeric suffix.
// The caller warns; the model just hands out the name.
func (m *Model) uniqueName(name string) string {
	if m.RowByName(name) == nil {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if m.RowByName(candidate) == nil {
			return candidate
		}
	}
}
