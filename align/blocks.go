// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// FromAlignedBlocks builds a model from pre-aligned identifier/sequence
// pairs. All sequences must have equal length. Leading and trailing gap
// runs mark absence of data, not indels, and become pads. Duplicate
// identifiers are disambiguated with a numeric suffix and a warning.
// The model has no reference row.
func FromAlignedBlocks(records []SeqRecord) (*Model, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no aligned sequences", ErrUnknownFormat)
	}
	m := &Model{width: len(records[0].Seq)}
	for _, rec := range records {
		if len(rec.Seq) != m.width {
			return nil, fmt.Errorf("%w: %v has %d columns, expected %d",
				ErrUnequalLength, rec.ID, len(rec.Seq), m.width)
		}
		aligned := padEdgeGaps(normalizeGaps(rec.Seq))
		name := m.uniqueName(rec.ID)
		if name != rec.ID {
			log.Printf("warning: duplicate identifier %v renamed to %v", rec.ID, name)
		}
		row := &Row{Name: name, Aligned: aligned, Strand: '+'}
		row.SeqStart = 1
		row.SeqEnd = row.UngappedLength()
		m.Rows = append(m.Rows, row)
	}
	return m, m.CheckWidths()
}

// FromMarkup builds a model from markup-alignment rows. Identifiers of
// the form name/start-end supply native coordinates (start > end means
// minus strand); others default to 1..ungapped length. refID, when it
// names a row, marks that row as the reference.
func FromMarkup(records []SeqRecord, refID string) (*Model, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no markup rows", ErrUnknownFormat)
	}
	m := &Model{width: len(records[0].Seq)}
	for _, rec := range records {
		if len(rec.Seq) != m.width {
			return nil, fmt.Errorf("%w: %v has %d columns, expected %d",
				ErrUnequalLength, rec.ID, len(rec.Seq), m.width)
		}
		base, start, end, ok := SplitRangedID(rec.ID)
		name := m.uniqueName(base)
		if name != base {
			log.Printf("warning: duplicate identifier %v renamed to %v", base, name)
		}
		row := &Row{Name: name, Aligned: normalizeGaps(rec.Seq), Strand: '+'}
		if ok {
			row.SeqStart, row.SeqEnd = start, end
			if start > end {
				row.Strand = '-'
			}
		} else {
			row.SeqStart = 1
			row.SeqEnd = row.UngappedLength()
		}
		m.Rows = append(m.Rows, row)
	}
	if refID != "" && m.RowByName(refID) != nil {
		m.ReferenceID = refID
	}
	return m, m.CheckWidths()
}

// normalizeGaps copies seq, mapping the '.' pad convention to Pad.
func normalizeGaps(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if c == '.' {
			c = Pad
		}
		out[i] = c
	}
	return out
}

// padEdgeGaps reinterprets leading and trailing gap runs as pads.
func padEdgeGaps(seq []byte) []byte {
	for i := 0; i < len(seq) && IsGapOrPad(seq[i]); i++ {
		seq[i] = Pad
	}
	for i := len(seq) - 1; i >= 0 && IsGapOrPad(seq[i]); i-- {
		seq[i] = Pad
	}
	return seq
}

// SplitRangedID splits "name/start-end" identifiers. Identifiers
// without a coordinate range come back unchanged with ok false.
func SplitRangedID(id string) (name string, start, end int, ok bool) {
	slash := strings.LastIndexByte(id, '/')
	if slash < 0 {
		return id, 0, 0, false
	}
	dash := strings.IndexByte(id[slash:], '-')
	if dash < 0 {
		return id, 0, 0, false
	}
	dash += slash
	start, err1 := strconv.Atoi(id[slash+1 : dash])
	end, err2 := strconv.Atoi(id[dash+1:])
	if err1 != nil || err2 != nil {
		return id, 0, 0, false
	}
	return id[:slash], start, end, true
}
