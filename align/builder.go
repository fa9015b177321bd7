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

	"github.com/seqtools/malign/crossmatch"
	"github.com/seqtools/malign/utils"
)

// FlankLookup resolves raw bases adjacent to a row's aligned span.
// Implementations clamp the requested 1-based inclusive range to the
// available sequence; ok is false when the name is unknown.
type FlankLookup interface {
	Bases(name string, start, end int) (seq []byte, ok bool)
}

// anchoredHit is a pairwise hit normalized so that its anchor side
// ascends. The partner becomes the row.
type anchoredHit struct {
	anchorStart, anchorEnd int
	anchorAln              []byte
	rowName                string
	rowStart, rowEnd       int
	rowStrand              byte
	rowAln                 []byte
	score                  int
}

// hitProfile is an anchoredHit decomposed against the anchor's
// coordinate line: one aligned row byte per covered anchor base, plus
// the row bytes inserted before each local base index (index n holds
// the run after the last base).
type hitProfile struct {
	c0     int // anchor offset relative to the leftmost covered base
	n      int
	anchor []byte
	base   []byte
	ins    [][]byte
}

// FromHits merges independently gapped pairwise hits into one model
// anchored on the shared side. The master gap pattern grows while hits
// are applied in input order; the merge is not commutative across
// orders, so input order is the defined processing order. The anchor
// becomes row 0; anchor positions covered by no hit are filled with N.
//
// When maxFlankLen > 0, every row receives exactly maxFlankLen flank
// bytes per side from the lookup, pad-filled where the sequence falls
// short; a lookup miss degrades that row's flanks to all-pad.
func FromHits(hits []crossmatch.Hit, side AnchorSide, flanks FlankLookup, maxFlankLen int) (*Model, error) {
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: empty hit set", ErrAmbiguousTopology)
	}

	anchored := make([]anchoredHit, len(hits))
	for i, h := range hits {
		anchored[i] = normalizeHit(h, side)
	}

	refStart, refEnd := anchored[0].anchorStart, anchored[0].anchorEnd
	for _, a := range anchored[1:] {
		if a.anchorStart < refStart {
			refStart = a.anchorStart
		}
		if a.anchorEnd > refEnd {
			refEnd = a.anchorEnd
		}
	}
	refLen := refEnd - refStart + 1

	profiles := make([]hitProfile, len(anchored))
	for i, a := range anchored {
		p, err := profileHit(a, refStart)
		if err != nil {
			return nil, err
		}
		profiles[i] = p
	}

	// master[j] holds the insertion-column count before anchor base j;
	// master[refLen] holds the run after the last base.
	master := make([]int, refLen+1)
	for _, p := range profiles {
		for k, run := range p.ins {
			if j := p.c0 + k; len(run) > master[j] {
				master[j] = len(run)
			}
		}
	}

	// colBase[j] is the column of anchor base j; colBase[refLen] is one
	// past the final insertion block.
	colBase := make([]int, refLen+1)
	sum := 0
	for j := 0; j <= refLen; j++ {
		sum += master[j]
		colBase[j] = sum + j
	}
	width := refLen + sum

	m := &Model{width: width}

	anchorName := hits[0].SubjectID
	if side == AnchorQuery {
		anchorName = hits[0].QueryID
	}
	m.ReferenceID = anchorName
	reference := &Row{
		Name:     anchorName,
		Aligned:  renderReference(profiles, master, colBase, refLen, width),
		SeqStart: refStart,
		SeqEnd:   refEnd,
		Strand:   '+',
	}
	m.Rows = append(m.Rows, reference)

	for i, p := range profiles {
		a := anchored[i]
		name := m.uniqueName(a.rowName)
		if name != a.rowName {
			log.Printf("warning: duplicate row name %v renamed to %v", a.rowName, name)
		}
		m.Rows = append(m.Rows, &Row{
			Name:     name,
			Aligned:  renderRow(p, master, colBase, width),
			SeqStart: a.rowStart,
			SeqEnd:   a.rowEnd,
			Strand:   a.rowStrand,
			Score:    a.score,
		})
	}

	if flanks != nil && maxFlankLen > 0 {
		for _, r := range m.Rows {
			fetchFlanks(r, flanks, maxFlankLen)
		}
	}

	return m, m.CheckWidths()
}

func normalizeHit(h crossmatch.Hit, side AnchorSide) anchoredHit {
	if side == AnchorQuery {
		strand := byte('+')
		if h.Reverse {
			strand = '-'
		}
		return anchoredHit{
			anchorStart: h.QueryStart,
			anchorEnd:   h.QueryEnd,
			anchorAln:   h.QueryAln,
			rowName:     h.SubjectID,
			rowStart:    h.SubjectStart,
			rowEnd:      h.SubjectEnd,
			rowStrand:   strand,
			rowAln:      h.SubjectAln,
			score:       h.Score,
		}
	}
	if !h.Reverse {
		return anchoredHit{
			anchorStart: h.SubjectStart,
			anchorEnd:   h.SubjectEnd,
			anchorAln:   h.SubjectAln,
			rowName:     h.QueryID,
			rowStart:    h.QueryStart,
			rowEnd:      h.QueryEnd,
			rowStrand:   '+',
			rowAln:      h.QueryAln,
			score:       h.Score,
		}
	}
	// Reverse hit anchored on the subject: flip both strings so the
	// anchor ascends; the query row then runs on the minus strand.
	anchorAln := utils.ReverseComplement(append([]byte(nil), h.SubjectAln...))
	rowAln := utils.ReverseComplement(append([]byte(nil), h.QueryAln...))
	return anchoredHit{
		anchorStart: h.SubjectEnd, // the lower subject coordinate
		anchorEnd:   h.SubjectStart,
		anchorAln:   anchorAln,
		rowName:     h.QueryID,
		rowStart:    h.QueryEnd,
		rowEnd:      h.QueryStart,
		rowStrand:   '-',
		rowAln:      rowAln,
		score:       h.Score,
	}
}

func profileHit(a anchoredHit, refStart int) (hitProfile, error) {
	if len(a.anchorAln) != len(a.rowAln) {
		return hitProfile{}, fmt.Errorf("%w: hit on %v", ErrUnequalLength, a.rowName)
	}
	n := a.anchorEnd - a.anchorStart + 1
	p := hitProfile{
		c0:     a.anchorStart - refStart,
		n:      n,
		anchor: make([]byte, n),
		base:   make([]byte, n),
		ins:    make([][]byte, n+1),
	}
	k := 0
	for i := range a.anchorAln {
		ac, rc := a.anchorAln[i], a.rowAln[i]
		switch {
		case ac == Gap && rc == Gap:
			// degenerate column, carries nothing
		case ac == Gap:
			p.ins[k] = append(p.ins[k], rc)
		default:
			if k >= n {
				return hitProfile{}, fmt.Errorf("hit on %v: alignment exceeds anchor span %d-%d",
					a.rowName, a.anchorStart, a.anchorEnd)
			}
			p.anchor[k] = ac
			p.base[k] = rc
			k++
		}
	}
	if k != n {
		return hitProfile{}, fmt.Errorf("hit on %v: %d aligned anchor bases, span says %d",
			a.rowName, k, n)
	}
	return p, nil
}

func renderReference(profiles []hitProfile, master, colBase []int, refLen, width int) []byte {
	aligned := make([]byte, width)
	for i := range aligned {
		aligned[i] = Gap
	}
	for j := 0; j < refLen; j++ {
		aligned[colBase[j]] = 'N'
	}
	for _, p := range profiles {
		for k := 0; k < p.n; k++ {
			col := colBase[p.c0+k]
			if aligned[col] == 'N' {
				aligned[col] = p.anchor[k]
			}
		}
	}
	return aligned
}

// renderRow lays a profiled hit over the master pattern. Insert bytes
// are left-justified inside their insertion block except at the row's
// left coverage boundary, where they are right-justified; both choices
// keep the row's content contiguous. Block remainders inside coverage
// are gaps, outside coverage pads.
func renderRow(p hitProfile, master, colBase []int, width int) []byte {
	aligned := make([]byte, width)
	for i := range aligned {
		aligned[i] = Pad
	}
	for k := 0; k <= p.n; k++ {
		j := p.c0 + k
		blockStart := colBase[j] - master[j]
		run := p.ins[k]
		switch {
		case k == 0:
			copy(aligned[blockStart+master[j]-len(run):], run)
		case k == p.n:
			copy(aligned[blockStart:], run)
		default:
			copy(aligned[blockStart:], run)
			for c := blockStart + len(run); c < blockStart+master[j]; c++ {
				aligned[c] = Gap
			}
		}
		if k < p.n {
			aligned[colBase[j]] = p.base[k]
		}
	}
	return aligned
}

func fetchFlanks(r *Row, flanks FlankLookup, n int) {
	lo, hi := r.SeqStart, r.SeqEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	left, leftOK := flanks.Bases(r.Name, lo-n, lo-1)
	right, rightOK := flanks.Bases(r.Name, hi+1, hi+n)
	if !leftOK || !rightOK {
		log.Printf("warning: no flanking sequence for %v, padding", r.Name)
		left, right = nil, nil
	}
	if r.Strand == '-' {
		// Alignment-left flank lies past the native high end.
		left, right = utils.ReverseComplement(append([]byte(nil), right...)),
			utils.ReverseComplement(append([]byte(nil), left...))
	}
	r.LeftFlank = padLeft(left, n)
	r.RightFlank = padRight(right, n)
	r.LeftFlankLen = n
	r.RightFlankLen = n
}

func padLeft(seq []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n-len(seq); i++ {
		out[i] = Pad
	}
	copy(out[n-len(seq):], seq)
	return out
}

func padRight(seq []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, seq)
	for i := len(seq); i < n; i++ {
		out[i] = Pad
	}
	return out
}
