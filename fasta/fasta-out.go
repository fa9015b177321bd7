// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/seqtools/malign/align"
)

// Mode selects the FASTA-family content.
type Mode string

const (
	// ModeGapped writes every row's full aligned string. The default.
	ModeGapped Mode = "gapped"
	// ModeRaw strips gaps and pads.
	ModeRaw Mode = "raw"
	// ModeFlank writes aligned strings with their flank bytes, in
	// lower case, on both sides.
	ModeFlank Mode = "flank"
	// ModeConsensus writes the consensus record only.
	ModeConsensus Mode = "cons"
)

// ErrNoConsensus is returned when a mode needing a consensus is asked
// to write without one.
var ErrNoConsensus = errors.New("no consensus supplied")

// WriteOptions controls the FASTA exporter. The exporter never mutates
// the model; a consensus, where needed, is supplied by the caller.
type WriteOptions struct {
	Mode             Mode
	IncludeReference bool   // ModeFlank: also write the reference row
	IncludeConsensus bool   // ModeFlank: also write a consensus record
	ConsensusName    string // header for consensus records
	Consensus        []byte
}

// Write serializes the model per opts.
func Write(w io.Writer, m *align.Model, opts WriteOptions) error {
	out := bufio.NewWriter(w)
	switch opts.Mode {
	case ModeGapped, "":
		for _, r := range m.Rows {
			writeRecord(out, r.Name, dashed(r.Aligned))
		}
	case ModeRaw:
		for _, r := range m.Rows {
			writeRecord(out, r.Name, r.Ungapped())
		}
	case ModeFlank:
		if err := writeFlanked(out, m, opts); err != nil {
			return err
		}
	case ModeConsensus:
		if opts.Consensus == nil {
			return ErrNoConsensus
		}
		name := consensusName(m, opts)
		fmt.Fprintf(out, ">%s\n%s\n\n", name, stripped(opts.Consensus))
	default:
		return fmt.Errorf("unsupported FASTA mode %q", opts.Mode)
	}
	return out.Flush()
}

func writeFlanked(out *bufio.Writer, m *align.Model, opts WriteOptions) error {
	ref := m.Reference()
	for _, r := range m.Rows {
		if r == ref && !opts.IncludeReference {
			continue
		}
		seq := make([]byte, 0, len(r.LeftFlank)+len(r.Aligned)+len(r.RightFlank))
		seq = append(seq, lowered(r.LeftFlank)...)
		seq = append(seq, dashed(r.Aligned)...)
		seq = append(seq, lowered(r.RightFlank)...)
		writeRecord(out, r.Name, seq)
	}
	if opts.IncludeConsensus {
		if opts.Consensus == nil {
			return ErrNoConsensus
		}
		n := flankBudget(m)
		seq := make([]byte, 0, 2*n+len(opts.Consensus))
		seq = append(seq, fill(n)...)
		seq = append(seq, dashed(opts.Consensus)...)
		seq = append(seq, fill(n)...)
		writeRecord(out, consensusName(m, opts), seq)
	}
	return nil
}

func writeRecord(out *bufio.Writer, name string, seq []byte) {
	fmt.Fprintf(out, ">%s\n", name)
	out.Write(seq)
	out.WriteByte('\n')
}

func consensusName(m *align.Model, opts WriteOptions) string {
	switch {
	case opts.ConsensusName != "":
		return opts.ConsensusName
	case m.ReferenceID != "":
		return m.ReferenceID
	default:
		return "consensus"
	}
}

func flankBudget(m *align.Model) int {
	for _, r := range m.Rows {
		if r.LeftFlankLen > 0 {
			return r.LeftFlankLen
		}
	}
	return 0
}

// dashed maps pads to '-' so that every non-base column reads as a gap
// in FASTA text; reimporting re-derives pads from the edge runs.
func dashed(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if c == align.Pad {
			c = align.Gap
		}
		out[i] = c
	}
	return out
}

func stripped(seq []byte) []byte {
	out := make([]byte, 0, len(seq))
	for _, c := range seq {
		if !align.IsGapOrPad(c) {
			out = append(out, c)
		}
	}
	return out
}

func lowered(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		switch {
		case c == align.Pad:
			c = align.Gap
		case c >= 'A' && c <= 'Z':
			c |= 0x20
		}
		out[i] = c
	}
	return out
}

func fill(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = align.Gap
	}
	return out
}
