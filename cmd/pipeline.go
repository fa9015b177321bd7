// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/crossmatch"
	"github.com/seqtools/malign/fasta"
	"github.com/seqtools/malign/internal"
	"github.com/seqtools/malign/snapshot"
	"github.com/seqtools/malign/stockholm"
)

// pipelineOptions is the explicit configuration threaded through one
// invocation: no process-wide state.
type pipelineOptions struct {
	input     string
	flankDB   string
	flankLen  int
	trimLeft  int
	trimRight int
	normalize bool
}

// buildModel runs the front half of the pipeline: sniff, build via the
// matching variant, then trim and renumber. Trimming and renumbering
// finish before anything downstream reads the model.
func buildModel(opts pipelineOptions) (*align.Model, align.Format, error) {
	in := internal.OpenReader(opts.input)
	data, err := io.ReadAll(in)
	internal.Close(in)
	if err != nil {
		return nil, "", err
	}

	format, err := align.DetectFormat(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if opts.flankLen > 0 && format != align.FormatHits {
		return nil, "", fmt.Errorf("%w: flanking context requires pairwise-hit input, got %v",
			align.ErrOptionCombination, format)
	}

	var m *align.Model
	switch format {
	case align.FormatHits:
		hits, err := crossmatch.ParseHits(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		side, err := align.ResolveAnchor(hits)
		if err != nil {
			return nil, "", err
		}
		var lookup align.FlankLookup
		if opts.flankLen > 0 {
			lookup = fasta.ReadSeqDB(opts.flankDB)
		}
		m, err = align.FromHits(hits, side, lookup, opts.flankLen)
		if err != nil {
			return nil, "", err
		}
	case align.FormatMarkup:
		records, refID, err := stockholm.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		base, _, _, _ := align.SplitRangedID(refID)
		m, err = align.FromMarkup(records, base)
		if err != nil {
			return nil, "", err
		}
	case align.FormatAligned:
		records, err := fasta.ParseAligned(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		m, err = align.FromAlignedBlocks(records)
		if err != nil {
			return nil, "", err
		}
	case align.FormatSnapshot:
		m, err = snapshot.Read(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
	}

	if opts.trimLeft > 0 || opts.trimRight > 0 {
		if err := m.Trim(opts.trimLeft, opts.trimRight); err != nil {
			return nil, "", err
		}
	}
	if opts.normalize {
		m.NormalizeCoordinates()
	}
	return m, format, nil
}
