// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package stockholm reads and writes Stockholm 1.0 markup alignments.
// Row identifiers carry native coordinates as name/start-end; the
// optional #=GC RF line carries the reference or consensus template.
package stockholm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seqtools/malign/align"
)

// WriteOptions controls the markup exporter.
type WriteOptions struct {
	RefName   string // overrides the #=GF ID value
	Template  bool   // emit a #=GC RF template line
	Consensus []byte // template fallback when the model has no reference row
}

// Write serializes the model as Stockholm markup.
func Write(w io.Writer, m *align.Model, opts WriteOptions) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "# STOCKHOLM 1.0")
	if id := refName(m, opts); id != "" {
		fmt.Fprintf(out, "#=GF ID %s\n", id)
	}
	nameWidth := len("#=GC RF")
	ids := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		ids[i] = fmt.Sprintf("%s/%d-%d", r.Name, r.SeqStart, r.SeqEnd)
		if len(ids[i]) > nameWidth {
			nameWidth = len(ids[i])
		}
	}
	for i, r := range m.Rows {
		fmt.Fprintf(out, "%-*s  %s\n", nameWidth, ids[i], dotted(r.Aligned))
	}
	if opts.Template {
		template := opts.Consensus
		if ref := m.Reference(); ref != nil {
			template = ref.Aligned
		}
		if template != nil {
			fmt.Fprintf(out, "%-*s  %s\n", nameWidth, "#=GC RF", dotted(template))
		}
	}
	fmt.Fprintln(out, "//")
	return out.Flush()
}

func refName(m *align.Model, opts WriteOptions) string {
	if opts.RefName != "" {
		return opts.RefName
	}
	return m.ReferenceID
}

// dotted maps pads to the '.' markup convention.
func dotted(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if c == align.Pad {
			c = '.'
		}
		out[i] = c
	}
	return out
}

// Parse reads Stockholm markup into identifier/sequence pairs. Rows
// split over interleaved blocks are concatenated. refID reports the
// #=GF ID annotation, when present.
func Parse(r io.Reader) (records []align.SeqRecord, refID string, err error) {
	index := make(map[string]int)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		switch {
		case line == "" || line == "//":
			continue
		case strings.HasPrefix(line, "#=GF ID"):
			refID = strings.TrimSpace(line[len("#=GF ID"):])
			continue
		case strings.HasPrefix(line, "#"):
			continue // other annotations carry nothing the model keeps
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, "", fmt.Errorf("%w: markup row %q", align.ErrUnknownFormat, line)
		}
		if i, ok := index[fields[0]]; ok {
			records[i].Seq = append(records[i].Seq, fields[1]...)
			continue
		}
		index[fields[0]] = len(records)
		records = append(records, align.SeqRecord{ID: fields[0], Seq: []byte(fields[1])})
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", fmt.Errorf("%w: no markup rows", align.ErrUnknownFormat)
	}
	return records, refID, nil
}
