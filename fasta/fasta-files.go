// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package fasta reads FASTA text and writes the FASTA-family views of
// an alignment model. It also provides the flanking-sequence database
// consulted when hit-derived rows request context outside their
// aligned span.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/internal"
)

// ParseAligned parses '>'-delimited records whose sequence lines form
// one aligned block. Sequence lines of one record are concatenated.
func ParseAligned(r io.Reader) ([]align.SeqRecord, error) {
	var records []align.SeqRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		if line[0] == '>' {
			records = append(records, align.SeqRecord{ID: headerID(line)})
			continue
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: sequence before first header", align.ErrUnknownFormat)
		}
		last := &records[len(records)-1]
		last.Seq = append(last.Seq, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", align.ErrUnknownFormat)
	}
	return records, nil
}

func headerID(line string) string {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SeqDB maps sequence names to their full base strings. It satisfies
// align.FlankLookup.
type SeqDB map[string][]byte

// ReadSeqDB loads a FASTA file into memory. The file is opened once and
// closed before the database is used.
func ReadSeqDB(filename string) SeqDB {
	f := internal.OpenReader(filename)
	defer internal.Close(f)

	db := make(SeqDB)
	records, err := ParseAligned(f)
	if err != nil {
		log.Panicf("invalid sequence database %v: %v", filename, err)
	}
	for _, rec := range records {
		if _, ok := db[rec.ID]; ok {
			log.Printf("warning: duplicate sequence %v in %v, keeping the first", rec.ID, filename)
			continue
		}
		db[rec.ID] = rec.Seq
	}
	return db
}

// Bases returns the bases of the named sequence in the 1-based
// inclusive range [start,end], clamped to the available sequence.
func (db SeqDB) Bases(name string, start, end int) ([]byte, bool) {
	seq, ok := db[name]
	if !ok {
		return nil, false
	}
	if start < 1 {
		start = 1
	}
	if end > len(seq) {
		end = len(seq)
	}
	if start > end {
		return nil, true
	}
	return seq[start-1 : end], true
}
