// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package snapshot persists alignment models losslessly. The grammar is
// line-oriented and tab-separated:
//
//	%MALIGN <version>
//	%RUN    <uuid>
//	%REF    <reference id, or ->
//	%WIDTH  <columns>
//	%CONS   <0|1> <cached consensus>        (only when one is cached)
//	%ROW    name start end strand score lflank rflank
//	%SEQ    <aligned string, pads as '.'>
//	%LFL    <left flank, or *>
//	%RFL    <right flank, or *>
//	%SUM    <blake3-256 hex over all preceding lines>
//	%END
//
// Deserialization verifies the checksum and every structural invariant
// and reconstructs width, row order, coordinates, and flank data
// exactly. Files named *.xz are compressed transparently.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/internal"
)

// Version of the snapshot grammar.
const Version = 1

// Write serializes a complete structural snapshot of the model.
func Write(w io.Writer, m *align.Model) error {
	var body bytes.Buffer
	fmt.Fprintf(&body, "%%MALIGN\t%d\n", Version)
	fmt.Fprintf(&body, "%%RUN\t%s\n", uuid.New())
	ref := m.ReferenceID
	if ref == "" {
		ref = "-"
	}
	fmt.Fprintf(&body, "%%REF\t%s\n", ref)
	fmt.Fprintf(&body, "%%WIDTH\t%d\n", m.Width())
	if consensus, withRef, ok := m.CachedConsensus(); ok {
		flag := 0
		if withRef {
			flag = 1
		}
		fmt.Fprintf(&body, "%%CONS\t%d\t%s\n", flag, dot(consensus))
	}
	for _, r := range m.Rows {
		fmt.Fprintf(&body, "%%ROW\t%s\t%d\t%d\t%c\t%d\t%d\t%d\n",
			r.Name, r.SeqStart, r.SeqEnd, r.Strand, r.Score, r.LeftFlankLen, r.RightFlankLen)
		fmt.Fprintf(&body, "%%SEQ\t%s\n", dot(r.Aligned))
		fmt.Fprintf(&body, "%%LFL\t%s\n", flank(r.LeftFlank))
		fmt.Fprintf(&body, "%%RFL\t%s\n", flank(r.RightFlank))
	}
	sum := blake3.Sum256(body.Bytes())
	fmt.Fprintf(&body, "%%SUM\t%s\n%%END\n", hex.EncodeToString(sum[:]))
	_, err := w.Write(body.Bytes())
	return err
}

// WriteFile is Write to a (possibly .xz) file.
func WriteFile(filename string, m *align.Model) error {
	f := internal.CreateWriter(filename)
	if err := Write(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read reconstructs a model from its snapshot.
func Read(r io.Reader) (*align.Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	hasher := blake3.New()
	next := func() (string, string, bool) {
		if !scanner.Scan() {
			return "", "", false
		}
		line := scanner.Text()
		tag, rest, _ := strings.Cut(line, "\t")
		if tag != "%SUM" {
			hasher.Write([]byte(line))
			hasher.Write([]byte{'\n'})
		}
		return tag, rest, true
	}

	tag, rest, ok := next()
	if !ok || tag != "%MALIGN" {
		return nil, fmt.Errorf("%w: missing magic", align.ErrCorruptSnapshot)
	}
	if v, err := strconv.Atoi(rest); err != nil || v != Version {
		return nil, fmt.Errorf("%w: unsupported version %q", align.ErrCorruptSnapshot, rest)
	}

	builder := align.SnapshotBuilder{}
	var width int
	for {
		tag, rest, ok = next()
		if !ok {
			return nil, fmt.Errorf("%w: truncated before %%SUM", align.ErrCorruptSnapshot)
		}
		switch tag {
		case "%RUN":
			// run identity is provenance only
		case "%REF":
			if rest != "-" {
				builder.ReferenceID = rest
			}
		case "%WIDTH":
			w, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: width %q", align.ErrCorruptSnapshot, rest)
			}
			width = w
		case "%CONS":
			flag, seq, found := strings.Cut(rest, "\t")
			if !found {
				return nil, fmt.Errorf("%w: consensus line", align.ErrCorruptSnapshot)
			}
			builder.Consensus = undot(seq)
			builder.ConsensusWithRef = flag == "1"
		case "%ROW":
			row, err := parseRow(rest)
			if err != nil {
				return nil, err
			}
			if err := fillRow(row, next); err != nil {
				return nil, err
			}
			builder.Rows = append(builder.Rows, row)
		case "%SUM":
			sum := hasher.Sum(nil)
			if hex.EncodeToString(sum) != rest {
				return nil, fmt.Errorf("%w: checksum mismatch", align.ErrCorruptSnapshot)
			}
			if tag, _, ok = next(); !ok || tag != "%END" {
				return nil, fmt.Errorf("%w: missing %%END", align.ErrCorruptSnapshot)
			}
			return builder.Build(width)
		default:
			return nil, fmt.Errorf("%w: unknown tag %q", align.ErrCorruptSnapshot, tag)
		}
	}
}

// ReadFile is Read from a (possibly .xz) file.
func ReadFile(filename string) (*align.Model, error) {
	f := internal.OpenReader(filename)
	defer internal.Close(f)
	return Read(f)
}

func parseRow(rest string) (*align.Row, error) {
	fields := strings.Split(rest, "\t")
	if len(fields) != 7 || len(fields[3]) != 1 {
		return nil, fmt.Errorf("%w: row line %q", align.ErrCorruptSnapshot, rest)
	}
	nums := make([]int, 0, 5)
	for _, f := range []string{fields[1], fields[2], fields[4], fields[5], fields[6]} {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: row field %q", align.ErrCorruptSnapshot, f)
		}
		nums = append(nums, n)
	}
	return &align.Row{
		Name:          fields[0],
		SeqStart:      nums[0],
		SeqEnd:        nums[1],
		Strand:        fields[3][0],
		Score:         nums[2],
		LeftFlankLen:  nums[3],
		RightFlankLen: nums[4],
	}, nil
}

func fillRow(row *align.Row, next func() (string, string, bool)) error {
	for _, want := range []string{"%SEQ", "%LFL", "%RFL"} {
		tag, rest, ok := next()
		if !ok || tag != want {
			return fmt.Errorf("%w: expected %s after %%ROW %s", align.ErrCorruptSnapshot, want, row.Name)
		}
		switch want {
		case "%SEQ":
			row.Aligned = undot(rest)
		case "%LFL":
			row.LeftFlank = unflank(rest)
		case "%RFL":
			row.RightFlank = unflank(rest)
		}
	}
	return nil
}

func dot(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if c == align.Pad {
			c = '.'
		}
		out[i] = c
	}
	return out
}

func undot(s string) []byte {
	out := []byte(s)
	for i, c := range out {
		if c == '.' {
			out[i] = align.Pad
		}
	}
	return out
}

func flank(seq []byte) []byte {
	if len(seq) == 0 {
		return []byte{'*'}
	}
	return dot(seq)
}

func unflank(s string) []byte {
	if s == "*" {
		return nil
	}
	return undot(s)
}
