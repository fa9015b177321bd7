// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seqtools/malign/crossmatch"
	"github.com/seqtools/malign/utils"
)

// Format classifies input text.
type Format string

const (
	FormatHits     Format = "pairwise-hits"
	FormatMarkup   Format = "markup-alignment"
	FormatAligned  Format = "aligned-sequence-text"
	FormatSnapshot Format = "snapshot"
)

// snifferBudget bounds the prefix scanned before giving up.
const snifferBudget = 10000

// SnapshotMagic opens every persisted model.
const SnapshotMagic = "%MALIGN"

// DetectFormat classifies the input by scanning a bounded prefix.
// Blank lines and hit-stream banner lines are skipped; the first
// structural match wins. Exhausting the budget without a match is an
// ErrUnknownFormat.
func DetectFormat(r io.Reader) (Format, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	fastaHeader := false
	for scanned := 0; scanned < snifferBudget && scanner.Scan(); scanned++ {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "# STOCKHOLM"):
			return FormatMarkup, nil
		case strings.HasPrefix(line, SnapshotMagic):
			return FormatSnapshot, nil
		case bannerLine(line):
			continue
		case crossmatch.IsHitHeader(line):
			return FormatHits, nil
		case fastaHeader && utils.IsSeqText([]byte(line)):
			return FormatAligned, nil
		}
		fastaHeader = strings.HasPrefix(line, ">")
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: no structural match in the first %d lines",
		ErrUnknownFormat, snifferBudget)
}

// bannerLine recognizes the score headers and summaries a hit stream
// wraps around its records.
func bannerLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, "Maximal single base matches"),
		strings.HasPrefix(line, "cross_match"),
		strings.HasPrefix(line, "Discrepancy summary"),
		strings.HasPrefix(line, "Transitions / transversions"),
		strings.HasPrefix(line, "Score histogram"),
		strings.Fields(line)[0] == "Score":
		return true
	}
	return false
}
