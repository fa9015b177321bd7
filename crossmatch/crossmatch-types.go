// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// Package crossmatch parses cross_match-style pairwise hit streams.
//
// A hit consists of one fixed-field summary line
//
//	score %sub %del %ins queryID qStart qEnd (qLeft) subjectID sStart sEnd (sLeft)
//
// or, for a reverse-strand hit,
//
//	score %sub %del %ins queryID qStart qEnd (qLeft) C subjectID (sLeft) sEnd sStart
//
// followed by interleaved gapped alignment block lines of the form
//
//	name  start  GAPPEDSEQ  end
//
// where name matches the query or subject identifier. Blocks of one hit
// are concatenated in order; both gapped strings of a hit must end up
// with equal length.
package crossmatch

// Hit is one pairwise alignment record. Coordinates are 1-based and
// inclusive, stored in alignment orientation: SubjectStart is the
// subject coordinate under the leftmost alignment column, so for
// reverse-strand hits SubjectStart > SubjectEnd. Query coordinates
// always ascend.
type Hit struct {
	Score                    int
	PctSubst, PctDel, PctIns float64
	QueryID                  string
	QueryStart, QueryEnd     int
	QueryRemaining           int
	SubjectID                string
	SubjectStart, SubjectEnd int
	SubjectRemaining         int
	Reverse                  bool
	QueryAln                 []byte
	SubjectAln               []byte
}
