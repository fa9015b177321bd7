// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package crossmatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/seqtools/malign/utils"
)

// ErrMalformedHit signals a hit record whose alignment block is missing
// or whose gapped strings have unequal lengths.
var ErrMalformedHit = errors.New("malformed hit record")

// ParseHits parses a stream of pairwise hit records. Banner lines,
// discrepancy summaries, and other noise between records are skipped.
// Hits are returned in input order.
func ParseHits(r io.Reader) ([]Hit, error) {
	var hits []Hit
	var cur *Hit
	queryNext := true // disambiguates alignment lines when both ids are equal

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		if hit, ok := parseHeader(line); ok {
			if cur != nil {
				if err := checkHit(cur); err != nil {
					return nil, err
				}
				hits = append(hits, *cur)
			}
			cur = &hit
			queryNext = true
			continue
		}
		if cur != nil {
			queryNext = parseAlnLine(line, cur, queryNext)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		if err := checkHit(cur); err != nil {
			return nil, err
		}
		hits = append(hits, *cur)
	}
	return hits, nil
}

// IsHitHeader reports whether line parses as a hit summary line. The
// format sniffer uses it to classify input without keeping the record.
func IsHitHeader(line string) bool {
	_, ok := parseHeader(line)
	return ok
}

func parseHeader(line string) (hit Hit, ok bool) {
	var sc StringScanner
	sc.Reset(line)
	hit.Score = sc.Int()
	hit.PctSubst = sc.Float()
	hit.PctDel = sc.Float()
	hit.PctIns = sc.Float()
	hit.QueryID = sc.Field()
	hit.QueryStart = sc.Int()
	hit.QueryEnd = sc.Int()
	hit.QueryRemaining = sc.ParenInt()
	if sc.Err() != nil || hit.QueryID == "" {
		return Hit{}, false
	}
	side := sc.Field()
	if side == "C" {
		hit.Reverse = true
		hit.SubjectID = sc.Field()
		hit.SubjectRemaining = sc.ParenInt()
		hit.SubjectStart = sc.Int() // higher coordinate, alignment left
		hit.SubjectEnd = sc.Int()
	} else {
		hit.SubjectID = side
		hit.SubjectStart = sc.Int()
		hit.SubjectEnd = sc.Int()
		hit.SubjectRemaining = sc.ParenInt()
	}
	if sc.Err() != nil || hit.SubjectID == "" {
		return Hit{}, false
	}
	return hit, true
}

// parseAlnLine appends one gapped alignment block line to the hit it
// belongs to. Returns which side a following line of the same name pair
// would belong to.
func parseAlnLine(line string, hit *Hit, queryNext bool) bool {
	var sc StringScanner
	sc.Reset(line)
	name := sc.Field()
	if name == "C" {
		name = sc.Field()
	}
	_ = sc.Int() // block start coordinate, redundant with the header
	seq := sc.Field()
	_ = sc.Int() // block end coordinate
	if sc.Err() != nil || !utils.IsSeqText([]byte(seq)) {
		return queryNext
	}
	switch {
	case name == hit.QueryID && name == hit.SubjectID:
		if queryNext {
			hit.QueryAln = append(hit.QueryAln, seq...)
		} else {
			hit.SubjectAln = append(hit.SubjectAln, seq...)
		}
		return !queryNext
	case name == hit.QueryID:
		hit.QueryAln = append(hit.QueryAln, seq...)
	case name == hit.SubjectID:
		hit.SubjectAln = append(hit.SubjectAln, seq...)
	}
	return queryNext
}

func checkHit(hit *Hit) error {
	if len(hit.QueryAln) == 0 || len(hit.QueryAln) != len(hit.SubjectAln) {
		return fmt.Errorf("%w: %v vs %v (%d/%d alignment bytes)", ErrMalformedHit,
			hit.QueryID, hit.SubjectID, len(hit.QueryAln), len(hit.SubjectAln))
	}
	return nil
}
