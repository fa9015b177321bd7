// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package crossmatch

import (
	"fmt"
	"strconv"
)

// StringScanner is a scanner over the whitespace-separated fields of a
// single hit-record line. Errors accumulate; the first one sticks and
// all later operations become no-ops.
type StringScanner struct {
	index int
	data  string
	err   error
}

// Err returns the error that occurred during scanning/parsing.
func (sc *StringScanner) Err() error {
	return sc.err
}

// Reset resets the scanner, and initializes it with the given string.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
	sc.err = nil
}

// Len returns the number of ASCII characters that still need to be
// scanned/parsed. Returns 0 if Err() would return a non-nil value.
func (sc *StringScanner) Len() int {
	if sc.err != nil {
		return 0
	}
	return len(sc.data) - sc.index
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// Field returns the next whitespace-separated field, or "" when the
// line is exhausted.
func (sc *StringScanner) Field() string {
	if sc.err != nil {
		return ""
	}
	for sc.index < len(sc.data) && isSpace(sc.data[sc.index]) {
		sc.index++
	}
	start := sc.index
	for sc.index < len(sc.data) && !isSpace(sc.data[sc.index]) {
		sc.index++
	}
	return sc.data[start:sc.index]
}

// Int parses the next field as a decimal integer.
func (sc *StringScanner) Int() int {
	s := sc.Field()
	if sc.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		sc.err = err
	}
	return n
}

// Float parses the next field as a decimal float.
func (sc *StringScanner) Float() float64 {
	s := sc.Field()
	if sc.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		sc.err = err
	}
	return f
}

// ParenInt parses the next field of the form "(n)", the remaining-length
// marker of a hit record.
func (sc *StringScanner) ParenInt() int {
	s := sc.Field()
	if sc.err != nil {
		return 0
	}
	if len(s) < 3 || s[0] != '(' || s[len(s)-1] != ')' {
		sc.err = fmt.Errorf("expected remaining-length marker, got %q", s)
		return 0
	}
	n, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil {
		sc.err = err
	}
	return n
}
