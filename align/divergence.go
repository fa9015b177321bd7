// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package align

import (
	"math"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/stat"
)

// RowDivergence is the Kimura two-parameter distance of one row from
// the consensus. Saturated marks rows too diverged to estimate; their
// Distance is meaningless.
type RowDivergence struct {
	Name      string
	Distance  float64
	Saturated bool
}

// Divergence is the per-row distance table, in row order, with the
// arithmetic mean over the rows that have a finite distance.
type Divergence struct {
	Rows      []RowDivergence
	Average   float64
	Finite    int
	Saturated int
}

// KimuraDivergence compares every non-reference row to the consensus.
// Only columns where both sides carry an unambiguous base count;
// mismatches split into transitions (P) and transversions (Q) and the
// distance is -0.5*ln(1-2P-Q) - 0.25*ln(1-2Q). Rows where either log
// argument is non-positive are reported saturated rather than failing.
// Per-row comparisons run in parallel; results are reduced back in row
// order before averaging.
func (m *Model) KimuraDivergence(consensus []byte) Divergence {
	ref := m.Reference()
	rows := make([]*Row, 0, len(m.Rows))
	for _, r := range m.Rows {
		if r != ref {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return Divergence{}
	}
	table := parallel.RangeReduce(0, len(rows), 0,
		func(low, high int) interface{} {
			part := make([]RowDivergence, 0, high-low)
			for i := low; i < high; i++ {
				part = append(part, kimuraRow(rows[i], consensus))
			}
			return part
		},
		func(x, y interface{}) interface{} {
			return append(x.([]RowDivergence), y.([]RowDivergence)...)
		}).([]RowDivergence)

	result := Divergence{Rows: table}
	finite := make([]float64, 0, len(table))
	for _, d := range table {
		if d.Saturated {
			result.Saturated++
		} else {
			finite = append(finite, d.Distance)
		}
	}
	result.Finite = len(finite)
	if len(finite) > 0 {
		result.Average = stat.Mean(finite, nil)
	}
	return result
}

var baseClass = func() (class [256]int) {
	for i := range class {
		class[i] = 0
	}
	for _, c := range []byte("AGag") {
		class[c] = 1 // purine
	}
	for _, c := range []byte("CTct") {
		class[c] = 2 // pyrimidine
	}
	return class
}()

func kimuraRow(r *Row, consensus []byte) RowDivergence {
	compared, transitions, transversions := 0, 0, 0
	for c, rb := range r.Aligned {
		cb := consensus[c]
		rc, cc := baseClass[rb], baseClass[cb]
		if rc == 0 || cc == 0 {
			continue // gap, pad, or ambiguity code: not a compared column
		}
		compared++
		if rb&0xDF == cb&0xDF {
			continue
		}
		if rc == cc {
			transitions++
		} else {
			transversions++
		}
	}
	if compared == 0 {
		return RowDivergence{Name: r.Name, Saturated: true}
	}
	p := float64(transitions) / float64(compared)
	q := float64(transversions) / float64(compared)
	logP := 1 - 2*p - q
	logQ := 1 - 2*q
	if logP <= 0 || logQ <= 0 {
		return RowDivergence{Name: r.Name, Saturated: true}
	}
	return RowDivergence{
		Name:     r.Name,
		Distance: -0.5*math.Log(logP) - 0.25*math.Log(logQ),
	}
}
