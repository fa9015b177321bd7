// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package stockholm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/stockholm"
)

func markupModel(t *testing.T) *align.Model {
	t.Helper()
	builder := align.SnapshotBuilder{
		ReferenceID: "AluY",
		Rows: []*align.Row{
			{Name: "AluY", Aligned: []byte("ACGT-A"), SeqStart: 1, SeqEnd: 5, Strand: '+'},
			{Name: "chr1", Aligned: []byte(" CGTTA"), SeqStart: 101, SeqEnd: 105, Strand: '+'},
			{Name: "chr2", Aligned: []byte("ACGT  "), SeqStart: 204, SeqEnd: 201, Strand: '-'},
		},
	}
	m, err := builder.Build(6)
	require.NoError(t, err)
	return m
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stockholm.Write(&buf, markupModel(t), stockholm.WriteOptions{Template: true}))
	expected := `# STOCKHOLM 1.0
#=GF ID AluY
AluY/1-5      ACGT-A
chr1/101-105  .CGTTA
chr2/204-201  ACGT..
#=GC RF       ACGT-A
//
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteConsensusTemplate(t *testing.T) {
	m := markupModel(t)
	m.ReferenceID = ""

	var buf bytes.Buffer
	opts := stockholm.WriteOptions{
		RefName:   "AluY_family",
		Template:  true,
		Consensus: []byte("ACGTTA"),
	}
	require.NoError(t, stockholm.Write(&buf, m, opts))
	out := buf.String()
	assert.Contains(t, out, "#=GF ID AluY_family\n")
	assert.Contains(t, out, "#=GC RF       ACGTTA\n")
}

func TestParse(t *testing.T) {
	input := `# STOCKHOLM 1.0
#=GF ID AluY
#=GS chr1/101-103 AC X00001

AluY/1-4      ACG
chr1/101-103  .CG

AluY/1-4      T
chr1/101-103  T
#=GC RF       ACGT
//
`
	records, refID, err := stockholm.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "AluY", refID)
	require.Len(t, records, 2)
	assert.Equal(t, "AluY/1-4", records[0].ID)
	assert.Equal(t, "ACGT", string(records[0].Seq))
	assert.Equal(t, "chr1/101-103", records[1].ID)
	assert.Equal(t, ".CGT", string(records[1].Seq))
}

func TestParseErrors(t *testing.T) {
	_, _, err := stockholm.Parse(strings.NewReader("# STOCKHOLM 1.0\n//\n"))
	assert.ErrorIs(t, err, align.ErrUnknownFormat)

	_, _, err = stockholm.Parse(strings.NewReader("AluY 1 ACGT\n"))
	assert.ErrorIs(t, err, align.ErrUnknownFormat)
}

func TestRoundTrip(t *testing.T) {
	m := markupModel(t)
	var buf bytes.Buffer
	require.NoError(t, stockholm.Write(&buf, m, stockholm.WriteOptions{}))

	records, refID, err := stockholm.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, "AluY", refID)

	restored, err := align.FromMarkup(records, refID)
	require.NoError(t, err)
	require.Equal(t, len(m.Rows), len(restored.Rows))
	for i, r := range m.Rows {
		got := restored.Rows[i]
		assert.Equal(t, r.Name, got.Name)
		assert.Equal(t, r.SeqStart, got.SeqStart)
		assert.Equal(t, r.SeqEnd, got.SeqEnd)
		assert.Equal(t, r.Strand, got.Strand)
	}
}
