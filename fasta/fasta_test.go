// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package fasta_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/fasta"
)

func TestParseAligned(t *testing.T) {
	input := `>AluY consensus copy
ACGT-
ACGT
>chr1 100 200

CCGTA
CCGT
`
	records, err := fasta.ParseAligned(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AluY", records[0].ID)
	assert.Equal(t, "ACGT-ACGT", string(records[0].Seq))
	assert.Equal(t, "chr1", records[1].ID)
	assert.Equal(t, "CCGTACCGT", string(records[1].Seq))
}

func TestParseAlignedErrors(t *testing.T) {
	_, err := fasta.ParseAligned(strings.NewReader("ACGT\n>late\nACGT\n"))
	assert.ErrorIs(t, err, align.ErrUnknownFormat)

	_, err = fasta.ParseAligned(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, align.ErrUnknownFormat)
}

func TestSeqDB(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "db.fa")
	require.NoError(t, os.WriteFile(filename, []byte(">chr1\nACGTACGTAC\n>chr1\nTTTT\n>chr2\nGG\n"), 0644))

	db := fasta.ReadSeqDB(filename)
	require.Len(t, db, 2)
	// the duplicate chr1 record is dropped
	assert.Equal(t, "ACGTACGTAC", string(db["chr1"]))

	bases, ok := db.Bases("chr1", 3, 6)
	require.True(t, ok)
	assert.Equal(t, "GTAC", string(bases))

	// ranges clamp to the available sequence
	bases, ok = db.Bases("chr1", -2, 3)
	require.True(t, ok)
	assert.Equal(t, "ACG", string(bases))
	bases, ok = db.Bases("chr2", 1, 99)
	require.True(t, ok)
	assert.Equal(t, "GG", string(bases))
	bases, ok = db.Bases("chr2", 5, 9)
	require.True(t, ok)
	assert.Empty(t, bases)

	_, ok = db.Bases("chrX", 1, 4)
	assert.False(t, ok)
}

func writerModel(t *testing.T) *align.Model {
	t.Helper()
	builder := align.SnapshotBuilder{
		ReferenceID: "REF",
		Rows: []*align.Row{
			{Name: "REF", Aligned: []byte("ACGT-A"), SeqStart: 1, SeqEnd: 5, Strand: '+'},
			{
				Name: "s1", Aligned: []byte(" CGT-A"), SeqStart: 2, SeqEnd: 5, Strand: '+',
				LeftFlankLen: 2, RightFlankLen: 2,
				LeftFlank: []byte("AA"), RightFlank: []byte("C "),
			},
		},
	}
	m, err := builder.Build(6)
	require.NoError(t, err)
	return m
}

func TestWriteGapped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fasta.Write(&buf, writerModel(t), fasta.WriteOptions{}))
	assert.Equal(t, ">REF\nACGT-A\n>s1\n-CGT-A\n", buf.String())
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fasta.Write(&buf, writerModel(t), fasta.WriteOptions{Mode: fasta.ModeRaw}))
	assert.Equal(t, ">REF\nACGTA\n>s1\nCGTA\n", buf.String())
}

func TestWriteFlank(t *testing.T) {
	m := writerModel(t)

	var buf bytes.Buffer
	require.NoError(t, fasta.Write(&buf, m, fasta.WriteOptions{Mode: fasta.ModeFlank}))
	assert.Equal(t, ">s1\naa-CGT-Ac-\n", buf.String())

	buf.Reset()
	opts := fasta.WriteOptions{
		Mode:             fasta.ModeFlank,
		IncludeReference: true,
		IncludeConsensus: true,
		Consensus:        []byte("ACGTTA"),
	}
	require.NoError(t, fasta.Write(&buf, m, opts))
	assert.Equal(t, ">REF\nACGT-A\n>s1\naa-CGT-Ac-\n>REF\n--ACGTTA--\n", buf.String())

	err := fasta.Write(&buf, m, fasta.WriteOptions{Mode: fasta.ModeFlank, IncludeConsensus: true})
	assert.ErrorIs(t, err, fasta.ErrNoConsensus)
}

func TestWriteConsensus(t *testing.T) {
	m := writerModel(t)

	var buf bytes.Buffer
	opts := fasta.WriteOptions{
		Mode:          fasta.ModeConsensus,
		ConsensusName: "AluY_cons",
		Consensus:     []byte("AC-GTA"),
	}
	require.NoError(t, fasta.Write(&buf, m, opts))
	assert.Equal(t, ">AluY_cons\nACGTA\n\n", buf.String())

	err := fasta.Write(&buf, m, fasta.WriteOptions{Mode: fasta.ModeConsensus})
	assert.ErrorIs(t, err, fasta.ErrNoConsensus)
}

func TestWriteUnsupportedMode(t *testing.T) {
	var buf bytes.Buffer
	err := fasta.Write(&buf, writerModel(t), fasta.WriteOptions{Mode: "genbank"})
	assert.Error(t, err)
}
