// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package msf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/msf"
)

func TestChecksum(t *testing.T) {
	assert.Equal(t, 748, msf.Checksum([]byte("ACGT")))
	// case-insensitive
	assert.Equal(t, 748, msf.Checksum([]byte("acgt")))
	assert.Equal(t, 0, msf.Checksum(nil))
	// the position weight cycles at 57
	long := bytes.Repeat([]byte("A"), 57)
	assert.Equal(t, msf.Checksum(long)+65, msf.Checksum(append(long, 'A'))%10000)
}

func buildModel(t *testing.T, rows []*align.Row, width int) *align.Model {
	t.Helper()
	m, err := align.SnapshotBuilder{Rows: rows}.Build(width)
	require.NoError(t, err)
	return m
}

func TestWrite(t *testing.T) {
	m := buildModel(t, []*align.Row{
		{Name: "REF", Aligned: []byte("ACGT-A"), SeqStart: 1, SeqEnd: 5, Strand: '+'},
		{Name: "s1", Aligned: []byte(" CGTTA"), SeqStart: 1, SeqEnd: 5, Strand: '+'},
	}, 6)

	var buf bytes.Buffer
	require.NoError(t, msf.Write(&buf, m))
	expected := `PileUp

 MSF: 6  Type: N  Check: 2195  ..

 Name: REF  Len: 6  Check: 1073  Weight: 1.00
 Name: s1   Len: 6  Check: 1122  Weight: 1.00

//

REF  ACGT.A
s1   .CGTTA

`
	assert.Equal(t, expected, buf.String())
}

func TestWriteBlocks(t *testing.T) {
	m := buildModel(t, []*align.Row{
		{Name: "r", Aligned: bytes.Repeat([]byte("ACGTACGTAC"), 6), SeqStart: 1, SeqEnd: 60, Strand: '+'},
	}, 60)

	var buf bytes.Buffer
	require.NoError(t, msf.Write(&buf, m))
	out := buf.String()

	// 60 columns split into a 50-column and a 10-column block,
	// with 10-character groups inside each block
	assert.Contains(t, out, " MSF: 60  Type: N")
	assert.Contains(t, out, "r  ACGTACGTAC ACGTACGTAC ACGTACGTAC ACGTACGTAC ACGTACGTAC\n")
	assert.Contains(t, out, "r  ACGTACGTAC\n\n")
	assert.Equal(t, 2, strings.Count(out, "\nr  "))
}
