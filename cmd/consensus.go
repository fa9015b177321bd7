// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/seqtools/malign/fasta"
	"github.com/seqtools/malign/utils"
)

// ConsensusHelp is the help string for the consensus command.
const ConsensusHelp = "consensus parameters:\n" +
	utils.ProgramName + " consensus input\n" +
	"[-output file]\n" +
	"[-name consensus-name]\n" +
	"[-trim-left columns]\n" +
	"[-trim-right columns]\n" +
	"[-normalize]\n" +
	"[-cons-ref]\n"

// Consensus implements the consensus command: the pipeline ending in
// the consensus-only FASTA record.
func Consensus() error {
	var (
		output, name        string
		trimLeft, trimRight int
		normalize, consRef  bool
	)
	flags := flag.NewFlagSet("consensus", flag.ContinueOnError)
	flags.StringVar(&output, "output", "", "output file (default stdout)")
	flags.StringVar(&name, "name", "", "consensus record name")
	flags.IntVar(&trimLeft, "trim-left", 0, "columns to trim from the left edge")
	flags.IntVar(&trimRight, "trim-right", 0, "columns to trim from the right edge")
	flags.BoolVar(&normalize, "normalize", false, "renumber coordinates in reference-column space")
	flags.BoolVar(&consRef, "cons-ref", false, "include the reference row in the consensus tally")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, ConsensusHelp)
		os.Exit(1)
	}
	input := getFilename(os.Args[2], ConsensusHelp)
	parseFlags(*flags, 3, ConsensusHelp)

	if !checkExist("", input) {
		return fmt.Errorf("input file %v not found", input)
	}

	m, _, err := buildModel(pipelineOptions{
		input:     input,
		trimLeft:  trimLeft,
		trimRight: trimRight,
		normalize: normalize,
	})
	if err != nil {
		return err
	}

	out, closeOut := openOutput(output)
	defer closeOut()
	return fasta.Write(out, m, fasta.WriteOptions{
		Mode:          fasta.ModeConsensus,
		ConsensusName: name,
		Consensus:     m.Consensus(consRef),
	})
}
