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

	"github.com/seqtools/malign/utils"
)

// DivergenceHelp is the help string for the divergence command.
const DivergenceHelp = "divergence parameters:\n" +
	utils.ProgramName + " divergence input\n" +
	"[-output file]\n" +
	"[-trim-left columns]\n" +
	"[-trim-right columns]\n" +
	"[-normalize]\n" +
	"[-cons-ref]\n"

// Divergence implements the divergence command: per-row Kimura
// two-parameter distances from the consensus, then their mean.
func Divergence() error {
	var (
		output              string
		trimLeft, trimRight int
		normalize, consRef  bool
	)
	flags := flag.NewFlagSet("divergence", flag.ContinueOnError)
	flags.StringVar(&output, "output", "", "output file (default stdout)")
	flags.IntVar(&trimLeft, "trim-left", 0, "columns to trim from the left edge")
	flags.IntVar(&trimRight, "trim-right", 0, "columns to trim from the right edge")
	flags.BoolVar(&normalize, "normalize", false, "renumber coordinates in reference-column space")
	flags.BoolVar(&consRef, "cons-ref", false, "include the reference row in the consensus tally")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, DivergenceHelp)
		os.Exit(1)
	}
	input := getFilename(os.Args[2], DivergenceHelp)
	parseFlags(*flags, 3, DivergenceHelp)

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

	divergence := m.KimuraDivergence(m.Consensus(consRef))

	out, closeOut := openOutput(output)
	defer closeOut()
	fmt.Fprintf(out, "row\tKimura\n")
	for _, d := range divergence.Rows {
		if d.Saturated {
			fmt.Fprintf(out, "%s\t*\n", d.Name)
		} else {
			fmt.Fprintf(out, "%s\t%.4f\n", d.Name, d.Distance)
		}
	}
	fmt.Fprintf(out, "average\t%.4f\t(%d rows, %d saturated)\n",
		divergence.Average, divergence.Finite, divergence.Saturated)
	return nil
}
