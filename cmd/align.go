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

	"github.com/seqtools/malign/ali"
	"github.com/seqtools/malign/align"
	"github.com/seqtools/malign/fasta"
	"github.com/seqtools/malign/msf"
	"github.com/seqtools/malign/snapshot"
	"github.com/seqtools/malign/stockholm"
	"github.com/seqtools/malign/utils"
)

// AlignHelp is the help string for the align command.
const AlignHelp = "align parameters:\n" +
	utils.ProgramName + " align input\n" +
	"[-format (ali | msf | stockholm | fasta | rawseq | flankseq | consseq | snapshot)]\n" +
	"[-output file]\n" +
	"[-name reference-name]\n" +
	"[-trim-left columns]\n" +
	"[-trim-right columns]\n" +
	"[-normalize]\n" +
	"[-flank bases]\n" +
	"[-flank-db fasta-file]\n" +
	"[-include-ref]\n" +
	"[-cons-ref]\n" +
	"[-show-cons]\n" +
	"[-show-score]\n" +
	"[-block-width columns]\n"

// Align implements the align command: one input, one mutually
// exclusive output format.
func Align() error {
	var (
		format, output, name, flankDB          string
		trimLeft, trimRight, flank, blockWidth int
		normalize, includeRef                  bool
		consRef, showCons, showScore           bool
	)
	flags := flag.NewFlagSet("align", flag.ContinueOnError)
	flags.StringVar(&format, "format", "ali", "output format")
	flags.StringVar(&output, "output", "", "output file (default stdout)")
	flags.StringVar(&name, "name", "", "reference name override")
	flags.IntVar(&trimLeft, "trim-left", 0, "columns to trim from the left edge")
	flags.IntVar(&trimRight, "trim-right", 0, "columns to trim from the right edge")
	flags.BoolVar(&normalize, "normalize", false, "renumber coordinates in reference-column space")
	flags.IntVar(&flank, "flank", 0, "flanking bases per side (pairwise-hit input only)")
	flags.StringVar(&flankDB, "flank-db", "", "FASTA database for flanking lookups")
	flags.BoolVar(&includeRef, "include-ref", false, "include the reference row in the output")
	flags.BoolVar(&consRef, "cons-ref", false, "include the reference row in the consensus tally")
	flags.BoolVar(&showCons, "show-cons", false, "include a consensus line or record")
	flags.BoolVar(&showScore, "show-score", false, "show the per-row alignment score")
	flags.IntVar(&blockWidth, "block-width", ali.DefaultBlockWidth, "columns per output block")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, AlignHelp)
		os.Exit(1)
	}
	input := getFilename(os.Args[2], AlignHelp)
	parseFlags(*flags, 3, AlignHelp)

	if !checkExist("", input) {
		return fmt.Errorf("input file %v not found", input)
	}
	switch format {
	case "ali", "msf", "stockholm", "fasta", "rawseq", "flankseq", "consseq", "snapshot":
	default:
		return fmt.Errorf("invalid output format %v", format)
	}
	if flank > 0 && format != "flankseq" {
		return fmt.Errorf("%w: -flank is only valid with -format flankseq",
			align.ErrOptionCombination)
	}
	if flank > 0 && flankDB == "" {
		return fmt.Errorf("%w: -flank requires -flank-db", align.ErrOptionCombination)
	}
	if flank > 0 && !checkExist("-flank-db", flankDB) {
		return fmt.Errorf("flank database %v not found", flankDB)
	}

	m, _, err := buildModel(pipelineOptions{
		input:     input,
		flankDB:   flankDB,
		flankLen:  flank,
		trimLeft:  trimLeft,
		trimRight: trimRight,
		normalize: normalize,
	})
	if err != nil {
		return err
	}

	var consensus []byte
	if showCons || format == "consseq" {
		consensus = m.Consensus(consRef)
	}

	if format == "snapshot" && output != "" {
		// snapshots honor .xz destinations
		return snapshot.WriteFile(output, m)
	}
	out, closeOut := openOutput(output)
	defer closeOut()

	switch format {
	case "ali":
		return ali.Write(out, m, ali.Options{
			BlockWidth:       blockWidth,
			Consensus:        consensus,
			IncludeReference: includeRef,
			ShowScore:        showScore,
		})
	case "msf":
		return msf.Write(out, m)
	case "stockholm":
		return stockholm.Write(out, m, stockholm.WriteOptions{
			RefName:   name,
			Template:  showCons,
			Consensus: consensus,
		})
	case "fasta":
		return fasta.Write(out, m, fasta.WriteOptions{Mode: fasta.ModeGapped})
	case "rawseq":
		return fasta.Write(out, m, fasta.WriteOptions{Mode: fasta.ModeRaw})
	case "flankseq":
		return fasta.Write(out, m, fasta.WriteOptions{
			Mode:             fasta.ModeFlank,
			IncludeReference: includeRef,
			IncludeConsensus: showCons,
			ConsensusName:    name,
			Consensus:        consensus,
		})
	case "consseq":
		return fasta.Write(out, m, fasta.WriteOptions{
			Mode:          fasta.ModeConsensus,
			ConsensusName: name,
			Consensus:     consensus,
		})
	default: // snapshot to stdout
		return snapshot.Write(out, m)
	}
}
