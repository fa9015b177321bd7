// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// malign merges pairwise alignment hits, markup alignments, aligned
// FASTA text, or persisted snapshots into one multiple-alignment model,
// derives consensus and Kimura divergence from it, and exports it to
// the common interchange formats.
//
// Please see https://github.com/seqtools/malign for a documentation of
// the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seqtools/malign/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: align, consensus, divergence")
	fmt.Fprint(os.Stderr, "\n", cmd.AlignHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ConsensusHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.DivergenceHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "align":
		err = cmd.Align()
	case "consensus":
		err = cmd.Consensus()
	case "divergence":
		err = cmd.Divergence()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
