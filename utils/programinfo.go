// malign: a tool for merging and analyzing DNA multiple sequence alignments.
// Copyright (c) 2025-2026 the malign authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package utils

const (
	// ProgramName is "malign"
	ProgramName = "malign"

	// ProgramVersion is the version of the malign binary
	ProgramVersion = "1.2.0"

	// ProgramURL is the repository for the malign source code
	ProgramURL = "http://github.com/seqtools/malign"
)
