// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"github.com/google/treediff/internal/diffutil"
)

// Difference is an immutable node in the comparison result tree. A
// Difference is only ever handed to a caller if it carries at least one of
// a non-empty UnifiedDiff, a Comment, or a non-empty Details list — the
// From* constructors and Compare enforce this by returning nil otherwise.
type Difference struct {
	Source1, Source2 string
	Comment          string
	UnifiedDiff      string
	Lines1, Lines2   []string
	Details          []*Difference

	// Fatal marks a container-level difference caused by an asymmetric
	// member pairing under Config.NewFile == false (spec.md §4.D): one
	// side is missing a member outright, not merely differing in
	// content. It is set directly by CompareContainers on the immediate
	// asymmetric Difference and propagated upward by Compare so a parent
	// node can tell "a child differs" from "a child is entirely absent"
	// without walking its own Details.
	Fatal bool
}

func (d *Difference) empty() bool {
	return d == nil || (d.UnifiedDiff == "" && d.Comment == "" && len(d.Details) == 0)
}

// FromText diffs two in-memory strings entirely in process (no temp files,
// no subprocess) using a line-mode diff. tag labels the resulting node's
// Comment, mirroring the source's from_text(..., source=<tag>) helper used
// for per-field diffs (e.g. a .changes field name, or "Files").
func FromText(text1, text2, source1, source2, tag string, cfg Config) *Difference {
	ud, equal := diffutil.FromStrings(text1, text2, cfg.MaxDiffBlockLines)
	if equal {
		return nil
	}
	return &Difference{
		Source1:     source1,
		Source2:     source2,
		Comment:     tag,
		UnifiedDiff: ud,
		Lines1:      diffutil.SplitLines(text1),
		Lines2:      diffutil.SplitLines(text2),
	}
}

// FromRawReads diffs two files by path via the external diff tool,
// matching the source's optimize-then-diff pipeline (internal/diffutil).
// It is used both as the binary-comparator fallback and by comparators
// that have already materialized two files to compare byte-for-byte.
func FromRawReads(path1, path2, source1, source2, tag string, cfg Config) (*Difference, error) {
	ud, equal, err := diffutil.FromFiles(path1, path2, cfg.MaxDiffBlockLines)
	if err != nil {
		return nil, err
	}
	if equal {
		return nil, nil
	}
	return &Difference{Source1: source1, Source2: source2, Comment: tag, UnifiedDiff: ud}, nil
}

// FromCommand runs an external tool against path1 and path2 independently
// and diffs its captured stdout. A nonzero exit or a missing executable
// does not fail the comparison: it produces a Difference whose Comment
// records the tool failure, per spec.md §7 error kinds 2 and 3.
func FromCommand(tool string, buildArgs func(path string) []string, path1, path2, source1, source2, tag string, cfg Config) (*Difference, error) {
	out1, errDiff := diffutil.RunTool(tool, buildArgs(path1))
	if errDiff != nil {
		return &Difference{Source1: source1, Source2: source2, Comment: errDiff.Error()}, nil
	}
	out2, errDiff := diffutil.RunTool(tool, buildArgs(path2))
	if errDiff != nil {
		return &Difference{Source1: source1, Source2: source2, Comment: errDiff.Error()}, nil
	}
	return FromText(out1, out2, source1, source2, tag, cfg), nil
}
