// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import "github.com/google/treediff/pkg/treediff"

func recognizePdf(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "pdf" {
		return nil
	}
	// Text content alone (pdftotext) misses everything the text layer
	// doesn't carry: page/object structure, embedded fonts, metadata
	// streams. pdftk's "output - uncompress" rewrites the PDF with its
	// internal streams decompressed, so a diff of that second dump
	// surfaces structural/metadata changes pdftotext can't see.
	return newMultiToolDumpComparator(f, "pdf",
		toolDumpStep{tool: "pdftotext", tag: "pdf text", buildArgs: func(p string) []string {
			return []string{p, "-"}
		}},
		toolDumpStep{tool: "pdftk", tag: "pdf structure", buildArgs: func(p string) []string {
			return []string{p, "output", "-", "uncompress"}
		}},
	)
}
