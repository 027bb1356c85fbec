// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import "github.com/google/treediff/pkg/treediff"

func recognizeTIFF(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "tiff" {
		return nil
	}
	return newToolDumpComparator(f, "tiff", "tiffinfo", func(p string) []string {
		return []string{p}
	})
}
