// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import "github.com/google/treediff/pkg/treediff"

func recognizePNG(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "png" {
		return nil
	}
	return newToolDumpComparator(f, "png", "pngcheck", func(p string) []string {
		return []string{"-v", p}
	})
}
