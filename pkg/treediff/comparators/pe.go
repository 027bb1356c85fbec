// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import "github.com/google/treediff/pkg/treediff"

func recognizePE(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "exe" {
		return nil
	}
	return newToolDumpComparator(f, "pe", "objdump", func(p string) []string {
		return []string{"-d", "-x", p}
	})
}
