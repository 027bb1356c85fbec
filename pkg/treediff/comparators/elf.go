// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"

	"github.com/google/treediff/pkg/treediff"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

func recognizeELF(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || !bytes.HasPrefix(header, elfMagic) {
		return nil
	}
	return newToolDumpComparator(f, "elf", "objdump", func(p string) []string {
		return []string{"-h", "-d", "-r", "-t", p}
	})
}
