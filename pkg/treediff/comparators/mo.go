// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"

	"github.com/google/treediff/pkg/treediff"
)

// gettext compiled catalogs carry a 4-byte magic that differs by
// endianness of the machine that compiled them.
var (
	moMagicLE = []byte{0xde, 0x12, 0x04, 0x95}
	moMagicBE = []byte{0x95, 0x04, 0x12, 0xde}
)

func recognizeMO(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || len(header) < 4 {
		return nil
	}
	if !bytes.HasPrefix(header, moMagicLE) && !bytes.HasPrefix(header, moMagicBE) {
		return nil
	}
	return newToolDumpComparator(f, "mo", "msgunfmt", func(p string) []string {
		return []string{p}
	})
}
