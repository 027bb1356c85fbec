// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"

	"github.com/google/treediff/pkg/treediff"
)

var sqliteMagic = []byte("SQLite format 3\x00")

func recognizeSQLite(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || !bytes.HasPrefix(header, sqliteMagic) {
		return nil
	}
	return newToolDumpComparator(f, "sqlite3", "sqlite3", func(p string) []string {
		return []string{p, ".dump"}
	})
}
