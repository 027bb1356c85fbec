// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"path/filepath"
	"strings"

	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

func recognizeZip(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "zip" {
		return nil
	}
	return newContainerComparator("zip", containers.NewZip(f))
}

// recognizeMozillaZip claims the Mozilla packaging variants of the zip
// format (omni.ja, .xpi) before the generic Zip recognizer gets a chance
// (spec.md §4.B, §8 scenario 6): these must be tried first so an
// extension-based match wins over, and doesn't get shadowed by, the
// content-only zip sniff below it in the registry. It shares the "zip"
// format tag with generic Zip: a Mozilla archive's on-disk layout is a
// standard central-directory zip, so ordinary entry-by-entry comparison
// is correct, and the shared tag lets a MozillaZip recurse against either
// a MozillaZip or a plain Zip on the other side.
func recognizeMozillaZip(f treediff.File, path string) treediff.Comparator {
	lower := strings.ToLower(f.Name())
	if !(strings.HasSuffix(lower, ".xpi") || strings.HasSuffix(lower, ".ja") || filepath.Base(lower) == "omni.ja") {
		return nil
	}
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "zip" {
		return nil
	}
	return newContainerComparator("zip", containers.NewZip(f))
}
