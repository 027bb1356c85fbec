// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"strings"

	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

// recognizeDeb claims .deb packages (themselves plain ar archives of
// debian-binary/control.tar.*/data.tar.*) before the generic Ar recognizer
// gets a chance (spec.md §4.B): every .deb would otherwise also be valid
// ar input and get stuck with a less specific label. It shares the "ar"
// format tag with generic Ar so a .deb still recurses correctly against
// another .deb or a bare ar archive.
func recognizeDeb(f treediff.File, path string) treediff.Comparator {
	if !strings.HasSuffix(strings.ToLower(f.Name()), ".deb") {
		return nil
	}
	header, err := sniff(path)
	if err != nil || !isAr(header) {
		return nil
	}
	return newContainerComparator("ar", containers.NewAr(f))
}

func recognizeAr(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || !isAr(header) {
		return nil
	}
	return newContainerComparator("ar", containers.NewAr(f))
}
