// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"
	"os"
	"unicode/utf8"

	"github.com/google/treediff/pkg/treediff"
)

// textComparator is the last entry in the registry (spec.md §4.B's
// generic-text row): anything that decodes as valid UTF-8 with no NUL
// bytes in its header is compared line-by-line rather than dropped to a
// raw binary diff. Everything else falls through to treediff.Binary.
type textComparator struct {
	treediff.File
}

func recognizeText(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil {
		return nil
	}
	if bytes.IndexByte(header, 0) != -1 || !utf8.Valid(header) {
		return nil
	}
	return &textComparator{File: f}
}

func (c *textComparator) CompareDetails(other treediff.Comparator, tag string, cfg treediff.Config, specialize treediff.SpecializeFunc) ([]*treediff.Difference, error) {
	oc, ok := other.(*textComparator)
	if !ok {
		return nil, nil
	}
	path1, release1, err := c.Acquire()
	if err != nil {
		return nil, err
	}
	defer release1()
	path2, release2, err := oc.Acquire()
	if err != nil {
		return nil, err
	}
	defer release2()

	data1, err := os.ReadFile(path1)
	if err != nil {
		return nil, err
	}
	data2, err := os.ReadFile(path2)
	if err != nil {
		return nil, err
	}
	diff := treediff.FromText(string(data1), string(data2), c.Name(), oc.Name(), "", cfg)
	if diff == nil {
		return nil, nil
	}
	return []*treediff.Difference{diff}, nil
}
