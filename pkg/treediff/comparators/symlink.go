// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"os"

	"github.com/google/treediff/pkg/treediff"
)

// symlinkComparator compares two symlinks by target text rather than by
// following them: spec.md §4.I treats a symlink as a leaf whose "content"
// is its link target, matching tar extraction recreating symlinks as real
// symlinks (pkg/treediff/containers/tar.go's extractAll) instead of
// dereferencing them.
type symlinkComparator struct {
	treediff.File
}

func recognizeSymlink(f treediff.File, path string) treediff.Comparator {
	fi, err := os.Lstat(path)
	if err != nil || fi.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return &symlinkComparator{File: f}
}

func (c *symlinkComparator) CompareDetails(other treediff.Comparator, tag string, cfg treediff.Config, specialize treediff.SpecializeFunc) ([]*treediff.Difference, error) {
	oc, ok := other.(*symlinkComparator)
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

	target1, err := os.Readlink(path1)
	if err != nil {
		return nil, err
	}
	target2, err := os.Readlink(path2)
	if err != nil {
		return nil, err
	}
	diff := treediff.FromText(target1, target2, c.Name(), oc.Name(), "symlink", cfg)
	if diff == nil {
		return nil, nil
	}
	return []*treediff.Difference{diff}, nil
}
