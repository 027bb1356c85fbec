// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"crypto/sha256"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Comparator is the uniform protocol every format handler implements
// (spec.md §4.C, §6). CompareDetails is the per-format override; it is
// called only after both sides' content has already been resolved to a
// path (the caller acquires/releases the scope — comparators don't need
// to).
type Comparator interface {
	File

	// CompareDetails produces this format's child Differences. An empty,
	// nil-error result tells Compare to downgrade to a raw binary diff of
	// the two files.
	CompareDetails(other Comparator, tag string, cfg Config, specialize SpecializeFunc) ([]*Difference, error)
}

// SpecializeFunc maps a File to the concrete Comparator that should handle
// it, per the format registry (spec.md §4.B). It is threaded explicitly
// through recursive comparisons instead of living behind a package-level
// registry, so the core engine never imports the comparators package (that
// would create an import cycle: comparators implements Comparator, which
// is defined here).
type SpecializeFunc func(File) Comparator

// Compare is the shared comparator algorithm (spec.md §4.C): short-circuit
// on byte-identical content, otherwise build a root node labeled with both
// names, append the format-specific details, and downgrade to a binary
// diff of the raw bytes if details came back empty. It returns nil if (and
// only if) the two files are equivalent under this algorithm.
func Compare(self, other Comparator, tag string, cfg Config, specialize SpecializeFunc) (*Difference, error) {
	identical, err := sameContent(self, other)
	if err != nil {
		return nil, err
	}
	if identical {
		return nil, nil
	}

	details, err := self.CompareDetails(other, tag, cfg, specialize)
	if err != nil {
		return nil, err
	}

	root := &Difference{Source1: self.Name(), Source2: other.Name()}
	if len(details) > 0 {
		root.Details = details
		root.Fatal = anyFatal(details)
	} else {
		binDiff, err := binaryDiff(self, other, cfg)
		if err != nil {
			return nil, err
		}
		if binDiff == nil {
			return nil, nil
		}
		root.UnifiedDiff = binDiff.UnifiedDiff
		root.Comment = binDiff.Comment
	}

	if root.empty() {
		return nil, nil
	}
	return root, nil
}

// anyFatal reports whether any immediate child carries a Fatal mismatch, so
// a container's own Difference node inherits that status from its members
// (spec.md §4.D) without a caller having to walk Details itself.
func anyFatal(details []*Difference) bool {
	for _, d := range details {
		if d.Fatal {
			return true
		}
	}
	return false
}

// sameContent implements the cheap length+hash short-circuit over the two
// materialized paths (spec.md §4.C step 1). Two NonExistingFiles, or one
// NonExistingFile paired against anything, are never "identical" — an
// asymmetric pair must always surface as a Difference (spec.md §4.D).
func sameContent(self, other Comparator) (bool, error) {
	if _, ok := self.(*NonExistingFile); ok {
		return false, nil
	}
	if _, ok := other.(*NonExistingFile); ok {
		return false, nil
	}

	p1, release1, err := self.Acquire()
	if err != nil {
		return false, err
	}
	defer release1()
	p2, release2, err := other.Acquire()
	if err != nil {
		return false, err
	}
	defer release2()

	if p1 == p2 {
		return true, nil
	}

	fi1, err := os.Stat(p1)
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", p1)
	}
	fi2, err := os.Stat(p2)
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", p2)
	}
	if fi1.Mode().IsRegular() != fi2.Mode().IsRegular() {
		return false, nil
	}
	if fi1.Mode().IsRegular() && fi1.Size() != fi2.Size() {
		return false, nil
	}
	if !fi1.Mode().IsRegular() {
		// Symlinks/devices are compared on metadata by their own
		// comparators; a size-based short-circuit doesn't apply.
		return false, nil
	}

	h1, err := hashFile(p1)
	if err != nil {
		return false, err
	}
	h2, err := hashFile(p2)
	if err != nil {
		return false, err
	}
	return h1 == h2, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s for hashing", path)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hashing %s", path)
	}
	return string(h.Sum(nil)), nil
}

// binaryDiff produces the engine's fallback raw-bytes comparison (spec.md
// §4.C step 4), used both by the Binary comparator and as the downgrade
// path for any format whose CompareDetails returns no details.
func binaryDiff(self, other Comparator, cfg Config) (*Difference, error) {
	p1, release1, err := self.Acquire()
	if err != nil {
		return nil, err
	}
	defer release1()
	p2, release2, err := other.Acquire()
	if err != nil {
		return nil, err
	}
	defer release2()
	return FromRawReads(p1, p2, self.Name(), other.Name(), "", cfg)
}
