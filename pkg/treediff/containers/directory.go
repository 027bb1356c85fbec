// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

// Directory is the synthetic Container spec.md §4.I describes: a plain
// directory on disk compared the same way an archive is, one direct entry
// at a time. It's grounded on the single-pass directory-entry listing
// shape in opencoff-go-fio/walk/walk.go, reduced to one non-recursive
// level (recursion through subdirectories happens by the engine treating
// each subdirectory entry as its own Directory Comparator, matching the
// single-threaded cooperative recursion model spec.md §5 requires — this
// module doesn't need walk's worker-pool concurrency).
type Directory struct {
	source treediff.File
	path   string
	names  []string
}

// NewDirectory wraps path (already known to be a directory) as a
// Container; source is the File identity used for naming/diffing the
// directory itself when it has no children of its own.
func NewDirectory(source treediff.File, path string) *Directory {
	return &Directory{source: source, path: path}
}

func (d *Directory) Source() treediff.File { return d.source }

func (d *Directory) MemberNames() ([]string, error) {
	if d.names != nil {
		return d.names, nil
	}
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, errors.Wrapf(err, "listing directory %s", d.source.Name())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	d.names = names
	return names, nil
}

func (d *Directory) Member(name string, specialize treediff.SpecializeFunc) (treediff.File, error) {
	f := treediff.NewFilesystemFile(name, filepath.Join(d.path, name))
	if specialize == nil {
		return f, nil
	}
	if c := specialize(f); c != nil {
		return c, nil
	}
	return f, nil
}

// Open is a no-op: directory members are already on disk, so there is no
// scratch directory to materialize.
func (d *Directory) Open() (func(), error) { return func() {}, nil }

// ExtractMember returns the member's existing path directly; nothing is
// copied anywhere, since a directory's entries already live on disk.
func (d *Directory) ExtractMember(name string) (string, error) {
	path := filepath.Join(d.path, name)
	if _, err := os.Lstat(path); err != nil {
		return "", errors.Wrapf(err, "resolving directory entry %s", name)
	}
	return path, nil
}
