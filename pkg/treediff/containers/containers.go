// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package containers implements the concrete Container types (spec.md
// §4.D, §4.I): single-stream decompressors (gzip, xz, bzip2), multi-member
// archives (tar, zip, ar), and directories-as-containers. Each type
// extracts members lazily into a shared treediff.TempScope, following the
// extraction shape of pkg/archive's Stabilize/Extract functions but
// writing to an os.File/osfs target instead of rewriting a new archive.
package containers

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/google/treediff/pkg/treediff"
)

// scope bundles the TempScope + osfs root shared by every Container
// implementation below: Open creates (or re-enters) the scratch
// directory, extract* writes into it, and ExtractMember reuses what's
// already there.
type scope struct {
	treediff.TempScope
	extracted map[string]string
}

func (s *scope) open() (dir string, release func(), err error) {
	d, rel, err := s.Enter()
	if err != nil {
		return "", nil, err
	}
	if s.extracted == nil {
		s.extracted = make(map[string]string)
	}
	return d, func() { rel() }, nil
}

func rootFS(dir string) billy.Filesystem {
	return osfs.New(dir)
}

func memberPath(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(name))
}

func ensureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
