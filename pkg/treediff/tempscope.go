// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"os"

	"github.com/pkg/errors"
)

// TempScope is a reference-counted temp directory guard. The first Enter
// creates the directory; matching Exit calls (via the returned release
// func) are idempotent and only the last one removes it. Container
// implementations embed one TempScope each, so nested Acquire/Open calls
// during recursion share a single extraction directory and release it
// exactly once, in LIFO order relative to however deeply recursion nested.
//
// This is the Go shape of the source's context-managed reentrant
// "with file.get_content():" scopes (spec.md §9): a guard whose release is
// idempotent stands in for a destructor that only fires on the outermost
// exit.
type TempScope struct {
	dir  string
	refs int
}

// Enter acquires the scope, creating its backing directory on first entry.
// The returned release func must be called exactly once per Enter; calling
// it more than once is a no-op.
func (s *TempScope) Enter() (dir string, release func() error, err error) {
	if s.refs == 0 {
		d, err := os.MkdirTemp("", "treediff-")
		if err != nil {
			return "", nil, errors.Wrap(err, "creating scoped temp dir")
		}
		s.dir = d
	}
	s.refs++
	released := false
	release = func() error {
		if released {
			return nil
		}
		released = true
		s.refs--
		if s.refs == 0 {
			d := s.dir
			s.dir = ""
			return os.RemoveAll(d)
		}
		return nil
	}
	return s.dir, release, nil
}

// Open reports whether the scope currently has its directory materialized.
func (s *TempScope) Open() bool { return s.refs > 0 }
