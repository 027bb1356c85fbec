// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"os"

	"github.com/pkg/errors"
)

// File is a leaf node in the containment tree: an abstract byte source with
// a resolvable on-disk path. Acquire is a scoped acquisition: while the
// returned release func has not been called, path-bearing operations
// (reading, hashing, handing the path to an external tool) are valid.
// Nested Acquire calls on the same File, or on a File whose container is
// already open, must be safe — this is satisfied by reference counting in
// the concrete implementations below.
type File interface {
	// Name is the member-relative name (archive-relative path, or the
	// filesystem path for a top-level input).
	Name() string

	// MagicType is a MIME-like string from content sniffing, populated by
	// the format registry during Specialize. It is empty until then, and
	// stays empty for a non-regular file or one whose header matches no
	// known type.
	MagicType() string
	SetMagicType(string)

	// Container is the non-owning back-reference to the Container this
	// File was produced by, or nil for a top-level input.
	Container() Container

	// Acquire guarantees a readable on-disk path for the returned release
	// func's lifetime.
	Acquire() (path string, release func(), err error)
}

type baseFile struct {
	name      string
	magicType string
	container Container
}

func (f *baseFile) Name() string          { return f.name }
func (f *baseFile) MagicType() string     { return f.magicType }
func (f *baseFile) SetMagicType(m string) { f.magicType = m }
func (f *baseFile) Container() Container  { return f.container }

// FilesystemFile is a File whose path pre-exists on disk and is owned by
// the caller (a top-level comparison input). Acquire never materializes
// anything; it simply vouches for the pre-existing path.
type FilesystemFile struct {
	baseFile
	path string
}

// NewFilesystemFile wraps an existing on-disk path as a top-level File.
func NewFilesystemFile(name, path string) *FilesystemFile {
	return &FilesystemFile{baseFile: baseFile{name: name}, path: path}
}

func (f *FilesystemFile) Acquire() (string, func(), error) {
	if _, err := os.Lstat(f.path); err != nil {
		return "", nil, errors.Wrapf(err, "resolving filesystem file %s", f.name)
	}
	return f.path, func() {}, nil
}

// ContainerMemberFile is a File whose bytes are materialized on demand
// inside a temp dir owned by its Container. Extraction happens at most once
// per File; Acquire after the first call simply re-enters the container's
// scope and returns the cached path.
type ContainerMemberFile struct {
	baseFile
	extracted bool
	path      string
}

// NewContainerMemberFile constructs a member File lazily bound to c.
func NewContainerMemberFile(name string, c Container) *ContainerMemberFile {
	return &ContainerMemberFile{baseFile: baseFile{name: name, container: c}}
}

func (f *ContainerMemberFile) Acquire() (string, func(), error) {
	release, err := f.container.Open()
	if err != nil {
		return "", nil, errors.Wrapf(err, "opening container for member %s", f.name)
	}
	if !f.extracted {
		path, err := f.container.ExtractMember(f.name)
		if err != nil {
			release()
			return "", nil, errors.Wrapf(err, "extracting member %s", f.name)
		}
		f.path = path
		f.extracted = true
	}
	return f.path, release, nil
}

// NonExistingFile is the sentinel used for asymmetric pairs: a member
// present on one side of a comparison and absent on the other. Its Name is
// always the literal "/dev/null" (spec.md §4.D), not the counterpart's own
// name — two sentinels standing in for two different missing members must
// never compare equal to each other or to a same-named real file, which is
// exactly what naming the sentinel after its counterpart would do. Its path
// resolves to the same /dev/null, matching the unified-diff convention for
// "file vs nothing".
type NonExistingFile struct {
	baseFile
}

// NewNonExistingFile constructs the sentinel. It takes no name: unlike
// every other File, its identity is fixed, not derived from what it stands
// in for.
func NewNonExistingFile() *NonExistingFile {
	return &NonExistingFile{baseFile: baseFile{name: "/dev/null"}}
}

func (f *NonExistingFile) Acquire() (string, func(), error) {
	return os.DevNull, func() {}, nil
}
