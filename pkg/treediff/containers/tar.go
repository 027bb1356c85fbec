// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

// Tar is a Container over a tar archive (spec.md §4.D/§4.I, the multi-member
// case). It extracts every member into its scope's scratch directory the
// first time Open is called, mirroring pkg/archive/tar.go's ExtractTar
// entry-by-entry walk — but writing into a billy.Filesystem rooted at the
// scratch directory rather than rewriting a second archive.
type Tar struct {
	scope
	source  treediff.File
	names   []string
	scanned bool
}

// NewTar wraps source (a File whose Acquire resolves to an on-disk tar
// file) as a Container.
func NewTar(source treediff.File) *Tar {
	return &Tar{source: source}
}

func (t *Tar) Source() treediff.File { return t.source }

func (t *Tar) MemberNames() ([]string, error) {
	if t.scanned {
		return t.names, nil
	}
	path, release, err := t.source.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening tar %s", t.source.Name())
	}
	defer f.Close()

	tr := tar.NewReader(f)
	var names []string
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading tar entries in %s", t.source.Name())
		}
		if h.Typeflag == tar.TypeDir {
			continue
		}
		names = append(names, strings.TrimPrefix(h.Name, "./"))
	}
	slices.Sort(names)
	t.names = names
	t.scanned = true
	return names, nil
}

func (t *Tar) Member(name string, specialize treediff.SpecializeFunc) (treediff.File, error) {
	f := treediff.NewContainerMemberFile(name, t)
	if specialize == nil {
		return f, nil
	}
	if c := specialize(f); c != nil {
		return c, nil
	}
	return f, nil
}

func (t *Tar) Open() (func(), error) {
	dir, release, err := t.open()
	if err != nil {
		return nil, err
	}
	if len(t.extracted) == 0 {
		if err := t.extractAll(dir); err != nil {
			release()
			return nil, err
		}
	}
	return release, nil
}

// extractAll mirrors pkg/archive/tar.go's ExtractTar: it walks the tar
// sequentially and writes each regular file through a billy.Filesystem
// rooted at dir, creating parent directories as needed. Symlinks are
// recreated as actual symlinks so the symlink comparator can inspect
// their target text.
func (t *Tar) extractAll(dir string) error {
	path, srcRelease, err := t.source.Acquire()
	if err != nil {
		return err
	}
	defer srcRelease()

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening tar %s", t.source.Name())
	}
	defer f.Close()

	fs := rootFS(dir)
	tr := tar.NewReader(f)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "extracting tar %s", t.source.Name())
		}
		name := strings.TrimPrefix(h.Name, "./")
		switch {
		case h.Typeflag == tar.TypeDir:
			continue
		case h.Linkname != "":
			if err := fs.Symlink(h.Linkname, name); err != nil {
				return errors.Wrapf(err, "recreating symlink %s", name)
			}
		default:
			if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
				return errors.Wrapf(err, "creating parent dir for %s", name)
			}
			out, err := fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, h.FileInfo().Mode())
			if err != nil {
				return errors.Wrapf(err, "writing extracted member %s", name)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return errors.Wrapf(err, "copying extracted member %s", name)
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
		t.extracted[name] = memberPath(dir, name)
	}
	return nil
}

func (t *Tar) ExtractMember(name string) (string, error) {
	if path, ok := t.extracted[name]; ok {
		return path, nil
	}
	return "", errors.Errorf("member %s not found in tar %s", name, t.source.Name())
}
