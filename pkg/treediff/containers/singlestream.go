// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

// singleStream is the shared shape of a Container with exactly one member:
// gzip, xz, and bzip2 (spec.md §4.D's single-member case). Its one member
// name is the source name with its compression suffix stripped (matching
// the compression-suffix stem used by container.stripCompressionSuffix
// during member pairing), falling back to "decompressed" if the source
// carries no recognized suffix.
type singleStream struct {
	scope
	source  treediff.File
	suffix  string
	newSrc  func(io.Reader) (io.Reader, error)
	memName string
}

func newSingleStream(source treediff.File, suffix string, newSrc func(io.Reader) (io.Reader, error)) *singleStream {
	name := strings.TrimSuffix(source.Name(), suffix)
	if name == source.Name() {
		name = "decompressed"
	}
	return &singleStream{source: source, suffix: suffix, newSrc: newSrc, memName: name}
}

// newSingleStreamNamed is newSingleStream with an explicit member name,
// for formats (gzip's .tgz) whose member name isn't a plain suffix strip.
func newSingleStreamNamed(source treediff.File, memberName string, newSrc func(io.Reader) (io.Reader, error)) *singleStream {
	return &singleStream{source: source, newSrc: newSrc, memName: memberName}
}

func (s *singleStream) Source() treediff.File { return s.source }

func (s *singleStream) MemberNames() ([]string, error) { return []string{s.memName}, nil }

func (s *singleStream) Member(name string, specialize treediff.SpecializeFunc) (treediff.File, error) {
	f := treediff.NewContainerMemberFile(name, s)
	if specialize == nil {
		return f, nil
	}
	if c := specialize(f); c != nil {
		return c, nil
	}
	return f, nil
}

func (s *singleStream) Open() (func(), error) {
	dir, release, err := s.open()
	if err != nil {
		return nil, err
	}
	if len(s.extracted) == 0 {
		if err := s.decompress(dir); err != nil {
			release()
			return nil, err
		}
	}
	return release, nil
}

func (s *singleStream) decompress(dir string) error {
	path, srcRelease, err := s.source.Acquire()
	if err != nil {
		return err
	}
	defer srcRelease()

	in, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", s.source.Name())
	}
	defer in.Close()

	r, err := s.newSrc(in)
	if err != nil {
		return errors.Wrapf(err, "decompressing %s", s.source.Name())
	}

	dest := memberPath(dir, s.memName)
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "writing decompressed %s", s.memName)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying decompressed %s", s.memName)
	}
	if err := out.Close(); err != nil {
		return err
	}
	s.extracted[s.memName] = dest
	return nil
}

func (s *singleStream) ExtractMember(name string) (string, error) {
	if path, ok := s.extracted[name]; ok {
		return path, nil
	}
	return "", errors.Errorf("member %s not found in %s", name, s.source.Name())
}
