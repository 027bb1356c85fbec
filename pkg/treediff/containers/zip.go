// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"archive/zip"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

// Zip is a Container over a zip archive, grounded on pkg/archive/zip.go's
// NewContentSummaryFromZip iteration over zr.File. Generic Zip is tried
// after MozillaZip in the format registry (spec.md §4.B, §8 scenario 6);
// both share this implementation, MozillaZip only differs in recognition.
type Zip struct {
	scope
	source  treediff.File
	names   []string
	scanned bool
}

// NewZip wraps source as a zip Container.
func NewZip(source treediff.File) *Zip {
	return &Zip{source: source}
}

func (z *Zip) Source() treediff.File { return z.source }

func (z *Zip) MemberNames() ([]string, error) {
	if z.scanned {
		return z.names, nil
	}
	zr, closeZip, err := z.open1()
	if err != nil {
		return nil, err
	}
	defer closeZip()

	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	slices.Sort(names)
	z.names = names
	z.scanned = true
	return names, nil
}

func (z *Zip) open1() (*zip.ReadCloser, func(), error) {
	path, release, err := z.source.Acquire()
	if err != nil {
		return nil, nil, err
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		release()
		return nil, nil, errors.Wrapf(err, "opening zip %s", z.source.Name())
	}
	return zr, func() { zr.Close(); release() }, nil
}

func (z *Zip) Member(name string, specialize treediff.SpecializeFunc) (treediff.File, error) {
	f := treediff.NewContainerMemberFile(name, z)
	if specialize == nil {
		return f, nil
	}
	if c := specialize(f); c != nil {
		return c, nil
	}
	return f, nil
}

func (z *Zip) Open() (func(), error) {
	dir, release, err := z.open()
	if err != nil {
		return nil, err
	}
	if len(z.extracted) == 0 {
		if err := z.extractAll(dir); err != nil {
			release()
			return nil, err
		}
	}
	return release, nil
}

func (z *Zip) extractAll(dir string) error {
	zr, closeZip, err := z.open1()
	if err != nil {
		return err
	}
	defer closeZip()

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		dest := memberPath(dir, zf.Name)
		if err := ensureParentDir(dest); err != nil {
			return errors.Wrapf(err, "creating parent dir for %s", zf.Name)
		}
		rc, err := zf.Open()
		if err != nil {
			return errors.Wrapf(err, "opening zip member %s", zf.Name)
		}
		out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, zf.Mode())
		if err != nil {
			rc.Close()
			return errors.Wrapf(err, "writing extracted member %s", zf.Name)
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return errors.Wrapf(err, "copying extracted member %s", zf.Name)
		}
		out.Close()
		rc.Close()
		z.extracted[zf.Name] = dest
	}
	return nil
}

func (z *Zip) ExtractMember(name string) (string, error) {
	if path, ok := z.extracted[name]; ok {
		return path, nil
	}
	return "", errors.Errorf("member %s not found in zip %s", name, z.source.Name())
}
