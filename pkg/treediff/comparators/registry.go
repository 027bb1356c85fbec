// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package comparators implements the concrete format handlers dispatched
// by Specialize (spec.md §4.B): the format registry itself, plus one file
// per recognized format. Each comparator wraps a treediff.File (or, for
// container formats, a treediff.Container from pkg/treediff/containers)
// and implements treediff.Comparator.
//
// Grounded on pkg/diffr/filetype.go's magic-byte sniffing (extended here
// with github.com/h2non/filetype for the wider format set spec.md
// requires) and pkg/diffr/diffr.go's type-dispatch shape.
package comparators

import (
	"os"
	"strings"

	"github.com/h2non/filetype"

	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

// sniffLen is the number of header bytes read for magic detection; 512
// covers every matcher in github.com/h2non/filetype.
const sniffLen = 512

// recognizer is one entry in the ordered format table. recognize inspects
// the already-acquired path (and, where needed, re-opens it for a header
// peek) and returns a Comparator, or nil if this recognizer doesn't claim
// the file.
type recognizer struct {
	name      string
	recognize func(f treediff.File, path string) treediff.Comparator
}

// order matters (spec.md §4.B, §8 scenario 6): DotChanges and MozillaZip
// must be tried before the generic Text/Zip fallbacks they would
// otherwise be swallowed by, and Deb before Ar since every .deb is itself
// a valid ar archive.
var registry = []recognizer{
	{"symlink", recognizeSymlink},
	{"device", recognizeDevice},
	{"directory", recognizeDirectory},
	{"dotchanges", recognizeDotChanges},
	{"deb", recognizeDeb},
	{"gzip", recognizeGzip},
	{"bzip2", recognizeBzip2},
	{"xz", recognizeXz},
	{"tar", recognizeTar},
	{"ar", recognizeAr},
	{"mozillazip", recognizeMozillaZip},
	{"zip", recognizeZip},
	{"pdf", recognizePdf},
	{"iso9660", recognizeIso9660},
	{"pe", recognizePE},
	{"elf", recognizeELF},
	{"sqlite", recognizeSQLite},
	{"png", recognizePNG},
	{"tiff", recognizeTIFF},
	{"mo", recognizeMO},
	{"class", recognizeClass},
	{"text", recognizeText},
}

// Specialize picks the most specific Comparator for f, falling back to
// treediff.Binary if nothing in the registry claims it (spec.md §4.B's
// final row). It is a treediff.SpecializeFunc, threaded explicitly through
// recursive comparisons rather than imported by pkg/treediff itself.
func Specialize(f treediff.File) treediff.Comparator {
	path, release, err := f.Acquire()
	if err != nil {
		return treediff.NewBinary(f)
	}
	defer release()

	if fi, err := os.Lstat(path); err == nil && fi.Mode().IsRegular() {
		if header, err := sniff(path); err == nil {
			if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
				f.SetMagicType(kind.MIME.Value)
			}
		}
	}

	for _, r := range registry {
		if c := r.recognize(f, path); c != nil {
			return c
		}
	}
	return treediff.NewBinary(f)
}

// sniff reads up to sniffLen header bytes from path for magic detection.
func sniff(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return nil, err
	}
	return buf[:n], nil
}

// arMagic is the literal header every Unix ar archive (including .deb)
// starts with; github.com/h2non/filetype carries no ar matcher.
const arMagic = "!<arch>\n"

func isAr(header []byte) bool {
	return strings.HasPrefix(string(header), arMagic)
}

func matchExtension(header []byte) string {
	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.Extension
}

func recognizeDirectory(f treediff.File, path string) treediff.Comparator {
	fi, err := os.Lstat(path)
	if err != nil || !fi.IsDir() {
		return nil
	}
	return newDirectoryComparator(f, containers.NewDirectory(f, path))
}
