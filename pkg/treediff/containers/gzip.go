// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/google/treediff/pkg/treediff"
)

// Gzip is the single-member Container for a .gz stream (spec.md §4.D).
// Decompression is stdlib compress/gzip.
//
// A .tgz source names its member foo.tar rather than plain foo, matching
// pkg/diffr/gzip.go's compareGzip special-case, so the decompressed member
// gets re-specialized as a Tar container instead of a nameless stream.
type Gzip struct{ *singleStream }

// NewGzip wraps source as a gzip Container.
func NewGzip(source treediff.File) *Gzip {
	newSrc := func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }
	name := source.Name()
	switch {
	case strings.HasSuffix(name, ".tgz"):
		return &Gzip{singleStream: newSingleStreamNamed(source, strings.TrimSuffix(name, ".tgz")+".tar", newSrc)}
	case strings.HasSuffix(name, ".gz"):
		return &Gzip{singleStream: newSingleStream(source, ".gz", newSrc)}
	default:
		return &Gzip{singleStream: newSingleStreamNamed(source, "decompressed", newSrc)}
	}
}
