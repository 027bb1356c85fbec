// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"compress/bzip2"
	"io"

	"github.com/google/treediff/pkg/treediff"
)

// Bzip2 is the single-member Container for a .bz2 stream, using stdlib
// compress/bzip2 (spec.md §4.D).
type Bzip2 struct{ *singleStream }

// NewBzip2 wraps source as a bzip2 Container.
func NewBzip2(source treediff.File) *Bzip2 {
	return &Bzip2{singleStream: newSingleStream(source, ".bz2", func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	})}
}
