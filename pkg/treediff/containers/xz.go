// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"io"

	"github.com/ulikunitz/xz"

	"github.com/google/treediff/pkg/treediff"
)

// Xz is the single-member Container for an .xz stream. No pack example
// vendors a pure-Go xz decoder directly, but the ecosystem manifest
// corpus (codeclysm-extract) establishes github.com/ulikunitz/xz as the
// idiomatic choice, so it's wired here instead of shelling out to xz
// (spec.md §4.D).
type Xz struct{ *singleStream }

// NewXz wraps source as an xz Container.
func NewXz(source treediff.File) *Xz {
	return &Xz{singleStream: newSingleStream(source, ".xz", func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r)
	})}
}
