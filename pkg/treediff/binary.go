// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

// Binary is the universal fallback Comparator (spec.md §4.B, last row of
// the format table): it never produces its own details, which tells
// Compare to fall through to a raw diff of the two files' bytes. It lives
// in this package, rather than alongside the other format handlers in
// pkg/treediff/comparators, because Compare's downgrade path needs a
// Comparator it can construct unconditionally, and comparators imports
// this package — putting Binary there would create an import cycle.
type Binary struct {
	File
}

// NewBinary wraps f as the catch-all Comparator. f is typically a
// FilesystemFile or ContainerMemberFile that no more specific format
// recognized; Acquire is delegated straight through to it.
func NewBinary(f File) *Binary {
	return &Binary{File: f}
}

// CompareDetails always reports no structured details, which is exactly
// what tells the caller (Compare) to diff the raw bytes instead.
func (b *Binary) CompareDetails(other Comparator, tag string, cfg Config, specialize SpecializeFunc) ([]*Difference, error) {
	return nil, nil
}
