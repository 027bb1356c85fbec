// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package treediff implements the recursive comparison engine: format
// dispatch, container-member pairing, the Difference tree, and the
// temp-resource discipline that keeps extraction costs bounded.
package treediff

// Config is the engine's read-only recursion policy. It replaces the
// source tool's process-global Config.general singleton: callers build one
// and thread it explicitly through Compare instead of mutating package
// state.
type Config struct {
	// NewFile controls whether an asymmetric container member is merely
	// reported (true) or escalated as a fatal container-level difference
	// (false, the default).
	NewFile bool

	// MaxDiffBlockLines caps the number of lines a single unified-diff hunk
	// may show on either side before it is truncated with a
	// "[ N lines removed ]" marker.
	MaxDiffBlockLines int

	// MaxPageSize is a presenter-only byte cap; the engine never applies
	// it, but carries it so presenters built against this package don't
	// need a second configuration object.
	MaxPageSize int

	// FuzzyThreshold enables fuzzy (edit-distance) member-name pairing
	// when positive. It is a design hook: 0 (the default) disables it.
	FuzzyThreshold int
}

// DefaultConfig returns the engine's default recursion policy.
func DefaultConfig() Config {
	return Config{
		NewFile:           false,
		MaxDiffBlockLines: 50,
		MaxPageSize:       2000 * 1024,
		FuzzyThreshold:    0,
	}
}
