// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

// CompareFiles is the top-level entrypoint (spec.md §4 overview): it
// specializes both inputs into their most specific Comparator and then
// runs the shared comparison algorithm. Callers that already hold
// Comparators (e.g. a container recursing into its own members) should
// call Compare directly instead.
func CompareFiles(f1, f2 File, cfg Config, specialize SpecializeFunc) (*Difference, error) {
	c1 := specializeOrBinary(f1, specialize)
	c2 := specializeOrBinary(f2, specialize)
	return Compare(c1, c2, "", cfg, specialize)
}

func specializeOrBinary(f File, specialize SpecializeFunc) Comparator {
	if specialize != nil {
		if c := specialize(f); c != nil {
			return c
		}
	}
	if c, ok := f.(Comparator); ok {
		return c
	}
	return NewBinary(f)
}
