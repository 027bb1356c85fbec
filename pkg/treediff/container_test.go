// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPairMembersExactMatch(t *testing.T) {
	got := PairMembers([]string{"a", "b", "c"}, []string{"c", "a", "b"}, DefaultConfig())
	want := []Pairing{{Name1: "a", Name2: "a"}, {Name1: "b", Name2: "b"}, {Name1: "c", Name2: "c"}}
	if !cmp.Equal(got, want) {
		t.Fatalf("PairMembers() mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestPairMembersCompressionSuffixStem(t *testing.T) {
	got := PairMembers([]string{"data.gz"}, []string{"data.xz"}, DefaultConfig())
	want := []Pairing{{Name1: "data.gz", Name2: "data.xz"}}
	if !cmp.Equal(got, want) {
		t.Fatalf("PairMembers() mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestPairMembersLeftoversBecomeAsymmetric(t *testing.T) {
	got := PairMembers([]string{"only1"}, []string{"only2"}, DefaultConfig())
	want := []Pairing{{Name1: "only1"}, {Name2: "only2"}}
	if !cmp.Equal(got, want) {
		t.Fatalf("PairMembers() mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestPairMembersFuzzyWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FuzzyThreshold = 2
	got := PairMembers([]string{"README.txt"}, []string{"README.txtx"}, cfg)
	want := []Pairing{{Name1: "README.txt", Name2: "README.txtx"}}
	if !cmp.Equal(got, want) {
		t.Fatalf("PairMembers() mismatch with fuzzy enabled:\n%s", cmp.Diff(want, got))
	}
}

func TestPairMembersFuzzyDisabledByDefault(t *testing.T) {
	got := PairMembers([]string{"README.txt"}, []string{"README.txtx"}, DefaultConfig())
	want := []Pairing{{Name1: "README.txt"}, {Name2: "README.txtx"}}
	if !cmp.Equal(got, want) {
		t.Fatalf("PairMembers() mismatch with fuzzy disabled:\n%s", cmp.Diff(want, got))
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
