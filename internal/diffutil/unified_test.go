// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package diffutil

import (
	"strings"
	"testing"
)

func TestFromStringsEqual(t *testing.T) {
	_, equal := FromStrings("same\ntext\n", "same\ntext\n", 50)
	if !equal {
		t.Fatal("expected equal strings to report equal=true")
	}
}

func TestFromStringsSimpleChange(t *testing.T) {
	ud, equal := FromStrings("foo\nbar\nbaz\n", "foo\nBAR\nbaz\n", 50)
	if equal {
		t.Fatal("expected a difference")
	}
	if !strings.Contains(ud, "-bar") || !strings.Contains(ud, "+BAR") {
		t.Fatalf("unified diff missing expected hunk lines: %q", ud)
	}
	if !strings.HasPrefix(ud, "@@ ") {
		t.Fatalf("unified diff should start with a hunk header: %q", ud)
	}
}

func TestFromStringsTruncatesOversizedHunk(t *testing.T) {
	var b1, b2 strings.Builder
	for i := 0; i < 100; i++ {
		b1.WriteString("line-old\n")
		b2.WriteString("line-new\n")
	}
	ud, equal := FromStrings(b1.String(), b2.String(), 10)
	if equal {
		t.Fatal("expected a difference")
	}
	if !strings.Contains(ud, "[ 90 lines removed ]") {
		t.Fatalf("expected a removal marker, got: %q", ud)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a\n", 1},
		{"a\nb\n", 2},
		{"a\nb", 2},
	}
	for _, c := range cases {
		got := SplitLines(c.in)
		if len(got) != c.want {
			t.Errorf("SplitLines(%q) = %v, want %d lines", c.in, got, c.want)
		}
	}
}
