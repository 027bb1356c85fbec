// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/treediff/pkg/treediff"
)

func TestToolDumpComparatorRunsEveryStep(t *testing.T) {
	dir := t.TempDir()
	path1 := filepath.Join(dir, "a")
	path2 := filepath.Join(dir, "b")
	if err := os.WriteFile(path1, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(path2, []byte("two\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f1 := treediff.NewFilesystemFile("a", path1)
	f2 := treediff.NewFilesystemFile("b", path2)
	c1 := newMultiToolDumpComparator(f1, "stub",
		toolDumpStep{tool: "cat", tag: "first", buildArgs: func(p string) []string { return []string{p} }},
		toolDumpStep{tool: "cat", tag: "second", buildArgs: func(p string) []string { return []string{p} }},
	)
	c2 := newMultiToolDumpComparator(f2, "stub",
		toolDumpStep{tool: "cat", tag: "first", buildArgs: func(p string) []string { return []string{p} }},
		toolDumpStep{tool: "cat", tag: "second", buildArgs: func(p string) []string { return []string{p} }},
	)

	details, err := c1.CompareDetails(c2, "", treediff.DefaultConfig(), Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("CompareDetails() = %d details, want one per step (2)", len(details))
	}
	tags := map[string]bool{}
	for _, d := range details {
		tags[d.Comment] = true
	}
	if !tags["first"] || !tags["second"] {
		t.Fatalf("CompareDetails() tags = %v, want both \"first\" and \"second\"", tags)
	}
}

func TestToolDumpComparatorMismatchedFormatSkips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f := treediff.NewFilesystemFile("a", path)
	c1 := newToolDumpComparator(f, "stub-one", "cat", func(p string) []string { return []string{p} })
	c2 := newToolDumpComparator(f, "stub-two", "cat", func(p string) []string { return []string{p} })

	details, err := c1.CompareDetails(c2, "", treediff.DefaultConfig(), Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}
	if details != nil {
		t.Fatalf("CompareDetails() = %v, want nil for mismatched formats", details)
	}
}
