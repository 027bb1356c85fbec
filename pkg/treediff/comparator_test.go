// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// textComparator is a minimal Comparator used only by these tests: it
// downgrades to binary diff for anything that isn't byte-identical, the
// same shape as Binary but constructed directly from a path rather than
// wrapping an existing File.
type textComparator struct {
	baseFile
	path string
}

func newTextComparator(t *testing.T, name, content string) *textComparator {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return &textComparator{baseFile: baseFile{name: name}, path: path}
}

func (c *textComparator) Acquire() (string, func(), error) { return c.path, func() {}, nil }
func (c *textComparator) CompareDetails(Comparator, string, Config, SpecializeFunc) ([]*Difference, error) {
	return nil, nil
}

func TestCompareIdenticalFilesReturnNil(t *testing.T) {
	a := newTextComparator(t, "a.txt", "same content\n")
	b := newTextComparator(t, "b.txt", "same content\n")
	diff, err := Compare(a, b, "", DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if diff != nil {
		t.Fatalf("Compare() = %v, want nil for identical content", diff)
	}
}

func TestCompareDifferentFilesDowngradesToBinary(t *testing.T) {
	a := newTextComparator(t, "a.txt", "hello\nworld\n")
	b := newTextComparator(t, "b.txt", "hello\nWORLD\n")
	diff, err := Compare(a, b, "", DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if diff == nil {
		t.Fatal("Compare() = nil, want a Difference for differing content")
	}
	if diff.Source1 != "a.txt" || diff.Source2 != "b.txt" {
		t.Fatalf("Compare() sources = %q/%q, want a.txt/b.txt", diff.Source1, diff.Source2)
	}
	if diff.UnifiedDiff == "" {
		t.Fatal("expected a non-empty unified diff from the binary downgrade path")
	}
	if !strings.Contains(diff.UnifiedDiff, "world") || !strings.Contains(diff.UnifiedDiff, "WORLD") {
		t.Fatalf("unified diff missing expected lines: %q", diff.UnifiedDiff)
	}
}

func TestCompareNonExistingAlwaysDiffers(t *testing.T) {
	a := NewBinary(NewFilesystemFile("present", writeTemp(t, "present", "content\n")))
	b := NewBinary(NewNonExistingFile())
	diff, err := Compare(a, b, "", DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if diff == nil {
		t.Fatal("Compare() = nil, want a Difference when one side does not exist")
	}
	if diff.Source2 != "/dev/null" {
		t.Fatalf("Compare() Source2 = %q, want the literal /dev/null sentinel name", diff.Source2)
	}
	if diff.Source1 == diff.Source2 {
		t.Fatalf("Compare() Source1 == Source2 == %q, want distinct names for an asymmetric pair", diff.Source1)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCompareFilesSpecializesBothSidesWhenGiven(t *testing.T) {
	pa := writeTemp(t, "a.txt", "hello\n")
	pb := writeTemp(t, "b.txt", "hello!\n")
	f1 := NewFilesystemFile("a.txt", pa)
	f2 := NewFilesystemFile("b.txt", pb)

	specialize := func(f File) Comparator { return NewBinary(f) }
	diff, err := CompareFiles(f1, f2, DefaultConfig(), specialize)
	if err != nil {
		t.Fatalf("CompareFiles() error = %v", err)
	}
	if diff == nil {
		t.Fatal("CompareFiles() = nil, want a Difference")
	}
}
