// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/treediff/pkg/treediff"
)

func TestDirectoryMemberNamesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	d := NewDirectory(treediff.NewFilesystemFile("dir", dir), dir)
	names, err := d.MemberNames()
	if err != nil {
		t.Fatalf("MemberNames() error = %v", err)
	}
	want := []string{"a.txt", "z.txt"}
	if !cmp.Equal(names, want) {
		t.Fatalf("MemberNames() = %v, want %v", names, want)
	}
}

func TestDirectoryExtractMemberReturnsExistingPath(t *testing.T) {
	dir := t.TempDir()
	childPath := filepath.Join(dir, "child.txt")
	if err := os.WriteFile(childPath, []byte("body"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := NewDirectory(treediff.NewFilesystemFile("dir", dir), dir)
	got, err := d.ExtractMember("child.txt")
	if err != nil {
		t.Fatalf("ExtractMember() error = %v", err)
	}
	if got != childPath {
		t.Fatalf("ExtractMember() = %q, want %q", got, childPath)
	}
}

func TestDirectoryExtractMemberMissing(t *testing.T) {
	dir := t.TempDir()
	d := NewDirectory(treediff.NewFilesystemFile("dir", dir), dir)
	if _, err := d.ExtractMember("nope"); err == nil {
		t.Fatal("ExtractMember() error = nil, want an error for a missing entry")
	}
}
