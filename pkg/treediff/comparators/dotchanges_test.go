// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/treediff/pkg/treediff"
)

func TestParseControlFieldsMultiline(t *testing.T) {
	text := "Source: pkg\nVersion: 1.0\nFiles:\n deadbeef 123 pkg_1.0.deb\n cafef00d 45 pkg_1.0.dsc\n"
	fields := parseControlFields(text)

	if got := fields.values["Source"]; got != "pkg" {
		t.Fatalf("Source = %q, want %q", got, "pkg")
	}
	want := " deadbeef 123 pkg_1.0.deb\n cafef00d 45 pkg_1.0.dsc"
	if got := fields.values["Files"]; got != want {
		t.Fatalf("Files = %q, want %q", got, want)
	}
}

func TestDotChangesFilesFieldLabeledExplicitly(t *testing.T) {
	cfg := treediff.DefaultConfig()
	dir1, dir2 := t.TempDir(), t.TempDir()
	path1 := filepath.Join(dir1, "a.changes")
	path2 := filepath.Join(dir2, "b.changes")
	if err := os.WriteFile(path1, []byte("Source: pkg\nFiles:\n aaa 1 pkg_1.deb\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(path2, []byte("Source: pkg\nFiles:\n bbb 1 pkg_1.deb\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir1, "pkg_1.deb"), []byte("content-a"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir2, "pkg_1.deb"), []byte("content-b"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c1 := Specialize(treediff.NewFilesystemFile("a.changes", path1))
	c2 := Specialize(treediff.NewFilesystemFile("b.changes", path2))

	details, err := c1.CompareDetails(c2, "", cfg, Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}

	var foundFiles, foundMember bool
	for _, d := range details {
		if d.Comment == "Files" {
			foundFiles = true
		}
		if d.Source1 == "pkg_1.deb" {
			foundMember = true
		}
	}
	if !foundFiles {
		t.Fatalf("CompareDetails() details = %+v, want one with Comment = %q", details, "Files")
	}
	if !foundMember {
		t.Fatalf("CompareDetails() details = %+v, want a recursive diff for the referenced pkg_1.deb", details)
	}
}
