// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/treediff/pkg/treediff"
)

func writeTar(t *testing.T, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, body := range entries {
		if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(body))}); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	tw.Close()

	path := filepath.Join(t.TempDir(), "archive.tar")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestTarMemberNamesSorted(t *testing.T) {
	path := writeTar(t, map[string]string{"b.txt": "b", "a.txt": "a"})
	tarC := NewTar(treediff.NewFilesystemFile("archive.tar", path))

	names, err := tarC.MemberNames()
	if err != nil {
		t.Fatalf("MemberNames() error = %v", err)
	}
	want := []string{"a.txt", "b.txt"}
	if !cmp.Equal(names, want) {
		t.Fatalf("MemberNames() = %v, want %v", names, want)
	}
}

func TestTarExtractMember(t *testing.T) {
	path := writeTar(t, map[string]string{"hello.txt": "hello world\n"})
	tarC := NewTar(treediff.NewFilesystemFile("archive.tar", path))

	release, err := tarC.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer release()

	extracted, err := tarC.ExtractMember("hello.txt")
	if err != nil {
		t.Fatalf("ExtractMember() error = %v", err)
	}
	got, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", extracted, err)
	}
	if string(got) != "hello world\n" {
		t.Fatalf("extracted content = %q, want %q", got, "hello world\n")
	}
}

func TestTarMemberProducesContainerMemberFile(t *testing.T) {
	path := writeTar(t, map[string]string{"only.txt": "x"})
	tarC := NewTar(treediff.NewFilesystemFile("archive.tar", path))

	f, err := tarC.Member("only.txt", nil)
	if err != nil {
		t.Fatalf("Member() error = %v", err)
	}
	if f.Name() != "only.txt" {
		t.Fatalf("Member().Name() = %q, want %q", f.Name(), "only.txt")
	}
	if _, ok := f.(*treediff.ContainerMemberFile); !ok {
		t.Fatalf("Member() = %T, want *treediff.ContainerMemberFile", f)
	}
}
