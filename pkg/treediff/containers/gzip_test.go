// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/treediff/pkg/treediff"
)

func TestGzipSingleMember(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("decompressed body\n"))
	zw.Close()

	path := filepath.Join(t.TempDir(), "file.txt.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	gz := NewGzip(treediff.NewFilesystemFile("file.txt.gz", path))
	names, err := gz.MemberNames()
	if err != nil {
		t.Fatalf("MemberNames() error = %v", err)
	}
	if len(names) != 1 || names[0] != "file.txt" {
		t.Fatalf("MemberNames() = %v, want [file.txt]", names)
	}

	release, err := gz.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer release()

	extracted, err := gz.ExtractMember("file.txt")
	if err != nil {
		t.Fatalf("ExtractMember() error = %v", err)
	}
	got, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", extracted, err)
	}
	if string(got) != "decompressed body\n" {
		t.Fatalf("extracted content = %q, want %q", got, "decompressed body\n")
	}
}
