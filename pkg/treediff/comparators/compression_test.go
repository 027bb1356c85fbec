// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/treediff/pkg/treediff"
)

func writeGzip(t *testing.T, path, name, content string) {
	t.Helper()
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		t.Fatalf("NewWriterLevel: %v", err)
	}
	zw.Name = name
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestGzipMetadataDiffersOnEmbeddedNameAloneAcrossBytesIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	path1 := filepath.Join(dir, "a.gz")
	path2 := filepath.Join(dir, "b.gz")
	writeGzip(t, path1, "original-one.txt", "same payload\n")
	writeGzip(t, path2, "original-two.txt", "same payload\n")

	c1 := Specialize(treediff.NewFilesystemFile("a.gz", path1))
	c2 := Specialize(treediff.NewFilesystemFile("b.gz", path2))

	details, err := c1.CompareDetails(c2, "", treediff.DefaultConfig(), Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}
	var foundMetadata bool
	for _, d := range details {
		if d.Comment == "metadata" {
			foundMetadata = true
		}
	}
	if !foundMetadata {
		t.Fatalf("CompareDetails() details = %+v, want a \"metadata\" difference for the differing embedded name", details)
	}
}
