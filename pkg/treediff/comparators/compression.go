// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"compress/gzip"
	"fmt"
	"os"
	"time"

	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

func recognizeGzip(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "gz" {
		return nil
	}
	return newContainerComparatorWithMetadata("gzip", containers.NewGzip(f), gzipMetadata)
}

// gzipMetadata summarizes a gzip stream's own header fields (spec.md §5's
// GzipFile.compare_details): the original filename, comment, modification
// time and OS byte the gzip format embeds ahead of the compressed payload.
// Two streams can decompress to byte-identical content while still
// disagreeing here — the file-list diff of the single decompressed member
// never sees this, since it only compares member names and bytes, not the
// container's own header.
func gzipMetadata(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer r.Close()
	return fmt.Sprintf("name=%s\ncomment=%s\nmodtime=%s\nos=%d\n",
		r.Name, r.Comment, r.ModTime.UTC().Format(time.RFC3339), r.OS), nil
}

func recognizeBzip2(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "bz2" {
		return nil
	}
	return newContainerComparator("bzip2", containers.NewBzip2(f))
}

func recognizeXz(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "xz" {
		return nil
	}
	return newContainerComparator("xz", containers.NewXz(f))
}
