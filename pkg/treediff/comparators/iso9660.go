// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"os"

	"github.com/google/treediff/pkg/treediff"
)

// iso9660VolumeDescriptorOffset is where the first volume descriptor
// starts: 16 logical (2048-byte) sectors of unused system area precede it.
const iso9660VolumeDescriptorOffset = 16 * 2048

func recognizeIso9660(f treediff.File, path string) treediff.Comparator {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	buf := make([]byte, 5)
	if _, err := file.ReadAt(buf, iso9660VolumeDescriptorOffset+1); err != nil {
		return nil
	}
	if string(buf) != "CD001" {
		return nil
	}
	// spec.md §5's iso9660 coverage is the volume descriptor itself plus a
	// file listing under each naming convention the image may carry: plain
	// ISO9660 (-l), Joliet (-l -J) and RockRidge (-l -R) extensions render
	// different names/permissions for the same on-disk layout, so a
	// RockRidge-only rename wouldn't show up in the PVD dump or the plain
	// listing alone.
	return newMultiToolDumpComparator(f, "iso9660",
		toolDumpStep{tool: "isoinfo", tag: "iso9660 volume descriptor", buildArgs: func(p string) []string {
			return []string{"-d", "-i", p}
		}},
		toolDumpStep{tool: "isoinfo", tag: "iso9660 listing", buildArgs: func(p string) []string {
			return []string{"-l", "-i", p}
		}},
		toolDumpStep{tool: "isoinfo", tag: "iso9660 listing (Joliet)", buildArgs: func(p string) []string {
			return []string{"-l", "-J", "-i", p}
		}},
		toolDumpStep{tool: "isoinfo", tag: "iso9660 listing (RockRidge)", buildArgs: func(p string) []string {
			return []string{"-l", "-R", "-i", p}
		}},
	)
}
