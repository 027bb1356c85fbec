// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"os"
	"strings"
	"testing"

	"github.com/google/treediff/pkg/treediff"
)

func TestDeviceComparatorDiffersOnMajorMinorNotJustKind(t *testing.T) {
	if _, err := os.Lstat("/dev/null"); err != nil {
		t.Skip("no /dev/null on this system")
	}
	if _, err := os.Lstat("/dev/zero"); err != nil {
		t.Skip("no /dev/zero on this system")
	}

	c1 := recognizeDevice(treediff.NewFilesystemFile("null", "/dev/null"), "/dev/null")
	c2 := recognizeDevice(treediff.NewFilesystemFile("zero", "/dev/zero"), "/dev/zero")
	if c1 == nil || c2 == nil {
		t.Fatal("recognizeDevice() = nil, want a deviceComparator for /dev/null and /dev/zero")
	}

	details, err := c1.CompareDetails(c2, "", treediff.DefaultConfig(), Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("CompareDetails() = %d details, want 1 for two different character devices", len(details))
	}
	if !strings.Contains(details[0].UnifiedDiff, "1:3") || !strings.Contains(details[0].UnifiedDiff, "1:5") {
		t.Fatalf("CompareDetails() diff = %q, want the 1:3 and 1:5 major:minor numbers", details[0].UnifiedDiff)
	}
}

func TestDeviceComparatorSameNodeComparesEmpty(t *testing.T) {
	if _, err := os.Lstat("/dev/null"); err != nil {
		t.Skip("no /dev/null on this system")
	}
	c1 := recognizeDevice(treediff.NewFilesystemFile("null", "/dev/null"), "/dev/null")
	c2 := recognizeDevice(treediff.NewFilesystemFile("null", "/dev/null"), "/dev/null")
	if c1 == nil || c2 == nil {
		t.Fatal("recognizeDevice() = nil, want a deviceComparator for /dev/null")
	}

	details, err := c1.CompareDetails(c2, "", treediff.DefaultConfig(), Specialize)
	if err != nil {
		t.Fatalf("CompareDetails() error = %v", err)
	}
	if details != nil {
		t.Fatalf("CompareDetails() = %v, want nil for the identical device node", details)
	}
}
