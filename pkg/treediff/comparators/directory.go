// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

func newDirectoryComparator(f treediff.File, d *containers.Directory) *containerComparator {
	return newContainerComparator("directory", d)
}
