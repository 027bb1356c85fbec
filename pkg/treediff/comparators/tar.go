// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/containers"
)

func recognizeTar(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || matchExtension(header) != "tar" {
		return nil
	}
	return newContainerComparator("tar", containers.NewTar(f))
}
