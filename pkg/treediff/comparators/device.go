// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/google/treediff/pkg/treediff"
)

// deviceComparator handles character/block device nodes, named pipes and
// sockets (spec.md §4.I): there is no content to read, so the comparable
// signal is the node kind plus, for actual char/block devices, the
// major/minor numbers the kernel assigns them — two device nodes of the
// same kind but pointing at different underlying hardware must not
// compare equal just because "character device" == "character device".
type deviceComparator struct {
	treediff.File
	kind         string
	major, minor uint32
	hasDevNum    bool
}

func recognizeDevice(f treediff.File, path string) treediff.Comparator {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	mode := fi.Mode()
	c := &deviceComparator{File: f}
	switch {
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		c.kind = "character device"
	case mode&os.ModeDevice != 0:
		c.kind = "block device"
	case mode&os.ModeNamedPipe != 0:
		c.kind = "named pipe"
	case mode&os.ModeSocket != 0:
		c.kind = "socket"
	default:
		return nil
	}
	if mode&os.ModeDevice != 0 {
		if st, ok := fi.Sys().(*syscall.Stat_t); ok {
			rdev := uint64(st.Rdev)
			c.major = unix.Major(rdev)
			c.minor = unix.Minor(rdev)
			c.hasDevNum = true
		}
	}
	return c
}

// summary is the text actually diffed: the node kind alone for pipes and
// sockets (which carry no device number), kind plus major:minor for an
// actual device node.
func (c *deviceComparator) summary() string {
	if c.hasDevNum {
		return fmt.Sprintf("%s %d:%d", c.kind, c.major, c.minor)
	}
	return c.kind
}

func (c *deviceComparator) CompareDetails(other treediff.Comparator, tag string, cfg treediff.Config, specialize treediff.SpecializeFunc) ([]*treediff.Difference, error) {
	oc, ok := other.(*deviceComparator)
	if !ok {
		return nil, nil
	}
	diff := treediff.FromText(c.summary(), oc.summary(), c.Name(), oc.Name(), "device", cfg)
	if diff == nil {
		return nil, nil
	}
	return []*treediff.Difference{diff}, nil
}
