// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemFileAcquire(t *testing.T) {
	path := writeTemp(t, "present.txt", "hi\n")
	f := NewFilesystemFile("present.txt", path)

	got, release, err := f.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release()
	if got != path {
		t.Fatalf("Acquire() path = %q, want %q", got, path)
	}
}

func TestFilesystemFileAcquireMissing(t *testing.T) {
	f := NewFilesystemFile("gone.txt", filepath.Join(t.TempDir(), "does-not-exist"))
	if _, _, err := f.Acquire(); err == nil {
		t.Fatal("Acquire() error = nil, want an error for a missing path")
	}
}

func TestNonExistingFileAcquireReturnsDevNull(t *testing.T) {
	f := NewNonExistingFile()
	path, release, err := f.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer release()
	if path != os.DevNull {
		t.Fatalf("Acquire() path = %q, want %q", path, os.DevNull)
	}
}

func TestNonExistingFileNameIsDevNullLiteral(t *testing.T) {
	f := NewNonExistingFile()
	if f.Name() != "/dev/null" {
		t.Fatalf("Name() = %q, want the literal \"/dev/null\"", f.Name())
	}
}

// fakeContainer is a minimal Container used only to exercise
// ContainerMemberFile's lazy, at-most-once extraction behavior.
type fakeContainer struct {
	baseFile
	extractCalls int
	memberPath   string
}

func (c *fakeContainer) Source() File                      { return c }
func (c *fakeContainer) MemberNames() ([]string, error)     { return []string{"member"}, nil }
func (c *fakeContainer) Open() (func(), error)              { return func() {}, nil }
func (c *fakeContainer) Member(name string, _ SpecializeFunc) (File, error) {
	return NewContainerMemberFile(name, c), nil
}
func (c *fakeContainer) ExtractMember(name string) (string, error) {
	c.extractCalls++
	return c.memberPath, nil
}

func TestContainerMemberFileExtractsAtMostOnce(t *testing.T) {
	path := writeTemp(t, "member", "body\n")
	c := &fakeContainer{memberPath: path}
	f := NewContainerMemberFile("member", c)

	p1, release1, err := f.Acquire()
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	release1()

	p2, release2, err := f.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	defer release2()

	if p1 != path || p2 != path {
		t.Fatalf("Acquire() paths = %q, %q, want both %q", p1, p2, path)
	}
	if c.extractCalls != 1 {
		t.Fatalf("ExtractMember called %d times, want exactly 1", c.extractCalls)
	}
}
