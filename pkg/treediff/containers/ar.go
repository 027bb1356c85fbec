// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

// Ar is a Container over a Unix ar archive (spec.md §4.D; also the base
// for .deb, which is itself an ar archive of control.tar.*/data.tar.*/
// debian-binary). No pack repo or manifest vendors a pure-Go ar reader, and
// spec.md §6's external-tool table lists ar as a subprocess-invoked tool,
// so this shells out to the system ar binary, following the
// exec.LookPath/exec.Command pattern in tools/ctl/diffoscope/diffoscope.go.
type Ar struct {
	scope
	source  treediff.File
	names   []string
	scanned bool
}

// NewAr wraps source as an ar Container.
func NewAr(source treediff.File) *Ar {
	return &Ar{source: source}
}

func (a *Ar) Source() treediff.File { return a.source }

func (a *Ar) MemberNames() ([]string, error) {
	if a.scanned {
		return a.names, nil
	}
	path, release, err := a.source.Acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := exec.LookPath("ar"); err != nil {
		return nil, errors.Errorf("ar not available: %v", err)
	}
	out, err := exec.Command("ar", "t", path).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "listing ar archive %s", a.source.Name())
	}
	var names []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	a.names = names
	a.scanned = true
	return names, nil
}

func (a *Ar) Member(name string, specialize treediff.SpecializeFunc) (treediff.File, error) {
	f := treediff.NewContainerMemberFile(name, a)
	if specialize == nil {
		return f, nil
	}
	if c := specialize(f); c != nil {
		return c, nil
	}
	return f, nil
}

func (a *Ar) Open() (func(), error) {
	dir, release, err := a.open()
	if err != nil {
		return nil, err
	}
	if len(a.extracted) == 0 {
		if err := a.extractAll(dir); err != nil {
			release()
			return nil, err
		}
	}
	return release, nil
}

func (a *Ar) extractAll(dir string) error {
	path, srcRelease, err := a.source.Acquire()
	if err != nil {
		return err
	}
	defer srcRelease()

	names, err := a.MemberNames()
	if err != nil {
		return err
	}

	cmd := exec.Command("ar", append([]string{"x", path}, names...)...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "extracting ar archive %s: %s", a.source.Name(), out)
	}
	for _, name := range names {
		a.extracted[name] = memberPath(dir, name)
	}
	return nil
}

func (a *Ar) ExtractMember(name string) (string, error) {
	if path, ok := a.extracted[name]; ok {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("member %s not found in ar archive %s", name, a.source.Name())
}
