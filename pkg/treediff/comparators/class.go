// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package comparators

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/treediff/pkg/treediff"
)

var classMagic = []byte{0xca, 0xfe, 0xba, 0xbe}

// classComparator disassembles a Java class file into its constant-pool
// UTF-8 strings and method bytecode, then diffs that text — rather than
// shelling out to javap, which isn't guaranteed present. Grounded on
// pkg/diffr/jar.go's disassembleClassFile/classFileReader, a from-scratch
// constant-pool walker that only needs to identify UTF8/Long/Double/
// Integer/Float/Class/String/ref/NameAndType tags well enough to skip
// over them; it never needs to resolve symbolic references.
type classComparator struct {
	treediff.File
}

func recognizeClass(f treediff.File, path string) treediff.Comparator {
	header, err := sniff(path)
	if err != nil || !bytes.HasPrefix(header, classMagic) {
		return nil
	}
	return &classComparator{File: f}
}

func (c *classComparator) CompareDetails(other treediff.Comparator, tag string, cfg treediff.Config, specialize treediff.SpecializeFunc) ([]*treediff.Difference, error) {
	oc, ok := other.(*classComparator)
	if !ok {
		return nil, nil
	}
	path1, release1, err := c.Acquire()
	if err != nil {
		return nil, err
	}
	defer release1()
	path2, release2, err := oc.Acquire()
	if err != nil {
		return nil, err
	}
	defer release2()

	data1, err := os.ReadFile(path1)
	if err != nil {
		return nil, err
	}
	data2, err := os.ReadFile(path2)
	if err != nil {
		return nil, err
	}

	disasm1, err1 := disassembleClassFile(data1)
	disasm2, err2 := disassembleClassFile(data2)
	if err1 != nil || err2 != nil {
		// Not (or no longer) valid class files; let the caller fall back
		// to a raw binary diff.
		return nil, nil
	}

	diff := treediff.FromText(disasm1, disasm2, c.Name(), oc.Name(), "", cfg)
	if diff == nil {
		return nil, nil
	}
	return []*treediff.Difference{diff}, nil
}

type classFileReader struct {
	data []byte
	pos  int
}

func (r *classFileReader) readU1() (uint8, error) {
	if r.pos+1 > len(r.data) {
		return 0, errors.New("read beyond end of class file")
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *classFileReader) readU2() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, errors.New("read beyond end of class file")
	}
	v := binary.BigEndian.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

func (r *classFileReader) readU4() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errors.New("read beyond end of class file")
	}
	v := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *classFileReader) skip(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errors.New("skip beyond end of class file")
	}
	r.pos += n
	return nil
}

func (r *classFileReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, errors.New("read beyond end of class file")
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// disassembleClassFile renders a .class file's version, constant-pool
// UTF-8 literals, and every method's Code attribute bytecode as hex, in a
// stable textual form suitable for line diffing.
func disassembleClassFile(data []byte) (string, error) {
	if len(data) < 10 || !bytes.Equal(data[:4], classMagic) {
		return "", errors.New("not a class file")
	}
	r := &classFileReader{data: data, pos: 4}
	minor, err := r.readU2()
	if err != nil {
		return "", err
	}
	major, err := r.readU2()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Class file version: %d.%d\n", major, minor)

	cpCount, err := r.readU2()
	if err != nil {
		return "", err
	}
	var utf8Strings []string
	for i := uint16(1); i < cpCount; i++ {
		tag, err := r.readU1()
		if err != nil {
			return "", err
		}
		switch tag {
		case 1: // UTF8
			length, err := r.readU2()
			if err != nil {
				return "", err
			}
			b, err := r.readBytes(int(length))
			if err != nil {
				return "", err
			}
			utf8Strings = append(utf8Strings, string(b))
		case 5, 6: // Long, Double occupy two constant-pool slots
			if err := r.skip(8); err != nil {
				return "", err
			}
			i++
		case 3, 4: // Integer, Float
			if err := r.skip(4); err != nil {
				return "", err
			}
		case 7, 8: // Class, String
			if err := r.skip(2); err != nil {
				return "", err
			}
		case 9, 10, 11, 12: // Fieldref, Methodref, InterfaceMethodref, NameAndType
			if err := r.skip(4); err != nil {
				return "", err
			}
		default:
			return "", errors.Errorf("unknown constant pool tag %d at index %d", tag, i)
		}
	}
	if len(utf8Strings) > 0 {
		out.WriteString("UTF-8 strings:\n")
		for _, s := range utf8Strings {
			fmt.Fprintf(&out, "  %s\n", s)
		}
	}

	if _, err := r.readU2(); err != nil { // access flags
		return "", err
	}
	if _, err := r.readU2(); err != nil { // this class
		return "", err
	}
	if _, err := r.readU2(); err != nil { // super class
		return "", err
	}
	interfacesCount, err := r.readU2()
	if err != nil {
		return "", err
	}
	if err := r.skip(int(interfacesCount) * 2); err != nil {
		return "", err
	}

	fieldsCount, err := r.readU2()
	if err != nil {
		return "", err
	}
	for i := uint16(0); i < fieldsCount; i++ {
		if err := r.skip(6); err != nil { // access flags, name, descriptor
			return "", err
		}
		if err := skipAttributes(r); err != nil {
			return "", err
		}
	}

	methodsCount, err := r.readU2()
	if err != nil {
		return "", err
	}
	if methodsCount > 0 {
		out.WriteString("Method opcodes:\n")
	}
	for i := uint16(0); i < methodsCount; i++ {
		if err := r.skip(6); err != nil { // access flags, name, descriptor
			return "", err
		}
		attrCount, err := r.readU2()
		if err != nil {
			return "", err
		}
		for j := uint16(0); j < attrCount; j++ {
			if _, err := r.readU2(); err != nil { // attribute name index
				return "", err
			}
			attrLen, err := r.readU4()
			if err != nil {
				return "", err
			}
			start := r.pos
			if code, ok := tryReadCodeAttribute(r, attrLen); ok {
				fmt.Fprintf(&out, "  Method %d:\n", i)
				for k, op := range code {
					if k > 0 && k%16 == 0 {
						out.WriteByte('\n')
					}
					fmt.Fprintf(&out, " %02x", op)
				}
				out.WriteByte('\n')
			}
			r.pos = start
			if _, err := r.readBytes(int(attrLen)); err != nil {
				return "", err
			}
		}
	}

	return out.String(), nil
}

func skipAttributes(r *classFileReader) error {
	count, err := r.readU2()
	if err != nil {
		return err
	}
	for j := uint16(0); j < count; j++ {
		if _, err := r.readU2(); err != nil {
			return err
		}
		length, err := r.readU4()
		if err != nil {
			return err
		}
		if _, err := r.readBytes(int(length)); err != nil {
			return err
		}
	}
	return nil
}

// tryReadCodeAttribute attempts to parse attrLen bytes starting at r.pos as
// a Code attribute (max_stack, max_locals, code_length, code...) and
// returns the bytecode if it looks consistent; the caller always restores
// r.pos afterward regardless of the outcome.
func tryReadCodeAttribute(r *classFileReader, attrLen uint32) ([]byte, bool) {
	if attrLen < 8 {
		return nil, false
	}
	if _, err := r.readU2(); err != nil { // max_stack
		return nil, false
	}
	if _, err := r.readU2(); err != nil { // max_locals
		return nil, false
	}
	codeLength, err := r.readU4()
	if err != nil || codeLength > attrLen-8 {
		return nil, false
	}
	code, err := r.readBytes(int(codeLength))
	if err != nil {
		return nil, false
	}
	return code, true
}
