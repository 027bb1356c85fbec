// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package present renders a treediff.Difference tree for a human reader:
// a glyph-prefixed plain-text tree (Text) and a minimal static HTML page
// (HTML). Both are pure formatters — they read a Difference tree and
// never touch the filesystem or recurse the comparison themselves.
package present

import (
	"strings"

	"github.com/google/treediff/pkg/treediff"
)

const (
	detailGlyph       = "│ "
	branchGlyph       = "├── "
	branchCornerGlyph = "├─┐ "
	commentGlyph      = "│┄ "
)

const fatalGlyph = "!! "

// Text renders root as the glyph-prefixed tree diffoscope users expect,
// grounded on the glyph set and branch/detail line shapes of
// pkg/diffr/output.go's DiffNode.String/formatDetails. The walk itself is
// restructured rather than ported: isContainer decides a node's own
// rendering shape — does it have children and no unified diff of its own
// — so every container renders its nested "--- / +++" pair at whatever
// depth it occurs, instead of only the direct children of the tree's root
// (pkg/diffr/output.go special-cases depth 0 only, which stops nesting
// containers from getting the same treatment one level further down). A
// node's Fatal bit gets fatalGlyph ahead of its own branch line, so a
// reader scanning top to bottom sees which branches are an outright
// missing member before reading what differs inside them.
func Text(root *treediff.Difference) string {
	if root == nil {
		return ""
	}
	w := &writer{}
	w.line("", "--- ", root.Source1)
	w.line("", "+++ ", root.Source2)
	writeBody(w, root, "")
	for _, child := range root.Details {
		writeNode(w, child, "")
	}
	return w.String()
}

// writeNode renders one Difference as either a nested container (its own
// "--- / +++" pair followed by its children at one deeper indent) or a
// leaf branch (a single branchGlyph line followed by its own diff body),
// independent of how deep in the tree it sits.
func writeNode(w *writer, node *treediff.Difference, prefix string) {
	if node.Fatal {
		w.line(prefix, fatalGlyph, node.Source1, " vs. ", node.Source2)
	}
	if isContainer(node) {
		w.line(prefix, detailGlyph, "  --- ", node.Source1)
		w.line(prefix, branchCornerGlyph, "+++ ", node.Source2)
		writeBody(w, node, prefix+detailGlyph)
		for _, child := range node.Details {
			writeNode(w, child, prefix+detailGlyph)
		}
		return
	}

	w.line(prefix, branchGlyph, node.Source1)
	writeBody(w, node, prefix+detailGlyph)
}

// isContainer reports whether node should render as a nested "--- / +++"
// pair: it has its own children and no unified diff, so there is nothing
// else to show on its own branch line.
func isContainer(node *treediff.Difference) bool {
	return len(node.Details) > 0 && node.UnifiedDiff == ""
}

// writeBody emits a node's own comment and unified diff lines, if any,
// indented under prefix. It never recurses into Details; callers walk
// those separately so a container's own body and its children's bodies
// can be told apart.
func writeBody(w *writer, node *treediff.Difference, prefix string) {
	if node.Comment != "" {
		w.line(prefix, commentGlyph, node.Comment)
	}
	if node.UnifiedDiff == "" {
		return
	}
	content := strings.TrimSuffix(node.UnifiedDiff, "\n")
	for _, line := range strings.Split(content, "\n") {
		w.line(prefix, detailGlyph, line)
	}
}

// writer accumulates rendered lines; line joins its parts with no
// separator and appends the trailing newline, the same single-purpose
// shape as pkg/diffr/output.go's lineBuilder but kept as its own type here
// since Text/writeNode/writeBody live around it rather than on it.
type writer struct {
	strings.Builder
}

func (w *writer) line(parts ...string) {
	for _, p := range parts {
		w.WriteString(p)
	}
	w.WriteByte('\n')
}
