// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package present

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/treediff/pkg/treediff"
)

// htmlHeader/htmlFooter are adapted from original_source/debbindiff/
// presenters/html.py's HEADER/FOOTER templates: same div/class structure
// (.difference, .comment, .source, .error), CSS ported verbatim, minus the
// vim-TOhtml side-by-side diff coloring (spec.md's unified diff is already
// textual, so it's rendered inside a <pre>, not a <table>).
const htmlHeader = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <style>
    body { background: white; color: black; }
    .footer { font-size: small; }
    .difference {
      border: outset #888 1px;
      background-color: rgba(0,0,0,.1);
      padding: 0.5em;
      margin: 0.5em 0;
    }
    .comment { font-style: italic; }
    .source { font-weight: bold; }
    .error {
      border: solid black 1px;
      background: red;
      color: white;
      padding: 0.2em;
    }
    pre.unified-diff { overflow: auto; }
  </style>
</head>
<body>
`

const htmlFooter = `
<div class="footer">Generated by treediff</div>
</body>
</html>
`

// HTML renders root as a single standalone page, matching output_html's
// shape: a header, one nested <div class="difference"> per tree node
// (each carrying the same source/comment/diff sub-structure
// output_difference emits), and a footer. maxPageSize caps total output
// bytes (cfg.MaxPageSize), truncating with the same "Max output size
// reached" marker the source emits on PrintLimitReached; 0 disables the
// cap.
func HTML(title string, root *treediff.Difference, maxPageSize int) string {
	var b strings.Builder
	fmt.Fprintf(&b, htmlHeader, html.EscapeString(title))
	if root != nil {
		writeDifference(&b, root, maxPageSize)
	}
	b.WriteString(htmlFooter)
	out := b.String()
	if maxPageSize > 0 && len(out) > maxPageSize {
		out = out[:maxPageSize] + "\n<div class='error'>Max output size reached.</div>\n"
	}
	return out
}

func writeDifference(b *strings.Builder, d *treediff.Difference, maxPageSize int) {
	if maxPageSize > 0 && b.Len() >= maxPageSize {
		return
	}
	if d.Fatal {
		b.WriteString("<div class='difference error'>\n")
	} else {
		b.WriteString("<div class='difference'>\n")
	}
	if d.Source1 == d.Source2 {
		fmt.Fprintf(b, "<div><span class='source'>%s</span></div>\n", html.EscapeString(d.Source1))
	} else {
		fmt.Fprintf(b, "<div><span class='source'>%s</span> vs.</div>\n", html.EscapeString(d.Source1))
		fmt.Fprintf(b, "<div><span class='source'>%s</span></div>\n", html.EscapeString(d.Source2))
	}
	if d.Comment != "" {
		escaped := strings.ReplaceAll(html.EscapeString(d.Comment), "\n", "<br />")
		fmt.Fprintf(b, "<div class='comment'>%s</div>\n", escaped)
	}
	if d.UnifiedDiff != "" {
		fmt.Fprintf(b, "<pre class='unified-diff'>%s</pre>\n", html.EscapeString(d.UnifiedDiff))
	}
	for _, detail := range d.Details {
		writeDifference(b, detail, maxPageSize)
	}
	b.WriteString("</div>\n")
}
